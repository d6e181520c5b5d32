package email

import (
	"fmt"
	"html"
	"strings"
)

// NoticeKind says what happened to an appointment.
type NoticeKind string

const (
	NoticeBooked      NoticeKind = "booked"
	NoticeRescheduled NoticeKind = "rescheduled"
	NoticeCancelled   NoticeKind = "cancelled"
)

// AppointmentNotice is the data behind a front-desk notification.
type AppointmentNotice struct {
	Kind          NoticeKind
	ClinicName    string
	AppointmentID int
	PatientName   string
	PatientEmail  string
	PatientPhone  string
	DoctorName    string
	Date          string
	Time          string
	Message       string
}

func (n AppointmentNotice) subject() string {
	clinic := n.ClinicName
	if clinic == "" {
		clinic = "Clinic"
	}
	who := n.PatientName
	if who == "" {
		who = "patient " + n.PatientPhone
	}
	switch n.Kind {
	case NoticeRescheduled:
		return fmt.Sprintf("[%s] Appointment #%d rescheduled to %s %s", clinic, n.AppointmentID, n.Date, n.Time)
	case NoticeCancelled:
		return fmt.Sprintf("[%s] Appointment #%d cancelled", clinic, n.AppointmentID)
	default:
		return fmt.Sprintf("[%s] New appointment: %s on %s at %s", clinic, who, n.Date, n.Time)
	}
}

// rows returns the label/value pairs shown in both bodies, skipping blanks.
func (n AppointmentNotice) rows() [][2]string {
	all := [][2]string{
		{"Appointment", fmt.Sprintf("#%d", n.AppointmentID)},
		{"Patient", n.PatientName},
		{"Email", n.PatientEmail},
		{"Phone", n.PatientPhone},
		{"Doctor", n.DoctorName},
		{"Date", n.Date},
		{"Time", n.Time},
		{"Notes", n.Message},
	}
	out := all[:0]
	for _, r := range all {
		if strings.TrimSpace(r[1]) != "" {
			out = append(out, r)
		}
	}
	return out
}

// BuildFrontDeskNotice creates the email the front desk receives when a
// visitor books, moves or cancels an appointment on the website.
func BuildFrontDeskNotice(to string, n AppointmentNotice) Message {
	var text, rows strings.Builder

	fmt.Fprintf(&text, "An appointment was %s on the website.\n\n", n.Kind)
	for _, r := range n.rows() {
		fmt.Fprintf(&text, "%s: %s\n", r[0], r[1])
		fmt.Fprintf(&rows, `<tr><td style="padding:4px 12px 4px 0;color:#6b7280;">%s</td><td style="padding:4px 0;">%s</td></tr>`,
			html.EscapeString(r[0]), html.EscapeString(r[1]))
	}

	htmlBody := fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
</head>
<body style="font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px;">
    <p>An appointment was <strong>%s</strong> on the website.</p>
    <table style="border-collapse: collapse;">%s</table>
</body>
</html>`, html.EscapeString(string(n.Kind)), rows.String())

	return Message{
		To:       []string{to},
		ReplyTo:  n.PatientEmail,
		Subject:  n.subject(),
		TextBody: text.String(),
		HTMLBody: htmlBody,
	}
}
