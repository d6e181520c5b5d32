package email

import (
	"errors"
	"strings"
	"testing"
)

func TestBuildFrontDeskNotice(t *testing.T) {
	tests := []struct {
		name        string
		notice      AppointmentNotice
		wantSubject string
	}{
		{
			name: "booked",
			notice: AppointmentNotice{
				Kind: NoticeBooked, ClinicName: "Moksha Dental Experts", AppointmentID: 42,
				PatientName: "Asha", PatientPhone: "9876543210", Date: "2025-06-01", Time: "11:00 AM",
			},
			wantSubject: "[Moksha Dental Experts] New appointment: Asha on 2025-06-01 at 11:00 AM",
		},
		{
			name: "rescheduled",
			notice: AppointmentNotice{
				Kind: NoticeRescheduled, ClinicName: "Moksha Dental Experts", AppointmentID: 7,
				Date: "2025-06-02", Time: "10:00 AM",
			},
			wantSubject: "[Moksha Dental Experts] Appointment #7 rescheduled to 2025-06-02 10:00 AM",
		},
		{
			name:        "cancelled",
			notice:      AppointmentNotice{Kind: NoticeCancelled, AppointmentID: 9},
			wantSubject: "[Clinic] Appointment #9 cancelled",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := BuildFrontDeskNotice("desk@example.com", tt.notice)
			if m.Subject != tt.wantSubject {
				t.Errorf("Subject = %q, want %q", m.Subject, tt.wantSubject)
			}
			if len(m.To) != 1 || m.To[0] != "desk@example.com" {
				t.Errorf("To = %v", m.To)
			}
			if _, err := buildMessage("site@example.com", m); err != nil {
				t.Errorf("buildMessage() error = %v", err)
			}
		})
	}
}

func TestBuildFrontDeskNotice_EscapesHTML(t *testing.T) {
	m := BuildFrontDeskNotice("desk@example.com", AppointmentNotice{
		Kind:        NoticeBooked,
		PatientName: `<script>alert(1)</script>`,
		Message:     "tooth & gum",
	})
	if strings.Contains(m.HTMLBody, "<script>") {
		t.Error("patient input must be escaped in the HTML body")
	}
	if !strings.Contains(m.HTMLBody, "tooth &amp; gum") {
		t.Errorf("expected escaped notes, got %s", m.HTMLBody)
	}
	if !strings.Contains(m.TextBody, "Notes: tooth & gum") {
		t.Errorf("text body missing notes: %s", m.TextBody)
	}
}

func TestBuildMessage_Validation(t *testing.T) {
	tests := []struct {
		name string
		from string
		msg  Message
	}{
		{"no from", "", Message{To: []string{"a@b.c"}, Subject: "s", TextBody: "b"}},
		{"no recipient", "x@y.z", Message{To: []string{" "}, Subject: "s", TextBody: "b"}},
		{"no subject", "x@y.z", Message{To: []string{"a@b.c"}, TextBody: "b"}},
		{"no body", "x@y.z", Message{To: []string{"a@b.c"}, Subject: "s"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := buildMessage(tt.from, tt.msg)
			if !errors.Is(err, ErrInvalidMessage) {
				t.Errorf("expected ErrInvalidMessage, got %v", err)
			}
		})
	}
}

func TestClient_SendDisabled(t *testing.T) {
	c, err := New(Config{Enabled: false})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if err := c.Send(t.Context(), Message{To: []string{"desk@example.com"}, Subject: "x", TextBody: "y"}); !errors.Is(err, ErrDisabled) {
		t.Errorf("Send() error = %v, want ErrDisabled", err)
	}

	if _, err := New(Config{Enabled: true}); !errors.Is(err, ErrInvalidMessage) {
		t.Errorf("New() without host error = %v, want ErrInvalidMessage", err)
	}
}
