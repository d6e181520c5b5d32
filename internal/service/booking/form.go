package booking

import (
	"fmt"
	"net/mail"
	"strconv"
	"strings"
	"time"

	"github.com/Alijeyrad/moksha_web/pkg/phone"
)

// DateLayout is the wire and form format of appointment dates.
const DateLayout = "2006-01-02"

// Form is the booking form as posted by the browser. DoctorID stays a string
// until submission so an unselected doctor round-trips as "".
type Form struct {
	PatientName string `form:"patientName"`
	Email       string `form:"email"`
	Phone       string `form:"phone"`
	Date        string `form:"date"`
	Time        string `form:"time"`
	DoctorID    string `form:"doctor_id"`
	Message     string `form:"message"`
}

// NormalizePhone keeps the digits of s, capped at ten, the way the phone
// input does while typing.
func NormalizePhone(s string) string {
	return phone.Normalize(s)
}

// Normalize trims every field and reduces the phone to all of its digits.
// The phone is not capped here, so Validate sees overlong numbers.
func (f *Form) Normalize() {
	f.PatientName = strings.TrimSpace(f.PatientName)
	f.Email = strings.TrimSpace(f.Email)
	f.Phone = phone.Digits(f.Phone)
	f.Date = strings.TrimSpace(f.Date)
	f.Time = strings.TrimSpace(f.Time)
	f.DoctorID = strings.TrimSpace(f.DoctorID)
	f.Message = strings.TrimSpace(f.Message)
}

// DoctorIDInt returns the selected doctor, or 0 when none or unparsable.
func (f Form) DoctorIDInt() int {
	id, err := strconv.Atoi(f.DoctorID)
	if err != nil || id < 0 {
		return 0
	}
	return id
}

// Validate checks the field constraints. today is the clinic's current date
// in DateLayout.
func (f Form) Validate(today string) error {
	ve := &ValidationError{}

	if f.PatientName == "" {
		ve.add("patientName", "Patient name is required")
	}
	if f.Email == "" {
		ve.add("email", "Email address is required")
	} else if _, err := mail.ParseAddress(f.Email); err != nil {
		ve.add("email", "Please enter a valid email address")
	}
	if !phone.Valid(f.Phone) {
		ve.add("phone", fmt.Sprintf("Please enter exactly 10 digits (%d/10)", len(phone.Digits(f.Phone))))
	}
	if f.DoctorIDInt() <= 0 {
		ve.add("doctor_id", "Please choose a doctor")
	}
	if msg := checkDate(f.Date, today); msg != "" {
		ve.add("date", msg)
	}
	if f.Time == "" {
		ve.add("time", "Please choose a time")
	}

	return ve.orNil()
}

// checkDate returns a user message for a missing, malformed or past date.
func checkDate(date, today string) string {
	if date == "" {
		return "Please choose a date"
	}
	if _, err := time.Parse(DateLayout, date); err != nil {
		return "Please enter a valid date"
	}
	// Both are zero-padded ISO dates, so string order is date order.
	if date < today {
		return "Date cannot be in the past"
	}
	return ""
}

// ValidateSlot checks a date and time chosen for an existing appointment.
func ValidateSlot(date, slot, today string) error {
	ve := &ValidationError{}
	if msg := checkDate(strings.TrimSpace(date), today); msg != "" {
		ve.add("date", msg)
	}
	if strings.TrimSpace(slot) == "" {
		ve.add("time", "Please choose a time")
	}
	return ve.orNil()
}

// ParseDate parses a form date, wrapping ErrInvalidDate.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return t, nil
}
