package reschedule

import "errors"

var (
	// ErrNoHandoff means the visitor reached the screen without picking an
	// appointment on the lookup screen first.
	ErrNoHandoff = errors.New("no appointment selected for rescheduling")
	// ErrDoctorUnknown means the appointment carries no doctor id and no
	// fallback doctor is configured.
	ErrDoctorUnknown = errors.New("appointment has no doctor")
)
