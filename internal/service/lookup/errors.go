package lookup

import "errors"

var (
	// ErrNoAppointments is the empty result of a phone search. It is an
	// empty state for the screen, not a fault.
	ErrNoAppointments = errors.New("no appointments found with this phone number")
	// ErrAppointmentNotFound means the chosen id is not among the
	// appointments booked with the searched phone.
	ErrAppointmentNotFound = errors.New("appointment not found for this phone number")
)
