package booking

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/Alijeyrad/moksha_web/pkg/clinicapi"
)

// ---------------------------------------------------------------------------
// DTOs
// ---------------------------------------------------------------------------

// State is the booking screen's state.
type State string

const (
	StateForm      State = "FORM"
	StateSubmitted State = "SUBMITTED"
)

// Availability tells the time picker which of its three faces to show.
type Availability int

const (
	NothingSelected Availability = iota
	NoneAvailable
	Available
)

// TimesView is the Available-Times Set for one (doctor, date) pair as the
// form renders it.
type TimesView struct {
	Availability Availability
	Times        []string
	// Selected is the posted time when it is still offered, else "".
	Selected string
}

// HasTimes reports whether there are slots to choose from.
func (v TimesView) HasTimes() bool { return v.Availability == Available }

// Message is the placeholder text shown when there is nothing to pick.
func (v TimesView) Message() string {
	switch v.Availability {
	case NothingSelected:
		return "Select doctor and date to see available times"
	case NoneAvailable:
		return "No available times for selected date"
	default:
		return ""
	}
}

// Result is what a successful submission leaves behind for the confirmation
// screen.
type Result struct {
	State       State
	Form        Form
	Appointment clinicapi.Appointment
	// RedirectAfter is how long the confirmation stays up before the browser
	// goes back to the directory.
	RedirectAfter time.Duration
}

// ---------------------------------------------------------------------------
// Dependencies
// ---------------------------------------------------------------------------

type API interface {
	CreateAppointment(ctx context.Context, req clinicapi.CreateAppointmentRequest) (*clinicapi.Appointment, error)
	GetAvailableTimes(ctx context.Context, doctorID int, date string) ([]string, error)
}

// Notifier is told about every appointment booked through the site.
type Notifier interface {
	Booked(appt clinicapi.Appointment)
}

type Options struct {
	Location      *time.Location
	RedirectAfter time.Duration
	Notifier      Notifier
	// Now defaults to time.Now.
	Now func() time.Time
}

// ---------------------------------------------------------------------------
// Interface
// ---------------------------------------------------------------------------

type Service interface {
	// Today is the clinic's current date in DateLayout.
	Today() string
	AvailableTimes(ctx context.Context, doctorID int, date, selected string) TimesView
	Submit(ctx context.Context, f Form) (*Result, error)
}

// ---------------------------------------------------------------------------
// Implementation
// ---------------------------------------------------------------------------

type bookingService struct {
	api  API
	opts Options
	log  *slog.Logger
}

func New(api API, opts Options) Service {
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &bookingService{api: api, opts: opts, log: slog.Default().With("component", "booking")}
}

func (s *bookingService) Today() string {
	return s.opts.Now().In(s.opts.Location).Format(DateLayout)
}

// AvailableTimes only asks the API once both doctor and date are chosen.
// A failed fetch is logged and shown as an empty set.
func (s *bookingService) AvailableTimes(ctx context.Context, doctorID int, date, selected string) TimesView {
	if doctorID <= 0 || date == "" {
		return TimesView{Availability: NothingSelected}
	}

	times, err := s.api.GetAvailableTimes(ctx, doctorID, date)
	if err != nil {
		s.log.WarnContext(ctx, "fetch available times failed",
			"doctor_id", doctorID, "date", date, "error", err)
		times = nil
	}
	if len(times) == 0 {
		return TimesView{Availability: NoneAvailable}
	}

	v := TimesView{Availability: Available, Times: times}
	if slices.Contains(times, selected) {
		v.Selected = selected
	}
	return v
}

// Submit validates f and books it. Validation failures never reach the API.
// On any error the caller stays on the form.
func (s *bookingService) Submit(ctx context.Context, f Form) (*Result, error) {
	f.Normalize()
	if err := f.Validate(s.Today()); err != nil {
		return nil, err
	}

	appt, err := s.api.CreateAppointment(ctx, clinicapi.CreateAppointmentRequest{
		PatientName: f.PatientName,
		Email:       f.Email,
		Phone:       f.Phone,
		Date:        f.Date,
		Time:        f.Time,
		DoctorID:    f.DoctorIDInt(),
		Message:     f.Message,
	})
	if err != nil {
		return nil, fmt.Errorf("create appointment: %w", err)
	}

	booked := fillFromForm(*appt, f)
	s.log.InfoContext(ctx, "appointment booked",
		"appointment_id", booked.ID, "doctor_id", booked.DoctorID, "date", booked.Date)

	if s.opts.Notifier != nil {
		s.opts.Notifier.Booked(booked)
	}

	return &Result{
		State:         StateSubmitted,
		Form:          f,
		Appointment:   booked,
		RedirectAfter: s.opts.RedirectAfter,
	}, nil
}

// fillFromForm completes a sparse create response with what was submitted.
func fillFromForm(a clinicapi.Appointment, f Form) clinicapi.Appointment {
	if a.PatientName == "" {
		a.PatientName = f.PatientName
	}
	if a.Email == "" {
		a.Email = f.Email
	}
	if a.Phone == "" {
		a.Phone = f.Phone
	}
	if a.Date == "" {
		a.Date = f.Date
	}
	if a.Time == "" {
		a.Time = f.Time
	}
	if a.DoctorID == 0 {
		a.DoctorID = f.DoctorIDInt()
	}
	if a.Message == "" {
		a.Message = f.Message
	}
	return a
}
