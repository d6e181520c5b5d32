package lookup

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/samber/lo"

	"github.com/Alijeyrad/moksha_web/internal/service/booking"
	"github.com/Alijeyrad/moksha_web/pkg/clinicapi"
	"github.com/Alijeyrad/moksha_web/pkg/phone"
)

// ---------------------------------------------------------------------------
// DTOs
// ---------------------------------------------------------------------------

// Step is where the visitor is in the lookup flow.
type Step string

const (
	StepPhoneEntry Step = "PHONE_ENTRY"
	StepResults    Step = "RESULTS"
	StepCancelled  Step = "CANCELLED"
)

type Results struct {
	Phone        string
	Appointments []clinicapi.Appointment
}

type Cancellation struct {
	Step          Step
	Appointment   clinicapi.Appointment
	RedirectAfter time.Duration
}

// ---------------------------------------------------------------------------
// Dependencies
// ---------------------------------------------------------------------------

type API interface {
	ListAppointments(ctx context.Context) ([]clinicapi.Appointment, error)
	CancelAppointment(ctx context.Context, id int) error
}

// Handoff delivers the chosen appointment to the reschedule screen.
type Handoff interface {
	Send(ctx context.Context, visitor string, appt clinicapi.Appointment) error
}

type Notifier interface {
	Cancelled(appt clinicapi.Appointment)
}

type Options struct {
	RedirectAfter time.Duration
	Notifier      Notifier
}

// ---------------------------------------------------------------------------
// Interface
// ---------------------------------------------------------------------------

type Service interface {
	Search(ctx context.Context, phone string) (*Results, error)
	Find(ctx context.Context, phone string, id int) (*clinicapi.Appointment, error)
	Cancel(ctx context.Context, phone string, id int) (*Cancellation, error)
	Select(ctx context.Context, visitor, phone string, id int) error
}

// ---------------------------------------------------------------------------
// Implementation
// ---------------------------------------------------------------------------

type lookupService struct {
	api     API
	handoff Handoff
	opts    Options
	log     *slog.Logger
}

func New(api API, handoff Handoff, opts Options) Service {
	return &lookupService{
		api:     api,
		handoff: handoff,
		opts:    opts,
		log:     slog.Default().With("component", "lookup"),
	}
}

func checkPhone(p string) (string, error) {
	d := phone.Digits(p)
	if len(d) != phone.Length {
		return "", &booking.ValidationError{Fields: map[string]string{
			"phone": fmt.Sprintf("Please enter exactly 10 digits (%d/10)", len(d)),
		}}
	}
	return d, nil
}

// Search lists every appointment and keeps those whose phone has the same
// digits as p. The API has no server-side filter.
func (s *lookupService) Search(ctx context.Context, p string) (*Results, error) {
	digits, err := checkPhone(p)
	if err != nil {
		return nil, err
	}

	all, err := s.api.ListAppointments(ctx)
	if err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}

	matches := lo.Filter(all, func(a clinicapi.Appointment, _ int) bool {
		return phone.Equal(a.Phone, digits)
	})
	if len(matches) == 0 {
		return &Results{Phone: digits}, ErrNoAppointments
	}
	return &Results{Phone: digits, Appointments: matches}, nil
}

func (s *lookupService) Find(ctx context.Context, p string, id int) (*clinicapi.Appointment, error) {
	res, err := s.Search(ctx, p)
	if err != nil {
		return nil, err
	}
	a, ok := lo.Find(res.Appointments, func(a clinicapi.Appointment) bool { return a.ID == id })
	if !ok {
		return nil, ErrAppointmentNotFound
	}
	return &a, nil
}

// Cancel deletes one of the phone's appointments. Any failure, including a
// 404 for a record deleted in the meantime, leaves the flow in RESULTS.
func (s *lookupService) Cancel(ctx context.Context, p string, id int) (*Cancellation, error) {
	appt, err := s.Find(ctx, p, id)
	if err != nil {
		return nil, err
	}

	if err := s.api.CancelAppointment(ctx, id); err != nil {
		return nil, fmt.Errorf("cancel appointment %d: %w", id, err)
	}
	s.log.InfoContext(ctx, "appointment cancelled", "appointment_id", id)

	if s.opts.Notifier != nil {
		s.opts.Notifier.Cancelled(*appt)
	}

	return &Cancellation{
		Step:          StepCancelled,
		Appointment:   *appt,
		RedirectAfter: s.opts.RedirectAfter,
	}, nil
}

// Select hands one of the phone's appointments to the reschedule screen for
// this visitor.
func (s *lookupService) Select(ctx context.Context, visitor, p string, id int) error {
	appt, err := s.Find(ctx, p, id)
	if err != nil {
		return err
	}
	if err := s.handoff.Send(ctx, visitor, *appt); err != nil {
		return fmt.Errorf("hand off appointment %d: %w", id, err)
	}
	return nil
}
