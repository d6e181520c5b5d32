package reschedule

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Alijeyrad/moksha_web/internal/service/booking"
	"github.com/Alijeyrad/moksha_web/pkg/clinicapi"
)

// ---------------------------------------------------------------------------
// DTOs
// ---------------------------------------------------------------------------

const StateSuccess = "SUCCESS"

// Session is the appointment being moved, as handed off by the lookup
// screen, plus the doctor whose slots are offered.
type Session struct {
	Appointment clinicapi.Appointment
	DoctorID    int
}

type Result struct {
	State         string
	Appointment   clinicapi.Appointment
	Date          string
	Time          string
	RedirectAfter time.Duration
}

// ---------------------------------------------------------------------------
// Dependencies
// ---------------------------------------------------------------------------

type API interface {
	RescheduleAppointment(ctx context.Context, id int, date, slot string) error
}

// Slots is the booking workflow's view of available times.
type Slots interface {
	Today() string
	AvailableTimes(ctx context.Context, doctorID int, date, selected string) booking.TimesView
}

type Mailbox interface {
	Receive(ctx context.Context, visitor string) (clinicapi.Appointment, bool, error)
	Close(ctx context.Context, visitor string) error
}

type Notifier interface {
	Rescheduled(appt clinicapi.Appointment, date, slot string)
}

type Options struct {
	// FallbackDoctorID is offered when the appointment has no doctor id.
	// Zero disables the fallback.
	FallbackDoctorID int
	RedirectAfter    time.Duration
	Notifier         Notifier
}

// ---------------------------------------------------------------------------
// Interface
// ---------------------------------------------------------------------------

type Service interface {
	Begin(ctx context.Context, visitor string) (*Session, error)
	Today() string
	AvailableTimes(ctx context.Context, s *Session, date, selected string) (booking.TimesView, error)
	Submit(ctx context.Context, visitor string, s *Session, date, slot string) (*Result, error)
	Abandon(ctx context.Context, visitor string) error
}

// ---------------------------------------------------------------------------
// Implementation
// ---------------------------------------------------------------------------

type rescheduleService struct {
	api     API
	slots   Slots
	mailbox Mailbox
	opts    Options
	log     *slog.Logger
}

func New(api API, slots Slots, mailbox Mailbox, opts Options) Service {
	return &rescheduleService{
		api:     api,
		slots:   slots,
		mailbox: mailbox,
		opts:    opts,
		log:     slog.Default().With("component", "reschedule"),
	}
}

// Begin reads the handed-off appointment. It does not consume it: the screen
// calls Begin again on each of its own form posts.
func (s *rescheduleService) Begin(ctx context.Context, visitor string) (*Session, error) {
	appt, ok, err := s.mailbox.Receive(ctx, visitor)
	if err != nil {
		return nil, fmt.Errorf("receive handoff: %w", err)
	}
	if !ok {
		return nil, ErrNoHandoff
	}

	sess := &Session{Appointment: appt, DoctorID: appt.DoctorID}
	if sess.DoctorID <= 0 && s.opts.FallbackDoctorID > 0 {
		s.log.WarnContext(ctx, "appointment has no doctor, using fallback",
			"appointment_id", appt.ID, "fallback_doctor_id", s.opts.FallbackDoctorID)
		sess.DoctorID = s.opts.FallbackDoctorID
	}
	return sess, nil
}

func (s *rescheduleService) Today() string {
	return s.slots.Today()
}

func (s *rescheduleService) AvailableTimes(ctx context.Context, sess *Session, date, selected string) (booking.TimesView, error) {
	if sess.DoctorID <= 0 {
		return booking.TimesView{}, ErrDoctorUnknown
	}
	return s.slots.AvailableTimes(ctx, sess.DoctorID, date, selected), nil
}

// Submit moves the appointment and closes the handoff. On failure the
// handoff stays open so the visitor can try again.
func (s *rescheduleService) Submit(ctx context.Context, visitor string, sess *Session, date, slot string) (*Result, error) {
	if sess.DoctorID <= 0 {
		return nil, ErrDoctorUnknown
	}
	date, slot = strings.TrimSpace(date), strings.TrimSpace(slot)
	if err := booking.ValidateSlot(date, slot, s.slots.Today()); err != nil {
		return nil, err
	}

	id := sess.Appointment.ID
	if err := s.api.RescheduleAppointment(ctx, id, date, slot); err != nil {
		return nil, fmt.Errorf("reschedule appointment %d: %w", id, err)
	}
	s.log.InfoContext(ctx, "appointment rescheduled", "appointment_id", id, "date", date)

	if err := s.mailbox.Close(ctx, visitor); err != nil {
		s.log.WarnContext(ctx, "close handoff failed", "error", err)
	}
	if s.opts.Notifier != nil {
		s.opts.Notifier.Rescheduled(sess.Appointment, date, slot)
	}

	return &Result{
		State:         StateSuccess,
		Appointment:   sess.Appointment,
		Date:          date,
		Time:          slot,
		RedirectAfter: s.opts.RedirectAfter,
	}, nil
}

func (s *rescheduleService) Abandon(ctx context.Context, visitor string) error {
	return s.mailbox.Close(ctx, visitor)
}
