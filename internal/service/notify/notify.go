// Package notify emails the clinic front desk about appointments booked,
// moved or cancelled on the website. Sending happens in the background; a
// failed or dropped notice never changes what the visitor sees.
package notify

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sourcegraph/conc/pool"

	"github.com/Alijeyrad/moksha_web/pkg/clinicapi"
	"github.com/Alijeyrad/moksha_web/pkg/email"
)

const queueSize = 64

// ---------------------------------------------------------------------------
// Dependencies
// ---------------------------------------------------------------------------

type Sender interface {
	Send(ctx context.Context, m email.Message) error
}

type Options struct {
	Enabled    bool
	To         string
	ClinicName string
	Workers    int
	// Timeout bounds a single send.
	Timeout time.Duration
}

// ---------------------------------------------------------------------------
// Interface
// ---------------------------------------------------------------------------

type Notifier interface {
	Booked(appt clinicapi.Appointment)
	Rescheduled(appt clinicapi.Appointment, date, slot string)
	Cancelled(appt clinicapi.Appointment)
	// Stop drains queued notices and waits for in-flight sends until ctx
	// ends. Past the deadline, in-flight sends are cancelled and whatever is
	// still queued is dropped.
	Stop(ctx context.Context) error
}

// ---------------------------------------------------------------------------
// Implementation
// ---------------------------------------------------------------------------

type nopNotifier struct{}

func (nopNotifier) Booked(clinicapi.Appointment)                      {}
func (nopNotifier) Rescheduled(clinicapi.Appointment, string, string) {}
func (nopNotifier) Cancelled(clinicapi.Appointment)                   {}
func (nopNotifier) Stop(context.Context) error                        { return nil }

type emailNotifier struct {
	sender Sender
	opts   Options
	log    *slog.Logger

	// base parents every send; cancelling it aborts in-flight sends and
	// makes run skip the rest of the queue.
	base   context.Context
	cancel context.CancelFunc

	mu     sync.Mutex
	closed bool
	queue  chan email.Message
	done   chan struct{}
}

// New returns a notifier that sends through sender, or one that does
// nothing when notifications are disabled.
func New(sender Sender, opts Options) Notifier {
	if !opts.Enabled || sender == nil || opts.To == "" {
		return nopNotifier{}
	}
	if opts.Workers <= 0 {
		opts.Workers = 1
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}

	base, cancel := context.WithCancel(context.Background())
	n := &emailNotifier{
		base:   base,
		cancel: cancel,
		sender: sender,
		opts:   opts,
		log:    slog.Default().With("component", "notify"),
		queue:  make(chan email.Message, queueSize),
		done:   make(chan struct{}),
	}
	go n.run()
	return n
}

func (n *emailNotifier) run() {
	defer close(n.done)

	p := pool.New().WithMaxGoroutines(n.opts.Workers)
	var dropped atomic.Int32
	for m := range n.queue {
		if n.base.Err() != nil {
			dropped.Add(1)
			continue
		}
		p.Go(func() {
			if n.base.Err() != nil {
				dropped.Add(1)
				return
			}
			ctx, cancel := context.WithTimeout(n.base, n.opts.Timeout)
			defer cancel()
			if err := n.sender.Send(ctx, m); err != nil {
				n.log.Warn("front desk notice not sent", "subject", m.Subject, "error", err)
			}
		})
	}
	p.Wait()
	if d := dropped.Load(); d > 0 {
		n.log.Warn("front desk notices dropped at shutdown", "count", d)
	}
}

func (n *emailNotifier) enqueue(notice email.AppointmentNotice) {
	notice.ClinicName = n.opts.ClinicName
	m := email.BuildFrontDeskNotice(n.opts.To, notice)

	n.mu.Lock()
	defer n.mu.Unlock()
	if n.closed {
		return
	}
	select {
	case n.queue <- m:
	default:
		n.log.Warn("front desk notice dropped, queue full", "subject", m.Subject)
	}
}

func (n *emailNotifier) Booked(appt clinicapi.Appointment) {
	n.enqueue(notice(email.NoticeBooked, appt))
}

func (n *emailNotifier) Rescheduled(appt clinicapi.Appointment, date, slot string) {
	ntc := notice(email.NoticeRescheduled, appt)
	ntc.Date = date
	ntc.Time = slot
	n.enqueue(ntc)
}

func (n *emailNotifier) Cancelled(appt clinicapi.Appointment) {
	n.enqueue(notice(email.NoticeCancelled, appt))
}

func (n *emailNotifier) Stop(ctx context.Context) error {
	n.mu.Lock()
	if !n.closed {
		n.closed = true
		close(n.queue)
	}
	n.mu.Unlock()

	select {
	case <-n.done:
		n.cancel()
		return nil
	case <-ctx.Done():
		n.cancel()
		n.log.Warn("front desk notices abandoned at shutdown", "queued", len(n.queue))
		return fmt.Errorf("notify: stop: %w", ctx.Err())
	}
}

func notice(kind email.NoticeKind, a clinicapi.Appointment) email.AppointmentNotice {
	return email.AppointmentNotice{
		Kind:          kind,
		AppointmentID: a.ID,
		PatientName:   a.PatientName,
		PatientEmail:  a.Email,
		PatientPhone:  a.Phone,
		DoctorName:    a.Doctor,
		Date:          a.Date,
		Time:          a.Time,
		Message:       a.Message,
	}
}
