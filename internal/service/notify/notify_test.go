package notify

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Alijeyrad/moksha_web/pkg/clinicapi"
	"github.com/Alijeyrad/moksha_web/pkg/email"
)

type fakeSender struct {
	mu   sync.Mutex
	sent []email.Message
	err  error
}

func (f *fakeSender) Send(_ context.Context, m email.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, m)
	return f.err
}

func TestNew_DisabledIsNoop(t *testing.T) {
	tests := []struct {
		name string
		opts Options
	}{
		{"disabled", Options{Enabled: false, To: "desk@example.com"}},
		{"no recipient", Options{Enabled: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &fakeSender{}
			n := New(s, tt.opts)
			n.Booked(clinicapi.Appointment{ID: 1})
			n.Stop(context.Background())
			if len(s.sent) != 0 {
				t.Errorf("sent %d messages, want 0", len(s.sent))
			}
		})
	}
}

func TestNotifier_SendsAllBeforeStop(t *testing.T) {
	s := &fakeSender{}
	n := New(s, Options{Enabled: true, To: "desk@example.com", ClinicName: "Moksha Dental Experts", Workers: 2})

	appt := clinicapi.Appointment{ID: 7, PatientName: "Asha", Date: "2025-06-01", Time: "10:00 AM"}
	n.Booked(appt)
	n.Rescheduled(appt, "2025-06-02", "11:00 AM")
	n.Cancelled(appt)
	n.Stop(context.Background())

	if len(s.sent) != 3 {
		t.Fatalf("sent %d messages, want 3", len(s.sent))
	}

	var rescheduled bool
	for _, m := range s.sent {
		if !strings.HasPrefix(m.Subject, "[Moksha Dental Experts]") {
			t.Errorf("subject missing clinic: %q", m.Subject)
		}
		if strings.Contains(m.Subject, "rescheduled to 2025-06-02 11:00 AM") {
			rescheduled = true
		}
	}
	if !rescheduled {
		t.Error("rescheduled notice must carry the new slot")
	}

	// Notices after Stop are ignored rather than panicking.
	n.Booked(appt)
	n.Stop(context.Background())
}

func TestNotifier_SendErrorsAreSwallowed(t *testing.T) {
	s := &fakeSender{err: errors.New("smtp down")}
	n := New(s, Options{Enabled: true, To: "desk@example.com"})
	n.Booked(clinicapi.Appointment{ID: 1})
	n.Stop(context.Background())

	if len(s.sent) != 1 {
		t.Errorf("attempted %d sends, want 1", len(s.sent))
	}
}

type blockingSender struct {
	mu       sync.Mutex
	started  int
	finished int
}

func (b *blockingSender) Send(ctx context.Context, _ email.Message) error {
	b.mu.Lock()
	b.started++
	b.mu.Unlock()

	<-ctx.Done()

	b.mu.Lock()
	b.finished++
	b.mu.Unlock()
	return ctx.Err()
}

func (b *blockingSender) counts() (int, int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.started, b.finished
}

func TestNotifier_StopHonoursDeadline(t *testing.T) {
	s := &blockingSender{}
	n := New(s, Options{Enabled: true, To: "desk@example.com", Workers: 1, Timeout: time.Minute})

	for i := range 6 {
		n.Booked(clinicapi.Appointment{ID: i + 1})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	start := time.Now()
	err := n.Stop(ctx)
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Fatalf("Stop took %v, want it bounded by the context", elapsed)
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Stop() error = %v, want deadline exceeded", err)
	}

	// The in-flight send is cancelled and the rest of the queue is skipped.
	select {
	case <-n.(*emailNotifier).done:
	case <-time.After(2 * time.Second):
		t.Fatal("notifier did not finish after the deadline")
	}
	started, finished := s.counts()
	if started > 1 {
		t.Errorf("started %d sends, want only the in-flight one", started)
	}
	if started != finished {
		t.Errorf("started=%d finished=%d, want every send cancelled", started, finished)
	}
}
