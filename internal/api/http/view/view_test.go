package view

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/Alijeyrad/moksha_web/internal/service/booking"
)

func TestDocument_SetTitleRestores(t *testing.T) {
	doc := NewDocument(Clinic{Name: "Moksha Dental Experts"})

	restore := doc.SetTitle("Dr. Valli Lakamsani - Moksha Dental Experts")
	if doc.Title != "Dr. Valli Lakamsani - Moksha Dental Experts" {
		t.Errorf("Title = %q", doc.Title)
	}
	restore()
	if doc.Title != "Moksha Dental Experts" {
		t.Errorf("Title after restore = %q", doc.Title)
	}
}

func TestDocument_NavigateAfter(t *testing.T) {
	tests := []struct {
		name  string
		after time.Duration
		want  int
	}{
		{"booking", 8 * time.Second, 8},
		{"cancel", 3 * time.Second, 3},
		{"rounds up", 2500 * time.Millisecond, 3},
		{"negative is immediate", -time.Second, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := NewDocument(Clinic{})
			doc.NavigateAfter("/", tt.after)
			if doc.Redirect == nil || doc.Redirect.To != "/" {
				t.Fatalf("Redirect = %+v", doc.Redirect)
			}
			if got := doc.Redirect.Seconds(); got != tt.want {
				t.Errorf("Seconds() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestLongDate(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"2025-06-01", "Sunday, June 1, 2025"},
		{"2025-12-25", "Thursday, December 25, 2025"},
		{"tomorrow", "tomorrow"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := LongDate(tt.in); got != tt.want {
				t.Errorf("LongDate(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestEngine_RendersTimesPartial(t *testing.T) {
	engine := NewEngine(EngineOptions{PhoneRegion: "IN"})
	if err := engine.Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	tests := []struct {
		name     string
		view     booking.TimesView
		contains []string
		absent   []string
	}{
		{
			name:     "nothing selected",
			view:     booking.TimesView{Availability: booking.NothingSelected},
			contains: []string{"Select doctor and date to see available times"},
			absent:   []string{"<select"},
		},
		{
			name:     "none available",
			view:     booking.TimesView{Availability: booking.NoneAvailable},
			contains: []string{"No available times for selected date"},
			absent:   []string{"<select"},
		},
		{
			name: "available keeps order and selection",
			view: booking.TimesView{
				Availability: booking.Available,
				Times:        []string{"10:00 AM", "11:00 AM"},
				Selected:     "11:00 AM",
			},
			contains: []string{`<option value="10:00 AM">`, `<option value="11:00 AM" selected>`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := engine.Render(&buf, "partials/times", tt.view); err != nil {
				t.Fatalf("Render() error = %v", err)
			}
			out := buf.String()
			for _, s := range tt.contains {
				if !strings.Contains(out, s) {
					t.Errorf("output missing %q:\n%s", s, out)
				}
			}
			for _, s := range tt.absent {
				if strings.Contains(out, s) {
					t.Errorf("output unexpectedly contains %q", s)
				}
			}
			if strings.Index(out, "10:00 AM") > strings.Index(out, "11:00 AM") {
				t.Error("slot order not preserved")
			}
		})
	}
}

func TestStatic_ServesAssets(t *testing.T) {
	for _, name := range []string{"app.css", "app.js"} {
		f, err := Static().Open(name)
		if err != nil {
			t.Errorf("Open(%q) error = %v", name, err)
			continue
		}
		_ = f.Close()
	}
}
