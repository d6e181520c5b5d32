package clinicapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Alijeyrad/moksha_web/config"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()

	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	c, err := New(Config{BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return c
}

func TestNew_EmptyBaseURL(t *testing.T) {
	if _, err := New(Config{}); err == nil {
		t.Error("Expected error for empty base url")
	}
}

func TestListDoctors(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/api/doctors" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		_, _ = io.WriteString(w, `[{"id":1,"name":"Dr. Valli Lakamsani","specialty":"Sports","experience":12,
			"qualifications":["DPT"],"specializations":["ACL Rehabilitation","Shoulder Injuries"]}]`)
	})

	doctors, err := c.ListDoctors(context.Background())
	if err != nil {
		t.Fatalf("ListDoctors() error = %v", err)
	}
	if len(doctors) != 1 {
		t.Fatalf("ListDoctors() returned %d doctors, want 1", len(doctors))
	}
	d := doctors[0]
	if d.ID != 1 || d.Name != "Dr. Valli Lakamsani" || d.Experience != 12 {
		t.Errorf("unexpected doctor %+v", d)
	}
	if len(d.Specializations) != 2 || d.Specializations[1] != "Shoulder Injuries" {
		t.Errorf("specializations order not kept: %v", d.Specializations)
	}
}

func TestCreateAppointment_SendsJSONBody(t *testing.T) {
	var got map[string]any
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/appointments" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %q", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode body: %v", err)
		}
		_, _ = io.WriteString(w, `{"id":42,"status":"scheduled","doctor_id":2,"time":"11:00 AM"}`)
	})

	appt, err := c.CreateAppointment(context.Background(), CreateAppointmentRequest{
		PatientName: "Asha",
		Email:       "asha@example.com",
		Phone:       "9876543210",
		Date:        "2025-06-01",
		Time:        "11:00 AM",
		DoctorID:    2,
	})
	if err != nil {
		t.Fatalf("CreateAppointment() error = %v", err)
	}
	if appt.ID != 42 || appt.Status != "scheduled" {
		t.Errorf("unexpected appointment %+v", appt)
	}
	if got["doctor_id"] != float64(2) {
		t.Errorf("doctor_id = %v, want 2", got["doctor_id"])
	}
	if got["patientName"] != "Asha" || got["time"] != "11:00 AM" || got["date"] != "2025-06-01" {
		t.Errorf("unexpected body %v", got)
	}
}

func TestGetAvailableTimes(t *testing.T) {
	tests := []struct {
		name string
		body string
		want []string
	}{
		{"times", `{"available_times":["10:00 AM","11:00 AM"]}`, []string{"10:00 AM", "11:00 AM"}},
		{"missing field", `{}`, []string{}},
		{"empty list", `{"available_times":[]}`, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/api/appointments/available-times" {
					t.Errorf("path = %s", r.URL.Path)
				}
				if r.URL.Query().Get("doctor_id") != "2" || r.URL.Query().Get("date") != "2025-06-01" {
					t.Errorf("query = %s", r.URL.RawQuery)
				}
				_, _ = io.WriteString(w, tt.body)
			})

			got, err := c.GetAvailableTimes(context.Background(), 2, "2025-06-01")
			if err != nil {
				t.Fatalf("GetAvailableTimes() error = %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("got[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestRescheduleAppointment_UsesQueryString(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/api/appointments/7" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if r.URL.Query().Get("date") != "2025-06-02" || r.URL.Query().Get("time") != "10:00 AM" {
			t.Errorf("query = %s", r.URL.RawQuery)
		}
		if b, _ := io.ReadAll(r.Body); len(b) != 0 {
			t.Errorf("expected empty body, got %q", b)
		}
		_, _ = io.WriteString(w, `{"message":"Appointment updated"}`)
	})

	if err := c.RescheduleAppointment(context.Background(), 7, "2025-06-02", "10:00 AM"); err != nil {
		t.Fatalf("RescheduleAppointment() error = %v", err)
	}
}

func TestCancelAppointment_NoContent(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete || r.URL.Path != "/api/appointments/9" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		w.WriteHeader(http.StatusNoContent)
	})

	if err := c.CancelAppointment(context.Background(), 9); err != nil {
		t.Fatalf("CancelAppointment() error = %v", err)
	}
}

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantMsg string
	}{
		{"detail", http.StatusBadRequest, `{"detail":"slot taken"}`, "slot taken"},
		{"message", http.StatusConflict, `{"message":"already booked"}`, "already booked"},
		{"detail wins over message", http.StatusBadRequest, `{"detail":"a","message":"b"}`, "a"},
		{"non-string detail", http.StatusUnprocessableEntity, `{"detail":[{"loc":["body"]}]}`, "HTTP error! status: 422"},
		{"no body", http.StatusNotFound, ``, "HTTP error! status: 404"},
		{"html body", http.StatusBadGateway, `<html>bad gateway</html>`, "HTTP error! status: 502"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			})

			err := c.CancelAppointment(context.Background(), 1)
			apiErr, ok := AsError(err)
			if !ok {
				t.Fatalf("expected *Error, got %T (%v)", err, err)
			}
			if apiErr.Status != tt.status {
				t.Errorf("Status = %d, want %d", apiErr.Status, tt.status)
			}
			if err.Error() != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", err.Error(), tt.wantMsg)
			}
			if errors.Is(err, ErrNetwork) {
				t.Error("HTTP error must not match ErrNetwork")
			}
			if !IsStatus(err, tt.status) {
				t.Errorf("IsStatus(%d) = false", tt.status)
			}
		})
	}
}

func TestNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	c, err := New(Config{BaseURL: url})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	_, err = c.ListAppointments(context.Background())
	if err == nil {
		t.Fatal("expected error from closed server")
	}
	if !errors.Is(err, ErrNetwork) {
		t.Errorf("expected ErrNetwork, got %v", err)
	}
	apiErr, ok := AsError(err)
	if !ok || apiErr.Status != 0 || apiErr.Endpoint != "/api/appointments" {
		t.Errorf("unexpected error %+v", apiErr)
	}
}

func TestUndecodableSuccessBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = io.WriteString(w, "<html><body>Bad Gateway</body></html>")
	})
	var buf bytes.Buffer
	c.log = slog.New(slog.NewTextHandler(&buf, nil))

	_, err := c.ListDoctors(context.Background())
	apiErr, ok := AsError(err)
	if !ok {
		t.Fatalf("expected *Error, got %T %v", err, err)
	}
	if apiErr.Status != http.StatusOK || apiErr.Endpoint != "/api/doctors" || apiErr.Message != msgInvalidResponse {
		t.Errorf("unexpected error %+v", apiErr)
	}
	if errors.Is(err, ErrNetwork) {
		t.Error("a received response is not a network error")
	}
	if !strings.Contains(buf.String(), "clinic api request failed") || !strings.Contains(buf.String(), "endpoint=/api/doctors") {
		t.Errorf("failure not logged: %s", buf.String())
	}
}

func TestConfigFrom_TrimsTrailingSlash(t *testing.T) {
	cfg := ConfigFrom(config.APIConfig{BaseURL: "https://api.example.com/"})
	if cfg.BaseURL != "https://api.example.com" {
		t.Errorf("BaseURL = %q", cfg.BaseURL)
	}
	if cfg.Timeout() != 0 {
		t.Errorf("Timeout() = %v, want 0", cfg.Timeout())
	}
}
