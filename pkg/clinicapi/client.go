// Package clinicapi is the HTTP client for the clinic's doctors and
// appointments REST API.
package clinicapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/google/go-querystring/query"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/Alijeyrad/moksha_web/config"
)

const (
	tracerName = "github.com/Alijeyrad/moksha_web/pkg/clinicapi"

	maxBodyBytes = 1 << 20

	// msgInvalidResponse is shown when a 2xx body is not the expected JSON,
	// e.g. an HTML page from a proxy.
	msgInvalidResponse = "Unexpected response from the clinic. Please try again."
)

// Client talks to the clinic API. Every operation issues exactly one HTTP
// request: there are no retries.
type Client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
	tracer     trace.Tracer
	log        *slog.Logger
}

// New creates a Client from cfg.
func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("clinic api base url is empty")
	}
	return &Client{
		baseURL:    cfg.BaseURL,
		userAgent:  cfg.UserAgent,
		httpClient: &http.Client{Timeout: cfg.Timeout()},
		tracer:     otel.Tracer(tracerName),
		log:        slog.Default(),
	}, nil
}

// NewFromConfig builds a client from the api section of the config.
func NewFromConfig(cfg config.APIConfig) (*Client, error) {
	return New(ConfigFrom(cfg))
}

// ListDoctors returns the full doctor roster.
func (c *Client) ListDoctors(ctx context.Context) ([]Doctor, error) {
	var doctors []Doctor
	if err := c.do(ctx, http.MethodGet, "/api/doctors", nil, nil, &doctors); err != nil {
		return nil, err
	}
	return doctors, nil
}

// GetDoctor returns one doctor by id.
func (c *Client) GetDoctor(ctx context.Context, id int) (*Doctor, error) {
	var doctor Doctor
	if err := c.do(ctx, http.MethodGet, "/api/doctors/"+strconv.Itoa(id), nil, nil, &doctor); err != nil {
		return nil, err
	}
	return &doctor, nil
}

// CreateAppointment books a new appointment. The server assigns id and status.
func (c *Client) CreateAppointment(ctx context.Context, req CreateAppointmentRequest) (*Appointment, error) {
	var appt Appointment
	if err := c.do(ctx, http.MethodPost, "/api/appointments", nil, req, &appt); err != nil {
		return nil, err
	}
	return &appt, nil
}

// ListAppointments returns every appointment the server knows about.
func (c *Client) ListAppointments(ctx context.Context) ([]Appointment, error) {
	var appts []Appointment
	if err := c.do(ctx, http.MethodGet, "/api/appointments", nil, nil, &appts); err != nil {
		return nil, err
	}
	return appts, nil
}

// GetAvailableTimes returns the open slot labels for one doctor on one date.
func (c *Client) GetAvailableTimes(ctx context.Context, doctorID int, date string) ([]string, error) {
	var resp availableTimesResponse
	q := availableTimesQuery{DoctorID: doctorID, Date: date}
	if err := c.do(ctx, http.MethodGet, "/api/appointments/available-times", q, nil, &resp); err != nil {
		return nil, err
	}
	if resp.AvailableTimes == nil {
		return []string{}, nil
	}
	return resp.AvailableTimes, nil
}

// RescheduleAppointment moves an appointment. The API takes the new date and
// time in the query string, not in a body.
func (c *Client) RescheduleAppointment(ctx context.Context, id int, date, slot string) error {
	q := rescheduleQuery{Date: date, Time: slot}
	return c.do(ctx, http.MethodPut, "/api/appointments/"+strconv.Itoa(id), q, nil, nil)
}

// CancelAppointment deletes an appointment.
func (c *Client) CancelAppointment(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, "/api/appointments/"+strconv.Itoa(id), nil, nil, nil)
}

// do sends one request and decodes a JSON response into out (when non-nil).
func (c *Client) do(ctx context.Context, method, path string, q any, body any, out any) error {
	endpoint := path
	if q != nil {
		values, err := query.Values(q)
		if err != nil {
			return fmt.Errorf("encode query: %w", err)
		}
		endpoint += "?" + values.Encode()
	}

	ctx, span := c.tracer.Start(ctx, method+" "+path,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.method", method),
			attribute.String("http.route", path),
		),
	)
	defer span.End()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	res, err := c.httpClient.Do(req)
	if err != nil {
		apiErr := &Error{Method: method, Endpoint: endpoint, Err: err}
		c.fail(ctx, span, apiErr)
		return apiErr
	}
	defer res.Body.Close()

	span.SetAttributes(attribute.Int("http.status_code", res.StatusCode))

	raw, err := io.ReadAll(io.LimitReader(res.Body, maxBodyBytes))
	if err != nil {
		apiErr := &Error{Method: method, Endpoint: endpoint, Err: fmt.Errorf("read response: %w", err)}
		c.fail(ctx, span, apiErr)
		return apiErr
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		var eb errorBody
		_ = json.Unmarshal(raw, &eb)
		apiErr := &Error{
			Method:   method,
			Endpoint: endpoint,
			Status:   res.StatusCode,
			Message:  statusMessage(res.StatusCode, eb),
		}
		c.fail(ctx, span, apiErr)
		return apiErr
	}

	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		apiErr := &Error{
			Method:   method,
			Endpoint: endpoint,
			Status:   res.StatusCode,
			Message:  msgInvalidResponse,
			Err:      fmt.Errorf("decode response: %w", err),
		}
		c.fail(ctx, span, apiErr)
		return apiErr
	}
	return nil
}

func (c *Client) fail(ctx context.Context, span trace.Span, err *Error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	c.log.ErrorContext(ctx, "clinic api request failed",
		"method", err.Method,
		"endpoint", err.Endpoint,
		"status", err.Status,
		"error", err.Error(),
	)
}
