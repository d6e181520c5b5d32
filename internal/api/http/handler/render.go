package handler

import (
	"errors"
	"log/slog"
	"maps"

	"github.com/gofiber/fiber/v3"

	"github.com/Alijeyrad/moksha_web/config"
	"github.com/Alijeyrad/moksha_web/internal/api/http/view"
	"github.com/Alijeyrad/moksha_web/internal/service/booking"
	"github.com/Alijeyrad/moksha_web/pkg/clinicapi"
)

const msgNetwork = "Unable to reach the clinic. Please try again."

// Pages renders full screens inside the site layout.
type Pages struct {
	clinic view.Clinic
}

func NewPages(cfg *config.Config) Pages {
	return Pages{clinic: view.Clinic{
		Name:    cfg.Clinic.Name,
		Phone:   cfg.Clinic.Phone,
		Email:   cfg.Clinic.Email,
		Address: cfg.Clinic.Address,
	}}
}

// Document starts the page state of one response.
func (p Pages) Document() *view.Document {
	return view.NewDocument(p.clinic)
}

func (p Pages) render(c fiber.Ctx, status int, name string, doc *view.Document, bind fiber.Map) error {
	if bind == nil {
		bind = fiber.Map{}
	}
	bind["Doc"] = doc
	if _, ok := bind["Errors"]; !ok {
		bind["Errors"] = map[string]string{}
	}
	return c.Status(status).Render(name, bind, view.Layout)
}

// fieldErrors returns the per-field messages of a validation failure.
func fieldErrors(err error) map[string]string {
	out := map[string]string{}
	if ve, ok := booking.AsValidation(err); ok {
		maps.Copy(out, ve.Fields)
	}
	return out
}

// apiMessage is what the visitor sees when an API call fails: the server's
// own message when it sent one, else fallback.
func apiMessage(err error, fallback string) string {
	if errors.Is(err, clinicapi.ErrNetwork) {
		return msgNetwork
	}
	if apiErr, ok := clinicapi.AsError(err); ok && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

// failureMessage hides server detail behind a fixed message.
func failureMessage(err error, msg string) string {
	if errors.Is(err, clinicapi.ErrNetwork) {
		return msgNetwork
	}
	return msg
}

// ErrorHandler renders errors that escape a screen handler as a plain page.
func ErrorHandler(p Pages) fiber.ErrorHandler {
	return func(c fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		msg := "Something went wrong. Please try again later."

		var fe *fiber.Error
		if errors.As(err, &fe) {
			status = fe.Code
			msg = fe.Message
		}
		if status >= fiber.StatusInternalServerError {
			slog.ErrorContext(c.Context(), "request failed",
				"method", c.Method(), "path", c.Path(), "error", err)
		}

		doc := p.Document()
		if rerr := p.render(c, status, "errors/error", doc, fiber.Map{
			"Status":  status,
			"Message": msg,
		}); rerr != nil {
			return c.Status(status).SendString(msg)
		}
		return nil
	}
}
