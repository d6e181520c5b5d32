package handler

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v3"

	"github.com/Alijeyrad/moksha_web/internal/service/booking"
	"github.com/Alijeyrad/moksha_web/internal/service/reschedule"
	"github.com/Alijeyrad/moksha_web/pkg/reqctx"
)

const (
	msgDoctorMissing    = "Doctor information is missing for this appointment. Please call us."
	msgRescheduleFailed = "Failed to reschedule. Please try again or call us."
)

type RescheduleHandler struct {
	svc   reschedule.Service
	pages Pages
}

func NewRescheduleHandler(svc reschedule.Service, pages Pages) *RescheduleHandler {
	return &RescheduleHandler{svc: svc, pages: pages}
}

type reschedulePage struct {
	sess    *reschedule.Session
	date    string
	slot    string
	errors  map[string]string
	message string
}

// GET /reschedule-appointment
func (h *RescheduleHandler) Form(c fiber.Ctx) error {
	sess, err := h.begin(c)
	if err != nil {
		return h.mapBeginError(c, err)
	}
	return h.renderForm(c, fiber.StatusOK, reschedulePage{sess: sess})
}

// POST /reschedule-appointment
func (h *RescheduleHandler) Submit(c fiber.Ctx) error {
	sess, err := h.begin(c)
	if err != nil {
		return h.mapBeginError(c, err)
	}

	p := reschedulePage{sess: sess, date: c.FormValue("date"), slot: c.FormValue("time")}
	if c.FormValue("action") == actionTimes {
		return h.renderForm(c, fiber.StatusOK, p)
	}

	visitor, _ := reqctx.VisitorIDFromContext(c.Context())
	res, err := h.svc.Submit(c.Context(), visitor, sess, p.date, p.slot)
	if err != nil {
		status := fiber.StatusOK
		switch {
		case errors.Is(err, booking.ErrInvalidInput):
			status, p.errors = fiber.StatusUnprocessableEntity, fieldErrors(err)
		case errors.Is(err, reschedule.ErrDoctorUnknown):
			p.message = msgDoctorMissing
		default:
			p.message = failureMessage(err, msgRescheduleFailed)
		}
		return h.renderForm(c, status, p)
	}

	doc := h.pages.Document()
	doc.NavigateAfter("/", res.RedirectAfter)
	return h.pages.render(c, fiber.StatusOK, "reschedule/success", doc, fiber.Map{
		"Result": res,
	})
}

// POST /reschedule-appointment/abandon
func (h *RescheduleHandler) Abandon(c fiber.Ctx) error {
	visitor, _ := reqctx.VisitorIDFromContext(c.Context())
	if err := h.svc.Abandon(c.Context(), visitor); err != nil {
		slog.WarnContext(c.Context(), "abandon reschedule failed", "error", err)
	}
	return c.Redirect().Status(fiber.StatusSeeOther).To("/cancel-appointment")
}

func (h *RescheduleHandler) begin(c fiber.Ctx) (*reschedule.Session, error) {
	visitor, _ := reqctx.VisitorIDFromContext(c.Context())
	return h.svc.Begin(c.Context(), visitor)
}

// mapBeginError sends visitors without a handed-off appointment to the hub;
// the form is never shown without one.
func (h *RescheduleHandler) mapBeginError(c fiber.Ctx, err error) error {
	if !errors.Is(err, reschedule.ErrNoHandoff) {
		slog.ErrorContext(c.Context(), "load reschedule handoff failed", "error", err)
	}
	return c.Redirect().Status(fiber.StatusSeeOther).To("/manage-appointments")
}

func (h *RescheduleHandler) renderForm(c fiber.Ctx, status int, p reschedulePage) error {
	times, err := h.svc.AvailableTimes(c.Context(), p.sess, p.date, p.slot)
	doctorMissing := errors.Is(err, reschedule.ErrDoctorUnknown)
	if doctorMissing {
		p.message = msgDoctorMissing
	}

	return h.pages.render(c, status, "reschedule/form", h.pages.Document(), fiber.Map{
		"Session":       p.sess,
		"Date":          p.date,
		"Times":         times,
		"Today":         h.svc.Today(),
		"DoctorMissing": doctorMissing,
		"Errors":        p.errors,
		"Error":         p.message,
	})
}
