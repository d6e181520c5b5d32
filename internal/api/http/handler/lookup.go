package handler

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v3"

	"github.com/Alijeyrad/moksha_web/internal/service/booking"
	"github.com/Alijeyrad/moksha_web/internal/service/lookup"
	"github.com/Alijeyrad/moksha_web/pkg/reqctx"
)

const (
	msgNoAppointments = "No appointments found with this phone number"
	msgSearchFailed   = "Failed to search for appointments. Please try again."
	msgCancelFailed   = "Failed to cancel appointment. Please try again or call us."
	msgSelectFailed   = "Failed to open this appointment. Please try again."
	msgApptGone       = "This appointment could not be found. It may have been cancelled already."
)

type LookupHandler struct {
	svc   lookup.Service
	pages Pages
}

func NewLookupHandler(svc lookup.Service, pages Pages) *LookupHandler {
	return &LookupHandler{svc: svc, pages: pages}
}

// GET /manage-appointments
func (h *LookupHandler) Hub(c fiber.Ctx) error {
	return h.pages.render(c, fiber.StatusOK, "manage/hub", h.pages.Document(), nil)
}

// GET /cancel-appointment
//
// Also the "back" target: it always starts from an empty phone entry.
func (h *LookupHandler) PhoneEntry(c fiber.Ctx) error {
	return h.phonePage(c, fiber.StatusOK, "", nil, "")
}

// POST /cancel-appointment
func (h *LookupHandler) Search(c fiber.Ctx) error {
	return h.results(c, c.FormValue("phone"), "")
}

// POST /cancel-appointment/confirm
func (h *LookupHandler) Confirm(c fiber.Ctx) error {
	phone, id := c.FormValue("phone"), formID(c)

	appt, err := h.svc.Find(c.Context(), phone, id)
	if err != nil {
		return h.mapLookupError(c, phone, err, msgSearchFailed)
	}

	return h.pages.render(c, fiber.StatusOK, "lookup/confirm", h.pages.Document(), fiber.Map{
		"Phone":       booking.NormalizePhone(phone),
		"Appointment": appt,
	})
}

// POST /cancel-appointment/cancel
func (h *LookupHandler) Cancel(c fiber.Ctx) error {
	phone, id := c.FormValue("phone"), formID(c)
	if c.FormValue("confirm") != "yes" {
		return h.results(c, phone, "")
	}

	res, err := h.svc.Cancel(c.Context(), phone, id)
	if err != nil {
		return h.mapLookupError(c, phone, err, msgCancelFailed)
	}

	doc := h.pages.Document()
	doc.NavigateAfter("/", res.RedirectAfter)
	return h.pages.render(c, fiber.StatusOK, "lookup/cancelled", doc, fiber.Map{
		"Appointment": res.Appointment,
	})
}

// POST /cancel-appointment/reschedule
func (h *LookupHandler) Reschedule(c fiber.Ctx) error {
	phone, id := c.FormValue("phone"), formID(c)
	visitor, _ := reqctx.VisitorIDFromContext(c.Context())

	if err := h.svc.Select(c.Context(), visitor, phone, id); err != nil {
		return h.mapLookupError(c, phone, err, msgSelectFailed)
	}
	return c.Redirect().Status(fiber.StatusSeeOther).To("/reschedule-appointment")
}

// mapLookupError keeps the visitor in the flow: a bad phone goes back to
// phone entry, anything else re-lists the phone's appointments with msg.
func (h *LookupHandler) mapLookupError(c fiber.Ctx, phone string, err error, msg string) error {
	switch {
	case errors.Is(err, booking.ErrInvalidInput):
		return h.phonePage(c, fiber.StatusUnprocessableEntity, phone, fieldErrors(err), "")
	case errors.Is(err, lookup.ErrAppointmentNotFound):
		return h.results(c, phone, msgApptGone)
	case errors.Is(err, lookup.ErrNoAppointments):
		return h.results(c, phone, "")
	default:
		return h.results(c, phone, failureMessage(err, msg))
	}
}

// results searches again for phone and renders the list with an optional
// error banner.
func (h *LookupHandler) results(c fiber.Ctx, phone, errMsg string) error {
	res, err := h.svc.Search(c.Context(), phone)
	switch {
	case errors.Is(err, booking.ErrInvalidInput):
		return h.phonePage(c, fiber.StatusUnprocessableEntity, phone, fieldErrors(err), "")
	case errors.Is(err, lookup.ErrNoAppointments):
		return h.pages.render(c, fiber.StatusOK, "lookup/results", h.pages.Document(), fiber.Map{
			"Phone": res.Phone,
			"Empty": msgNoAppointments,
			"Error": errMsg,
		})
	case err != nil:
		if errMsg == "" {
			errMsg = failureMessage(err, msgSearchFailed)
		}
		return h.phonePage(c, fiber.StatusOK, booking.NormalizePhone(phone), nil, errMsg)
	}

	return h.pages.render(c, fiber.StatusOK, "lookup/results", h.pages.Document(), fiber.Map{
		"Phone":        res.Phone,
		"Appointments": res.Appointments,
		"Error":        errMsg,
	})
}

func (h *LookupHandler) phonePage(c fiber.Ctx, status int, phone string, errs map[string]string, msg string) error {
	return h.pages.render(c, status, "lookup/phone", h.pages.Document(), fiber.Map{
		"Phone":  booking.NormalizePhone(phone),
		"Errors": errs,
		"Error":  msg,
	})
}

func formID(c fiber.Ctx) int {
	id, err := strconv.Atoi(c.FormValue("id"))
	if err != nil {
		return 0
	}
	return id
}
