package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v3"
	"github.com/sourcegraph/conc"

	"github.com/Alijeyrad/moksha_web/internal/service/booking"
	"github.com/Alijeyrad/moksha_web/internal/service/directory"
	"github.com/Alijeyrad/moksha_web/pkg/clinicapi"
)

const actionTimes = "times"

type BookingHandler struct {
	svc       booking.Service
	directory directory.Service
	pages     Pages
}

func NewBookingHandler(svc booking.Service, dir directory.Service, pages Pages) *BookingHandler {
	return &BookingHandler{svc: svc, directory: dir, pages: pages}
}

// bookingPage is everything the form screen shows besides the document.
type bookingPage struct {
	form booking.Form
	// doctorName is set when the doctor was chosen before reaching the form.
	doctorName string
	errors     map[string]string
	message    string
}

func mapBookingError(err error) (status int, page bookingPage) {
	if _, ok := booking.AsValidation(err); ok {
		return fiber.StatusUnprocessableEntity, bookingPage{errors: fieldErrors(err)}
	}
	return fiber.StatusOK, bookingPage{message: apiMessage(err, "Failed to book appointment. Please try again.")}
}

// GET /appointment
func (h *BookingHandler) Form(c fiber.Ctx) error {
	p := bookingPage{form: booking.Form{
		DoctorID: c.Query("doctor_id"),
		Date:     c.Query("date"),
		Time:     c.Query("time"),
	}}

	if q := c.Query("doctorId"); q != "" {
		p.form.DoctorID = q
		// An unusable id falls back to the doctor picker.
		if id := p.form.DoctorIDInt(); id > 0 {
			p.doctorName = c.Query("doctorName")
			if p.doctorName == "" {
				p.doctorName = h.doctorName(c, id)
			}
		}
	}

	return h.renderForm(c, fiber.StatusOK, p)
}

// POST /appointment
func (h *BookingHandler) Submit(c fiber.Ctx) error {
	var f booking.Form
	if err := c.Bind().Form(&f); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid form")
	}
	doctorName := c.FormValue("doctorName")
	if f.DoctorIDInt() <= 0 {
		doctorName = ""
	}

	if c.FormValue("action") == actionTimes {
		f.Normalize()
		return h.renderForm(c, fiber.StatusOK, bookingPage{form: f, doctorName: doctorName})
	}

	res, err := h.svc.Submit(c.Context(), f)
	if err != nil {
		status, p := mapBookingError(err)
		f.Normalize()
		p.form, p.doctorName = f, doctorName
		return h.renderForm(c, status, p)
	}

	if doctorName == "" {
		doctorName = res.Appointment.Doctor
	}

	doc := h.pages.Document()
	doc.NavigateAfter("/", res.RedirectAfter)
	return h.pages.render(c, fiber.StatusOK, "booking/success", doc, fiber.Map{
		"Result":     res,
		"DoctorName": doctorName,
	})
}

// GET /appointment/available-times
//
// Renders only the time picker, for the form script to swap in.
func (h *BookingHandler) Times(c fiber.Ctx) error {
	id, _ := strconv.Atoi(c.Query("doctor_id"))
	v := h.svc.AvailableTimes(c.Context(), id, c.Query("date"), c.Query("time"))
	return c.Render("partials/times", v)
}

func (h *BookingHandler) renderForm(c fiber.Ctx, status int, p bookingPage) error {
	var (
		doctors []clinicapi.Doctor
		times   booking.TimesView
		wg      conc.WaitGroup
	)
	ctx := c.Context()

	if p.doctorName == "" {
		wg.Go(func() {
			var err error
			if doctors, err = h.directory.List(ctx); err != nil && p.message == "" {
				p.message = failureMessage(err, "Failed to load doctors. Please try again later.")
			}
		})
	}
	wg.Go(func() {
		times = h.svc.AvailableTimes(ctx, p.form.DoctorIDInt(), p.form.Date, p.form.Time)
	})
	wg.Wait()

	return h.pages.render(c, status, "booking/form", h.pages.Document(), fiber.Map{
		"Form":       p.form,
		"DoctorName": p.doctorName,
		"Doctors":    doctors,
		"Times":      times,
		"Today":      h.svc.Today(),
		"Errors":     p.errors,
		"Error":      p.message,
	})
}

// doctorName looks up a preselected doctor that arrived without a name.
func (h *BookingHandler) doctorName(c fiber.Ctx, id int) string {
	if id <= 0 {
		return ""
	}
	d, err := h.directory.Get(c.Context(), id)
	if err != nil {
		return ""
	}
	return d.Name
}
