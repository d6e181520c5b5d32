package router

import (
	"github.com/gofiber/fiber/v3"

	"github.com/Alijeyrad/moksha_web/internal/api/http/handler"
)

func (r *Router) registerBookingRoutes(app fiber.Router, bh *handler.BookingHandler) {
	appt := app.Group("/appointment")

	appt.Get("/", bh.Form)
	appt.Post("/", bh.Submit)
	appt.Get("/available-times", bh.Times)
}
