package router

import (
	"github.com/gofiber/fiber/v3"

	"github.com/Alijeyrad/moksha_web/internal/api/http/handler"
)

// The reschedule screen is only reachable through the lookup handoff, which
// is keyed by the visitor cookie.
func (r *Router) registerRescheduleRoutes(app fiber.Router, rh *handler.RescheduleHandler, visitor fiber.Handler) {
	rs := app.Group("/reschedule-appointment", visitor)

	rs.Get("/", rh.Form)
	rs.Post("/", rh.Submit)
	rs.Post("/abandon", rh.Abandon)
}
