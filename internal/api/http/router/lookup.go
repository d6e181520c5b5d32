package router

import (
	"github.com/gofiber/fiber/v3"

	"github.com/Alijeyrad/moksha_web/internal/api/http/handler"
)

func (r *Router) registerLookupRoutes(app fiber.Router, lh *handler.LookupHandler, visitor fiber.Handler) {
	app.Get("/manage-appointments", lh.Hub)

	cancel := app.Group("/cancel-appointment", visitor)

	cancel.Get("/", lh.PhoneEntry)
	cancel.Post("/", lh.Search)
	cancel.Post("/confirm", lh.Confirm)
	cancel.Post("/cancel", lh.Cancel)
	cancel.Post("/reschedule", lh.Reschedule)
}
