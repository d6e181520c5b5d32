package router

import (
	"github.com/gofiber/fiber/v3"

	"github.com/Alijeyrad/moksha_web/internal/api/http/handler"
)

func (r *Router) registerDirectoryRoutes(app fiber.Router, dh *handler.DirectoryHandler) {
	app.Get("/", dh.Home)
	app.Get("/doctor/:slug", dh.Profile)
}
