package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"github.com/Alijeyrad/moksha_web/internal/service/directory"
)

type DirectoryHandler struct {
	svc   directory.Service
	pages Pages
}

func NewDirectoryHandler(svc directory.Service, pages Pages) *DirectoryHandler {
	return &DirectoryHandler{svc: svc, pages: pages}
}

// GET /
func (h *DirectoryHandler) Home(c fiber.Ctx) error {
	doc := h.pages.Document()

	doctors, err := h.svc.List(c.Context())
	if err != nil {
		return h.pages.render(c, fiber.StatusOK, "home", doc, fiber.Map{
			"Error": failureMessage(err, "Failed to load doctors. Please try again later."),
		})
	}

	return h.pages.render(c, fiber.StatusOK, "home", doc, fiber.Map{
		"Doctors": doctors,
	})
}

// GET /doctor/:slug
func (h *DirectoryHandler) Profile(c fiber.Ctx) error {
	doc := h.pages.Document()

	d, err := h.svc.ResolveBySlug(c.Context(), c.Params("slug"))
	switch {
	case errors.Is(err, directory.ErrNotFound):
		return h.pages.render(c, fiber.StatusNotFound, "doctor/notfound", doc, fiber.Map{
			"Message": "Doctor not found",
		})
	case err != nil:
		return h.pages.render(c, fiber.StatusOK, "doctor/notfound", doc, fiber.Map{
			"Message": failureMessage(err, "Failed to load doctor profile."),
		})
	}

	// The document lives for this response only, so the title is never restored.
	doc.SetTitle(d.Name + " - " + doc.Clinic.Name)

	return h.pages.render(c, fiber.StatusOK, "doctor/profile", doc, fiber.Map{
		"Doctor": d,
	})
}
