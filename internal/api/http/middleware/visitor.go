package middleware

import (
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"github.com/Alijeyrad/moksha_web/pkg/constants"
	"github.com/Alijeyrad/moksha_web/pkg/reqctx"
)

const visitorCookieMaxAge = 30 * 24 * time.Hour

// Visitor makes sure every browser carries an anonymous visitor id. The id
// is random and only scopes per-visitor server state such as the reschedule
// handoff; it identifies no person.
func Visitor(secure bool) fiber.Handler {
	return func(c fiber.Ctx) error {
		id := c.Cookies(constants.VisitorCookie)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
			c.Cookie(&fiber.Cookie{
				Name:     constants.VisitorCookie,
				Value:    id,
				Path:     "/",
				MaxAge:   int(visitorCookieMaxAge.Seconds()),
				HTTPOnly: true,
				Secure:   secure,
				SameSite: fiber.CookieSameSiteLaxMode,
			})
		}

		c.Locals(constants.LocalsVisitorID, id)
		c.SetContext(reqctx.WithVisitorID(c.Context(), id))

		return c.Next()
	}
}

// VisitorFromFiber returns the id set by Visitor.
func VisitorFromFiber(c fiber.Ctx) string {
	s, _ := c.Locals(constants.LocalsVisitorID).(string)
	return s
}
