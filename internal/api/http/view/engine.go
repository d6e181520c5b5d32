package view

import (
	"embed"
	"io/fs"
	"net/http"

	"github.com/gofiber/template/html/v2"

	"github.com/Alijeyrad/moksha_web/internal/service/booking"
	"github.com/Alijeyrad/moksha_web/internal/service/directory"
	"github.com/Alijeyrad/moksha_web/pkg/constants"
	"github.com/Alijeyrad/moksha_web/pkg/phone"
)

// Layout wraps every full page.
const Layout = "layouts/main"

//go:embed templates
var templatesFS embed.FS

//go:embed static
var staticFS embed.FS

// EngineOptions configure template helpers.
type EngineOptions struct {
	// PhoneRegion formats patient phone numbers, e.g. "IN".
	PhoneRegion string
	// Reload re-parses templates on every render (development only).
	Reload bool
}

// NewEngine returns the html/template engine over the embedded templates.
func NewEngine(opts EngineOptions) *html.Engine {
	sub, err := fs.Sub(templatesFS, "templates")
	if err != nil {
		panic(err)
	}

	engine := html.NewFileSystem(http.FS(sub), ".html")
	if opts.PhoneRegion == "" {
		opts.PhoneRegion = constants.ClinicPhoneRegion
	}
	engine.Reload(opts.Reload)
	engine.AddFunc("slug", directory.Slug)
	engine.AddFunc("longDate", LongDate)
	engine.AddFunc("phoneDisplay", func(s string) string {
		return phone.Display(s, opts.PhoneRegion)
	})
	return engine
}

// Static returns the embedded CSS and JS, rooted at the static directory.
func Static() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

// LongDate renders "2025-06-01" as "Sunday, June 1, 2025". Anything that is
// not an ISO date is returned as is.
func LongDate(iso string) string {
	t, err := booking.ParseDate(iso)
	if err != nil {
		return iso
	}
	return t.Format("Monday, January 2, 2006")
}
