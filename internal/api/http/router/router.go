package router

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/gofiber/fiber/v3/middleware/healthcheck"
	"github.com/gofiber/fiber/v3/middleware/static"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"

	"github.com/Alijeyrad/moksha_web/config"
	"github.com/Alijeyrad/moksha_web/internal/api/http/handler"
	"github.com/Alijeyrad/moksha_web/internal/api/http/middleware"
	"github.com/Alijeyrad/moksha_web/internal/api/http/view"
	"github.com/Alijeyrad/moksha_web/internal/service/booking"
	"github.com/Alijeyrad/moksha_web/internal/service/directory"
	"github.com/Alijeyrad/moksha_web/internal/service/lookup"
	"github.com/Alijeyrad/moksha_web/internal/service/reschedule"
)

// Module provides the Router to the fx graph.
var Module = fx.Module("router", fx.Provide(NewRouter))

const readinessTimeout = 3 * time.Second

type Params struct {
	fx.In

	Cfg           *config.Config
	Pages         handler.Pages
	DirectorySvc  directory.Service
	BookingSvc    booking.Service
	LookupSvc     lookup.Service
	RescheduleSvc reschedule.Service
}

type Router struct {
	p Params
}

func NewRouter(p Params) *Router {
	return &Router{p: p}
}

func (r *Router) Register(app *fiber.App) {
	// 1. Health, metrics & assets
	r.registerSystemRoutes(app)
	app.Use("/static", static.New("", static.Config{FS: view.Static()}))

	// 2. Initialize Middlewares
	visitor := middleware.Visitor(r.p.Cfg.Server.SecureCookies)

	// 3. Initialize Handlers
	directoryH := handler.NewDirectoryHandler(r.p.DirectorySvc, r.p.Pages)
	bookingH := handler.NewBookingHandler(r.p.BookingSvc, r.p.DirectorySvc, r.p.Pages)
	lookupH := handler.NewLookupHandler(r.p.LookupSvc, r.p.Pages)
	rescheduleH := handler.NewRescheduleHandler(r.p.RescheduleSvc, r.p.Pages)

	// 4. Delegate to sub-files
	r.registerDirectoryRoutes(app, directoryH)
	r.registerBookingRoutes(app, bookingH)
	r.registerLookupRoutes(app, lookupH, visitor)
	r.registerRescheduleRoutes(app, rescheduleH, visitor)
}

func (r *Router) registerSystemRoutes(app *fiber.App) {
	app.Get(healthcheck.LivenessEndpoint, healthcheck.New())
	app.Get(healthcheck.ReadinessEndpoint, healthcheck.New(healthcheck.Config{
		Probe: func(c fiber.Ctx) bool {
			ctx, cancel := context.WithTimeout(c.Context(), readinessTimeout)
			defer cancel()
			_, err := r.p.DirectorySvc.List(ctx)
			return err == nil
		},
	}))
	app.Get(healthcheck.StartupEndpoint, healthcheck.New())

	if r.p.Cfg.Observability.Enabled && r.p.Cfg.Observability.Metrics.Enabled {
		app.Get(MetricsPath(r.p.Cfg), adaptor.HTTPHandler(promhttp.Handler()))
	}
}

// MetricsPath is where Prometheus scrapes, "/metrics" unless configured.
func MetricsPath(cfg *config.Config) string {
	if cfg.Observability.Metrics.Path == "" {
		return "/metrics"
	}
	return cfg.Observability.Metrics.Path
}
