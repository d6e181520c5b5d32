package http

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/healthcheck"
	"github.com/gofiber/fiber/v3/middleware/helmet"
	"github.com/gofiber/fiber/v3/middleware/logger"
	recoverer "github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"

	"github.com/Alijeyrad/moksha_web/config"
	"github.com/Alijeyrad/moksha_web/internal/api/http/handler"
	"github.com/Alijeyrad/moksha_web/internal/api/http/middleware"
	"github.com/Alijeyrad/moksha_web/internal/api/http/router"
	"github.com/Alijeyrad/moksha_web/internal/api/http/view"
	"github.com/Alijeyrad/moksha_web/pkg/constants"
	"github.com/Alijeyrad/moksha_web/pkg/observability"
)

// Module provides the HTTP Server to the fx graph.
var Module = fx.Module("http", fx.Provide(handler.NewPages, NewServer))

type Params struct {
	fx.In

	Lifecycle fx.Lifecycle
	Cfg       *config.Config
	Pages     handler.Pages
	Redis     *redis.Client `optional:"true"`
	Router    *router.Router
	OTel      *observability.Provider `optional:"true"`
}

func NewServer(p Params) *fiber.App {
	app := NewApp(p.Cfg, p.Pages, p.Redis, p.OTel != nil)
	p.Router.Register(app)

	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			addr := fmt.Sprintf(":%d", p.Cfg.Server.Port)
			go func() {
				if err := app.Listen(addr, fiber.ListenConfig{DisableStartupMessage: true}); err != nil {
					slog.Error("HTTP server error", "error", err)
				}
			}()
			slog.Info("HTTP server listening", "addr", addr, "env", p.Cfg.Server.Environment)
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return app.ShutdownWithContext(ctx)
		},
	})

	return app
}

// NewApp builds the fiber app with views and global middleware but no
// routes. rdb may be nil.
func NewApp(cfg *config.Config, pages handler.Pages, rdb *redis.Client, traced bool) *fiber.App {
	timeout := time.Duration(cfg.Server.TimeoutSeconds) * time.Second

	app := fiber.New(fiber.Config{
		AppName:      constants.AppName,
		Views:        view.NewEngine(view.EngineOptions{PhoneRegion: cfg.Clinic.PhoneRegion, Reload: cfg.Server.Environment == "development"}),
		ErrorHandler: handler.ErrorHandler(pages),
		ReadTimeout:  timeout,
		WriteTimeout: timeout,
	})

	configureGlobalMiddleware(app, cfg, rdb, traced)
	return app
}

func configureGlobalMiddleware(app *fiber.App, cfg *config.Config, rdb *redis.Client, traced bool) {
	app.Use(middleware.RequestID())
	app.Use(recoverer.New())

	if traced {
		app.Use(observability.FiberMiddleware(
			"/static",
			healthcheck.LivenessEndpoint,
			healthcheck.ReadinessEndpoint,
			healthcheck.StartupEndpoint,
			router.MetricsPath(cfg),
		))
	}

	if cfg.Server.Environment == "production" {
		// Doctor photos are hosted elsewhere and do not send CORP headers.
		app.Use(helmet.New(helmet.Config{CrossOriginEmbedderPolicy: "unsafe-none"}))
		if cfg.Server.CORS.Enabled {
			app.Use(cors.New(cors.Config{AllowOrigins: cfg.Server.CORS.AllowOrigins}))
		}
		app.Use(middleware.NewLimiter(cfg.Server.RateLimit, rdb))
	}

	app.Use(logger.New(logger.Config{
		Format: "${ip} - [${time}] [req_id=${locals:request_id}] ${method} ${url} ${status} ${latency}\n",
	}))
}
