package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/gofiber/storage/memory/v2"
	fiberredis "github.com/gofiber/storage/redis/v3"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"

	"github.com/Alijeyrad/moksha_web/config"
	"github.com/Alijeyrad/moksha_web/pkg/clinicapi"
	"github.com/Alijeyrad/moksha_web/pkg/email"
	"github.com/Alijeyrad/moksha_web/pkg/handoff"
	"github.com/Alijeyrad/moksha_web/pkg/observability"
	redispkg "github.com/Alijeyrad/moksha_web/pkg/redis"
)

// InfraModule provides all infrastructure dependencies.
var InfraModule = fx.Module("infra",
	fx.Provide(ProvideAPIClient),
	fx.Provide(ProvideRedis),
	fx.Provide(ProvideHandoffStorage),
	fx.Provide(ProvideEmailClient),
	fx.Provide(ProvideOTel),
)

func ProvideAPIClient(cfg *config.Config) (*clinicapi.Client, error) {
	return clinicapi.NewFromConfig(cfg.API)
}

// ProvideRedis returns nil when Redis is disabled; consumers fall back to
// process memory.
func ProvideRedis(lc fx.Lifecycle, cfg *config.Config) (*redis.Client, error) {
	if !cfg.Redis.Enabled {
		return nil, nil
	}
	rdb, err := redispkg.NewRedisFromConfig(context.Background(), cfg.Redis)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			slog.Debug("closing Redis connection")
			return rdb.Close()
		},
	})
	return rdb, nil
}

// ProvideHandoffStorage keeps screen handoffs in Redis when available so any
// replica can serve the next request. Without Redis they live in memory.
func ProvideHandoffStorage(lc fx.Lifecycle, rdb *redis.Client) handoff.Storage {
	if rdb != nil {
		return fiberredis.NewFromConnection(rdb)
	}

	slog.Warn("redis disabled, handoff storage is in-memory")
	store := memory.New(memory.Config{GCInterval: 30 * time.Second})
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return store.Close()
		},
	})
	return store
}

func ProvideEmailClient(cfg *config.Config) (*email.Client, error) {
	return email.NewFromConfig(cfg.Email)
}

func ProvideOTel(lc fx.Lifecycle, cfg *config.Config) (*observability.Provider, error) {
	if !cfg.Observability.Enabled {
		return nil, nil
	}
	provider, err := observability.Setup(context.Background(), observability.ConfigFrom(cfg))
	if err != nil {
		return nil, err
	}
	slog.Info("observability initialized",
		"tracing", cfg.Observability.Tracing.Enabled,
		"metrics", cfg.Observability.Metrics.Enabled,
	)
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			slog.Debug("shutting down observability providers")
			return provider.Shutdown(ctx)
		},
	})
	return provider, nil
}
