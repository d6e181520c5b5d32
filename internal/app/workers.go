package app

import (
	"context"
	"log/slog"
	"time"

	"go.uber.org/fx"

	"github.com/Alijeyrad/moksha_web/config"
	"github.com/Alijeyrad/moksha_web/internal/service/notify"
	"github.com/Alijeyrad/moksha_web/pkg/email"
)

// WorkerModule runs the background front-desk notifier.
var WorkerModule = fx.Module("workers",
	fx.Provide(ProvideNotifier),
)

type WorkerParams struct {
	fx.In

	Lc    fx.Lifecycle
	Cfg   *config.Config
	Email *email.Client
}

// ProvideNotifier is a no-op unless both notify and email are enabled.
func ProvideNotifier(p WorkerParams) notify.Notifier {
	enabled := p.Cfg.Notify.Enabled && p.Email.Enabled()
	if p.Cfg.Notify.Enabled && !p.Email.Enabled() {
		slog.Warn("notify: enabled but email is disabled, notices will not be sent")
	}

	n := notify.New(p.Email, notify.Options{
		Enabled:    enabled,
		To:         p.Cfg.Notify.FrontDeskEmail,
		ClinicName: p.Cfg.Clinic.Name,
		Workers:    p.Cfg.Notify.Workers,
		Timeout:    time.Duration(p.Cfg.Email.SMTP.TimeoutSeconds) * time.Second,
	})

	p.Lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			slog.Debug("notify: draining queued notices")
			return n.Stop(ctx)
		},
	})
	if enabled {
		slog.Info("notify: started", "workers", p.Cfg.Notify.Workers)
	}
	return n
}
