package logs

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/grafana/loki-client-go/loki"
	promconfig "github.com/prometheus/common/config"
	slogloki "github.com/samber/slog-loki/v3"

	"github.com/Alijeyrad/moksha_web/config"
)

// newLokiHandler pushes records to Loki's push API. The returned client must
// be stopped to flush buffered batches.
func newLokiHandler(cfg config.LokiConfig, level slog.Level) (slog.Handler, *loki.Client, error) {
	lcfg, err := loki.NewDefaultConfig(strings.TrimRight(cfg.Endpoint, "/") + "/loki/api/v1/push")
	if err != nil {
		return nil, nil, fmt.Errorf("loki config: %w", err)
	}
	if cfg.Username != "" {
		lcfg.Client.BasicAuth = &promconfig.BasicAuth{
			Username: cfg.Username,
			Password: promconfig.Secret(cfg.Password),
		}
	}

	client, err := loki.New(lcfg)
	if err != nil {
		return nil, nil, fmt.Errorf("loki client: %w", err)
	}

	h := slogloki.Option{Level: level, Client: client}.NewLokiHandler()
	return h, client, nil
}
