package http_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v3"

	"github.com/Alijeyrad/moksha_web/config"
	site "github.com/Alijeyrad/moksha_web/internal/api/http"
	"github.com/Alijeyrad/moksha_web/internal/api/http/handler"
)

func TestNewApp_SecurityHeaders(t *testing.T) {
	tests := []struct {
		name     string
		env      string
		wantCOEP string
		wantXCTO string
	}{
		{"production allows cross-origin photos", "production", "unsafe-none", "nosniff"},
		{"development has no helmet", "development", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{
				Server: config.ServerConfig{
					Port:        8080,
					Environment: tt.env,
					RateLimit:   config.RateLimitConfig{Max: 100, ExpirationSeconds: 60},
				},
				Clinic: config.ClinicConfig{Name: "Moksha Dental Experts"},
			}
			app := site.NewApp(cfg, handler.NewPages(cfg), nil, false)
			app.Get("/ping", func(c fiber.Ctx) error { return c.SendString("pong") })

			resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/ping", nil), fiber.TestConfig{Timeout: 5 * time.Second})
			if err != nil {
				t.Fatalf("app.Test() error = %v", err)
			}
			defer resp.Body.Close()

			if got := resp.Header.Get("Cross-Origin-Embedder-Policy"); got != tt.wantCOEP {
				t.Errorf("Cross-Origin-Embedder-Policy = %q, want %q", got, tt.wantCOEP)
			}
			if got := resp.Header.Get("X-Content-Type-Options"); got != tt.wantXCTO {
				t.Errorf("X-Content-Type-Options = %q, want %q", got, tt.wantXCTO)
			}
		})
	}
}
