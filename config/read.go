package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/Alijeyrad/moksha_web/pkg/constants"
)

func ReadConfig(configPath string) (*Config, error) {
	// A local .env is optional; real environment variables always win.
	_ = godotenv.Load(".env")

	v := viper.New()
	v.SetConfigName(constants.ConfigName)
	v.SetConfigType(constants.ConfigFormat)
	v.AddConfigPath(configPath)

	setDefaults(v)

	// Allow env vars to override config values.
	// e.g. MOKSHA_API_BASE_URL overrides api.base_url
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read the config file (optional in Docker environments)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %v", err)
		}
		if os.Getenv(constants.EnvPrefix+"_API_BASE_URL") == "" {
			return nil, fmt.Errorf("config file not found in %q and %s_API_BASE_URL is not set", configPath, constants.EnvPrefix)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %v", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &config, nil
}

func MustReadConfig(path string) *Config {
	config, err := ReadConfig(path)
	if err != nil {
		panic(err)
	}
	return config
}

// setDefaults registers every key so AutomaticEnv can override keys that are
// absent from the file.
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.timeout_seconds", 30)
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.secure_cookies", false)
	v.SetDefault("server.cors.enabled", false)
	v.SetDefault("server.rate_limit.max", 60)
	v.SetDefault("server.rate_limit.expiration_seconds", 30)

	v.SetDefault("api.base_url", "")
	v.SetDefault("api.timeout_seconds", 0)
	v.SetDefault("api.user_agent", "moksha-web")

	v.SetDefault("clinic.name", "Moksha Dental Experts")
	v.SetDefault("clinic.phone", "63024 03471")
	v.SetDefault("clinic.phone_region", constants.ClinicPhoneRegion)
	v.SetDefault("clinic.time_zone", "Asia/Kolkata")
	v.SetDefault("clinic.email", "mokshadentalexperts@gmail.com")
	v.SetDefault("clinic.address", "Kotipalli Bus Stand backside, Rajahmundry")

	v.SetDefault("booking.success_redirect_seconds", 8)
	v.SetDefault("booking.cancel_redirect_seconds", 3)
	v.SetDefault("booking.reschedule_redirect_seconds", 3)
	v.SetDefault("booking.fallback_doctor_id", 0)

	v.SetDefault("handoff.ttl_minutes", 15)

	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.username", "")
	v.SetDefault("redis.password", "")

	v.SetDefault("email.enabled", false)
	v.SetDefault("email.from", "")
	v.SetDefault("email.smtp.host", "")
	v.SetDefault("email.smtp.port", 587)
	v.SetDefault("email.smtp.username", "")
	v.SetDefault("email.smtp.password", "")
	v.SetDefault("email.smtp.use_tls", true)
	v.SetDefault("email.smtp.timeout_seconds", 30)

	v.SetDefault("notify.enabled", false)
	v.SetDefault("notify.front_desk_email", "")
	v.SetDefault("notify.workers", 2)

	v.SetDefault("observability.enabled", false)
	v.SetDefault("observability.service_name", "moksha_web")
	v.SetDefault("observability.service_version", "dev")
	v.SetDefault("observability.tracing.enabled", false)
	v.SetDefault("observability.tracing.otlp_endpoint", "")
	v.SetDefault("observability.tracing.sampling_rate", 1.0)
	v.SetDefault("observability.metrics.enabled", false)
	v.SetDefault("observability.metrics.path", "/metrics")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.output.stdout", true)
	v.SetDefault("logging.output.file.enabled", false)
	v.SetDefault("logging.output.loki.enabled", false)
}
