package config

import (
	"fmt"
	"net/url"
	"time"
)

type Config struct {
	Server        ServerConfig        `mapstructure:"server"`
	API           APIConfig           `mapstructure:"api"`
	Clinic        ClinicConfig        `mapstructure:"clinic"`
	Booking       BookingConfig       `mapstructure:"booking"`
	Handoff       HandoffConfig       `mapstructure:"handoff"`
	Redis         RedisConfig         `mapstructure:"redis"`
	Email         EmailConfig         `mapstructure:"email"`
	Notify        NotifyConfig        `mapstructure:"notify"`
	Observability ObservabilityConfig `mapstructure:"observability"`
	Logging       LoggingConfig       `mapstructure:"logging"`
}

type ServerConfig struct {
	Port           int             `mapstructure:"port"`
	TimeoutSeconds int             `mapstructure:"timeout_seconds"`
	Environment    string          `mapstructure:"environment"`
	SecureCookies  bool            `mapstructure:"secure_cookies"`
	CORS           CORSConfig      `mapstructure:"cors"`
	RateLimit      RateLimitConfig `mapstructure:"rate_limit"`
}

type CORSConfig struct {
	Enabled      bool     `mapstructure:"enabled"`
	AllowOrigins []string `mapstructure:"allow_origins"`
}

type RateLimitConfig struct {
	Max               int `mapstructure:"max"`
	ExpirationSeconds int `mapstructure:"expiration_seconds"`
}

// APIConfig points at the remote clinic REST API.
type APIConfig struct {
	BaseURL        string `mapstructure:"base_url"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
	UserAgent      string `mapstructure:"user_agent"`
}

type ClinicConfig struct {
	Name        string `mapstructure:"name"`
	Phone       string `mapstructure:"phone"`
	PhoneRegion string `mapstructure:"phone_region"`
	TimeZone    string `mapstructure:"time_zone"`
	Email       string `mapstructure:"email"`
	Address     string `mapstructure:"address"`
}

// Location resolves TimeZone, falling back to UTC.
func (c ClinicConfig) Location() *time.Location {
	if c.TimeZone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return time.UTC
	}
	return loc
}

type BookingConfig struct {
	SuccessRedirectSeconds    int `mapstructure:"success_redirect_seconds"`
	CancelRedirectSeconds     int `mapstructure:"cancel_redirect_seconds"`
	RescheduleRedirectSeconds int `mapstructure:"reschedule_redirect_seconds"`
	// FallbackDoctorID is used by the reschedule screen when a handed-off
	// appointment carries no doctor id. Zero disables the fallback.
	FallbackDoctorID int `mapstructure:"fallback_doctor_id"`
}

func (c BookingConfig) SuccessRedirect() time.Duration {
	return time.Duration(c.SuccessRedirectSeconds) * time.Second
}

func (c BookingConfig) CancelRedirect() time.Duration {
	return time.Duration(c.CancelRedirectSeconds) * time.Second
}

func (c BookingConfig) RescheduleRedirect() time.Duration {
	return time.Duration(c.RescheduleRedirectSeconds) * time.Second
}

type HandoffConfig struct {
	TTLMinutes int `mapstructure:"ttl_minutes"`
}

func (c HandoffConfig) TTL() time.Duration {
	return time.Duration(c.TTLMinutes) * time.Minute
}

type RedisConfig struct {
	Enabled             bool   `mapstructure:"enabled"`
	Addr                string `mapstructure:"addr"`
	DB                  int    `mapstructure:"db"`
	Username            string `mapstructure:"username"`
	Password            string `mapstructure:"password"`
	PoolSize            int    `mapstructure:"pool_size"`
	MinIdleConns        int    `mapstructure:"min_idle_conns"`
	DialTimeoutSeconds  int    `mapstructure:"dial_timeout_seconds"`
	ReadTimeoutSeconds  int    `mapstructure:"read_timeout_seconds"`
	WriteTimeoutSeconds int    `mapstructure:"write_timeout_seconds"`
}

type EmailConfig struct {
	Enabled bool       `mapstructure:"enabled"`
	From    string     `mapstructure:"from"`
	SMTP    SMTPConfig `mapstructure:"smtp"`
}

type SMTPConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	Username       string `mapstructure:"username"`
	Password       string `mapstructure:"password"`
	UseTLS         bool   `mapstructure:"use_tls"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}

// NotifyConfig controls front-desk emails about bookings made on the site.
type NotifyConfig struct {
	Enabled        bool   `mapstructure:"enabled"`
	FrontDeskEmail string `mapstructure:"front_desk_email"`
	Workers        int    `mapstructure:"workers"`
}

type ObservabilityConfig struct {
	Enabled        bool          `mapstructure:"enabled"`
	ServiceName    string        `mapstructure:"service_name"`
	ServiceVersion string        `mapstructure:"service_version"`
	Tracing        TracingConfig `mapstructure:"tracing"`
	Metrics        MetricsConfig `mapstructure:"metrics"`
}

type TracingConfig struct {
	Enabled      bool    `mapstructure:"enabled"`
	OTLPEndpoint string  `mapstructure:"otlp_endpoint"`
	OTLPInsecure bool    `mapstructure:"otlp_insecure"`
	SamplingRate float64 `mapstructure:"sampling_rate"`
}

type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

type LoggingConfig struct {
	Level  string       `mapstructure:"level"`  // debug, info, warn, error
	Format string       `mapstructure:"format"` // text, json
	Output OutputConfig `mapstructure:"output"`
}

type OutputConfig struct {
	Stdout bool          `mapstructure:"stdout"`
	File   FileLogConfig `mapstructure:"file"`
	Loki   LokiConfig    `mapstructure:"loki"`
}

type FileLogConfig struct {
	Enabled    bool   `mapstructure:"enabled"`
	Path       string `mapstructure:"path"`        // e.g. "logs/app.log"
	MaxSizeMB  int    `mapstructure:"max_size_mb"` // rotate after N MB
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
	Compress   bool   `mapstructure:"compress"`
}

type LokiConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Endpoint string `mapstructure:"endpoint"` // e.g. "http://localhost:3100"
	Username string `mapstructure:"username"` // for Grafana Cloud basic auth
	Password string `mapstructure:"password"`
}

func (c *Config) Validate() error {
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("api.base_url must be an absolute http(s) URL, got %q", c.API.BaseURL)
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port out of range: %d", c.Server.Port)
	}
	if c.Booking.SuccessRedirectSeconds < 0 || c.Booking.CancelRedirectSeconds < 0 || c.Booking.RescheduleRedirectSeconds < 0 {
		return fmt.Errorf("booking redirect delays must not be negative")
	}
	if c.Booking.FallbackDoctorID < 0 {
		return fmt.Errorf("booking.fallback_doctor_id must not be negative")
	}
	if c.Handoff.TTLMinutes <= 0 {
		return fmt.Errorf("handoff.ttl_minutes must be positive")
	}
	if c.Redis.Enabled && c.Redis.Addr == "" {
		return fmt.Errorf("redis.addr is required when redis is enabled")
	}
	if c.Notify.Enabled && c.Notify.FrontDeskEmail == "" {
		return fmt.Errorf("notify.front_desk_email is required when notify is enabled")
	}
	return nil
}
