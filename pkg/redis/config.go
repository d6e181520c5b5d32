package redis

import (
	"time"

	"github.com/Alijeyrad/moksha_web/config"
)

// Config holds Redis connection settings
type Config struct {
	Addr     string
	DB       int
	Username string
	Password string

	PoolSize     int
	MinIdleConns int

	DialTimeoutSeconds  int
	ReadTimeoutSeconds  int
	WriteTimeoutSeconds int
}

// DefaultConfig returns the settings used for anything left unset
func DefaultConfig() Config {
	return Config{
		Addr:                "localhost:6379",
		PoolSize:            10,
		MinIdleConns:        2,
		DialTimeoutSeconds:  5,
		ReadTimeoutSeconds:  3,
		WriteTimeoutSeconds: 3,
	}
}

func (c Config) DialTimeout() time.Duration {
	return seconds(c.DialTimeoutSeconds, 5)
}

func (c Config) ReadTimeout() time.Duration {
	return seconds(c.ReadTimeoutSeconds, 3)
}

func (c Config) WriteTimeout() time.Duration {
	return seconds(c.WriteTimeoutSeconds, 3)
}

// ConfigFrom maps config.RedisConfig onto this package's Config.
func ConfigFrom(c config.RedisConfig) Config {
	d := DefaultConfig()
	return Config{
		Addr:                c.Addr,
		DB:                  c.DB,
		Username:            c.Username,
		Password:            c.Password,
		PoolSize:            positive(c.PoolSize, d.PoolSize),
		MinIdleConns:        positive(c.MinIdleConns, d.MinIdleConns),
		DialTimeoutSeconds:  positive(c.DialTimeoutSeconds, d.DialTimeoutSeconds),
		ReadTimeoutSeconds:  positive(c.ReadTimeoutSeconds, d.ReadTimeoutSeconds),
		WriteTimeoutSeconds: positive(c.WriteTimeoutSeconds, d.WriteTimeoutSeconds),
	}
}

func positive(v, fallback int) int {
	if v > 0 {
		return v
	}
	return fallback
}

func seconds(v, fallback int) time.Duration {
	return time.Duration(positive(v, fallback)) * time.Second
}
