package redis

import (
	"testing"
	"time"

	"github.com/Alijeyrad/moksha_web/config"
)

func TestConfigFrom(t *testing.T) {
	tests := []struct {
		name string
		in   config.RedisConfig
		want Config
	}{
		{
			name: "defaults fill zero values",
			in:   config.RedisConfig{Addr: "cache:6379"},
			want: Config{Addr: "cache:6379", PoolSize: 10, MinIdleConns: 2, DialTimeoutSeconds: 5, ReadTimeoutSeconds: 3, WriteTimeoutSeconds: 3},
		},
		{
			name: "explicit values win",
			in:   config.RedisConfig{Addr: "cache:6379", DB: 2, PoolSize: 4, ReadTimeoutSeconds: 9},
			want: Config{Addr: "cache:6379", DB: 2, PoolSize: 4, MinIdleConns: 2, DialTimeoutSeconds: 5, ReadTimeoutSeconds: 9, WriteTimeoutSeconds: 3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ConfigFrom(tt.in); got != tt.want {
				t.Errorf("ConfigFrom() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestTimeouts_FallBackWhenUnset(t *testing.T) {
	var c Config
	if c.DialTimeout() != 5*time.Second || c.ReadTimeout() != 3*time.Second || c.WriteTimeout() != 3*time.Second {
		t.Errorf("unexpected fallbacks %v %v %v", c.DialTimeout(), c.ReadTimeout(), c.WriteTimeout())
	}
}
