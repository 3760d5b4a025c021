package store

import (
	"time"

	"kristech/internal/platform/config"
)

// Config aggregates backend configuration
type Config struct {
	AppName string

	PG PGConfig
}

// PGConfig configures postgres connectivity, tracing and migrations
type PGConfig struct {
	Enabled     bool
	URL         string
	MaxConns    int32
	LogSQL      bool
	SlowQueryMs int

	// Migrate runs every migration set registered with WithMigrations during Open
	Migrate bool

	// boot knobs, zero means the defaults below
	ConnectRetries int
	PingTimeout    time.Duration
}

const (
	defaultConnectRetries = 20
	defaultPingTimeout    = 3 * time.Second
	defaultMaxConns       = 20
)

// ConfigFromEnv reads the SERVICE_PGSQL_* keys
// the pool is enabled whenever a DSN is present
func ConfigFromEnv(cfg config.Conf) Config {
	c := cfg.Prefix("SERVICE_PGSQL_")
	url := c.MayString("DBURL", "")
	return Config{
		AppName: cfg.MayString("LOG_SERVICE", "kristech-api"),
		PG: PGConfig{
			Enabled:        url != "",
			URL:            url,
			MaxConns:       int32(c.MayInt("MAX_CONNS", defaultMaxConns)),
			LogSQL:         c.MayBool("LOG_SQL", false),
			SlowQueryMs:    c.MayInt("SLOW_MS", 500),
			Migrate:        c.MayBool("MIGRATE", true),
			ConnectRetries: c.MayInt("CONNECT_RETRIES", defaultConnectRetries),
			PingTimeout:    c.MayDuration("PING_TIMEOUT", defaultPingTimeout),
		},
	}
}

func (c PGConfig) retries() int {
	if c.ConnectRetries <= 0 {
		return defaultConnectRetries
	}
	return c.ConnectRetries
}

func (c PGConfig) pingTimeout() time.Duration {
	if c.PingTimeout <= 0 {
		return defaultPingTimeout
	}
	return c.PingTimeout
}
