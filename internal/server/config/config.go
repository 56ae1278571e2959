// Package config handles configuration for the server component,
// including defaults, JSON overlay, environment variables, and
// command-line flags (applied in that order).
package config

import "time"

// Config holds runtime settings for the invoicing server.
//
// Fields:
//   - Addr: bind address for the HTTP endpoint.
//   - DatabaseDSN: store target. postgres:// URLs select the networked
//     PostgreSQL backend; anything else is an embedded SQLite file path.
//   - SecretKey: HMAC secret for signing session tokens (HS256).
//     Do not use test defaults in prod.
//   - SessionTTL: lifetime of the session cookie.
type Config struct {
	Addr        string        `env:"ADDRESS"`
	DatabaseDSN string        `env:"DATABASE_URL"`
	SecretKey   string        `env:"SECRET_KEY"`
	SessionTTL  time.Duration `env:"SESSION_TTL"`
}

// LoadDefaults populates Config with sensible development defaults.
// NOTE: These values are insecure for production and should be overridden.
func (c *Config) LoadDefaults() {
	c.Addr = ":8080"
	c.DatabaseDSN = "invoicehub.db"
	c.SecretKey = "secretKey"
	c.SessionTTL = 24 * time.Hour
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file, the environment, and finally command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
