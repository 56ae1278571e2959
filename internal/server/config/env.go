package config

import "github.com/caarlos0/env/v11"

// parseEnv overlays values from the environment onto config. Only
// variables that are actually set are applied, so defaults and JSON
// values survive. Recognized variables: ADDRESS, DATABASE_URL,
// SECRET_KEY, SESSION_TTL (Go duration, e.g. "24h").
func parseEnv(config *Config) {
	if err := env.Parse(config); err != nil {
		panic(err)
	}
}
