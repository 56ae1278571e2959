package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dkotelnikov/invoicehub/internal/flagx"
)

// JsonConfig is an intermediate DTO used only for reading JSON
// configuration files. After unmarshalling, its fields are copied into the
// runtime Config struct. The session TTL is expressed in minutes.
type JsonConfig struct {
	Addr              string `json:"address"`
	DatabaseDSN       string `json:"database_dsn"`
	SecretKey         string `json:"secret_key"`
	SessionTTLMinutes int    `json:"session_ttl_minutes"`
}

// parseJson loads configuration values from a JSON file into the provided
// Config instance. The file path comes from the -c or -config flags; when
// neither is set, no JSON file is loaded. An unreadable or malformed file
// panics: a deployment that asks for a config file and cannot have it read
// should not start.
func parseJson(config *Config) {

	jsonConfigFile := flagx.JsonConfigFlags()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	if c.Addr != "" {
		config.Addr = c.Addr
	}
	if c.DatabaseDSN != "" {
		config.DatabaseDSN = c.DatabaseDSN
	}
	if c.SecretKey != "" {
		config.SecretKey = c.SecretKey
	}
	if c.SessionTTLMinutes > 0 {
		config.SessionTTL = time.Duration(c.SessionTTLMinutes) * time.Minute
	}
}
