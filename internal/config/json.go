package config

import (
	"encoding/json"
	"os"

	"github.com/CloudTigerx/password-manager/internal/flagx"
	"github.com/CloudTigerx/password-manager/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies
// on timex.Duration so JSON can specify the timeout either as a string
// like "15m" or as integer nanoseconds.
type JsonConfig struct {
	DatabaseDSN    string         `json:"database_dsn"`
	SessionTimeout timex.Duration `json:"session_timeout"`
}

// parseJson overlays Config with values loaded from a JSON file given via
// the -c or -config flags. When no file is given, cfg is left untouched.
// Read or unmarshal errors panic; configuration is a startup concern.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.DatabaseDSN != "" {
		cfg.DatabaseDSN = jc.DatabaseDSN
	}
	if jc.SessionTimeout.Duration > 0 {
		cfg.SessionTimeout = jc.SessionTimeout.Duration
	}
}
