// Package config holds runtime settings for the vault CLI.
package config

import "time"

// Config holds runtime settings.
//
// Fields:
//   - DatabaseDSN: path (or sqlite DSN) of the vault database file.
//   - SessionTimeout: inactivity window before the session locks.
type Config struct {
	DatabaseDSN    string
	SessionTimeout time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.DatabaseDSN = "vault.db"
	c.SessionTimeout = 15 * time.Minute
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from JSON (if a config file was given) and command-line flags. Later
// sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
