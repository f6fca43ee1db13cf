package config

import "time"

// Config holds runtime settings for the fieldsync companion client.
//
// Fields:
//   - APIBaseURL: base URL of the ERP REST backend; empty means "resolve
//     via the deployment chain" (see ResolveBaseURL).
//   - DatabasePath: path of the on-device SQLite file.
//   - OnlineCheckInterval: how often the watcher probes server reachability.
type Config struct {
	APIBaseURL          string
	DatabasePath        string
	OnlineCheckInterval time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = ""
	c.DatabasePath = "fieldsync.db"
	c.OnlineCheckInterval = 3 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from JSON (if present) and command-line flags (if present). Later sources
// take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
