package config

import "time"

// Config holds runtime settings for portalctl.
//
// Fields:
//   - ServerURL: base URL of the portal HTTP API.
//   - ProfilePath: sqlite file that remembers the logged-in user.
//   - RequestTimeout: per-request HTTP timeout.
type Config struct {
	ServerURL      string
	ProfilePath    string
	RequestTimeout time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:8000"
	c.ProfilePath = "portal.db"
	c.RequestTimeout = 10 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
