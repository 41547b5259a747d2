package config

import "time"

// Config holds runtime settings for the billing CLI.
//
// Fields:
//   - ServerBaseURL: base URL of the billing server HTTP API.
//   - DatabasePath: path to the local SQLite queue database.
//   - NetworkTimeout: per-request timeout for server calls.
//   - OnlineCheckInterval: how often the client probes server reachability.
type Config struct {
	ServerBaseURL       string
	DatabasePath        string
	NetworkTimeout      time.Duration
	OnlineCheckInterval time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "http://localhost:5001"
	c.DatabasePath = "billing.db"
	c.NetworkTimeout = 10 * time.Second
	c.OnlineCheckInterval = 3 * time.Second
}

// Load constructs a Config from defaults overlaid with values from the JSON
// file at jsonPath, if non-empty. Command-line overrides are applied by the
// CLI layer on top of the result, so precedence is defaults -> JSON -> flags.
func Load(jsonPath string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := applyJson(cfg, jsonPath); err != nil {
		return nil, err
	}
	return cfg, nil
}
