package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/nexsys-labs/billing/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
// It relies on timex.Duration so JSON can specify intervals either as
// strings like "3s" or as integer nanoseconds. After parsing, values
// are copied into the runtime Config (which uses time.Duration).
type JsonConfig struct {
	ServerBaseURL       string         `json:"server_base_url"`
	DatabasePath        string         `json:"database_path"`
	NetworkTimeout      timex.Duration `json:"network_timeout"`
	OnlineCheckInterval timex.Duration `json:"online_check_interval"`
}

// applyJson overlays cfg with values loaded from the JSON file at path.
// An empty path means no JSON source is configured and cfg is left as is.
// Only fields present in the file override the existing values.
func applyJson(cfg *Config, path string) error {
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parsing config file %s: %w", path, err)
	}

	if jc.ServerBaseURL != "" {
		cfg.ServerBaseURL = jc.ServerBaseURL
	}
	if jc.DatabasePath != "" {
		cfg.DatabasePath = jc.DatabasePath
	}
	if jc.NetworkTimeout.Duration != 0 {
		cfg.NetworkTimeout = time.Duration(jc.NetworkTimeout.Duration)
	}
	if jc.OnlineCheckInterval.Duration != 0 {
		cfg.OnlineCheckInterval = time.Duration(jc.OnlineCheckInterval.Duration)
	}
	return nil
}
