package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/nexsys-labs/billing/internal/flagx"
	"github.com/nexsys-labs/billing/internal/timex"
)

// JsonConfig is the JSON-file counterpart of Config. It uses timex.Duration
// for interval fields so "30s" and integer nanoseconds both parse. After
// unmarshalling, values are copied into the runtime Config.
type JsonConfig struct {
	EndpointAddrHTTP string         `json:"endpoint_addr_http"`
	DatabaseDSN      string         `json:"database_dsn"`
	UseInMemoryStore bool           `json:"use_inmemory_store"`
	RequestTimeout   timex.Duration `json:"request_timeout"`
}

// parseJson loads configuration values from the JSON file named by the
// -c/-config flags, if any. The file is optional; an unreadable or invalid
// file panics, matching the flag parser's failure mode.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()

	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	err = json.Unmarshal(file, c)
	if err != nil {
		panic(err)
	}

	config.EndpointAddrHTTP = c.EndpointAddrHTTP
	config.DatabaseDSN = c.DatabaseDSN
	config.UseInMemoryStore = c.UseInMemoryStore
	config.RequestTimeout = time.Duration(c.RequestTimeout.Duration)
}
