package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/eventportal/internal/flagx"
	"github.com/dmitrijs2005/eventportal/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Absent keys
// leave the current value untouched.
type JsonConfig struct {
	ServerURL      string          `json:"server_url"`
	ProfilePath    string          `json:"profile_path"`
	RequestTimeout *timex.Duration `json:"request_timeout"`
}

func (jc *JsonConfig) apply(cfg *Config) {
	if jc.ServerURL != "" {
		cfg.ServerURL = jc.ServerURL
	}
	if jc.ProfilePath != "" {
		cfg.ProfilePath = jc.ProfilePath
	}
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
}

// parseJson overlays Config with values loaded from the file named by -c or
// -config. It panics on read or unmarshal errors.
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

	jc.apply(cfg)
}
