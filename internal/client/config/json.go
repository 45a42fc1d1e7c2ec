package config

import (
	"encoding/json"
	"os"

	"github.com/bcardapp/bcard/internal/flagx"
	"github.com/bcardapp/bcard/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so JSON can specify the timeout either as a string like
// "15s" or as integer nanoseconds.
type JsonConfig struct {
	ServerBaseURL  string         `json:"server_base_url"`
	RequestTimeout timex.Duration `json:"request_timeout"`
	DatabaseDSN    string         `json:"database_dsn"`
	PageSize       int            `json:"page_size"`
}

// parseJson overlays Config with values loaded from a JSON file named by the
// -c/-config flag. Absent flag means no JSON is loaded. Fields left at their
// zero value in the file do not override earlier sources.
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

	if jc.ServerBaseURL != "" {
		cfg.ServerBaseURL = jc.ServerBaseURL
	}
	if jc.RequestTimeout.Duration > 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.DatabaseDSN != "" {
		cfg.DatabaseDSN = jc.DatabaseDSN
	}
	if jc.PageSize > 0 {
		cfg.PageSize = jc.PageSize
	}
}
