package config

import "time"

// Config holds runtime settings for the bcard CLI.
//
// Fields:
//   - ServerBaseURL: base URL of the directory REST service, fixed per run.
//   - RequestTimeout: per-request deadline for gateway calls.
//   - DatabaseDSN: path of the local SQLite database holding the credential.
//   - PageSize: how many cards a listing page shows.
type Config struct {
	ServerBaseURL  string
	RequestTimeout time.Duration
	DatabaseDSN    string
	PageSize       int
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "https://monkfish-app-z9uza.ondigitalocean.app/bcard2"
	c.RequestTimeout = 15 * time.Second
	c.DatabaseDSN = "bcard.db"
	c.PageSize = 8
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from the environment (including a .env file if present), a JSON file, and
// command-line flags. Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
