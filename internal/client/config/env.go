package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays Config with values from the process environment,
// loading a .env file first when one exists next to the binary.
//
// Recognized variables:
//
//	BCARD_SERVER_URL       base URL of the directory service
//	BCARD_REQUEST_TIMEOUT  Go duration, e.g. "15s"
//	BCARD_DATABASE_DSN     path of the local SQLite database
//	BCARD_PAGE_SIZE        cards per listing page
func parseEnv(cfg *Config) {
	// Missing .env is the normal case, not an error.
	_ = godotenv.Load()

	if v := os.Getenv("BCARD_SERVER_URL"); v != "" {
		cfg.ServerBaseURL = v
	}
	if v := os.Getenv("BCARD_REQUEST_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.RequestTimeout = d
		}
	}
	if v := os.Getenv("BCARD_DATABASE_DSN"); v != "" {
		cfg.DatabaseDSN = v
	}
	if v := os.Getenv("BCARD_PAGE_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.PageSize = n
		}
	}
}
