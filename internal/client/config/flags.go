package config

import (
	"flag"
	"os"
	"time"

	"github.com/bcardapp/bcard/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-s string   base URL of the directory service
//	-t int      request timeout in seconds
//	-d string   path of the local SQLite database
//	-p int      cards per listing page
//
// Note: the function filters os.Args to only include the flags it knows
// about, using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-s", "-t", "-d", "-p"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerBaseURL, "s", cfg.ServerBaseURL, "base URL of the directory service")
	requestTimeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	fs.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "path of the local database")
	fs.IntVar(&cfg.PageSize, "p", cfg.PageSize, "cards per listing page")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.RequestTimeout = time.Duration(*requestTimeout) * time.Second
}
