package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"go.uber.org/zap"

	"github.com/bcardapp/bcard/internal/client/cli"
	"github.com/bcardapp/bcard/internal/client/config"
	"github.com/bcardapp/bcard/internal/logging"
)

// newLogger builds the structured logger. The default is zap's JSON output;
// BCARD_LOG=console switches to a plain slog text handler for local runs.
func newLogger() (logging.Logger, func(), error) {
	if os.Getenv("BCARD_LOG") == "console" {
		h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})
		return logging.NewSlogLogger(slog.New(h)), func() {}, nil
	}

	zl, err := zap.NewProduction()
	if err != nil {
		return nil, nil, err
	}
	return logging.NewZapLogger(zl), func() { _ = zl.Sync() }, nil
}

func main() {
	cfg := config.LoadConfig()

	logger, flush, err := newLogger()
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer flush()

	app, err := cli.NewApp(cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer func() { _ = app.Close() }()

	app.Run(context.Background())
}
