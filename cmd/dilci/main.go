// dilci - command line client for the Dilçi translation gateway
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/hacktivities2025-ctrl/zirv--v2/internal/cli"
	"github.com/hacktivities2025-ctrl/zirv--v2/internal/config"
	"github.com/hacktivities2025-ctrl/zirv--v2/internal/gateway"
	"github.com/hacktivities2025-ctrl/zirv--v2/internal/gemini"
	"github.com/joho/godotenv"
)

var version = "dev"

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))
	slog.SetDefault(logger)

	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	factory := func(ctx context.Context) (gateway.Service, error) {
		cfg, err := config.LoadGemini()
		if err != nil {
			return nil, err
		}
		model, err := gemini.NewClient(ctx, cfg, logger)
		if err != nil {
			return nil, err
		}
		return gateway.New(model, gateway.WithLogger(logger))
	}

	if err := cli.NewRootCommand(factory, version).ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
