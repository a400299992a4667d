// Command jobform-server serves the job-application form over HTTP.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/goliatone/go-jobform/internal/app"
	"github.com/goliatone/go-jobform/internal/config"
	"github.com/goliatone/go-jobform/internal/logging"
	"github.com/goliatone/go-jobform/internal/server"
	"github.com/goliatone/go-jobform/pkg/orchestrator"
	"github.com/goliatone/go-jobform/pkg/render"
	"github.com/goliatone/go-jobform/pkg/renderers/vanilla"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "YAML config file (optional)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	logger := logging.New(cfg.Log.Level, cfg.Log.Format, os.Stderr, cfg.Log.Redact...)

	page, err := vanilla.New(
		vanilla.WithDocument(true),
		vanilla.WithTemplatesDir(cfg.Form.Templates),
	)
	if err != nil {
		return fmt.Errorf("vanilla renderer: %w", err)
	}
	registry := render.NewRegistry()
	registry.MustRegister(page)

	components, err := app.Build(cfg, logger, orchestrator.WithRegistry(registry))
	if err != nil {
		return err
	}
	renderer, err := components.Orchestrator.Renderer("")
	if err != nil {
		return err
	}

	ctx := context.Background()
	handler, err := server.New(ctx, components.Form, renderer,
		server.WithEffect(components.Effect),
		server.WithLogger(logger),
		server.WithTheme(components.Theme),
		server.WithMaxUploadBytes(cfg.Server.MaxUploadBytes),
		server.WithSessionTTL(cfg.Server.SessionTTL),
	)
	if err != nil {
		return err
	}

	srv := server.NewServer(cfg.Server, server.NewRouter(handler, logger), logger)

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		logger.Info("received shutdown signal", slog.String("signal", sig.String()))
	case err := <-serverErr:
		return err
	}

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown error", slog.Any("error", err))
	}
	return <-serverErr
}
