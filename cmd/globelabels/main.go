package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"globelabels/internal/api"
	"globelabels/pkg/config"
	"globelabels/pkg/globe"
	"globelabels/pkg/logging"
	"globelabels/pkg/probe"
	"globelabels/pkg/version"
)

const defaultConfigPath = "configs/globelabels.yaml"

var (
	configPath = flag.String("config", defaultConfigPath, "Path to the config file")
	initConfig = flag.Bool("init-config", false, "Generate default config file and exit")
	checkOnly  = flag.Bool("check", false, "Load config and labels, run one pass, print a summary and exit")
)

func main() {
	// Optional; the environment wins when the file is absent.
	_ = godotenv.Load(".env")

	flag.Parse()

	if *initConfig {
		if err := config.GenerateDefault(*configPath); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to generate config: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Config file generated: %s\n", *configPath)
		return
	}

	if *checkOnly {
		if err := check(os.Stdout, *configPath); err != nil {
			fmt.Fprintf(os.Stderr, "Check failed: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := run(context.Background(), *configPath); err != nil {
		fmt.Fprintf(os.Stderr, "CRITICAL ERROR: Application failed: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, path string) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	cfg, err := config.Load(path)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	cleanupLogs, err := logging.Init(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	defer cleanupLogs()

	slog.Info("Globe labels started", "version", version.Version, "config", path)

	opts := globe.OptionsFromConfig(cfg)
	if err := probe.AnalyzeResults(probe.Run(ctx, probe.ForSources(opts.Sources))); err != nil {
		slog.Warn("Label data incomplete", "error", err)
	}

	ctrl := globe.NewController(opts)
	hub := api.NewStreamHub(ctrl.State)
	ctrl.AddSink(hub)
	defer hub.Close()

	// The server still starts without labels so a fixed data set can be reloaded over the API.
	if stats, err := ctrl.Reload(); err != nil {
		slog.Error("Initial label load failed", "error", err)
	} else {
		slog.Info("Initial label load", "added", stats.Added, "skipped", stats.Skipped)
	}

	loop := globe.NewFrameLoop(ctrl, cfg.Fade.FrameInterval.Std())
	go loop.Start(ctx)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(quit)
	shutdownFunc := func() { quit <- syscall.SIGTERM }

	srv := api.NewServer(cfg.Server.Address, api.NewLabelsHandler(ctrl), hub, shutdownFunc)
	return runServerLifecycle(ctx, srv, quit)
}

func runServerLifecycle(ctx context.Context, srv *http.Server, quit chan os.Signal) error {
	slog.Info("Starting server", "addr", srv.Addr)
	serverErrors := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrors <- err
		}
	}()
	select {
	case <-quit:
		slog.Info("Shutting down server...")
	case <-ctx.Done():
		slog.Info("Context cancelled, shutting down...")
	case err := <-serverErrors:
		return fmt.Errorf("server failed: %w", err)
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
