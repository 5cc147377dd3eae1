// Audit job: resolves a dump of raw recipe ingredient lines and prints the
// frequency-ranked unmapped report for operator follow-up.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/SimplyAvi/Dynable-live-sub000/migrations"
	"github.com/SimplyAvi/Dynable-live-sub000/resolver/adapters/db"
	"github.com/SimplyAvi/Dynable-live-sub000/resolver/adapters/recipes"
	"github.com/SimplyAvi/Dynable-live-sub000/resolver/config"
	"github.com/SimplyAvi/Dynable-live-sub000/resolver/core"
)

func main() {
	if err := run(); err != nil {
		os.Exit(1)
	}
}

func run() error {
	var configPath string
	flag.StringVar(&configPath, "config", "config.yaml", "audit job configuration file")
	flag.Parse()

	cfg := config.MustLoad(configPath)
	log := mustMakeLogger(cfg.LogLevel)

	log.Info("starting ingredient audit")

	if err := migrations.Up(cfg.DBAddress); err != nil {
		return fmt.Errorf("failed to migrate db: %w", err)
	}

	storage, err := db.New(log, cfg.DBAddress)
	if err != nil {
		return fmt.Errorf("failed to connect to db: %w", err)
	}
	defer func() {
		if err := storage.Close(); err != nil {
			log.Error("failed to close db", "error", err)
		}
	}()

	source, err := recipes.NewFileSource(cfg.DumpPath, log)
	if err != nil {
		return fmt.Errorf("failed to open ingredient dump: %w", err)
	}

	service := core.NewService(log, storage)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	lines, err := source.Lines(ctx)
	if err != nil {
		return fmt.Errorf("failed to read ingredient dump: %w", err)
	}
	log.Info("loaded ingredient lines", "count", len(lines))

	cache := core.NewMappingCache()
	report, err := service.ResolveBatch(ctx, lines, cfg.Concurrency, cache, core.ResolveOptions{
		Persist: cfg.Persist,
	})
	if err != nil {
		return fmt.Errorf("audit run failed: %w", err)
	}

	log.Info("audit finished",
		"total", report.Total,
		"resolved", report.Resolved,
		"failed", report.Failed,
		"unresolved", len(report.Unresolved),
		"cached", cache.Len(),
	)

	for _, e := range report.Unresolved {
		fmt.Printf("%6d  %s\n", e.Count, e.Name)
	}
	return nil
}

func mustMakeLogger(logLevel string) *slog.Logger {
	var level slog.Level
	switch logLevel {
	case "DEBUG":
		level = slog.LevelDebug
	case "INFO":
		level = slog.LevelInfo
	case "ERROR":
		level = slog.LevelError
	default:
		panic("unknown log level: " + logLevel)
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level:     level,
		AddSource: true,
	})
	return slog.New(handler)
}
