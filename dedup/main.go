// Dedup job: finds near-duplicate canonical ingredients, merges the groups
// that share one normalized name, and prints the rest for operator review.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/SimplyAvi/Dynable-live-sub000/dedup/adapters/db"
	"github.com/SimplyAvi/Dynable-live-sub000/dedup/adapters/events"
	"github.com/SimplyAvi/Dynable-live-sub000/dedup/config"
	"github.com/SimplyAvi/Dynable-live-sub000/dedup/core"
	"github.com/SimplyAvi/Dynable-live-sub000/migrations"
)

func main() {
	if err := run(); err != nil {
		os.Exit(1)
	}
}

func run() error {
	var configPath string
	flag.StringVar(&configPath, "config", "config.yaml", "dedup job configuration file")
	flag.Parse()

	cfg := config.MustLoad(configPath)
	log := mustMakeLogger(cfg.LogLevel)

	log.Info("starting canonical dedup", "dry_run", cfg.DryRun)

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

	publisher, err := events.NewNatsPublisher(cfg.NatsAddress, log)
	if err != nil {
		return fmt.Errorf("failed to connect to broker: %w", err)
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			log.Error("failed to close broker connection", "error", err)
		}
	}()

	service := core.NewService(log, storage, publisher)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	report, err := service.Run(ctx, core.RunOptions{DryRun: cfg.DryRun})
	if err != nil {
		return fmt.Errorf("dedup run failed: %w", err)
	}

	log.Info("dedup finished",
		"groups", report.GroupsFound,
		"merged", len(report.Merged),
		"needs_review", len(report.NeedsReview),
		"failed", report.Failed,
	)

	for _, m := range report.Merged {
		fmt.Printf("merged into %q (id %d): %d canonicals, %d mappings repointed\n",
			m.SurvivorName, m.SurvivorID, len(m.MergedIDs), m.MappingsRepointed)
	}
	for _, g := range report.NeedsReview {
		names := make([]string, 0, len(g.Canonicals))
		for _, c := range g.Canonicals {
			names = append(names, fmt.Sprintf("%q (id %d)", c.Name, c.ID))
		}
		fmt.Printf("review: %s\n", strings.Join(names, ", "))
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
