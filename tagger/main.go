// Bulk tagging job: stamps canonical tags with confidence levels onto product
// records, or runs the corrective tag-fix pass.
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
	"github.com/SimplyAvi/Dynable-live-sub000/tagger/adapters/db"
	"github.com/SimplyAvi/Dynable-live-sub000/tagger/adapters/events"
	"github.com/SimplyAvi/Dynable-live-sub000/tagger/config"
	"github.com/SimplyAvi/Dynable-live-sub000/tagger/core"
)

func main() {
	if err := run(); err != nil {
		os.Exit(1)
	}
}

func run() error {
	var configPath string
	flag.StringVar(&configPath, "config", "config.yaml", "tagging job configuration file")
	flag.Parse()

	cfg := config.MustLoad(configPath)
	log := mustMakeLogger(cfg.LogLevel)

	log.Info("starting product tagging job")

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

	service, err := core.NewService(log, storage, publisher, core.DefaultRules(), cfg.Concurrency, cfg.WritesPerSecond)
	if err != nil {
		return fmt.Errorf("failed to create tagger: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var report core.RunReport
	if cfg.FixTags {
		report, err = service.FixTags(ctx)
	} else {
		report, err = service.BulkTag(ctx, core.RunOptions{
			Retag:       cfg.Retag,
			BrandedOnly: cfg.BrandedOnly,
		})
	}
	if err != nil {
		return fmt.Errorf("tagging run failed: %w", err)
	}

	log.Info("tagging run finished",
		"scanned", report.Scanned,
		"tagged", report.Tagged,
		"verified", report.Verified,
		"skipped", report.Skipped,
		"cleared", report.Cleared,
		"failed", report.Failed,
	)
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
