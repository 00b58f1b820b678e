package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/timmy/newsdeck/internal/config"
	"github.com/timmy/newsdeck/internal/logger"
	"github.com/timmy/newsdeck/internal/repository"
	"github.com/timmy/newsdeck/internal/service"
	"github.com/timmy/newsdeck/internal/source/staging"
)

func main() {
	appLogger := logger.New(&logger.Config{
		Level:       "info",
		Format:      "json",
		ServiceName: "newsdeck-ingest",
	})
	logger.SetDefaultLogger(appLogger)

	sourceID := flag.String("source", "", "Staging source (subdirectory of the manifest dir) to ingest")
	manifestDir := flag.String("manifest", "", "Directory holding <source>/manifest.jsonl, defaults to ingest.manifest_path")
	limit := flag.Int("limit", 0, "Maximum number of items to ingest, 0 for all")
	list := flag.Bool("list", false, "List available staging sources and exit")
	configPath := flag.String("config", "", "Path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to load config")
	}

	basePath := cfg.Ingest.ManifestPath
	if *manifestDir != "" {
		basePath = *manifestDir
	}

	if *list {
		sources, err := staging.ListStagingSources(basePath)
		if err != nil {
			appLogger.WithError(err).Fatal("Failed to list staging sources")
		}
		for _, s := range sources {
			fmt.Println(s)
		}
		return
	}
	if *sourceID == "" {
		appLogger.Fatal("-source is required")
	}

	appLogger.WithFields(logger.Fields{
		logger.FieldSource: *sourceID,
		"manifest":         basePath,
		"limit":            *limit,
	}).Info("Starting ingestion")

	db, err := repository.InitDB(&cfg.Database)
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to initialize database")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	newsRepo := repository.NewNewsRepository(db)
	ingestService := service.NewIngestService(newsRepo, cfg.Ingest.BatchSize)

	stats, err := ingestService.IngestFromSource(ctx, staging.NewAdapter(basePath, *sourceID), *limit)
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to ingest from source")
	}

	total, err := newsRepo.Count(ctx)
	if err != nil {
		appLogger.WithError(err).Warn("Failed to count stored items")
	}
	appLogger.WithFields(logger.Fields{
		"total":    stats.TotalItems,
		"stored":   stats.StoredItems,
		"invalid":  stats.InvalidItems,
		"in_store": total,
	}).Info("Ingestion finished")
}
