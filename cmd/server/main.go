package main

import (
	"log"
	"time"

	"go.uber.org/zap"

	"github.com/biqgook/raffletool/internal/api"
	"github.com/biqgook/raffletool/internal/config"
	"github.com/biqgook/raffletool/internal/raffle"
	"github.com/biqgook/raffletool/internal/reddit"
	"github.com/biqgook/raffletool/internal/storage"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := newLogger(cfg.Logging.Mode)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer logger.Sync()
	sugar := logger.Sugar()

	// Initialize storage
	var store storage.Storage
	switch cfg.Storage.Type {
	case "sqlite":
		store, err = storage.NewSQLiteStorage(cfg.Storage.Path)
		if err != nil {
			sugar.Fatalw("failed to initialize storage", "err", err)
		}
		defer store.Close()
	default:
		sugar.Fatalw("unsupported storage type", "type", cfg.Storage.Type)
	}

	// Parse fetch delay
	fetchDelay, err := time.ParseDuration(cfg.Reddit.FetchDelay)
	if err != nil {
		sugar.Fatalw("invalid fetch delay", "value", cfg.Reddit.FetchDelay, "err", err)
	}

	fetcher := reddit.NewFetcher(cfg.Reddit.BaseURL, cfg.Reddit.UserAgent, fetchDelay, sugar)
	engine := raffle.NewEngine(sugar)

	server := api.New(cfg, engine, fetcher, store, sugar)

	addr := cfg.Server.Host + ":" + cfg.Server.Port
	sugar.Infow("configuration",
		"reddit_base_url", cfg.Reddit.BaseURL,
		"storage_path", cfg.Storage.Path,
		"filtered_bots", cfg.Raffle.FilteredBots,
		"rate_limit_per_minute", cfg.RateLimit.RequestsPerMinute)

	if err := server.Run(addr); err != nil {
		sugar.Fatalw("server exited", "err", err)
	}
}

func newLogger(mode string) (*zap.Logger, error) {
	if mode == "development" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
