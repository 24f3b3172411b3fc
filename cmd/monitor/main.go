package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"pricewatch/internal/config"
	"pricewatch/internal/database"
	"pricewatch/internal/extractor"
	"pricewatch/internal/fetcher"
	"pricewatch/internal/handlers"
	"pricewatch/internal/logger"
	"pricewatch/internal/monitor"
	"pricewatch/internal/notifier"
	"pricewatch/internal/observability"
	"pricewatch/internal/store"
)

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Open the store
	dbConfig, err := database.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}
	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	priceStore := store.NewStore(dbManager.DB())
	if err := priceStore.EnsureSchema(); err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}

	// Build the pipeline. Everything the loop needs is constructed here
	// and injected; there is no ambient process state.
	telegram, err := notifier.NewTelegram(cfg.TelegramToken, cfg.TelegramChatID)
	if err != nil {
		return fmt.Errorf("failed to initialize Telegram bot: %w", err)
	}

	mon := monitor.New(
		fetcher.New(cfg.HTTPTimeout, cfg.UserAgent),
		extractor.New(),
		priceStore,
		telegram,
		cfg.ProductURLs,
		cfg.PollInterval,
		log,
	)

	// Metrics endpoint
	observability.Start(cfg.MetricsPort)
	log.Infof("Metrics available on port %s", cfg.MetricsPort)

	// Read-only history API
	router := handlers.NewRouter(handlers.NewPriceHandler(priceStore))
	go func() {
		log.Infof("Starting read API on port %s", cfg.APIPort)
		if err := router.Run(":" + cfg.APIPort); err != nil {
			log.Errorw("read API stopped", "error", err)
		}
	}()

	// Run until interrupted; the loop observes cancellation between URLs
	// and between cycles.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runErr := mon.Run(ctx)

	if err := dbManager.Close(); err != nil {
		log.Errorw("failed to close store", "error", err)
	} else {
		log.Infow("store closed")
	}

	return runErr
}
