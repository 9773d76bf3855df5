package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/monkroe/crypto-tracker-sub000/internal/api"
	"github.com/monkroe/crypto-tracker-sub000/internal/coingecko"
	"github.com/monkroe/crypto-tracker-sub000/internal/config"
	"github.com/monkroe/crypto-tracker-sub000/internal/database"
	"github.com/monkroe/crypto-tracker-sub000/internal/portfolio"
	"github.com/monkroe/crypto-tracker-sub000/internal/pricecache"
	"github.com/monkroe/crypto-tracker-sub000/internal/repository"
	"github.com/monkroe/crypto-tracker-sub000/internal/secrets"
	"github.com/monkroe/crypto-tracker-sub000/internal/service"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Open database connection
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	log.Printf("Connected to database: %s", cfg.Database.Path)

	// Apply migrations
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to apply migrations: %v", err)
	}

	// Create repositories
	coinRepo := repository.NewCoinRepository(db)
	transactionRepo := repository.NewTransactionRepository(db)
	goalRepo := repository.NewGoalRepository(db)
	settingRepo := repository.NewSettingRepository(db)

	// Encrypted settings store; disabled when no fernet key is configured
	var keeper *secrets.Keeper
	if cfg.Secrets.FernetKey != "" {
		keeper, err = secrets.NewKeeper(cfg.Secrets.FernetKey)
		if err != nil {
			log.Fatalf("Failed to load fernet key: %v", err)
		}
	}

	// Create services
	systemService := service.NewSystemService(db)
	settingsService := service.NewSettingsService(settingRepo, keeper)

	cache := pricecache.New()
	tracker := portfolio.NewTracker(cache)

	ledgerService := service.NewLedgerService(
		tracker,
		coinRepo,
		transactionRepo,
		goalRepo,
	)
	if err := ledgerService.Bootstrap(); err != nil {
		log.Fatalf("Failed to bootstrap ledger: %v", err)
	}

	// A stored key takes precedence over the environment one
	oracleKey := cfg.Oracle.APIKey
	if stored, err := settingsService.OracleAPIKey(); err != nil {
		log.Printf("Failed to read stored oracle key, using environment: %v", err)
	} else if stored != "" {
		oracleKey = stored
	}

	oracle := coingecko.NewClient(cfg.Oracle.BaseURL, oracleKey)
	priceService := service.NewPriceService(cache, oracle, tracker)

	// Prices at startup are mandatory: a tracker without an initial price set
	// would silently value every holding at zero.
	startupCtx, cancelStartup := context.WithTimeout(context.Background(), 30*time.Second)
	if err := priceService.RefreshAll(startupCtx); err != nil {
		cancelStartup()
		log.Fatalf("Failed to fetch initial prices: %v", err)
	}
	cancelStartup()

	// Background price refresh
	scheduler := cron.New()
	_, err = scheduler.AddFunc(cfg.Oracle.RefreshSchedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 45*time.Second)
		defer cancel()
		if err := priceService.RefreshStale(ctx); err != nil {
			log.Printf("Scheduled price refresh failed: %v", err)
		}
	})
	if err != nil {
		log.Fatalf("Failed to schedule price refresh: %v", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	// Create router
	router := api.NewRouter(systemService, settingsService, ledgerService, priceService, cfg)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Starting server on %s", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
