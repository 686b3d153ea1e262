package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jvanelst/Investment-Dashboard-Backend/internal/api"
	"github.com/jvanelst/Investment-Dashboard-Backend/internal/config"
	"github.com/jvanelst/Investment-Dashboard-Backend/internal/database"
	"github.com/jvanelst/Investment-Dashboard-Backend/internal/repository"
	"github.com/jvanelst/Investment-Dashboard-Backend/internal/scheduler"
	"github.com/jvanelst/Investment-Dashboard-Backend/internal/service"
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

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Printf("Connected to database: %s", cfg.Database.Path)

	// Create repositories
	watchlistRepo := repository.NewWatchlistRepository(db)
	transactionRepo := repository.NewTransactionRepository(db)
	priceRepo := repository.NewPriceRepository(db)
	rateRepo := repository.NewExchangeRateRepository(db)
	snapshotRepo := repository.NewSnapshotRepository(db)

	// Create services
	systemService := service.NewSystemService(db)
	snapshotService, err := service.NewSnapshotService(
		snapshotRepo,
		transactionRepo,
		priceRepo,
		rateRepo,
		watchlistRepo,
		cfg.Valuation,
	)
	if err != nil {
		log.Fatalf("Failed to configure valuation engine: %v", err)
	}
	transactionService := service.NewTransactionService(
		transactionRepo,
		snapshotService,
		cfg.Valuation.BaseCurrency,
	)
	watchlistService := service.NewWatchlistService(
		watchlistRepo,
		snapshotRepo,
		priceRepo,
	)
	priceService := service.NewPriceService(
		priceRepo,
		rateRepo,
		snapshotService,
		cfg.Valuation.BaseCurrency,
	)

	// Start the nightly recompute
	sched, err := scheduler.New(snapshotService, cfg.Scheduler.RecomputeCron)
	if err != nil {
		log.Fatalf("Failed to create scheduler: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	// Create router
	router := api.NewRouter(api.Services{
		System:      systemService,
		Watchlist:   watchlistService,
		Transaction: transactionService,
		Snapshot:    snapshotService,
		Price:       priceService,
	}, cfg)

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
