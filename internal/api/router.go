package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/jvanelst/Investment-Dashboard-Backend/internal/api/handlers"
	custommiddleware "github.com/jvanelst/Investment-Dashboard-Backend/internal/api/middleware"
	"github.com/jvanelst/Investment-Dashboard-Backend/internal/config"
	"github.com/jvanelst/Investment-Dashboard-Backend/internal/service"
)

// Services bundles the service dependencies the router needs.
type Services struct {
	System      *service.SystemService
	Watchlist   *service.WatchlistService
	Transaction *service.TransactionService
	Snapshot    *service.SnapshotService
	Price       *service.PriceService
}

// NewRouter creates and configures the HTTP router
func NewRouter(svc Services, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS middleware
	corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
	r.Use(corsMiddleware.Handler)

	// API routes
	r.Route("/api", func(r chi.Router) {
		// System namespace
		r.Route("/system", func(r chi.Router) {
			systemHandler := handlers.NewSystemHandler(svc.System)
			r.Get("/health", systemHandler.Health)
			r.Get("/version", systemHandler.Version)
		})

		r.Route("/watchlist", func(r chi.Router) {
			watchlistHandler := handlers.NewWatchlistHandler(svc.Watchlist)
			r.Get("/", watchlistHandler.Watchlist)
			r.Get("/summary", watchlistHandler.Summary)
			r.Post("/", watchlistHandler.AddSymbol)
			r.Delete("/{symbol}", watchlistHandler.RemoveSymbol)
		})

		r.Route("/transaction", func(r chi.Router) {
			transactionHandler := handlers.NewTransactionHandler(svc.Transaction)
			r.Get("/", transactionHandler.AllTransactions)
			r.Post("/", transactionHandler.CreateTransaction)
			r.Get("/symbol/{symbol}", transactionHandler.TransactionsPerSymbol)

			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Get("/", transactionHandler.GetTransaction)
				r.Put("/", transactionHandler.UpdateTransaction)
				r.Delete("/", transactionHandler.DeleteTransaction)
			})
		})

		r.Route("/price", func(r chi.Router) {
			priceHandler := handlers.NewPriceHandler(svc.Price)
			r.Post("/", priceHandler.UpsertPrice)
			r.Post("/rate", priceHandler.UpsertExchangeRate)
			r.Get("/{symbol}", priceHandler.PricesPerSymbol)
		})

		r.Route("/snapshot", func(r chi.Router) {
			snapshotHandler := handlers.NewSnapshotHandler(svc.Snapshot)
			r.Get("/{symbol}", snapshotHandler.Timeline)
			r.Get("/{symbol}/latest", snapshotHandler.Latest)
			r.Get("/{symbol}/opportunities", snapshotHandler.TopOpportunities)

			// Recompute endpoints are internal-only
			r.Group(func(r chi.Router) {
				r.Use(custommiddleware.APIKeyMiddleware)
				r.Post("/recompute", snapshotHandler.RecomputeAll)
				r.Post("/{symbol}/recompute", snapshotHandler.RecomputeSymbol)
			})
		})
	})

	return r
}
