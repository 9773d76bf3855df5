package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/monkroe/crypto-tracker-sub000/internal/api/handlers"
	custommiddleware "github.com/monkroe/crypto-tracker-sub000/internal/api/middleware"
	"github.com/monkroe/crypto-tracker-sub000/internal/config"
	"github.com/monkroe/crypto-tracker-sub000/internal/service"
)

// NewRouter creates and configures the HTTP router
func NewRouter(
	systemService *service.SystemService,
	settingsService *service.SettingsService,
	ledgerService *service.LedgerService,
	priceService *service.PriceService,
	cfg *config.Config,
) http.Handler {
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
			systemHandler := handlers.NewSystemHandler(systemService, settingsService)
			r.Get("/health", systemHandler.Health)
			r.Put("/oracle-key", systemHandler.StoreOracleKey)
		})

		r.Route("/coin", func(r chi.Router) {
			coinHandler := handlers.NewCoinHandler(ledgerService, priceService)
			r.Get("/", coinHandler.Coins)
			r.Get("/{id}/chart", coinHandler.Chart)
		})

		r.Route("/transaction", func(r chi.Router) {
			transactionHandler := handlers.NewTransactionHandler(ledgerService)
			r.Get("/", transactionHandler.AllTransactions)
			r.Post("/", transactionHandler.CreateTransaction)
			r.Post("/import", transactionHandler.ImportTransactions)

			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Get("/", transactionHandler.GetTransaction)
				r.Put("/", transactionHandler.UpdateTransaction)
				r.Delete("/", transactionHandler.DeleteTransaction)
			})
		})

		r.Route("/goal", func(r chi.Router) {
			goalHandler := handlers.NewGoalHandler(ledgerService)
			r.Get("/", goalHandler.Goals)
			r.Post("/", goalHandler.CreateGoal)

			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Put("/", goalHandler.UpdateGoal)
				r.Delete("/", goalHandler.DeleteGoal)
			})
		})

		r.Route("/portfolio", func(r chi.Router) {
			portfolioHandler := handlers.NewPortfolioHandler(ledgerService, priceService)
			r.Get("/holdings", portfolioHandler.Holdings)
			r.Get("/history", portfolioHandler.History)
			r.Post("/prices/refresh", portfolioHandler.RefreshPrices)
		})
	})

	return r
}
