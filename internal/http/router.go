package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/mattcc18/financy-ledger/internal/auth"
	accountHandler "github.com/mattcc18/financy-ledger/internal/http/account"
	balanceHandler "github.com/mattcc18/financy-ledger/internal/http/balance"
	budgetHandler "github.com/mattcc18/financy-ledger/internal/http/budget"
	categoryHandler "github.com/mattcc18/financy-ledger/internal/http/category"
	expenseHandler "github.com/mattcc18/financy-ledger/internal/http/expense"
	goalHandler "github.com/mattcc18/financy-ledger/internal/http/goal"
	"github.com/mattcc18/financy-ledger/internal/http/importcsv"
	metricHandler "github.com/mattcc18/financy-ledger/internal/http/metric"
	patternHandler "github.com/mattcc18/financy-ledger/internal/http/pattern"
	rateHandler "github.com/mattcc18/financy-ledger/internal/http/rate"
	"github.com/mattcc18/financy-ledger/internal/http/transaction"
	"github.com/mattcc18/financy-ledger/internal/http/transfer"
	tripHandler "github.com/mattcc18/financy-ledger/internal/http/trip"
)

func New(
	verifier *auth.Verifier,
	accountsV1 *accountHandler.Handler,
	tripsV1 *tripHandler.Handler,
	transactionsV1 *transaction.Handler,
	transfersV1 *transfer.Handler,
	ratesV1 *rateHandler.Handler,
	budgetsV1 *budgetHandler.Handler,
	goalsV1 *goalHandler.Handler,
	expensesV1 *expenseHandler.Handler,
	categoriesV1 *categoryHandler.Handler,
	balancesV1 *balanceHandler.Handler,
	metricsV1 *metricHandler.Handler,
	importV1 *importcsv.Handler,
	patternsV1 *patternHandler.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "apikey"},
	}))

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(verifier.Middleware)

		jsonOnly := middleware.AllowContentType("application/json")

		r.Route("/accounts", func(r chi.Router) {
			r.Use(jsonOnly)
			accountsV1.Routes(r)
		})

		r.Route("/trips", func(r chi.Router) {
			r.Use(jsonOnly)
			tripsV1.Routes(r)
		})

		r.Route("/transactions", func(r chi.Router) {
			r.Use(jsonOnly)
			transactionsV1.Routes(r)
		})

		r.Group(func(r chi.Router) {
			r.Use(jsonOnly)
			transfersV1.Routes(r)
		})

		r.Route("/exchange-rates", func(r chi.Router) {
			ratesV1.Routes(r)
		})

		r.Route("/budgets", func(r chi.Router) {
			r.Use(jsonOnly)
			budgetsV1.Routes(r)
		})

		r.Route("/goals", func(r chi.Router) {
			r.Use(jsonOnly)
			goalsV1.Routes(r)
		})

		r.Route("/expenses", func(r chi.Router) {
			r.Use(jsonOnly)
			expensesV1.Routes(r)
		})

		r.Route("/categories", func(r chi.Router) {
			r.Use(jsonOnly)
			categoriesV1.Routes(r)
		})

		r.Route("/balances", func(r chi.Router) {
			balancesV1.Routes(r)
		})

		r.Route("/metrics", func(r chi.Router) {
			metricsV1.Routes(r)
		})

		// multipart upload, no content-type restriction
		r.Route("/import", importV1.Routes)

		r.Route("/patterns", func(r chi.Router) {
			patternsV1.Routes(r)
		})
	})

	return router
}
