package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/mattcc18/financy-ledger/internal/account"
	accountStore "github.com/mattcc18/financy-ledger/internal/account/store"
	"github.com/mattcc18/financy-ledger/internal/auth"
	"github.com/mattcc18/financy-ledger/internal/balance"
	balanceStore "github.com/mattcc18/financy-ledger/internal/balance/store"
	"github.com/mattcc18/financy-ledger/internal/budget"
	budgetStore "github.com/mattcc18/financy-ledger/internal/budget/store"
	"github.com/mattcc18/financy-ledger/internal/category"
	categoryStore "github.com/mattcc18/financy-ledger/internal/category/store"
	"github.com/mattcc18/financy-ledger/internal/config"
	"github.com/mattcc18/financy-ledger/internal/database"
	"github.com/mattcc18/financy-ledger/internal/expense"
	expenseStore "github.com/mattcc18/financy-ledger/internal/expense/store"
	"github.com/mattcc18/financy-ledger/internal/goal"
	goalStore "github.com/mattcc18/financy-ledger/internal/goal/store"
	ledgerHttp "github.com/mattcc18/financy-ledger/internal/http"
	accountHandler "github.com/mattcc18/financy-ledger/internal/http/account"
	balanceHandler "github.com/mattcc18/financy-ledger/internal/http/balance"
	budgetHandler "github.com/mattcc18/financy-ledger/internal/http/budget"
	categoryHandler "github.com/mattcc18/financy-ledger/internal/http/category"
	expenseHandler "github.com/mattcc18/financy-ledger/internal/http/expense"
	goalHandler "github.com/mattcc18/financy-ledger/internal/http/goal"
	importHandler "github.com/mattcc18/financy-ledger/internal/http/importcsv"
	metricHandler "github.com/mattcc18/financy-ledger/internal/http/metric"
	patternHandler "github.com/mattcc18/financy-ledger/internal/http/pattern"
	rateHandler "github.com/mattcc18/financy-ledger/internal/http/rate"
	txHandler "github.com/mattcc18/financy-ledger/internal/http/transaction"
	transferHandler "github.com/mattcc18/financy-ledger/internal/http/transfer"
	tripHandler "github.com/mattcc18/financy-ledger/internal/http/trip"
	"github.com/mattcc18/financy-ledger/internal/importer"
	"github.com/mattcc18/financy-ledger/internal/ledger"
	ledgerStore "github.com/mattcc18/financy-ledger/internal/ledger/store"
	"github.com/mattcc18/financy-ledger/internal/pattern"
	patternStore "github.com/mattcc18/financy-ledger/internal/pattern/store"
	"github.com/mattcc18/financy-ledger/internal/rate"
	rateStore "github.com/mattcc18/financy-ledger/internal/rate/store"
	"github.com/mattcc18/financy-ledger/internal/trip"
	tripStore "github.com/mattcc18/financy-ledger/internal/trip/store"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := database.New(ctx, cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	var (
		accountService = account.NewService(accountStore.New(db))
		tripService    = trip.NewService(tripStore.New(db))
		ledgerService  = ledger.NewService(ledgerStore.New(db))
		patternService = pattern.NewService(patternStore.New(db))
		rateService    = rate.NewService(rateStore.New(db))
		budgetService  = budget.NewService(budgetStore.New(db))
		goalService    = goal.NewService(goalStore.New(db))
		expenseService = expense.NewService(expenseStore.New(db), accountService, tripService)
		categorySvc    = category.NewService(categoryStore.New(db))
		balanceService = balance.NewService(balanceStore.New(db), rateService)
		importService  = importer.NewService(accountService, tripService, patternService, ledgerService)
	)

	verifier := auth.NewVerifier(cfg.Auth)
	if !verifier.Enabled() {
		slog.Warn("authentication disabled, no auth provider configured")
	}

	router := ledgerHttp.New(
		verifier,
		accountHandler.NewHandler(accountService),
		tripHandler.NewHandler(tripService),
		txHandler.NewHandler(ledgerService),
		transferHandler.NewHandler(ledgerService, accountService),
		rateHandler.NewHandler(rateService),
		budgetHandler.NewHandler(budgetService),
		goalHandler.NewHandler(goalService),
		expenseHandler.NewHandler(expenseService),
		categoryHandler.NewHandler(categorySvc),
		balanceHandler.NewHandler(balanceService),
		metricHandler.NewHandler(balanceService),
		importHandler.NewHandler(importService),
		patternHandler.NewHandler(patternService),
	)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: cfg.Server.Timeout,
	}

	slog.Info("starting server", "addr", server.Addr)

	if err := server.ListenAndServe(); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
