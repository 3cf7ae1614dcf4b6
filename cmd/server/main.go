package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"github.com/obsidiancapital/investor-portal/internal/apiclient"
	"github.com/obsidiancapital/investor-portal/internal/config"
	"github.com/obsidiancapital/investor-portal/internal/controller"
	"github.com/obsidiancapital/investor-portal/internal/loader"
	"github.com/obsidiancapital/investor-portal/internal/notify"
	"github.com/obsidiancapital/investor-portal/internal/server/handlers"
	"github.com/obsidiancapital/investor-portal/internal/server/router"
	"github.com/obsidiancapital/investor-portal/internal/session"
	"github.com/obsidiancapital/investor-portal/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New(cfg.Debug))
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	// Notices fan out to the log and to a buffer the page handlers drain
	// into their responses, the way the original portal raised toasts.
	notices := notify.NewRecorder()
	notifier := notify.Tee{notify.NewZap(logger.Named(baseLogger, "notify")), notices}

	// The session store is the token provider for the API client, and the
	// client performs the store's login/register calls. Break the loop by
	// constructing the client first with a late-bound provider.
	var store *session.Store
	api := apiclient.New(cfg.API, tokenProviderFunc(func() string {
		if store == nil {
			return ""
		}
		return store.Token()
	}), notifier, logger.Named(baseLogger, "apiclient"))

	store = session.New(cfg.Session, api, notifier, logger.Named(baseLogger, "session"))

	loaders := loader.New(api, notifier, logger.Named(baseLogger, "loader"))

	dashboardCtrl := controller.NewDashboard(loaders.Dashboard, logger.Named(baseLogger, "ctrl.dashboard"))
	allocationsCtrl := controller.NewAllocations(loaders.Allocations, api, notifier, logger.Named(baseLogger, "ctrl.allocations"))
	salesCtrl := controller.NewSales(loaders.Sales, api, notifier, logger.Named(baseLogger, "ctrl.sales"))
	reportsCtrl := controller.NewReports(loaders.Reports, api, notifier, logger.Named(baseLogger, "ctrl.reports"))

	authHandler := handlers.NewAuthHandler(store, notices, logger.Named(baseLogger, "handlers.auth"))
	pageHandler := handlers.NewPageHandler(dashboardCtrl, allocationsCtrl, salesCtrl, reportsCtrl, notices, logger.Named(baseLogger, "handlers.pages"))

	engine := router.New(authHandler, pageHandler, store, logger.Named(baseLogger, "router"))

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}

// tokenProviderFunc adapts a closure to apiclient.TokenProvider.
type tokenProviderFunc func() string

func (f tokenProviderFunc) Token() string { return f() }
