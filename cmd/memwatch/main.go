package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"golang.org/x/sync/errgroup"

	"memwatch/internal/database"
	"memwatch/internal/handlers"
	"memwatch/internal/logging"
	"memwatch/internal/memory"
	"memwatch/internal/metrics"
	"memwatch/internal/middleware"
	"memwatch/internal/notify"
	"memwatch/internal/settings"
	"memwatch/internal/startup"
	"memwatch/internal/telegram"
)

const (
	shutdownTimeout          = 10 * time.Second
	metricsCollectorInterval = 15 * time.Second
)

func main() {
	if err := run(); err != nil {
		startup.LogFatal("Service stopped: %v", err)
	}
}

func run() error {
	startTime := time.Now()

	config, err := startup.LoadConfig()
	if err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	metrics.SetAppInfo(startup.Version, startup.Commit, startup.GoVersion)
	metrics.InitializeMetrics(config.Watch.MaxUsedRatio)
	observer := metrics.NewMemoryObserver()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dbStart := time.Now()
	db, err := database.New(ctx, config.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Warn("Failed to close database: %v", err)
		}
	}()
	startup.LogDatabaseInit(time.Since(dbStart))

	cache := memory.NewCache(memory.NewSystemSource(), memory.CacheOptions{
		ReadTimeout: config.Watch.ReadTimeout,
		Observer:    observer,
	})
	gate := memory.NewGate(true, observer)
	toggle := settings.NewToggle(gate, db)
	if err := toggle.Load(ctx); err != nil {
		logging.Warn("Using default alert setting: %v", err)
	}

	var bot *telegram.Bot
	if config.BotEnabled() {
		api, err := telegram.Connect(config.BotToken)
		if err != nil {
			return err
		}
		bot = telegram.New(api, config.GroupChatID, cache, toggle)
	}

	notifier, sinks := buildNotifier(config, bot)
	startup.LogNotifierInit(sinks)

	watch, err := memory.NewWatch(config.Watch, cache, gate, notifier, observer)
	if err != nil {
		return err
	}
	startup.LogWatchInit(config.Watch, gate.Enabled())

	collector := metrics.NewCollector(watch, metricsCollectorInterval)
	collector.Start()
	defer collector.Stop()

	h := handlers.New(cache, toggle, watch)

	loggingConfig := middleware.DefaultLoggingConfig()
	loggingConfig.LogHealthChecks = config.LogHealthChecks
	router := h.NewRouter(handlers.RouterConfig{
		Middleware: []mux.MiddlewareFunc{
			middleware.Logger(loggingConfig),
			middleware.Metrics(middleware.DefaultMetricsConfig()),
		},
		APIMiddleware: []mux.MiddlewareFunc{
			middleware.BearerAuth(config.APITokenHash),
		},
	})
	startup.LogHTTPRoutes(router, config.LogHealthChecks)

	servers := []*http.Server{{
		Addr:              ":" + config.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}}
	if config.MetricsEnabled {
		servers = append(servers, &http.Server{
			Addr:              ":" + config.MetricsPort,
			Handler:           handlers.NewMetricsRouter(),
			ReadHeaderTimeout: 10 * time.Second,
		})
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error { return watch.Run(gctx) })
	for _, srv := range servers {
		srv := srv
		g.Go(func() error { return serve(srv) })
	}
	if bot != nil {
		g.Go(func() error { return bot.Run(gctx) })
	}
	g.Go(func() error {
		<-gctx.Done()
		shutdown(ctx, servers)
		return nil
	})

	startup.LogServerStarted(startup.ServerConfig{
		Port:            config.Port,
		MetricsPort:     config.MetricsPort,
		MetricsEnabled:  config.MetricsEnabled,
		BotEnabled:      bot != nil,
		StartupDuration: time.Since(startTime),
	})

	err = g.Wait()
	if ctx.Err() != nil {
		// Signal-initiated shutdown; component errors are just cancellation
		startup.LogShutdownComplete()
		return nil
	}
	return err
}

// buildNotifier returns the notifier the watch delivers to and the names of
// its sinks. The log sink is used only when nothing else is configured.
func buildNotifier(config *startup.Config, bot *telegram.Bot) (memory.Notifier, []string) {
	var (
		sinks notify.Multi
		names []string
	)

	if bot != nil {
		sinks = append(sinks, bot)
		names = append(names, "telegram")
	}
	if config.WebhookURL != "" {
		sinks = append(sinks, notify.NewWebhook(config.WebhookURL, nil))
		names = append(names, "webhook")
	}
	if len(sinks) == 0 {
		return notify.NewLog(), []string{"log"}
	}
	if len(sinks) == 1 {
		return sinks[0], names
	}
	return sinks, names
}

func serve(srv *http.Server) error {
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server on %s: %w", srv.Addr, err)
	}
	return nil
}

func shutdown(ctx context.Context, servers []*http.Server) {
	reason := "component stopped"
	if ctx.Err() != nil {
		reason = "received signal"
	}
	startup.LogShutdownInitiated(reason)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	for _, srv := range servers {
		srv := srv
		startup.LogShutdownStep("Shutting down HTTP server on " + srv.Addr)
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logging.Warn("Server shutdown error: %v", err)
		} else {
			startup.LogShutdownStepComplete("HTTP server on " + srv.Addr + " stopped")
		}
	}
}
