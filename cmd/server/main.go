package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"wisata/internal/api"
	"wisata/internal/auth"
	"wisata/internal/auth/guard"
	"wisata/internal/catalog"
	"wisata/internal/platform/config"
	"wisata/internal/platform/health"
	"wisata/internal/platform/httpserver"
	"wisata/internal/platform/logger"
	"wisata/internal/platform/metrics"
	"wisata/internal/platform/tracer"
	"wisata/internal/sentinel"
	"wisata/internal/session"
	"wisata/internal/storefront"
	"wisata/internal/web"
)

// main wires the gateway's dependencies and keeps the server lifecycle
// small. Domain logic lives in the internal packages.
func main() {
	// Best effort; the gateway runs fine without a .env file.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}
	log := logger.New(cfg.LogLevel)

	log.Info("initializing wisata gateway",
		"addr", cfg.Addr,
		"api_base_url", cfg.APIBaseURL,
		"session_file", cfg.SessionFile,
	)

	m := metrics.New()
	store := session.NewFile(cfg.SessionFile, cfg.SessionKey)

	client := api.NewClient(cfg.APIBaseURL, store,
		api.WithLogger(log),
		api.WithMetrics(m),
		api.WithTracer(tracer.NewOTel()),
		api.WithHTTPClient(&http.Client{Timeout: cfg.UpstreamTimeout}),
	)

	manager := auth.NewManager(store,
		auth.WithManagerLogger(log),
		auth.WithManagerMetrics(m),
		auth.WithNotifier(client.Auth()),
	)
	manager.Load()

	healthHandler := health.New(cfg.Environment)
	healthHandler.RegisterCheck("session_store", func() error {
		// An empty store is healthy; only I/O trouble is not.
		_, err := store.Read()
		if err != nil && !errors.Is(err, sentinel.ErrNoSession) && !errors.Is(err, sentinel.ErrCorrupt) {
			return err
		}
		return nil
	})

	handler := web.New(web.Config{
		Logger:          log,
		Manager:         manager,
		Flow:            auth.NewFlow(client.Auth(), manager, log),
		Guard:           guard.New(manager, log, m),
		Dashboard:       client.Dashboard(),
		Tours:           catalog.NewTours(client, log),
		Activities:      catalog.NewActivities(client, log),
		Rentals:         catalog.NewRentals(client, log),
		TourBrowser:     storefront.NewTourBrowser(client, log),
		ActivityBrowser: storefront.NewActivityBrowser(client, log),
		RentalBrowser:   storefront.NewRentalBrowser(client, log),
		Home: storefront.NewHome(client,
			storefront.WithHomeLogger(log),
			storefront.WithHomeMetrics(m),
			storefront.WithHomeTTL(cfg.HomeCacheTTL),
		),
		Health:         healthHandler,
		MetricsHandler: promhttp.Handler(),
	})

	srv := httpserver.New(cfg.Addr, handler.Router())

	log.Info("starting http server", "addr", cfg.Addr)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown on SIGINT
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit

	log.Info("shutting down server gracefully")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}

	log.Info("server stopped")
}
