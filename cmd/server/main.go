// The splitbridge server exposes Splitwise expense splitting as chat
// tool endpoints for the Omi assistant, plus the tool manifest, a health
// check, and Prometheus metrics.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"splitbridge/internal/config"
	"splitbridge/internal/middleware"
	"splitbridge/internal/service"
	"splitbridge/internal/splitwise"
	"splitbridge/internal/tools"
	"splitbridge/pkg/logging"
)

func main() {
	_ = godotenv.Load()
	log := logging.Setup()

	cfg, err := config.FromEnv()
	if err != nil {
		log.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		log.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	client := splitwise.New(cfg.SplitwiseBaseURL, cfg.SplitwiseToken)
	svc := service.NewExpenseService(client, client, service.Options{
		Threshold:       cfg.MatchThreshold,
		DefaultCurrency: cfg.DefaultCurrency,
		Logger:          log,
	})

	mux := http.NewServeMux()
	tools.NewHandler(svc, log).Register(mux)
	mux.Handle("/metrics", promhttp.Handler())

	handler := middleware.Logging(middleware.Metrics(middleware.CORS(mux)))

	server := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           h2c.NewHandler(handler, &http2.Server{}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("Starting server", "addr", cfg.ListenAddr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Info("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Error("Server shutdown failed", "error", err)
	}
}
