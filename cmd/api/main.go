package main

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/accesslens/accesslens/internal/analyzer"
	"github.com/accesslens/accesslens/internal/platform/config"
	"github.com/accesslens/accesslens/internal/platform/logger"
	"github.com/accesslens/accesslens/internal/platform/middleware"
	"github.com/accesslens/accesslens/internal/scan"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.LogLevel)

	scanner := scan.NewSimulatedScanner(cfg.StepDelay)
	service := analyzer.NewService(scanner, log)
	transport := analyzer.NewTransport(service, log)

	mux := http.NewServeMux()
	transport.RegisterRoutes(mux)

	handler := middleware.RequestID(middleware.Logging(log)(mux))

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.Info("server starting", "port", cfg.Port, "step_delay", cfg.StepDelay.String())
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
