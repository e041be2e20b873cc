package app

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/prasanthlucy/Resume-project-xeedo/config"
	"github.com/prasanthlucy/Resume-project-xeedo/logger"
	"github.com/prasanthlucy/Resume-project-xeedo/metrics"
	"github.com/prasanthlucy/Resume-project-xeedo/search"
	"github.com/prasanthlucy/Resume-project-xeedo/server"
)

// runServe starts the HTTP server and blocks until SIGINT/SIGTERM, then
// shuts down gracefully.
func runServe(cfg config.Config) int {
	log, err := logger.New(cfg.Logging.Level)
	if err != nil {
		os.Stderr.WriteString("logger error: " + err.Error() + "\n")
		return 1
	}
	defer func() { _ = log.Sync() }()

	m := metrics.New(prometheus.DefaultRegisterer)
	loader := search.NewLoader(search.NewExtractorRegistry(), cfg.Extract.Workers, cfg.FileTimeout(), log)
	srv := server.New(loader, cfg.Search.ExcerptWindow, cfg.HTTP.MaxUploadMB, log, m)

	httpSrv := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      srv.Router(),
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Info("starting HTTP server", zap.String("addr", cfg.HTTP.Addr))
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	log.Info("received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(),
		time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		return fatalLog(log, "error during shutdown", err)
	}

	log.Info("server stopped gracefully")
	return 0
}
