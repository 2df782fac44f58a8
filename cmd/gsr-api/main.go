package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/merev/gsr-api/internal/config"
	"github.com/merev/gsr-api/internal/game"
	apphttp "github.com/merev/gsr-api/internal/http"
	"github.com/merev/gsr-api/internal/logging"
	"github.com/merev/gsr-api/internal/metrics"
	"github.com/merev/gsr-api/internal/storage"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.opentelemetry.io/otel"
)

func main() {
	configPath := flag.String("config", envOrDefault("CONFIG_PATH", "config.yaml"), "path to the YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := logging.New(cfg.Log, os.Stdout)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	slog.SetDefault(logger)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	repo, closeRepo, err := storage.Open(ctx, cfg.Storage, logger)
	cancel()
	if err != nil {
		logger.Error("failed to open storage", slog.Any("error", err))
		os.Exit(1)
	}
	defer closeRepo()

	routerCfg := apphttp.RouterConfig{
		RateLimit:      cfg.HTTP.RateLimit,
		RateBurst:      cfg.HTTP.RateBurst,
		AllowedOrigins: cfg.HTTP.AllowedOrigins,
	}
	gameMetrics := metrics.NewNoop()
	if cfg.Metrics.Enabled {
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		gameMetrics, err = metrics.NewPrometheus(reg)
		if err != nil {
			logger.Error("failed to register metrics", slog.Any("error", err))
			os.Exit(1)
		}
		routerCfg.Metrics = reg
	}

	svc := game.NewService(repo, logger, gameMetrics, otel.Tracer("github.com/merev/gsr-api/game"))
	handler := game.NewHandler(svc, cfg.Share.BaseURL, cfg.HTTP.RequestTimeout, logger)
	router := apphttp.NewRouter(handler, routerCfg)

	server := &http.Server{
		Addr:              ":" + cfg.HTTP.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("gsr-api running", slog.String("port", cfg.HTTP.Port), slog.String("storage", cfg.Storage.Driver))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down gsr-api...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", slog.Any("error", err))
	}
}

func envOrDefault(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}
