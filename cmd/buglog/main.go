package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"buglog/internal/config"
	"buglog/internal/observability/logging"
	"buglog/internal/observability/metrics"
	"buglog/internal/pool"
	impl "buglog/internal/service/impl"
	httpx "buglog/internal/transport/http"
	"buglog/pkg/db"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const serviceName = "buglog"

func main() {
	config.LoadDotenv()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("config", "error", err)
		os.Exit(1)
	}

	logger := logging.NewLogger(logging.Config{
		ServiceName: serviceName,
		Environment: cfg.Environment,
		Level:       cfg.LogLevel,
		File:        cfg.LogFile,
		MaxSizeMB:   cfg.LogMaxSizeMB,
		MaxBackups:  cfg.LogMaxBackups,
	})
	slog.SetDefault(logger)

	logger.Info("starting service", "addr", cfg.Addr, "pool_size", cfg.PoolSize)

	// 1) DB
	gdb, err := db.OpenGorm(db.Config{
		DSN:             cfg.DatabaseURL,
		LogSQL:          cfg.LogSQL,
		Logger:          logger,
		MaxOpenConns:    cfg.PoolSize,
		MaxIdleConns:    cfg.MaxIdleConns,
		ConnMaxLifetime: cfg.ConnMaxLifetime,
	})
	if err != nil {
		logger.Error("open database", "error", err)
		os.Exit(1)
	}

	p, err := pool.New(gdb, pool.Options{AcquireTimeout: cfg.AcquireTimeout})
	if err != nil {
		logger.Error("pool", "error", err)
		os.Exit(1)
	}
	defer p.Close()

	warmCtx, cancelWarm := context.WithTimeout(context.Background(), cfg.AcquireTimeout+5*time.Second)
	err = p.Ping(warmCtx)
	cancelWarm()
	if err != nil {
		logger.Error("database unreachable", "error", err)
		os.Exit(1)
	}

	// 2) Metrics on their own listener
	metrics.MustRegister(prometheus.DefaultRegisterer, serviceName, p.SQLDB())
	var metricsSrv *http.Server
	if cfg.MetricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		metricsSrv = &http.Server{Addr: cfg.MetricsAddr, Handler: mux, ReadHeaderTimeout: cfg.ReadHeaderTimeout}
		go func() {
			if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("metrics server error", "error", err)
			}
		}()
		logger.Info("metrics listening", "addr", cfg.MetricsAddr)
	}

	// 3) Service and HTTP router
	svc := impl.NewBugLogServiceImpl(p, logger)
	handler := httpx.NewRouter(svc, svc, svc, httpx.Options{
		Logger:         logger,
		TrustProxy:     cfg.TrustProxy,
		CORSOrigins:    cfg.CORSOrigins,
		EventRateLimit: cfg.EventRateLimit,
		MaxInFlight:    cfg.MaxInFlight,
	})

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("buglog listening", "addr", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	case <-ctx.Done():
		logger.Info("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", "error", err)
	}
	if metricsSrv != nil {
		_ = metricsSrv.Shutdown(shutdownCtx)
	}
}
