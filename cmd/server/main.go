package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"github.com/ray8844/saida-de-campo/config"
	"github.com/ray8844/saida-de-campo/internal/api/handler"
	"github.com/ray8844/saida-de-campo/internal/api/router"
	"github.com/ray8844/saida-de-campo/internal/repository"
	"github.com/ray8844/saida-de-campo/internal/service"
	"github.com/ray8844/saida-de-campo/pkg/database"
	"github.com/ray8844/saida-de-campo/pkg/jwt"
	"github.com/ray8844/saida-de-campo/pkg/lock"
	applogger "github.com/ray8844/saida-de-campo/pkg/logger"
	"github.com/ray8844/saida-de-campo/pkg/metrics"
	"github.com/ray8844/saida-de-campo/pkg/redis"
)

func main() {
	configPath := flag.String("config", "", "path to config.yaml (default: ./config/config.yaml or ./config.yaml)")
	flag.Parse()

	// 1. config
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	// 2. logger
	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("starting",
		zap.Int("port", cfg.Server.Port),
		zap.String("log_level", cfg.Log.Level),
		zap.String("db_driver", cfg.Database.Driver),
		zap.String("policy", cfg.Generation.Policy),
	)

	// 3. database (schema is migrated on open)
	db, err := database.NewDB(&cfg.Database, cfg.Log.Level, logger)
	if err != nil {
		logger.Fatal("open database failed", zap.Error(err))
	}

	// 4. Redis is optional: without it locks are in-process and rate
	// limiting is off.
	var rdb *redis.Client
	var locker lock.Locker = lock.NewMemory()
	if cfg.Redis.Enabled {
		rdb, err = redis.NewClient(&cfg.Redis, logger)
		if err != nil {
			logger.Warn("redis unavailable, using in-process locks", zap.Error(err))
			rdb = nil
		} else {
			locker = lock.NewRedis(rdb, cfg.Generation.LockTTL, logger)
		}
	}

	// 5. metrics
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	recorder := metrics.NewPrometheus(reg, "saida")

	// 6. Repository → Service → Handler
	repo := repository.NewRepository(db)
	svc := service.NewService(cfg, repo, locker, recorder, logger)
	h := handler.NewHandler(svc)

	// 7. router
	if cfg.Log.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := router.Setup(cfg, h, router.Deps{
		JWT:      jwt.NewManager(&cfg.Auth),
		Redis:    rdb,
		Recorder: recorder,
		Gatherer: reg,
		Logger:   logger,
	})

	// 8. HTTP server with graceful shutdown
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("http server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("http server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	logger.Info("shutting down", zap.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown failed", zap.Error(err))
	}

	if sqlDB, _ := db.DB(); sqlDB != nil {
		_ = sqlDB.Close()
	}
	if rdb != nil {
		_ = rdb.Close()
	}

	logger.Info("server stopped")
}
