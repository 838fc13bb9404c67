// Command seed loads a YAML roster fixture into the configured store.
//
//	seed -file fixtures/congregacao.yaml
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/ray8844/saida-de-campo/config"
	"github.com/ray8844/saida-de-campo/internal/repository"
	"github.com/ray8844/saida-de-campo/internal/seed"
	"github.com/ray8844/saida-de-campo/internal/service"
	"github.com/ray8844/saida-de-campo/pkg/database"
	"github.com/ray8844/saida-de-campo/pkg/lock"
	applogger "github.com/ray8844/saida-de-campo/pkg/logger"
	"github.com/ray8844/saida-de-campo/pkg/metrics"
)

func main() {
	configPath := flag.String("config", "", "path to config.yaml")
	file := flag.String("file", "", "fixture to load (required)")
	flag.Parse()

	if *file == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	in, err := os.Open(*file)
	if err != nil {
		logger.Fatal("open fixture failed", zap.String("file", *file), zap.Error(err))
	}
	fixture, err := seed.Load(in)
	in.Close()
	if err != nil {
		logger.Fatal("invalid fixture", zap.String("file", *file), zap.Error(err))
	}

	db, err := database.NewDB(&cfg.Database, cfg.Log.Level, logger)
	if err != nil {
		logger.Fatal("open database failed", zap.Error(err))
	}
	if sqlDB, _ := db.DB(); sqlDB != nil {
		defer sqlDB.Close()
	}

	svc := service.NewService(cfg, repository.NewRepository(db), lock.NewMemory(), metrics.NewNop(), logger)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	res, err := seed.Apply(ctx, svc, fixture, "", logger)
	if err != nil {
		logger.Fatal("seed failed", zap.Error(err))
	}
	logger.Info("seed completed",
		zap.Int("groups_created", res.GroupsCreated),
		zap.Int("brothers_created", res.BrothersCreated),
		zap.Int("territories_created", res.TerritoriesCreated),
		zap.Int("skipped", res.Skipped),
	)
}
