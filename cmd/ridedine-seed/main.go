// Command ridedine-seed loads vendor and rider files into Redis/Valkey so the
// API can run with redis-backed sources.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/ridedine/ridedine/internal/config"
	dbRedis "github.com/ridedine/ridedine/internal/db/redis"
	"github.com/ridedine/ridedine/internal/domain/geo"
	logpkg "github.com/ridedine/ridedine/internal/logger"
	agentrepo "github.com/ridedine/ridedine/internal/repository/agent"
	foodrepo "github.com/ridedine/ridedine/internal/repository/food"
)

func main() {
	vendorsPath := flag.String("vendors", "", "vendor file to load (csv, json or parquet)")
	agentsPath := flag.String("agents", "", "rider file to load (json); agents missing from it are removed")
	agentID := flag.String("agent", "", "agent id whose availability to set")
	available := flag.Bool("available", true, "availability to set for -agent")
	flag.Parse()

	_ = godotenv.Load()

	env := config.GetEnv()
	cfg, err := config.Load(env)
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to load config:", err)
		os.Exit(1)
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to create logger:", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	if *vendorsPath == "" && *agentsPath == "" && *agentID == "" {
		logger.Fatal("Nothing to do: pass -vendors, -agents or -agent")
	}
	if len(cfg.Database.Addrs) == 0 {
		logger.Fatal("database.addrs is empty")
	}

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:     cfg.Database.Addrs,
		Username:  cfg.Database.Username,
		Password:  cfg.Database.Password,
		DB:        cfg.Database.DB,
		KeyPrefix: cfg.Storage.KeyPrefix,
	})
	if err != nil {
		logger.Fatal("Failed to create database store", zap.Error(err))
	}
	defer store.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Database not ready", zap.Error(err))
	}

	if *vendorsPath != "" {
		n, err := seedVendors(ctx, store, *vendorsPath)
		if err != nil {
			logger.Fatal("Failed to seed vendors", zap.String("path", *vendorsPath), zap.Error(err))
		}
		logger.Info("Seeded vendors", zap.String("path", *vendorsPath), zap.Int("count", n))
	}

	depot := geo.NewPoint(*cfg.Depot.Latitude, *cfg.Depot.Longitude)
	repo := agentrepo.NewRedisRepo(store, depot)

	if *agentsPath != "" {
		n, removed, err := seedAgents(ctx, repo, *agentsPath, depot)
		if err != nil {
			logger.Fatal("Failed to seed agents", zap.String("path", *agentsPath), zap.Error(err))
		}
		logger.Info("Seeded agents",
			zap.String("path", *agentsPath),
			zap.Int("count", n),
			zap.Int("removed", removed),
		)
	}

	if *agentID != "" {
		if err := repo.SetAvailability(ctx, *agentID, *available); err != nil {
			logger.Fatal("Failed to set availability", zap.String("agent", *agentID), zap.Error(err))
		}
		a, err := repo.Get(ctx, *agentID)
		if err != nil {
			logger.Fatal("Failed to read agent back", zap.String("agent", *agentID), zap.Error(err))
		}
		logger.Info("Updated agent availability",
			zap.String("agent", a.ID()),
			zap.String("name", a.Name()),
			zap.Bool("available", a.Available()),
		)
	}
}

func seedVendors(ctx context.Context, store *dbRedis.Store, path string) (int, error) {
	src, err := foodrepo.NewFileSource(path)
	if err != nil {
		return 0, err
	}
	records, err := src.Records(ctx)
	if err != nil {
		return 0, err
	}
	if err := foodrepo.NewRedisSource(store).Replace(ctx, records); err != nil {
		return 0, err
	}
	return len(records), nil
}

func seedAgents(ctx context.Context, repo *agentrepo.RedisRepo, path string, depot geo.Point) (int, int, error) {
	agents, err := agentrepo.NewFileSource(path, depot).Snapshot(ctx)
	if err != nil {
		return 0, 0, err
	}
	removed, err := repo.ReplaceAll(ctx, agents)
	if err != nil {
		return 0, 0, err
	}
	return len(agents), removed, nil
}
