package main

import (
	"carrier-match-service/internal/adapters/cache"
	"carrier-match-service/internal/adapters/model"
	"carrier-match-service/internal/adapters/repositories"
	"carrier-match-service/internal/api"
	"carrier-match-service/internal/config"
	"carrier-match-service/internal/platform/db"
	"carrier-match-service/internal/ports"
	"carrier-match-service/internal/services"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"
)

// main is the application composition root.
// It wires concrete adapters (SQLite or Postgres, Redis, model files) behind
// ports and starts the HTTP server.
func main() {
	if !config.LoadDotenv() {
		log.Println("No .env file found (using environment variables)")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()

	examples, matchCache, closeStorage, err := openStorage(ctx, cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer closeStorage()

	if err := seedIfEmpty(ctx, examples, cfg.SeedPath); err != nil {
		log.Fatal(err)
	}

	// Loaded models stay in memory; retraining through the API replaces them.
	models := model.NewMemoStore(model.NewFileModelStore(&http.Client{Timeout: 10 * time.Second}))

	predictor := services.NewMatchPredictor(models, matchCache)
	trainer := services.NewModelTrainer(model.NewLogisticTrainer(), models)
	router := api.NewRouter(predictor, trainer, examples, cfg.ModelRef())

	log.Printf("Server listening addr=:%s model=%s", cfg.Port, cfg.ModelRef())
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}

// openStorage picks Postgres when DATABASE_URL is set and SQLite otherwise.
// Redis, when configured and reachable, backs the match cache; SQLite
// deployments fall back to a table cache.
func openStorage(ctx context.Context, cfg *config.Config) (ports.TrainingExampleStore, ports.MatchCache, func(), error) {
	var conn *sql.DB
	var examples ports.TrainingExampleStore
	var matchCache ports.MatchCache

	if cfg.DatabaseURL != "" {
		pg, err := db.Open(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, nil, err
		}
		repo := repositories.NewSQLTrainingExampleRepository(pg)
		if err := repo.EnsureSchema(ctx); err != nil {
			pg.Close()
			return nil, nil, nil, err
		}
		conn, examples = pg, repo
	} else {
		lite, err := db.OpenSqlite(cfg.DBPath)
		if err != nil {
			return nil, nil, nil, err
		}
		if err := repositories.InitSchema(lite); err != nil {
			lite.Close()
			return nil, nil, nil, err
		}
		conn, examples = lite, repositories.NewSqliteTrainingExampleRepository(lite)
		matchCache = cache.NewSqliteMatchCache(lite, cfg.CacheTTL)
	}

	closeFn := func() { conn.Close() }

	if cfg.RedisAddr != "" {
		client := cache.NewRedisClient(cfg.RedisAddr)
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		err := client.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			log.Printf("redis unavailable addr=%s err=%v; continuing without it", cfg.RedisAddr, err)
			client.Close()
		} else {
			matchCache = cache.NewRedisMatchCache(client, cfg.CacheTTL)
			closeFn = func() {
				client.Close()
				conn.Close()
			}
		}
	}

	return examples, matchCache, closeFn, nil
}

// seedIfEmpty loads demo outcomes on first start so /models/train works out
// of the box. A missing seed file is not an error.
func seedIfEmpty(ctx context.Context, store ports.TrainingExampleStore, seedPath string) error {
	existing, err := store.ListTrainingExamples(ctx)
	if err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}

	n, err := repositories.SeedFromJSON(ctx, store, seedPath)
	if errors.Is(err, os.ErrNotExist) {
		log.Printf("seed file not found path=%s; starting with no training examples", seedPath)
		return nil
	}
	if err != nil {
		return fmt.Errorf("seed: %w", err)
	}

	log.Printf("seeded training examples count=%d path=%s", n, seedPath)
	return nil
}
