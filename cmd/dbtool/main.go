package main

import (
	"carrier-match-service/internal/adapters/repositories"
	"carrier-match-service/internal/config"
	"carrier-match-service/internal/platform/db"
	"carrier-match-service/internal/ports"
	"context"
	"fmt"
	"log"
	"strings"
)

// dbtool initializes the training-example schema and seeds it. Postgres is
// used when DATABASE_URL is set, otherwise the SQLite file at DB_PATH.
func main() {
	if !config.LoadDotenv() {
		log.Println("No .env file found (using environment variables)")
	}

	ctx := context.Background()
	seedPath := config.Get("SEED_PATH", "data/seeds/training_examples.json")

	store, closeFn, err := openStore(ctx)
	if err != nil {
		log.Fatal(err)
	}
	defer closeFn()

	if err := seed(ctx, store, seedPath); err != nil {
		log.Fatal(err)
	}
}

func openStore(ctx context.Context) (ports.TrainingExampleStore, func(), error) {
	log.Println("Initializing database schema...")

	if databaseURL := strings.TrimSpace(config.Get("DATABASE_URL", "")); databaseURL != "" {
		conn, err := db.Open(databaseURL)
		if err != nil {
			return nil, nil, err
		}
		repo := repositories.NewSQLTrainingExampleRepository(conn)
		if err := repo.EnsureSchema(ctx); err != nil {
			conn.Close()
			return nil, nil, fmt.Errorf("schema initialization failed: %w", err)
		}
		log.Println("Schema ready (postgres).")
		return repo, func() { conn.Close() }, nil
	}

	dbPath := config.Get("DB_PATH", "data/app.db")
	conn, err := db.OpenSqlite(dbPath)
	if err != nil {
		return nil, nil, err
	}
	if err := repositories.InitSchema(conn); err != nil {
		conn.Close()
		return nil, nil, fmt.Errorf("schema initialization failed: %w", err)
	}
	log.Printf("Schema ready (sqlite path=%s).", dbPath)
	return repositories.NewSqliteTrainingExampleRepository(conn), func() { conn.Close() }, nil
}

func seed(ctx context.Context, store ports.TrainingExampleStore, seedPath string) error {
	log.Println("Seeding database...")
	n, err := repositories.SeedFromJSON(ctx, store, seedPath)
	if err != nil {
		return fmt.Errorf("seeding failed: %w", err)
	}
	log.Printf("Seeding complete. examples=%d", n)
	return nil
}
