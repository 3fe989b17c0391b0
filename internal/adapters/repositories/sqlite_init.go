package repositories

import (
	"carrier-match-service/internal/ports"
	"carrier-match-service/internal/records"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
)

// Initialize the SQLite database schema.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createTrainingExamplesQuery := `
	CREATE TABLE IF NOT EXISTS training_examples (
		example_id INTEGER PRIMARY KEY AUTOINCREMENT,
		package_id TEXT NOT NULL,
		carrier_id TEXT NOT NULL,
		success INTEGER NOT NULL,
		payload TEXT NOT NULL,
		recorded_at INTEGER NOT NULL
	);
	`

	createMatchCacheQuery := `
	CREATE TABLE IF NOT EXISTS match_cache (
		cache_key TEXT PRIMARY KEY,
		result TEXT NOT NULL,
		stored_at INTEGER NOT NULL
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_training_examples_carrier
	ON training_examples(carrier_id, package_id);
	`

	statements := []string{
		createTrainingExamplesQuery,
		createMatchCacheQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

// Populate a training example store from a JSON file holding an array of
// {package, carrier, success} records. Returns the number of rows added.
func SeedFromJSON(ctx context.Context, store ports.TrainingExampleStore, jsonPath string) (int, error) {
	b, err := os.ReadFile(jsonPath)
	if err != nil {
		return 0, fmt.Errorf("seed training examples: read %q: %w", jsonPath, err)
	}

	examples, err := records.DecodeTrainingExamples(b)
	if err != nil {
		return 0, fmt.Errorf("seed training examples: %w", err)
	}

	if err := store.AddTrainingExamples(ctx, examples); err != nil {
		return 0, fmt.Errorf("seed training examples: %w", err)
	}

	return len(examples), nil
}
