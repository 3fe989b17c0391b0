package repositories

import (
	"carrier-match-service/internal/domain"
	"carrier-match-service/internal/platform/obs"
	"carrier-match-service/internal/records"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// SQLite-backed implementation of the TrainingExampleStore port.
type SqliteTrainingExampleRepository struct{ DB *sql.DB }

func NewSqliteTrainingExampleRepository(db *sql.DB) *SqliteTrainingExampleRepository {
	return &SqliteTrainingExampleRepository{DB: db}
}

// Return all stored training examples in insertion order.
func (s *SqliteTrainingExampleRepository) ListTrainingExamples(ctx context.Context) (_ []domain.TrainingExample, err error) {
	defer obs.Time(ctx, "training.sqlite.List")(&err)

	if s.DB == nil {
		return nil, errors.New("sqlite training repository: DB is nil")
	}

	query := `
	SELECT
		example_id,
		payload
	FROM training_examples
	ORDER BY example_id;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list training examples: query training_examples table: %w", err)
	}
	defer rows.Close()

	examples := make([]domain.TrainingExample, 0, 64)
	for rows.Next() {
		var id int64
		var payload string
		if err := rows.Scan(&id, &payload); err != nil {
			return nil, fmt.Errorf("list training examples: scan row: %w", err)
		}
		ex, err := decodePayload([]byte(payload))
		if err != nil {
			return nil, fmt.Errorf("list training examples: example_id=%d: %w", id, err)
		}
		examples = append(examples, ex)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list training examples: row iteration: %w", err)
	}

	return examples, nil
}

// Append training examples in one transaction.
func (s *SqliteTrainingExampleRepository) AddTrainingExamples(ctx context.Context, examples []domain.TrainingExample) error {
	if s.DB == nil {
		return errors.New("sqlite training repository: DB is nil")
	}
	if len(examples) == 0 {
		return nil
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("add training examples: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO training_examples (
		package_id,
		carrier_id,
		success,
		payload,
		recorded_at
	)
	VALUES (?, ?, ?, ?, ?);
	`)
	if err != nil {
		return fmt.Errorf("add training examples: prepare insert: %w", err)
	}
	defer stmt.Close()

	now := time.Now().Unix()
	for i, ex := range examples {
		payload, err := records.MarshalTrainingExample(ex)
		if err != nil {
			return fmt.Errorf("add training examples: encode #%d: %w", i, err)
		}
		if _, err := stmt.ExecContext(ctx, ex.Package.ID, ex.Carrier.ID, ex.Success, string(payload), now); err != nil {
			return fmt.Errorf("add training examples: insert package_id=%q carrier_id=%q: %w", ex.Package.ID, ex.Carrier.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("add training examples: commit tx: %w", err)
	}

	return nil
}
