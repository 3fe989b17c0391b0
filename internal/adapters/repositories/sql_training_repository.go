package repositories

import (
	"carrier-match-service/internal/domain"
	"carrier-match-service/internal/platform/obs"
	"carrier-match-service/internal/records"
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// SQLTrainingExampleRepository stores training examples in Postgres.
type SQLTrainingExampleRepository struct{ DB *sql.DB }

func NewSQLTrainingExampleRepository(db *sql.DB) *SQLTrainingExampleRepository {
	return &SQLTrainingExampleRepository{DB: db}
}

// EnsureSchema creates the Postgres table when it does not exist.
func (s *SQLTrainingExampleRepository) EnsureSchema(ctx context.Context) error {
	if s.DB == nil {
		return errors.New("sql training repository: DB is nil")
	}

	statements := []string{
		`
		CREATE TABLE IF NOT EXISTS training_examples (
			example_id BIGSERIAL PRIMARY KEY,
			package_id TEXT NOT NULL,
			carrier_id TEXT NOT NULL,
			success BOOLEAN NOT NULL,
			payload JSONB NOT NULL,
			recorded_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);
		`,
		`
		CREATE INDEX IF NOT EXISTS idx_training_examples_carrier
		ON training_examples(carrier_id, package_id);
		`,
	}

	for i, stmt := range statements {
		if _, err := s.DB.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: exec statement #%d: %w", i+1, err)
		}
	}
	return nil
}

func (s *SQLTrainingExampleRepository) ListTrainingExamples(ctx context.Context) (_ []domain.TrainingExample, err error) {
	defer obs.Time(ctx, "training.sql.List")(&err)

	if s.DB == nil {
		return nil, errors.New("sql training repository: DB is nil")
	}

	rows, err := s.DB.QueryContext(ctx, `
	SELECT example_id, payload
	FROM training_examples
	ORDER BY example_id;
	`)
	if err != nil {
		return nil, fmt.Errorf("list training examples: query training_examples table: %w", err)
	}
	defer rows.Close()

	examples := make([]domain.TrainingExample, 0, 64)
	for rows.Next() {
		var id int64
		var payload []byte
		if err := rows.Scan(&id, &payload); err != nil {
			return nil, fmt.Errorf("list training examples: scan rows: %w", err)
		}
		ex, err := decodePayload(payload)
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

func (s *SQLTrainingExampleRepository) AddTrainingExamples(ctx context.Context, examples []domain.TrainingExample) error {
	if s.DB == nil {
		return errors.New("sql training repository: DB is nil")
	}
	if len(examples) == 0 {
		return nil
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("add training examples: db begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO training_examples (package_id, carrier_id, success, payload)
	VALUES ($1, $2, $3, $4);
	`)
	if err != nil {
		return fmt.Errorf("add training examples: db prepare: %w", err)
	}
	defer stmt.Close()

	for i, ex := range examples {
		payload, err := records.MarshalTrainingExample(ex)
		if err != nil {
			return fmt.Errorf("add training examples: encode #%d: %w", i, err)
		}
		if _, err := stmt.ExecContext(ctx, ex.Package.ID, ex.Carrier.ID, ex.Success, string(payload)); err != nil {
			return fmt.Errorf("add training examples package_id=%q: %w", ex.Package.ID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("add training examples commit: %w", err)
	}

	return nil
}
