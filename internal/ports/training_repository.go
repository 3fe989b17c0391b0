package ports

import (
	"carrier-match-service/internal/domain"
	"context"
)

// Port: a boundary for retrieving historical match records.
type TrainingExampleSource interface {
	// Retrieve all training examples in insertion order.
	ListTrainingExamples(ctx context.Context) ([]domain.TrainingExample, error)
}

// Port: a writable store of historical match records.
type TrainingExampleStore interface {
	TrainingExampleSource
	// Append examples atomically; either all are stored or none.
	AddTrainingExamples(ctx context.Context, examples []domain.TrainingExample) error
}
