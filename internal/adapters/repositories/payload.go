package repositories

import (
	"carrier-match-service/internal/domain"
	"carrier-match-service/internal/records"
	"context"
	"encoding/json"
	"fmt"
	"os"
)

// Stored rows keep the wire record so they can be re-validated on read.
func decodePayload(payload []byte) (domain.TrainingExample, error) {
	var rec records.TrainingExample
	if err := json.Unmarshal(payload, &rec); err != nil {
		return domain.TrainingExample{}, fmt.Errorf("parse payload: %w", err)
	}
	return rec.Validated()
}

// JSONTrainingExampleSource reads training examples from a JSON file.
type JSONTrainingExampleSource struct {
	Path string
}

func NewJSONTrainingExampleSource(path string) *JSONTrainingExampleSource {
	return &JSONTrainingExampleSource{Path: path}
}

func (j *JSONTrainingExampleSource) ListTrainingExamples(_ context.Context) ([]domain.TrainingExample, error) {
	b, err := os.ReadFile(j.Path)
	if err != nil {
		return nil, fmt.Errorf("list training examples: read %q: %w", j.Path, err)
	}

	examples, err := records.DecodeTrainingExamples(b)
	if err != nil {
		return nil, fmt.Errorf("list training examples: %q: %w", j.Path, err)
	}
	return examples, nil
}
