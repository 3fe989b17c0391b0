package records

import (
	"bytes"
	"carrier-match-service/internal/domain"
	"encoding/json"
	"fmt"
)

// DecodePackage parses, validates and converts one package record.
func DecodePackage(data []byte) (domain.Package, error) {
	var rec Package
	if err := unmarshal("decode package", data, &rec); err != nil {
		return domain.Package{}, err
	}
	if err := Validate("decode package", &rec); err != nil {
		return domain.Package{}, err
	}
	return rec.Domain()
}

// DecodeCarrier parses, validates and converts one carrier record.
func DecodeCarrier(data []byte) (domain.Carrier, error) {
	var rec Carrier
	if err := unmarshal("decode carrier", data, &rec); err != nil {
		return domain.Carrier{}, err
	}
	if err := Validate("decode carrier", &rec); err != nil {
		return domain.Carrier{}, err
	}
	return rec.Domain()
}

// DecodeCarriers accepts a JSON array of carrier records.
func DecodeCarriers(data []byte) ([]domain.Carrier, error) {
	var recs []Carrier
	if err := unmarshal("decode carriers", data, &recs); err != nil {
		return nil, err
	}

	out := make([]domain.Carrier, 0, len(recs))
	for i := range recs {
		if err := Validate("decode carriers", &recs[i]); err != nil {
			return nil, fmt.Errorf("carrier %d: %w", i, err)
		}
		c, err := recs[i].Domain()
		if err != nil {
			return nil, fmt.Errorf("carrier %d: %w", i, err)
		}
		out = append(out, c)
	}
	return out, nil
}

// DecodeTrainingExamples accepts a JSON array of training examples.
func DecodeTrainingExamples(data []byte) ([]domain.TrainingExample, error) {
	var recs []TrainingExample
	if err := unmarshal("decode training examples", data, &recs); err != nil {
		return nil, err
	}

	out := make([]domain.TrainingExample, 0, len(recs))
	for i := range recs {
		ex, err := recs[i].Validated()
		if err != nil {
			return nil, fmt.Errorf("example %d: %w", i, err)
		}
		out = append(out, ex)
	}
	return out, nil
}

// Validated checks the tags on a single training example and converts it.
func (t *TrainingExample) Validated() (domain.TrainingExample, error) {
	if err := Validate("decode training example", t); err != nil {
		return domain.TrainingExample{}, err
	}
	return t.Domain()
}

func unmarshal(op string, data []byte, v any) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return domain.Fail(op, domain.KindValidation, fmt.Errorf("empty input"))
	}
	if err := json.Unmarshal(data, v); err != nil {
		return domain.Fail(op, domain.KindValidation, fmt.Errorf("invalid JSON: %w", err))
	}
	return nil
}
