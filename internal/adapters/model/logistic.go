package model

import (
	"carrier-match-service/internal/domain"
	"carrier-match-service/internal/ports"
	"context"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
)

// LogisticModel is a standardized logistic regression over the match
// feature vector. It is immutable after Fit or Load.
type LogisticModel struct {
	Means   [domain.FeatureCount]float64 `json:"means"`
	Scales  [domain.FeatureCount]float64 `json:"scales"`
	Weights [domain.FeatureCount]float64 `json:"weights"`
	Bias    float64                      `json:"bias"`
}

// PredictProbability returns P(success | features).
func (m *LogisticModel) PredictProbability(_ context.Context, f domain.FeatureVector) (float64, error) {
	z := m.Bias
	for i, x := range f {
		z += m.Weights[i] * (x - m.Means[i]) / m.Scales[i]
	}
	if math.IsNaN(z) {
		return 0, fmt.Errorf("logistic model: non-finite input %v", f)
	}
	return sigmoid(z), nil
}

// ModelVersion hashes the fitted parameters. Two models share a version only
// when they score every input identically.
func (m *LogisticModel) ModelVersion() string {
	h := sha256.New()
	var buf [8]byte
	write := func(v float64) {
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
		h.Write(buf[:])
	}
	for i := 0; i < domain.FeatureCount; i++ {
		write(m.Means[i])
		write(m.Scales[i])
		write(m.Weights[i])
	}
	write(m.Bias)
	return "logistic:" + hex.EncodeToString(h.Sum(nil))
}

func sigmoid(z float64) float64 {
	if z >= 0 {
		return 1 / (1 + math.Exp(-z))
	}
	e := math.Exp(z)
	return e / (1 + e)
}

// LogisticTrainer fits a LogisticModel by full-batch gradient descent from a
// zero start, so the same data always yields the same model.
type LogisticTrainer struct {
	LearningRate float64
	Epochs       int
	L2           float64
}

func NewLogisticTrainer() *LogisticTrainer {
	return &LogisticTrainer{LearningRate: 0.1, Epochs: 2000, L2: 1e-3}
}

func (t *LogisticTrainer) Fit(ctx context.Context, features []domain.FeatureVector, labels []bool) (ports.Classifier, error) {
	if len(features) == 0 {
		return nil, domain.ErrNoTrainingExamples
	}
	if len(features) != len(labels) {
		return nil, fmt.Errorf("fit logistic model: %d feature rows but %d labels", len(features), len(labels))
	}
	if t.Epochs <= 0 || t.LearningRate <= 0 {
		return nil, errors.New("fit logistic model: epochs and learning rate must be positive")
	}

	m := &LogisticModel{}
	standardize(m, features)

	n := float64(len(features))
	rows := make([]domain.FeatureVector, len(features))
	for r, f := range features {
		for i, x := range f {
			rows[r][i] = (x - m.Means[i]) / m.Scales[i]
		}
	}

	for epoch := 0; epoch < t.Epochs; epoch++ {
		if epoch%100 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, fmt.Errorf("fit logistic model: %w", err)
			}
		}

		var gradW [domain.FeatureCount]float64
		var gradB float64
		for r, x := range rows {
			z := m.Bias
			for i := range x {
				z += m.Weights[i] * x[i]
			}
			diff := sigmoid(z) - label(labels[r])
			for i := range x {
				gradW[i] += diff * x[i]
			}
			gradB += diff
		}

		for i := range m.Weights {
			m.Weights[i] -= t.LearningRate * (gradW[i]/n + t.L2*m.Weights[i])
		}
		m.Bias -= t.LearningRate * gradB / n
	}

	return m, nil
}

// standardize records per-feature mean and standard deviation. Constant
// columns keep a unit scale so they contribute nothing instead of dividing
// by zero.
func standardize(m *LogisticModel, features []domain.FeatureVector) {
	column := make([]float64, len(features))
	for i := 0; i < domain.FeatureCount; i++ {
		for r, f := range features {
			column[r] = f[i]
		}
		mean, std := stat.MeanStdDev(column, nil)
		m.Means[i] = mean
		if std == 0 || math.IsNaN(std) {
			std = 1
		}
		m.Scales[i] = std
	}
}

func label(success bool) float64 {
	if success {
		return 1
	}
	return 0
}
