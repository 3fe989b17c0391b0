package ports

import (
	"carrier-match-service/internal/domain"
	"context"
)

// Contract for a fitted binary match classifier.
//
// Implementations must be safe for concurrent use once loaded; the core never
// mutates a classifier after it is returned by a ModelStore or trainer.
type Classifier interface {
	// Return the probability in [0, 1] that the match succeeds.
	PredictProbability(ctx context.Context, features domain.FeatureVector) (float64, error)
}

// A Classifier that can name its fitted state. Match results are cached only
// for classifiers that report a version, and the version must change whenever
// any prediction would.
type VersionedClassifier interface {
	Classifier
	ModelVersion() string
}

// Contract for the supervised-learning capability that fits a Classifier.
// labels[i] is true when features[i] came from a successful match.
type ClassifierTrainer interface {
	Fit(ctx context.Context, features []domain.FeatureVector, labels []bool) (Classifier, error)
}
