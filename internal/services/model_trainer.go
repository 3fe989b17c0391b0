package services

import (
	"carrier-match-service/internal/domain"
	"carrier-match-service/internal/platform/obs"
	"carrier-match-service/internal/ports"
	"context"
	"errors"
	"fmt"
	"strings"
)

const TrainedMessage = "Model trained successfully"

// TrainSummary describes a completed training run.
type TrainSummary struct {
	ModelRef  string
	Examples  int
	Successes int
	Failures  int
	Message   string
}

// ModelTrainer fits a classifier on historical matches and persists it.
type ModelTrainer struct {
	Trainer ports.ClassifierTrainer
	Models  ports.ModelStore
}

func NewModelTrainer(trainer ports.ClassifierTrainer, models ports.ModelStore) *ModelTrainer {
	return &ModelTrainer{Trainer: trainer, Models: models}
}

// Train builds the feature matrix, fits the classifier and saves it at outRef.
//
// An empty training set, or one where every label is the same, is rejected:
// the predictor reads the success-class probability and a model that never saw
// that class cannot produce one.
func (t *ModelTrainer) Train(
	ctx context.Context,
	examples []domain.TrainingExample,
	outRef string,
) (summary TrainSummary, err error) {
	defer obs.Time(ctx, "model.Train")(&err)

	err = RunOperation("train", func() error {
		if t.Trainer == nil || t.Models == nil {
			return errors.New("trainer and model store must be non-nil")
		}
		if strings.TrimSpace(outRef) == "" {
			return domain.Fail("save model", domain.KindModelIO, errors.New("model output reference must be non-empty"))
		}

		features, labels, err := BuildTrainingMatrix(examples)
		if err != nil {
			return err
		}

		successes := 0
		for _, l := range labels {
			if l {
				successes++
			}
		}
		if successes == 0 || successes == len(labels) {
			return domain.Fail(
				"train",
				domain.KindTraining,
				fmt.Errorf("%d examples, %d successful: %w", len(labels), successes, domain.ErrSingleClassLabels),
			)
		}

		model, err := t.Trainer.Fit(ctx, features, labels)
		if err != nil {
			return domain.Fail("fit classifier", domain.KindTraining, err)
		}

		if err := t.Models.Save(ctx, outRef, model); err != nil {
			return domain.Fail("save model", domain.KindModelIO, fmt.Errorf("%q: %w", outRef, err))
		}

		summary = TrainSummary{
			ModelRef:  outRef,
			Examples:  len(labels),
			Successes: successes,
			Failures:  len(labels) - successes,
			Message:   TrainedMessage,
		}
		return nil
	})

	return summary, err
}

// BuildTrainingMatrix extracts parallel feature and label slices.
// Labels keep the bool encoding; true is the success class.
func BuildTrainingMatrix(examples []domain.TrainingExample) ([]domain.FeatureVector, []bool, error) {
	if len(examples) == 0 {
		return nil, nil, domain.Fail("build training matrix", domain.KindTraining, domain.ErrNoTrainingExamples)
	}

	features := make([]domain.FeatureVector, 0, len(examples))
	labels := make([]bool, 0, len(examples))
	for i, ex := range examples {
		f, err := BuildFeatureVector(ex.Package, ex.Carrier)
		if err != nil {
			return nil, nil, fmt.Errorf("build training matrix: example %d: %w", i, err)
		}
		features = append(features, f)
		labels = append(labels, ex.Success)
	}

	return features, labels, nil
}
