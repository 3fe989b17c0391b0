package ports

import "context"

// Port: loads and persists fitted classifiers by an opaque reference
// (a file path for the default store).
type ModelStore interface {
	Load(ctx context.Context, ref string) (Classifier, error)
	Save(ctx context.Context, ref string, model Classifier) error
}
