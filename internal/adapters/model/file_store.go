package model

import (
	"carrier-match-service/internal/domain"
	"carrier-match-service/internal/ports"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

const (
	artifactVersion = 1
	kindLogistic    = "logistic"
)

// artifact is the on-disk envelope for a fitted classifier.
type artifact struct {
	Version  int            `json:"version"`
	Kind     string         `json:"kind"`
	Logistic *LogisticModel `json:"logistic,omitempty"`
}

// FileModelStore persists classifiers as JSON files. References starting
// with http:// or https:// resolve to a remote HTTPClassifier instead.
type FileModelStore struct {
	Client *http.Client
}

func NewFileModelStore(client *http.Client) *FileModelStore {
	return &FileModelStore{Client: client}
}

func (s *FileModelStore) Load(_ context.Context, ref string) (ports.Classifier, error) {
	if isRemote(ref) {
		return NewHTTPClassifier(ref, s.Client), nil
	}

	b, err := os.ReadFile(ref)
	if err != nil {
		return nil, fmt.Errorf("load model: read %q: %w", ref, err)
	}

	var a artifact
	if err := json.Unmarshal(b, &a); err != nil {
		return nil, fmt.Errorf("load model: parse %q: %w", ref, err)
	}
	if a.Version != artifactVersion {
		return nil, fmt.Errorf("load model: version %d: %w", a.Version, domain.ErrUnknownModelFormat)
	}

	switch a.Kind {
	case kindLogistic:
		if a.Logistic == nil {
			return nil, fmt.Errorf("load model: missing logistic parameters: %w", domain.ErrUnknownModelFormat)
		}
		for i, scale := range a.Logistic.Scales {
			if scale == 0 {
				return nil, fmt.Errorf("load model: feature %d has zero scale: %w", i, domain.ErrUnknownModelFormat)
			}
		}
		return a.Logistic, nil
	}
	return nil, fmt.Errorf("load model: kind %q: %w", a.Kind, domain.ErrUnknownModelFormat)
}

// Save writes the artifact to a temp file in the target directory and renames
// it over ref so readers never observe a partial model.
func (s *FileModelStore) Save(_ context.Context, ref string, c ports.Classifier) error {
	if isRemote(ref) {
		return fmt.Errorf("save model: %q: remote models are read-only", ref)
	}

	lm, ok := c.(*LogisticModel)
	if !ok {
		return fmt.Errorf("save model: %T: %w", c, domain.ErrUnknownModelFormat)
	}

	b, err := json.MarshalIndent(artifact{Version: artifactVersion, Kind: kindLogistic, Logistic: lm}, "", "  ")
	if err != nil {
		return fmt.Errorf("save model: encode: %w", err)
	}

	dir := filepath.Dir(ref)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("save model: create dir %q: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".model-*.json")
	if err != nil {
		return fmt.Errorf("save model: create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		return fmt.Errorf("save model: write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("save model: sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("save model: close temp file: %w", err)
	}

	if err := os.Rename(tmpName, ref); err != nil {
		return fmt.Errorf("save model: rename to %q: %w", ref, err)
	}

	return nil
}

func isRemote(ref string) bool {
	return strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://")
}
