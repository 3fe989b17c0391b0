package model

import (
	"carrier-match-service/internal/domain"
	"carrier-match-service/internal/ports"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// separable builds rows where success depends only on the rating feature.
func separable() ([]domain.FeatureVector, []bool) {
	var features []domain.FeatureVector
	var labels []bool
	for i := 0; i < 20; i++ {
		var f domain.FeatureVector
		f[domain.FeatureRouteDeviationDistance] = float64(i % 3)
		f[domain.FeatureTimeCompatibility] = 1
		success := i >= 10
		f[domain.FeatureCarrierRating] = float64(i%10) / 10
		if success {
			f[domain.FeatureCarrierRating] += 4
		}
		features = append(features, f)
		labels = append(labels, success)
	}
	return features, labels
}

func TestLogisticTrainerSeparatesClasses(t *testing.T) {
	ctx := context.Background()
	features, labels := separable()

	clf, err := NewLogisticTrainer().Fit(ctx, features, labels)
	require.NoError(t, err)

	for i, f := range features {
		p, err := clf.PredictProbability(ctx, f)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, p, 0.0)
		assert.LessOrEqual(t, p, 1.0)
		if labels[i] {
			assert.Greater(t, p, 0.5, "row %d", i)
		} else {
			assert.Less(t, p, 0.5, "row %d", i)
		}
	}

	lm := clf.(*LogisticModel)
	// Time compatibility is constant in the data and must not blow up.
	assert.Equal(t, 1.0, lm.Scales[domain.FeatureTimeCompatibility])
}

func TestLogisticTrainerIsDeterministic(t *testing.T) {
	features, labels := separable()

	a, err := NewLogisticTrainer().Fit(context.Background(), features, labels)
	require.NoError(t, err)
	b, err := NewLogisticTrainer().Fit(context.Background(), features, labels)
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestLogisticTrainerRejectsBadInput(t *testing.T) {
	_, err := NewLogisticTrainer().Fit(context.Background(), nil, nil)
	assert.ErrorIs(t, err, domain.ErrNoTrainingExamples)

	_, err = NewLogisticTrainer().Fit(context.Background(), make([]domain.FeatureVector, 2), []bool{true})
	assert.Error(t, err)
}

func TestFileModelStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	features, labels := separable()
	clf, err := NewLogisticTrainer().Fit(ctx, features, labels)
	require.NoError(t, err)

	ref := filepath.Join(t.TempDir(), "models", "match.json")
	store := NewFileModelStore(nil)
	require.NoError(t, store.Save(ctx, ref, clf))

	loaded, err := store.Load(ctx, ref)
	require.NoError(t, err)

	for _, f := range features {
		want, _ := clf.PredictProbability(ctx, f)
		got, err := loaded.PredictProbability(ctx, f)
		require.NoError(t, err)
		assert.InDelta(t, want, got, 1e-12)
	}

	entries, err := os.ReadDir(filepath.Dir(ref))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")

	assert.Equal(t, clf.(*LogisticModel).ModelVersion(), loaded.(*LogisticModel).ModelVersion())
}

func TestLogisticModelVersion(t *testing.T) {
	features, labels := separable()
	clf, err := NewLogisticTrainer().Fit(context.Background(), features, labels)
	require.NoError(t, err)
	m := clf.(*LogisticModel)

	var _ ports.VersionedClassifier = m
	assert.Equal(t, m.ModelVersion(), m.ModelVersion())
	assert.Contains(t, m.ModelVersion(), "logistic:")

	flipped := make([]bool, len(labels))
	for i, l := range labels {
		flipped[i] = !l
	}
	other, err := NewLogisticTrainer().Fit(context.Background(), features, flipped)
	require.NoError(t, err)
	assert.NotEqual(t, m.ModelVersion(), other.(*LogisticModel).ModelVersion())

	tweaked := *m
	tweaked.Bias += 1e-9
	assert.NotEqual(t, m.ModelVersion(), tweaked.ModelVersion())
}

func TestFileModelStoreLoadFailures(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	store := NewFileModelStore(nil)

	_, err := store.Load(ctx, filepath.Join(dir, "missing.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	garbage := filepath.Join(dir, "garbage.json")
	require.NoError(t, os.WriteFile(garbage, []byte("not json"), 0o644))
	_, err = store.Load(ctx, garbage)
	assert.Error(t, err)

	forest := filepath.Join(dir, "forest.json")
	require.NoError(t, os.WriteFile(forest, []byte(`{"version":1,"kind":"random_forest"}`), 0o644))
	_, err = store.Load(ctx, forest)
	assert.ErrorIs(t, err, domain.ErrUnknownModelFormat)

	future := filepath.Join(dir, "future.json")
	require.NoError(t, os.WriteFile(future, []byte(`{"version":9,"kind":"logistic"}`), 0o644))
	_, err = store.Load(ctx, future)
	assert.ErrorIs(t, err, domain.ErrUnknownModelFormat)
}

func TestFileModelStoreRejectsForeignClassifier(t *testing.T) {
	store := NewFileModelStore(nil)
	err := store.Save(context.Background(), filepath.Join(t.TempDir(), "m.json"), NewHTTPClassifier("http://x", nil))
	assert.ErrorIs(t, err, domain.ErrUnknownModelFormat)

	err = store.Save(context.Background(), "https://models.example/m", &LogisticModel{})
	assert.Error(t, err)
}

func TestHTTPClassifierRetriesTransientFailures(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			http.Error(w, "warming up", http.StatusServiceUnavailable)
			return
		}
		var req scoreRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Len(t, req.Features, domain.FeatureCount)
		_, _ = w.Write([]byte(`{"probability": 0.82}`))
	}))
	defer srv.Close()

	clf, err := NewFileModelStore(srv.Client()).Load(context.Background(), srv.URL)
	require.NoError(t, err)
	clf.(*HTTPClassifier).backoff = time.Millisecond

	p, err := clf.PredictProbability(context.Background(), domain.FeatureVector{})
	require.NoError(t, err)
	assert.Equal(t, 0.82, p)
	assert.Equal(t, int32(2), calls.Load())
}

func TestHTTPClassifierDoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "bad features", http.StatusBadRequest)
	}))
	defer srv.Close()

	clf := NewHTTPClassifier(srv.URL, srv.Client())
	_, err := clf.PredictProbability(context.Background(), domain.FeatureVector{})

	var he *httpStatusError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, http.StatusBadRequest, he.Code)
	assert.Equal(t, int32(1), calls.Load())
}

func TestHTTPClassifierMissingProbability(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	_, err := NewHTTPClassifier(srv.URL, srv.Client()).PredictProbability(context.Background(), domain.FeatureVector{})
	assert.ErrorContains(t, err, "no probability")
}

type countingStore struct {
	loads int
	saved int
}

func (c *countingStore) Load(context.Context, string) (ports.Classifier, error) {
	c.loads++
	return &LogisticModel{Scales: [domain.FeatureCount]float64{1, 1, 1, 1, 1, 1, 1}}, nil
}

func (c *countingStore) Save(context.Context, string, ports.Classifier) error {
	c.saved++
	return nil
}

func TestMemoStore(t *testing.T) {
	ctx := context.Background()
	inner := &countingStore{}
	memo := NewMemoStore(inner)

	a, err := memo.Load(ctx, "m")
	require.NoError(t, err)
	b, err := memo.Load(ctx, "m")
	require.NoError(t, err)
	assert.Same(t, a, b)
	assert.Equal(t, 1, inner.loads)

	require.NoError(t, memo.Save(ctx, "m", a))
	_, err = memo.Load(ctx, "m")
	require.NoError(t, err)
	assert.Equal(t, 2, inner.loads)
	assert.Equal(t, 1, inner.saved)
}
