package services

import (
	"carrier-match-service/internal/domain"
	"carrier-match-service/internal/ports"
	"context"
	"errors"
	"fmt"
	"sync"
)

type stubClassifier struct {
	prob  float64
	err   error
	mu    sync.Mutex
	calls int
	last  domain.FeatureVector
}

func (s *stubClassifier) PredictProbability(_ context.Context, f domain.FeatureVector) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	s.last = f
	return s.prob, s.err
}

func (s *stubClassifier) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

// versionedStub is a stubClassifier that reports a model version, which makes
// its results cacheable.
type versionedStub struct {
	*stubClassifier
	version string
}

func (v versionedStub) ModelVersion() string { return v.version }

// ratingClassifier scores a carrier by its rating so Rank order is observable.
type ratingClassifier struct{}

func (ratingClassifier) PredictProbability(_ context.Context, f domain.FeatureVector) (float64, error) {
	return f[domain.FeatureCarrierRating] / 5, nil
}

type memoryModelStore struct {
	models  map[string]ports.Classifier
	loadErr error
	saveErr error
	loads   int
}

func newMemoryModelStore() *memoryModelStore {
	return &memoryModelStore{models: make(map[string]ports.Classifier)}
}

func (m *memoryModelStore) Load(_ context.Context, ref string) (ports.Classifier, error) {
	m.loads++
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	c, ok := m.models[ref]
	if !ok {
		return nil, fmt.Errorf("model %q not found", ref)
	}
	return c, nil
}

func (m *memoryModelStore) Save(_ context.Context, ref string, c ports.Classifier) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.models[ref] = c
	return nil
}

type memoryMatchCache struct {
	items   map[string]domain.MatchResult
	failGet bool
}

func newMemoryMatchCache() *memoryMatchCache {
	return &memoryMatchCache{items: make(map[string]domain.MatchResult)}
}

func (c *memoryMatchCache) Get(_ context.Context, key string) (domain.MatchResult, bool, error) {
	if c.failGet {
		return domain.MatchResult{}, false, errors.New("cache down")
	}
	r, ok := c.items[key]
	return r, ok, nil
}

func (c *memoryMatchCache) Put(_ context.Context, key string, r domain.MatchResult) error {
	c.items[key] = r
	return nil
}

type recordingTrainer struct {
	features []domain.FeatureVector
	labels   []bool
	err      error
	model    ports.Classifier
}

func (r *recordingTrainer) Fit(_ context.Context, f []domain.FeatureVector, l []bool) (ports.Classifier, error) {
	r.features = f
	r.labels = l
	if r.err != nil {
		return nil, r.err
	}
	if r.model == nil {
		return &stubClassifier{prob: 0.5}, nil
	}
	return r.model, nil
}

func ptr(v float64) *float64 { return &v }

func coord(lat, lon float64) domain.Coordinates {
	return domain.Coordinates{Lat: lat, Lon: lon}
}

// idealPair returns a package that fits the carrier's capacity and schedule,
// with a route that passes exactly through pickup and delivery.
func idealPair() (domain.Package, domain.Carrier) {
	pickup := coord(40.7128, -74.0060)
	delivery := coord(40.7306, -73.9352)

	pkg := domain.Package{
		ID:                  "pkg-1",
		PickupCoordinates:   pickup,
		DeliveryCoordinates: delivery,
		PickupWindow:        domain.TimeWindow{Start: "09:00", End: "10:00"},
		DeliveryWindow:      domain.TimeWindow{Start: "11:00", End: "12:00"},
		Dimensions:          domain.Dimensions{Length: 1, Width: 1, Height: 1, Weight: 10},
		Urgency:             domain.UrgencyHigh,
	}

	carrier := domain.Carrier{
		ID:               "carrier-1",
		RouteCoordinates: []domain.Coordinates{pickup, coord(40.72, -73.97), delivery},
		Schedule:         domain.Schedule{StartTime: "08:00", EndTime: "18:00"},
		VehicleCapacity:  domain.VehicleCapacity{Length: 2, Width: 2, Height: 2, WeightLimit: 100},
		Rating:           ptr(4.8),
		OnTimeRate:       ptr(0.95),
	}

	return pkg, carrier
}
