package model

import (
	"carrier-match-service/internal/ports"
	"context"
	"sync"
)

// MemoStore keeps loaded classifiers in memory so a long-running process
// reads each artifact once. Saving through the store drops the stale entry.
type MemoStore struct {
	Inner ports.ModelStore

	mu     sync.RWMutex
	models map[string]ports.Classifier
}

func NewMemoStore(inner ports.ModelStore) *MemoStore {
	return &MemoStore{Inner: inner, models: make(map[string]ports.Classifier)}
}

func (m *MemoStore) Load(ctx context.Context, ref string) (ports.Classifier, error) {
	m.mu.RLock()
	c, ok := m.models[ref]
	m.mu.RUnlock()
	if ok {
		return c, nil
	}

	c, err := m.Inner.Load(ctx, ref)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.models[ref] = c
	m.mu.Unlock()

	return c, nil
}

func (m *MemoStore) Save(ctx context.Context, ref string, c ports.Classifier) error {
	if err := m.Inner.Save(ctx, ref, c); err != nil {
		return err
	}

	m.mu.Lock()
	delete(m.models, ref)
	m.mu.Unlock()

	return nil
}
