package challenge

import (
	"context"
	"sync"
)

type memoryRepository struct {
	mu     sync.RWMutex
	states map[string]*ChallengeState
	shares map[string][]ShareEvent
}

// NewMemoryRepository returns an in-memory repository intended for local development and tests.
func NewMemoryRepository() Repository {
	return &memoryRepository{
		states: make(map[string]*ChallengeState),
		shares: make(map[string][]ShareEvent),
	}
}

func (r *memoryRepository) Load(_ context.Context, userID string) (*ChallengeState, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	state, ok := r.states[userID]
	if !ok {
		return nil, ErrStateNotFound
	}
	return state.Clone(), nil
}

func (r *memoryRepository) Save(_ context.Context, userID string, state *ChallengeState) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.states[userID] = state.Clone()
	return nil
}

func (r *memoryRepository) Delete(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.states, userID)
	return nil
}

func (r *memoryRepository) RecordShare(_ context.Context, share ShareEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.shares[share.UserID] = append(r.shares[share.UserID], share)
	return nil
}

func (r *memoryRepository) CountShares(_ context.Context, userID string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.shares[userID]), nil
}
