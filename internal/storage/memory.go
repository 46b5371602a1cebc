// Package storage provides brew-parameter persistence implementations.
package storage

import (
	"context"
	"sync"

	"github.com/hammamikhairi/ottobrew/internal/domain"
	"github.com/hammamikhairi/ottobrew/internal/logger"
)

// Compile-time interface check.
var _ domain.SettingsStore = (*MemoryStore)(nil)

// MemoryStore is an in-memory settings store. Safe for concurrent access.
type MemoryStore struct {
	mu     sync.RWMutex
	params map[string]domain.BrewParams
	log    *logger.Logger
}

// NewMemoryStore creates an empty in-memory settings store.
func NewMemoryStore(log *logger.Logger) *MemoryStore {
	return &MemoryStore{
		params: make(map[string]domain.BrewParams),
		log:    log,
	}
}

// SaveParams stores params for a recipe. Overwrites if present.
func (s *MemoryStore) SaveParams(ctx context.Context, recipeID string, params domain.BrewParams) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.log.Debug("saving params for recipe %s", recipeID)
	s.params[recipeID] = params
	return nil
}

// LoadParams retrieves the params saved for a recipe.
func (s *MemoryStore) LoadParams(ctx context.Context, recipeID string) (domain.BrewParams, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.params[recipeID]
	if !ok {
		return domain.BrewParams{}, domain.ErrNotFound
	}
	return p, nil
}

// Delete removes the params saved for a recipe.
func (s *MemoryStore) Delete(ctx context.Context, recipeID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.params[recipeID]; !ok {
		return domain.ErrNotFound
	}
	delete(s.params, recipeID)
	s.log.Debug("deleted params for recipe %s", recipeID)
	return nil
}

// snapshot copies the stored params.
func (s *MemoryStore) snapshot() map[string]domain.BrewParams {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]domain.BrewParams, len(s.params))
	for k, v := range s.params {
		out[k] = v
	}
	return out
}
