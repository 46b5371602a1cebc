// Package recipe provides recipe source implementations.
package recipe

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/hammamikhairi/ottobrew/internal/domain"
	"github.com/hammamikhairi/ottobrew/internal/logger"
	"github.com/hammamikhairi/ottobrew/internal/timeline"
)

// Compile-time interface check.
var _ domain.RecipeSource = (*MemorySource)(nil)

// MemorySource holds recipes in memory in insertion order. Safe for
// concurrent reads.
type MemorySource struct {
	mu      sync.RWMutex
	recipes []*domain.Recipe
	log     *logger.Logger
}

// NewMemorySource creates a recipe source preloaded with the built-in library.
func NewMemorySource(log *logger.Logger) *MemorySource {
	src := &MemorySource{log: log}
	for _, def := range Library() {
		src.recipes = append(src.recipes, timeline.NewRecipe(def))
	}
	log.Debug("seeded %d recipes", len(src.recipes))
	return src
}

// Add builds a runtime recipe from def and appends it. IDs must be unique.
func (s *MemorySource) Add(def domain.RecipeDefinition) (*domain.Recipe, error) {
	if def.ID == "" {
		return nil, fmt.Errorf("%w: missing id", domain.ErrInvalidRecipe)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, r := range s.recipes {
		if r.ID == def.ID {
			return nil, fmt.Errorf("recipe %s: %w", def.ID, domain.ErrAlreadyExists)
		}
	}
	r := timeline.NewRecipe(def)
	s.recipes = append(s.recipes, r)
	s.log.Debug("added recipe %s (%s, %s)", r.ID, r.Name, r.Duration)
	return r, nil
}

// List returns summaries of all recipes in library order.
func (s *MemorySource) List(ctx context.Context) ([]domain.RecipeSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	s.log.Debug("listing all recipes, count=%d", len(s.recipes))

	out := make([]domain.RecipeSummary, 0, len(s.recipes))
	for _, r := range s.recipes {
		out = append(out, r.Summary())
	}
	return out, nil
}

// Get returns a recipe by ID.
func (s *MemorySource) Get(ctx context.Context, id string) (*domain.Recipe, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, r := range s.recipes {
		if r.ID == id {
			return r, nil
		}
	}
	s.log.Debug("recipe not found: %s", id)
	return nil, domain.ErrNotFound
}

// GetByBrewID returns the first recipe with the given brew slug.
func (s *MemorySource) GetByBrewID(ctx context.Context, brewID string) (*domain.Recipe, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, r := range s.recipes {
		if r.BrewID == brewID {
			return r, nil
		}
	}
	s.log.Debug("no recipe for brew id: %s", brewID)
	return nil, domain.ErrNotFound
}

// Search returns recipes whose name, author, brew id or notes contain query,
// sorted by name.
func (s *MemorySource) Search(ctx context.Context, query string) ([]domain.RecipeSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	q := strings.ToLower(query)
	s.log.Debug("searching recipes for: %s", q)

	var out []domain.RecipeSummary
	for _, r := range s.recipes {
		if matches(r, q) {
			out = append(out, r.Summary())
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func matches(r *domain.Recipe, query string) bool {
	for _, field := range []string{r.Name, r.Author, r.BrewID, r.Notes} {
		if strings.Contains(strings.ToLower(field), query) {
			return true
		}
	}
	return false
}
