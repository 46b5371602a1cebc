// Package engine is the application context: it owns the recipe library,
// the settings store and the single brewer, and is created and closed by
// the entry point.
package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/hammamikhairi/ottobrew/internal/brewer"
	"github.com/hammamikhairi/ottobrew/internal/domain"
	"github.com/hammamikhairi/ottobrew/internal/logger"
)

// Engine wires a recipe source and a settings store to one brewer.
type Engine struct {
	recipes  domain.RecipeSource
	settings domain.SettingsStore
	brewer   *brewer.Brewer
	log      *logger.Logger
}

// New creates an engine with an idle brewer. Call Select to load a recipe.
func New(recipes domain.RecipeSource, settings domain.SettingsStore, log *logger.Logger, opts ...brewer.Option) *Engine {
	opts = append([]brewer.Option{brewer.WithLogger(log)}, opts...)
	return &Engine{
		recipes:  recipes,
		settings: settings,
		brewer:   brewer.New(nil, opts...),
		log:      log,
	}
}

// Brewer returns the engine's brewer.
func (e *Engine) Brewer() *brewer.Brewer { return e.brewer }

// ListRecipes returns all available recipes.
func (e *Engine) ListRecipes(ctx context.Context) ([]domain.RecipeSummary, error) {
	return e.recipes.List(ctx)
}

// Resolve finds a recipe by brew id, falling back to recipe id.
func (e *Engine) Resolve(ctx context.Context, key string) (*domain.Recipe, error) {
	key = strings.TrimSpace(key)
	r, err := e.recipes.GetByBrewID(ctx, key)
	if err == nil {
		return r, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	r, err = e.recipes.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("recipe %q: %w", key, err)
	}
	return r, nil
}

// Select loads the recipe named by key into the brewer, with any saved
// brew params applied. The library's copy is left untouched.
func (e *Engine) Select(ctx context.Context, key string) (*domain.Recipe, error) {
	r, err := e.Resolve(ctx, key)
	if err != nil {
		return nil, err
	}
	return e.load(ctx, r), nil
}

func (e *Engine) load(ctx context.Context, r *domain.Recipe) *domain.Recipe {
	active := *r
	params, err := e.settings.LoadParams(ctx, r.ID)
	switch {
	case err == nil:
		active.Params = params
		e.log.Debug("restored saved params for recipe %s", r.ID)
	case errors.Is(err, domain.ErrNotFound):
	default:
		e.log.Warn("loading params for recipe %s: %v", r.ID, err)
	}

	e.brewer.LoadRecipe(&active)
	return &active
}

// SetParam changes one brew param of the active recipe and saves the
// recipe's params. Fields: water, temp, coffee, grind, ratio, roast.
func (e *Engine) SetParam(ctx context.Context, field, value string) error {
	r := e.brewer.Recipe()
	if r == nil {
		return fmt.Errorf("no recipe loaded: %w", domain.ErrNotFound)
	}

	p := r.Params
	switch strings.ToLower(field) {
	case "water", "water_amount":
		p.WaterAmount = value
	case "temp", "water_temp":
		p.WaterTemp = value
	case "coffee", "coffee_amount":
		p.CoffeeAmount = value
	case "grind":
		p.Grind = value
	case "ratio":
		p.Ratio = value
	case "roast":
		p.Roast = value
	default:
		return fmt.Errorf("unknown brew param %q", field)
	}
	e.brewer.SetParams(p)

	if err := e.settings.SaveParams(ctx, r.ID, p); err != nil {
		return fmt.Errorf("saving params: %w", err)
	}
	e.log.Info("recipe %s: %s set to %q", r.ID, field, value)
	return nil
}

// ResetParams drops saved params for the active recipe and reloads it
// with its authored params.
func (e *Engine) ResetParams(ctx context.Context) error {
	r := e.brewer.Recipe()
	if r == nil {
		return fmt.Errorf("no recipe loaded: %w", domain.ErrNotFound)
	}
	if err := e.settings.Delete(ctx, r.ID); err != nil && !errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("deleting params: %w", err)
	}
	authored, err := e.recipes.Get(ctx, r.ID)
	if err != nil {
		return fmt.Errorf("recipe %s: %w", r.ID, err)
	}
	e.load(ctx, authored)
	return nil
}

// Close tears down the brewer's sampler.
func (e *Engine) Close() {
	e.brewer.Close()
	e.log.Debug("engine closed")
}
