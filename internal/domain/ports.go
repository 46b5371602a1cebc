package domain

import "context"

// RecipeSource provides recipes. Implementations can be in-memory (built-in
// library) or file-backed.
type RecipeSource interface {
	List(ctx context.Context) ([]RecipeSummary, error)
	Get(ctx context.Context, id string) (*Recipe, error)
	GetByBrewID(ctx context.Context, brewID string) (*Recipe, error)
	Search(ctx context.Context, query string) ([]RecipeSummary, error)
}

// SettingsStore saves the user-editable brew parameters of a recipe,
// keyed by recipe ID. Saves are best effort.
type SettingsStore interface {
	SaveParams(ctx context.Context, recipeID string, params BrewParams) error
	LoadParams(ctx context.Context, recipeID string) (BrewParams, error)
	Delete(ctx context.Context, recipeID string) error
}

// Notifier delivers messages to the user. Implementations can print to the
// terminal or play a chime.
type Notifier interface {
	Notify(ctx context.Context, message string) error
	NotifyUrgent(ctx context.Context, message string) error
}
