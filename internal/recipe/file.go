package recipe

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/hammamikhairi/ottobrew/internal/domain"
)

type yamlLibrary struct {
	Recipes []yamlRecipe `yaml:"recipes"`
}

type yamlRecipe struct {
	ID        string            `yaml:"id"`
	BrewID    string            `yaml:"brew_id"`
	Name      string            `yaml:"name"`
	Author    string            `yaml:"author"`
	Notes     string            `yaml:"notes"`
	SourceURL string            `yaml:"source_url"`
	Params    domain.BrewParams `yaml:",inline"`
	Steps     []yamlStep        `yaml:"steps"`
}

type yamlStep struct {
	Summary     string `yaml:"summary"`
	Type        string `yaml:"type"`
	Description string `yaml:"description"`
	MediaURL    string `yaml:"media_url"`
	Minutes     *int64 `yaml:"minutes"`
	Seconds     *int64 `yaml:"seconds"`
}

// Decode reads a YAML recipe library. Recipes need an id and a name, and
// step durations may not be negative.
func Decode(r io.Reader) ([]domain.RecipeDefinition, error) {
	var lib yamlLibrary
	if err := yaml.NewDecoder(r).Decode(&lib); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("parse recipes yaml: %w", err)
	}

	defs := make([]domain.RecipeDefinition, 0, len(lib.Recipes))
	for i, yr := range lib.Recipes {
		def, err := yr.definition()
		if err != nil {
			return nil, fmt.Errorf("recipe %d: %w", i, err)
		}
		defs = append(defs, def)
	}
	return defs, nil
}

func (yr yamlRecipe) definition() (domain.RecipeDefinition, error) {
	if yr.ID == "" || yr.Name == "" {
		return domain.RecipeDefinition{}, fmt.Errorf("%w: id and name are required", domain.ErrInvalidRecipe)
	}

	def := domain.RecipeDefinition{
		ID:        yr.ID,
		BrewID:    yr.BrewID,
		Name:      yr.Name,
		Author:    yr.Author,
		Notes:     yr.Notes,
		SourceURL: yr.SourceURL,
		Params:    yr.Params,
		Steps:     make([]domain.StepDefinition, 0, len(yr.Steps)),
	}
	for j, ys := range yr.Steps {
		step := domain.StepDefinition{
			Summary:     ys.Summary,
			Kind:        domain.ParseStepKind(ys.Type),
			Description: ys.Description,
			MediaURL:    ys.MediaURL,
		}
		if ys.Minutes != nil || ys.Seconds != nil {
			step.Duration = &domain.StepDuration{Minutes: ys.Minutes, Seconds: ys.Seconds}
		}
		if !step.Duration.Valid() {
			return domain.RecipeDefinition{}, fmt.Errorf("%s step %d: %w", yr.ID, j, domain.ErrInvalidDuration)
		}
		def.Steps = append(def.Steps, step)
	}
	return def, nil
}

// LoadFile adds every recipe in the YAML file at path to s. A missing file
// adds nothing. Returns the number of recipes added.
func (s *MemorySource) LoadFile(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.log.Debug("recipe file %s not found, skipping", path)
			return 0, nil
		}
		return 0, fmt.Errorf("open recipe file: %w", err)
	}
	defer f.Close()

	defs, err := Decode(f)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", path, err)
	}

	for i, def := range defs {
		if _, err := s.Add(def); err != nil {
			return i, err
		}
	}
	s.log.Info("loaded %d recipes from %s", len(defs), path)
	return len(defs), nil
}
