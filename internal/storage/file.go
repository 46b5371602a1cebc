package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/hammamikhairi/ottobrew/internal/domain"
	"github.com/hammamikhairi/ottobrew/internal/logger"
)

// Compile-time interface check.
var _ domain.SettingsStore = (*FileStore)(nil)

// FileStore keeps brew params in memory and writes the whole set to a YAML
// file after every change. Writes are best effort: a failed write is
// returned but the in-memory value is kept.
type FileStore struct {
	mem  *MemoryStore
	path string
	log  *logger.Logger
}

type yamlSettings struct {
	Recipes map[string]domain.BrewParams `yaml:"recipes"`
}

// OpenFileStore loads the store at path. A missing file starts empty.
func OpenFileStore(path string, log *logger.Logger) (*FileStore, error) {
	fs := &FileStore{
		mem:  NewMemoryStore(log),
		path: path,
		log:  log,
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fs, nil
		}
		return nil, fmt.Errorf("read settings file: %w", err)
	}

	var data yamlSettings
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("parse settings yaml: %w", err)
	}
	for id, p := range data.Recipes {
		fs.mem.params[id] = p
	}
	log.Debug("loaded params for %d recipes from %s", len(data.Recipes), path)
	return fs, nil
}

// SaveParams stores params and rewrites the file.
func (s *FileStore) SaveParams(ctx context.Context, recipeID string, params domain.BrewParams) error {
	if err := s.mem.SaveParams(ctx, recipeID, params); err != nil {
		return err
	}
	return s.flush()
}

// LoadParams retrieves the params saved for a recipe.
func (s *FileStore) LoadParams(ctx context.Context, recipeID string) (domain.BrewParams, error) {
	return s.mem.LoadParams(ctx, recipeID)
}

// Delete removes the params for a recipe and rewrites the file.
func (s *FileStore) Delete(ctx context.Context, recipeID string) error {
	if err := s.mem.Delete(ctx, recipeID); err != nil {
		return err
	}
	return s.flush()
}

func (s *FileStore) flush() error {
	serialized, err := yaml.Marshal(yamlSettings{Recipes: s.mem.snapshot()})
	if err != nil {
		return fmt.Errorf("marshal settings yaml: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create settings directory: %w", err)
	}

	// Write to a sibling temp file, then rename over the old one.
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, serialized, 0o644); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace settings file: %w", err)
	}
	s.log.Debug("wrote settings to %s", s.path)
	return nil
}
