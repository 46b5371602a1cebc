package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ottobrew.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, 10*time.Second, cfg.Brewer.Grace())
	assert.Equal(t, 10*time.Millisecond, cfg.Brewer.SampleInterval())
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := writeConfig(t, `
[brewer]
grace_ms = 0
default_recipe = "v60"

[sound]
enabled = false

[library]
recipes_file = "extra.yaml"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Zero(t, cfg.Brewer.Grace())
	assert.Equal(t, "v60", cfg.Brewer.DefaultRecipe)
	assert.Equal(t, 10, cfg.Brewer.SampleIntervalMS)
	assert.False(t, cfg.Sound.Enabled)
	assert.Equal(t, 880, cfg.Sound.FrequencyHz)
	assert.InDelta(t, 0.8, cfg.Sound.Volume, 1e-9)
	assert.Equal(t, "extra.yaml", cfg.Library.RecipesFile)
	assert.Equal(t, 250*time.Millisecond, cfg.Announcer.Tick())
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"negative grace", "[brewer]\ngrace_ms = -1\n"},
		{"zero sample interval", "[brewer]\nsample_interval_ms = 0\n"},
		{"bad log level", "[logging]\nlevel = \"shouty\"\n"},
		{"inaudible chime", "[sound]\nfrequency_hz = 5\n"},
		{"zero chime", "[sound]\nchime_ms = 0\n"},
		{"volume above one", "[sound]\nvolume = 1.5\n"},
		{"zero tick", "[announcer]\ntick_ms = 0\n"},
		{"not toml", "[brewer\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}
}
