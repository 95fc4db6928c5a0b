package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"nim/game"

	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	require.NoError(t, cfg.Validate())
	require.Equal(t, game.Rules{PileSize: 24, Actions: []int{1, 2, 3}}, cfg.Rules())
}

func TestLoad(t *testing.T) {
	t.Run("empty path returns defaults", func(t *testing.T) {
		cfg, err := Load("")
		require.NoError(t, err)
		require.Equal(t, Default(), cfg)
	})

	t.Run("overlays file values", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nim.yaml")
		data := []byte("game:\n  pile_size: 13\n  actions: [1, 2]\ntraining:\n  epochs: 50\n  workers: 4\nstore:\n  kind: leveldb\n")
		require.NoError(t, os.WriteFile(path, data, 0644))

		cfg, err := Load(path)

		require.NoError(t, err)
		require.Equal(t, game.Rules{PileSize: 13, Actions: []int{1, 2}}, cfg.Rules())
		require.Equal(t, 50, cfg.Training.Epochs)
		require.Equal(t, 4, cfg.Training.Workers)
		require.Equal(t, "leveldb", cfg.Store.Kind)
		require.Equal(t, Default().Learner, cfg.Learner, "Unset sections should keep defaults")
	})

	t.Run("missing file is an error", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
		require.Error(t, err)
	})
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("NIM_SEED", "99")
	t.Setenv("NIM_EPOCHS", "12")
	t.Setenv("NIM_STORE_PATH", "/tmp/values")
	t.Setenv("NIM_LOG_LEVEL", "debug")

	cfg := Default()
	require.NoError(t, cfg.ApplyEnv())

	require.Equal(t, uint64(99), cfg.Training.Seed)
	require.Equal(t, 12, cfg.Training.Epochs)
	require.Equal(t, "/tmp/values", cfg.Store.Path)
	require.Equal(t, "debug", cfg.LogLevel)

	t.Setenv("NIM_SEED", "not-a-number")
	require.Error(t, cfg.ApplyEnv())
}

func TestValidate(t *testing.T) {
	cases := map[string]func(c *Config){
		"empty actions":   func(c *Config) { c.Game.Actions = nil },
		"zero alpha":      func(c *Config) { c.Learner.Alpha = 0 },
		"epsilon above 1": func(c *Config) { c.Learner.Epsilon = 1.2 },
		"zero decay":      func(c *Config) { c.Training.Decay = 0 },
		"no workers":      func(c *Config) { c.Training.Workers = 0 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := Default()
			mutate(&cfg)

			var cfgErr *game.ConfigurationError
			require.True(t, errors.As(cfg.Validate(), &cfgErr))
		})
	}
}
