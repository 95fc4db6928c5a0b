// Package config loads run settings from defaults, a YAML file and the
// environment, in that order.
package config

import (
	"fmt"
	"os"
	"strconv"

	"nim/game"
	"nim/meta"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

type Game struct {
	PileSize int   `yaml:"pile_size"`
	Actions  []int `yaml:"actions"`
}

type Learner struct {
	Alpha   float64 `yaml:"alpha"`
	Epsilon float64 `yaml:"epsilon"`
}

type Training struct {
	Epochs     int     `yaml:"epochs"`
	Decay      float64 `yaml:"epsilon_decay"`
	MinEpsilon float64 `yaml:"min_epsilon"`
	Workers    int     `yaml:"workers"`
	LogEvery   int     `yaml:"log_every"`
	Seed       uint64  `yaml:"seed"`
}

type Evaluation struct {
	Episodes int `yaml:"episodes"`
}

type Store struct {
	Kind string `yaml:"kind"`
	Path string `yaml:"path"`
}

type Metrics struct {
	Enabled bool   `yaml:"enabled"`
	Dir     string `yaml:"dir"`
}

type Config struct {
	Game       Game       `yaml:"game"`
	Learner    Learner    `yaml:"learner"`
	Training   Training   `yaml:"training"`
	Evaluation Evaluation `yaml:"evaluation"`
	Store      Store      `yaml:"store"`
	Metrics    Metrics    `yaml:"metrics"`
	LogLevel   string     `yaml:"log_level"`
}

func Default() Config {
	rules := game.NewStandardRules()
	return Config{
		Game:    Game{PileSize: rules.PileSize, Actions: rules.Actions},
		Learner: Learner{Alpha: meta.ALPHA, Epsilon: meta.EPSILON},
		Training: Training{
			Epochs:     meta.EPOCHS,
			Decay:      meta.EPSILON_DECAY,
			MinEpsilon: meta.MIN_EPSILON,
			Workers:    1,
			LogEvery:   meta.LOG_EVERY,
			Seed:       1,
		},
		Evaluation: Evaluation{Episodes: meta.EVAL_EPISODES},
		Store:      Store{Kind: "gob", Path: meta.STORE_PATH},
		Metrics:    Metrics{Dir: "experiments"},
		LogLevel:   "info",
	}
}

// Load overlays the YAML file at path on the defaults. An empty path returns
// the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrap(err, "os.ReadFile")
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "parse %s", path)
	}
	return cfg, nil
}

// ApplyEnv reads a .env file if one exists and applies NIM_* overrides.
func (c *Config) ApplyEnv() error {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "godotenv.Load")
	}
	if v, ok := os.LookupEnv("NIM_SEED"); ok {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return errors.Wrap(err, "NIM_SEED")
		}
		c.Training.Seed = seed
	}
	if v, ok := os.LookupEnv("NIM_EPOCHS"); ok {
		epochs, err := strconv.Atoi(v)
		if err != nil {
			return errors.Wrap(err, "NIM_EPOCHS")
		}
		c.Training.Epochs = epochs
	}
	if v, ok := os.LookupEnv("NIM_STORE_KIND"); ok {
		c.Store.Kind = v
	}
	if v, ok := os.LookupEnv("NIM_STORE_PATH"); ok {
		c.Store.Path = v
	}
	if v, ok := os.LookupEnv("NIM_LOG_LEVEL"); ok {
		c.LogLevel = v
	}
	return nil
}

// Rules returns the game rules described by c.
func (c Config) Rules() game.Rules {
	actions := make([]int, len(c.Game.Actions))
	copy(actions, c.Game.Actions)
	return game.Rules{PileSize: c.Game.PileSize, Actions: actions}
}

// Validate returns a ConfigurationError for the first unusable setting.
func (c Config) Validate() error {
	if err := c.Rules().Validate(); err != nil {
		return err
	}
	switch {
	case c.Learner.Alpha <= 0:
		return invalid("learner.alpha", "must be positive, got %v", c.Learner.Alpha)
	case c.Learner.Epsilon < 0 || c.Learner.Epsilon > 1:
		return invalid("learner.epsilon", "must be within [0, 1], got %v", c.Learner.Epsilon)
	case c.Training.Epochs < 0:
		return invalid("training.epochs", "must not be negative, got %d", c.Training.Epochs)
	case c.Training.Decay <= 0 || c.Training.Decay > 1:
		return invalid("training.epsilon_decay", "must be within (0, 1], got %v", c.Training.Decay)
	case c.Training.MinEpsilon < 0 || c.Training.MinEpsilon > 1:
		return invalid("training.min_epsilon", "must be within [0, 1], got %v", c.Training.MinEpsilon)
	case c.Training.Workers < 1:
		return invalid("training.workers", "must be at least 1, got %d", c.Training.Workers)
	case c.Evaluation.Episodes < 0:
		return invalid("evaluation.episodes", "must not be negative, got %d", c.Evaluation.Episodes)
	}
	return nil
}

func invalid(field, format string, args ...any) error {
	return &game.ConfigurationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}
