package experiments

import (
	"context"
	"fmt"

	"nim/engine"
	"nim/experiments/metrics"
	"nim/game"
	"nim/learner"
	"nim/player"
	"nim/utils"

	"github.com/rs/zerolog/log"
)

// TrainingConfig controls self-play training.
type TrainingConfig struct {
	Rules      game.Rules
	Epochs     int
	Alpha      float64
	Epsilon    float64 // Starting exploration rate
	Decay      float64 // Multiplies epsilon after every epoch
	MinEpsilon float64
	Workers    int // Games played in parallel; 1 plays them in order
	LogEvery   int
	Seed       uint64
	Metrics    metrics.Collector
}

type TrainingResult struct {
	Epochs  int
	Epsilon float64 // Exploration rate reached at the end
	Wins    [2]int  // Wins per seat
	Run     metrics.RunMetric
}

// Train improves table by letting two learners that share it play each other.
// The starting player alternates every epoch, both learners update the table
// after every game and epsilon decays after every epoch.
func Train(ctx context.Context, cfg TrainingConfig, table *learner.ValueTable) (TrainingResult, error) {
	if err := cfg.validate(); err != nil {
		return TrainingResult{}, err
	}
	if cfg.Metrics == nil {
		cfg.Metrics = metrics.NewDummyCollector()
	}
	if cfg.Workers > 1 {
		return trainParallel(ctx, cfg, table)
	}

	rng := utils.NewRand(cfg.Seed)
	learners := [2]*learner.Learner{
		learner.New(rng, learner.WithName("learner-0"), learner.WithAlpha(cfg.Alpha), learner.WithEpsilon(cfg.Epsilon), learner.WithTable(table)),
		learner.New(rng, learner.WithName("learner-1"), learner.WithAlpha(cfg.Alpha), learner.WithEpsilon(cfg.Epsilon), learner.WithTable(table)),
	}
	e, err := engine.New(cfg.Rules, [2]player.Player{learners[0], learners[1]})
	if err != nil {
		return TrainingResult{}, err
	}

	log.Info().Msgf("starting training for %d epochs...", cfg.Epochs)
	cfg.Metrics.Start("training")

	result := TrainingResult{Epsilon: cfg.Epsilon}
	epsilon := cfg.Epsilon
	for epoch := 0; epoch < cfg.Epochs; epoch++ {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		first := epoch % 2
		winner, moves, err := playEpisode(e, first)
		if err != nil {
			return result, fmt.Errorf("epoch %d: %w", epoch+1, err)
		}
		for _, l := range learners {
			l.Train()
		}

		result.Epochs++
		result.Wins[winner]++
		cfg.Metrics.AddEpisode(metrics.EpisodeMetric{
			Episode:        epoch + 1,
			StartingPlayer: first,
			Winner:         winner,
			Moves:          moves,
			Epsilon:        epsilon,
		})

		epsilon = decay(epsilon, cfg.Decay, cfg.MinEpsilon)
		for _, l := range learners {
			l.SetEpsilon(epsilon)
		}

		if cfg.LogEvery > 0 && (epoch+1)%cfg.LogEvery == 0 {
			log.Info().Msgf("completed epoch %d of %d with epsilon=%.4f, states=%d", epoch+1, cfg.Epochs, epsilon, table.Len())
		}
	}

	result.Epsilon = epsilon
	result.Run = cfg.Metrics.Complete()
	log.Info().Msgf("completed training: wins by seat %v", result.Wins)
	return result, nil
}

func (cfg TrainingConfig) validate() error {
	if err := cfg.Rules.Validate(); err != nil {
		return err
	}
	switch {
	case cfg.Alpha <= 0:
		return &game.ConfigurationError{Field: "alpha", Reason: fmt.Sprintf("must be positive, got %v", cfg.Alpha)}
	case cfg.Epsilon < 0 || cfg.Epsilon > 1:
		return &game.ConfigurationError{Field: "epsilon", Reason: fmt.Sprintf("must be within [0, 1], got %v", cfg.Epsilon)}
	case cfg.MinEpsilon < 0 || cfg.MinEpsilon > 1:
		return &game.ConfigurationError{Field: "min epsilon", Reason: fmt.Sprintf("must be within [0, 1], got %v", cfg.MinEpsilon)}
	case cfg.Decay <= 0 || cfg.Decay > 1:
		return &game.ConfigurationError{Field: "epsilon decay", Reason: fmt.Sprintf("must be within (0, 1], got %v", cfg.Decay)}
	}
	return nil
}

// playEpisode plays one full game and returns the winner and the number of moves.
func playEpisode(e *engine.Engine, first int) (int, int, error) {
	if err := e.Restart(first); err != nil {
		return -1, 0, err
	}
	return e.Run()
}

func decay(epsilon, factor, floor float64) float64 {
	epsilon *= factor
	if epsilon < floor {
		return floor
	}
	return epsilon
}
