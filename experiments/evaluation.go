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

type EvaluationConfig struct {
	Rules    game.Rules
	Episodes int
	Seed     uint64
	Metrics  metrics.Collector
}

type EvaluationResult struct {
	Episodes int
	Wins     int
	Losses   int
	WinRate  float64
	Run      metrics.RunMetric
}

// Evaluate plays a greedy learner reading table against a random player,
// alternating who starts, and reports the learner's results.
func Evaluate(ctx context.Context, cfg EvaluationConfig, table *learner.ValueTable) (EvaluationResult, error) {
	if cfg.Metrics == nil {
		cfg.Metrics = metrics.NewDummyCollector()
	}
	rng := utils.NewRand(cfg.Seed)
	agent := learner.New(rng, learner.WithName("learner"), learner.WithEpsilon(0), learner.WithTable(table))
	opponent := player.NewRandom("random", rng)
	e, err := engine.New(cfg.Rules, [2]player.Player{agent, opponent})
	if err != nil {
		return EvaluationResult{}, err
	}

	agent.ResetStatistics()
	opponent.ResetStatistics()

	log.Info().Msgf("starting evaluation over %d episodes...", cfg.Episodes)
	cfg.Metrics.Start("evaluation")

	for episode := 0; episode < cfg.Episodes; episode++ {
		if err := ctx.Err(); err != nil {
			return EvaluationResult{}, err
		}
		first := episode % 2
		winner, moves, err := playEpisode(e, first)
		if err != nil {
			return EvaluationResult{}, fmt.Errorf("episode %d: %w", episode+1, err)
		}
		cfg.Metrics.AddEpisode(metrics.EpisodeMetric{
			Episode:        episode + 1,
			StartingPlayer: first,
			Winner:         winner,
			Moves:          moves,
		})
	}

	stats := agent.Stats()
	result := EvaluationResult{
		Episodes: cfg.Episodes,
		Wins:     stats.Wins,
		Losses:   stats.Losses,
		Run:      cfg.Metrics.Complete(),
	}
	if cfg.Episodes > 0 {
		result.WinRate = float64(stats.Wins) / float64(cfg.Episodes)
	}
	log.Info().Msgf("completed evaluation: %d wins, %d losses, win rate %.3f", result.Wins, result.Losses, result.WinRate)
	return result, nil
}
