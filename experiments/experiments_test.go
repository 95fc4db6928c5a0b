package experiments

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"nim/experiments/metrics"
	"nim/game"
	"nim/learner"

	"github.com/stretchr/testify/require"
)

func trainingConfig(seed uint64) TrainingConfig {
	return TrainingConfig{
		Rules:      game.NewStandardRules(),
		Epochs:     10000,
		Alpha:      0.1,
		Epsilon:    1,
		Decay:      0.9995,
		MinEpsilon: 0.01,
		Workers:    1,
		Seed:       seed,
	}
}

func evaluationConfig() EvaluationConfig {
	return EvaluationConfig{Rules: game.NewStandardRules(), Episodes: 1000, Seed: 5}
}

func TestTrain(t *testing.T) {
	t.Run("learns to beat a random player", func(t *testing.T) {
		table := learner.NewValueTable()
		result, err := Train(context.Background(), trainingConfig(1), table)
		require.NoError(t, err)
		require.Equal(t, 10000, result.Epochs)
		require.Equal(t, 10000, result.Wins[0]+result.Wins[1])
		require.InDelta(t, 0.01, result.Epsilon, 1e-9, "Epsilon should have decayed to its floor")

		eval, err := Evaluate(context.Background(), evaluationConfig(), table)
		require.NoError(t, err)
		require.Equal(t, 1000, eval.Wins+eval.Losses)
		require.Greater(t, eval.WinRate, 0.5, "A trained learner should beat a random player above chance")
	})

	t.Run("is reproducible with the same seed", func(t *testing.T) {
		a, b := learner.NewValueTable(), learner.NewValueTable()
		cfg := trainingConfig(3)
		cfg.Epochs = 2000

		_, err := Train(context.Background(), cfg, a)
		require.NoError(t, err)
		_, err = Train(context.Background(), cfg, b)
		require.NoError(t, err)
		require.Equal(t, a.Snapshot(), b.Snapshot())

		evalA, err := Evaluate(context.Background(), evaluationConfig(), a)
		require.NoError(t, err)
		evalB, err := Evaluate(context.Background(), evaluationConfig(), b)
		require.NoError(t, err)
		require.Equal(t, evalA.Wins, evalB.Wins)
	})

	t.Run("learns the losing piles", func(t *testing.T) {
		table := learner.NewValueTable()
		_, err := Train(context.Background(), trainingConfig(7), table)
		require.NoError(t, err)

		// Facing 1, 5, 9, ... sticks loses against good play.
		require.Less(t, table.Get(1), 0.0)
		require.Less(t, table.Get(5), 0.0)
		require.Greater(t, table.Get(2), 0.0)
		require.Greater(t, table.Get(4), 0.0)
	})

	t.Run("records every epoch", func(t *testing.T) {
		collector := metrics.NewCollector()
		cfg := trainingConfig(1)
		cfg.Epochs = 20
		cfg.Metrics = collector

		result, err := Train(context.Background(), cfg, learner.NewValueTable())
		require.NoError(t, err)

		episodes := collector.Episodes()
		require.Len(t, episodes, 20)
		require.Equal(t, 0, episodes[0].StartingPlayer)
		require.Equal(t, 1, episodes[1].StartingPlayer)
		require.Equal(t, 20, result.Run.Episodes)
	})

	t.Run("stops when the context is cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := Train(ctx, trainingConfig(1), learner.NewValueTable())

		require.ErrorIs(t, err, context.Canceled)
	})

	t.Run("rejects invalid configuration", func(t *testing.T) {
		cfg := trainingConfig(1)
		cfg.Rules.Actions = nil

		_, err := Train(context.Background(), cfg, learner.NewValueTable())

		var cfgErr *game.ConfigurationError
		require.True(t, errors.As(err, &cfgErr))
	})
}

func TestTrainParallel(t *testing.T) {
	t.Run("spreads epochs over workers", func(t *testing.T) {
		collector := metrics.NewCollector()
		cfg := trainingConfig(1)
		cfg.Workers = 4
		cfg.Epochs = 10001
		cfg.Metrics = collector
		table := learner.NewValueTable()

		result, err := Train(context.Background(), cfg, table)

		require.NoError(t, err)
		require.Equal(t, 10001, result.Epochs)
		require.Len(t, collector.Episodes(), 10001)

		eval, err := Evaluate(context.Background(), evaluationConfig(), table)
		require.NoError(t, err)
		require.Greater(t, eval.WinRate, 0.5)
	})

	t.Run("stops when the context is cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		cfg := trainingConfig(1)
		cfg.Workers = 3

		_, err := Train(ctx, cfg, learner.NewValueTable())

		require.ErrorIs(t, err, context.Canceled)
	})
}

func TestEvaluate(t *testing.T) {
	t.Run("untrained learner still finishes every game", func(t *testing.T) {
		cfg := evaluationConfig()
		cfg.Episodes = 50

		result, err := Evaluate(context.Background(), cfg, learner.NewValueTable())

		require.NoError(t, err)
		require.Equal(t, 50, result.Wins+result.Losses)
		require.InDelta(t, float64(result.Wins)/50, result.WinRate, 1e-9)
	})

	t.Run("does not change the table", func(t *testing.T) {
		table := learner.NewValueTableFrom(map[int]float64{1: -1, 2: 1})

		_, err := Evaluate(context.Background(), evaluationConfig(), table)

		require.NoError(t, err)
		require.Equal(t, map[int]float64{1: -1, 2: 1}, table.Snapshot())
	})
}

type scriptedPrompter struct {
	answers []string
}

func (p *scriptedPrompter) Prompt(text string) (string, error) {
	if len(p.answers) == 0 {
		return "", io.EOF
	}
	answer := p.answers[0]
	p.answers = p.answers[1:]
	return answer, nil
}

type recordingEmitter struct {
	lines []string
}

func (e *recordingEmitter) Emit(text string) {
	e.lines = append(e.lines, text)
}

func (e *recordingEmitter) contains(text string) bool {
	for _, line := range e.lines {
		if strings.Contains(line, text) {
			return true
		}
	}
	return false
}

func TestInteractive(t *testing.T) {
	rules := game.Rules{PileSize: 5, Actions: []int{1, 2, 3}}

	t.Run("human takes the last stick and loses", func(t *testing.T) {
		// 5 -3-> 2, computer 2 -> 1, human 1 -> 0
		prompter := &scriptedPrompter{answers: []string{"3", "1", "n"}}
		out := &recordingEmitter{}

		stats, err := Interactive(InteractiveConfig{Rules: rules, HumanFirst: true}, learner.NewValueTable(), prompter, out)

		require.NoError(t, err)
		require.Equal(t, 1, stats.Losses)
		require.True(t, out.contains("You lose!"))
		require.True(t, out.contains("|||||"), "The starting pile should be drawn")
		require.True(t, out.contains("Games won: 0, lost: 1"))
		require.True(t, out.contains("computer took 1, 1 left"), "Moves should be reported by player name")
		require.True(t, out.contains("New game with 5 sticks"))
	})

	t.Run("invalid input is asked again and closed input stops", func(t *testing.T) {
		// 5 -1-> 4, computer 4 -> 3, human 3 -2-> 1, computer 1 -> 0
		prompter := &scriptedPrompter{answers: []string{"x", "1", "9", "2", "y"}}
		out := &recordingEmitter{}

		stats, err := Interactive(InteractiveConfig{Rules: rules, HumanFirst: true}, learner.NewValueTable(), prompter, out)

		require.NoError(t, err)
		require.Equal(t, 1, stats.Wins)
		require.Equal(t, 0, stats.Losses)
		require.True(t, out.contains("You win!"))
		require.True(t, out.contains("Input closed"))
	})
}
