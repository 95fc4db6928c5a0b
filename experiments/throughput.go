package experiments

import (
	"context"
	"fmt"
	"sync"

	"nim/engine"
	"nim/experiments/metrics"
	"nim/learner"
	"nim/player"
	"nim/utils"

	"github.com/rs/zerolog/log"
)

// episodeUpdate carries the histories of one finished game to the table writer.
type episodeUpdate struct {
	histories [2][]player.Transition
}

// trainParallel spreads the epochs over cfg.Workers goroutines. Every worker
// plays its own games with its own learners and reads the shared table, while
// a single writer applies the finished games to it.
func trainParallel(ctx context.Context, cfg TrainingConfig, table *learner.ValueTable) (TrainingResult, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	log.Info().Msgf("starting parallel training for %d epochs on %d workers...", cfg.Epochs, cfg.Workers)
	cfg.Metrics.Start("training")

	updates := make(chan episodeUpdate, cfg.Workers)
	written := make(chan struct{})
	go func() {
		defer close(written)
		for u := range updates {
			for _, history := range u.histories {
				learner.Update(table, history, cfg.Alpha)
			}
		}
	}()

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		result   = TrainingResult{Epsilon: cfg.Epsilon}
		firstErr error
	)
	for w := 0; w < cfg.Workers; w++ {
		epochs := cfg.Epochs / cfg.Workers
		if w < cfg.Epochs%cfg.Workers {
			epochs++
		}
		wg.Add(1)
		go func(worker, epochs int) {
			defer wg.Done()
			wins, epsilon, err := runWorker(ctx, cfg, table, worker, epochs, updates)

			mu.Lock()
			defer mu.Unlock()
			result.Wins[0] += wins[0]
			result.Wins[1] += wins[1]
			result.Epochs += wins[0] + wins[1]
			if epsilon < result.Epsilon {
				result.Epsilon = epsilon
			}
			if err != nil && firstErr == nil {
				firstErr = err
				cancel()
			}
		}(w, epochs)
	}

	wg.Wait()
	close(updates)
	<-written

	result.Run = cfg.Metrics.Complete()
	if firstErr != nil {
		return result, firstErr
	}
	log.Info().Msgf("completed parallel training: wins by seat %v", result.Wins)
	return result, nil
}

func runWorker(ctx context.Context, cfg TrainingConfig, table *learner.ValueTable, worker, epochs int, updates chan<- episodeUpdate) ([2]int, float64, error) {
	var wins [2]int
	rng := utils.NewRand(cfg.Seed + uint64(worker))
	learners := [2]*learner.Learner{
		learner.New(rng, learner.WithName(fmt.Sprintf("worker-%d-learner-0", worker)), learner.WithAlpha(cfg.Alpha), learner.WithEpsilon(cfg.Epsilon), learner.WithTable(table)),
		learner.New(rng, learner.WithName(fmt.Sprintf("worker-%d-learner-1", worker)), learner.WithAlpha(cfg.Alpha), learner.WithEpsilon(cfg.Epsilon), learner.WithTable(table)),
	}
	e, err := engine.New(cfg.Rules, [2]player.Player{learners[0], learners[1]})
	if err != nil {
		return wins, cfg.Epsilon, err
	}

	epsilon := cfg.Epsilon
	for epoch := 0; epoch < epochs; epoch++ {
		if err := ctx.Err(); err != nil {
			return wins, epsilon, err
		}

		first := epoch % 2
		winner, moves, err := playEpisode(e, first)
		if err != nil {
			return wins, epsilon, fmt.Errorf("worker %d epoch %d: %w", worker, epoch+1, err)
		}
		wins[winner]++

		select {
		case updates <- episodeUpdate{histories: [2][]player.Transition{learners[0].History(), learners[1].History()}}:
		case <-ctx.Done():
			return wins, epsilon, ctx.Err()
		}

		cfg.Metrics.AddEpisode(metrics.EpisodeMetric{
			Episode:        epoch + 1,
			StartingPlayer: first,
			Winner:         winner,
			Moves:          moves,
			Epsilon:        epsilon,
			Worker:         worker,
		})

		epsilon = decay(epsilon, cfg.Decay, cfg.MinEpsilon)
		for _, l := range learners {
			l.SetEpsilon(epsilon)
		}

		if cfg.LogEvery > 0 && (epoch+1)%cfg.LogEvery == 0 {
			log.Info().Msgf("worker %d completed epoch %d of %d with epsilon=%.4f", worker, epoch+1, epochs, epsilon)
		}
	}
	return wins, epsilon, nil
}
