package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"nim/config"
	"nim/console"
	"nim/experiments"
	"nim/experiments/metrics"
	"nim/learner"
	"nim/store"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const usage = `usage: nim <train|eval|play> [flags]

  train   learn a value table by self-play and save it
  eval    play the saved table against a random player
  play    play against the saved table in the terminal
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	command, args := os.Args[1], os.Args[2:]

	flags := flag.NewFlagSet(command, flag.ExitOnError)
	configPath := flags.String("config", "", "Path to a YAML config file")
	epochs := flags.Int("epochs", 0, "Number of self-play training games (overrides config)")
	workers := flags.Int("workers", 0, "Number of parallel self-play workers (overrides config)")
	seed := flags.Uint64("seed", 0, "Random seed (overrides config)")
	storePath := flags.String("store", "", "Value table location (overrides config)")
	humanFirst := flags.Bool("first", true, "Let the human move first in the first game")
	flags.Parse(args)

	cfg, err := config.Load(*configPath)
	if err == nil {
		err = cfg.ApplyEnv()
	}
	if err != nil {
		fatal(err)
	}
	if *epochs > 0 {
		cfg.Training.Epochs = *epochs
	}
	if *workers > 0 {
		cfg.Training.Workers = *workers
	}
	if isSet(flags, "seed") {
		cfg.Training.Seed = *seed
	}
	if *storePath != "" {
		cfg.Store.Path = *storePath
	}
	if err := cfg.Validate(); err != nil {
		fatal(err)
	}
	setupLogging(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	switch command {
	case "train":
		err = runTrain(ctx, cfg)
	case "eval":
		err = runEval(ctx, cfg)
	case "play":
		err = runPlay(cfg, *humanFirst)
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	if err != nil {
		fatal(err)
	}
}

// isSet reports whether the flag called name was given on the command line.
func isSet(flags *flag.FlagSet, name string) bool {
	set := false
	flags.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}

func setupLogging(level string) {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "nim: %v\n", err)
	os.Exit(1)
}

func loadTable(cfg config.Config) (*learner.ValueTable, store.Store, error) {
	s, err := store.Open(cfg.Store.Kind, cfg.Store.Path)
	if err != nil {
		return nil, nil, err
	}
	values, err := s.Load()
	if err != nil {
		s.Close()
		return nil, nil, err
	}
	log.Info().Msgf("loaded %d values from %s store at %s", len(values), cfg.Store.Kind, cfg.Store.Path)
	return learner.NewValueTableFrom(values), s, nil
}

func newCollector(cfg config.Config) metrics.Collector {
	if cfg.Metrics.Enabled {
		return metrics.NewCollector()
	}
	return metrics.NewDummyCollector()
}

func writeMetrics(cfg config.Config, name string, collector metrics.Collector, run metrics.RunMetric) {
	if !cfg.Metrics.Enabled {
		return
	}
	writer, err := metrics.NewWriter(cfg.Metrics.Dir, name)
	if err != nil {
		log.Error().Err(err).Msg("failed to create metrics writer")
		return
	}
	if err := writer.WriteEpisodes(collector.Episodes()); err != nil {
		log.Error().Err(err).Msg("failed to write episode metrics")
	}
	if err := writer.WriteRun(run); err != nil {
		log.Error().Err(err).Msg("failed to write run metrics")
	}
	log.Info().Msgf("stored metrics in %s", writer.Dir())
}

func runTrain(ctx context.Context, cfg config.Config) error {
	table, s, err := loadTable(cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	collector := newCollector(cfg)
	result, err := experiments.Train(ctx, experiments.TrainingConfig{
		Rules:      cfg.Rules(),
		Epochs:     cfg.Training.Epochs,
		Alpha:      cfg.Learner.Alpha,
		Epsilon:    cfg.Learner.Epsilon,
		Decay:      cfg.Training.Decay,
		MinEpsilon: cfg.Training.MinEpsilon,
		Workers:    cfg.Training.Workers,
		LogEvery:   cfg.Training.LogEvery,
		Seed:       cfg.Training.Seed,
		Metrics:    collector,
	}, table)
	if err != nil {
		return err
	}
	writeMetrics(cfg, "training", collector, result.Run)

	if err := s.Save(table.Snapshot()); err != nil {
		return err
	}
	log.Info().Msgf("saved %d values to %s", table.Len(), cfg.Store.Path)
	return nil
}

func runEval(ctx context.Context, cfg config.Config) error {
	table, s, err := loadTable(cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	collector := newCollector(cfg)
	result, err := experiments.Evaluate(ctx, experiments.EvaluationConfig{
		Rules:    cfg.Rules(),
		Episodes: cfg.Evaluation.Episodes,
		Seed:     cfg.Training.Seed,
		Metrics:  collector,
	}, table)
	if err != nil {
		return err
	}
	writeMetrics(cfg, "evaluation", collector, result.Run)

	out := console.NewEmitter(os.Stdout)
	out.Emitf("episodes: %d, wins: %d, losses: %d, win rate: %.3f", result.Episodes, result.Wins, result.Losses, result.WinRate)
	return nil
}

func runPlay(cfg config.Config, humanFirst bool) error {
	table, s, err := loadTable(cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	_, err = experiments.Interactive(experiments.InteractiveConfig{
		Rules:      cfg.Rules(),
		Seed:       cfg.Training.Seed,
		HumanFirst: humanFirst,
	}, table, console.NewPrompter(os.Stdin, os.Stdout), console.NewEmitter(os.Stdout))
	return err
}
