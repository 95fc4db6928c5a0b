package metrics

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCollector(t *testing.T) {
	c := NewCollector()
	c.Start("training")
	c.AddEpisode(EpisodeMetric{Episode: 1, Winner: 0, Moves: 9})
	c.AddEpisode(EpisodeMetric{Episode: 2, Winner: 1, Moves: 7})
	c.AddEpisode(EpisodeMetric{Episode: 3, Winner: 1, Moves: 8})

	run := c.Complete()

	require.Equal(t, "training", run.Name)
	require.Equal(t, 3, run.Episodes)
	require.Equal(t, [2]int{1, 2}, run.Wins)
	require.Equal(t, 24, run.Moves)
	require.Len(t, c.Episodes(), 3)
	require.False(t, run.EndTime.Before(run.StartTime))
}

func TestDummyCollector(t *testing.T) {
	c := NewDummyCollector()
	c.Start("training")
	c.AddEpisode(EpisodeMetric{Episode: 1})

	require.Equal(t, RunMetric{}, c.Complete())
	require.Empty(t, c.Episodes())
}

func TestWriter(t *testing.T) {
	w, err := NewWriter(t.TempDir(), "training")
	require.NoError(t, err)

	require.NoError(t, w.WriteEpisodes([]EpisodeMetric{{Episode: 1, StartingPlayer: 1, Winner: 0, Moves: 9, Epsilon: 0.5}}))
	require.NoError(t, w.WriteRun(RunMetric{Name: "training", Episodes: 1, Wins: [2]int{1, 0}}))

	f, err := os.Open(filepath.Join(w.Dir(), "episodes.csv"))
	require.NoError(t, err)
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Equal(t, [][]string{
		{"episode", "worker", "starting_player", "winner", "moves", "epsilon"},
		{"1", "0", "1", "0", "9", "0.500000"},
	}, records)

	_, err = os.Stat(filepath.Join(w.Dir(), "run.csv"))
	require.NoError(t, err)
}
