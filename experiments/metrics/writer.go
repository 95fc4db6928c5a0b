package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"
)

type Writer struct {
	baseDir string
}

// NewWriter creates <root>/<name>/<timestamp>-<run id> for the files of one run.
func NewWriter(root, name string) (*Writer, error) {
	timestamp := time.Now().UTC().Format("20060102T150405Z")
	baseDir := filepath.Join(root, name, timestamp+"-"+uuid.NewString())
	err := os.MkdirAll(baseDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{
		baseDir: baseDir,
	}, nil
}

func (w *Writer) Dir() string {
	return w.baseDir
}

func (w *Writer) WriteEpisodes(episodes []EpisodeMetric) error {
	header := []string{"episode", "worker", "starting_player", "winner", "moves", "epsilon"}
	rows := make([][]string, 0, len(episodes))
	for _, e := range episodes {
		rows = append(rows, []string{
			strconv.Itoa(e.Episode),
			strconv.Itoa(e.Worker),
			strconv.Itoa(e.StartingPlayer),
			strconv.Itoa(e.Winner),
			strconv.Itoa(e.Moves),
			strconv.FormatFloat(e.Epsilon, 'f', 6, 64),
		})
	}
	return w.write("episodes.csv", header, rows)
}

func (w *Writer) WriteRun(run RunMetric) error {
	header := []string{"name", "start_time", "end_time", "duration", "episodes", "wins_player0", "wins_player1", "moves"}
	row := []string{
		run.Name,
		run.StartTime.Format(time.RFC3339),
		run.EndTime.Format(time.RFC3339),
		run.Duration.String(),
		strconv.Itoa(run.Episodes),
		strconv.Itoa(run.Wins[0]),
		strconv.Itoa(run.Wins[1]),
		strconv.Itoa(run.Moves),
	}
	return w.write("run.csv", header, [][]string{row})
}

func (w *Writer) write(name string, header []string, rows [][]string) error {
	path := filepath.Join(w.baseDir, name)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", name, err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)

	err = writer.Write(header)
	if err != nil {
		return fmt.Errorf("failed to write %s header: %w", name, err)
	}
	err = writer.WriteAll(rows)
	if err != nil {
		return fmt.Errorf("failed to write %s rows: %w", name, err)
	}

	return nil
}
