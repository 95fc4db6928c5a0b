package metrics

import (
	"sync"
	"time"
)

// EpisodeMetric describes one finished game.
type EpisodeMetric struct {
	Episode        int
	StartingPlayer int
	Winner         int
	Moves          int
	Epsilon        float64
	Worker         int
}

// RunMetric summarizes a training or evaluation run.
type RunMetric struct {
	Name      string
	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration
	Episodes  int
	Wins      [2]int // Wins per player index
	Moves     int
}

type Collector interface {
	Start(name string)
	AddEpisode(episode EpisodeMetric)
	Complete() RunMetric
	Episodes() []EpisodeMetric
}

type collector struct {
	mu       sync.Mutex
	run      RunMetric
	episodes []EpisodeMetric
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.run = RunMetric{Name: name, StartTime: time.Now()}
	m.episodes = nil
}

func (m *collector) AddEpisode(episode EpisodeMetric) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.episodes = append(m.episodes, episode)
	m.run.Episodes++
	m.run.Moves += episode.Moves
	if episode.Winner == 0 || episode.Winner == 1 {
		m.run.Wins[episode.Winner]++
	}
}

func (m *collector) Complete() RunMetric {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.run.EndTime = time.Now()
	m.run.Duration = m.run.EndTime.Sub(m.run.StartTime)
	return m.run
}

func (m *collector) Episodes() []EpisodeMetric {
	m.mu.Lock()
	defer m.mu.Unlock()
	episodes := make([]EpisodeMetric, len(m.episodes))
	copy(episodes, m.episodes)
	return episodes
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(name string)                {}
func (m *dummyCollector) AddEpisode(episode EpisodeMetric) {}
func (m *dummyCollector) Complete() RunMetric              { return RunMetric{} }
func (m *dummyCollector) Episodes() []EpisodeMetric        { return nil }
