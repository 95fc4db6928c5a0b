package player

// Rewards recorded on a transition.
const (
	Loss    = -1
	Neutral = 0
	Win     = 1
)

// Transition is one move made by a player. Next is the pile the player faces
// on its following turn and stays Pending until the opponent has moved.
type Transition struct {
	Previous int
	Action   int
	Next     int
	Pending  bool
	Reward   int
}

// Stats are results gathered over many games.
type Stats struct {
	Wins    int
	Losses  int
	Rewards []int
}

// Ledger keeps the per-game transition history and the statistics of a player.
// Every player variant embeds one to get the same TurnFinished bookkeeping.
type Ledger struct {
	history []Transition
	stats   Stats
}

// TurnFinished records a move. The mover of a terminal move took the last
// stick and loses, so the opponent's last transition is the winning one.
func (l *Ledger) TurnFinished(isSelf, isTerminal bool, previous, next, action int) {
	if isSelf {
		l.history = append(l.history, Transition{
			Previous: previous,
			Action:   action,
			Pending:  true,
			Reward:   Neutral,
		})
		if isTerminal {
			l.history[len(l.history)-1].Reward = Loss
			l.stats.Rewards = append(l.stats.Rewards, Loss)
			l.stats.Losses++
		}
		return
	}

	if len(l.history) == 0 {
		return
	}
	last := &l.history[len(l.history)-1]
	last.Next = next
	last.Pending = false
	if isTerminal {
		last.Reward = Win
		l.stats.Rewards = append(l.stats.Rewards, Win)
		l.stats.Wins++
	}
}

func (l *Ledger) ResetGameHistory() {
	l.history = nil
}

func (l *Ledger) ResetStatistics() {
	l.stats = Stats{}
}

// History returns a copy of the transitions of the current game, oldest first.
func (l *Ledger) History() []Transition {
	history := make([]Transition, len(l.history))
	copy(history, l.history)
	return history
}

func (l *Ledger) Stats() Stats {
	rewards := make([]int, len(l.stats.Rewards))
	copy(rewards, l.stats.Rewards)
	return Stats{
		Wins:    l.stats.Wins,
		Losses:  l.stats.Losses,
		Rewards: rewards,
	}
}
