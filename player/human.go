package player

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
)

// Prompter asks a person for a line of input.
type Prompter interface {
	Prompt(text string) (string, error)
}

// Human asks a person to pick a move until a valid option is given.
type Human struct {
	Ledger
	name     string
	prompter Prompter
}

func NewHuman(name string, prompter Prompter) *Human {
	return &Human{name: name, prompter: prompter}
}

func (p *Human) Name() string {
	return p.name
}

// Play blocks until the person picks a valid option. Bad input is answered
// with another prompt; only a failing input source is returned as an error.
func (p *Human) Play(state int, successors []int) (int, error) {
	text := optionsPrompt(state, successors)
	for {
		answer, err := p.prompter.Prompt(text)
		if err != nil {
			return 0, fmt.Errorf("failed to read move of %s: %w", p.name, err)
		}
		choice, err := strconv.Atoi(strings.TrimSpace(answer))
		if err != nil || choice < 1 || choice > len(successors) {
			log.Debug().Msgf("rejected input %q from %s", answer, p.name)
			text = fmt.Sprintf("Please enter a number between 1 and %d: ", len(successors))
			continue
		}
		return successors[choice-1], nil
	}
}

func optionsPrompt(state int, successors []int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d sticks left. Your move:\n", state)
	for i, next := range successors {
		left := next
		if left < 0 {
			left = 0
		}
		fmt.Fprintf(&b, "  %d) take %d -> %d left\n", i+1, state-next, left)
	}
	fmt.Fprintf(&b, "Choose 1-%d: ", len(successors))
	return b.String()
}
