// Package console connects players and game loops to a terminal.
package console

import (
	"bufio"
	"fmt"
	"io"
)

// Prompter writes a prompt and reads one line of the answer.
type Prompter struct {
	in  *bufio.Scanner
	out io.Writer
}

func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewScanner(in), out: out}
}

// Prompt blocks until a line is read. It returns io.EOF once input is closed.
func (p *Prompter) Prompt(text string) (string, error) {
	if _, err := fmt.Fprint(p.out, text); err != nil {
		return "", err
	}
	if !p.in.Scan() {
		if err := p.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return p.in.Text(), nil
}

// Emitter writes lines of text. Write failures are ignored; output is advisory.
type Emitter struct {
	out io.Writer
}

func NewEmitter(out io.Writer) *Emitter {
	return &Emitter{out: out}
}

func (e *Emitter) Emit(text string) {
	fmt.Fprintln(e.out, text)
}

func (e *Emitter) Emitf(format string, args ...any) {
	fmt.Fprintf(e.out, format+"\n", args...)
}
