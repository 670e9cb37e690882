// Package cli implements the user-facing surface of the tool: validated
// prompts, rendering of records and schedules, the text export format, and
// the interactive menu loop. Everything reads from and writes to injected
// streams, so the whole package is testable without a terminal.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Prompter reads validated line-oriented input. It re-prompts on invalid
// input and only gives up when the input stream ends.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewPrompter creates a Prompter reading from in and echoing prompts to out.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{
		in:  bufio.NewReader(in),
		out: out,
	}
}

// ReadLine prints the prompt and returns the next line, trimmed.
// Returns io.EOF when the input stream is exhausted.
func (p *Prompter) ReadLine(prompt string) (string, error) {
	fmt.Fprint(p.out, prompt)

	line, err := p.in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}

	return strings.TrimSpace(line), nil
}

// ReadIntRange prints the prompt and parses an integer in [min, max],
// re-prompting on parse failures and out-of-range values.
func (p *Prompter) ReadIntRange(prompt string, min, max int) (int, error) {
	for {
		line, err := p.ReadLine(prompt)
		if err != nil {
			return 0, err
		}

		n, err := strconv.Atoi(line)
		if err != nil {
			fmt.Fprintf(p.out, "Please enter a valid number!\n")
			continue
		}

		if n < min || n > max {
			fmt.Fprintf(p.out, "Please enter a number between %d-%d!\n", min, max)
			continue
		}

		return n, nil
	}
}

// Confirm asks a y/n question and reports whether the answer was yes.
func (p *Prompter) Confirm(prompt string) (bool, error) {
	line, err := p.ReadLine(prompt)
	if err != nil {
		return false, err
	}
	return strings.EqualFold(line, "y") || strings.EqualFold(line, "yes"), nil
}
