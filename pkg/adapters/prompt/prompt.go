// Package prompt answers yes/no questions raised during a run.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ideamans/go-l10n"
	"golang.org/x/term"

	"github.com/user/resampler/pkg/ports"
)

// Terminal asks on an interactive terminal.
type Terminal struct {
	in          io.Reader
	out         io.Writer
	interactive bool
}

// NewTerminal prompts on stderr and reads stdin. When stdin is not a
// terminal every question is answered no.
func NewTerminal() *Terminal {
	return &Terminal{
		in:          os.Stdin,
		out:         os.Stderr,
		interactive: term.IsTerminal(int(os.Stdin.Fd())),
	}
}

// NewTerminalWithIO creates a Terminal over explicit streams, treated as interactive.
func NewTerminalWithIO(in io.Reader, out io.Writer) *Terminal {
	return &Terminal{in: in, out: out, interactive: true}
}

// Confirm prints prompt and reads one line. Only "y" and "yes" confirm.
func (t *Terminal) Confirm(prompt string) (bool, error) {
	prompt = l10n.T(prompt)
	if !t.interactive {
		fmt.Fprintf(t.out, "%s (y/n): n (%s)\n", prompt, l10n.T("stdin is not a terminal"))
		return false, nil
	}

	fmt.Fprintf(t.out, "%s (y/n): ", prompt)
	line, err := bufio.NewReader(t.in).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, fmt.Errorf("read answer: %w", err)
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

// Static always gives the same answer.
type Static bool

// Confirm returns the fixed answer.
func (s Static) Confirm(prompt string) (bool, error) {
	return bool(s), nil
}

var (
	_ ports.Confirmer = (*Terminal)(nil)
	_ ports.Confirmer = Static(false)
)
