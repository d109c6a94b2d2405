package notify

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/mattn/go-isatty"
)

// Notifier is the user-feedback capability the ripping engine depends on.
type Notifier interface {
	// PlaySound plays an audio file. Callers treat failure as best-effort.
	PlaySound(ctx context.Context, path string) error

	// ReadLine prompts for one line of input. Fails only on unrecoverable
	// I/O, e.g. a closed or non-interactive input stream.
	ReadLine(prompt string) (string, error)
}

// Console implements Notifier against the local terminal and sound system.
type Console struct {
	in          *bufio.Reader
	out         io.Writer
	interactive bool
}

// NewConsole builds a Console bound to stdin/stdout. Interactivity is
// detected via the TTY state of stdin so a piped invocation fails fast on
// prompts instead of blocking forever.
func NewConsole() *Console {
	fd := os.Stdin.Fd()
	return NewConsoleWith(os.Stdin, os.Stdout,
		isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd))
}

// NewConsoleWith allows injecting the streams (used in tests).
func NewConsoleWith(in io.Reader, out io.Writer, interactive bool) *Console {
	return &Console{in: bufio.NewReader(in), out: out, interactive: interactive}
}

// PlaySound shells out to the sox play utility.
func (c *Console) PlaySound(ctx context.Context, path string) error {
	if strings.TrimSpace(path) == "" {
		return nil
	}
	if err := exec.CommandContext(ctx, "play", "-q", path).Run(); err != nil {
		return fmt.Errorf("play %s: %w", path, err)
	}
	return nil
}

// ReadLine writes the prompt and blocks for one line of input.
func (c *Console) ReadLine(prompt string) (string, error) {
	if !c.interactive {
		return "", fmt.Errorf("prompt %q: input is not interactive", prompt)
	}
	if _, err := fmt.Fprint(c.out, prompt); err != nil {
		return "", fmt.Errorf("write prompt: %w", err)
	}
	line, err := c.in.ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("read answer for %q: %w", prompt, err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// Confirm asks a yes/no question and reports an affirmative answer.
// Comparison is case-insensitive; "y" and "yes" are affirmative.
func (c *Console) Confirm(prompt string) (bool, error) {
	line, err := c.ReadLine(prompt)
	if err != nil {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}
