package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/curio-cli/internal/core/domain"
	"github.com/custodia-labs/curio-cli/internal/core/ports/driving"
)

// confirmerFor returns the Confirmer for a command invocation.
// --yes approves everything. Without a terminal on stdin, prompts fail
// with domain.ErrConfirmationRequired rather than guessing an answer.
func confirmerFor(cmd *cobra.Command) driving.Confirmer {
	if yesFlag {
		return driving.AlwaysConfirm
	}
	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok && !term.IsTerminal(int(f.Fd())) {
		return driving.ConfirmFunc(func(context.Context, driving.Prompt) (bool, error) {
			return false, fmt.Errorf("%w: stdin is not a terminal, re-run with --yes", domain.ErrConfirmationRequired)
		})
	}
	return &promptConfirmer{in: bufio.NewReader(in), out: cmd.OutOrStdout()}
}

// promptConfirmer asks on the terminal and reads a one-line answer.
type promptConfirmer struct {
	in  *bufio.Reader
	out io.Writer
}

func (p *promptConfirmer) Confirm(_ context.Context, prompt driving.Prompt) (bool, error) {
	if prompt.Destructive {
		fmt.Fprintln(p.out, "¡ATENCIÓN!")
	}
	fmt.Fprintf(p.out, "%s [s/N]: ", prompt.Message)

	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		if err == io.EOF {
			return false, nil
		}
		return false, err
	}
	return isYes(line), nil
}

func isYes(answer string) bool {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "s", "si", "sí", "y", "yes":
		return true
	default:
		return false
	}
}
