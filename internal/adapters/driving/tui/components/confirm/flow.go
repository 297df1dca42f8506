// Package confirm bridges synchronous driving.Confirmer calls into the
// Bubbletea update loop.
//
// A service call that may ask for confirmation runs on its own goroutine.
// When it asks, the flow delivers a Requested message; the view shows an
// overlay and answers through the flow, after which the call resumes and
// its final message is delivered.
package confirm

import (
	"context"
	"strings"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/curio-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/curio-cli/internal/core/ports/driving"
)

// Requested is delivered when the running call asks for confirmation.
type Requested struct {
	Flow   *Flow
	Prompt driving.Prompt
}

// Flow is one in-flight call that may ask for confirmation.
type Flow struct {
	prompts chan driving.Prompt
	answers chan bool
	done    chan tea.Msg
	start   sync.Once
	run     func()
}

// Start prepares a flow for fn and returns the command that launches it.
// fn's return value is delivered as the final message.
func Start(ctx context.Context, fn func(ctx context.Context, c driving.Confirmer) tea.Msg) (*Flow, tea.Cmd) {
	f := &Flow{
		prompts: make(chan driving.Prompt, 1),
		answers: make(chan bool, 1),
		done:    make(chan tea.Msg, 1),
	}
	confirmer := driving.ConfirmFunc(func(ctx context.Context, p driving.Prompt) (bool, error) {
		f.prompts <- p
		select {
		case ok := <-f.answers:
			return ok, nil
		case <-ctx.Done():
			return false, ctx.Err()
		}
	})
	f.run = func() {
		go func() {
			f.done <- fn(ctx, confirmer)
		}()
	}
	return f, f.next
}

// next waits for either a confirmation request or the final message.
func (f *Flow) next() tea.Msg {
	f.start.Do(f.run)
	select {
	case p := <-f.prompts:
		return Requested{Flow: f, Prompt: p}
	case msg := <-f.done:
		return msg
	}
}

// Answer replies to the pending request and waits for what comes next.
func (f *Flow) Answer(ok bool) tea.Cmd {
	f.answers <- ok
	return f.next
}

// Overlay renders a prompt box.
func Overlay(s *styles.Styles, prompt driving.Prompt) string {
	if s == nil {
		s = styles.DefaultStyles()
	}
	var b strings.Builder
	box := s.Overlay
	if prompt.Destructive {
		box = s.DestructiveOverlay
		b.WriteString(s.Error.Render("¡ATENCIÓN!"))
		b.WriteString("\n\n")
	}
	b.WriteString(s.Normal.Render(prompt.Message))
	b.WriteString("\n\n")
	b.WriteString(s.Help.Render("[y] confirmar  [n/esc] cancelar"))
	return box.Render(b.String())
}
