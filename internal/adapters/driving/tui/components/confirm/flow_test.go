package confirm

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/curio-cli/internal/core/ports/driving"
)

type doneMsg struct {
	approved bool
	err      error
}

func askOnce(ctx context.Context, c driving.Confirmer) tea.Msg {
	ok, err := c.Confirm(ctx, driving.Prompt{Message: "¿Continuar?"})
	return doneMsg{approved: ok, err: err}
}

func TestFlow_Approve(t *testing.T) {
	_, cmd := Start(context.Background(), askOnce)

	msg := cmd()
	req, ok := msg.(Requested)
	require.True(t, ok, "expected a confirmation request, got %T", msg)
	assert.Equal(t, "¿Continuar?", req.Prompt.Message)

	final := req.Flow.Answer(true)()
	assert.Equal(t, doneMsg{approved: true}, final)
}

func TestFlow_Decline(t *testing.T) {
	_, cmd := Start(context.Background(), askOnce)

	req := cmd().(Requested)
	final := req.Flow.Answer(false)()

	assert.Equal(t, doneMsg{approved: false}, final)
}

func TestFlow_NoPrompt(t *testing.T) {
	failing := errors.New("validation failed")
	_, cmd := Start(context.Background(), func(context.Context, driving.Confirmer) tea.Msg {
		return doneMsg{err: failing}
	})

	msg := cmd()

	assert.Equal(t, doneMsg{err: failing}, msg)
}

func TestFlow_ContextCancelledWhileWaiting(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	_, cmd := Start(ctx, askOnce)

	_, ok := cmd().(Requested)
	require.True(t, ok)

	cancel()
	final, ok := cmd().(doneMsg)
	require.True(t, ok)
	assert.False(t, final.approved)
	assert.ErrorIs(t, final.err, context.Canceled)
}

func TestFlow_StartIsIdempotent(t *testing.T) {
	calls := 0
	flow, cmd := Start(context.Background(), func(ctx context.Context, c driving.Confirmer) tea.Msg {
		calls++
		return askOnce(ctx, c)
	})

	req := cmd().(Requested)
	assert.Same(t, flow, req.Flow)
	req.Flow.Answer(true)()

	assert.Equal(t, 1, calls)
}

func TestOverlay(t *testing.T) {
	plain := Overlay(nil, driving.Prompt{Message: "¿Ejecutar?"})
	assert.Contains(t, plain, "¿Ejecutar?")
	assert.NotContains(t, plain, "ATENCIÓN")

	destructive := Overlay(nil, driving.Prompt{Message: "¿Eliminar 3 items?", Destructive: true})
	assert.Contains(t, destructive, "ATENCIÓN")
	assert.Contains(t, destructive, "¿Eliminar 3 items?")
}
