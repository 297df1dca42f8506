package menu

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/curio-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/curio-cli/internal/adapters/driving/tui/styles"
)

func TestNewView(t *testing.T) {
	view := NewView(styles.DefaultStyles())

	require.NotNil(t, view)
	assert.Len(t, view.items, 4)
	assert.Equal(t, 0, view.Selected())
	assert.Nil(t, view.Init())
}

func TestNewView_NilStyles(t *testing.T) {
	view := NewView(nil)

	require.NotNil(t, view)
	assert.NotNil(t, view.styles)
}

func TestView_Navigate(t *testing.T) {
	view := NewView(nil)

	for i := 0; i < 10; i++ {
		view.Update(tea.KeyMsg{Type: tea.KeyDown})
	}
	assert.Equal(t, 3, view.Selected())

	view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}})
	assert.Equal(t, 2, view.Selected())
}

func TestView_Enter_ChangesView(t *testing.T) {
	tests := []struct {
		index int
		want  messages.ViewType
	}{
		{0, messages.ViewCollections},
		{1, messages.ViewSearch},
		{2, messages.ViewHelp},
	}

	for _, tt := range tests {
		t.Run(tt.want.String(), func(t *testing.T) {
			view := NewView(nil)
			view.selected = tt.index

			_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEnter})

			require.NotNil(t, cmd)
			changed, ok := cmd().(messages.ViewChanged)
			require.True(t, ok)
			assert.Equal(t, tt.want, changed.View)
		})
	}
}

func TestView_Enter_Quit(t *testing.T) {
	view := NewView(nil)
	view.selected = 3

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEnter})

	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestView_Q_Quits(t *testing.T) {
	view := NewView(nil)

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})

	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestView_View(t *testing.T) {
	view := NewView(nil)
	assert.Equal(t, "Iniciando...", view.View())

	view.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	view.SetAPIURL("http://localhost:8000")
	out := view.View()

	assert.Contains(t, out, "Curio")
	assert.Contains(t, out, "Colecciones")
	assert.Contains(t, out, "Buscar")
	assert.Contains(t, out, "Backend: http://localhost:8000")
}
