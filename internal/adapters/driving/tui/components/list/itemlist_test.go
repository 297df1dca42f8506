package list

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/curio-cli/internal/core/domain"
)

func records(ids ...string) []domain.Record {
	out := make([]domain.Record, 0, len(ids))
	for _, id := range ids {
		out = append(out, domain.Record{
			ID:       id,
			Metadata: domain.NewMetadata(map[string]any{domain.FieldTitulo: "Obra " + id}),
		})
	}
	return out
}

func key(s string) tea.KeyMsg {
	if s == " " {
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNewItemList(t *testing.T) {
	l := NewItemList(nil, true)

	require.NotNil(t, l)
	assert.Equal(t, 0, l.Count())
	assert.Nil(t, l.Current())
	assert.Contains(t, l.View(), "Sin items")
}

func TestItemList_Navigation(t *testing.T) {
	l := NewItemList(nil, true)
	l.SetItems(records("a", "b", "c"))

	l.Update(key("j"))
	l.Update(key("j"))
	l.Update(key("j"))
	assert.Equal(t, 2, l.Cursor())

	l.Update(key("k"))
	assert.Equal(t, "b", l.Current().ID)

	l.Update(tea.KeyMsg{Type: tea.KeyUp})
	l.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 0, l.Cursor())
}

func TestItemList_ToggleAndSelectionOrder(t *testing.T) {
	l := NewItemList(nil, true)
	l.SetItems(records("a", "b", "c"))

	l.MoveDown()
	l.MoveDown()
	l.Update(key(" "))
	l.MoveUp()
	l.MoveUp()
	l.Update(key(" "))

	assert.Equal(t, []string{"a", "c"}, l.Selection(), "selection follows list order")

	l.Toggle()
	assert.Equal(t, []string{"c"}, l.Selection())
}

func TestItemList_SelectAllNone(t *testing.T) {
	l := NewItemList(nil, true)
	l.SetItems(records("a", "b"))

	l.SelectAll()
	assert.Equal(t, 2, l.SelectedCount())

	l.SelectNone()
	assert.Empty(t, l.Selection())
}

func TestItemList_NotCheckable(t *testing.T) {
	l := NewItemList(nil, false)
	l.SetItems(records("a"))

	l.Toggle()
	l.SelectAll()

	assert.Empty(t, l.Selection())
	assert.NotContains(t, l.View(), "[ ]")
}

func TestItemList_SetItemsKeepsPresentChecks(t *testing.T) {
	l := NewItemList(nil, true)
	l.SetItems(records("a", "b", "c"))
	l.SelectAll()
	l.MoveDown()
	l.MoveDown()

	l.SetItems(records("b", "d"))

	assert.Equal(t, []string{"b"}, l.Selection())
	assert.Equal(t, 1, l.Cursor(), "cursor is clamped to the new length")
}

func TestItemList_View(t *testing.T) {
	l := NewItemList(nil, true)
	l.SetItems(records("a", "b"))
	l.Toggle()

	view := l.View()

	assert.Contains(t, view, "Obra a")
	assert.Contains(t, view, "[x]")
	assert.Contains(t, view, "[ ]")
}

func TestItemList_ViewScrolls(t *testing.T) {
	l := NewItemList(nil, false)
	l.SetDimensions(80, 4)
	l.SetItems(records("a", "b", "c", "d", "e"))
	for i := 0; i < 4; i++ {
		l.MoveDown()
	}

	view := l.View()

	assert.Contains(t, view, "Obra e")
	assert.NotContains(t, view, "Obra a")
	assert.Contains(t, view, "de 5")
}
