package input

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/curio-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/curio-cli/internal/core/domain"
)

func typeText(t *testing.T, update func(tea.Msg), text string) {
	t.Helper()
	for _, r := range text {
		update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func TestNewQueryInput(t *testing.T) {
	in := NewQueryInput(styles.DefaultStyles(), "Buscar", "consulta...")

	require.NotNil(t, in)
	assert.Equal(t, "", in.Value())
	assert.True(t, in.Focused())
	assert.NotNil(t, in.Init())
}

func TestNewQueryInput_NilStyles(t *testing.T) {
	in := NewQueryInput(nil, "Buscar", "")

	require.NotNil(t, in)
	assert.NotNil(t, in.styles)
}

func TestQueryInput_UpdateAndView(t *testing.T) {
	in := NewQueryInput(nil, "Buscar", "")

	typeText(t, func(m tea.Msg) { in.Update(m) }, "goya")

	assert.Equal(t, "goya", in.Value())
	assert.Contains(t, in.View(), "Buscar")
}

func TestQueryInput_FocusBlurReset(t *testing.T) {
	in := NewQueryInput(nil, "Buscar", "")
	in.SetValue("x")

	in.Blur()
	assert.False(t, in.Focused())
	in.Focus()
	assert.True(t, in.Focused())

	in.Reset()
	assert.Equal(t, "", in.Value())
}

func TestQueryInput_SetWidth_Minimum(t *testing.T) {
	in := NewQueryInput(nil, "Buscar", "")

	in.SetWidth(5)

	assert.Equal(t, 20, in.textinput.Width)
}

func TestFieldRows_Entries(t *testing.T) {
	rows := NewFieldRows(nil)
	rows.Focus()

	typeText(t, func(m tea.Msg) { rows.Update(m) }, "estado")
	rows.Next()
	typeText(t, func(m tea.Msg) { rows.Update(m) }, "restaurado")

	assert.Equal(t, []domain.FieldEntry{{Key: "estado", Value: "restaurado"}}, rows.Entries())
}

func TestFieldRows_AddRowAndNavigate(t *testing.T) {
	rows := NewFieldRows(nil)
	rows.AddRow()
	require.Equal(t, 2, rows.Len())

	rows.Focus()
	rows.Next()
	rows.Next()
	typeText(t, func(m tea.Msg) { rows.Update(m) }, "k2")

	entries := rows.Entries()
	assert.Equal(t, "", entries[0].Key)
	assert.Equal(t, "k2", entries[1].Key)

	rows.Prev()
	rows.Prev()
	rows.Prev()
	assert.Equal(t, 3, rows.focus, "focus wraps to the last input")
}

func TestFieldRows_FixedKey(t *testing.T) {
	rows := NewFixedKeyRow(nil, domain.ZoneDataKey)
	rows.AddRow()
	assert.Equal(t, 1, rows.Len())

	rows.Focus()
	typeText(t, func(m tea.Msg) { rows.Update(m) }, "Sala 3")

	assert.Equal(t, []domain.FieldEntry{{Key: domain.ZoneDataKey, Value: "Sala 3"}}, rows.Entries())
	assert.Contains(t, rows.View(), domain.ZoneDataKey)
}

func TestFieldRows_BlurIgnoresKeys(t *testing.T) {
	rows := NewFieldRows(nil)
	rows.Focus()
	assert.True(t, rows.Focused())

	rows.Blur()
	assert.False(t, rows.Focused())

	// Keys are ignored when nothing has focus.
	typeText(t, func(m tea.Msg) { rows.Update(m) }, "x")
	assert.Equal(t, "", rows.Entries()[0].Key)
}
