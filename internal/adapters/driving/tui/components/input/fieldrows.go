package input

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/curio-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/curio-cli/internal/core/domain"
)

// fieldRow is one key/value pair of inputs.
type fieldRow struct {
	key   textinput.Model
	value textinput.Model
}

// FieldRows edits an ordered list of key/value rows.
// With a fixed key only the value column is editable.
type FieldRows struct {
	styles   *styles.Styles
	rows     []fieldRow
	fixedKey string
	focus    int // index into the flattened list of editable inputs, -1 when blurred
}

// NewFieldRows creates an editor with one empty row.
func NewFieldRows(s *styles.Styles) *FieldRows {
	if s == nil {
		s = styles.DefaultStyles()
	}
	f := &FieldRows{styles: s, focus: -1}
	f.AddRow()
	return f
}

// NewFixedKeyRow creates an editor with a single row whose key cannot change.
func NewFixedKeyRow(s *styles.Styles, key string) *FieldRows {
	f := NewFieldRows(s)
	f.fixedKey = key
	f.rows[0].key.SetValue(key)
	return f
}

func newInput(placeholder string) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 256
	ti.Width = 24
	return ti
}

// AddRow appends an empty row. Fixed-key editors keep their single row.
func (f *FieldRows) AddRow() {
	if f.fixedKey != "" && len(f.rows) > 0 {
		return
	}
	f.rows = append(f.rows, fieldRow{
		key:   newInput("campo"),
		value: newInput("valor"),
	})
}

// Len returns the number of rows.
func (f *FieldRows) Len() int {
	return len(f.rows)
}

// Entries returns the rows as entered, including incomplete ones.
func (f *FieldRows) Entries() []domain.FieldEntry {
	entries := make([]domain.FieldEntry, 0, len(f.rows))
	for _, r := range f.rows {
		entries = append(entries, domain.FieldEntry{
			Key:   strings.TrimSpace(r.key.Value()),
			Value: strings.TrimSpace(r.value.Value()),
		})
	}
	return entries
}

// inputs returns pointers to the editable inputs in focus order.
func (f *FieldRows) inputs() []*textinput.Model {
	out := make([]*textinput.Model, 0, len(f.rows)*2)
	for i := range f.rows {
		if f.fixedKey == "" {
			out = append(out, &f.rows[i].key)
		}
		out = append(out, &f.rows[i].value)
	}
	return out
}

// Focus focuses the first editable input.
func (f *FieldRows) Focus() tea.Cmd {
	return f.focusAt(0)
}

// Blur removes focus from every input.
func (f *FieldRows) Blur() {
	for _, in := range f.inputs() {
		in.Blur()
	}
	f.focus = -1
}

// Focused reports whether any input has focus.
func (f *FieldRows) Focused() bool {
	return f.focus >= 0
}

// Next moves focus to the next input, wrapping around.
func (f *FieldRows) Next() tea.Cmd {
	n := len(f.inputs())
	if n == 0 {
		return nil
	}
	return f.focusAt((f.focus + 1) % n)
}

// Prev moves focus to the previous input, wrapping around.
func (f *FieldRows) Prev() tea.Cmd {
	n := len(f.inputs())
	if n == 0 {
		return nil
	}
	return f.focusAt((f.focus - 1 + n) % n)
}

func (f *FieldRows) focusAt(i int) tea.Cmd {
	inputs := f.inputs()
	if i < 0 || i >= len(inputs) {
		return nil
	}
	for _, in := range inputs {
		in.Blur()
	}
	f.focus = i
	return inputs[i].Focus()
}

// Update forwards messages to the focused input.
func (f *FieldRows) Update(msg tea.Msg) (*FieldRows, tea.Cmd) {
	inputs := f.inputs()
	if f.focus < 0 || f.focus >= len(inputs) {
		return f, nil
	}
	var cmd tea.Cmd
	*inputs[f.focus], cmd = inputs[f.focus].Update(msg)
	return f, cmd
}

// View renders the rows.
func (f *FieldRows) View() string {
	lines := make([]string, 0, len(f.rows))
	for i := range f.rows {
		r := &f.rows[i]
		var key string
		if f.fixedKey != "" {
			key = f.styles.Subtitle.Render(f.fixedKey)
		} else {
			key = f.render(&r.key)
		}
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Center, key, " = ", f.render(&r.value)))
	}
	return strings.Join(lines, "\n")
}

func (f *FieldRows) render(in *textinput.Model) string {
	if in.Focused() {
		return f.styles.FocusedInput.Render(in.View())
	}
	return f.styles.InputField.Render(in.View())
}
