// Package keymap defines keybindings for the TUI.
package keymap

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines all keybindings for the TUI.
type KeyMap struct {
	// Quit exits the application.
	Quit key.Binding

	// Help shows the help view.
	Help key.Binding

	// Back returns to the previous view.
	Back key.Binding

	// Up navigates up in a list.
	Up key.Binding

	// Down navigates down in a list.
	Down key.Binding

	// Select opens the highlighted entry.
	Select key.Binding

	// Toggle checks or unchecks the highlighted item.
	Toggle key.Binding

	// SelectAll checks every item.
	SelectAll key.Binding

	// SelectNone clears the selection.
	SelectNone key.Binding

	// NextOperation cycles the bulk operation kind.
	NextOperation key.Binding

	// EditFields moves focus to the field rows.
	EditFields key.Binding

	// AddRow appends an empty field row.
	AddRow key.Binding

	// Execute starts the bulk operation.
	Execute key.Binding

	// Reload refetches the current data.
	Reload key.Binding

	// Remove deletes the highlighted field.
	Remove key.Binding

	// Confirm approves a confirmation prompt.
	Confirm key.Binding

	// Deny declines a confirmation prompt.
	Deny key.Binding

	// Errors expands or collapses the per-item error list.
	Errors key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "salir"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "ayuda"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "volver"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "subir"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "bajar"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "abrir"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("espacio", "marcar"),
		),
		SelectAll: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "todos"),
		),
		SelectNone: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "ninguno"),
		),
		NextOperation: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "operación"),
		),
		EditFields: key.NewBinding(
			key.WithKeys("f", "tab"),
			key.WithHelp("f", "campos"),
		),
		AddRow: key.NewBinding(
			key.WithKeys("+", "ctrl+n"),
			key.WithHelp("+", "nuevo campo"),
		),
		Execute: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "ejecutar"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "recargar"),
		),
		Remove: key.NewBinding(
			key.WithKeys("d", "delete"),
			key.WithHelp("d", "eliminar campo"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("y", "s"),
			key.WithHelp("y/s", "confirmar"),
		),
		Deny: key.NewBinding(
			key.WithKeys("n", "esc"),
			key.WithHelp("n", "cancelar"),
		),
		Errors: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "errores"),
		),
	}
}

// ShortHelp returns a short list of keybindings for the status bar.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Quit, k.Help}
}

// BulkHelp returns keybindings for the bulk selection view.
func (k *KeyMap) BulkHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.SelectAll, k.SelectNone, k.NextOperation, k.EditFields, k.Execute, k.Back}
}

// ConfirmHelp returns keybindings for a confirmation overlay.
func (k *KeyMap) ConfirmHelp() []key.Binding {
	return []key.Binding{k.Confirm, k.Deny}
}

// FullHelp returns the full list of keybindings for the help view.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Select, k.Back},
		{k.Toggle, k.SelectAll, k.SelectNone},
		{k.NextOperation, k.EditFields, k.AddRow, k.Execute},
		{k.Reload, k.Remove, k.Errors},
		{k.Help, k.Quit},
	}
}

// Matches checks if a key string matches a binding.
func Matches(keyStr string, binding key.Binding) bool {
	for _, k := range binding.Keys() {
		if k == keyStr {
			return true
		}
	}
	return false
}
