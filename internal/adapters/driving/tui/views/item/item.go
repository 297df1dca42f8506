// Package item provides the single item view for the TUI.
package item

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/curio-cli/internal/adapters/driving/tui/components/confirm"
	"github.com/custodia-labs/curio-cli/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/curio-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/curio-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/curio-cli/internal/core/domain"
	"github.com/custodia-labs/curio-cli/internal/core/ports/driving"
)

type mode int

const (
	modeBrowse mode = iota
	modeEdit
	modeAdd
)

// View shows one item's fields, core fields first.
type View struct {
	styles  *styles.Styles
	service driving.MetadataService
	ctx     context.Context

	collection string
	id         string
	back       messages.ViewType
	record     *domain.Record
	keys       []string
	cursor     int
	mode       mode
	editor     *input.QueryInput
	newField   *input.FieldRows

	flow   *confirm.Flow
	prompt *driving.Prompt
	notice string
	err    error

	width  int
	height int
}

// NewView creates a new item view.
func NewView(s *styles.Styles, service driving.MetadataService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles:  s,
		service: service,
		ctx:     context.Background(),
		back:    messages.ViewBulk,
		editor:  input.NewQueryInput(s, "Valor", ""),
		width:   80,
		height:  24,
	}
}

// WithContext sets the context used for backend calls.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// SetBack sets the view esc returns to.
func (v *View) SetBack(view messages.ViewType) {
	v.back = view
}

// SetItem switches to an item and loads it.
func (v *View) SetItem(collection, id string) tea.Cmd {
	v.collection = collection
	v.id = id
	v.record = nil
	v.keys = nil
	v.cursor = 0
	v.mode = modeBrowse
	v.notice = ""
	v.err = nil
	return v.load()
}

func (v *View) load() tea.Cmd {
	collection, id := v.collection, v.id
	return func() tea.Msg {
		if v.service == nil {
			return messages.ItemLoaded{Collection: collection, Err: errors.New("metadata service not available")}
		}
		record, err := v.service.Get(v.ctx, collection, id)
		return messages.ItemLoaded{Collection: collection, Record: record, Err: err}
	}
}

// Update handles messages for the item view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.ItemLoaded:
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		if msg.Record == nil || msg.Record.ID != v.id {
			return v, nil
		}
		v.setRecord(msg.Record)
		return v, nil

	case confirm.Requested:
		v.flow = msg.Flow
		p := msg.Prompt
		v.prompt = &p
		return v, nil

	case messages.FieldChanged:
		return v.handleFieldChanged(msg)

	case tea.KeyMsg:
		switch {
		case v.prompt != nil:
			return v.handleConfirmKey(msg)
		case v.flow != nil:
			return v, nil
		case v.mode == modeEdit:
			return v.handleEditKey(msg)
		case v.mode == modeAdd:
			return v.handleAddKey(msg)
		}
		return v.handleBrowseKey(msg)
	}

	return v, nil
}

func (v *View) setRecord(r *domain.Record) {
	v.record = r
	v.keys = append(r.Metadata.CoreKeys(), r.Metadata.AdditionalKeys()...)
	if v.cursor >= len(v.keys) {
		v.cursor = max(len(v.keys)-1, 0)
	}
	v.err = nil
}

func (v *View) handleBrowseKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if v.cursor > 0 {
			v.cursor--
		}
	case "down", "j":
		if v.cursor < len(v.keys)-1 {
			v.cursor++
		}
	case "enter":
		if name := v.CurrentField(); name != "" {
			v.mode = modeEdit
			v.editor.Reset()
			v.editor.SetValue(v.record.Metadata.String(name))
			return v, v.editor.Focus()
		}
	case "+", "ctrl+n":
		if v.record != nil {
			v.mode = modeAdd
			v.newField = input.NewFieldRows(v.styles)
			return v, v.newField.Focus()
		}
	case "d", "delete":
		return v.remove()
	case "r":
		return v, v.load()
	case "esc":
		back := v.back
		return v, func() tea.Msg {
			return messages.ViewChanged{View: back}
		}
	}
	return v, nil
}

func (v *View) handleEditKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "esc":
		v.editor.Blur()
		v.mode = modeBrowse
		return v, nil
	case "enter":
		v.editor.Blur()
		v.mode = modeBrowse
		name, value := v.CurrentField(), v.editor.Value()
		return v, v.change(name, false, func(ctx context.Context) error {
			return v.service.UpdateField(ctx, v.collection, v.id, name, value)
		})
	}
	_, cmd := v.editor.Update(msg)
	return v, cmd
}

func (v *View) handleAddKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "esc":
		v.newField.Blur()
		v.mode = modeBrowse
		return v, nil
	case "tab":
		return v, v.newField.Next()
	case "shift+tab":
		return v, v.newField.Prev()
	case "enter":
		v.newField.Blur()
		v.mode = modeBrowse
		entry := v.newField.Entries()[0]
		return v, v.change(entry.Key, false, func(ctx context.Context) error {
			return v.service.AddField(ctx, v.collection, v.id, entry.Key, entry.Value)
		})
	}
	_, cmd := v.newField.Update(msg)
	return v, cmd
}

func (v *View) change(name string, removed bool, fn func(ctx context.Context) error) tea.Cmd {
	collection, id := v.collection, v.id
	ctx := v.ctx
	return func() tea.Msg {
		return messages.FieldChanged{Collection: collection, ID: id, Field: name, Removed: removed, Err: fn(ctx)}
	}
}

// remove deletes the highlighted field. Core fields are refused here, before
// any prompt.
func (v *View) remove() (*View, tea.Cmd) {
	name := v.CurrentField()
	if name == "" || v.service == nil {
		return v, nil
	}
	if domain.IsCoreField(name) {
		v.err = nil
		v.notice = "No se pueden eliminar campos principales"
		return v, nil
	}

	collection, id, service := v.collection, v.id, v.service
	flow, cmd := confirm.Start(v.ctx, func(ctx context.Context, c driving.Confirmer) tea.Msg {
		err := service.RemoveField(ctx, collection, id, name, c)
		return messages.FieldChanged{Collection: collection, ID: id, Field: name, Removed: true, Err: err}
	})
	v.flow = flow
	return v, cmd
}

func (v *View) handleConfirmKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	var ok bool
	switch msg.String() {
	case "y", "s":
		ok = true
	case "n", "esc":
		ok = false
	default:
		return v, nil
	}
	v.prompt = nil
	return v, v.flow.Answer(ok)
}

func (v *View) handleFieldChanged(msg messages.FieldChanged) (*View, tea.Cmd) {
	v.flow = nil
	v.prompt = nil
	switch {
	case errors.Is(msg.Err, domain.ErrAborted):
		v.err = nil
		v.notice = "Operación cancelada"
		return v, nil
	case msg.Err != nil:
		v.notice = ""
		v.err = msg.Err
		return v, nil
	}

	v.err = nil
	if msg.Removed {
		v.notice = fmt.Sprintf("Campo %q eliminado", msg.Field)
	} else {
		v.notice = fmt.Sprintf("Campo %q guardado", msg.Field)
	}
	return v, v.load()
}

// View renders the item view.
func (v *View) View() string {
	var b strings.Builder

	title := v.id
	if v.record != nil {
		title = v.record.Title()
	}
	b.WriteString(v.styles.Title.Render(title))
	b.WriteString("\n")
	b.WriteString(v.styles.Muted.Render(fmt.Sprintf("%s / %s", v.collection, v.id)))
	b.WriteString("\n\n")

	switch {
	case v.record == nil && v.err != nil:
		b.WriteString(v.styles.Error.Render("Error: " + v.err.Error()))
	case v.record == nil:
		b.WriteString(v.styles.Muted.Render("Cargando..."))
	default:
		b.WriteString(v.renderFields())
	}

	switch v.mode {
	case modeEdit:
		b.WriteString("\n\n")
		b.WriteString(v.styles.Subtitle.Render(v.CurrentField()))
		b.WriteString("\n")
		b.WriteString(v.editor.View())
	case modeAdd:
		b.WriteString("\n\n")
		b.WriteString(v.styles.Subtitle.Render("Nuevo campo"))
		b.WriteString("\n")
		b.WriteString(v.newField.View())
	}

	if v.record != nil && v.err != nil {
		b.WriteString("\n\n")
		b.WriteString(v.styles.Error.Render("Error: " + v.err.Error()))
	}
	if v.notice != "" {
		b.WriteString("\n\n")
		b.WriteString(v.styles.Warning.Render(v.notice))
	}
	if v.prompt != nil {
		b.WriteString("\n\n")
		b.WriteString(confirm.Overlay(v.styles, *v.prompt))
	}

	b.WriteString("\n\n")
	b.WriteString(v.styles.Help.Render("[enter] editar  [+] añadir  [d] eliminar  [r] recargar  [esc] volver"))
	return b.String()
}

func (v *View) renderFields() string {
	if len(v.keys) == 0 {
		return v.styles.Muted.Render("Sin campos")
	}
	coreCount := len(v.record.Metadata.CoreKeys())

	var lines []string
	for i, k := range v.keys {
		if i == 0 && coreCount > 0 {
			lines = append(lines, v.styles.Subtitle.Render("Campos principales"))
		}
		if i == coreCount {
			if i > 0 {
				lines = append(lines, "")
			}
			lines = append(lines, v.styles.Subtitle.Render("Campos adicionales"))
		}
		value, _ := v.record.Metadata.Get(k)
		line := fmt.Sprintf("%-18s %s", k, domain.FormatValue(value))
		if i == v.cursor {
			lines = append(lines, "> "+v.styles.Selected.Render(line))
		} else {
			lines = append(lines, "  "+v.styles.Normal.Render(line))
		}
	}
	return strings.Join(lines, "\n")
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.editor.SetWidth(width - 4)
}

// CurrentField returns the highlighted field name.
func (v *View) CurrentField() string {
	if v.cursor < 0 || v.cursor >= len(v.keys) {
		return ""
	}
	return v.keys[v.cursor]
}

// Record returns the loaded record.
func (v *View) Record() *domain.Record {
	return v.record
}

// Notice returns the last status notice.
func (v *View) Notice() string {
	return v.notice
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
