// Package bulk provides the collection view with multi-select and bulk
// operations.
package bulk

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/curio-cli/internal/adapters/driving/tui/components/confirm"
	"github.com/custodia-labs/curio-cli/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/curio-cli/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/curio-cli/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/curio-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/curio-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/curio-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/curio-cli/internal/core/domain"
	"github.com/custodia-labs/curio-cli/internal/core/ports/driving"
)

type focus int

const (
	focusList focus = iota
	focusFields
)

// View shows a collection's items and runs bulk operations on the selection.
type View struct {
	styles      *styles.Styles
	keymap      *keymap.KeyMap
	collections driving.CollectionService
	dispatcher  driving.BulkDispatcher
	ctx         context.Context

	collection string
	list       *list.ItemList
	rows       *input.FieldRows
	statusBar  *status.Bar
	opIndex    int
	focus      focus

	flow    *confirm.Flow
	prompt  *driving.Prompt
	outcome *driving.BulkOutcome
	notice  string
	err     error

	showErrors bool
	width      int
	height     int
}

// NewView creates a new bulk view.
func NewView(s *styles.Styles, collections driving.CollectionService, dispatcher driving.BulkDispatcher) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	km := keymap.DefaultKeyMap()
	v := &View{
		styles:      s,
		keymap:      km,
		collections: collections,
		dispatcher:  dispatcher,
		ctx:         context.Background(),
		list:        list.NewItemList(s, true),
		statusBar:   status.NewBar(s, km),
		width:       80,
		height:      24,
	}
	v.statusBar.SetHints(km.BulkHelp())
	v.resetRows()
	return v
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

// SetCollection switches to a collection and loads its items.
func (v *View) SetCollection(name string) tea.Cmd {
	v.collection = name
	v.list.SetItems(nil)
	v.outcome = nil
	v.notice = ""
	v.err = nil
	v.focus = focusList
	v.resetRows()
	v.statusBar.SetState(status.StateLoading)
	return v.load()
}

// Reload fetches the current collection's items again.
func (v *View) Reload() tea.Cmd {
	if v.collection == "" {
		return nil
	}
	v.statusBar.SetState(status.StateLoading)
	return v.load()
}

func (v *View) load() tea.Cmd {
	collection := v.collection
	return func() tea.Msg {
		if v.collections == nil {
			return messages.ItemsLoaded{Collection: collection, Err: errors.New("collection service not available")}
		}
		items, err := v.collections.Items(v.ctx, collection)
		return messages.ItemsLoaded{Collection: collection, Items: items, Err: err}
	}
}

// Update handles messages for the bulk view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.ItemsLoaded:
		if msg.Collection != v.collection {
			return v, nil
		}
		if msg.Err != nil {
			v.err = msg.Err
			v.statusBar.SetState(status.StateError)
			v.statusBar.SetMessage(msg.Err.Error())
			return v, nil
		}
		v.err = nil
		v.list.SetItems(msg.Items)
		v.statusBar.SetState(status.StateReady)
		v.statusBar.SetMessage("")
		v.syncSelection()
		return v, nil

	case confirm.Requested:
		v.flow = msg.Flow
		p := msg.Prompt
		v.prompt = &p
		v.statusBar.SetState(status.StateConfirming)
		v.statusBar.SetHints(v.keymap.ConfirmHelp())
		return v, nil

	case messages.BulkCompleted:
		return v.handleCompleted(msg)

	case tea.KeyMsg:
		if v.prompt != nil {
			return v.handleConfirmKey(msg)
		}
		if v.flow != nil {
			return v, nil
		}
		if v.focus == focusFields {
			return v.handleFieldsKey(msg)
		}
		return v.handleListKey(msg)
	}

	return v, nil
}

func (v *View) handleConfirmKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	key := msg.String()
	switch {
	case keymap.Matches(key, v.keymap.Confirm):
		return v.answer(true)
	case keymap.Matches(key, v.keymap.Deny):
		return v.answer(false)
	}
	return v, nil
}

func (v *View) answer(ok bool) (*View, tea.Cmd) {
	flow := v.flow
	v.prompt = nil
	v.statusBar.SetHints(v.keymap.BulkHelp())
	if ok {
		v.statusBar.SetState(status.StateExecuting)
	}
	return v, flow.Answer(ok)
}

func (v *View) handleListKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	key := msg.String()
	switch {
	case keymap.Matches(key, v.keymap.Back):
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewCollections}
		}
	case keymap.Matches(key, v.keymap.SelectAll):
		v.list.SelectAll()
	case keymap.Matches(key, v.keymap.SelectNone):
		v.list.SelectNone()
	case keymap.Matches(key, v.keymap.NextOperation):
		v.opIndex = (v.opIndex + 1) % len(domain.AllOperationKinds())
		v.resetRows()
	case keymap.Matches(key, v.keymap.EditFields):
		if v.rows != nil {
			v.focus = focusFields
			return v, v.rows.Focus()
		}
	case keymap.Matches(key, v.keymap.Execute):
		return v.execute()
	case keymap.Matches(key, v.keymap.Reload):
		v.statusBar.SetState(status.StateLoading)
		return v, v.load()
	case keymap.Matches(key, v.keymap.Errors):
		v.showErrors = !v.showErrors
	case keymap.Matches(key, v.keymap.Select):
		if current := v.list.Current(); current != nil {
			sel := messages.ItemSelected{Collection: v.collection, ID: current.ID}
			return v, func() tea.Msg { return sel }
		}
	default:
		v.list.Update(msg)
	}
	v.syncSelection()
	return v, nil
}

func (v *View) handleFieldsKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "esc":
		v.rows.Blur()
		v.focus = focusList
		return v, nil
	case "tab", "enter":
		return v, v.rows.Next()
	case "shift+tab":
		return v, v.rows.Prev()
	case "ctrl+n":
		v.rows.AddRow()
		return v, nil
	}
	_, cmd := v.rows.Update(msg)
	return v, cmd
}

// execute starts the dispatcher on its own goroutine. Validation failures
// come back before any prompt is shown.
func (v *View) execute() (*View, tea.Cmd) {
	if v.dispatcher == nil {
		v.statusBar.SetState(status.StateError)
		v.statusBar.SetMessage("bulk dispatcher not available")
		return v, nil
	}
	req := driving.BulkRequest{
		Collection: v.collection,
		Selection:  v.list.Selection(),
		Kind:       v.Operation(),
	}
	if v.rows != nil {
		req.Fields = v.rows.Entries()
	}

	v.outcome = nil
	v.notice = ""
	v.err = nil
	v.showErrors = false

	dispatcher := v.dispatcher
	flow, cmd := confirm.Start(v.ctx, func(ctx context.Context, c driving.Confirmer) tea.Msg {
		outcome, err := dispatcher.Execute(ctx, req, c)
		return messages.BulkCompleted{Collection: req.Collection, Outcome: outcome, Err: err}
	})
	v.flow = flow
	v.statusBar.SetState(status.StateExecuting)
	return v, cmd
}

func (v *View) handleCompleted(msg messages.BulkCompleted) (*View, tea.Cmd) {
	v.flow = nil
	v.prompt = nil
	v.statusBar.SetHints(v.keymap.BulkHelp())

	switch {
	case errors.Is(msg.Err, domain.ErrAborted):
		v.notice = "Operación cancelada"
		v.statusBar.SetState(status.StateReady)
		v.statusBar.SetMessage(v.notice)
		return v, nil
	case msg.Err != nil:
		v.err = msg.Err
		v.statusBar.SetState(status.StateError)
		v.statusBar.SetMessage(msg.Err.Error())
		return v, nil
	}

	v.outcome = msg.Outcome
	v.statusBar.SetState(status.StateReady)
	v.statusBar.SetMessage("")
	if msg.Outcome != nil && msg.Outcome.Items != nil {
		v.list.SetItems(msg.Outcome.Items)
	}
	// Selection and form survive a run that refreshed nothing.
	if msg.Outcome != nil && msg.Outcome.Refreshed {
		v.list.SelectNone()
		v.resetRows()
	}
	v.syncSelection()
	return v, nil
}

func (v *View) resetRows() {
	switch v.Operation() {
	case domain.OperationUpdateMetadata:
		v.rows = input.NewFieldRows(v.styles)
	case domain.OperationMoveZone:
		v.rows = input.NewFixedKeyRow(v.styles, domain.ZoneDataKey)
	default:
		v.rows = nil
	}
	v.focus = focusList
}

func (v *View) syncSelection() {
	v.statusBar.SetSelection(v.list.SelectedCount(), v.list.Count())
}

// View renders the bulk view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render(v.collection))
	b.WriteString("\n\n")
	b.WriteString(v.list.View())
	b.WriteString("\n\n")
	b.WriteString(v.renderOperation())

	if banner := v.renderResult(); banner != "" {
		b.WriteString("\n\n")
		b.WriteString(banner)
	}

	if v.prompt != nil {
		b.WriteString("\n\n")
		b.WriteString(confirm.Overlay(v.styles, *v.prompt))
	}

	b.WriteString("\n\n")
	b.WriteString(v.statusBar.View())
	return b.String()
}

func (v *View) renderOperation() string {
	op := v.Operation()
	label := v.styles.Subtitle.Render("Operación: ") + v.styles.Normal.Render(op.Description())
	if op.IsDestructive() {
		label = v.styles.Subtitle.Render("Operación: ") + v.styles.Error.Render(op.Description())
	}
	if v.rows == nil {
		return label
	}
	rows := v.rows.View()
	if v.focus == focusFields {
		rows += "\n" + v.styles.Help.Render("[tab] siguiente  [ctrl+n] nueva fila  [esc] volver")
	}
	return lipgloss.JoinVertical(lipgloss.Left, label, rows)
}

func (v *View) renderResult() string {
	switch {
	case v.err != nil:
		return v.styles.Error.Render("Error: " + v.err.Error())
	case v.notice != "":
		return v.styles.Muted.Render(v.notice)
	case v.outcome == nil || v.outcome.Result == nil:
		return ""
	}

	res := v.outcome.Result
	style := v.styles.Success
	if res.HasErrors() {
		style = v.styles.Warning
	}
	lines := []string{style.Render(fmt.Sprintf("%s: %s", v.outcome.Operation.Operation.Description(), res.Summary()))}

	if v.outcome.Inconsistent {
		lines = append(lines, v.styles.Warning.Render(
			fmt.Sprintf("Aviso: el resultado no cubre los %d items seleccionados", len(v.outcome.Operation.ItemIDs))))
	}
	if v.outcome.RefreshErr != nil {
		lines = append(lines, v.styles.Warning.Render("Aviso: no se pudo recargar la colección: "+v.outcome.RefreshErr.Error()))
	}
	if len(res.Errors) > 0 {
		if v.showErrors {
			for _, e := range res.Errors {
				lines = append(lines, v.styles.Error.Render("  • "+e))
			}
		} else {
			lines = append(lines, v.styles.Muted.Render(fmt.Sprintf("[e] ver %d errores", len(res.Errors))))
		}
	}
	return strings.Join(lines, "\n")
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.statusBar.SetWidth(width)
	listHeight := height - 14
	if listHeight < 3 {
		listHeight = 3
	}
	v.list.SetDimensions(width, listHeight)
}

// Collection returns the collection being shown.
func (v *View) Collection() string {
	return v.collection
}

// Operation returns the selected operation.
func (v *View) Operation() domain.OperationKind {
	return domain.AllOperationKinds()[v.opIndex]
}

// Selection returns the selected item IDs in list order.
func (v *View) Selection() []string {
	return v.list.Selection()
}

// Outcome returns the last completed run, if any.
func (v *View) Outcome() *driving.BulkOutcome {
	return v.outcome
}

// Busy reports whether a run is in flight.
func (v *View) Busy() bool {
	return v.flow != nil
}

// Confirming reports whether the overlay is waiting for an answer.
func (v *View) Confirming() bool {
	return v.prompt != nil
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
