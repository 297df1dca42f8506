// Package search provides the semantic search view for the TUI.
package search

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/curio-cli/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/curio-cli/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/curio-cli/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/curio-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/curio-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/curio-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/curio-cli/internal/core/domain"
	"github.com/custodia-labs/curio-cli/internal/core/ports/driving"
)

// View represents the search view with input, results list, and status bar.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	input     *input.QueryInput
	list      *list.ItemList
	statusbar *status.Bar

	service    driving.CollectionService
	ctx        context.Context
	collection string
	query      string

	width      int
	height     int
	ready      bool
	err        error
	focusInput bool // true = typing, false = navigating results
}

// NewView creates a new search view.
func NewView(s *styles.Styles, km *keymap.KeyMap, service driving.CollectionService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &View{
		styles:     s,
		keymap:     km,
		input:      input.NewQueryInput(s, "Buscar", "descripción en lenguaje natural..."),
		list:       list.NewItemList(s, false),
		statusbar:  status.NewBar(s, km),
		service:    service,
		ctx:        context.Background(),
		collection: domain.DefaultCollection,
		width:      80,
		height:     24,
		focusInput: true,
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// SetCollection sets the collection searched. Empty means the default.
func (v *View) SetCollection(name string) {
	if name == "" {
		name = domain.DefaultCollection
	}
	v.collection = name
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return v.input.Init()
}

// Update handles messages for the search view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		v.ready = true
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.SearchCompleted:
		v.handleSearchCompleted(msg)
		return v, nil

	case messages.ErrorOccurred:
		v.err = msg.Err
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(msg.Err.Error())
		return v, nil
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	if msg.Type == tea.KeyEsc {
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	}

	if v.focusInput {
		if msg.Type == tea.KeyEnter {
			query := strings.TrimSpace(v.input.Value())
			if query == "" {
				return v, nil
			}
			v.statusbar.SetState(status.StateLoading)
			v.focusInput = false
			v.input.Blur()
			return v, v.performSearch(query)
		}
		var cmd tea.Cmd
		v.input, cmd = v.input.Update(msg)
		return v, cmd
	}

	switch {
	case keymap.Matches(msg.String(), v.keymap.Select):
		if current := v.list.Current(); current != nil {
			sel := messages.ItemSelected{Collection: v.collection, ID: current.ID}
			return v, func() tea.Msg { return sel }
		}
	case msg.String() == "n":
		v.focusInput = true
		v.input.SetValue("")
		return v, v.input.Focus()
	default:
		v.list.Update(msg)
	}
	return v, nil
}

func (v *View) performSearch(query string) tea.Cmd {
	opts := domain.SearchOptions{Collection: v.collection, Limit: domain.DefaultSearchLimit}
	return func() tea.Msg {
		if v.service == nil {
			return messages.SearchCompleted{Query: query, Err: ErrNoCollectionService}
		}
		results, err := v.service.Search(v.ctx, query, opts)
		return messages.SearchCompleted{Query: query, Results: results, Err: err}
	}
}

func (v *View) handleSearchCompleted(msg messages.SearchCompleted) {
	v.query = msg.Query
	if msg.Err != nil {
		v.err = msg.Err
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(msg.Err.Error())
		return
	}
	v.err = nil
	v.list.SetItems(msg.Results)
	v.statusbar.SetState(status.StateReady)
	v.statusbar.SetMessage(fmt.Sprintf("%d resultados", len(msg.Results)))
}

// View renders the search view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Buscar en " + v.collection))
	b.WriteString("\n\n")
	b.WriteString(v.input.View())
	b.WriteString("\n\n")

	if v.err != nil {
		b.WriteString(v.styles.Error.Render("Error: " + v.err.Error()))
	} else if v.query != "" {
		b.WriteString(v.list.View())
	}

	b.WriteString("\n\n")
	b.WriteString(v.styles.Help.Render("[enter] buscar/abrir  [n] nueva búsqueda  [esc] menú"))
	b.WriteString("\n")
	b.WriteString(v.statusbar.View())
	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.input.SetWidth(width - 12)
	v.statusbar.SetWidth(width)
	listHeight := height - 10
	if listHeight < 3 {
		listHeight = 3
	}
	v.list.SetDimensions(width, listHeight)
}

// Query returns the last submitted query.
func (v *View) Query() string {
	return v.query
}

// Results returns the current results.
func (v *View) Results() []domain.Record {
	return v.list.Items()
}

// InputFocused reports whether the query input has focus.
func (v *View) InputFocused() bool {
	return v.focusInput
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
