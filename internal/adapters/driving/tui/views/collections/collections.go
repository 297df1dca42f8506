// Package collections provides the collection list view for the TUI.
package collections

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/curio-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/curio-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/curio-cli/internal/core/ports/driving"
)

var errNoService = errors.New("collection service not available")

// View lists the backend's collections.
type View struct {
	styles  *styles.Styles
	service driving.CollectionService
	ctx     context.Context

	names    []string
	selected int
	width    int
	height   int
	ready    bool
	err      error
	loading  bool
}

// NewView creates a new collections view.
func NewView(s *styles.Styles, service driving.CollectionService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles:  s,
		service: service,
		ctx:     context.Background(),
	}
}

// WithContext sets the context used for backend calls.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init loads the collections.
func (v *View) Init() tea.Cmd {
	v.loading = true
	return v.load()
}

func (v *View) load() tea.Cmd {
	return func() tea.Msg {
		if v.service == nil {
			return messages.CollectionsLoaded{Err: errNoService}
		}
		names, err := v.service.List(v.ctx)
		return messages.CollectionsLoaded{Names: names, Err: err}
	}
}

// Update handles messages for the collections view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.CollectionsLoaded:
		v.loading = false
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.names = msg.Names
		v.err = nil
		if v.selected >= len(v.names) {
			v.selected = 0
		}
		return v, nil
	}

	return v, nil
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if v.selected > 0 {
			v.selected--
		}
	case "down", "j":
		if v.selected < len(v.names)-1 {
			v.selected++
		}
	case "enter":
		if len(v.names) > 0 {
			name := v.names[v.selected]
			return v, func() tea.Msg {
				return messages.CollectionSelected{Name: name}
			}
		}
	case "r":
		v.loading = true
		return v, v.load()
	case "esc":
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	}
	return v, nil
}

// View renders the collections view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Colecciones"))
	b.WriteString("\n\n")

	switch {
	case v.loading:
		b.WriteString(v.styles.Muted.Render("Cargando colecciones..."))
	case v.err != nil:
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
	case len(v.names) == 0:
		b.WriteString(v.styles.Muted.Render("No hay colecciones."))
	default:
		for i, name := range v.names {
			if i == v.selected {
				b.WriteString("> " + v.styles.Selected.Render(name))
			} else {
				b.WriteString("  " + v.styles.Normal.Render(name))
			}
			b.WriteString("\n")
		}
	}

	b.WriteString("\n\n")
	b.WriteString(v.styles.Help.Render("[enter] abrir  [r] recargar  [esc] menú  [q] salir"))
	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Names returns the loaded collection names.
func (v *View) Names() []string {
	return v.names
}

// SelectedIndex returns the highlighted index.
func (v *View) SelectedIndex() int {
	return v.selected
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
