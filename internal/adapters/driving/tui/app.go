package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/curio-cli/internal/adapters/driving/tui/components/confirm"
	"github.com/custodia-labs/curio-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/curio-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/curio-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/curio-cli/internal/adapters/driving/tui/views/bulk"
	"github.com/custodia-labs/curio-cli/internal/adapters/driving/tui/views/collections"
	"github.com/custodia-labs/curio-cli/internal/adapters/driving/tui/views/item"
	"github.com/custodia-labs/curio-cli/internal/adapters/driving/tui/views/menu"
	"github.com/custodia-labs/curio-cli/internal/adapters/driving/tui/views/search"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	// styles holds the TUI styles.
	styles *styles.Styles

	keys *keymap.KeyMap
	help help.Model

	menuView        *menu.View
	collectionsView *collections.View
	bulkView        *bulk.View
	itemView        *item.View
	searchView      *search.View

	// collection is the collection opened last.
	collection string

	// currentView tracks which view is active.
	currentView messages.ViewType

	// err holds the last error that occurred.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	return &App{
		ports:           ports,
		ctx:             context.Background(),
		styles:          s,
		keys:            keymap.DefaultKeyMap(),
		help:            help.New(),
		menuView:        menu.NewView(s),
		collectionsView: collections.NewView(s, ports.Collections),
		bulkView:        bulk.NewView(s, ports.Collections, ports.Bulk),
		itemView:        item.NewView(s, ports.Metadata),
		searchView:      search.NewView(s, nil, ports.Collections),
		currentView:     messages.ViewMenu,
	}, nil
}

// WithContext sets the context for the app and its views.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.collectionsView.WithContext(ctx)
	a.bulkView.WithContext(ctx)
	a.itemView.WithContext(ctx)
	a.searchView.WithContext(ctx)
	return a
}

// SetAPIURL sets the backend address shown on the menu.
func (a *App) SetAPIURL(url string) {
	a.menuView.SetAPIURL(url)
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		tea.SetWindowTitle("curio"),
	)
}

// Update implements tea.Model.
//
//nolint:gocyclo // central message handler
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		return a, a.forward(msg)

	case messages.ViewChanged:
		a.currentView = msg.View
		switch msg.View {
		case messages.ViewCollections:
			return a, a.collectionsView.Init()
		case messages.ViewSearch:
			a.searchView.SetCollection(a.collection)
			return a, a.searchView.Init()
		case messages.ViewBulk:
			return a, a.bulkView.Reload()
		case messages.ViewMenu, messages.ViewItem, messages.ViewHelp:
		}
		return a, nil

	case messages.CollectionSelected:
		a.collection = msg.Name
		a.currentView = messages.ViewBulk
		return a, a.bulkView.SetCollection(msg.Name)

	case messages.ItemSelected:
		a.itemView.SetBack(a.currentView)
		a.currentView = messages.ViewItem
		return a, a.itemView.SetItem(msg.Collection, msg.ID)

	case messages.CollectionsLoaded:
		a.collectionsView, cmd = a.collectionsView.Update(msg)
		return a, cmd

	case messages.ItemsLoaded, messages.BulkCompleted:
		a.bulkView, cmd = a.bulkView.Update(msg)
		return a, cmd

	case messages.ItemLoaded, messages.FieldChanged:
		a.itemView, cmd = a.itemView.Update(msg)
		return a, cmd

	case messages.SearchCompleted:
		a.searchView, cmd = a.searchView.Update(msg)
		return a, cmd

	case confirm.Requested:
		return a, a.forward(msg)

	case messages.ConfigReloaded:
		a.menuView.SetAPIURL(msg.BaseURL)
		return a, nil

	case messages.ErrorOccurred:
		a.err = msg.Err
		return a, a.forward(msg)

	case messages.Quit:
		return a, tea.Quit
	}

	return a, a.forward(msg)
}

// forward sends a message to the active view.
func (a *App) forward(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch a.currentView {
	case messages.ViewMenu:
		a.menuView, cmd = a.menuView.Update(msg)
	case messages.ViewCollections:
		a.collectionsView, cmd = a.collectionsView.Update(msg)
	case messages.ViewBulk:
		a.bulkView, cmd = a.bulkView.Update(msg)
	case messages.ViewItem:
		a.itemView, cmd = a.itemView.Update(msg)
	case messages.ViewSearch:
		a.searchView, cmd = a.searchView.Update(msg)
	case messages.ViewHelp:
		if km, ok := msg.(tea.KeyMsg); ok && km.Type == tea.KeyEsc {
			a.currentView = messages.ViewMenu
		}
	}
	return cmd
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Iniciando..."
	}

	switch a.currentView {
	case messages.ViewCollections:
		return a.collectionsView.View()
	case messages.ViewBulk:
		return a.bulkView.View()
	case messages.ViewItem:
		return a.itemView.View()
	case messages.ViewSearch:
		return a.searchView.View()
	case messages.ViewHelp:
		return a.viewHelp()
	default:
		return a.menuView.View()
	}
}

func (a *App) viewHelp() string {
	var b strings.Builder
	b.WriteString(a.styles.Title.Render("Ayuda"))
	b.WriteString("\n\n")
	b.WriteString(a.help.FullHelpView(a.keys.FullHelp()))
	b.WriteString("\n\n")
	b.WriteString(a.styles.Muted.Render("En un item: enter edita el valor, + añade un campo, d elimina un campo adicional."))
	b.WriteString("\n\n")
	b.WriteString(a.styles.Help.Render("[esc] volver al menú"))
	return b.String()
}

// Program wraps the app in a Bubbletea program.
// Callers may Send messages to it from other goroutines.
func (a *App) Program() *tea.Program {
	return tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
}

// Run starts the TUI application.
func (a *App) Run() error {
	_, err := a.Program().Run()
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Collection returns the collection opened last.
func (a *App) Collection() string {
	return a.collection
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions on every view.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.menuView.SetDimensions(width, height)
	a.collectionsView.SetDimensions(width, height)
	a.bulkView.SetDimensions(width, height)
	a.itemView.SetDimensions(width, height)
	a.searchView.SetDimensions(width, height)
}
