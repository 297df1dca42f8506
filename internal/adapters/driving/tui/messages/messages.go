// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/curio-cli/internal/core/domain"
	"github.com/custodia-labs/curio-cli/internal/core/ports/driving"
)

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewMenu is the main navigation menu.
	ViewMenu ViewType = iota
	// ViewCollections lists the backend's collections.
	ViewCollections
	// ViewBulk shows a collection's items with selection and bulk actions.
	ViewBulk
	// ViewItem shows and edits a single item.
	ViewItem
	// ViewSearch is the search input and results view.
	ViewSearch
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewMenu:
		return "menu"
	case ViewCollections:
		return "collections"
	case ViewBulk:
		return "bulk"
	case ViewItem:
		return "item"
	case ViewSearch:
		return "search"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}

// CollectionsLoaded carries the collection names.
type CollectionsLoaded struct {
	Names []string
	Err   error
}

// CollectionSelected opens a collection in the bulk view.
type CollectionSelected struct {
	Name string
}

// ItemsLoaded carries the items of a collection.
type ItemsLoaded struct {
	Collection string
	Items      []domain.Record
	Err        error
}

// ItemSelected opens an item in the item view.
type ItemSelected struct {
	Collection string
	ID         string
}

// ItemLoaded carries a freshly fetched item.
type ItemLoaded struct {
	Collection string
	Record     *domain.Record
	Err        error
}

// FieldChanged reports the outcome of a single-field edit.
type FieldChanged struct {
	Collection string
	ID         string
	Field      string
	Removed    bool
	Err        error
}

// BulkCompleted carries the outcome of a bulk run.
// Err is domain.ErrAborted when the user declined the confirmation.
type BulkCompleted struct {
	Collection string
	Outcome    *driving.BulkOutcome
	Err        error
}

// SearchCompleted carries search results back to the model.
type SearchCompleted struct {
	Query   string
	Results []domain.Record
	Err     error
}

// ConfigReloaded is sent when the config file changed on disk.
type ConfigReloaded struct {
	BaseURL string
}
