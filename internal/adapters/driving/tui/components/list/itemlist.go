// Package list provides list display components for the TUI.
package list

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/curio-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/curio-cli/internal/core/domain"
)

// ItemList displays records in a navigable list.
// When checkable, each row carries a checkbox and the list tracks a selection.
type ItemList struct {
	items     []domain.Record
	checked   map[string]bool
	cursor    int
	checkable bool
	styles    *styles.Styles
	width     int
	height    int
}

// NewItemList creates a new item list component.
func NewItemList(s *styles.Styles, checkable bool) *ItemList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &ItemList{
		checked:   make(map[string]bool),
		checkable: checkable,
		styles:    s,
		width:     80,
		height:    20,
	}
}

// Init initialises the list.
func (l *ItemList) Init() tea.Cmd {
	return nil
}

// Update handles navigation and selection keys.
func (l *ItemList) Update(msg tea.Msg) (*ItemList, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			l.MoveUp()
		case "down", "j":
			l.MoveDown()
		case " ":
			l.Toggle()
		}
	}
	return l, nil
}

// View renders the visible window of the list.
func (l *ItemList) View() string {
	if len(l.items) == 0 {
		return l.styles.Muted.Render("Sin items")
	}

	visible := l.height - 2
	if visible < 1 {
		visible = 1
	}
	start := 0
	if l.cursor >= visible {
		start = l.cursor - visible + 1
	}
	end := start + visible
	if end > len(l.items) {
		end = len(l.items)
	}

	lines := make([]string, 0, end-start+1)
	for i := start; i < end; i++ {
		lines = append(lines, l.renderItem(i, &l.items[i]))
	}
	if len(l.items) > visible {
		lines = append(lines, l.styles.Muted.Render(fmt.Sprintf("  [%d-%d de %d]", start+1, end, len(l.items))))
	}
	return strings.Join(lines, "\n")
}

func (l *ItemList) renderItem(index int, item *domain.Record) string {
	indicator := "  "
	if index == l.cursor {
		indicator = "> "
	}

	box := ""
	if l.checkable {
		box = "[ ] "
		if l.checked[item.ID] {
			box = l.styles.Checked.Render("[x]") + " "
		}
	}

	maxTitle := l.width - 40
	if maxTitle < 10 {
		maxTitle = 10
	}
	title := truncate(item.Title(), maxTitle)
	detail := truncate(item.Subtitle(), 30)

	if index == l.cursor {
		return indicator + box + l.styles.Selected.Render(fmt.Sprintf("%-*s", maxTitle, title)) +
			"  " + l.styles.Muted.Render(detail)
	}
	return indicator + box + l.styles.Normal.Render(fmt.Sprintf("%-*s", maxTitle, title)) +
		"  " + l.styles.Muted.Render(detail)
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}

// SetItems replaces the items. Checks survive for items that are still present.
func (l *ItemList) SetItems(items []domain.Record) {
	l.items = items
	present := make(map[string]bool, len(items))
	for i := range items {
		present[items[i].ID] = true
	}
	for id := range l.checked {
		if !present[id] {
			delete(l.checked, id)
		}
	}
	if l.cursor >= len(items) {
		l.cursor = len(items) - 1
	}
	if l.cursor < 0 {
		l.cursor = 0
	}
}

// Items returns the current items.
func (l *ItemList) Items() []domain.Record {
	return l.items
}

// Current returns the item under the cursor, or nil if the list is empty.
func (l *ItemList) Current() *domain.Record {
	if l.cursor < 0 || l.cursor >= len(l.items) {
		return nil
	}
	return &l.items[l.cursor]
}

// Cursor returns the cursor index.
func (l *ItemList) Cursor() int {
	return l.cursor
}

// MoveUp moves the cursor up.
func (l *ItemList) MoveUp() {
	if l.cursor > 0 {
		l.cursor--
	}
}

// MoveDown moves the cursor down.
func (l *ItemList) MoveDown() {
	if l.cursor < len(l.items)-1 {
		l.cursor++
	}
}

// Toggle flips the check on the item under the cursor.
func (l *ItemList) Toggle() {
	if !l.checkable {
		return
	}
	item := l.Current()
	if item == nil {
		return
	}
	if l.checked[item.ID] {
		delete(l.checked, item.ID)
	} else {
		l.checked[item.ID] = true
	}
}

// SelectAll checks every item.
func (l *ItemList) SelectAll() {
	if !l.checkable {
		return
	}
	for i := range l.items {
		l.checked[l.items[i].ID] = true
	}
}

// SelectNone clears the selection.
func (l *ItemList) SelectNone() {
	l.checked = make(map[string]bool)
}

// Selection returns the checked IDs in list order.
func (l *ItemList) Selection() []string {
	ids := make([]string, 0, len(l.checked))
	for i := range l.items {
		if l.checked[l.items[i].ID] {
			ids = append(ids, l.items[i].ID)
		}
	}
	return ids
}

// SelectedCount returns the number of checked items.
func (l *ItemList) SelectedCount() int {
	return len(l.Selection())
}

// SetDimensions sets the component dimensions.
func (l *ItemList) SetDimensions(width, height int) {
	l.width = width
	l.height = height
}

// Count returns the number of items.
func (l *ItemList) Count() int {
	return len(l.items)
}
