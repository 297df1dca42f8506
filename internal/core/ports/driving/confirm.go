package driving

import "context"

// Prompt is a yes/no question put to the user before an irreversible or
// wide-reaching change.
type Prompt struct {
	// Message is the question shown to the user.
	Message string

	// Destructive marks prompts for changes that cannot be undone.
	Destructive bool
}

// Confirmer asks the user to approve a change.
// Implementations are provided by the driving adapters (terminal prompt,
// TUI overlay, MCP confirm flag).
type Confirmer interface {
	// Confirm returns true if the user approved.
	Confirm(ctx context.Context, prompt Prompt) (bool, error)
}

// ConfirmFunc adapts a function to the Confirmer interface.
type ConfirmFunc func(ctx context.Context, prompt Prompt) (bool, error)

// Confirm calls f.
func (f ConfirmFunc) Confirm(ctx context.Context, prompt Prompt) (bool, error) {
	return f(ctx, prompt)
}

// AlwaysConfirm approves every prompt. Used for --yes and pre-approved calls.
var AlwaysConfirm Confirmer = ConfirmFunc(func(context.Context, Prompt) (bool, error) {
	return true, nil
})
