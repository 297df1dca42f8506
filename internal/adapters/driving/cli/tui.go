package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/curio-cli/internal/adapters/driving/tui"
	"github.com/custodia-labs/curio-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/curio-cli/internal/logger"
)

// ConfigWatchFunc watches the config file until ctx is done, calling
// onReload with the backend URL after every successful reload.
type ConfigWatchFunc func(ctx context.Context, onReload func(baseURL string)) error

// configWatch is set by main when a file-backed config is in use.
var configWatch ConfigWatchFunc

// SetConfigWatcher registers the config watcher used by long-running commands.
func SetConfigWatcher(fn ConfigWatchFunc) {
	configWatch = fn
}

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive terminal user interface for Curio.

Browse collections, mark items and run bulk operations, or open a single
item to edit its fields.

Controls:
  ↑/k, ↓/j - Navigate
  Space    - Mark item
  o        - Change operation
  x        - Execute on the marked items
  Enter    - Open
  Esc      - Back / Cancel
  ctrl+c   - Quit`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	ports := tui.NewPorts(collectionService, metadataService, bulkDispatcher)
	app, err := tui.NewApp(ports)
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	app.WithContext(ctx)

	if settingsService != nil {
		if s, err := settingsService.Get(); err == nil {
			app.SetAPIURL(s.API.BaseURL)
		}
	}

	p := app.Program()

	if configWatch != nil {
		go func() {
			err := configWatch(ctx, func(baseURL string) {
				p.Send(messages.ConfigReloaded{BaseURL: baseURL})
			})
			if err != nil && !errors.Is(err, context.Canceled) {
				logger.Warn("config watcher stopped: %v", err)
			}
		}()
	}

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
