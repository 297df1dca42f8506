package cli

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and change curio settings stored in ~/.curio/config.toml.

The backend URL can also be set with CURIO_API_BASE or --api-url.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Change a setting",
	Long: `Change one setting and save it.

Keys:
  api.base_url, api.timeout_seconds, api.rate_limit, api.burst,
  collection.default, bulk.consistency_check, history.enabled`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[API]")
	cmd.Printf("  Base URL: %s\n", settings.API.BaseURL)
	cmd.Printf("  Timeout: %s\n", settings.API.Timeout)
	if settings.API.RateLimit > 0 {
		cmd.Printf("  Rate limit: %.2g req/s (burst %d)\n", settings.API.RateLimit, settings.API.Burst)
	} else {
		cmd.Println("  Rate limit: disabled")
	}
	cmd.Println()

	cmd.Println("[Collection]")
	cmd.Printf("  Default: %s\n", settings.Collection.Default)
	cmd.Println()

	cmd.Println("[Bulk]")
	cmd.Printf("  Consistency check: %s\n", yesNo(settings.Bulk.ConsistencyCheck))
	cmd.Printf("  History: %s\n", yesNo(settings.Bulk.HistoryEnabled))
	cmd.Println()

	if err := settingsService.Validate(); err != nil {
		cmd.Printf("Warning: %v\n", err)
		cmd.Println("Run 'curio settings set api.base_url <url>' to fix it.")
	} else {
		cmd.Println("Configuration is valid.")
	}
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	key, value := args[0], args[1]
	if !slices.Contains(settingsService.Keys(), key) {
		return fmt.Errorf("unknown setting %q (valid keys: %s)", key, strings.Join(settingsService.Keys(), ", "))
	}
	if err := settingsService.Set(key, value); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}

	cmd.Printf("%s = %s\n", key, value)
	return nil
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
