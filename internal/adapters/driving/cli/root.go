// Package cli implements the curio command line interface with cobra.
package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/curio-cli/internal/core/domain"
	"github.com/custodia-labs/curio-cli/internal/core/ports/driving"
	"github.com/custodia-labs/curio-cli/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// Global flags.
var (
	verboseFlag bool
	apiURLFlag  string
	yesFlag     bool
)

// Services wired in by main.
var (
	collectionService driving.CollectionService
	metadataService   driving.MetadataService
	bulkDispatcher    driving.BulkDispatcher
	settingsService   driving.SettingsService

	// apiURLOverride receives the --api-url value before any command runs.
	apiURLOverride func(string) error
)

// Services groups the driving ports the commands call.
type Services struct {
	Collection driving.CollectionService
	Metadata   driving.MetadataService
	Bulk       driving.BulkDispatcher
	Settings   driving.SettingsService
}

// SetServices wires the services used by all commands.
func SetServices(s Services) {
	collectionService = s.Collection
	metadataService = s.Metadata
	bulkDispatcher = s.Bulk
	settingsService = s.Settings
}

// SetAPIURLOverride registers the hook applied when --api-url is given.
func SetAPIURLOverride(fn func(string) error) {
	apiURLOverride = fn
}

// SetVersion sets the version reported by `curio version`.
func SetVersion(v string) {
	version = v
}

var rootCmd = &cobra.Command{
	Use:   "curio",
	Short: "Curate museum collection metadata",
	Long: `Curio edits the metadata of museum collection records held by a
curio backend: browse collections, fix single fields, and apply bulk
operations to many records at once.`,
	SilenceUsage:      true,
	PersistentPreRunE: persistentPreRun,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&apiURLFlag, "api-url", "", "backend base URL (overrides config and CURIO_API_BASE)")
	rootCmd.PersistentFlags().BoolVarP(&yesFlag, "yes", "y", false, "answer yes to every confirmation")
}

func persistentPreRun(_ *cobra.Command, _ []string) error {
	logger.SetVerbose(verboseFlag)
	if apiURLFlag != "" && apiURLOverride != nil {
		if err := apiURLOverride(apiURLFlag); err != nil {
			return fmt.Errorf("invalid --api-url: %w", err)
		}
		logger.Debug("Using API URL from flag: %s", apiURLFlag)
	}
	return nil
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// handleAborted turns a declined confirmation into a message instead of a failure.
func handleAborted(cmd *cobra.Command, err error) error {
	if errors.Is(err, domain.ErrAborted) {
		cmd.Println("Operación cancelada.")
		return nil
	}
	return err
}
