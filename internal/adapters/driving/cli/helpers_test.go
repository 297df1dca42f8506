package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/custodia-labs/curio-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/curio-cli/internal/core/domain"
	"github.com/custodia-labs/curio-cli/internal/core/services"
)

// testEnv holds the stores behind the services wired for a test.
type testEnv struct {
	store   *memory.RecordStore
	history *memory.BulkHistoryStore
	config  *memory.ConfigStore
}

func setupTestServices(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		store:   memory.NewRecordStore(),
		history: memory.NewBulkHistoryStore(),
		config:  memory.NewConfigStore(),
	}
	for _, r := range []domain.Record{
		{ID: "a", Metadata: domain.NewMetadata(map[string]any{"titulo": "Venus", "tipo": "escultura", "zona": "Sala 1"}), Document: "Venus de mármol"},
		{ID: "b", Metadata: domain.NewMetadata(map[string]any{"titulo": "Retrato", "tipo": "pintura", "estado": "bueno"})},
		{ID: "c", Metadata: domain.NewMetadata(map[string]any{"titulo": "Jarrón", "tipo": "ceramica"})},
	} {
		env.store.Put("mac_info", r)
	}

	SetServices(Services{
		Collection: services.NewCollectionService(env.store),
		Metadata:   services.NewMetadataService(env.store),
		Bulk:       services.NewBulkDispatcher(env.store, env.history, nil, services.BulkConfig{ConsistencyCheck: true}),
		Settings:   services.NewSettingsService(env.config),
	})
	t.Cleanup(func() {
		SetServices(Services{})
		SetAPIURLOverride(nil)
	})
	return env
}

// run executes the root command with args and returns everything it printed.
// stdin feeds interactive confirmations.
func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	resetFlags(rootCmd)
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetIn(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	return buf.String(), err
}

// resetFlags restores every flag in the tree to its default, since cobra
// keeps parsed values in package variables between executions.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}
