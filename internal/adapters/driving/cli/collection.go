package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/curio-cli/internal/core/domain"
)

var (
	collectionJSON bool
	exportOutput   string
)

var collectionCmd = &cobra.Command{
	Use:     "collection",
	Aliases: []string{"collections"},
	Short:   "Browse and manage collections",
}

var collectionListCmd = &cobra.Command{
	Use:   "list",
	Short: "List collections",
	Args:  cobra.NoArgs,
	RunE:  runCollectionList,
}

var collectionShowCmd = &cobra.Command{
	Use:   "show [collection]",
	Short: "List the items of a collection",
	Long: `Lists every item of a collection with its title and subtitle.
Without an argument the configured default collection is shown.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCollectionShow,
}

var collectionStatsCmd = &cobra.Command{
	Use:   "stats [collection]",
	Short: "Show collection statistics",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runCollectionStats,
}

var collectionDuplicateCmd = &cobra.Command{
	Use:   "duplicate [source] [target]",
	Short: "Copy a collection under a new name",
	Args:  cobra.ExactArgs(2),
	RunE:  runCollectionDuplicate,
}

var collectionDeleteCmd = &cobra.Command{
	Use:   "delete [collection]",
	Short: "Delete a collection and all its items",
	Long:  `Deletes the collection with every item and embedding in it. This cannot be undone.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runCollectionDelete,
}

var collectionExportCmd = &cobra.Command{
	Use:   "export [collection]",
	Short: "Export a collection as JSON",
	Long: `Writes the backend's JSON export of a collection to stdout,
or to a file with --output.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCollectionExport,
}

func init() {
	collectionShowCmd.Flags().BoolVar(&collectionJSON, "json", false, "output items as JSON")
	collectionExportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "write the export to this file")
	collectionCmd.AddCommand(collectionListCmd)
	collectionCmd.AddCommand(collectionShowCmd)
	collectionCmd.AddCommand(collectionStatsCmd)
	collectionCmd.AddCommand(collectionDuplicateCmd)
	collectionCmd.AddCommand(collectionDeleteCmd)
	collectionCmd.AddCommand(collectionExportCmd)
	rootCmd.AddCommand(collectionCmd)
}

func runCollectionList(cmd *cobra.Command, _ []string) error {
	if collectionService == nil {
		return errors.New("collection service not configured")
	}

	names, err := collectionService.List(context.Background())
	if err != nil {
		return fmt.Errorf("failed to list collections: %w", err)
	}

	if len(names) == 0 {
		cmd.Println("No collections found.")
		return nil
	}

	cmd.Println("Collections:")
	for _, name := range names {
		cmd.Printf("  %s\n", name)
	}
	return nil
}

func runCollectionShow(cmd *cobra.Command, args []string) error {
	if collectionService == nil {
		return errors.New("collection service not configured")
	}

	collection := collectionArg(args)
	items, err := collectionService.Items(context.Background(), collection)
	if err != nil {
		return fmt.Errorf("failed to load collection %q: %w", collection, err)
	}

	if collectionJSON {
		data, err := json.MarshalIndent(items, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal items: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	if len(items) == 0 {
		cmd.Printf("Collection %s is empty.\n", collection)
		return nil
	}

	rows := make([][]string, 0, len(items))
	for i := range items {
		rows = append(rows, []string{
			items[i].ID,
			truncate(items[i].Title(), 40),
			truncate(items[i].Subtitle(), 30),
			items[i].Metadata.Zone(),
			strconv.Itoa(items[i].Metadata.Len()),
		})
	}
	cmd.Println(renderTable(
		[]string{"ID", "Título", "Detalle", "Zona", "Campos"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignRight},
	))
	cmd.Printf("Total: %d items\n", len(items))
	return nil
}

func runCollectionStats(cmd *cobra.Command, args []string) error {
	if collectionService == nil {
		return errors.New("collection service not configured")
	}

	collection := collectionArg(args)
	stats, err := collectionService.Stats(context.Background(), collection)
	if err != nil {
		return fmt.Errorf("failed to get stats for %q: %w", collection, err)
	}

	keys := make([]string, 0, len(stats))
	for k := range stats {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	rows := make([][]string, 0, len(keys))
	for _, k := range keys {
		rows = append(rows, []string{fieldLabel(k), domain.FormatValue(stats[k])})
	}
	cmd.Printf("Statistics for %s:\n", collection)
	cmd.Println(renderTable([]string{"Métrica", "Valor"}, rows, []columnAlignment{alignLeft, alignRight}))
	return nil
}

func runCollectionDuplicate(cmd *cobra.Command, args []string) error {
	if collectionService == nil {
		return errors.New("collection service not configured")
	}

	if err := collectionService.Duplicate(context.Background(), args[0], args[1]); err != nil {
		return fmt.Errorf("failed to duplicate collection: %w", err)
	}

	cmd.Printf("Colección %s duplicada como %s.\n", args[0], args[1])
	return nil
}

func runCollectionDelete(cmd *cobra.Command, args []string) error {
	if collectionService == nil {
		return errors.New("collection service not configured")
	}

	if err := collectionService.Delete(context.Background(), args[0], confirmerFor(cmd)); err != nil {
		return handleAborted(cmd, err)
	}

	cmd.Printf("Colección %s eliminada.\n", args[0])
	return nil
}

func runCollectionExport(cmd *cobra.Command, args []string) error {
	if collectionService == nil {
		return errors.New("collection service not configured")
	}

	collection := collectionArg(args)
	data, err := collectionService.Export(context.Background(), collection)
	if err != nil {
		return fmt.Errorf("failed to export %q: %w", collection, err)
	}

	var out bytes.Buffer
	if err := json.Indent(&out, data, "", "  "); err != nil {
		return fmt.Errorf("failed to format export: %w", err)
	}
	out.WriteByte('\n')

	if exportOutput == "" {
		cmd.Print(out.String())
		return nil
	}
	if err := os.WriteFile(exportOutput, out.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", exportOutput, err)
	}
	cmd.Printf("Exportados %s a %s.\n", collection, exportOutput)
	return nil
}

// collectionArg returns the collection named in args, or the configured default.
func collectionArg(args []string) string {
	if len(args) > 0 && args[0] != "" {
		return args[0]
	}
	if settingsService != nil {
		if settings, err := settingsService.Get(); err == nil && settings.Collection.Default != "" {
			return settings.Collection.Default
		}
	}
	return domain.DefaultCollection
}
