package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/curio-cli/internal/core/domain"
	"github.com/custodia-labs/curio-cli/internal/core/ports/driving"
)

var (
	bulkOp    string
	bulkIDs   []string
	bulkAll   bool
	bulkSet   []string
	bulkZone  string
	bulkLimit int
)

var bulkCmd = &cobra.Command{
	Use:   "bulk",
	Short: "Apply one operation to many items",
}

var bulkRunCmd = &cobra.Command{
	Use:   "run [collection]",
	Short: "Run a bulk operation",
	Long: `Applies one operation to the selected items in a single request.

Operations:
  update_metadata  set fields on every item (--set key=value, repeatable)
  move_zone        move every item to a zone (--zone)
  delete           delete every item

Examples:
  curio bulk run mac_images --op update_metadata --ids a,b --set estado=restaurado
  curio bulk run mac_images --op move_zone --all --zone "Sala 3"
  curio bulk run mac_images --op delete --ids a --yes`,
	Args: cobra.ExactArgs(1),
	RunE: runBulkRun,
}

var bulkHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent bulk operations",
	Args:  cobra.NoArgs,
	RunE:  runBulkHistory,
}

func init() {
	bulkRunCmd.Flags().StringVar(&bulkOp, "op", "", "operation: update_metadata, move_zone or delete")
	bulkRunCmd.Flags().StringSliceVar(&bulkIDs, "ids", nil, "comma-separated item ids")
	bulkRunCmd.Flags().BoolVar(&bulkAll, "all", false, "select every item in the collection")
	bulkRunCmd.Flags().StringArrayVar(&bulkSet, "set", nil, "field to set as key=value (repeatable)")
	bulkRunCmd.Flags().StringVar(&bulkZone, "zone", "", "target zone for move_zone")
	_ = bulkRunCmd.MarkFlagRequired("op")
	bulkRunCmd.MarkFlagsMutuallyExclusive("ids", "all")

	bulkHistoryCmd.Flags().IntVarP(&bulkLimit, "limit", "n", domain.DefaultHistorySize, "number of runs to show (0 = all)")

	bulkCmd.AddCommand(bulkRunCmd)
	bulkCmd.AddCommand(bulkHistoryCmd)
	rootCmd.AddCommand(bulkCmd)
}

func runBulkRun(cmd *cobra.Command, args []string) error {
	if bulkDispatcher == nil {
		return errors.New("bulk dispatcher not configured")
	}

	kind, err := domain.ParseOperationKind(bulkOp)
	if err != nil {
		return err
	}

	collection := args[0]
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	selection := bulkIDs
	if bulkAll {
		if collectionService == nil {
			return errors.New("collection service not configured")
		}
		items, err := collectionService.Items(ctx, collection)
		if err != nil {
			return fmt.Errorf("failed to load collection %q: %w", collection, err)
		}
		selection = make([]string, 0, len(items))
		for i := range items {
			selection = append(selection, items[i].ID)
		}
	}

	req := driving.BulkRequest{
		Collection: collection,
		Selection:  selection,
		Kind:       kind,
		Fields:     bulkFields(kind),
	}

	outcome, err := bulkDispatcher.Execute(ctx, req, confirmerFor(cmd))
	if err != nil {
		if domain.IsValidation(err) {
			return fmt.Errorf("invalid bulk operation: %w", err)
		}
		return handleAborted(cmd, err)
	}

	printOutcome(cmd, outcome)
	return nil
}

// bulkFields turns the --set and --zone flags into field rows.
func bulkFields(kind domain.OperationKind) []domain.FieldEntry {
	switch kind {
	case domain.OperationMoveZone:
		return []domain.FieldEntry{{Key: domain.ZoneDataKey, Value: bulkZone}}
	case domain.OperationUpdateMetadata:
		fields := make([]domain.FieldEntry, 0, len(bulkSet))
		for _, pair := range bulkSet {
			key, value, _ := strings.Cut(pair, "=")
			fields = append(fields, domain.FieldEntry{
				Key:   strings.TrimSpace(key),
				Value: strings.TrimSpace(value),
			})
		}
		return fields
	default:
		return nil
	}
}

func printOutcome(cmd *cobra.Command, outcome *driving.BulkOutcome) {
	result := outcome.Result
	cmd.Printf("%s: %s\n", outcome.Operation.Operation.Description(), result.Summary())

	if result.HasErrors() {
		cmd.Println("Errores:")
		for _, msg := range result.Errors {
			cmd.Printf("  - %s\n", msg)
		}
	}
	if outcome.Inconsistent {
		cmd.Printf("Aviso: el resultado cubre %d de %d items seleccionados.\n",
			result.Total(), len(outcome.Operation.ItemIDs))
	}
	if outcome.RefreshErr != nil {
		cmd.Printf("Aviso: no se pudo recargar la colección: %v\n", outcome.RefreshErr)
	} else if outcome.Refreshed {
		cmd.Printf("Colección recargada: %d items.\n", len(outcome.Items))
	}
	cmd.Printf("Run: %s\n", outcome.RunID)
}

func runBulkHistory(cmd *cobra.Command, _ []string) error {
	if bulkDispatcher == nil {
		return errors.New("bulk dispatcher not configured")
	}

	runs, err := bulkDispatcher.History(context.Background(), bulkLimit)
	if err != nil {
		return fmt.Errorf("failed to load history: %w", err)
	}

	if len(runs) == 0 {
		cmd.Println("No bulk operations recorded.")
		return nil
	}

	rows := make([][]string, 0, len(runs))
	for i := range runs {
		run := &runs[i]
		outcome := string(run.Phase)
		if run.Result != nil {
			outcome = run.Result.Summary()
		} else if run.Error != "" {
			outcome = truncate(run.Error, 40)
		}
		rows = append(rows, []string{
			shortID(run.ID),
			run.StartedAt.Local().Format("2006-01-02 15:04"),
			run.Collection,
			run.Operation.String(),
			strconv.Itoa(len(run.ItemIDs)),
			outcome,
		})
	}

	cmd.Println(renderTable(
		[]string{"Run", "Fecha", "Colección", "Operación", "Items", "Resultado"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignRight, alignLeft},
	))
	return nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
