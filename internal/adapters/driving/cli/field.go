package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/curio-cli/internal/core/domain"
)

var (
	fieldJSONValue  bool
	fieldReplaceSrc string
)

var fieldCmd = &cobra.Command{
	Use:   "field",
	Short: "Edit item metadata fields",
	Long: `Edit the metadata fields of a single item.

Core fields (titulo, artista, año, tecnica, descripcion, ubicacion, zona,
tipo, nombre and their English equivalents) can be updated but never removed.`,
}

var fieldSetCmd = &cobra.Command{
	Use:   "set [collection] [id] [name] [value]",
	Short: "Set a field, creating or overwriting it",
	Args:  cobra.ExactArgs(4),
	RunE:  runFieldSet,
}

var fieldAddCmd = &cobra.Command{
	Use:   "add [collection] [id] [name] [value]",
	Short: "Add a field that does not exist yet",
	Args:  cobra.ExactArgs(4),
	RunE:  runFieldAdd,
}

var fieldRemoveCmd = &cobra.Command{
	Use:   "remove [collection] [id] [name]",
	Short: "Remove a custom field",
	Args:  cobra.ExactArgs(3),
	RunE:  runFieldRemove,
}

var fieldReplaceCmd = &cobra.Command{
	Use:   "replace [collection] [id]",
	Short: "Replace all metadata from a JSON file",
	Long: `Replaces the complete metadata of an item with the JSON object in --file.
Fields missing from the file are removed.`,
	Args: cobra.ExactArgs(2),
	RunE: runFieldReplace,
}

var fieldSuggestCmd = &cobra.Command{
	Use:   "suggest",
	Short: "List suggested custom field names",
	Args:  cobra.NoArgs,
	Run:   runFieldSuggest,
}

func init() {
	fieldSetCmd.Flags().BoolVar(&fieldJSONValue, "json", false, "parse the value as JSON (numbers, booleans, lists)")
	fieldReplaceCmd.Flags().StringVarP(&fieldReplaceSrc, "file", "f", "", "JSON file with the new metadata")
	_ = fieldReplaceCmd.MarkFlagRequired("file")

	fieldCmd.AddCommand(fieldSetCmd)
	fieldCmd.AddCommand(fieldAddCmd)
	fieldCmd.AddCommand(fieldRemoveCmd)
	fieldCmd.AddCommand(fieldReplaceCmd)
	fieldCmd.AddCommand(fieldSuggestCmd)
	rootCmd.AddCommand(fieldCmd)
}

func runFieldSet(cmd *cobra.Command, args []string) error {
	if metadataService == nil {
		return errors.New("metadata service not configured")
	}

	var value any = args[3]
	if fieldJSONValue {
		if err := json.Unmarshal([]byte(args[3]), &value); err != nil {
			return fmt.Errorf("value is not valid JSON: %w", err)
		}
	}

	if err := metadataService.UpdateField(context.Background(), args[0], args[1], args[2], value); err != nil {
		return fmt.Errorf("failed to update field: %w", err)
	}

	cmd.Printf("Campo %q actualizado.\n", args[2])
	return nil
}

func runFieldAdd(cmd *cobra.Command, args []string) error {
	if metadataService == nil {
		return errors.New("metadata service not configured")
	}

	if err := metadataService.AddField(context.Background(), args[0], args[1], args[2], args[3]); err != nil {
		if errors.Is(err, domain.ErrDuplicateField) {
			cmd.Printf("El campo %q ya existe. Usa 'curio field set' para cambiar su valor.\n", args[2])
		}
		return fmt.Errorf("failed to add field: %w", err)
	}

	cmd.Printf("Campo %q añadido.\n", args[2])
	return nil
}

func runFieldRemove(cmd *cobra.Command, args []string) error {
	if metadataService == nil {
		return errors.New("metadata service not configured")
	}

	err := metadataService.RemoveField(context.Background(), args[0], args[1], args[2], confirmerFor(cmd))
	if err != nil {
		if errors.Is(err, domain.ErrProtectedField) {
			cmd.Println("No se pueden eliminar campos principales.")
		}
		return handleAborted(cmd, err)
	}

	cmd.Printf("Campo %q eliminado.\n", args[2])
	return nil
}

func runFieldReplace(cmd *cobra.Command, args []string) error {
	if metadataService == nil {
		return errors.New("metadata service not configured")
	}

	data, err := os.ReadFile(fieldReplaceSrc)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", fieldReplaceSrc, err)
	}
	var fields map[string]any
	if err := json.Unmarshal(data, &fields); err != nil {
		return fmt.Errorf("%s must contain a JSON object: %w", fieldReplaceSrc, err)
	}

	if err := metadataService.ReplaceAll(context.Background(), args[0], args[1], fields); err != nil {
		return fmt.Errorf("failed to replace metadata: %w", err)
	}

	cmd.Printf("Metadata de %s reemplazada (%d campos).\n", args[1], len(fields))
	return nil
}

func runFieldSuggest(cmd *cobra.Command, _ []string) {
	cmd.Println("Campos sugeridos:")
	for _, name := range domain.SuggestedFields() {
		cmd.Printf("  %-22s %s\n", name, fieldLabel(name))
	}
}
