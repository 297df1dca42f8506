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
	itemJSON        bool
	docText         string
	docFile         string
	docNoRegenerate bool
)

var itemCmd = &cobra.Command{
	Use:   "item",
	Short: "Inspect, create and delete single items",
}

var itemGetCmd = &cobra.Command{
	Use:   "get [collection] [id]",
	Short: "Show an item's metadata",
	Args:  cobra.ExactArgs(2),
	RunE:  runItemGet,
}

var itemDeleteCmd = &cobra.Command{
	Use:   "delete [collection] [id]",
	Short: "Delete an item completely",
	Long:  `Deletes the item and its embedding from the collection. This cannot be undone.`,
	Args:  cobra.ExactArgs(2),
	RunE:  runItemDelete,
}

var itemDocumentCmd = &cobra.Command{
	Use:   "document [collection] [id]",
	Short: "Replace an item's indexed text",
	Long: `Replaces the text that is embedded for semantic search.
By default the embedding is regenerated from the new text.`,
	Args: cobra.ExactArgs(2),
	RunE: runItemDocument,
}

func init() {
	itemGetCmd.Flags().BoolVar(&itemJSON, "json", false, "output the item as JSON")
	itemDocumentCmd.Flags().StringVar(&docText, "text", "", "new document text")
	itemDocumentCmd.Flags().StringVar(&docFile, "file", "", "read the new document text from a file")
	itemDocumentCmd.Flags().BoolVar(&docNoRegenerate, "no-regenerate", false, "keep the current embedding")
	itemDocumentCmd.MarkFlagsMutuallyExclusive("text", "file")

	itemCmd.AddCommand(itemGetCmd)
	itemCmd.AddCommand(itemDeleteCmd)
	itemCmd.AddCommand(itemDocumentCmd)
	rootCmd.AddCommand(itemCmd)
}

func runItemGet(cmd *cobra.Command, args []string) error {
	if metadataService == nil {
		return errors.New("metadata service not configured")
	}

	record, err := metadataService.Get(context.Background(), args[0], args[1])
	if err != nil {
		return fmt.Errorf("failed to get item: %w", err)
	}

	if itemJSON {
		data, err := json.MarshalIndent(record, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal item: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	printRecord(cmd, record)
	return nil
}

// printRecord shows core fields first, then custom fields.
func printRecord(cmd *cobra.Command, record *domain.Record) {
	cmd.Printf("Item: %s\n", record.ID)
	cmd.Printf("  %s\n\n", record.Title())

	coreKeys := record.Metadata.CoreKeys()
	if len(coreKeys) > 0 {
		rows := make([][]string, 0, len(coreKeys))
		for _, k := range coreKeys {
			rows = append(rows, []string{fieldLabel(k), record.Metadata.String(k)})
		}
		cmd.Println("Campos principales:")
		cmd.Println(renderTable([]string{"Campo", "Valor"}, rows, nil))
	}

	extra := record.Metadata.AdditionalKeys()
	if len(extra) > 0 {
		rows := make([][]string, 0, len(extra))
		for _, k := range extra {
			rows = append(rows, []string{k, record.Metadata.String(k)})
		}
		cmd.Println("Campos adicionales:")
		cmd.Println(renderTable([]string{"Campo", "Valor"}, rows, nil))
	}

	if record.Document != "" {
		cmd.Println("Documento:")
		cmd.Printf("  %s\n", truncate(record.Document, 300))
	}
}

func runItemDelete(cmd *cobra.Command, args []string) error {
	if metadataService == nil {
		return errors.New("metadata service not configured")
	}

	err := metadataService.DeleteRecord(context.Background(), args[0], args[1], confirmerFor(cmd))
	if err != nil {
		return handleAborted(cmd, err)
	}

	cmd.Printf("Item %s eliminado de %s.\n", args[1], args[0])
	return nil
}

func runItemDocument(cmd *cobra.Command, args []string) error {
	if metadataService == nil {
		return errors.New("metadata service not configured")
	}

	text := docText
	if docFile != "" {
		data, err := os.ReadFile(docFile)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", docFile, err)
		}
		text = string(data)
	}
	if text == "" {
		return errors.New("document text is required (use --text or --file)")
	}

	if err := metadataService.UpdateDocument(context.Background(), args[0], args[1], text, !docNoRegenerate); err != nil {
		return fmt.Errorf("failed to update document: %w", err)
	}

	cmd.Printf("Documento de %s actualizado.\n", args[1])
	return nil
}
