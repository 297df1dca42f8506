package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/curio-cli/internal/core/domain"
)

var (
	searchLimit      int
	searchJSON       bool
	searchCollection string
	searchType       string
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search collection items",
	Long: `Performs a semantic search over a collection.
Results are ordered by similarity to the query.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the backend is reachable",
	Args:  cobra.NoArgs,
	RunE:  runHealth,
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", domain.DefaultSearchLimit, "maximum number of results")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	searchCmd.Flags().StringVarP(&searchCollection, "collection", "c", "", "collection to search (default from settings)")
	searchCmd.Flags().StringVar(&searchType, "tipo", "", "only return items of this tipo")
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(healthCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := args[0]

	if collectionService == nil {
		return errors.New("collection service not configured")
	}

	collection := searchCollection
	if collection == "" {
		collection = collectionArg(nil)
	}
	opts := domain.SearchOptions{
		Collection: collection,
		Type:       searchType,
		Limit:      searchLimit,
	}

	results, err := collectionService.Search(context.Background(), query, opts)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		data, err := json.MarshalIndent(results, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal results: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	if len(results) == 0 {
		cmd.Println("No results found.")
		return nil
	}

	cmd.Println("Results:")
	cmd.Println()
	for i := range results {
		cmd.Printf("  [%d] %s\n", i+1, results[i].Title())
		cmd.Printf("      %s · %s\n", results[i].ID, results[i].Subtitle())
		if results[i].Document != "" {
			cmd.Printf("      %s\n", truncate(results[i].Document, 120))
		}
		cmd.Println()
	}
	return nil
}

func runHealth(cmd *cobra.Command, _ []string) error {
	if collectionService == nil {
		return errors.New("collection service not configured")
	}

	if err := collectionService.Health(context.Background()); err != nil {
		return fmt.Errorf("backend unreachable: %w", err)
	}
	cmd.Println("Backend OK")
	return nil
}
