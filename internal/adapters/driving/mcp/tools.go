package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/curio-cli/internal/core/domain"
	"github.com/custodia-labs/curio-cli/internal/core/ports/driving"
)

// SearchInput is the input schema for the search tool.
type SearchInput struct {
	Query      string `json:"query" jsonschema:"natural language description of the items to find"`
	Collection string `json:"collection,omitempty" jsonschema:"collection to search (default mac_info)"`
	Type       string `json:"tipo,omitempty" jsonschema:"only return items whose tipo field matches"`
	Limit      int    `json:"limit,omitempty" jsonschema:"maximum number of results to return (default 5)"`
}

// CollectionInput names a collection.
type CollectionInput struct {
	Collection string `json:"collection" jsonschema:"collection name"`
}

// ItemInput names one item.
type ItemInput struct {
	Collection string `json:"collection" jsonschema:"collection name"`
	ID         string `json:"id" jsonschema:"item ID"`
}

// UpdateFieldInput is the input schema for update_field.
type UpdateFieldInput struct {
	Collection string `json:"collection" jsonschema:"collection name"`
	ID         string `json:"id" jsonschema:"item ID"`
	Field      string `json:"field" jsonschema:"field name"`
	Value      any    `json:"value" jsonschema:"new value (string, number or boolean)"`
}

// AddFieldInput is the input schema for add_field.
type AddFieldInput struct {
	Collection string `json:"collection" jsonschema:"collection name"`
	ID         string `json:"id" jsonschema:"item ID"`
	Field      string `json:"field" jsonschema:"new field name, must not exist on the item"`
	Value      string `json:"value" jsonschema:"field value"`
}

// RemoveFieldInput is the input schema for remove_field.
type RemoveFieldInput struct {
	Collection string `json:"collection" jsonschema:"collection name"`
	ID         string `json:"id" jsonschema:"item ID"`
	Field      string `json:"field" jsonschema:"additional field to remove; core fields cannot be removed"`
	Confirm    bool   `json:"confirm" jsonschema:"must be true, the removal cannot be undone"`
}

// FieldInput is one key/value row of a bulk update.
type FieldInput struct {
	Key   string `json:"key" jsonschema:"field name"`
	Value string `json:"value" jsonschema:"field value"`
}

// BulkInput is the input schema for bulk_operation.
type BulkInput struct {
	Collection string       `json:"collection" jsonschema:"collection name"`
	ItemIDs    []string     `json:"item_ids" jsonschema:"IDs of the items to change"`
	Operation  string       `json:"operation" jsonschema:"update_metadata, move_zone or delete"`
	Fields     []FieldInput `json:"fields,omitempty" jsonschema:"fields to set, for update_metadata"`
	Zone       string       `json:"zone,omitempty" jsonschema:"target zone, for move_zone"`
	Confirm    bool         `json:"confirm" jsonschema:"must be true to apply the operation"`
}

// ItemSummary is a one-line view of an item.
type ItemSummary struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	Zone     string `json:"zone,omitempty"`
}

// CollectionsOutput is the output schema for list_collections.
type CollectionsOutput struct {
	Collections []string `json:"collections"`
	Count       int      `json:"count"`
}

// ItemsOutput is the output schema for list_items and search.
type ItemsOutput struct {
	Collection string        `json:"collection"`
	Items      []ItemSummary `json:"items"`
	Count      int           `json:"count"`
}

// ItemOutput is the output schema for get_item.
type ItemOutput struct {
	ID         string         `json:"id"`
	Title      string         `json:"title"`
	Core       map[string]any `json:"core_fields"`
	Additional map[string]any `json:"additional_fields"`
	Document   string         `json:"document,omitempty"`
}

// MessageOutput reports the outcome of a write.
type MessageOutput struct {
	Message string `json:"message"`
}

// BulkOutput is the output schema for bulk_operation.
type BulkOutput struct {
	RunID        string   `json:"run_id"`
	Operation    string   `json:"operation"`
	SuccessCount int      `json:"success_count"`
	ErrorCount   int      `json:"error_count"`
	Errors       []string `json:"errors,omitempty"`
	Summary      string   `json:"summary"`
	Inconsistent bool     `json:"inconsistent,omitempty"`
	Refreshed    bool     `json:"refreshed"`
	RefreshError string   `json:"refresh_error,omitempty"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search",
		Description: "Semantic search over a collection's items",
	}, s.handleSearch)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_collections",
		Description: "List the collections held by the backend",
	}, s.handleListCollections)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_items",
		Description: "List every item in a collection",
	}, s.handleListItems)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_item",
		Description: "Get one item with its core and additional fields",
	}, s.handleGetItem)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "update_field",
		Description: "Set one field on an item, creating it if absent",
	}, s.handleUpdateField)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "add_field",
		Description: "Add a new field to an item; fails if the field exists",
	}, s.handleAddField)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "remove_field",
		Description: "Remove an additional field from an item (requires confirm: true)",
	}, s.handleRemoveField)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "bulk_operation",
		Description: "Apply update_metadata, move_zone or delete to many items at once (requires confirm: true)",
	}, s.handleBulk)
}

// confirmer turns the confirm flag into a driving.Confirmer.
func confirmer(confirmed bool) driving.Confirmer {
	if confirmed {
		return driving.AlwaysConfirm
	}
	return driving.ConfirmFunc(func(context.Context, driving.Prompt) (bool, error) {
		return false, fmt.Errorf("%w: set confirm to true", domain.ErrConfirmationRequired)
	})
}

func summarise(records []domain.Record) []ItemSummary {
	out := make([]ItemSummary, len(records))
	for i := range records {
		out[i] = ItemSummary{
			ID:       records[i].ID,
			Title:    records[i].Title(),
			Subtitle: records[i].Subtitle(),
			Zone:     records[i].Metadata.Zone(),
		}
	}
	return out
}

func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, ItemsOutput, error) {
	opts := domain.SearchOptions{
		Collection: input.Collection,
		Type:       input.Type,
		Limit:      input.Limit,
	}.Normalised()

	results, err := s.ports.Collections.Search(ctx, input.Query, opts)
	if err != nil {
		return nil, ItemsOutput{}, err
	}
	items := summarise(results)
	return nil, ItemsOutput{Collection: opts.Collection, Items: items, Count: len(items)}, nil
}

func (s *Server) handleListCollections(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ struct{},
) (*mcp.CallToolResult, CollectionsOutput, error) {
	names, err := s.ports.Collections.List(ctx)
	if err != nil {
		return nil, CollectionsOutput{}, err
	}
	return nil, CollectionsOutput{Collections: names, Count: len(names)}, nil
}

func (s *Server) handleListItems(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input CollectionInput,
) (*mcp.CallToolResult, ItemsOutput, error) {
	records, err := s.ports.Collections.Items(ctx, input.Collection)
	if err != nil {
		return nil, ItemsOutput{}, err
	}
	items := summarise(records)
	return nil, ItemsOutput{Collection: input.Collection, Items: items, Count: len(items)}, nil
}

func (s *Server) handleGetItem(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ItemInput,
) (*mcp.CallToolResult, ItemOutput, error) {
	if s.ports.Metadata == nil {
		return nil, ItemOutput{}, errNotConfigured
	}
	record, err := s.ports.Metadata.Get(ctx, input.Collection, input.ID)
	if err != nil {
		return nil, ItemOutput{}, err
	}

	out := ItemOutput{
		ID:         record.ID,
		Title:      record.Title(),
		Core:       make(map[string]any),
		Additional: make(map[string]any),
		Document:   record.Document,
	}
	for _, k := range record.Metadata.CoreKeys() {
		out.Core[k], _ = record.Metadata.Get(k)
	}
	for _, k := range record.Metadata.AdditionalKeys() {
		out.Additional[k], _ = record.Metadata.Get(k)
	}
	return nil, out, nil
}

func (s *Server) handleUpdateField(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input UpdateFieldInput,
) (*mcp.CallToolResult, MessageOutput, error) {
	if s.ports.Metadata == nil {
		return nil, MessageOutput{}, errNotConfigured
	}
	if err := s.ports.Metadata.UpdateField(ctx, input.Collection, input.ID, input.Field, input.Value); err != nil {
		return nil, MessageOutput{}, err
	}
	return nil, MessageOutput{Message: fmt.Sprintf("Campo %q actualizado.", input.Field)}, nil
}

func (s *Server) handleAddField(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AddFieldInput,
) (*mcp.CallToolResult, MessageOutput, error) {
	if s.ports.Metadata == nil {
		return nil, MessageOutput{}, errNotConfigured
	}
	if err := s.ports.Metadata.AddField(ctx, input.Collection, input.ID, input.Field, input.Value); err != nil {
		return nil, MessageOutput{}, err
	}
	return nil, MessageOutput{Message: fmt.Sprintf("Campo %q añadido.", input.Field)}, nil
}

func (s *Server) handleRemoveField(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input RemoveFieldInput,
) (*mcp.CallToolResult, MessageOutput, error) {
	if s.ports.Metadata == nil {
		return nil, MessageOutput{}, errNotConfigured
	}
	err := s.ports.Metadata.RemoveField(ctx, input.Collection, input.ID, input.Field, confirmer(input.Confirm))
	if err != nil {
		return nil, MessageOutput{}, err
	}
	return nil, MessageOutput{Message: fmt.Sprintf("Campo %q eliminado.", input.Field)}, nil
}

func (s *Server) handleBulk(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input BulkInput,
) (*mcp.CallToolResult, BulkOutput, error) {
	if s.ports.Bulk == nil {
		return nil, BulkOutput{}, errNotConfigured
	}
	kind, err := domain.ParseOperationKind(input.Operation)
	if err != nil {
		return nil, BulkOutput{}, err
	}

	req := driving.BulkRequest{
		Collection: input.Collection,
		Selection:  input.ItemIDs,
		Kind:       kind,
	}
	switch kind {
	case domain.OperationUpdateMetadata:
		for _, f := range input.Fields {
			req.Fields = append(req.Fields, domain.FieldEntry{Key: f.Key, Value: f.Value})
		}
	case domain.OperationMoveZone:
		req.Fields = []domain.FieldEntry{{Key: domain.ZoneDataKey, Value: input.Zone}}
	case domain.OperationDelete:
	}

	outcome, err := s.ports.Bulk.Execute(ctx, req, confirmer(input.Confirm))
	if err != nil {
		return nil, BulkOutput{}, err
	}

	out := BulkOutput{
		RunID:        outcome.RunID,
		Operation:    string(outcome.Operation.Operation),
		SuccessCount: outcome.Result.SuccessCount,
		ErrorCount:   outcome.Result.ErrorCount,
		Errors:       outcome.Result.Errors,
		Summary:      outcome.Result.Summary(),
		Inconsistent: outcome.Inconsistent,
		Refreshed:    outcome.Refreshed,
	}
	if outcome.RefreshErr != nil {
		out.RefreshError = outcome.RefreshErr.Error()
	}
	return nil, out, nil
}
