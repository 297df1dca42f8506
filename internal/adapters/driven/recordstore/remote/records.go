package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"

	"github.com/custodia-labs/curio-cli/internal/core/domain"
)

// collectionResponse is the payload of GET /collections/{name}.
type collectionResponse struct {
	Items []domain.Record `json:"items"`
}

// searchResponse is the payload of GET /search.
type searchResponse struct {
	Results []domain.Record `json:"results"`
}

// ListCollections returns the collection names.
func (c *Client) ListCollections(ctx context.Context) ([]string, error) {
	var names []string
	if err := c.do(ctx, request{method: http.MethodGet, url: c.endpoint(nil, "collections")}, &names); err != nil {
		return nil, err
	}
	if names == nil {
		names = []string{}
	}
	return names, nil
}

// GetCollection returns every record in a collection.
func (c *Client) GetCollection(ctx context.Context, collection string) ([]domain.Record, error) {
	var resp collectionResponse
	u := c.endpoint(nil, "collections", collection)
	if err := c.do(ctx, request{method: http.MethodGet, url: u}, &resp); err != nil {
		return nil, err
	}
	if resp.Items == nil {
		resp.Items = []domain.Record{}
	}
	return resp.Items, nil
}

// GetCollectionStats returns the backend's summary for a collection.
func (c *Client) GetCollectionStats(ctx context.Context, collection string) (domain.CollectionStats, error) {
	stats := domain.CollectionStats{}
	u := c.endpoint(nil, "collections", collection, "stats")
	if err := c.do(ctx, request{method: http.MethodGet, url: u}, &stats); err != nil {
		return nil, err
	}
	return stats, nil
}

// DuplicateCollection copies source into a new collection named target.
func (c *Client) DuplicateCollection(ctx context.Context, source, target string) error {
	params := url.Values{}
	params.Set("new_collection_name", target)
	u := c.endpoint(params, "collections", source, "duplicate")
	return c.do(ctx, request{method: http.MethodPost, url: u}, nil)
}

// DeleteCollection removes a collection. The backend refuses without confirm=true.
func (c *Client) DeleteCollection(ctx context.Context, collection string) error {
	params := url.Values{}
	params.Set("confirm", "true")
	return c.do(ctx, request{method: http.MethodDelete, url: c.endpoint(params, "collections", collection)}, nil)
}

// ExportCollection returns the export document unchanged.
func (c *Client) ExportCollection(ctx context.Context, collection string) (json.RawMessage, error) {
	var data json.RawMessage
	if err := c.do(ctx, request{method: http.MethodGet, url: c.endpoint(nil, "export", collection)}, &data); err != nil {
		return nil, err
	}
	return data, nil
}

// CreateArtwork adds a new obra.
func (c *Client) CreateArtwork(ctx context.Context, draft domain.ArtworkDraft) error {
	r, err := jsonRequest(http.MethodPost, c.endpoint(nil, "obras"), draft)
	if err != nil {
		return err
	}
	return c.do(ctx, r, nil)
}

// CreateZone adds a new zona.
func (c *Client) CreateZone(ctx context.Context, draft domain.ZoneDraft) error {
	r, err := jsonRequest(http.MethodPost, c.endpoint(nil, "zonas"), draft)
	if err != nil {
		return err
	}
	return c.do(ctx, r, nil)
}

// GetRecord retrieves a single record.
func (c *Client) GetRecord(ctx context.Context, collection, id string) (*domain.Record, error) {
	var rec domain.Record
	if err := c.do(ctx, request{method: http.MethodGet, url: c.itemURL(collection, id)}, &rec); err != nil {
		return nil, err
	}
	if rec.ID == "" {
		rec.ID = id
	}
	return &rec, nil
}

// UpdateMetadata sends a MetadataUpdate as-is.
func (c *Client) UpdateMetadata(ctx context.Context, collection, id string, update domain.MetadataUpdate) error {
	if update.Updates == nil {
		update.Updates = map[string]any{}
	}
	r, err := jsonRequest(http.MethodPut, c.itemURL(collection, id, "metadata"), update)
	if err != nil {
		return err
	}
	return c.do(ctx, r, nil)
}

// AddField posts a single new field as multipart form data.
func (c *Client) AddField(ctx context.Context, collection, id, name, value string) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if err := w.WriteField("field_name", name); err != nil {
		return fmt.Errorf("write form: %w", err)
	}
	if err := w.WriteField("field_value", value); err != nil {
		return fmt.Errorf("write form: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("write form: %w", err)
	}

	return c.do(ctx, request{
		method:      http.MethodPost,
		url:         c.itemURL(collection, id, "add-field"),
		body:        &buf,
		contentType: w.FormDataContentType(),
	}, nil)
}

// RemoveField deletes a single field.
func (c *Client) RemoveField(ctx context.Context, collection, id, name string) error {
	return c.do(ctx, request{method: http.MethodDelete, url: c.itemURL(collection, id, "field", name)}, nil)
}

// UpdateDocument replaces a record's indexed text.
func (c *Client) UpdateDocument(ctx context.Context, collection, id string, update domain.DocumentUpdate) error {
	r, err := jsonRequest(http.MethodPut, c.itemURL(collection, id, "document"), update)
	if err != nil {
		return err
	}
	return c.do(ctx, r, nil)
}

// DeleteRecord removes a record.
func (c *Client) DeleteRecord(ctx context.Context, collection, id string) error {
	return c.do(ctx, request{method: http.MethodDelete, url: c.itemURL(collection, id)}, nil)
}

// BulkOperation sends one request covering every listed item.
func (c *Client) BulkOperation(
	ctx context.Context, collection string, op domain.BulkOperation,
) (*domain.BulkResult, error) {
	if op.OperationData == nil {
		op.OperationData = map[string]any{}
	}
	r, err := jsonRequest(http.MethodPost, c.endpoint(nil, "collections", collection, "bulk-operation"), op)
	if err != nil {
		return nil, err
	}
	r.unbounded = true

	var result domain.BulkResult
	if err := c.do(ctx, r, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Search performs a semantic search.
func (c *Client) Search(ctx context.Context, query string, opts domain.SearchOptions) ([]domain.Record, error) {
	opts = opts.Normalised()
	params := url.Values{}
	params.Set("q", query)
	params.Set("collection_name", opts.Collection)
	params.Set("n_results", strconv.Itoa(opts.Limit))
	if opts.Type != "" {
		params.Set("tipo_filter", opts.Type)
	}

	var resp searchResponse
	if err := c.do(ctx, request{method: http.MethodGet, url: c.endpoint(params, "search")}, &resp); err != nil {
		return nil, err
	}
	if resp.Results == nil {
		resp.Results = []domain.Record{}
	}
	return resp.Results, nil
}

// Health checks the backend is reachable.
func (c *Client) Health(ctx context.Context) error {
	return c.do(ctx, request{method: http.MethodGet, url: c.endpoint(nil, "health")}, nil)
}

func (c *Client) itemURL(collection, id string, rest ...string) string {
	segments := append([]string{"collections", collection, "items", id}, rest...)
	return c.endpoint(nil, segments...)
}
