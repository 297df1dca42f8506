package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/custodia-labs/curio-cli/internal/core/domain"
	"github.com/custodia-labs/curio-cli/internal/core/ports/driven"
)

// Ensure RecordStore implements the interface.
var _ driven.RecordStore = (*RecordStore)(nil)

// RecordStore is an in-memory implementation of driven.RecordStore.
// It applies changes the way the backend does and counts every call,
// so tests can assert how many requests a flow would send.
type RecordStore struct {
	mu          sync.RWMutex
	collections map[string]map[string]domain.Record
	calls       map[string]int
	bulkOps     []domain.BulkOperation

	// Err, when set, is returned by every call instead of touching the data.
	Err error

	// BulkResultOverride, when set, is returned by BulkOperation after the
	// operation has been applied.
	BulkResultOverride *domain.BulkResult
}

// NewRecordStore creates a new in-memory record store.
func NewRecordStore() *RecordStore {
	return &RecordStore{
		collections: make(map[string]map[string]domain.Record),
		calls:       make(map[string]int),
	}
}

// Put stores a record directly, creating the collection if needed.
func (s *RecordStore) Put(collection string, record domain.Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.collections[collection] == nil {
		s.collections[collection] = make(map[string]domain.Record)
	}
	record.Metadata = record.Metadata.Clone()
	s.collections[collection][record.ID] = record
}

// Calls returns how many times the named method was called.
func (s *RecordStore) Calls(method string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.calls[method]
}

// TotalCalls returns the number of calls across all methods.
func (s *RecordStore) TotalCalls() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	total := 0
	for _, n := range s.calls {
		total += n
	}
	return total
}

// BulkOperations returns every bulk payload received, in order.
func (s *RecordStore) BulkOperations() []domain.BulkOperation {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.BulkOperation, len(s.bulkOps))
	copy(out, s.bulkOps)
	return out
}

// call counts a request and returns the injected error, if any.
// Callers must hold the write lock.
func (s *RecordStore) call(method string) error {
	s.calls[method]++
	return s.Err
}

// ListCollections returns the collection names.
func (s *RecordStore) ListCollections(_ context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.call("ListCollections"); err != nil {
		return nil, err
	}
	names := make([]string, 0, len(s.collections))
	for name := range s.collections {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// GetCollection returns every record in a collection, ordered by ID.
func (s *RecordStore) GetCollection(_ context.Context, collection string) ([]domain.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.call("GetCollection"); err != nil {
		return nil, err
	}
	records, ok := s.collections[collection]
	if !ok {
		return nil, domain.ErrNotFound
	}
	out := make([]domain.Record, 0, len(records))
	for _, r := range records {
		r.Metadata = r.Metadata.Clone()
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// GetCollectionStats returns item and field counts.
func (s *RecordStore) GetCollectionStats(_ context.Context, collection string) (domain.CollectionStats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.call("GetCollectionStats"); err != nil {
		return nil, err
	}
	records, ok := s.collections[collection]
	if !ok {
		return nil, domain.ErrNotFound
	}
	fields := make(map[string]struct{})
	for _, r := range records {
		for _, k := range r.Metadata.Keys() {
			fields[k] = struct{}{}
		}
	}
	return domain.CollectionStats{
		"collection_name": collection,
		"total_items":     len(records),
		"total_fields":    len(fields),
	}, nil
}

// DuplicateCollection copies every record of source into target.
func (s *RecordStore) DuplicateCollection(_ context.Context, source, target string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.call("DuplicateCollection"); err != nil {
		return err
	}
	records, ok := s.collections[source]
	if !ok {
		return domain.ErrNotFound
	}
	if _, exists := s.collections[target]; exists {
		return fmt.Errorf("%w: collection %q already exists", domain.ErrInvalidInput, target)
	}
	copied := make(map[string]domain.Record, len(records))
	for id, r := range records {
		r.Metadata = r.Metadata.Clone()
		copied[id] = r
	}
	s.collections[target] = copied
	return nil
}

// DeleteCollection removes a collection.
func (s *RecordStore) DeleteCollection(_ context.Context, collection string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.call("DeleteCollection"); err != nil {
		return err
	}
	if _, ok := s.collections[collection]; !ok {
		return domain.ErrNotFound
	}
	delete(s.collections, collection)
	return nil
}

// ExportCollection encodes the collection's records, ordered by ID.
func (s *RecordStore) ExportCollection(_ context.Context, collection string) (json.RawMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.call("ExportCollection"); err != nil {
		return nil, err
	}
	records, ok := s.collections[collection]
	if !ok {
		return nil, domain.ErrNotFound
	}
	items := make([]domain.Record, 0, len(records))
	for _, r := range records {
		items = append(items, r)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return json.Marshal(map[string]any{
		"collection_name": collection,
		"total_items":     len(items),
		"items":           items,
	})
}

// CreateArtwork stores a new obra in the default collection.
func (s *RecordStore) CreateArtwork(_ context.Context, draft domain.ArtworkDraft) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.call("CreateArtwork"); err != nil {
		return err
	}
	s.create(domain.Record{Metadata: draft.Metadata(), Document: draft.Description})
	return nil
}

// CreateZone stores a new zona in the default collection.
func (s *RecordStore) CreateZone(_ context.Context, draft domain.ZoneDraft) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.call("CreateZone"); err != nil {
		return err
	}
	s.create(domain.Record{Metadata: draft.Metadata(), Document: draft.Description})
	return nil
}

// create assigns an ID and stores r. Callers must hold the write lock.
func (s *RecordStore) create(r domain.Record) {
	if s.collections[domain.DefaultCollection] == nil {
		s.collections[domain.DefaultCollection] = make(map[string]domain.Record)
	}
	r.ID = uuid.NewString()
	s.collections[domain.DefaultCollection][r.ID] = r
}

// GetRecord retrieves a single record.
func (s *RecordStore) GetRecord(_ context.Context, collection, id string) (*domain.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.call("GetRecord"); err != nil {
		return nil, err
	}
	r, ok := s.collections[collection][id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	r.Metadata = r.Metadata.Clone()
	return &r, nil
}

// UpdateMetadata merges or replaces a record's metadata.
func (s *RecordStore) UpdateMetadata(
	_ context.Context, collection, id string, update domain.MetadataUpdate,
) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.call("UpdateMetadata"); err != nil {
		return err
	}
	return s.apply(collection, id, update)
}

// AddField adds a single field, failing if it already exists.
func (s *RecordStore) AddField(_ context.Context, collection, id, name, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.call("AddField"); err != nil {
		return err
	}
	r, ok := s.collections[collection][id]
	if !ok {
		return domain.ErrNotFound
	}
	if r.Metadata.Has(name) {
		return domain.ErrDuplicateField
	}
	return s.apply(collection, id, domain.ProposeUpdate(name, value))
}

// RemoveField deletes a single field.
func (s *RecordStore) RemoveField(_ context.Context, collection, id, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.call("RemoveField"); err != nil {
		return err
	}
	r, ok := s.collections[collection][id]
	if !ok {
		return domain.ErrNotFound
	}
	r.Metadata = r.Metadata.Clone()
	r.Metadata.Delete(name)
	s.collections[collection][id] = r
	return nil
}

// UpdateDocument replaces a record's indexed text.
func (s *RecordStore) UpdateDocument(
	_ context.Context, collection, id string, update domain.DocumentUpdate,
) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.call("UpdateDocument"); err != nil {
		return err
	}
	r, ok := s.collections[collection][id]
	if !ok {
		return domain.ErrNotFound
	}
	r.Document = update.NewDocument
	s.collections[collection][id] = r
	return nil
}

// DeleteRecord removes a record.
func (s *RecordStore) DeleteRecord(_ context.Context, collection, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.call("DeleteRecord"); err != nil {
		return err
	}
	if _, ok := s.collections[collection][id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.collections[collection], id)
	return nil
}

// BulkOperation applies op to each listed record. Missing records are
// reported per item and do not stop the others.
func (s *RecordStore) BulkOperation(
	_ context.Context, collection string, op domain.BulkOperation,
) (*domain.BulkResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.call("BulkOperation"); err != nil {
		return nil, err
	}
	s.bulkOps = append(s.bulkOps, op)

	result := &domain.BulkResult{}
	for _, id := range op.ItemIDs {
		var err error
		switch op.Operation {
		case domain.OperationUpdateMetadata:
			err = s.apply(collection, id, domain.MetadataUpdate{Updates: op.OperationData})
		case domain.OperationMoveZone:
			err = s.apply(collection, id, domain.ProposeUpdate(domain.FieldZona, op.OperationData[domain.ZoneDataKey]))
		case domain.OperationDelete:
			if _, ok := s.collections[collection][id]; !ok {
				err = domain.ErrNotFound
			} else {
				delete(s.collections[collection], id)
			}
		default:
			err = domain.ErrUnknownOperation
		}
		if err != nil {
			result.ErrorCount++
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", id, err))
			continue
		}
		result.SuccessCount++
	}

	if s.BulkResultOverride != nil {
		override := *s.BulkResultOverride
		return &override, nil
	}
	return result, nil
}

// Search returns records whose document or metadata contains the query,
// case-insensitively.
func (s *RecordStore) Search(
	_ context.Context, query string, opts domain.SearchOptions,
) ([]domain.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.call("Search"); err != nil {
		return nil, err
	}
	opts = opts.Normalised()
	q := strings.ToLower(query)

	var out []domain.Record
	for _, r := range s.collections[opts.Collection] {
		if opts.Type != "" && r.Metadata.Type() != opts.Type {
			continue
		}
		if matches(r, q) {
			r.Metadata = r.Metadata.Clone()
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	if len(out) > opts.Limit {
		out = out[:opts.Limit]
	}
	return out, nil
}

// Health reports the injected error, if any.
func (s *RecordStore) Health(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.call("Health")
}

// apply runs an update against a stored record. Callers must hold the write lock.
func (s *RecordStore) apply(collection, id string, update domain.MetadataUpdate) error {
	r, ok := s.collections[collection][id]
	if !ok {
		return domain.ErrNotFound
	}
	r.Metadata = update.Apply(r.Metadata)
	s.collections[collection][id] = r
	return nil
}

func matches(r domain.Record, q string) bool {
	if strings.Contains(strings.ToLower(r.Document), q) {
		return true
	}
	for _, k := range r.Metadata.Keys() {
		if strings.Contains(strings.ToLower(r.Metadata.String(k)), q) {
			return true
		}
	}
	return false
}
