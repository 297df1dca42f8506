package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/curio-cli/internal/core/domain"
	"github.com/custodia-labs/curio-cli/internal/core/ports/driven"
	"github.com/custodia-labs/curio-cli/internal/core/ports/driving"
	"github.com/custodia-labs/curio-cli/internal/logger"
)

// Ensure MetadataService implements the interface.
var _ driving.MetadataService = (*MetadataService)(nil)

// MetadataService edits single records through the record store.
type MetadataService struct {
	store driven.RecordStore
}

// NewMetadataService creates a new metadata service.
func NewMetadataService(store driven.RecordStore) *MetadataService {
	return &MetadataService{store: store}
}

// Get retrieves a record.
func (s *MetadataService) Get(ctx context.Context, collection, id string) (*domain.Record, error) {
	if err := requireTarget(collection, id); err != nil {
		return nil, err
	}
	return s.store.GetRecord(ctx, collection, id)
}

// UpdateField sets one field, creating or overwriting it.
func (s *MetadataService) UpdateField(ctx context.Context, collection, id, name string, value any) error {
	if err := requireTarget(collection, id); err != nil {
		return err
	}
	if name == "" {
		return &domain.ValidationError{Err: domain.ErrMissingInput}
	}

	update := domain.ProposeUpdate(name, value)
	logger.Debug("Update %s/%s field %q", collection, id, name)
	if err := s.store.UpdateMetadata(ctx, collection, id, update); err != nil {
		return fmt.Errorf("update field %q: %w", name, err)
	}
	return nil
}

// AddField adds a field that does not yet exist on the record.
// The record is fetched first so duplicates are rejected locally.
func (s *MetadataService) AddField(ctx context.Context, collection, id, name, value string) error {
	if err := requireTarget(collection, id); err != nil {
		return err
	}
	if name == "" || value == "" {
		return &domain.ValidationError{Field: name, Err: domain.ErrMissingInput}
	}

	record, err := s.store.GetRecord(ctx, collection, id)
	if err != nil {
		return fmt.Errorf("get record: %w", err)
	}
	if _, err := domain.ProposeAdd(record, name, value); err != nil {
		logger.Debug("Add field rejected: %v", err)
		return err
	}

	if err := s.store.AddField(ctx, collection, id, name, value); err != nil {
		return fmt.Errorf("add field %q: %w", name, err)
	}
	return nil
}

// RemoveField removes a custom field after confirmation.
func (s *MetadataService) RemoveField(
	ctx context.Context, collection, id, name string, confirm driving.Confirmer,
) error {
	if err := requireTarget(collection, id); err != nil {
		return err
	}
	if name == "" {
		return &domain.ValidationError{Err: domain.ErrMissingInput}
	}
	field, err := domain.ProposeRemove(nil, name)
	if err != nil {
		logger.Debug("Remove field rejected: %v", err)
		return err
	}

	if err := ask(ctx, confirm, driving.Prompt{
		Message: fmt.Sprintf("¿Eliminar el campo %q?", field),
	}); err != nil {
		return err
	}

	if err := s.store.RemoveField(ctx, collection, id, field); err != nil {
		return fmt.Errorf("remove field %q: %w", field, err)
	}
	return nil
}

// ReplaceAll replaces the record's complete field set.
func (s *MetadataService) ReplaceAll(ctx context.Context, collection, id string, fields map[string]any) error {
	if err := requireTarget(collection, id); err != nil {
		return err
	}

	update := domain.ProposeReplaceAll(fields)
	logger.Debug("Replace %s/%s metadata with %d fields", collection, id, len(update.Updates))
	if err := s.store.UpdateMetadata(ctx, collection, id, update); err != nil {
		return fmt.Errorf("replace metadata: %w", err)
	}
	return nil
}

// UpdateDocument replaces the record's indexed text.
func (s *MetadataService) UpdateDocument(ctx context.Context, collection, id, text string, regenerate bool) error {
	if err := requireTarget(collection, id); err != nil {
		return err
	}

	update := domain.DocumentUpdate{NewDocument: text, RegenerateEmbedding: regenerate}
	if err := s.store.UpdateDocument(ctx, collection, id, update); err != nil {
		return fmt.Errorf("update document: %w", err)
	}
	return nil
}

// DeleteRecord removes the record after confirmation.
func (s *MetadataService) DeleteRecord(ctx context.Context, collection, id string, confirm driving.Confirmer) error {
	if err := requireTarget(collection, id); err != nil {
		return err
	}

	if err := ask(ctx, confirm, driving.Prompt{
		Message:     fmt.Sprintf("¿ELIMINAR COMPLETAMENTE el item %q? Esta acción NO se puede deshacer.", id),
		Destructive: true,
	}); err != nil {
		return err
	}

	if err := s.store.DeleteRecord(ctx, collection, id); err != nil {
		return fmt.Errorf("delete record: %w", err)
	}
	return nil
}

// ask runs a confirmation, mapping a refusal to domain.ErrAborted.
func ask(ctx context.Context, confirm driving.Confirmer, prompt driving.Prompt) error {
	if confirm == nil {
		return domain.ErrConfirmationRequired
	}
	ok, err := confirm.Confirm(ctx, prompt)
	if err != nil {
		return fmt.Errorf("confirm: %w", err)
	}
	if !ok {
		return domain.ErrAborted
	}
	return nil
}

func requireTarget(collection, id string) error {
	if collection == "" {
		return fmt.Errorf("%w: collection is required", domain.ErrInvalidInput)
	}
	if id == "" {
		return fmt.Errorf("%w: item id is required", domain.ErrInvalidInput)
	}
	return nil
}
