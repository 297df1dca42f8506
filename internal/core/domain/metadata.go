package domain

// MetadataUpdate is the command sent to the record store to change a record's metadata.
//
// With ReplaceAll false the store merges Updates into the existing fields and
// only the named keys change. With ReplaceAll true, Updates becomes the complete
// field set and every key missing from it is dropped.
type MetadataUpdate struct {
	// Updates maps field names to their new values.
	Updates map[string]any `json:"metadata_updates"`

	// ReplaceAll selects full replacement instead of a merge.
	ReplaceAll bool `json:"replace_all"`
}

// Apply returns the metadata that results from applying the update.
// The input is left untouched.
func (u MetadataUpdate) Apply(current Metadata) Metadata {
	if u.ReplaceAll {
		return NewMetadata(u.Updates)
	}
	next := current.Clone()
	for k, v := range u.Updates {
		next.Set(k, v)
	}
	return next
}

// DocumentUpdate replaces a record's indexed text.
type DocumentUpdate struct {
	// NewDocument is the replacement text, passed through unchanged.
	NewDocument string `json:"new_document"`

	// RegenerateEmbedding asks the search engine to re-embed the text.
	RegenerateEmbedding bool `json:"regenerate_embedding"`
}

// ProposeUpdate builds a single-field partial update. It always succeeds.
func ProposeUpdate(fieldName string, newValue any) MetadataUpdate {
	return MetadataUpdate{
		Updates:    map[string]any{fieldName: newValue},
		ReplaceAll: false,
	}
}

// ProposeReplaceAll builds a full replacement. The caller must include every
// field the record should keep; anything omitted is dropped by the store.
func ProposeReplaceAll(full map[string]any) MetadataUpdate {
	updates := make(map[string]any, len(full))
	for k, v := range full {
		updates[k] = v
	}
	return MetadataUpdate{
		Updates:    updates,
		ReplaceAll: true,
	}
}

// ProposeAdd validates a new field against the record and builds the partial
// update that adds it. Empty names or values fail with ErrMissingInput;
// whitespace counts as present. A name already in the record, core or custom,
// fails with ErrDuplicateField.
func ProposeAdd(record *Record, fieldName, fieldValue string) (MetadataUpdate, error) {
	if fieldName == "" || fieldValue == "" {
		return MetadataUpdate{}, newValidationError(fieldName, ErrMissingInput)
	}
	if record != nil && record.Metadata.Has(fieldName) {
		return MetadataUpdate{}, newValidationError(fieldName, ErrDuplicateField)
	}
	return ProposeUpdate(fieldName, fieldValue), nil
}

// ProposeRemove validates a field removal. Core fields fail with
// ErrProtectedField regardless of the record. The record is accepted for
// symmetry with ProposeAdd and may be nil.
func ProposeRemove(_ *Record, fieldName string) (string, error) {
	if Classify(fieldName) == CoreField {
		return "", newValidationError(fieldName, ErrProtectedField)
	}
	return fieldName, nil
}
