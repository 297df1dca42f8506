package domain

// DefaultCollection is the collection searched when none is given.
const DefaultCollection = "mac_info"

// Collection is a named group of records in the record store.
type Collection struct {
	// Name is the collection identifier.
	Name string `json:"name"`

	// Count is the number of items, when known.
	Count int `json:"count"`

	// Description is optional free text.
	Description string `json:"description,omitempty"`
}

// CollectionStats is the store's per-collection summary. Its shape is
// defined by the backend, so it is kept as an opaque mapping.
type CollectionStats map[string]any

// SearchOptions configures a semantic search against the record store.
type SearchOptions struct {
	// Collection is the collection to search (default DefaultCollection).
	Collection string

	// Type filters results by the tipo field.
	Type string

	// Limit is the maximum number of results (default 5).
	Limit int
}

// DefaultSearchLimit is the result count used when SearchOptions.Limit is unset.
const DefaultSearchLimit = 5

// Normalised returns the options with defaults filled in.
func (o SearchOptions) Normalised() SearchOptions {
	if o.Collection == "" {
		o.Collection = DefaultCollection
	}
	if o.Limit <= 0 {
		o.Limit = DefaultSearchLimit
	}
	return o
}
