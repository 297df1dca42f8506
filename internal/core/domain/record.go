package domain

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
)

// Record is a single collection item as held by the remote record store.
// It is consumed, never owned: every mutation goes through the store.
type Record struct {
	// ID is the opaque identifier, unique within a collection.
	ID string `json:"id"`

	// Metadata holds the item's fields.
	Metadata Metadata `json:"metadata"`

	// Document is the free text indexed for semantic search.
	Document string `json:"document"`
}

// Title returns the best display title, falling back to the ID.
func (r *Record) Title() string {
	if t := r.Metadata.Title(); t != "" {
		return t
	}
	return r.ID
}

// Subtitle returns the artist or type, or a placeholder when neither is set.
func (r *Record) Subtitle() string {
	if a := r.Metadata.Artist(); a != "" {
		return a
	}
	if t := r.Metadata.Type(); t != "" {
		return t
	}
	return "Sin descripción"
}

// Metadata is a record's field set. Fields named in the core schema are kept
// apart from free-form additional fields so the distinction survives every
// edit. Values are JSON scalars.
//
// The zero value is an empty, ready-to-use Metadata.
type Metadata struct {
	core       map[string]any
	additional map[string]any
}

// NewMetadata partitions a flat mapping into core and additional fields.
func NewMetadata(fields map[string]any) Metadata {
	var m Metadata
	for k, v := range fields {
		m.Set(k, v)
	}
	return m
}

// Has reports whether the field exists, regardless of its value.
func (m Metadata) Has(name string) bool {
	if _, ok := m.core[name]; ok {
		return true
	}
	_, ok := m.additional[name]
	return ok
}

// Get returns the raw value of a field.
func (m Metadata) Get(name string) (any, bool) {
	if v, ok := m.core[name]; ok {
		return v, true
	}
	v, ok := m.additional[name]
	return v, ok
}

// String returns a field formatted for display, or "" when absent.
func (m Metadata) String(name string) string {
	v, ok := m.Get(name)
	if !ok {
		return ""
	}
	return FormatValue(v)
}

// Set stores a field in the partition its name belongs to.
func (m *Metadata) Set(name string, value any) {
	if IsCoreField(name) {
		if m.core == nil {
			m.core = make(map[string]any)
		}
		m.core[name] = value
		return
	}
	if m.additional == nil {
		m.additional = make(map[string]any)
	}
	m.additional[name] = value
}

// Delete removes a field. Deleting an absent field is a no-op.
func (m *Metadata) Delete(name string) {
	delete(m.core, name)
	delete(m.additional, name)
}

// Len returns the total number of fields.
func (m Metadata) Len() int {
	return len(m.core) + len(m.additional)
}

// CoreKeys returns the present core fields in schema order.
func (m Metadata) CoreKeys() []string {
	keys := make([]string, 0, len(m.core))
	for _, name := range CoreFields() {
		if _, ok := m.core[name]; ok {
			keys = append(keys, name)
		}
	}
	return keys
}

// AdditionalKeys returns the custom fields sorted by name.
func (m Metadata) AdditionalKeys() []string {
	keys := make([]string, 0, len(m.additional))
	for k := range m.additional {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Keys returns core fields first, then custom fields.
func (m Metadata) Keys() []string {
	return append(m.CoreKeys(), m.AdditionalKeys()...)
}

// Additional returns a copy of the custom fields as display strings.
func (m Metadata) Additional() map[string]string {
	out := make(map[string]string, len(m.additional))
	for k, v := range m.additional {
		out[k] = FormatValue(v)
	}
	return out
}

// Map flattens both partitions into a single mapping.
func (m Metadata) Map() map[string]any {
	out := make(map[string]any, m.Len())
	for k, v := range m.core {
		out[k] = v
	}
	for k, v := range m.additional {
		out[k] = v
	}
	return out
}

// Clone returns an independent copy.
func (m Metadata) Clone() Metadata {
	return NewMetadata(m.Map())
}

// Title returns titulo, nombre or name, whichever is set first.
func (m Metadata) Title() string {
	return m.first(FieldTitulo, FieldNombre, FieldName)
}

// Artist returns artista or artist.
func (m Metadata) Artist() string {
	return m.first(FieldArtista, FieldArtist)
}

// Zone returns zona or zone.
func (m Metadata) Zone() string {
	return m.first(FieldZona, FieldZone)
}

// Type returns tipo or type.
func (m Metadata) Type() string {
	return m.first(FieldTipo, FieldType)
}

func (m Metadata) first(names ...string) string {
	for _, name := range names {
		if s := m.String(name); s != "" {
			return s
		}
	}
	return ""
}

// MarshalJSON encodes the metadata as a flat object.
func (m Metadata) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.Map())
}

// UnmarshalJSON decodes a flat object, partitioning its keys.
// The backend occasionally sends metadata as a JSON-encoded string.
func (m *Metadata) UnmarshalJSON(data []byte) error {
	var fields map[string]any
	if err := json.Unmarshal(data, &fields); err != nil {
		var encoded string
		if strErr := json.Unmarshal(data, &encoded); strErr != nil {
			return err
		}
		if encoded == "" {
			*m = Metadata{}
			return nil
		}
		if err := json.Unmarshal([]byte(encoded), &fields); err != nil {
			return fmt.Errorf("decoding embedded metadata: %w", err)
		}
	}
	*m = NewMetadata(fields)
	return nil
}

// FormatValue renders a metadata value for display.
func FormatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case bool:
		return strconv.FormatBool(val)
	case json.Number:
		return val.String()
	default:
		data, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprintf("%v", val)
		}
		return string(data)
	}
}
