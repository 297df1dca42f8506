package domain

import "encoding/json"

// Record types written to the tipo field of created content.
const (
	TypeObra = "obra"
	TypeZona = "zona"
)

// ArtworkDraft is a new obra to be created in the record store.
type ArtworkDraft struct {
	Title          string         `json:"titulo"`
	Artist         string         `json:"artista"`
	Zone           string         `json:"zona"`
	Description    string         `json:"descripcion"`
	Technique      string         `json:"tecnica,omitempty"`
	Year           string         `json:"año,omitempty"`
	Dimensions     string         `json:"dimensiones,omitempty"`
	Materials      string         `json:"materiales,omitempty"`
	Style          string         `json:"estilo,omitempty"`
	Period         string         `json:"periodo_historico,omitempty"`
	Significance   string         `json:"significado_cultural,omitempty"`
	Condition      string         `json:"estado_conservacion,omitempty"`
	Location       string         `json:"ubicacion_fisica,omitempty"`
	EstimatedPrice string         `json:"precio_estimado,omitempty"`
	Extra          map[string]any `json:"metadata_adicional,omitempty"`
}

// Validate checks the fields the backend requires.
func (d ArtworkDraft) Validate() error {
	return requireFields(
		FieldTitulo, d.Title,
		FieldArtista, d.Artist,
		FieldZona, d.Zone,
		FieldDescripcion, d.Description,
	)
}

// Metadata returns the fields a stored obra carries.
func (d ArtworkDraft) Metadata() Metadata {
	return draftMetadata(d, TypeObra)
}

// ZoneDraft is a new zona to be created in the record store.
type ZoneDraft struct {
	Name        string         `json:"nombre"`
	Description string         `json:"descripcion"`
	Period      string         `json:"periodo,omitempty"`
	Theme       string         `json:"tematica,omitempty"`
	Features    string         `json:"caracteristicas,omitempty"`
	Extra       map[string]any `json:"metadata_adicional,omitempty"`
}

// Validate checks the fields the backend requires.
func (d ZoneDraft) Validate() error {
	return requireFields(FieldNombre, d.Name, FieldDescripcion, d.Description)
}

// Metadata returns the fields a stored zona carries.
func (d ZoneDraft) Metadata() Metadata {
	return draftMetadata(d, TypeZona)
}

// requireFields takes name/value pairs and reports the first empty value.
func requireFields(pairs ...string) error {
	for i := 0; i+1 < len(pairs); i += 2 {
		if pairs[i+1] == "" {
			return newValidationError(pairs[i], ErrRequiredField)
		}
	}
	return nil
}

// draftMetadata flattens a draft's JSON form, lifting metadata_adicional
// into top-level fields and tagging the record type.
func draftMetadata(draft any, tipo string) Metadata {
	fields := make(map[string]any)
	if data, err := json.Marshal(draft); err == nil {
		_ = json.Unmarshal(data, &fields)
	}
	if extra, ok := fields["metadata_adicional"].(map[string]any); ok {
		delete(fields, "metadata_adicional")
		for k, v := range extra {
			if _, taken := fields[k]; !taken {
				fields[k] = v
			}
		}
	}
	fields[FieldTipo] = tipo
	return NewMetadata(fields)
}
