package domain

// FieldClass partitions metadata keys into the fixed schema and free-form extras.
type FieldClass int

const (
	// CustomField is any key outside the core schema. Freely addable and removable.
	CustomField FieldClass = iota

	// CoreField is part of the fixed schema. Never removable, always editable.
	CoreField
)

// String returns the string representation.
func (c FieldClass) String() string {
	if c == CoreField {
		return "core"
	}
	return "custom"
}

// Core field names. The backend stores Spanish names; the English
// aliases appear on items imported from older exports.
const (
	FieldTitulo      = "titulo"
	FieldArtista     = "artista"
	FieldAnio        = "año"
	FieldTecnica     = "tecnica"
	FieldDescripcion = "descripcion"
	FieldUbicacion   = "ubicacion"
	FieldZona        = "zona"
	FieldTipo        = "tipo"
	FieldNombre      = "nombre"

	FieldName        = "name"
	FieldArtist      = "artist"
	FieldYear        = "year"
	FieldTechnique   = "technique"
	FieldDescription = "description"
	FieldLocation    = "location"
	FieldZone        = "zone"
	FieldType        = "type"
)

// coreFields is the static membership set behind Classify.
var coreFields = map[string]struct{}{
	FieldTitulo:      {},
	FieldArtista:     {},
	FieldAnio:        {},
	FieldTecnica:     {},
	FieldDescripcion: {},
	FieldUbicacion:   {},
	FieldZona:        {},
	FieldTipo:        {},
	FieldNombre:      {},
	FieldName:        {},
	FieldArtist:      {},
	FieldYear:        {},
	FieldTechnique:   {},
	FieldDescription: {},
	FieldLocation:    {},
	FieldZone:        {},
	FieldType:        {},
}

// CoreFields returns the core field names in display order.
func CoreFields() []string {
	return []string{
		FieldTitulo, FieldNombre, FieldArtista, FieldAnio, FieldTecnica,
		FieldDescripcion, FieldUbicacion, FieldZona, FieldTipo,
		FieldName, FieldArtist, FieldYear, FieldTechnique,
		FieldDescription, FieldLocation, FieldZone, FieldType,
	}
}

// Classify reports whether a field name belongs to the core schema.
// Matching is exact and case-sensitive.
func Classify(fieldName string) FieldClass {
	if _, ok := coreFields[fieldName]; ok {
		return CoreField
	}
	return CustomField
}

// IsCoreField is shorthand for Classify(fieldName) == CoreField.
func IsCoreField(fieldName string) bool {
	return Classify(fieldName) == CoreField
}

// SuggestedFields returns commonly used custom fields offered when adding a field.
func SuggestedFields() []string {
	return []string{
		"precio_estimado",
		"estado_conservacion",
		"exposicion_actual",
		"fecha_adquisicion",
		"ubicacion_fisica",
		"prestado_a",
		"valor_asegurado",
		"fecha_restauracion",
		"procedencia",
		"dimensiones",
		"materiales",
		"periodo_historico",
		"significado_cultural",
	}
}
