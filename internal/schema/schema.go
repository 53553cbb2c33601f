// =============================================================================
// Fixed-Width to CSV Converter - Schema Model
// =============================================================================
//
// The schema describes how every line of a fixed-width file is sliced:
// an ordered list of fields, each with a name, a width in characters and a
// value kind, plus the total width of all fields.
//
// This package holds data only. Validation of schema files happens in the
// converter, which turns unvalidated Entry rows into Fields.
//
// =============================================================================

// Package schema models the column layout of a fixed-width file.
package schema

// =============================================================================
// FIELD KINDS
// =============================================================================

// Kind is the value type of a field.
type Kind int

const (
	// KindString values are passed through unchanged.
	KindString Kind = iota + 1

	// KindDate values are read as yyyy-MM-dd and written as dd/MM/yyyy.
	KindDate

	// KindNumeric values must parse as a floating-point number.
	KindNumeric
)

// String returns the schema token for the kind.
func (k Kind) String() string {
	switch k {
	case KindDate:
		return "date"
	case KindString:
		return "string"
	case KindNumeric:
		return "numeric"
	default:
		return "unknown"
	}
}

// ParseKind resolves a schema type token. Matching is case-sensitive.
func ParseKind(token string) (Kind, bool) {
	switch token {
	case "date":
		return KindDate, true
	case "string":
		return KindString, true
	case "numeric":
		return KindNumeric, true
	default:
		return 0, false
	}
}

// =============================================================================
// FIELD
// =============================================================================

// Field is one column of the fixed-width layout.
type Field struct {
	// Name is the column label, written verbatim as the CSV header cell.
	Name string

	// Width is the number of characters the field occupies. Always > 0.
	Width int

	// Kind selects how the sliced value is validated and reformatted.
	Kind Kind
}

// Entry is an unvalidated schema row as read from a schema source.
// Width and Type are still raw tokens.
type Entry struct {
	Label string
	Width string
	Type  string

	// Line is the 1-based line (or worksheet row) the entry came from.
	Line int
}

// =============================================================================
// SCHEMA
// =============================================================================

// Schema is an ordered list of fields and their combined width.
// The zero value is an empty schema ready for use.
type Schema struct {
	fields     []Field
	totalWidth int
}

// AddField appends a field and accumulates its width.
func (s *Schema) AddField(field Field) {
	s.fields = append(s.fields, field)
	s.totalWidth += field.Width
}

// Fields returns the fields in declaration order.
// The returned slice must not be modified.
func (s *Schema) Fields() []Field {
	return s.fields
}

// Len returns the number of fields.
func (s *Schema) Len() int {
	return len(s.fields)
}

// IsEmpty reports whether no field has been added.
func (s *Schema) IsEmpty() bool {
	return len(s.fields) == 0
}

// TotalWidth returns the sum of all field widths.
func (s *Schema) TotalWidth() int {
	return s.totalWidth
}

// Names returns the field names in declaration order.
func (s *Schema) Names() []string {
	names := make([]string, len(s.fields))
	for i, f := range s.fields {
		names[i] = f.Name
	}
	return names
}
