package table

import "strings"

// =============================================================================
// Column Types
// =============================================================================

// Type is the semantic type tag of a column.
type Type int

// Column types supported by the loader.
const (
	// TypeString holds free-form text.
	TypeString Type = iota
	// TypeInt holds 64-bit integers.
	TypeInt
	// TypeFloat holds 64-bit floats.
	TypeFloat
	// TypeTimestamp holds points in time.
	TypeTimestamp
	// TypeCategorical holds strings drawn from a small label set.
	TypeCategorical
)

// String returns the string representation of the type.
func (t Type) String() string {
	switch t {
	case TypeString:
		return "string"
	case TypeInt:
		return "int"
	case TypeFloat:
		return "float"
	case TypeTimestamp:
		return "timestamp"
	case TypeCategorical:
		return "categorical"
	default:
		return "unknown"
	}
}

// ParseType converts a string to a Type value.
// Returns the type and true if valid, or TypeString and false if invalid.
func ParseType(s string) (Type, bool) {
	switch strings.ToLower(s) {
	case "string", "str", "text":
		return TypeString, true
	case "int", "integer":
		return TypeInt, true
	case "float", "double", "number":
		return TypeFloat, true
	case "timestamp", "datetime", "date":
		return TypeTimestamp, true
	case "categorical", "category":
		return TypeCategorical, true
	default:
		return TypeString, false
	}
}

// =============================================================================
// Schema
// =============================================================================

// Field is one (name, type) entry of a schema.
type Field struct {
	Name string
	Type Type
}

// Schema is an ordered sequence of fields. Order is significant: the
// schema-shape check compares it position by position against a table.
type Schema []Field

// Names returns the field names in schema order.
func (s Schema) Names() []string {
	names := make([]string, len(s))
	for i, f := range s {
		names[i] = f.Name
	}
	return names
}

// TypeOf returns the declared type for a field name.
// Returns TypeString and false when the name is not declared.
func (s Schema) TypeOf(name string) (Type, bool) {
	for _, f := range s {
		if f.Name == name {
			return f.Type, true
		}
	}
	return TypeString, false
}
