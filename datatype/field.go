package datatype

import (
	"fmt"
	"strings"
)

// Field pairs a name with a data type and nullability. DictID carries the
// dictionary id used to resolve values when Type is a DictionaryType; it is
// ignored for every other type.
type Field struct {
	Name     string
	Type     DataType
	Nullable bool
	DictID   int64
}

// NewField creates a non-dictionary field.
func NewField(name string, dtype DataType, nullable bool) Field {
	return Field{Name: name, Type: dtype, Nullable: nullable}
}

// NewDictField creates a dictionary-encoded field bound to the given
// dictionary id.
func NewDictField(name string, dtype *DictionaryType, nullable bool, dictID int64) Field {
	return Field{Name: name, Type: dtype, Nullable: nullable, DictID: dictID}
}

func (f Field) String() string {
	if f.Nullable {
		return fmt.Sprintf("%s: %s (nullable)", f.Name, f.Type)
	}

	return fmt.Sprintf("%s: %s", f.Name, f.Type)
}

// Schema is an ordered set of top-level fields describing one record batch.
type Schema struct {
	fields []Field
}

// NewSchema creates a schema from the given fields.
func NewSchema(fields ...Field) *Schema {
	return &Schema{fields: fields}
}

// Fields returns the schema fields in declared order.
func (s *Schema) Fields() []Field { return s.fields }

// NumFields returns the number of top-level fields.
func (s *Schema) NumFields() int { return len(s.fields) }

// Field returns the i-th top-level field.
func (s *Schema) Field(i int) Field { return s.fields[i] }

func (s *Schema) String() string {
	parts := make([]string, len(s.fields))
	for i, f := range s.fields {
		parts[i] = f.String()
	}

	return "schema<" + strings.Join(parts, ", ") + ">"
}

// DictionaryValueType walks the schema tree and returns the value type of the
// dictionary field registered under id. The second return reports whether the
// id exists anywhere in the schema.
func (s *Schema) DictionaryValueType(id int64) (DataType, bool) {
	return dictValueType(s.fields, id)
}

func dictValueType(fields []Field, id int64) (DataType, bool) {
	for _, f := range fields {
		switch dt := f.Type.(type) {
		case *DictionaryType:
			if f.DictID == id {
				return dt.ValueType(), true
			}
		case *ListType:
			if vt, ok := dictValueType([]Field{dt.Elem()}, id); ok {
				return vt, true
			}
		case *LargeListType:
			if vt, ok := dictValueType([]Field{dt.Elem()}, id); ok {
				return vt, true
			}
		case *StructType:
			if vt, ok := dictValueType(dt.Fields(), id); ok {
				return vt, true
			}
		}
	}

	return nil, false
}

// TypeEqual reports whether two data types are structurally identical,
// including nested field names and nullability.
func TypeEqual(a, b DataType) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.ID() != b.ID() {
		return false
	}

	switch at := a.(type) {
	case *ListType:
		bt := b.(*ListType)
		return fieldEqual(at.Elem(), bt.Elem())
	case *LargeListType:
		bt := b.(*LargeListType)
		return fieldEqual(at.Elem(), bt.Elem())
	case *StructType:
		bt := b.(*StructType)
		if at.NumFields() != bt.NumFields() {
			return false
		}
		for i := range at.Fields() {
			if !fieldEqual(at.Fields()[i], bt.Fields()[i]) {
				return false
			}
		}

		return true
	case *DictionaryType:
		bt := b.(*DictionaryType)
		return TypeEqual(at.IndexType(), bt.IndexType()) && TypeEqual(at.ValueType(), bt.ValueType())
	default:
		// Leaf types carry no parameters; matching IDs imply equality.
		return true
	}
}

func fieldEqual(a, b Field) bool {
	return a.Name == b.Name && a.Nullable == b.Nullable && TypeEqual(a.Type, b.Type)
}

// IsInteger reports whether dtype is a signed or unsigned integer primitive.
// Dictionary key types must satisfy this.
func IsInteger(dtype DataType) bool {
	switch dtype.ID() {
	case INT8, INT16, INT32, INT64, UINT8, UINT16, UINT32, UINT64:
		return true
	default:
		return false
	}
}
