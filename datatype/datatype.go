// Package datatype defines the logical type taxonomy for colvex arrays.
//
// A DataType describes the logical value domain of an array; its concrete Go
// type determines the physical layout (primitive, boolean, variable-length
// binary, list, struct, dictionary) the decoder must consume. Fields pair a
// DataType with a name, nullability, and the dictionary id mapping used by
// dictionary-encoded columns.
package datatype

import (
	"fmt"
	"strings"
)

// Type identifies a logical data type.
type Type uint8

const (
	BOOL Type = iota + 1
	INT8
	INT16
	INT32
	INT64
	UINT8
	UINT16
	UINT32
	UINT64
	FLOAT32
	FLOAT64
	UTF8
	LARGE_UTF8 //nolint: revive,staticcheck
	BINARY
	LARGE_BINARY //nolint: revive,staticcheck
	LIST
	LARGE_LIST //nolint: revive,staticcheck
	STRUCT
	DICTIONARY
)

// DataType describes the logical type of an array. Implementations are
// immutable; the concrete type determines the physical decode layout.
type DataType interface {
	ID() Type
	Name() string
	String() string
}

// FixedWidth is implemented by data types whose values occupy a fixed number
// of bytes in a data buffer.
type FixedWidth interface {
	DataType
	ByteWidth() int
}

// BooleanType represents bit-packed boolean values.
type BooleanType struct{}

func (*BooleanType) ID() Type       { return BOOL }
func (*BooleanType) Name() string   { return "bool" }
func (*BooleanType) String() string { return "bool" }

type Int8Type struct{}

func (*Int8Type) ID() Type       { return INT8 }
func (*Int8Type) Name() string   { return "int8" }
func (*Int8Type) String() string { return "int8" }
func (*Int8Type) ByteWidth() int { return 1 }

type Int16Type struct{}

func (*Int16Type) ID() Type       { return INT16 }
func (*Int16Type) Name() string   { return "int16" }
func (*Int16Type) String() string { return "int16" }
func (*Int16Type) ByteWidth() int { return 2 }

type Int32Type struct{}

func (*Int32Type) ID() Type       { return INT32 }
func (*Int32Type) Name() string   { return "int32" }
func (*Int32Type) String() string { return "int32" }
func (*Int32Type) ByteWidth() int { return 4 }

type Int64Type struct{}

func (*Int64Type) ID() Type       { return INT64 }
func (*Int64Type) Name() string   { return "int64" }
func (*Int64Type) String() string { return "int64" }
func (*Int64Type) ByteWidth() int { return 8 }

type Uint8Type struct{}

func (*Uint8Type) ID() Type       { return UINT8 }
func (*Uint8Type) Name() string   { return "uint8" }
func (*Uint8Type) String() string { return "uint8" }
func (*Uint8Type) ByteWidth() int { return 1 }

type Uint16Type struct{}

func (*Uint16Type) ID() Type       { return UINT16 }
func (*Uint16Type) Name() string   { return "uint16" }
func (*Uint16Type) String() string { return "uint16" }
func (*Uint16Type) ByteWidth() int { return 2 }

type Uint32Type struct{}

func (*Uint32Type) ID() Type       { return UINT32 }
func (*Uint32Type) Name() string   { return "uint32" }
func (*Uint32Type) String() string { return "uint32" }
func (*Uint32Type) ByteWidth() int { return 4 }

type Uint64Type struct{}

func (*Uint64Type) ID() Type       { return UINT64 }
func (*Uint64Type) Name() string   { return "uint64" }
func (*Uint64Type) String() string { return "uint64" }
func (*Uint64Type) ByteWidth() int { return 8 }

type Float32Type struct{}

func (*Float32Type) ID() Type       { return FLOAT32 }
func (*Float32Type) Name() string   { return "float32" }
func (*Float32Type) String() string { return "float32" }
func (*Float32Type) ByteWidth() int { return 4 }

type Float64Type struct{}

func (*Float64Type) ID() Type       { return FLOAT64 }
func (*Float64Type) Name() string   { return "float64" }
func (*Float64Type) String() string { return "float64" }
func (*Float64Type) ByteWidth() int { return 8 }

// Utf8Type represents variable-length UTF-8 strings with 32-bit offsets.
type Utf8Type struct{}

func (*Utf8Type) ID() Type       { return UTF8 }
func (*Utf8Type) Name() string   { return "utf8" }
func (*Utf8Type) String() string { return "utf8" }

// LargeUtf8Type represents variable-length UTF-8 strings with 64-bit offsets.
type LargeUtf8Type struct{}

func (*LargeUtf8Type) ID() Type       { return LARGE_UTF8 }
func (*LargeUtf8Type) Name() string   { return "large_utf8" }
func (*LargeUtf8Type) String() string { return "large_utf8" }

// BinaryType represents variable-length opaque bytes with 32-bit offsets.
type BinaryType struct{}

func (*BinaryType) ID() Type       { return BINARY }
func (*BinaryType) Name() string   { return "binary" }
func (*BinaryType) String() string { return "binary" }

// LargeBinaryType represents variable-length opaque bytes with 64-bit offsets.
type LargeBinaryType struct{}

func (*LargeBinaryType) ID() Type       { return LARGE_BINARY }
func (*LargeBinaryType) Name() string   { return "large_binary" }
func (*LargeBinaryType) String() string { return "large_binary" }

// ListType represents variable-length lists of a child type, delimited by
// 32-bit offsets into a single child array.
type ListType struct {
	elem Field
}

// NewListType creates a list type with the given element field.
func NewListType(elem Field) *ListType {
	return &ListType{elem: elem}
}

func (t *ListType) ID() Type     { return LIST }
func (t *ListType) Name() string { return "list" }
func (t *ListType) String() string {
	return fmt.Sprintf("list<%s: %s>", t.elem.Name, t.elem.Type)
}

// Elem returns the element field of the list.
func (t *ListType) Elem() Field { return t.elem }

// LargeListType is a ListType with 64-bit offsets.
type LargeListType struct {
	elem Field
}

// NewLargeListType creates a large list type with the given element field.
func NewLargeListType(elem Field) *LargeListType {
	return &LargeListType{elem: elem}
}

func (t *LargeListType) ID() Type     { return LARGE_LIST }
func (t *LargeListType) Name() string { return "large_list" }
func (t *LargeListType) String() string {
	return fmt.Sprintf("large_list<%s: %s>", t.elem.Name, t.elem.Type)
}

// Elem returns the element field of the list.
func (t *LargeListType) Elem() Field { return t.elem }

// StructType represents a nested type with named child fields, each backed by
// its own child array of identical length.
type StructType struct {
	fields []Field
}

// NewStructType creates a struct type from the given fields.
func NewStructType(fields ...Field) *StructType {
	return &StructType{fields: fields}
}

func (t *StructType) ID() Type     { return STRUCT }
func (t *StructType) Name() string { return "struct" }
func (t *StructType) String() string {
	var sb strings.Builder
	sb.WriteString("struct<")
	for i, f := range t.fields {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%s: %s", f.Name, f.Type)
	}
	sb.WriteString(">")

	return sb.String()
}

// Fields returns the child fields in declared order.
func (t *StructType) Fields() []Field { return t.fields }

// NumFields returns the number of child fields.
func (t *StructType) NumFields() int { return len(t.fields) }

// DictionaryType represents dictionary-encoded values: an integer key array
// indexing into a shared values array registered under a dictionary id.
type DictionaryType struct {
	index DataType
	value DataType
}

// NewDictionaryType creates a dictionary type with the given integer index
// type and value type. The index type must be a signed or unsigned integer
// primitive; the decoder rejects anything else.
func NewDictionaryType(index, value DataType) *DictionaryType {
	return &DictionaryType{index: index, value: value}
}

func (t *DictionaryType) ID() Type     { return DICTIONARY }
func (t *DictionaryType) Name() string { return "dictionary" }
func (t *DictionaryType) String() string {
	return fmt.Sprintf("dictionary<values: %s, indices: %s>", t.value, t.index)
}

// IndexType returns the key type.
func (t *DictionaryType) IndexType() DataType { return t.index }

// ValueType returns the values type.
func (t *DictionaryType) ValueType() DataType { return t.value }

// Shared singleton instances for the leaf types. Nested types carry child
// fields and are built per schema with their constructors.
var (
	Boolean     = &BooleanType{}
	Int8        = &Int8Type{}
	Int16       = &Int16Type{}
	Int32       = &Int32Type{}
	Int64       = &Int64Type{}
	Uint8       = &Uint8Type{}
	Uint16      = &Uint16Type{}
	Uint32      = &Uint32Type{}
	Uint64      = &Uint64Type{}
	Float32     = &Float32Type{}
	Float64     = &Float64Type{}
	String      = &Utf8Type{}
	LargeString = &LargeUtf8Type{}
	Bytes       = &BinaryType{}
	LargeBytes  = &LargeBinaryType{}
)
