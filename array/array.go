// Package array defines the immutable array values produced by decoding.
//
// Every variant is built through a validating constructor that enforces the
// structural invariants of the format: monotonic offsets bounded by the
// referenced region, validity bitmaps matching the element count, struct
// children agreeing on length and declared type, and dictionary keys indexing
// inside the resolved values. A constructor error means no array is produced;
// partially-built values never escape.
//
// Arrays are immutable after construction. Children and buffers may be shared
// between arrays without copying.
package array

import (
	"fmt"

	"github.com/colvex/colvex/bitmap"
	"github.com/colvex/colvex/datatype"
	"github.com/colvex/colvex/errs"
)

// Array is the read surface common to every array variant.
type Array interface {
	// DataType returns the logical type of the array.
	DataType() datatype.DataType
	// Len returns the element count.
	Len() int
	// NullCount returns the number of null elements.
	NullCount() int
	// Validity returns the validity bitmap, or nil when every element is
	// valid. A nil bitmap is not the same value as an all-set bitmap, but
	// both mean zero nulls.
	Validity() *bitmap.Bitmap
	// IsValid reports whether element i is non-null.
	IsValid(i int) bool
	// IsNull reports whether element i is null.
	IsNull(i int) bool
}

// baseArray carries the state shared by all variants.
type baseArray struct {
	dtype    datatype.DataType
	length   int
	nulls    int
	validity *bitmap.Bitmap
}

func newBase(dtype datatype.DataType, length int, validity *bitmap.Bitmap) (baseArray, error) {
	if validity != nil && validity.Len() != length {
		return baseArray{}, fmt.Errorf("%w: bitmap has %d bits for %d elements",
			errs.ErrInvalidValidity, validity.Len(), length)
	}

	nulls := 0
	if validity != nil {
		nulls = validity.UnsetCount()
	}

	return baseArray{dtype: dtype, length: length, nulls: nulls, validity: validity}, nil
}

func (a *baseArray) DataType() datatype.DataType { return a.dtype }
func (a *baseArray) Len() int                    { return a.length }
func (a *baseArray) NullCount() int              { return a.nulls }
func (a *baseArray) Validity() *bitmap.Bitmap    { return a.validity }

func (a *baseArray) IsValid(i int) bool {
	return a.validity == nil || a.validity.Get(i)
}

func (a *baseArray) IsNull(i int) bool {
	return !a.IsValid(i)
}
