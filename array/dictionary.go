package array

import (
	"fmt"

	"github.com/colvex/colvex/datatype"
	"github.com/colvex/colvex/errs"
)

// DictKey is the set of integer types a dictionary key array can hold.
type DictKey interface {
	~int8 | ~int16 | ~int32 | ~int64 | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

// Dictionary is a dictionary-encoded array: integer keys indexing into a
// shared values array. The validity bitmap lives on the keys.
type Dictionary[K DictKey] struct {
	baseArray
	keys   *Primitive[K]
	values Array
}

// NewDictionary creates a dictionary array.
//
// Enforced invariants:
//   - the keys array's type equals the declared index type
//   - the values array's type equals the declared value type exactly
//   - every key whose validity bit is set indexes within [0, values.Len());
//     an in-range requirement also applies to no-validity arrays. Keys under
//     a null bit are not inspected.
func NewDictionary[K DictKey](dtype *datatype.DictionaryType, keys *Primitive[K], values Array) (*Dictionary[K], error) {
	if !datatype.TypeEqual(dtype.IndexType(), keys.DataType()) {
		return nil, fmt.Errorf("%w: %s declares index type %s, keys have %s",
			errs.ErrSchemaMismatch, dtype, dtype.IndexType(), keys.DataType())
	}
	if !datatype.TypeEqual(dtype.ValueType(), values.DataType()) {
		return nil, fmt.Errorf("%w: %s declares value type %s, values have %s",
			errs.ErrSchemaMismatch, dtype, dtype.ValueType(), values.DataType())
	}

	for i, k := range keys.Values() {
		if keys.IsNull(i) {
			continue
		}
		if int64(k) < 0 || int64(k) >= int64(values.Len()) {
			return nil, fmt.Errorf("%w: key %d at row %d, dictionary holds %d values",
				errs.ErrDictionaryKeyOutOfRange, int64(k), i, values.Len())
		}
	}

	base, err := newBase(dtype, keys.Len(), keys.Validity())
	if err != nil {
		return nil, err
	}

	return &Dictionary[K]{baseArray: base, keys: keys, values: values}, nil
}

// Keys returns the key array.
func (a *Dictionary[K]) Keys() *Primitive[K] { return a.keys }

// Values returns the shared values array.
func (a *Dictionary[K]) Values() Array { return a.values }

// Value returns the resolved values-array index of row i. The result for a
// null row is unspecified.
func (a *Dictionary[K]) Value(i int) int {
	return int(a.keys.Value(i))
}
