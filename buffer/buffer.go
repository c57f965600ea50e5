// Package buffer provides the immutable typed buffers backing colvex arrays.
//
// A Buffer wraps a scalar slice that is owned by the buffer and never
// mutated after construction. Buffers may be shared freely across arrays and
// slices of arrays; the garbage collector extends the backing memory's
// lifetime to the last holder.
package buffer

// Scalar is the set of fixed-width element types a data buffer can hold.
type Scalar interface {
	~int8 | ~int16 | ~int32 | ~int64 |
		~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// Offset is the set of element types an offsets buffer can hold.
type Offset interface {
	~int32 | ~int64
}

// Buffer is an immutable, contiguous sequence of scalar elements.
type Buffer[T Scalar] struct {
	values []T
}

// FromSlice wraps values in a buffer. The buffer takes ownership; callers
// must not modify values afterwards.
func FromSlice[T Scalar](values []T) Buffer[T] {
	return Buffer[T]{values: values}
}

// Len returns the element count.
func (b Buffer[T]) Len() int { return len(b.values) }

// Values returns the backing slice. The slice must not be modified.
func (b Buffer[T]) Values() []T { return b.values }

// At returns the i-th element.
func (b Buffer[T]) At(i int) T { return b.values[i] }

// Last returns the final element. It panics on an empty buffer.
func (b Buffer[T]) Last() T { return b.values[len(b.values)-1] }
