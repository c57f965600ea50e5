package ipc

import (
	"fmt"

	"github.com/colvex/colvex/array"
	"github.com/colvex/colvex/bitmap"
	"github.com/colvex/colvex/buffer"
	"github.com/colvex/colvex/datatype"
	"github.com/colvex/colvex/errs"
	"github.com/colvex/colvex/format"
	"github.com/colvex/colvex/section"
)

// read decodes one array of the field's declared type, consuming exactly the
// nodes and buffers that type's physical kind requires. Nested kinds recurse
// depth-first into the same shared cursor. Every physical kind is dispatched
// explicitly; an unrecognized type is an error, never a silent no-op.
func read(ctx *decodeContext, field datatype.Field) (array.Array, error) {
	switch dt := field.Type.(type) {
	case *datatype.BooleanType:
		return readBoolean(ctx)
	case *datatype.Int8Type:
		return readPrimitive[int8](ctx, dt)
	case *datatype.Int16Type:
		return readPrimitive[int16](ctx, dt)
	case *datatype.Int32Type:
		return readPrimitive[int32](ctx, dt)
	case *datatype.Int64Type:
		return readPrimitive[int64](ctx, dt)
	case *datatype.Uint8Type:
		return readPrimitive[uint8](ctx, dt)
	case *datatype.Uint16Type:
		return readPrimitive[uint16](ctx, dt)
	case *datatype.Uint32Type:
		return readPrimitive[uint32](ctx, dt)
	case *datatype.Uint64Type:
		return readPrimitive[uint64](ctx, dt)
	case *datatype.Float32Type:
		return readPrimitive[float32](ctx, dt)
	case *datatype.Float64Type:
		return readPrimitive[float64](ctx, dt)
	case *datatype.Utf8Type:
		return readVarBinary[int32](ctx, dt)
	case *datatype.LargeUtf8Type:
		return readVarBinary[int64](ctx, dt)
	case *datatype.BinaryType:
		return readVarBinary[int32](ctx, dt)
	case *datatype.LargeBinaryType:
		return readVarBinary[int64](ctx, dt)
	case *datatype.ListType:
		return readList[int32](ctx, dt, dt.Elem())
	case *datatype.LargeListType:
		return readList[int64](ctx, dt, dt.Elem())
	case *datatype.StructType:
		return readStruct(ctx, dt)
	case *datatype.DictionaryType:
		return readDictionary(ctx, dt, field.DictID)
	default:
		return nil, fmt.Errorf("%w: %s", errs.ErrUnsupportedType, field.Type)
	}
}

// readPrimitive decodes a fixed-width scalar array: one node, the validity
// slot, one data buffer of exactly the node's length.
func readPrimitive[T buffer.Scalar](ctx *decodeContext, dtype datatype.FixedWidth) (array.Array, error) {
	node, err := ctx.cur.popNode(dtype)
	if err != nil {
		return nil, err
	}

	validity, err := ctx.readValidity(node)
	if err != nil {
		return nil, err
	}

	values, err := readBuffer[T](ctx, int(node.Length))
	if err != nil {
		return nil, err
	}

	return array.NewPrimitive[T](dtype, values, validity)
}

// readBoolean decodes a bit-packed boolean array: one node, the validity
// slot, one bit-packed data buffer.
func readBoolean(ctx *decodeContext) (array.Array, error) {
	node, err := ctx.cur.popNode(datatype.Boolean)
	if err != nil {
		return nil, err
	}

	validity, err := ctx.readValidity(node)
	if err != nil {
		return nil, err
	}

	values, err := ctx.readBitmapBuffer(int(node.Length))
	if err != nil {
		return nil, err
	}

	return array.NewBoolean(values, validity)
}

// readOffsets decodes the offsets buffer of count+1 entries. Version 1
// producers omitted the offsets of empty variable-length arrays; for them a
// failed read substitutes the default single-entry buffer. This is the only
// sanctioned silent substitution in the decoder.
func readOffsets[O buffer.Offset](ctx *decodeContext, count int) (buffer.Buffer[O], error) {
	offsets, err := readBuffer[O](ctx, count+1)
	if err != nil {
		if ctx.version == format.Version1 {
			return buffer.FromSlice([]O{0}), nil
		}

		return buffer.Buffer[O]{}, err
	}

	return offsets, nil
}

// readVarBinary decodes a variable-length binary or utf8 array: one node,
// the validity slot, the offsets buffer, then the data bytes sized by the
// final offset.
func readVarBinary[O buffer.Offset](ctx *decodeContext, dtype datatype.DataType) (array.Array, error) {
	node, err := ctx.cur.popNode(dtype)
	if err != nil {
		return nil, err
	}

	validity, err := ctx.readValidity(node)
	if err != nil {
		return nil, err
	}

	offsets, err := readOffsets[O](ctx, int(node.Length))
	if err != nil {
		return nil, err
	}

	data, err := ctx.readBytes(int(offsets.Last()))
	if err != nil {
		return nil, err
	}

	return array.NewVarBinary[O](dtype, offsets, data, validity)
}

// readList decodes a list array: one node, the validity slot, the offsets
// buffer, then exactly one child decoded recursively from the same cursor.
func readList[O buffer.Offset](ctx *decodeContext, dtype datatype.DataType, elem datatype.Field) (array.Array, error) {
	node, err := ctx.cur.popNode(dtype)
	if err != nil {
		return nil, err
	}

	validity, err := ctx.readValidity(node)
	if err != nil {
		return nil, err
	}

	offsets, err := readOffsets[O](ctx, int(node.Length))
	if err != nil {
		return nil, err
	}

	child, err := read(ctx, elem)
	if err != nil {
		return nil, err
	}

	return array.NewList[O](dtype, offsets, child, validity)
}

// readStruct decodes a struct array: one node, the validity slot, then one
// recursive child decode per declared field, in declared order. The
// constructor rejects children whose length or type disagrees with the
// declaration.
func readStruct(ctx *decodeContext, dtype *datatype.StructType) (array.Array, error) {
	node, err := ctx.cur.popNode(dtype)
	if err != nil {
		return nil, err
	}

	validity, err := ctx.readValidity(node)
	if err != nil {
		return nil, err
	}

	children := make([]array.Array, dtype.NumFields())
	for i, f := range dtype.Fields() {
		children[i], err = read(ctx, f)
		if err != nil {
			return nil, err
		}
	}

	return array.NewStruct(dtype, int(node.Length), children, validity)
}

// readDictionary decodes a dictionary-encoded array: one node, the validity
// slot, one keys buffer. The values array is not in this message; it is
// resolved from dictionaries registered by earlier dictionary batches.
func readDictionary(ctx *decodeContext, dtype *datatype.DictionaryType, dictID int64) (array.Array, error) {
	node, err := ctx.cur.popNode(dtype)
	if err != nil {
		return nil, err
	}

	validity, err := ctx.readValidity(node)
	if err != nil {
		return nil, err
	}

	values, ok := ctx.dicts.Lookup(dictID)
	if !ok {
		return nil, fmt.Errorf("%w: id %d referenced by %s", errs.ErrDictionaryNotFound, dictID, dtype)
	}

	switch idx := dtype.IndexType().(type) {
	case *datatype.Int8Type:
		return readDictKeys[int8](ctx, dtype, idx, node, validity, values)
	case *datatype.Int16Type:
		return readDictKeys[int16](ctx, dtype, idx, node, validity, values)
	case *datatype.Int32Type:
		return readDictKeys[int32](ctx, dtype, idx, node, validity, values)
	case *datatype.Int64Type:
		return readDictKeys[int64](ctx, dtype, idx, node, validity, values)
	case *datatype.Uint8Type:
		return readDictKeys[uint8](ctx, dtype, idx, node, validity, values)
	case *datatype.Uint16Type:
		return readDictKeys[uint16](ctx, dtype, idx, node, validity, values)
	case *datatype.Uint32Type:
		return readDictKeys[uint32](ctx, dtype, idx, node, validity, values)
	case *datatype.Uint64Type:
		return readDictKeys[uint64](ctx, dtype, idx, node, validity, values)
	default:
		return nil, fmt.Errorf("%w: dictionary index type %s", errs.ErrUnsupportedType, dtype.IndexType())
	}
}

func readDictKeys[K interface {
	buffer.Scalar
	array.DictKey
}](ctx *decodeContext, dtype *datatype.DictionaryType, idx datatype.FixedWidth,
	node section.FieldNode, validity *bitmap.Bitmap, values array.Array,
) (array.Array, error) {
	keysBuf, err := readBuffer[K](ctx, int(node.Length))
	if err != nil {
		return nil, err
	}

	keys, err := array.NewPrimitive[K](idx, keysBuf, validity)
	if err != nil {
		return nil, err
	}

	return array.NewDictionary[K](dtype, keys, values)
}
