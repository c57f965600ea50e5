package ipc

import (
	"fmt"

	"github.com/colvex/colvex/datatype"
	"github.com/colvex/colvex/errs"
)

// skip advances the cursor past one array of the given type without touching
// the body. It consumes exactly what read would consume so that arrays after
// the skipped one still line up with their metadata.
func skip(ctx *decodeContext, dtype datatype.DataType) error {
	switch dt := dtype.(type) {
	case *datatype.BooleanType,
		*datatype.Int8Type, *datatype.Int16Type, *datatype.Int32Type, *datatype.Int64Type,
		*datatype.Uint8Type, *datatype.Uint16Type, *datatype.Uint32Type, *datatype.Uint64Type,
		*datatype.Float32Type, *datatype.Float64Type:
		return skipFlat(ctx, dtype, 2)
	case *datatype.Utf8Type, *datatype.LargeUtf8Type, *datatype.BinaryType, *datatype.LargeBinaryType:
		return skipFlat(ctx, dtype, 3)
	case *datatype.ListType:
		return skipList(ctx, dt, dt.Elem())
	case *datatype.LargeListType:
		return skipList(ctx, dt, dt.Elem())
	case *datatype.StructType:
		return skipStruct(ctx, dt)
	case *datatype.DictionaryType:
		return skipFlat(ctx, dtype, 2)
	default:
		return fmt.Errorf("%w: cannot skip %s", errs.ErrUnsupportedType, dtype)
	}
}

func skipFlat(ctx *decodeContext, dtype datatype.DataType, bufCount int) error {
	if _, err := ctx.cur.popNode(dtype); err != nil {
		return err
	}
	for i := 0; i < bufCount; i++ {
		if _, err := ctx.cur.popBuffer(); err != nil {
			return err
		}
	}

	return nil
}

func skipList(ctx *decodeContext, dtype datatype.DataType, elem datatype.Field) error {
	if err := skipFlat(ctx, dtype, 2); err != nil {
		return err
	}

	return skip(ctx, elem.Type)
}

func skipStruct(ctx *decodeContext, dtype *datatype.StructType) error {
	if err := skipFlat(ctx, dtype, 1); err != nil {
		return err
	}
	for _, f := range dtype.Fields() {
		if err := skip(ctx, f.Type); err != nil {
			return err
		}
	}

	return nil
}
