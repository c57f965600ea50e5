package ipc

import (
	"bytes"
	"testing"

	"github.com/colvex/colvex/array"
	"github.com/colvex/colvex/buffer"
	"github.com/colvex/colvex/compress"
	"github.com/colvex/colvex/datatype"
	"github.com/colvex/colvex/endian"
	"github.com/colvex/colvex/errs"
	"github.com/colvex/colvex/format"
	"github.com/colvex/colvex/section"
	"github.com/stretchr/testify/require"
)

func TestReadRecord_WrongKind(t *testing.T) {
	values := mustUtf8(t, []int32{0, 1}, "a", nil)
	data, err := EncodeDictionary(1, values)
	require.NoError(t, err)

	msg, err := DecodeMessage(data)
	require.NoError(t, err)

	schema := datatype.NewSchema(datatype.NewField("s", datatype.String, false))
	_, err = ReadRecord(msg, schema, NewDictionaries())
	require.ErrorIs(t, err, errs.ErrInvalidMessageKind)
}

func TestReadRecord_QueueNotDrained(t *testing.T) {
	columns := []array.Array{
		mustPrimitive(t, datatype.Int64, []int64{1, 2}, nil),
		mustPrimitive(t, datatype.Int64, []int64{3, 4}, nil),
	}
	data, err := EncodeRecord(columns)
	require.NoError(t, err)

	msg, err := DecodeMessage(data)
	require.NoError(t, err)

	// Schema declares one column; the second column's metadata stays queued.
	schema := datatype.NewSchema(datatype.NewField("a", datatype.Int64, false))
	_, err = ReadRecord(msg, schema, NewDictionaries())
	require.ErrorIs(t, err, errs.ErrQueueNotDrained)
	require.ErrorIs(t, err, errs.ErrCorrupted)
}

func TestReadRecord_MissingMetadata(t *testing.T) {
	data, err := EncodeRecord([]array.Array{mustPrimitive(t, datatype.Int64, []int64{1}, nil)})
	require.NoError(t, err)

	msg, err := DecodeMessage(data)
	require.NoError(t, err)

	schema := datatype.NewSchema(
		datatype.NewField("a", datatype.Int64, false),
		datatype.NewField("b", datatype.Int64, false),
	)
	_, err = ReadRecord(msg, schema, NewDictionaries())
	require.ErrorIs(t, err, errs.ErrNoFieldNodes)
}

func TestReadRecord_ColumnLengthMismatch(t *testing.T) {
	// The writer serializes whatever it is given; the reader enforces that
	// top-level columns agree on length.
	columns := []array.Array{
		mustPrimitive(t, datatype.Int32, []int32{1, 2}, nil),
		mustPrimitive(t, datatype.Int32, []int32{1, 2, 3}, nil),
	}
	data, err := EncodeRecord(columns)
	require.NoError(t, err)

	msg, err := DecodeMessage(data)
	require.NoError(t, err)

	schema := datatype.NewSchema(
		datatype.NewField("a", datatype.Int32, false),
		datatype.NewField("b", datatype.Int32, false),
	)
	_, err = ReadRecord(msg, schema, NewDictionaries())
	require.ErrorIs(t, err, errs.ErrLengthMismatch)
}

func TestReadRecord_Projection(t *testing.T) {
	child := mustPrimitive(t, datatype.Int32, []int32{10, 11, 12}, nil)
	listType := datatype.NewListType(datatype.NewField("item", datatype.Int32, false))
	lists, err := array.NewList[int32](listType, buffer.FromSlice([]int32{0, 1, 3}), child, nil)
	require.NoError(t, err)

	columns := []array.Array{
		mustPrimitive(t, datatype.Int64, []int64{1, 2}, nil),
		lists,
		mustUtf8(t, []int32{0, 2, 4}, "abcd", nil),
	}
	data, err := EncodeRecord(columns)
	require.NoError(t, err)

	schema := datatype.NewSchema(
		datatype.NewField("id", datatype.Int64, false),
		datatype.NewField("vals", listType, false),
		datatype.NewField("name", datatype.String, false),
	)

	t.Run("Skip nested column", func(t *testing.T) {
		rec := decodeRecord(t, data, schema, NewDictionaries(), WithProjection(0, 2))

		require.Equal(t, 2, rec.NumRows())
		require.Equal(t, []int64{1, 2}, rec.Column(0).(*array.Primitive[int64]).Values())
		require.Nil(t, rec.Column(1))
		require.Equal(t, "cd", rec.Column(2).(*array.VarBinary[int32]).ValueString(1))
	})

	t.Run("Single column", func(t *testing.T) {
		rec := decodeRecord(t, data, schema, NewDictionaries(), WithProjection(1))

		require.Nil(t, rec.Column(0))
		require.Nil(t, rec.Column(2))
		require.Equal(t, 2, rec.Column(1).(*array.List[int32]).ValueLen(1))
	})

	t.Run("Index out of range", func(t *testing.T) {
		msg, err := DecodeMessage(data)
		require.NoError(t, err)

		_, err = ReadRecord(msg, schema, NewDictionaries(), WithProjection(5))
		require.ErrorIs(t, err, errs.ErrSchemaMismatch)
	})

	t.Run("Negative index", func(t *testing.T) {
		msg, err := DecodeMessage(data)
		require.NoError(t, err)

		_, err = ReadRecord(msg, schema, NewDictionaries(), WithProjection(-1))
		require.ErrorIs(t, err, errs.ErrSchemaMismatch)
	})
}

func TestReadRecord_ProjectionSkipsNestedKinds(t *testing.T) {
	a := mustPrimitive(t, datatype.Int32, []int32{1, 2}, nil)
	structType := datatype.NewStructType(datatype.NewField("a", datatype.Int32, false))
	structCol, err := array.NewStruct(structType, 2, []array.Array{a}, nil)
	require.NoError(t, err)

	dictType := datatype.NewDictionaryType(datatype.Int32, datatype.String)
	dictValues := mustUtf8(t, []int32{0, 1, 2}, "ab", nil)
	keys, err := array.NewPrimitive[int32](datatype.Int32, buffer.FromSlice([]int32{0, 1}), nil)
	require.NoError(t, err)
	dictCol, err := array.NewDictionary[int32](dictType, keys, dictValues)
	require.NoError(t, err)

	tail := mustPrimitive(t, datatype.Int64, []int64{7, 8}, nil)

	data, err := EncodeRecord([]array.Array{structCol, dictCol, tail})
	require.NoError(t, err)

	schema := datatype.NewSchema(
		datatype.NewField("row", structType, false),
		datatype.NewDictField("tag", dictType, true, 9),
		datatype.NewField("id", datatype.Int64, false),
	)

	// Skipping a dictionary column must not require its dictionary to be
	// registered; both skipped columns must consume their exact metadata so
	// the tail column still lines up and the queues drain.
	rec := decodeRecord(t, data, schema, NewDictionaries(), WithProjection(2))

	require.Nil(t, rec.Column(0))
	require.Nil(t, rec.Column(1))
	require.Equal(t, []int64{7, 8}, rec.Column(2).(*array.Primitive[int64]).Values())
	require.Equal(t, 2, rec.NumRows())
}

func TestReadRecord_MissingNodesPerKind(t *testing.T) {
	data, err := EncodeRecord([]array.Array{mustPrimitive(t, datatype.Int64, []int64{1}, nil)})
	require.NoError(t, err)

	listType := datatype.NewListType(datatype.NewField("item", datatype.Int32, false))
	structType := datatype.NewStructType(datatype.NewField("a", datatype.Int32, false))
	dictType := datatype.NewDictionaryType(datatype.Int32, datatype.String)

	// One-column message, two-column schema: the second field's decode finds
	// the node queue exhausted whatever its physical kind.
	fields := []datatype.Field{
		datatype.NewField("b", datatype.Boolean, true),
		datatype.NewField("s", datatype.String, true),
		datatype.NewField("l", listType, true),
		datatype.NewField("r", structType, true),
		datatype.NewDictField("d", dictType, true, 1),
	}
	for _, field := range fields {
		t.Run(field.Type.Name(), func(t *testing.T) {
			msg, err := DecodeMessage(data)
			require.NoError(t, err)

			schema := datatype.NewSchema(datatype.NewField("a", datatype.Int64, false), field)
			_, err = ReadRecord(msg, schema, NewDictionaries())
			require.ErrorIs(t, err, errs.ErrNoFieldNodes)
			require.ErrorIs(t, err, errs.ErrCorrupted)
		})
	}
}

func TestDecodeMessage_Truncated(t *testing.T) {
	data, err := EncodeRecord([]array.Array{mustPrimitive(t, datatype.Int64, []int64{1, 2, 3}, nil)})
	require.NoError(t, err)

	t.Run("Body cut short", func(t *testing.T) {
		_, err := DecodeMessage(data[:len(data)-4])
		require.ErrorIs(t, err, errs.ErrCorrupted)
	})

	t.Run("Header only", func(t *testing.T) {
		_, err := DecodeMessage(data[:section.HeaderSize])
		require.ErrorIs(t, err, errs.ErrCorrupted)
	})

	t.Run("Shorter than header", func(t *testing.T) {
		_, err := DecodeMessage(data[:10])
		require.ErrorIs(t, err, errs.ErrInvalidHeaderSize)
	})
}

// legacyMessage builds a version 1 record batch for one utf8 column of
// length zero whose offsets buffer is empty, the layout old producers emitted
// for empty variable-length arrays.
func legacyMessage(t *testing.T, version format.Version) []byte {
	t.Helper()

	header := section.NewMessageHeader(format.KindRecordBatch)
	header.Flag.Version = uint8(version)
	header.NodeCount = 1
	header.BufferCount = 3

	engine := header.Flag.GetEndianEngine()
	out := make([]byte, section.HeaderSize+section.FieldNodeSize+3*section.BufferDescriptorSize)
	copy(out, header.Bytes())

	pos := section.FieldNode{}.WriteToSlice(out, section.HeaderSize, engine)
	for i := 0; i < 3; i++ {
		pos = section.BufferDescriptor{}.WriteToSlice(out, pos, engine)
	}

	return out
}

func TestLegacyOffsetsFallback(t *testing.T) {
	schema := datatype.NewSchema(datatype.NewField("name", datatype.String, true))

	t.Run("Version 1 substitutes offsets", func(t *testing.T) {
		rec := decodeRecord(t, legacyMessage(t, format.Version1), schema, NewDictionaries())

		got := rec.Column(0).(*array.VarBinary[int32])
		require.Equal(t, 0, got.Len())
	})

	t.Run("Version 2 rejects", func(t *testing.T) {
		msg, err := DecodeMessage(legacyMessage(t, format.Version2))
		require.NoError(t, err)

		_, err = ReadRecord(msg, schema, NewDictionaries())
		require.ErrorIs(t, err, errs.ErrCorrupted)
	})

	t.Run("Version 1 with real offsets decodes normally", func(t *testing.T) {
		col := mustUtf8(t, []int32{0, 2, 3}, "abc", nil)
		data, err := EncodeRecord([]array.Array{col}, WithVersion(format.Version1))
		require.NoError(t, err)

		rec := decodeRecord(t, data, schema, NewDictionaries())
		got := rec.Column(0).(*array.VarBinary[int32])
		require.Equal(t, "ab", got.ValueString(0))
		require.Equal(t, "c", got.ValueString(1))
	})
}

func newTestContext(t *testing.T, body []byte, descs []section.BufferDescriptor, ct format.CompressionType) *decodeContext {
	t.Helper()

	engine := endian.GetLittleEndianEngine()

	var codec compress.Codec
	if ct != format.CompressionNone {
		c, err := compress.CreateCodec(ct, "test")
		require.NoError(t, err)
		codec = c
	}

	return &decodeContext{
		cur:       newCursor(nil, descs),
		r:         bytes.NewReader(body),
		bodyLen:   int64(len(body)),
		engine:    engine,
		sameOrder: endian.CompareNativeEndian(engine),
		codec:     codec,
		version:   format.Version2,
		dicts:     NewDictionaries(),
	}
}

func TestReadBytes_BufferOutOfBounds(t *testing.T) {
	body := []byte{1, 2, 3, 4}

	cases := []section.BufferDescriptor{
		{Offset: 0, Length: 8},
		{Offset: 2, Length: 3},
		{Offset: -1, Length: 2},
		{Offset: 1, Length: -2},
	}
	for _, desc := range cases {
		ctx := newTestContext(t, body, []section.BufferDescriptor{desc}, format.CompressionNone)

		_, err := ctx.readBytes(1)
		require.ErrorIs(t, err, errs.ErrBufferOutOfBounds, "descriptor %+v", desc)
	}
}

func TestReadBytes_DecompressedSizeMismatch(t *testing.T) {
	codec, err := compress.CreateCodec(format.CompressionZstd, "test")
	require.NoError(t, err)

	payload := bytes.Repeat([]byte{0xAB}, 256)
	compressed, err := codec.Compress(payload)
	require.NoError(t, err)

	engine := endian.GetLittleEndianEngine()
	region := make([]byte, 8+len(compressed))
	// Declare one byte more than the codec will produce.
	engine.PutUint64(region, uint64(len(payload)+1))
	copy(region[8:], compressed)

	ctx := newTestContext(t, region,
		[]section.BufferDescriptor{{Offset: 0, Length: int64(len(region))}}, format.CompressionZstd)

	_, err = ctx.readBytes(len(payload))
	require.ErrorIs(t, err, errs.ErrDecompressedSize)
	require.ErrorIs(t, err, errs.ErrCompression)
}

func TestReadBytes_MissingLengthPrefix(t *testing.T) {
	region := []byte{1, 2, 3}
	ctx := newTestContext(t, region,
		[]section.BufferDescriptor{{Offset: 0, Length: 3}}, format.CompressionLZ4)

	_, err := ctx.readBytes(1)
	require.ErrorIs(t, err, errs.ErrCorrupted)
}

func TestReadBytes_RawSentinel(t *testing.T) {
	payload := []byte{0xDE, 0xAD, 0xBE, 0xEF}

	engine := endian.GetLittleEndianEngine()
	region := make([]byte, 8+len(payload))
	engine.PutUint64(region, uint64(rawBufferSentinel))
	copy(region[8:], payload)

	ctx := newTestContext(t, region,
		[]section.BufferDescriptor{{Offset: 0, Length: int64(len(region))}}, format.CompressionZstd)

	got, err := ctx.readBytes(len(payload))
	require.NoError(t, err)
	require.Equal(t, payload, got)
}

func TestAddBuffer_RawSentinel(t *testing.T) {
	// A single byte cannot shrink under any codec; the writer must store it
	// raw behind the sentinel prefix.
	cfg := &writerConfig{compression: format.CompressionZstd, version: format.Version2}
	b, err := newBodyBuilder(cfg)
	require.NoError(t, err)
	defer b.release()

	require.NoError(t, b.addBuffer([]byte{0x42}))
	require.Len(t, b.descs, 1)

	desc := b.descs[0]
	require.Equal(t, int64(9), desc.Length)

	body := b.body.Bytes()
	require.Equal(t, uint64(rawBufferSentinel), b.engine.Uint64(body[:8]))
	require.Equal(t, byte(0x42), body[8])
}

func TestAddBuffer_EmptyBuffer(t *testing.T) {
	cfg := &writerConfig{compression: format.CompressionLZ4, version: format.Version2}
	b, err := newBodyBuilder(cfg)
	require.NoError(t, err)
	defer b.release()

	// Zero-length buffers carry no prefix even under compression.
	require.NoError(t, b.addBuffer(nil))
	require.Equal(t, section.BufferDescriptor{Offset: 0, Length: 0}, b.descs[0])
	require.Equal(t, 0, b.body.Len())
}
