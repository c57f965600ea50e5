package ipc

import (
	"fmt"
	"unsafe"

	"github.com/colvex/colvex/array"
	"github.com/colvex/colvex/bitmap"
	"github.com/colvex/colvex/buffer"
	"github.com/colvex/colvex/compress"
	"github.com/colvex/colvex/endian"
	"github.com/colvex/colvex/errs"
	"github.com/colvex/colvex/format"
	"github.com/colvex/colvex/internal/hash"
	"github.com/colvex/colvex/internal/options"
	"github.com/colvex/colvex/internal/pool"
	"github.com/colvex/colvex/section"
)

type writerConfig struct {
	bigEndian   bool
	compression format.CompressionType
	checksum    bool
	version     format.Version
	delta       bool
}

// WriterOption configures EncodeRecord and EncodeDictionary.
type WriterOption = options.Option[*writerConfig]

// WithWriterLittleEndian stores the body little-endian. This is the default.
func WithWriterLittleEndian() WriterOption {
	return options.NoError(func(cfg *writerConfig) { cfg.bigEndian = false })
}

// WithWriterBigEndian stores the body big-endian.
func WithWriterBigEndian() WriterOption {
	return options.NoError(func(cfg *writerConfig) { cfg.bigEndian = true })
}

// WithCompression compresses every buffer in the body with the given codec.
// Buffers that do not shrink are stored raw behind the sentinel prefix.
func WithCompression(ct format.CompressionType) WriterOption {
	return options.New(func(cfg *writerConfig) error {
		switch ct {
		case format.CompressionNone, format.CompressionZstd, format.CompressionS2, format.CompressionLZ4:
			cfg.compression = ct
			return nil
		default:
			return fmt.Errorf("%w: %s", errs.ErrInvalidCompressionType, ct)
		}
	})
}

// WithBodyChecksum populates the header checksum with the xxHash64 of the
// body so decoders can reject bit rot before touching buffer contents.
func WithBodyChecksum() WriterOption {
	return options.NoError(func(cfg *writerConfig) { cfg.checksum = true })
}

// WithVersion stamps the message with the given format version.
func WithVersion(v format.Version) WriterOption {
	return options.New(func(cfg *writerConfig) error {
		switch v {
		case format.Version1, format.Version2:
			cfg.version = v
			return nil
		default:
			return fmt.Errorf("%w: %#x", errs.ErrInvalidVersion, uint8(v))
		}
	})
}

// WithDeltaDictionary marks a dictionary batch as a delta batch. Decoders in
// this module reject delta batches; the flag exists for interoperability
// testing.
func WithDeltaDictionary() WriterOption {
	return options.NoError(func(cfg *writerConfig) { cfg.delta = true })
}

func newWriterConfig(opts []WriterOption) (*writerConfig, error) {
	cfg := &writerConfig{
		compression: format.CompressionNone,
		version:     format.Version2,
	}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return cfg, nil
}

// bodyBuilder accumulates the metadata records and body bytes of one message
// during a preorder walk of the arrays being encoded.
type bodyBuilder struct {
	engine    endian.EndianEngine
	sameOrder bool
	codec     compress.Codec // nil when compression is disabled
	nodes     []section.FieldNode
	descs     []section.BufferDescriptor
	body      *pool.ByteBuffer
}

func newBodyBuilder(cfg *writerConfig) (*bodyBuilder, error) {
	engine := endian.GetLittleEndianEngine()
	if cfg.bigEndian {
		engine = endian.GetBigEndianEngine()
	}

	var codec compress.Codec
	if cfg.compression != format.CompressionNone {
		c, err := compress.CreateCodec(cfg.compression, "message body")
		if err != nil {
			return nil, fmt.Errorf("%w: %s", errs.ErrInvalidCompressionType, cfg.compression)
		}
		codec = c
	}

	return &bodyBuilder{
		engine:    engine,
		sameOrder: endian.CompareNativeEndian(engine),
		codec:     codec,
		body:      pool.GetMessageBuffer(),
	}, nil
}

func (b *bodyBuilder) release() {
	pool.PutMessageBuffer(b.body)
	b.body = nil
}

func (b *bodyBuilder) addNode(length, nullCount int) {
	b.nodes = append(b.nodes, section.FieldNode{Length: int64(length), NullCount: int64(nullCount)})
}

// addBuffer appends one physical buffer to the body and records its
// descriptor. Under compression every non-empty buffer gets the 8-byte
// decompressed-length prefix; a buffer the codec cannot shrink is stored raw
// behind the -1 sentinel. Empty buffers are recorded as zero-length regions
// with no prefix.
func (b *bodyBuilder) addBuffer(payload []byte) error {
	start := int64(b.body.Len())

	if len(payload) == 0 {
		b.descs = append(b.descs, section.BufferDescriptor{Offset: start, Length: 0})
		return nil
	}

	if b.codec == nil {
		if _, err := b.body.Write(payload); err != nil {
			return err
		}
		b.descs = append(b.descs, section.BufferDescriptor{Offset: start, Length: int64(len(payload))})

		return nil
	}

	compressed, err := b.codec.Compress(payload)
	if err != nil {
		return fmt.Errorf("%w: %s", errs.ErrCompression, err)
	}

	prefix := b.body.ExtendOrGrow(8)
	stored := compressed
	// lz4 block compression may signal incompressible input with empty output.
	if len(compressed) == 0 || len(compressed) >= len(payload) {
		b.engine.PutUint64(prefix, uint64(rawBufferSentinel))
		stored = payload
	} else {
		b.engine.PutUint64(prefix, uint64(int64(len(payload))))
	}
	if _, err := b.body.Write(stored); err != nil {
		return err
	}

	b.descs = append(b.descs, section.BufferDescriptor{Offset: start, Length: int64(8 + len(stored))})

	return nil
}

func (b *bodyBuilder) addValidity(arr array.Array) error {
	if arr.NullCount() == 0 {
		// The slot is always present; zero nulls leave it empty.
		return b.addBuffer(nil)
	}

	v := arr.Validity()

	return b.addBuffer(v.Bytes()[:bitmap.ByteCount(v.Len())])
}

// scalarBytes returns the byte image of vals in the builder's byte order.
// When the target order matches the host the backing memory is returned
// directly; addBuffer copies it into the body without mutation.
func scalarBytes[T buffer.Scalar](b *bodyBuilder, vals []T) []byte {
	if len(vals) == 0 {
		return nil
	}

	var zero T
	elemSize := int(unsafe.Sizeof(zero))
	src := unsafe.Slice((*byte)(unsafe.Pointer(&vals[0])), len(vals)*elemSize)
	if b.sameOrder {
		return src
	}

	out := make([]byte, len(src))
	copy(out, src)
	endian.SwapInPlace(out, elemSize)

	return out
}

func bitmapBytes(bm *bitmap.Bitmap) []byte {
	return bm.Bytes()[:bitmap.ByteCount(bm.Len())]
}

// writeArray emits the node, validity slot, and kind-specific buffers of one
// array, recursing into children in the order the decoder consumes them.
func (b *bodyBuilder) writeArray(arr array.Array) error {
	b.addNode(arr.Len(), arr.NullCount())
	if err := b.addValidity(arr); err != nil {
		return err
	}

	switch a := arr.(type) {
	case *array.Boolean:
		return b.addBuffer(bitmapBytes(a.Values()))
	case *array.Primitive[int8]:
		return b.addBuffer(scalarBytes(b, a.Values()))
	case *array.Primitive[int16]:
		return b.addBuffer(scalarBytes(b, a.Values()))
	case *array.Primitive[int32]:
		return b.addBuffer(scalarBytes(b, a.Values()))
	case *array.Primitive[int64]:
		return b.addBuffer(scalarBytes(b, a.Values()))
	case *array.Primitive[uint8]:
		return b.addBuffer(scalarBytes(b, a.Values()))
	case *array.Primitive[uint16]:
		return b.addBuffer(scalarBytes(b, a.Values()))
	case *array.Primitive[uint32]:
		return b.addBuffer(scalarBytes(b, a.Values()))
	case *array.Primitive[uint64]:
		return b.addBuffer(scalarBytes(b, a.Values()))
	case *array.Primitive[float32]:
		return b.addBuffer(scalarBytes(b, a.Values()))
	case *array.Primitive[float64]:
		return b.addBuffer(scalarBytes(b, a.Values()))
	case *array.VarBinary[int32]:
		return writeVarBinary(b, a)
	case *array.VarBinary[int64]:
		return writeVarBinary(b, a)
	case *array.List[int32]:
		return writeList(b, a)
	case *array.List[int64]:
		return writeList(b, a)
	case *array.Struct:
		for i := 0; i < a.NumFields(); i++ {
			if err := b.writeArray(a.Field(i)); err != nil {
				return err
			}
		}

		return nil
	case *array.Dictionary[int8]:
		return b.addBuffer(scalarBytes(b, a.Keys().Values()))
	case *array.Dictionary[int16]:
		return b.addBuffer(scalarBytes(b, a.Keys().Values()))
	case *array.Dictionary[int32]:
		return b.addBuffer(scalarBytes(b, a.Keys().Values()))
	case *array.Dictionary[int64]:
		return b.addBuffer(scalarBytes(b, a.Keys().Values()))
	case *array.Dictionary[uint8]:
		return b.addBuffer(scalarBytes(b, a.Keys().Values()))
	case *array.Dictionary[uint16]:
		return b.addBuffer(scalarBytes(b, a.Keys().Values()))
	case *array.Dictionary[uint32]:
		return b.addBuffer(scalarBytes(b, a.Keys().Values()))
	case *array.Dictionary[uint64]:
		return b.addBuffer(scalarBytes(b, a.Keys().Values()))
	default:
		return fmt.Errorf("%w: cannot encode %s", errs.ErrUnsupportedType, arr.DataType())
	}
}

func writeVarBinary[O buffer.Offset](b *bodyBuilder, a *array.VarBinary[O]) error {
	offsets := a.Offsets()
	if err := b.addBuffer(scalarBytes(b, offsets)); err != nil {
		return err
	}

	return b.addBuffer(a.Data()[:int64(offsets[len(offsets)-1])])
}

func writeList[O buffer.Offset](b *bodyBuilder, a *array.List[O]) error {
	if err := b.addBuffer(scalarBytes(b, a.Offsets())); err != nil {
		return err
	}

	return b.writeArray(a.Values())
}

// assemble serializes the finished builder into one contiguous message.
func (b *bodyBuilder) assemble(cfg *writerConfig, kind format.MessageKind, dictID int64) []byte {
	header := section.NewMessageHeader(kind)
	header.Flag.Version = uint8(cfg.version)
	if cfg.bigEndian {
		header.Flag.WithBigEndian()
	}
	header.Flag.Compression = uint8(cfg.compression)
	if cfg.delta {
		header.Flag.WithDelta()
	}

	body := b.body.Bytes()
	header.DictionaryID = dictID
	header.NodeCount = uint32(len(b.nodes))
	header.BufferCount = uint32(len(b.descs))
	header.BodyLength = uint64(len(body))
	if cfg.checksum {
		header.Flag.WithChecksum()
		header.Checksum = hash.Sum64(body)
	}

	metaLen := section.HeaderSize +
		len(b.nodes)*section.FieldNodeSize +
		len(b.descs)*section.BufferDescriptorSize
	out := make([]byte, metaLen+len(body))

	copy(out, header.Bytes())
	pos := section.HeaderSize
	for _, n := range b.nodes {
		pos = n.WriteToSlice(out, pos, b.engine)
	}
	for _, d := range b.descs {
		pos = d.WriteToSlice(out, pos, b.engine)
	}
	copy(out[pos:], body)

	return out
}

// EncodeRecord serializes the columns of one record batch into a message.
// Columns are encoded in order; dictionary columns contribute only their
// keys, so the matching dictionary batches must be encoded separately.
func EncodeRecord(columns []array.Array, opts ...WriterOption) ([]byte, error) {
	cfg, err := newWriterConfig(opts)
	if err != nil {
		return nil, err
	}

	b, err := newBodyBuilder(cfg)
	if err != nil {
		return nil, err
	}
	defer b.release()

	for _, col := range columns {
		if err := b.writeArray(col); err != nil {
			return nil, err
		}
	}

	return b.assemble(cfg, format.KindRecordBatch, 0), nil
}

// EncodeDictionary serializes one dictionary's values array into a
// dictionary batch message registered under id.
func EncodeDictionary(id int64, values array.Array, opts ...WriterOption) ([]byte, error) {
	cfg, err := newWriterConfig(opts)
	if err != nil {
		return nil, err
	}

	b, err := newBodyBuilder(cfg)
	if err != nil {
		return nil, err
	}
	defer b.release()

	if err := b.writeArray(values); err != nil {
		return nil, err
	}

	return b.assemble(cfg, format.KindDictionaryBatch, id), nil
}
