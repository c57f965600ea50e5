// Package colvex implements a self-describing binary format for columnar
// record batches with typed, nested, nullable arrays.
//
// A colvex message carries one record batch or one dictionary batch: a fixed
// header, per-array field node records, per-buffer descriptor records, and a
// byte body holding the physical buffers. Arrays reconstruct recursively from
// the metadata alone; nesting (lists, structs) is expressed by node order and
// buffer slots, never by per-element framing.
//
// # Core Features
//
//   - Fixed-width primitives, booleans, utf8/binary (32- and 64-bit offsets),
//     lists, structs, and dictionary-encoded columns at any nesting depth
//   - Per-column validity bitmaps with a zero-copy fast path for columns
//     without nulls
//   - Optional stream compression (Zstd, S2, LZ4) with per-buffer raw
//     fallback when compression does not pay off
//   - Optional xxHash64 body checksum
//   - Both byte orders on the wire, decoded on any host
//
// # Basic Usage
//
// Encoding a record batch:
//
//	import "github.com/colvex/colvex"
//
//	ids, _ := array.NewPrimitive[int64](datatype.Int64, buffer.FromSlice([]int64{1, 2, 3}), nil)
//	names, _ := array.NewVarBinary[int32](datatype.String,
//	    buffer.FromSlice([]int32{0, 3, 6, 9}), []byte("foobarbaz"), nil)
//
//	msg, _ := colvex.EncodeRecord([]array.Array{ids, names},
//	    colvex.WithCompression(format.CompressionZstd),
//	)
//
// Decoding it back:
//
//	schema := datatype.NewSchema(
//	    datatype.NewField("id", datatype.Int64, false),
//	    datatype.NewField("name", datatype.String, false),
//	)
//	record, _ := colvex.DecodeRecord(msg, schema, colvex.NewDictionaries())
//	for i := 0; i < record.NumRows(); i++ {
//	    // ...
//	}
//
// # Package Structure
//
// This package provides convenient top-level wrappers around the ipc package,
// simplifying the most common use cases. For advanced usage, parse messages
// with ipc.DecodeMessage and drive ipc.ReadRecord and ipc.ReadDictionary
// directly.
package colvex

import (
	"github.com/colvex/colvex/array"
	"github.com/colvex/colvex/datatype"
	"github.com/colvex/colvex/format"
	"github.com/colvex/colvex/ipc"
)

// Dictionaries is the registry of dictionary value arrays shared between
// dictionary batches and the record batches referencing them.
type Dictionaries = ipc.Dictionaries

// Record is one decoded record batch.
type Record = ipc.Record

// ReaderOption configures record decoding.
type ReaderOption = ipc.ReaderOption

// WriterOption configures message encoding.
type WriterOption = ipc.WriterOption

// NewDictionaries creates an empty dictionary registry.
func NewDictionaries() *Dictionaries {
	return ipc.NewDictionaries()
}

// EncodeRecord serializes the columns of one record batch into a message.
//
// Parameters:
//   - columns: One array per schema field, all of the same length
//   - opts: Optional configuration (byte order, compression, checksum)
//
// Returns:
//   - []byte: The complete serialized message.
//   - error: An error if a column cannot be encoded.
//
// Dictionary columns contribute only their keys; encode the referenced
// dictionaries separately with EncodeDictionary and feed them to the decoder
// first.
func EncodeRecord(columns []array.Array, opts ...WriterOption) ([]byte, error) {
	return ipc.EncodeRecord(columns, opts...)
}

// EncodeDictionary serializes one dictionary's values array into a
// dictionary batch message registered under id.
func EncodeDictionary(id int64, values array.Array, opts ...WriterOption) ([]byte, error) {
	return ipc.EncodeDictionary(id, values, opts...)
}

// DecodeRecord parses data as one message and decodes it as a record batch
// against the schema.
//
// Parameters:
//   - data: One complete serialized message
//   - schema: The schema the batch was encoded against
//   - dicts: Registry holding every dictionary the schema references
//   - opts: Optional configuration (projection)
//
// Returns:
//   - *Record: The decoded record batch.
//   - error: A corruption, schema mismatch, or compression error.
func DecodeRecord(data []byte, schema *datatype.Schema, dicts *Dictionaries, opts ...ReaderOption) (*Record, error) {
	msg, err := ipc.DecodeMessage(data)
	if err != nil {
		return nil, err
	}

	return ipc.ReadRecord(msg, schema, dicts, opts...)
}

// DecodeDictionary parses data as one dictionary batch message and registers
// its values array in dicts. Record batches decoded afterwards resolve the
// dictionary by its id.
func DecodeDictionary(data []byte, schema *datatype.Schema, dicts *Dictionaries) error {
	msg, err := ipc.DecodeMessage(data)
	if err != nil {
		return err
	}

	return ipc.ReadDictionary(msg, schema, dicts)
}

// WithProjection restricts decoding to the given top-level column indexes.
func WithProjection(cols ...int) ReaderOption {
	return ipc.WithProjection(cols...)
}

// WithCompression compresses every buffer in the message body with the given
// codec.
func WithCompression(ct format.CompressionType) WriterOption {
	return ipc.WithCompression(ct)
}

// WithBodyChecksum populates the header checksum with the xxHash64 of the
// body.
func WithBodyChecksum() WriterOption {
	return ipc.WithBodyChecksum()
}

// WithWriterLittleEndian stores the body little-endian. This is the default.
func WithWriterLittleEndian() WriterOption {
	return ipc.WithWriterLittleEndian()
}

// WithWriterBigEndian stores the body big-endian.
func WithWriterBigEndian() WriterOption {
	return ipc.WithWriterBigEndian()
}

// WithVersion stamps the message with the given format version.
func WithVersion(v format.Version) WriterOption {
	return ipc.WithVersion(v)
}

// WithDeltaDictionary marks a dictionary batch as a delta batch.
func WithDeltaDictionary() WriterOption {
	return ipc.WithDeltaDictionary()
}
