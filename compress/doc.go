// Package compress provides the compression codecs applied to colvex message
// buffers.
//
// Compression is optional and stream-level: a message declares one codec and
// every buffer in its body is framed for that codec (the framing itself, the
// 8-byte decompressed-length prefix and the raw-bytes sentinel, belongs to
// the ipc package; this package only implements the codec call contract).
//
// Supported algorithms:
//   - None: no compression (fastest, largest)
//   - Zstd: excellent compression ratio, moderate speed
//   - S2: balanced compression and speed
//   - LZ4: fast block compression, moderate ratio
//
// The package defines three core interfaces:
//
//	type Compressor interface {
//	    Compress(data []byte) ([]byte, error)
//	}
//
//	type Decompressor interface {
//	    Decompress(data []byte) ([]byte, error)
//	}
//
//	type Codec interface {
//	    Compressor
//	    Decompressor
//	}
//
// Codecs are stateless values obtained from GetCodec or CreateCodec and are
// safe for concurrent use; pooled encoder/decoder state is managed
// internally.
package compress
