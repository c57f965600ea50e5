package compress

// ZstdCompressor provides Zstandard compression for message buffers.
//
// Zstd trades compression speed for ratio, which suits archived or
// network-bound columnar data where buffers are written once and decoded
// many times.
//
// Two implementations back this type: a pure-Go one (klauspost/compress) and
// a cgo one (valyala/gozstd), selected by build tags in zstd_pure.go and
// zstd_cgo.go.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd compressor with default settings.
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
