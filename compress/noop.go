package compress

// NoOpCompressor bypasses data without compression.
//
// It backs format.CompressionNone and is also useful for measuring decode
// overhead without codec cost.
type NoOpCompressor struct{}

var _ Codec = (*NoOpCompressor)(nil)

// NewNoOpCompressor creates a new no-operation compressor that bypasses data.
func NewNoOpCompressor() NoOpCompressor {
	return NoOpCompressor{}
}

// Compress returns the input slice as-is, without processing or copying.
//
// The returned slice shares the input's memory; callers must not modify the
// input afterwards.
func (c NoOpCompressor) Compress(data []byte) ([]byte, error) {
	return data, nil
}

// Decompress returns the input slice as-is, without processing or copying.
//
// The returned slice shares the input's memory; callers must not modify the
// input afterwards.
func (c NoOpCompressor) Decompress(data []byte) ([]byte, error) {
	return data, nil
}
