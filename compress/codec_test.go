package compress

import (
	"bytes"
	"testing"

	"github.com/colvex/colvex/format"
	"github.com/stretchr/testify/require"
)

func testPayload() []byte {
	// Repetitive enough that every codec actually shrinks it.
	return bytes.Repeat([]byte("colvex buffer payload "), 256)
}

func TestCodecs_RoundTrip(t *testing.T) {
	types := []format.CompressionType{
		format.CompressionNone,
		format.CompressionZstd,
		format.CompressionS2,
		format.CompressionLZ4,
	}

	for _, ct := range types {
		t.Run(ct.String(), func(t *testing.T) {
			codec, err := CreateCodec(ct, "test")
			require.NoError(t, err)

			payload := testPayload()
			compressed, err := codec.Compress(payload)
			require.NoError(t, err)
			if ct != format.CompressionNone {
				require.Less(t, len(compressed), len(payload))
			}

			restored, err := codec.Decompress(compressed)
			require.NoError(t, err)
			require.Equal(t, payload, restored)
		})
	}
}

func TestCodecs_SmallInput(t *testing.T) {
	for _, ct := range []format.CompressionType{format.CompressionZstd, format.CompressionS2} {
		t.Run(ct.String(), func(t *testing.T) {
			codec, err := CreateCodec(ct, "test")
			require.NoError(t, err)

			payload := []byte{0x42}
			compressed, err := codec.Compress(payload)
			require.NoError(t, err)

			restored, err := codec.Decompress(compressed)
			require.NoError(t, err)
			require.Equal(t, payload, restored)
		})
	}
}

func TestLZ4_IncompressibleInput(t *testing.T) {
	// lz4 block compression never shrinks incompressible input: the output is
	// either empty or at least as large as the input. Callers fall back to
	// storing the raw bytes in both cases.
	codec := NewLZ4Compressor()

	payload := []byte{0x42}
	compressed, err := codec.Compress(payload)
	require.NoError(t, err)
	if len(compressed) == 0 {
		return
	}
	require.GreaterOrEqual(t, len(compressed), len(payload))

	restored, err := codec.Decompress(compressed)
	require.NoError(t, err)
	require.Equal(t, payload, restored)
}

func TestCreateCodec_Invalid(t *testing.T) {
	_, err := CreateCodec(format.CompressionType(0x7F), "test")
	require.Error(t, err)
}

func TestGetCodec(t *testing.T) {
	codec, err := GetCodec(format.CompressionS2)
	require.NoError(t, err)
	require.NotNil(t, codec)

	_, err = GetCodec(format.CompressionType(0x7F))
	require.Error(t, err)
}

func TestNoOp_PassThrough(t *testing.T) {
	codec := NewNoOpCompressor()
	payload := []byte("unchanged")

	compressed, err := codec.Compress(payload)
	require.NoError(t, err)
	require.Equal(t, payload, compressed)

	restored, err := codec.Decompress(compressed)
	require.NoError(t, err)
	require.Equal(t, payload, restored)
}
