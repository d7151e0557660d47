package compress

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecode(t *testing.T) {
	compressible := bytes.Repeat([]byte(`{"foo":"bar"}`), 200)
	tiny := []byte(`{"a":1}`)

	for _, typ := range []Type{None, LZ4, ZSTD} {
		t.Run(typ.String(), func(t *testing.T) {
			for _, in := range [][]byte{compressible, tiny, {}} {
				enc, err := Encode(typ, in)
				require.NoError(t, err)

				out, err := Decode(typ, enc)
				require.NoError(t, err)
				assert.Equal(t, len(in), len(out))
				assert.True(t, bytes.Equal(in, out))
			}
		})
	}
}

func TestEncodeShrinksCompressibleData(t *testing.T) {
	in := bytes.Repeat([]byte("payload "), 512)
	for _, typ := range []Type{LZ4, ZSTD} {
		enc, err := Encode(typ, in)
		require.NoError(t, err)
		assert.Less(t, len(enc), len(in), typ.String())
	}
}

func TestDecodeCorrupt(t *testing.T) {
	_, err := Decode(LZ4, []byte{1, 2})
	assert.ErrorIs(t, err, ErrCorrupt)

	enc, err := Encode(ZSTD, bytes.Repeat([]byte("x"), 1024))
	require.NoError(t, err)
	_, err = Decode(ZSTD, enc[:len(enc)-2])
	assert.ErrorIs(t, err, ErrCorrupt)
}

func TestParseType(t *testing.T) {
	for s, want := range map[string]Type{"": None, "none": None, "LZ4": LZ4, "zstd": ZSTD} {
		got, err := ParseType(s)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseType("snappy")
	assert.Error(t, err)
}
