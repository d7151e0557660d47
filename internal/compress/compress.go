// Package compress implements self-describing block compression for stored
// payload bytes.
//
// Block format: [UncompressedSize uint32][CompressedSize uint32][Data...].
// A CompressedSize of 0 marks a block stored uncompressed.
package compress

import (
	"encoding/binary"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Type defines the compression algorithm used.
type Type uint8

const (
	// None stores blocks as-is (no header).
	None Type = 0
	// LZ4 uses LZ4 block compression (fast).
	LZ4 Type = 1
	// ZSTD uses ZSTD compression (better ratio).
	ZSTD Type = 2
)

const headerSize = 8

var (
	// ErrCorrupt is returned when a block cannot be decoded.
	ErrCorrupt = errors.New("compress: corrupt block")

	zstdEncoderPool sync.Pool
	zstdDecoderPool sync.Pool
)

// ParseType parses "none", "lz4" or "zstd" (case-insensitive, empty means none).
func ParseType(s string) (Type, error) {
	switch strings.ToLower(s) {
	case "", "none":
		return None, nil
	case "lz4":
		return LZ4, nil
	case "zstd":
		return ZSTD, nil
	default:
		return None, fmt.Errorf("compress: unknown type %q", s)
	}
}

// String returns the lower-case name of the type.
func (t Type) String() string {
	switch t {
	case LZ4:
		return "lz4"
	case ZSTD:
		return "zstd"
	default:
		return "none"
	}
}

func getZstdEncoder() *zstd.Encoder {
	if v := zstdEncoderPool.Get(); v != nil {
		return v.(*zstd.Encoder)
	}
	enc, _ := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	return enc
}

func getZstdDecoder() *zstd.Decoder {
	if v := zstdDecoderPool.Get(); v != nil {
		return v.(*zstd.Decoder)
	}
	dec, _ := zstd.NewReader(nil)
	return dec
}

// Encode compresses data with t.
// Falls back to an uncompressed block if compression doesn't help (ratio > 0.9).
func Encode(t Type, data []byte) ([]byte, error) {
	if t == None {
		return data, nil
	}

	var compressed []byte
	switch t {
	case LZ4:
		buf := make([]byte, lz4.CompressBlockBound(len(data)))
		n, err := lz4.CompressBlock(data, buf, nil)
		if err != nil {
			return nil, err
		}
		compressed = buf[:n]
	case ZSTD:
		enc := getZstdEncoder()
		compressed = enc.EncodeAll(data, nil)
		zstdEncoderPool.Put(enc)
	default:
		return nil, fmt.Errorf("compress: unknown type %d", t)
	}

	if len(compressed) == 0 || float64(len(compressed)) > float64(len(data))*0.9 {
		out := make([]byte, headerSize+len(data))
		binary.LittleEndian.PutUint32(out[0:], uint32(len(data)))
		copy(out[headerSize:], data)
		return out, nil
	}

	out := make([]byte, headerSize+len(compressed))
	binary.LittleEndian.PutUint32(out[0:], uint32(len(data)))
	binary.LittleEndian.PutUint32(out[4:], uint32(len(compressed)))
	copy(out[headerSize:], compressed)
	return out, nil
}

// Decode reverses Encode. The returned slice may alias data for None and
// uncompressed blocks.
func Decode(t Type, data []byte) ([]byte, error) {
	if t == None {
		return data, nil
	}
	if len(data) < headerSize {
		return nil, fmt.Errorf("%w: block too small for header", ErrCorrupt)
	}

	size := binary.LittleEndian.Uint32(data[0:])
	csize := binary.LittleEndian.Uint32(data[4:])

	if csize == 0 {
		if uint64(len(data)) < headerSize+uint64(size) {
			return nil, fmt.Errorf("%w: block data too small", ErrCorrupt)
		}
		return data[headerSize : headerSize+size], nil
	}
	if uint64(len(data)) < headerSize+uint64(csize) {
		return nil, fmt.Errorf("%w: compressed block data too small", ErrCorrupt)
	}

	src := data[headerSize : headerSize+csize]
	out := make([]byte, size)

	switch t {
	case LZ4:
		n, err := lz4.UncompressBlock(src, out)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
		}
		if uint32(n) != size {
			return nil, fmt.Errorf("%w: decompressed size mismatch", ErrCorrupt)
		}
		return out, nil
	case ZSTD:
		dec := getZstdDecoder()
		defer zstdDecoderPool.Put(dec)

		decoded, err := dec.DecodeAll(src, out[:0])
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
		}
		if uint32(len(decoded)) != size {
			return nil, fmt.Errorf("%w: decompressed size mismatch", ErrCorrupt)
		}
		return decoded, nil
	default:
		return nil, fmt.Errorf("compress: unknown type %d", t)
	}
}
