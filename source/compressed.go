package source

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/klauspost/compress/zlib"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression identifies the codec of a compressed section.
type Compression uint8

const (
	// CompressionNone leaves the data as is.
	CompressionNone Compression = iota
	// CompressionZlib is a zlib stream (ELF ELFCOMPRESS_ZLIB sections).
	CompressionZlib
	// CompressionZstd is a zstd frame (ELF ELFCOMPRESS_ZSTD sections).
	CompressionZstd
	// CompressionLZ4 is a raw LZ4 block. The uncompressed size must be known.
	CompressionLZ4
)

// ErrUnknownCompression is returned for unsupported compression names or values.
var ErrUnknownCompression = errors.New("source: unknown compression")

// ParseCompression maps a codec name to a Compression.
func ParseCompression(name string) (Compression, error) {
	switch name {
	case "", "none":
		return CompressionNone, nil
	case "zlib":
		return CompressionZlib, nil
	case "zstd":
		return CompressionZstd, nil
	case "lz4":
		return CompressionLZ4, nil
	default:
		return CompressionNone, fmt.Errorf("%w: %q", ErrUnknownCompression, name)
	}
}

func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionZlib:
		return "zlib"
	case CompressionZstd:
		return "zstd"
	case CompressionLZ4:
		return "lz4"
	default:
		return fmt.Sprintf("compression(%d)", uint8(c))
	}
}

var zstdDecoderPool sync.Pool

func getZstdDecoder() (*zstd.Decoder, error) {
	if v := zstdDecoderPool.Get(); v != nil {
		return v.(*zstd.Decoder), nil
	}
	return zstd.NewReader(nil)
}

// Decompress reads the whole of src, inflates it with c and returns the
// result as a Memory source. uncompressedSize is required for LZ4 and, when
// positive, checked for the other codecs.
func Decompress(src Source, c Compression, uncompressedSize int64) (*Memory, error) {
	raw, err := src.ReadAll()
	if err != nil {
		return nil, err
	}

	var out []byte
	switch c {
	case CompressionNone:
		return NewMemory(raw), nil
	case CompressionZlib:
		zr, err := zlib.NewReader(bytes.NewReader(raw))
		if err != nil {
			return nil, fmt.Errorf("%w: zlib: %w", ErrIOFailure, err)
		}
		defer zr.Close()
		out, err = io.ReadAll(zr)
		if err != nil {
			return nil, fmt.Errorf("%w: zlib: %w", ErrIOFailure, err)
		}
	case CompressionZstd:
		dec, err := getZstdDecoder()
		if err != nil {
			return nil, fmt.Errorf("%w: zstd: %w", ErrIOFailure, err)
		}
		defer zstdDecoderPool.Put(dec)
		var dst []byte
		if uncompressedSize > 0 {
			dst = make([]byte, 0, uncompressedSize)
		}
		out, err = dec.DecodeAll(raw, dst)
		if err != nil {
			return nil, fmt.Errorf("%w: zstd: %w", ErrIOFailure, err)
		}
	case CompressionLZ4:
		if uncompressedSize <= 0 {
			return nil, fmt.Errorf("%w: lz4 requires the uncompressed size", ErrUnknownCompression)
		}
		out = make([]byte, uncompressedSize)
		n, err := lz4.UncompressBlock(raw, out)
		if err != nil {
			return nil, fmt.Errorf("%w: lz4: %w", ErrIOFailure, err)
		}
		out = out[:n]
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownCompression, c)
	}

	if uncompressedSize > 0 && int64(len(out)) != uncompressedSize {
		return nil, fmt.Errorf("%w: decompressed %d bytes, want %d", ErrTruncatedRead, len(out), uncompressedSize)
	}
	return NewMemory(out), nil
}
