package source

import (
	"encoding/binary"
	"errors"
	"fmt"
	"unsafe"
)

var (
	// ErrOutOfRange is returned when a read falls outside the source.
	ErrOutOfRange = errors.New("source: read out of range")
	// ErrTruncatedRead is returned when fewer bytes than requested arrive.
	ErrTruncatedRead = errors.New("source: truncated read")
	// ErrIOFailure wraps seek and read errors of the underlying handle.
	ErrIOFailure = errors.New("source: i/o failure")
)

// Source is a bounded, randomly addressable byte range.
type Source interface {
	// Size returns the total addressable length in bytes.
	Size() int64
	// ReadBytes returns exactly n bytes starting at off.
	// Mapped sources may return a view into their backing memory; callers
	// must not modify it.
	ReadBytes(off, n int64) ([]byte, error)
	// ReadAll returns the entire addressable range.
	ReadAll() ([]byte, error)
}

// Mappable is implemented by sources whose whole range is resident in memory.
type Mappable interface {
	Bytes() []byte
}

// Integer is the set of fixed-width integers ReadScalar can decode.
type Integer interface {
	~int8 | ~int16 | ~int32 | ~int64 | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

// CheckRange validates that [off, off+n) lies within a source of the given size.
func CheckRange(off, n, size int64) error {
	if off < 0 || n < 0 || off > size || n > size-off {
		return fmt.Errorf("%w: offset %d length %d size %d", ErrOutOfRange, off, n, size)
	}
	return nil
}

// ReadScalar reads a fixed-width integer at off in host byte order.
func ReadScalar[T Integer](src Source, off int64) (T, error) {
	var v T
	width := int64(unsafe.Sizeof(v))
	b, err := src.ReadBytes(off, width)
	if err != nil {
		return v, err
	}
	if int64(len(b)) < width {
		return v, fmt.Errorf("%w: want %d bytes at %d, got %d", ErrTruncatedRead, width, off, len(b))
	}
	return decodeScalar[T](b, binary.NativeEndian), nil
}

// ReadScalarOrder is ReadScalar with an explicit byte order.
func ReadScalarOrder[T Integer](src Source, off int64, order binary.ByteOrder) (T, error) {
	var v T
	width := int64(unsafe.Sizeof(v))
	b, err := src.ReadBytes(off, width)
	if err != nil {
		return v, err
	}
	if int64(len(b)) < width {
		return v, fmt.Errorf("%w: want %d bytes at %d, got %d", ErrTruncatedRead, width, off, len(b))
	}
	return decodeScalar[T](b, order), nil
}

func decodeScalar[T Integer](b []byte, order binary.ByteOrder) T {
	var v T
	switch unsafe.Sizeof(v) {
	case 1:
		return T(b[0])
	case 2:
		return T(order.Uint16(b))
	case 4:
		return T(order.Uint32(b))
	default:
		return T(order.Uint64(b))
	}
}
