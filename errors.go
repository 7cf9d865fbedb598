package binparse

import (
	"errors"
	"fmt"

	"github.com/hupe1980/binparse/source"
)

var (
	// ErrOutOfRange is returned when an offset or length exceeds the source.
	ErrOutOfRange = source.ErrOutOfRange
	// ErrTruncatedRead is returned when the backend supplies fewer bytes than requested.
	ErrTruncatedRead = source.ErrTruncatedRead
	// ErrIOFailure wraps seek and read failures of the backend.
	ErrIOFailure = source.ErrIOFailure

	// ErrInvalidEncoding is returned when a code-unit run is not valid text.
	ErrInvalidEncoding = errors.New("binparse: invalid encoding")
	// ErrStringTooLong is returned when an entry exceeds the configured maximum length.
	ErrStringTooLong = errors.New("binparse: string exceeds maximum length")
	// ErrUnknownByteOrder is returned when the host byte order cannot be determined.
	ErrUnknownByteOrder = errors.New("binparse: unknown host byte order")
	// ErrEmptyEntry is returned by Lookup for entries without text.
	ErrEmptyEntry = errors.New("binparse: empty entry")
	// ErrUnknownEncoding is returned for unsupported encoding names or widths.
	ErrUnknownEncoding = errors.New("binparse: unknown encoding")
)

// ScanError records a failed scan and the region-relative offset it started at.
type ScanError struct {
	Offset int64
	Err    error
}

func (e *ScanError) Error() string {
	return fmt.Sprintf("scan at offset %d: %v", e.Offset, e.Err)
}

func (e *ScanError) Unwrap() error { return e.Err }

func isInvalidEncoding(err error) bool {
	return errors.Is(err, ErrInvalidEncoding)
}
