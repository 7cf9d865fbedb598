package source

import (
	"errors"
	"fmt"
	"io"
)

// ReaderAt is a Source over an io.ReaderAt of known size. It is safe for
// concurrent use when the underlying ReaderAt is.
type ReaderAt struct {
	r    io.ReaderAt
	size int64
}

// NewReaderAt wraps r, addressing [0, size).
func NewReaderAt(r io.ReaderAt, size int64) *ReaderAt {
	return &ReaderAt{r: r, size: size}
}

// Size implements Source.
func (s *ReaderAt) Size() int64 {
	return s.size
}

// ReadBytes implements Source.
func (s *ReaderAt) ReadBytes(off, n int64) ([]byte, error) {
	if err := CheckRange(off, n, s.size); err != nil {
		return nil, err
	}
	buf := make([]byte, n)
	got, err := s.r.ReadAt(buf, off)
	if int64(got) == n {
		return buf, nil
	}
	if err == nil || errors.Is(err, io.EOF) {
		return buf[:got], fmt.Errorf("%w: want %d bytes at %d, got %d", ErrTruncatedRead, n, off, got)
	}
	return buf[:got], fmt.Errorf("%w: read %d bytes at %d: %w", ErrIOFailure, n, off, err)
}

// ReadAll implements Source.
func (s *ReaderAt) ReadAll() ([]byte, error) {
	return s.ReadBytes(0, s.size)
}
