package source

import (
	"errors"
	"fmt"
	"io"

	"github.com/hupe1980/binparse/internal/fs"
)

// Handle is a Source over an io.ReadSeeker. Every read seeks to the
// requested offset and reads exactly the requested number of bytes.
//
// Handle moves the underlying file position and is not safe for concurrent
// use. Wrap it with Synchronized to share it between goroutines.
type Handle struct {
	rs     io.ReadSeeker
	size   int64
	closer io.Closer
}

// NewHandle wraps rs. The addressable size is the stream length at the time
// of the call.
func NewHandle(rs io.ReadSeeker) (*Handle, error) {
	size, err := rs.Seek(0, io.SeekEnd)
	if err != nil {
		return nil, fmt.Errorf("%w: seek end: %w", ErrIOFailure, err)
	}
	h := &Handle{rs: rs, size: size}
	if c, ok := rs.(io.Closer); ok {
		h.closer = c
	}
	return h, nil
}

// OpenHandle opens path on the local filesystem as a Handle.
func OpenHandle(path string) (*Handle, error) {
	return OpenHandleFS(fs.Default, path)
}

// OpenHandleFS opens path on fsys as a Handle.
func OpenHandleFS(fsys fs.FileSystem, path string) (*Handle, error) {
	f, err := fsys.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %w", ErrIOFailure, path, err)
	}
	h, err := NewHandle(f)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	return h, nil
}

// Size implements Source.
func (h *Handle) Size() int64 {
	return h.size
}

// ReadBytes implements Source.
func (h *Handle) ReadBytes(off, n int64) ([]byte, error) {
	if err := CheckRange(off, n, h.size); err != nil {
		return nil, err
	}
	if _, err := h.rs.Seek(off, io.SeekStart); err != nil {
		return nil, fmt.Errorf("%w: seek %d: %w", ErrIOFailure, off, err)
	}
	buf := make([]byte, n)
	got, err := io.ReadFull(h.rs, buf)
	switch {
	case err == nil:
		return buf, nil
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		return buf[:got], fmt.Errorf("%w: want %d bytes at %d, got %d", ErrTruncatedRead, n, off, got)
	default:
		return buf[:got], fmt.Errorf("%w: read %d bytes at %d: %w", ErrIOFailure, n, off, err)
	}
}

// ReadAll implements Source.
func (h *Handle) ReadAll() ([]byte, error) {
	return h.ReadBytes(0, h.size)
}

// Close closes the underlying stream if it is an io.Closer.
func (h *Handle) Close() error {
	if h.closer == nil {
		return nil
	}
	return h.closer.Close()
}
