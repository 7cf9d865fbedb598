package source

import "fmt"

// Section is a window [off, off+n) of another Source.
type Section struct {
	src Source
	off int64
	n   int64
}

// NewSection returns a Source addressing [off, off+n) of src. When src is
// memory resident the section is a Memory view.
func NewSection(src Source, off, n int64) (Source, error) {
	if err := CheckRange(off, n, src.Size()); err != nil {
		return nil, err
	}
	if m, ok := src.(Mappable); ok {
		return NewMemory(m.Bytes()[off : off+n : off+n]), nil
	}
	return &Section{src: src, off: off, n: n}, nil
}

// Size implements Source.
func (s *Section) Size() int64 {
	return s.n
}

// ReadBytes implements Source.
func (s *Section) ReadBytes(off, n int64) ([]byte, error) {
	if err := CheckRange(off, n, s.n); err != nil {
		return nil, fmt.Errorf("section: %w", err)
	}
	return s.src.ReadBytes(s.off+off, n)
}

// ReadAll implements Source.
func (s *Section) ReadAll() ([]byte, error) {
	return s.src.ReadBytes(s.off, s.n)
}
