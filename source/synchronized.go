package source

import "sync"

// Synchronized serializes access to a Source that is not safe for
// concurrent use, such as a Handle.
type Synchronized struct {
	mu  sync.Mutex
	src Source
}

// NewSynchronized wraps src.
func NewSynchronized(src Source) *Synchronized {
	return &Synchronized{src: src}
}

// Size implements Source.
func (s *Synchronized) Size() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.src.Size()
}

// ReadBytes implements Source.
func (s *Synchronized) ReadBytes(off, n int64) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.src.ReadBytes(off, n)
}

// ReadAll implements Source.
func (s *Synchronized) ReadAll() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.src.ReadAll()
}
