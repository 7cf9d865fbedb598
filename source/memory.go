package source

// Memory is a Source over a borrowed byte slice. Reads return sub-slices
// without copying.
type Memory struct {
	data []byte
}

// NewMemory wraps data. The caller keeps ownership and must not modify data
// while the source is in use.
func NewMemory(data []byte) *Memory {
	return &Memory{data: data}
}

// Size implements Source.
func (m *Memory) Size() int64 {
	return int64(len(m.data))
}

// ReadBytes implements Source.
func (m *Memory) ReadBytes(off, n int64) ([]byte, error) {
	if err := CheckRange(off, n, int64(len(m.data))); err != nil {
		return nil, err
	}
	return m.data[off : off+n : off+n], nil
}

// ReadAll implements Source.
func (m *Memory) ReadAll() ([]byte, error) {
	return m.data, nil
}

// Bytes implements Mappable.
func (m *Memory) Bytes() []byte {
	return m.data
}
