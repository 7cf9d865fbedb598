// Package mmap maps object files into memory for zero-copy string-table access.
//
// # Usage
//
//	m, err := mmap.Open("libfoo.so")
//	if err != nil { ... }
//	defer m.Close()
//
//	// Borrow the whole file
//	data := m.Bytes()
//
//	// Or only the section holding a string table
//	strtab, _ := m.Region(shOffset, shSize)
//	strtab.Advise(mmap.AccessSequential)
//
// # Platform Support
//
//   - Unix (Linux, macOS, BSD): mmap(2) with madvise(2) for access hints
//   - Windows: CreateFileMapping/MapViewOfFile (advice is a no-op)
//
// # Thread Safety
//
// Mapping and Region are safe for concurrent read access. Close is idempotent.
// Slices obtained from Bytes must not be used after Close returns.
package mmap
