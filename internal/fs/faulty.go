package fs

import (
	"errors"
	"os"
	"strings"
	"sync"
)

// ErrInjected is the default error returned by injected faults.
var ErrInjected = errors.New("injected fault error")

// Fault defines specific failure behavior.
type Fault struct {
	FailAfterBytes int64 // Fail reads once this many bytes were read from the file. -1 to disable.
	FailOnSeek     bool
	Err            error
}

// FaultyFS is a FileSystem wrapper that can inject errors.
type FaultyFS struct {
	FS      FileSystem
	mu      sync.Mutex
	rules   map[string]Fault // Filename pattern -> Fault
	Default Fault            // Fallback
}

// NewFaultyFS creates a new FaultyFS wrapping the provided FS (or Default if nil).
func NewFaultyFS(fs FileSystem) *FaultyFS {
	if fs == nil {
		fs = Default
	}
	return &FaultyFS{
		FS:    fs,
		rules: make(map[string]Fault),
		Default: Fault{
			FailAfterBytes: -1,
		},
	}
}

// AddRule adds a fault injection rule for files whose name contains pattern.
func (f *FaultyFS) AddRule(pattern string, fault Fault) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rules[pattern] = fault
}

func (f *FaultyFS) Open(name string) (File, error) {
	file, err := f.FS.Open(name)
	if err != nil {
		return nil, err
	}

	f.mu.Lock()
	fault := f.Default
	for pattern, rule := range f.rules {
		if strings.Contains(name, pattern) {
			fault = rule
		}
	}
	f.mu.Unlock()

	if fault.Err == nil {
		fault.Err = ErrInjected
	}
	return &faultyFile{File: file, fault: fault}, nil
}

func (f *FaultyFS) Stat(name string) (os.FileInfo, error) {
	return f.FS.Stat(name)
}

type faultyFile struct {
	File
	fault Fault
	mu    sync.Mutex
	read  int64
}

func (ff *faultyFile) budget(n int) (int, error) {
	ff.mu.Lock()
	defer ff.mu.Unlock()
	if ff.fault.FailAfterBytes < 0 {
		ff.read += int64(n)
		return n, nil
	}
	left := ff.fault.FailAfterBytes - ff.read
	if left <= 0 {
		return 0, ff.fault.Err
	}
	if int64(n) > left {
		n = int(left)
	}
	ff.read += int64(n)
	return n, nil
}

func (ff *faultyFile) Read(p []byte) (int, error) {
	n, err := ff.budget(len(p))
	if err != nil {
		return 0, err
	}
	return ff.File.Read(p[:n])
}

func (ff *faultyFile) ReadAt(p []byte, off int64) (int, error) {
	n, err := ff.budget(len(p))
	if err != nil {
		return 0, err
	}
	m, err := ff.File.ReadAt(p[:n], off)
	if err == nil && m < len(p) {
		// Short read caused by the fault budget.
		err = ff.fault.Err
	}
	return m, err
}

func (ff *faultyFile) Seek(offset int64, whence int) (int64, error) {
	if ff.fault.FailOnSeek {
		return 0, ff.fault.Err
	}
	return ff.File.Seek(offset, whence)
}
