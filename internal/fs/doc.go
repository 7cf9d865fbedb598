// Package fs abstracts read-only file access for testability and fault injection.
//
//   - [File]: an open file usable as a positioned-read byte source
//   - [FileSystem]: opens and stats files
//
// # Implementations
//
//   - [LocalFS]: production implementation using the os package
//   - [FaultyFS]: test utility that injects read and seek failures
//
// Production code uses fs.Default:
//
//	f, err := fs.Default.Open(path)
//
// Tests inject [FaultyFS] to make handle-backed string tables fail mid-scan:
//
//	ffs := fs.NewFaultyFS(nil)
//	ffs.AddRule("strtab", fs.Fault{FailAfterBytes: 16})
//
// There is no context.Context here: local reads are not interruptible at the
// syscall level. Remote sources go through blobstore.Blob instead.
package fs
