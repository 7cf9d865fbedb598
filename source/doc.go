// Package source provides random-access byte sources for string-table parsing.
//
// A Source exposes a bounded, addressable byte range. Two families exist:
//
//   - Mapped sources (Memory, MappedFile) hold the whole range in memory and
//     answer reads with sub-slices. They implement Mappable and are safe for
//     concurrent use.
//   - Handle sources (Handle) own an io.ReadSeeker and serve each read with a
//     seek followed by a full read. They are not safe for concurrent use; wrap
//     them with Synchronized when a Handle must be shared.
//
// ReaderAt and Blob adapt io.ReaderAt values and blobstore blobs. Decompress
// inflates a compressed section into a Memory source.
//
// # Usage
//
//	src, err := source.MapFile("/usr/lib/libc.so.6")
//	if err != nil {
//	    return err
//	}
//	defer src.Close()
//
//	n, err := source.ReadScalar[uint32](src, 0x28)
package source
