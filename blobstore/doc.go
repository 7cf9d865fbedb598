// Package blobstore provides read access to binaries stored locally or in
// object storage, so string tables can be resolved without first copying a
// whole file to local disk.
//
// # Built-in Implementations
//
//   - LocalStore: local filesystem, memory-mapped (implements Mappable)
//   - MemoryStore: in-memory blobs for tests (implements Mappable)
//   - minio.Store: MinIO and other S3-compatible object stores
//   - s3.Store: Amazon S3 with range reads
//   - CachingStore: block cache in front of any store
//
// Remote blobs are read with ranged GETs. String-table scans issue many small
// reads, so remote stores are normally wrapped in a CachingStore:
//
//	store := blobstore.NewCachingStore(s3Store, cache.NewLRUBlockCache(64<<20, nil), 64<<10)
//	blob, _ := store.Open(ctx, "build/libfoo.so")
//	src := source.NewBlob(ctx, blob)
//
// Implementations must be safe for concurrent use.
package blobstore
