// Package minio provides a BlobStore implementation using the MinIO client.
//
// It serves string tables (object files, archives, raw dumps) stored in MinIO
// or any other S3-compatible system such as Ceph, SeaweedFS, and Garage.
//
// # Basic Usage
//
//	client, err := minio.New("localhost:9000", &minio.Options{
//	    Creds:  credentials.NewStaticV4("minioadmin", "minioadmin", ""),
//	    Secure: false,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	store := minioblob.NewStore(client, "binaries", "dumps/")
//	blob, err := store.Open(ctx, "libfoo.so")
//	src := source.NewBlob(ctx, blob)
//	table, err := binparse.New(src, binparse.UTF8, strtabOff, strtabSize)
//
// Reads are issued as ranged GETs, so only the bytes a lookup touches are
// transferred. Wrap the store in a blobstore.CachingStore to serve repeated
// lookups from memory.
package minio
