// Package s3 provides an S3 implementation of the blobstore.BlobStore interface.
//
// # Usage
//
//	cfg, err := config.LoadDefaultConfig(ctx)
//	store := s3.NewStore(awss3.NewFromConfig(cfg), "my-bucket", "dumps/")
//
//	blob, err := store.Open(ctx, "vmlinux")
//	table, err := binparse.New(source.NewBlob(ctx, blob), binparse.UTF8, off, size)
//
// # Features
//
//   - Range reads for efficient partial fetches
//   - Multipart uploads for large blobs
//   - Automatic pagination for listing
//   - Configurable prefix for multi-tenant isolation
package s3
