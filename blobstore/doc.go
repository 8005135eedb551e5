// Package blobstore abstracts where embedding model files live.
//
// The embedding loaders read models sequentially through the BlobStore
// interface, so the same code path serves local files (memory-mapped),
// in-memory fixtures, and S3/MinIO object storage. Remote stores can be
// wrapped with NewRateLimitedStore to bound download bandwidth.
package blobstore
