// Package s3 provides an Amazon S3 backed blob store for embedding models.
package s3
