// Package minio provides a MinIO backed blob store for embedding models.
package minio
