/*
Package storage handles uploaded chat and profile images.

Images arrive from clients as base64 data URIs, are validated and decoded
server-side, and are written to an S3-compatible bucket. Stored objects are
referenced everywhere else by their key; the public URL is derived from the
configured asset base URL.
*/
package storage

import (
	"context"
	"time"
)

// ServiceConfig holds the settings required to reach the storage backend.
type ServiceConfig struct {
	S3BucketName      string
	S3Endpoint        string
	S3AccessKeyID     string
	S3SecretAccessKey string
}

// UploadTimeout bounds a single object upload.
const UploadTimeout = 30 * time.Second

// StorageService is the public interface for the image store.
type StorageService interface {
	// Upload writes the object under key with the given MIME type and
	// returns once it is durably stored.
	Upload(ctx context.Context, key string, mimeType string, data []byte) error

	// Delete removes the object with the given key.
	Delete(ctx context.Context, key string) error
}

// NewStorageService returns the S3-backed implementation.
func NewStorageService(cfg ServiceConfig) (StorageService, error) {
	return newS3Client(cfg)
}
