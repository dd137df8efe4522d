package storage

import "context"

// ObjectStorage captures the minimal operations the order archive needs.
type ObjectStorage interface {
	UploadObject(ctx context.Context, key string, contentType string, data []byte) error
}
