// Package storage uploads media files to object storage.
package storage

import "context"

// UploadResult describes a stored object.
type UploadResult struct {
	URL string
	// Duration is the media length in seconds when the backend can report it.
	Duration *float64
}

// BlobStore uploads a local file and returns where it can be fetched from.
// Upload never fails loudly: any error is logged and reported as a nil result.
// Removing the local file is the caller's job.
type BlobStore interface {
	Upload(ctx context.Context, localPath string) *UploadResult
}
