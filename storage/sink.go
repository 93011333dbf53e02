// Package storage writes uploaded media to a bucket service or, when no bucket
// is configured, to a public directory on local disk.
package storage

import (
	"context"
	"io"

	"github.com/cppla/civicreport/config"
)

// Sink stores a named object and returns a URL it can be fetched from.
type Sink interface {
	Put(ctx context.Context, name, contentType string, r io.Reader, size int64) (string, error)
	Remove(ctx context.Context, name string) error
	// Backend names the sink for logs and metrics.
	Backend() string
}

// New picks the bucket sink when every storage setting is present, else the local fallback.
func New(cfg config.AppConfig) (Sink, error) {
	if cfg.RemoteStorageEnabled() {
		return NewBucketSink(cfg.StorageURL, cfg.StorageAccessKey, cfg.StorageSecretKey, cfg.StorageBucket, cfg.StoragePublicURL)
	}
	return NewLocalSink(cfg.UploadDir, LocalURLPrefix), nil
}
