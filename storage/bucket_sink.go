package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// BucketSink stores objects in an S3 compatible bucket.
type BucketSink struct {
	client     *minio.Client
	bucket     string
	publicBase string
}

// NewBucketSink builds a client for endpointURL (scheme and host, no path).
// Object URLs are publicBase/<name>; publicBase defaults to the path-style bucket URL.
func NewBucketSink(endpointURL, accessKey, secretKey, bucket, publicBase string) (*BucketSink, error) {
	u, err := url.Parse(endpointURL)
	if err != nil {
		return nil, fmt.Errorf("parse storage url: %w", err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("storage url %q has no host", endpointURL)
	}
	if strings.Trim(u.Path, "/") != "" {
		return nil, fmt.Errorf("storage url %q must not contain a path", endpointURL)
	}

	client, err := minio.New(u.Host, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: u.Scheme == "https",
	})
	if err != nil {
		return nil, fmt.Errorf("create storage client: %w", err)
	}

	if publicBase == "" {
		publicBase = u.Scheme + "://" + u.Host + "/" + bucket
	}
	return &BucketSink{
		client:     client,
		bucket:     bucket,
		publicBase: strings.TrimSuffix(publicBase, "/"),
	}, nil
}

func (s *BucketSink) Backend() string { return "bucket" }

// Put uploads r under name and returns its public URL.
func (s *BucketSink) Put(ctx context.Context, name, contentType string, r io.Reader, size int64) (string, error) {
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	_, err := s.client.PutObject(ctx, s.bucket, name, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("put object %s/%s: %w", s.bucket, name, err)
	}
	return s.PublicURL(name), nil
}

func (s *BucketSink) Remove(ctx context.Context, name string) error {
	return s.client.RemoveObject(ctx, s.bucket, name, minio.RemoveObjectOptions{})
}

// PublicURL is the retrievable URL of a stored object.
func (s *BucketSink) PublicURL(name string) string {
	return s.publicBase + "/" + url.PathEscape(name)
}
