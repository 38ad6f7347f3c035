/*
Package storage wraps the S3-compatible object store that holds user avatars.
Clients upload directly with presigned PUT URLs; the server only signs, inspects
and deletes objects.
*/
package storage

import (
	"context"
	"errors"
	"strings"
	"time"
)

// ErrObjectNotFound is returned when a key does not exist in the bucket.
var ErrObjectNotFound = errors.New("object not found")

// Config holds the bucket coordinates and credentials.
type Config struct {
	BucketName      string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string

	// PublicBaseURL is prefixed to object keys to build public links. Without it
	// links fall back to path-style URLs on Endpoint.
	PublicBaseURL string
}

// ObjectInfo is the subset of object metadata the server checks.
type ObjectInfo struct {
	ContentType string
	Size        int64
}

// Service is the object storage contract used by the HTTP layer.
type Service interface {
	// PresignUpload signs a PUT of exactly fileSize bytes of mimeType to key.
	PresignUpload(ctx context.Context, key, mimeType string, fileSize int64, duration time.Duration) (string, error)

	// Stat returns ErrObjectNotFound when key is absent.
	Stat(ctx context.Context, key string) (*ObjectInfo, error)

	Delete(ctx context.Context, key string) error

	// PublicURL returns the browser-facing URL of key.
	PublicURL(key string) string
}

// NewService returns the S3-backed Service for cfg.
func NewService(ctx context.Context, cfg Config) (Service, error) {
	return newS3Client(ctx, cfg)
}

func publicURL(cfg Config, key string) string {
	if key == "" {
		return ""
	}
	base := strings.TrimRight(cfg.PublicBaseURL, "/")
	if base == "" {
		base = strings.TrimRight(cfg.Endpoint, "/") + "/" + cfg.BucketName
	}
	return base + "/" + strings.TrimLeft(key, "/")
}
