// Package archive uploads tagged copies to S3-compatible object storage.
package archive

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/bstardust/tadpoles-exif-tagger/internal/logger"
	"github.com/bstardust/tadpoles-exif-tagger/pkg/common"
)

// Config represents the connection configuration for the archive bucket.
// Archiving is optional: an empty Endpoint disables it.
type Config struct {
	Endpoint  string
	Region    string
	Bucket    string
	AccessKey string
	SecretKey string
	UseSSL    bool
	Prefix    string
}

// Enabled reports whether archiving has been requested.
func (c Config) Enabled() bool {
	return c.Endpoint != ""
}

// Validate checks the archive configuration before any upload is attempted.
func (c Config) Validate() error {
	if !c.Enabled() {
		return nil
	}
	if c.Bucket == "" {
		return common.NewConfigError("archive bucket name is required")
	}
	if err := ValidateBucketName(c.Bucket); err != nil {
		return err
	}
	if c.AccessKey == "" || c.SecretKey == "" {
		return common.NewConfigError("archive access key and secret key are required")
	}
	return nil
}

// ValidateBucketName checks the bucket name against S3 naming conventions.
func ValidateBucketName(bucketName string) error {
	if len(bucketName) < 3 || len(bucketName) > 63 {
		return common.NewConfigError("bucket name must be between 3 and 63 characters")
	}
	if strings.Contains(bucketName, " ") {
		return common.NewConfigError("bucket name cannot contain spaces")
	}
	if !isDNSCompatible(bucketName) {
		return common.NewConfigError("bucket name must be DNS compliant")
	}
	return nil
}

// isDNSCompatible checks if the bucket name is DNS compliant. Bucket names
// must be lowercase and can contain only letters, numbers, and hyphens.
func isDNSCompatible(name string) bool {
	for _, char := range name {
		if !(char >= 'a' && char <= 'z') && !(char >= '0' && char <= '9') && char != '-' && char != '.' {
			return false
		}
	}
	return true
}

// Client wraps a MinIO client scoped to one bucket.
type Client struct {
	client *minio.Client
	config Config
	retry  RetryConfig
}

// New connects to the archive endpoint and verifies the bucket exists.
func New(ctx context.Context, cfg Config) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	endpoint := cfg.Endpoint
	endpoint = strings.TrimPrefix(endpoint, "https://")
	endpoint = strings.TrimPrefix(endpoint, "http://")

	client, err := minio.New(endpoint, &minio.Options{
		Creds:        credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure:       cfg.UseSSL,
		Region:       cfg.Region,
		BucketLookup: minio.BucketLookupAuto,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create archive client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check if bucket exists: %w", err)
	}
	if !exists {
		return nil, common.NewArchiveError("bucket %s does not exist", cfg.Bucket)
	}

	logger.Info("Connected to archive endpoint %s, bucket %s", endpoint, cfg.Bucket)

	return &Client{
		client: client,
		config: cfg,
		retry:  DefaultRetryConfig(),
	}, nil
}

// UploadFile uploads one tagged copy, retrying transient failures.
func (c *Client) UploadFile(ctx context.Context, reader io.Reader, objectKey string, size int64, metadata map[string]string, contentType string) error {
	objectKey = c.objectKey(objectKey)

	if contentType == "" {
		contentType = "application/octet-stream"
	}

	opts := minio.PutObjectOptions{
		ContentType:  contentType,
		UserMetadata: metadata,
	}

	// PutObject consumes the reader, so only seekable readers can be retried.
	seeker, seekable := reader.(io.Seeker)

	upload := func() error {
		if seekable {
			if _, err := seeker.Seek(0, io.SeekStart); err != nil {
				return fmt.Errorf("failed to rewind reader: %w", err)
			}
		}
		info, err := c.client.PutObject(ctx, c.config.Bucket, objectKey, reader, size, opts)
		if err != nil {
			return err
		}
		logger.Debug("Archived %s (%d bytes, etag: %s)", objectKey, info.Size, info.ETag)
		return nil
	}

	if !seekable {
		if err := upload(); err != nil {
			return common.NewArchiveError("failed to upload %s: %v", objectKey, err)
		}
		return nil
	}

	if err := RetryWithBackoff(ctx, "archive upload "+objectKey, upload, c.retry); err != nil {
		return common.NewArchiveError("failed to upload %s: %v", objectKey, err)
	}
	return nil
}

// ObjectExists checks whether an object is already archived.
func (c *Client) ObjectExists(ctx context.Context, objectKey string) (bool, error) {
	objectKey = c.objectKey(objectKey)

	_, err := c.client.StatObject(ctx, c.config.Bucket, objectKey, minio.StatObjectOptions{})
	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return false, nil
		}
		return false, fmt.Errorf("failed to check if object exists: %w", err)
	}

	return true, nil
}

// objectKey returns the full object key with the configured prefix.
func (c *Client) objectKey(key string) string {
	if c.config.Prefix == "" {
		return key
	}

	prefix := strings.TrimSuffix(c.config.Prefix, "/")
	key = strings.TrimPrefix(key, "/")

	return path.Join(prefix, key)
}
