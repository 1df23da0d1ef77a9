package storage

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/google/uuid"

	"github.com/dom/videotube/internal/config"
)

const keyPrefix = "media"

// S3Storage implements MediaStorage backed by an S3-compatible service.
type S3Storage struct {
	client   *s3.Client
	uploader *manager.Uploader
	bucket   string
	baseURL  string
}

// NewS3Storage builds the client and multipart uploader for cfg.Bucket.
func NewS3Storage(ctx context.Context, cfg config.StorageConfig) (*S3Storage, error) {
	if strings.TrimSpace(cfg.Bucket) == "" {
		return nil, fmt.Errorf("s3 storage: bucket is required")
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("s3 storage: load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, clientOptions(cfg))
	partSize := partSizeBytes(cfg.PartSizeMB)
	uploader := manager.NewUploader(client, func(u *manager.Uploader) {
		u.PartSize = partSize
	})

	return &S3Storage{
		client:   client,
		uploader: uploader,
		bucket:   cfg.Bucket,
		baseURL:  strings.TrimSuffix(cfg.PublicBaseURL, "/"),
	}, nil
}

// clientOptions targets a custom endpoint (MinIO, R2 and the like) when one
// is configured. Without one the SDK resolves the regional AWS endpoint.
func clientOptions(cfg config.StorageConfig) func(*s3.Options) {
	endpoint := strings.TrimSpace(cfg.Endpoint)
	return func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
		o.UsePathStyle = cfg.PathStyle
	}
}

// partSizeBytes never goes below the multipart minimum S3 accepts.
func partSizeBytes(mb int) int64 {
	size := int64(mb) << 20
	if size < manager.MinUploadPartSize {
		return manager.MinUploadPartSize
	}
	return size
}

// Upload stores the file under a random key keeping its extension and
// returns its public location.
func (s *S3Storage) Upload(ctx context.Context, localPath string) (*Asset, error) {
	if localPath == "" {
		return nil, ErrNoFile
	}
	defer os.Remove(localPath)

	f, err := os.Open(localPath)
	if err != nil {
		return nil, fmt.Errorf("s3 storage open %s: %w", localPath, err)
	}
	defer f.Close()

	ext := strings.ToLower(filepath.Ext(localPath))
	key := path.Join(keyPrefix, uuid.NewString()+ext)

	input := &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   f,
		ACL:    s3types.ObjectCannedACLPublicRead,
	}
	if contentType := mime.TypeByExtension(ext); contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	if _, err := s.uploader.Upload(ctx, input); err != nil {
		return nil, fmt.Errorf("s3 storage upload %s: %w", key, err)
	}

	return &Asset{URL: s.urlFor(key)}, nil
}

// Delete removes the object behind a URL previously returned by Upload.
// An empty URL is a no-op.
func (s *S3Storage) Delete(ctx context.Context, url string) error {
	key := s.keyFor(url)
	if key == "" {
		return nil
	}

	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("s3 storage delete %s: %w", key, err)
	}
	return nil
}

func (s *S3Storage) urlFor(key string) string {
	if s.baseURL == "" {
		return key
	}
	return fmt.Sprintf("%s/%s", s.baseURL, key)
}

// keyFor reverses urlFor.
func (s *S3Storage) keyFor(url string) string {
	url = strings.TrimSpace(url)
	if url == "" {
		return ""
	}
	if s.baseURL != "" {
		url = strings.TrimPrefix(url, s.baseURL)
	}
	return strings.TrimLeft(url, "/")
}
