package storage

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/prperemyshlev/videotube/internal/config"
	"go.uber.org/zap"
)

// ObjectUploader is the part of the S3 upload manager the store needs.
type ObjectUploader interface {
	Upload(ctx context.Context, input *s3.PutObjectInput, opts ...func(*manager.Uploader)) (*manager.UploadOutput, error)
}

// S3BlobStore stores uploads in an S3-compatible bucket.
type S3BlobStore struct {
	uploader ObjectUploader
	bucket   string
	baseURL  string
	logger   *zap.Logger
}

var _ BlobStore = (*S3BlobStore)(nil)

// NewS3BlobStore configures an uploader for the bucket in cfg.
// A custom endpoint switches the client to path-style addressing for MinIO and friends.
func NewS3BlobStore(ctx context.Context, cfg config.S3Config, logger *zap.Logger) (*S3BlobStore, error) {
	if strings.TrimSpace(cfg.Bucket) == "" {
		return nil, errors.New("s3 storage: bucket is required")
	}

	loadOpts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKeyID != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	uploader := manager.NewUploader(client, func(u *manager.Uploader) {
		u.PartSize = 10 * 1024 * 1024
		u.LeavePartsOnError = false
	})

	baseURL := strings.TrimSuffix(cfg.PublicBaseURL, "/")
	if baseURL == "" && cfg.Endpoint != "" {
		baseURL = strings.TrimSuffix(cfg.Endpoint, "/") + "/" + cfg.Bucket
	}
	if baseURL == "" {
		baseURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
	}

	return NewS3BlobStoreWithUploader(uploader, cfg.Bucket, baseURL, logger), nil
}

// NewS3BlobStoreWithUploader builds a store around an existing uploader.
func NewS3BlobStoreWithUploader(uploader ObjectUploader, bucket, baseURL string, logger *zap.Logger) *S3BlobStore {
	return &S3BlobStore{
		uploader: uploader,
		bucket:   bucket,
		baseURL:  strings.TrimSuffix(baseURL, "/"),
		logger:   logger,
	}
}

// Upload puts the file under a random key grouped by media type.
func (s *S3BlobStore) Upload(ctx context.Context, localPath string) *UploadResult {
	if localPath == "" {
		return nil
	}

	file, err := os.Open(localPath)
	if err != nil {
		s.logger.Warn("blob upload: cannot open local file", zap.String("path", localPath), zap.Error(err))
		return nil
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(localPath))
	contentType := mime.TypeByExtension(ext)
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	key := path.Join(mediaFolder(contentType), uuid.New().String()+ext)

	_, err = s.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        file,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		s.logger.Error("blob upload failed", zap.String("key", key), zap.Error(err))
		return nil
	}

	return &UploadResult{URL: s.baseURL + "/" + key}
}

func mediaFolder(contentType string) string {
	switch {
	case strings.HasPrefix(contentType, "video/"):
		return "videos"
	case strings.HasPrefix(contentType, "image/"):
		return "images"
	default:
		return "files"
	}
}
