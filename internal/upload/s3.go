// Package upload ships finished archives to object storage.
package upload

import (
	"context"
	"errors"
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// Uploader is the subset of manager.Uploader used by S3Target.
type Uploader interface {
	Upload(ctx context.Context, input *s3.PutObjectInput, opts ...func(*manager.Uploader)) (*manager.UploadOutput, error)
}

// S3Config contains configuration for an S3 upload target.
type S3Config struct {
	Bucket          string
	Region          string
	Endpoint        string
	Prefix          string
	AccessKeyID     string
	SecretAccessKey string
	ForcePathStyle  bool
}

// S3Target uploads local archive files to S3-compatible object storage.
type S3Target struct {
	bucket   string
	prefix   string
	uploader Uploader
	logger   *zap.Logger
}

func NewS3Target(ctx context.Context, logger *zap.Logger, cfg S3Config) (*S3Target, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("bucket is required")
	}

	var opts []func(*config.LoadOptions) error
	if cfg.Region != "" {
		opts = append(opts, config.WithRegion(cfg.Region))
	}
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	var s3Opts []func(*s3.Options)
	// R2, MinIO and friends
	if cfg.Endpoint != "" {
		s3Opts = append(s3Opts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		})
	}
	if cfg.ForcePathStyle {
		s3Opts = append(s3Opts, func(o *s3.Options) {
			o.UsePathStyle = true
		})
	}

	client := s3.NewFromConfig(awsCfg, s3Opts...)
	return NewS3TargetWithUploader(logger, cfg.Bucket, cfg.Prefix, manager.NewUploader(client)), nil
}

// NewS3TargetWithUploader creates a target around an existing uploader.
func NewS3TargetWithUploader(logger *zap.Logger, bucket, prefix string, uploader Uploader) *S3Target {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &S3Target{
		bucket:   bucket,
		prefix:   prefix,
		uploader: uploader,
		logger:   logger,
	}
}

func (t *S3Target) Name() string {
	if t.prefix != "" {
		return fmt.Sprintf("s3(%s/%s)", t.bucket, t.prefix)
	}
	return fmt.Sprintf("s3(%s)", t.bucket)
}

// Key returns the object key localPath is stored under.
func (t *S3Target) Key(localPath string) string {
	name := filepath.Base(localPath)
	if t.prefix != "" {
		return path.Join(t.prefix, name)
	}
	return name
}

// UploadFile streams localPath from fs to the bucket and returns its s3:// URL.
func (t *S3Target) UploadFile(ctx context.Context, fs afero.Fs, localPath string) (url string, err error) {
	f, err := fs.Open(localPath)
	if err != nil {
		return "", fmt.Errorf("failed to open %s for upload: %w", localPath, err)
	}
	defer func() {
		err = errors.Join(err, f.Close())
	}()

	key := t.Key(localPath)
	input := &s3.PutObjectInput{
		Bucket: aws.String(t.bucket),
		Key:    aws.String(key),
		Body:   f,
	}
	if contentType := contentTypeFromPath(localPath); contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	url = fmt.Sprintf("s3://%s/%s", t.bucket, key)
	if _, err := t.uploader.Upload(ctx, input); err != nil {
		return "", fmt.Errorf("failed to upload to %s: %w", url, err)
	}

	t.logger.Info("uploaded archive", zap.String("local_path", localPath), zap.String("url", url))
	return url, nil
}

func contentTypeFromPath(p string) string {
	switch strings.ToLower(path.Ext(filepath.ToSlash(p))) {
	case ".7z":
		return "application/x-7z-compressed"
	case ".tar":
		return "application/x-tar"
	case ".gz", ".tgz":
		return "application/gzip"
	case ".zst":
		return "application/zstd"
	default:
		return ""
	}
}
