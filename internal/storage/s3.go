package storage

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	appconfig "github.com/enbat/horizon-server-go/internal/config"
	apperrors "github.com/enbat/horizon-server-go/internal/errors"
)

// S3API is the slice of the S3 client the uploader needs.
type S3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// NewS3Client builds an S3 client for the configured S3-compatible endpoint
// (MinIO, R2, or AWS proper).
func NewS3Client(cfg *appconfig.Config) (*s3.Client, error) {
	resolver := aws.EndpointResolverWithOptionsFunc(func(service, region string, options ...interface{}) (aws.Endpoint, error) {
		return aws.Endpoint{
			URL:               cfg.S3Endpoint,
			HostnameImmutable: true,
		}, nil
	})

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(cfg.S3Region),
		awsconfig.WithEndpointResolverWithOptions(resolver),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.S3AccessKeyID,
			cfg.S3SecretAccessKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.S3UsePathStyle
	}), nil
}

// Uploader stores admin-uploaded images in the public bucket and hands back
// the URL to persist on the owning row.
type Uploader struct {
	client       S3API
	bucket       string
	assetBaseURL string
	maxBytes     int64
}

func NewUploader(client S3API, bucket, assetBaseURL string, maxBytes int64) *Uploader {
	return &Uploader{
		client:       client,
		bucket:       bucket,
		assetBaseURL: assetBaseURL,
		maxBytes:     maxBytes,
	}
}

// Upload validates and stores one image. Only image/* content is accepted
// and size may not exceed the configured ceiling. The object key is
// collision-resistant (millisecond timestamp plus random suffix, original
// extension preserved) so repeated uploads of the same filename never clash.
// Nothing is retried; a failed upload leaves no row field updated.
func (u *Uploader) Upload(ctx context.Context, folder, filename, contentType string, size int64, body io.Reader) (string, error) {
	if !strings.HasPrefix(contentType, "image/") {
		return "", apperrors.Upload("Please select an image file")
	}
	if size > u.maxBytes {
		return "", apperrors.Upload(fmt.Sprintf("File size must be less than %dMB", u.maxBytes>>20))
	}

	key := objectKey(folder, filename)

	_, err := u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(u.bucket),
		Key:           aws.String(key),
		Body:          body,
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(size),
		CacheControl:  aws.String("max-age=3600"),
	})
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("object upload failed")
		return "", apperrors.UploadFailed(err)
	}

	url := u.PublicURL(key)
	log.Info().Str("key", key).Int64("size", size).Msg("image uploaded")
	return url, nil
}

// PublicURL returns the browser-facing URL for a stored object.
func (u *Uploader) PublicURL(key string) string {
	return u.assetBaseURL + "/" + key
}

func objectKey(folder, filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:13]
	name := fmt.Sprintf("%d-%s%s", time.Now().UnixMilli(), suffix, ext)
	if folder == "" {
		return name
	}
	return folder + "/" + name
}
