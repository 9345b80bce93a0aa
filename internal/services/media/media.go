// Package media uploads user files (vendor gallery images, portfolio
// documents, quote attachments) to an S3-compatible object store and
// returns their public URLs.
package media

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/google/uuid"

	"github.com/bventy/platform/internal/config"
)

// MaxUploadSize caps a single upload at 10 MiB.
const MaxUploadSize = 10 << 20

var (
	ErrTooLarge         = errors.New("file exceeds upload size limit")
	ErrUnsupportedType  = errors.New("unsupported file type")
	errMissingSettings  = errors.New("media storage is not configured")
	allowedContentTypes = map[string]string{
		"image/jpeg":      ".jpg",
		"image/png":       ".png",
		"image/webp":      ".webp",
		"application/pdf": ".pdf",
	}
)

// Service uploads media to the configured bucket.
type Service struct {
	client    s3iface.S3API
	bucket    string
	publicURL string
	log       *slog.Logger
}

// New creates a media Service against the configured S3-compatible
// endpoint.
func New(cfg config.MediaStorage, log *slog.Logger) (*Service, error) {
	if cfg.Bucket == "" || cfg.Endpoint == "" {
		return nil, errMissingSettings
	}

	sess, err := session.NewSession(&aws.Config{
		Endpoint:         aws.String(cfg.Endpoint),
		Region:           aws.String(cfg.Region),
		Credentials:      credentials.NewStaticCredentials(cfg.AccessKey, cfg.SecretKey, ""),
		S3ForcePathStyle: aws.Bool(true),
	})
	if err != nil {
		return nil, fmt.Errorf("media.New: %w", err)
	}

	return &Service{
		client:    s3.New(sess),
		bucket:    cfg.Bucket,
		publicURL: strings.TrimRight(cfg.PublicURL, "/"),
		log:       log,
	}, nil
}

// Upload stores the file under a random key within the given folder
// ("vendors", "quotes", "avatars") and returns its public URL.
func (s *Service) Upload(ctx context.Context, folder, contentType string, data []byte) (string, error) {
	if len(data) > MaxUploadSize {
		return "", ErrTooLarge
	}
	ext, ok := allowedContentTypes[contentType]
	if !ok {
		return "", ErrUnsupportedType
	}

	key := path.Join(folder, uuid.NewString()+ext)
	_, err := s.client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("media.Upload: %w", err)
	}

	s.log.Info("uploaded media object", slog.String("key", key), slog.Int("size", len(data)))
	return s.publicURL + "/" + key, nil
}
