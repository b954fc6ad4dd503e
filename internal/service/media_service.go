package service

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"agency-site-be/internal/config"
	"agency-site-be/internal/entity"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
)

// IMediaURLBuilder turns a media row into a URL browsers can load.
type IMediaURLBuilder interface {
	URL(media *entity.Media) (string, error)
}

// NewMediaURLBuilder serves media from the public base URL, or through
// presigned S3 GET URLs when a bucket is configured.
func NewMediaURLBuilder(cfg config.MediaConfig) (IMediaURLBuilder, error) {
	if cfg.S3Bucket == "" {
		return &publicURLBuilder{base: strings.TrimRight(cfg.PublicBaseURL, "/")}, nil
	}

	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(cfg.S3Region),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}
	return newS3URLBuilder(s3.New(sess), cfg), nil
}

// NewStaticS3URLBuilder signs with fixed credentials (tests, local MinIO).
func NewStaticS3URLBuilder(cfg config.MediaConfig, accessKey, secretKey string) (IMediaURLBuilder, error) {
	sess, err := session.NewSession(&aws.Config{
		Region:      aws.String(cfg.S3Region),
		Credentials: credentials.NewStaticCredentials(accessKey, secretKey, ""),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}
	return newS3URLBuilder(s3.New(sess), cfg), nil
}

type publicURLBuilder struct {
	base string
}

func (b *publicURLBuilder) URL(media *entity.Media) (string, error) {
	return b.base + "/" + url.PathEscape(media.Filename), nil
}

type s3URLBuilder struct {
	client *s3.S3
	bucket string
	prefix string
	ttl    time.Duration
}

func newS3URLBuilder(client *s3.S3, cfg config.MediaConfig) *s3URLBuilder {
	return &s3URLBuilder{
		client: client,
		bucket: cfg.S3Bucket,
		prefix: cfg.S3Prefix,
		ttl:    cfg.PresignTTL,
	}
}

func (b *s3URLBuilder) URL(media *entity.Media) (string, error) {
	req, _ := b.client.GetObjectRequest(&s3.GetObjectInput{
		Bucket: aws.String(b.bucket),
		Key:    aws.String(b.prefix + media.Filename),
	})
	signed, err := req.Presign(b.ttl)
	if err != nil {
		return "", fmt.Errorf("failed to presign %s: %w", media.Filename, err)
	}
	return signed, nil
}
