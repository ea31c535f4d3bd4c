package storage

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ErrBucketNotConfigured is returned when no bucket name is set.
var ErrBucketNotConfigured = errors.New("s3 bucket is not configured")

// S3Config describes the bucket uploads are presigned for.
type S3Config struct {
	Endpoint        string
	Region          string
	Bucket          string
	AccessKeyID     string
	SecretAccessKey string
	UsePathStyle    bool
	PublicBaseURL   string
	PresignExpiry   time.Duration
}

// PresignedUpload is a URL a client can PUT an object to, together with the URL the
// object will be readable from afterwards.
type PresignedUpload struct {
	UploadURL string    `json:"uploadUrl"`
	ImageURL  string    `json:"imageUrl"`
	Key       string    `json:"key"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// FilePresigner issues presigned PUT URLs for a single bucket.
type FilePresigner struct {
	presignClient *s3.PresignClient
	cfg           S3Config
}

// NewFilePresigner loads the AWS configuration and builds a presign client. Static
// credentials are used when both keys are set, otherwise the default chain applies.
func NewFilePresigner(ctx context.Context, cfg S3Config) (*FilePresigner, error) {
	if cfg.Bucket == "" {
		return nil, ErrBucketNotConfigured
	}
	if cfg.PresignExpiry <= 0 {
		cfg.PresignExpiry = 15 * time.Minute
	}

	loadOpts := []func(*config.LoadOptions) error{
		config.WithRegion(cfg.Region),
	}
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("s3: load config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.UsePathStyle
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})

	return &FilePresigner{
		presignClient: s3.NewPresignClient(client),
		cfg:           cfg,
	}, nil
}

// PresignUpload returns a presigned PUT for objectKey restricted to contentType.
func (p *FilePresigner) PresignUpload(ctx context.Context, objectKey, contentType string) (*PresignedUpload, error) {
	request, err := p.presignClient.PresignPutObject(
		ctx,
		&s3.PutObjectInput{
			Bucket:      aws.String(p.cfg.Bucket),
			Key:         aws.String(objectKey),
			ContentType: aws.String(contentType),
		},
		func(opts *s3.PresignOptions) {
			opts.Expires = p.cfg.PresignExpiry
		},
	)
	if err != nil {
		return nil, err
	}

	return &PresignedUpload{
		UploadURL: request.URL,
		ImageURL:  p.PublicURL(objectKey),
		Key:       objectKey,
		ExpiresAt: time.Now().Add(p.cfg.PresignExpiry).UTC(),
	}, nil
}

// PublicURL is where objectKey can be fetched once uploaded.
func (p *FilePresigner) PublicURL(objectKey string) string {
	key := (&url.URL{Path: objectKey}).EscapedPath()

	if p.cfg.PublicBaseURL != "" {
		return strings.TrimRight(p.cfg.PublicBaseURL, "/") + "/" + key
	}

	if p.cfg.Endpoint != "" {
		base := strings.TrimRight(p.cfg.Endpoint, "/")
		if p.cfg.UsePathStyle {
			return base + "/" + p.cfg.Bucket + "/" + key
		}
		if u, err := url.Parse(base); err == nil && u.Host != "" {
			u.Host = p.cfg.Bucket + "." + u.Host
			return strings.TrimRight(u.String(), "/") + "/" + key
		}
	}

	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", p.cfg.Bucket, p.cfg.Region, key)
}
