package storage

import (
	"context"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFilePresigner_RequiresBucket(t *testing.T) {
	_, err := NewFilePresigner(context.Background(), S3Config{Region: "us-east-1"})
	assert.ErrorIs(t, err, ErrBucketNotConfigured)
}

func TestPresignUpload(t *testing.T) {
	p, err := NewFilePresigner(context.Background(), S3Config{
		Endpoint:        "http://localhost:9000",
		Region:          "us-east-1",
		Bucket:          "pets",
		AccessKeyID:     "minio",
		SecretAccessKey: "minio123",
		UsePathStyle:    true,
		PresignExpiry:   5 * time.Minute,
	})
	require.NoError(t, err)

	upload, err := p.PresignUpload(context.Background(), "pets/abc/photo.png", "image/png")
	require.NoError(t, err)

	u, err := url.Parse(upload.UploadURL)
	require.NoError(t, err)
	assert.Equal(t, "localhost:9000", u.Host)
	assert.Equal(t, "/pets/pets/abc/photo.png", u.Path)
	assert.Equal(t, "300", u.Query().Get("X-Amz-Expires"))
	assert.Equal(t, "http://localhost:9000/pets/pets/abc/photo.png", upload.ImageURL)
	assert.Equal(t, "pets/abc/photo.png", upload.Key)
}

func TestPublicURL(t *testing.T) {
	tests := []struct {
		name string
		cfg  S3Config
		want string
	}{
		{
			name: "public base url wins",
			cfg:  S3Config{Bucket: "pets", Region: "eu-west-1", PublicBaseURL: "https://cdn.example.com/"},
			want: "https://cdn.example.com/a/b.png",
		},
		{
			name: "virtual hosted custom endpoint",
			cfg:  S3Config{Bucket: "pets", Region: "eu-west-1", Endpoint: "https://s3.example.com"},
			want: "https://pets.s3.example.com/a/b.png",
		},
		{
			name: "aws default",
			cfg:  S3Config{Bucket: "pets", Region: "eu-west-1"},
			want: "https://pets.s3.eu-west-1.amazonaws.com/a/b.png",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &FilePresigner{cfg: tt.cfg}
			assert.Equal(t, tt.want, p.PublicURL("a/b.png"))
		})
	}
}
