package minio

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/wandertrails/wandertrails-api/internal/repository/ports"
)

func NewClient(endpoint, key, secret string, useSSL bool) (*minio.Client, error) {
	return minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(key, secret, ""),
		Secure: useSSL,
	})
}

// Storage implements ports.ObjectStorage on a MinIO client. When publicBase
// is set, returned URLs are rewritten onto it (CDN or reverse proxy in
// front of the bucket).
type Storage struct {
	client     *minio.Client
	publicBase string
	useSSL     bool
}

func NewStorage(client *minio.Client, publicBase string, useSSL bool) *Storage {
	return &Storage{
		client:     client,
		publicBase: strings.TrimRight(publicBase, "/"),
		useSSL:     useSSL,
	}
}

func (s *Storage) Upload(ctx context.Context, bucket, objectName, contentType string, reader io.Reader, size int64) (string, error) {
	_, err := s.client.PutObject(ctx, bucket, objectName, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("minio: upload %s/%s: %w", bucket, objectName, err)
	}

	if s.publicBase != "" {
		return s.publicBase + "/" + bucket + "/" + strings.TrimLeft(objectName, "/"), nil
	}
	scheme := "http"
	if s.useSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, s.client.EndpointURL().Host, bucket, strings.TrimLeft(objectName, "/")), nil
}

var _ ports.ObjectStorage = (*Storage)(nil)
