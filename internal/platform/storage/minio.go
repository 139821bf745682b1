// Package storage provides the MinIO-backed binary artifact store.
package storage

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"imageshare_backend/internal/feature/images/usecase"
)

// MinioStore implements usecase.ArtifactStore on top of a MinIO bucket.
// Objects are keyed by the opaque storage key carried on the image record.
type MinioStore struct {
	client *minio.Client
	bucket string
}

var _ usecase.ArtifactStore = (*MinioStore)(nil)

// NewMinioStore connects to MinIO using environment configuration and ensures
// the target bucket exists.
func NewMinioStore(ctx context.Context) (*MinioStore, error) {
	endpoint := os.Getenv("MINIO_HOST")
	if endpoint == "" {
		endpoint = "localhost:9000"
	}
	accessKey := os.Getenv("MINIO_ACCESS_KEY")
	secretKey := os.Getenv("MINIO_SECRET_KEY")
	bucket := os.Getenv("MINIO_BUCKET")
	if bucket == "" {
		bucket = "images"
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: os.Getenv("MINIO_USE_SSL") == "true",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket %s: %w", bucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket %s: %w", bucket, err)
		}
		slog.Info("created bucket", "bucket", bucket)
	}

	slog.Info("MinIO connection successful", "endpoint", endpoint, "bucket", bucket)
	return &MinioStore{client: client, bucket: bucket}, nil
}

// Put stores an artifact under the given key.
func (s *MinioStore) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	_, err := s.client.PutObject(ctx, s.bucket, key, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("failed to put object %s: %w", key, err)
	}
	return nil
}

// Get opens the artifact stored under the given key. The returned reader
// surfaces a not-found error on first read when the object is absent, which
// callers must tolerate for records whose artifact is already gone.
func (s *MinioStore) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get object %s: %w", key, err)
	}
	return obj, nil
}

// Delete removes the artifact stored under the given key.
// Deleting an absent object is not an error.
func (s *MinioStore) Delete(ctx context.Context, key string) error {
	return s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{})
}
