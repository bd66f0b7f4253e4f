package storage

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/rs/zerolog"

	"github.com/codersquid/researchcompendia/internal/config"
)

// s3Storage writes uploads to an S3-compatible bucket
type s3Storage struct {
	client   *minio.Client
	bucket   string
	region   string
	log      zerolog.Logger
	initOnce sync.Once
	initErr  error
}

// NewS3 creates an object storage backend from the S3 settings
func NewS3(cfg *config.StorageConfig, log zerolog.Logger) (Storage, error) {
	client, err := minio.New(cfg.S3Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.S3AccessKey, cfg.S3SecretKey, ""),
		Secure: cfg.S3UseSSL,
		Region: cfg.S3Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create s3 client: %w", err)
	}

	return &s3Storage{
		client: client,
		bucket: cfg.S3Bucket,
		region: cfg.S3Region,
		log:    log.With().Str("component", "storage").Str("backend", "s3").Logger(),
	}, nil
}

// ensureBucket creates the bucket on first use if it does not exist
func (s *s3Storage) ensureBucket(ctx context.Context) error {
	s.initOnce.Do(func() {
		exists, err := s.client.BucketExists(ctx, s.bucket)
		if err != nil {
			s.initErr = fmt.Errorf("failed to check bucket: %w", err)
			return
		}
		if exists {
			return
		}
		if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{Region: s.region}); err != nil {
			s.initErr = fmt.Errorf("failed to create bucket: %w", err)
		}
	})
	return s.initErr
}

// Save streams the content into the bucket under key
func (s *s3Storage) Save(ctx context.Context, key string, r io.Reader, size int64) error {
	if err := s.ensureBucket(ctx); err != nil {
		return err
	}
	_, err := s.client.PutObject(ctx, s.bucket, key, r, size, minio.PutObjectOptions{})
	if err != nil {
		return fmt.Errorf("failed to store upload: %w", err)
	}
	s.log.Debug().Str("key", key).Int64("size", size).Msg("Upload stored")
	return nil
}

// Remove deletes the object stored under key
func (s *s3Storage) Remove(ctx context.Context, key string) error {
	if err := s.ensureBucket(ctx); err != nil {
		return err
	}
	if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to remove upload: %w", err)
	}
	return nil
}
