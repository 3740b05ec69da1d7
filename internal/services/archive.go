package services

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/rs/zerolog"
)

// ArchiveService copies artifacts to an S3-compatible bucket as a best-effort
// backup. Local disk stays the source of truth; archive failures are logged,
// never surfaced to the request.
type ArchiveService struct {
	client     *minio.Client
	bucketName string
	region     string
	logger     zerolog.Logger
}

// NewArchiveService creates an S3 archive client.
func NewArchiveService(endpoint, accessKey, secretKey, bucketName, region string, useSSL bool, logger zerolog.Logger) (*ArchiveService, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
		Region: region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create S3 client: %w", err)
	}

	return &ArchiveService{
		client:     client,
		bucketName: bucketName,
		region:     region,
		logger:     logger,
	}, nil
}

// EnsureBucket creates the bucket if it doesn't exist.
func (s *ArchiveService) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucketName)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}

	if !exists {
		err = s.client.MakeBucket(ctx, s.bucketName, minio.MakeBucketOptions{
			Region: s.region,
		})
		if err != nil {
			return fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	return nil
}

// StoreUpload archives an uploaded image under uploads/<name>.
func (s *ArchiveService) StoreUpload(name string, data []byte) {
	s.store("uploads/"+name, data, "application/octet-stream")
}

// StoreAudio archives a generated audio artifact under audio/<name>.
func (s *ArchiveService) StoreAudio(name string, data []byte) {
	s.store("audio/"+name, data, "audio/mpeg")
}

func (s *ArchiveService) store(key string, data []byte, contentType string) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	_, err := s.client.PutObject(ctx, s.bucketName, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("failed to archive artifact")
		return
	}
	s.logger.Debug().Str("key", key).Msg("artifact archived")
}
