package source

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	ucerrors "github.com/johnquangdev/meeting-archive/internal/usecase/errors"
	"github.com/johnquangdev/meeting-archive/pkg/config"
)

// MinIOSource reads the archive object from an S3-compatible bucket
type MinIOSource struct {
	client       *minio.Client
	bucket       string
	object       string
	maxRetryTime time.Duration
	maxBytes     int64
}

// NewMinIOSource creates a read-only client for bucket/object
func NewMinIOSource(cfg *config.StorageConfig, object string, maxRetryTime time.Duration, maxBytes int64) (*MinIOSource, error) {
	minioClient, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	return &MinIOSource{
		client:       minioClient,
		bucket:       cfg.BucketName,
		object:       object,
		maxRetryTime: maxRetryTime,
		maxBytes:     maxBytes,
	}, nil
}

func (s *MinIOSource) Name() string { return fmt.Sprintf("minio:%s/%s", s.bucket, s.object) }

func (s *MinIOSource) Fetch(ctx context.Context) ([]byte, error) {
	var data []byte

	fetchFn := func() error {
		obj, err := s.client.GetObject(ctx, s.bucket, s.object, minio.GetObjectOptions{})
		if err != nil {
			return classifyMinIOError(err)
		}
		defer obj.Close()

		body, err := readLimited(obj, s.maxBytes)
		if err != nil {
			return classifyMinIOError(err)
		}
		data = body
		return nil
	}

	if err := backoff.Retry(fetchFn, newBackOff(ctx, s.maxRetryTime)); err != nil {
		return nil, fmt.Errorf("fetch %s: %w", s.Name(), err)
	}
	return data, nil
}

// classifyMinIOError stops retrying on client-side failures such as a missing
// bucket or object.
func classifyMinIOError(err error) error {
	resp := minio.ToErrorResponse(err)
	if resp.StatusCode >= 400 && resp.StatusCode < 500 && resp.StatusCode != http.StatusTooManyRequests {
		return backoff.Permanent(fmt.Errorf("%w: %s", ucerrors.ErrSourceUnavailable, resp.Code))
	}
	return err
}
