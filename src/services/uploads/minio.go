package uploads

import (
	"context"
	"fmt"
	"strings"

	"Backend-UniClub/src/config"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"
)

// Minio stores objects in an S3-compatible bucket.
type Minio struct {
	mc        *minio.Client
	bucket    string
	publicURL string
}

func NewMinio(ctx context.Context, cfg config.Minio, logger *zap.Logger) (*Minio, error) {
	mc, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	m := &Minio{mc: mc, bucket: cfg.Bucket, publicURL: strings.TrimRight(cfg.PublicURL, "/")}
	if m.publicURL == "" {
		scheme := "http"
		if cfg.UseSSL {
			scheme = "https"
		}
		m.publicURL = fmt.Sprintf("%s://%s/%s", scheme, cfg.Endpoint, cfg.Bucket)
	}
	if err := m.ensureBucket(ctx, logger); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Minio) ensureBucket(ctx context.Context, logger *zap.Logger) error {
	exists, err := m.mc.BucketExists(ctx, m.bucket)
	if err != nil {
		return fmt.Errorf("check bucket: %w", err)
	}
	if !exists {
		if err := m.mc.MakeBucket(ctx, m.bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("create bucket: %w", err)
		}
		logger.Info("created upload bucket", zap.String("bucket", m.bucket))
	}
	return nil
}

func (m *Minio) Driver() string { return "minio" }

func (m *Minio) Upload(ctx context.Context, obj Object) (string, error) {
	contentType := obj.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	key := ObjectKey(obj.Folder, obj.Filename)
	size := obj.Size
	if size <= 0 {
		size = -1
	}
	_, err := m.mc.PutObject(ctx, m.bucket, key, obj.Body, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", key, err)
	}
	return m.publicURL + "/" + key, nil
}
