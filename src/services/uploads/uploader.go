// Package uploads stores admin-submitted images and returns their public URL.
package uploads

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"path"
	"path/filepath"
	"strings"
	"time"

	"Backend-UniClub/src/config"
	"Backend-UniClub/src/metrics"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Object is one file to store.
type Object struct {
	Folder      string
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// Uploader writes an object and returns the URL it is publicly served from.
// Uploads are synchronous and not retried.
type Uploader interface {
	Upload(ctx context.Context, obj Object) (string, error)
	Driver() string
}

// New picks the driver named by cfg.Driver.
func New(ctx context.Context, cfg config.Storage, logger *zap.Logger) (Uploader, error) {
	switch cfg.Driver {
	case "cloudinary":
		return NewCloudinary(cfg.Cloudinary)
	case "minio":
		return NewMinio(ctx, cfg.Minio, logger)
	case "local", "":
		return NewLocal(cfg.LocalPath, cfg.LocalURL)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

// ObjectKey names a stored object. Client-supplied names only contribute
// their extension.
func ObjectKey(folder, filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if len(ext) > 10 {
		ext = ""
	}
	return path.Join(folder, uuid.NewString()+ext)
}

// UploadFile opens a multipart file part and stores it in folder.
func UploadFile(ctx context.Context, u Uploader, folder string, fh *multipart.FileHeader) (string, error) {
	f, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload %s: %w", fh.Filename, err)
	}
	defer f.Close()

	return u.Upload(ctx, Object{
		Folder:      folder,
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		Body:        f,
	})
}

type instrumented struct {
	next    Uploader
	metrics *metrics.Metrics
	logger  *zap.Logger
}

// Instrument records upload counts and latency around u.
func Instrument(u Uploader, m *metrics.Metrics, logger *zap.Logger) Uploader {
	return &instrumented{next: u, metrics: m, logger: logger}
}

func (i *instrumented) Driver() string { return i.next.Driver() }

func (i *instrumented) Upload(ctx context.Context, obj Object) (string, error) {
	start := time.Now()
	url, err := i.next.Upload(ctx, obj)
	i.metrics.UploadDuration.WithLabelValues(i.Driver()).Observe(time.Since(start).Seconds())
	if err != nil {
		i.metrics.UploadsTotal.WithLabelValues(i.Driver(), "error").Inc()
		i.logger.Error("image upload failed",
			zap.String("driver", i.Driver()),
			zap.String("filename", obj.Filename),
			zap.Error(err))
		return "", err
	}
	i.metrics.UploadsTotal.WithLabelValues(i.Driver(), "ok").Inc()
	i.logger.Debug("image uploaded", zap.String("driver", i.Driver()), zap.String("url", url))
	return url, nil
}
