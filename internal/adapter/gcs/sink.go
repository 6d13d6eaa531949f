package gcs

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"time"

	"cloud.google.com/go/storage"
	"github.com/rs/zerolog"
)

const defaultUploadTimeout = 2 * time.Minute

// UploadObserver records upload outcomes.
type UploadObserver interface {
	ObserveUpload(err error)
}

type nopUploadObserver struct{}

func (nopUploadObserver) ObserveUpload(error) {}

type writerFunc func(ctx context.Context, object, contentType string) io.WriteCloser

// GCSSink implements usecase.ExportSink on a Google Cloud Storage bucket.
type GCSSink struct {
	bucket    string
	prefix    string
	timeout   time.Duration
	newWriter writerFunc
	observer  UploadObserver
	logger    zerolog.Logger
}

// NewGCSSink creates a sink writing objects under prefix in bucket.
// Credentials come from Application Default Credentials.
func NewGCSSink(client *storage.Client, bucket, prefix string, observer UploadObserver, logger zerolog.Logger) *GCSSink {
	bkt := client.Bucket(bucket)
	return newGCSSink(bucket, prefix, func(ctx context.Context, object, contentType string) io.WriteCloser {
		w := bkt.Object(object).NewWriter(ctx)
		w.ContentType = contentType
		return w
	}, observer, logger)
}

func newGCSSink(bucket, prefix string, newWriter writerFunc, observer UploadObserver, logger zerolog.Logger) *GCSSink {
	if observer == nil {
		observer = nopUploadObserver{}
	}
	return &GCSSink{
		bucket:    bucket,
		prefix:    prefix,
		timeout:   defaultUploadTimeout,
		newWriter: newWriter,
		observer:  observer,
		logger:    logger,
	}
}

// Put uploads data and returns its gs:// URI.
func (s *GCSSink) Put(ctx context.Context, name, contentType string, data []byte) (string, error) {
	object := path.Join(s.prefix, name)

	err := s.upload(ctx, object, contentType, data)
	s.observer.ObserveUpload(err)
	if err != nil {
		return "", err
	}

	uri := fmt.Sprintf("gs://%s/%s", s.bucket, object)
	s.logger.Info().
		Str("uri", uri).
		Int("bytes", len(data)).
		Msg("export uploaded")
	return uri, nil
}

func (s *GCSSink) upload(ctx context.Context, object, contentType string, data []byte) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	w := s.newWriter(ctx, object, contentType)
	if _, err := io.Copy(w, bytes.NewReader(data)); err != nil {
		_ = w.Close()
		return fmt.Errorf("copy export to GCS writer: %w", err)
	}

	// Close finalizes the upload
	if err := w.Close(); err != nil {
		return fmt.Errorf("finalize upload: %w", err)
	}
	return nil
}
