package media

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"

	"github.com/littleyear/iv-engine/internal/config"
)

// FileInfo reports a file's existence and size from metadata alone, without
// reading content.
type FileInfo struct {
	Exists bool
	Size   int64
}

// Store abstracts where interview recordings live. Keys are opaque upload
// payloads to everything above this package; no decoding ever happens.
type Store interface {
	// Stat inspects file metadata. A missing file is (Exists:false, nil),
	// not an error.
	Stat(ctx context.Context, key string) (FileInfo, error)

	// Open returns a reader for the file content.
	Open(ctx context.Context, key string) (io.ReadCloser, error)

	// Save stores the content read from r under key.
	Save(ctx context.Context, key string, r io.Reader, contentType string) error

	// Type returns "local" or "s3".
	Type() string
}

// New creates a Store from config: S3 when a bucket is configured, the
// local filesystem otherwise. S3 credentials and bucket access are verified
// at startup.
func New(cfg config.S3Config, mediaDir string, log zerolog.Logger) (Store, error) {
	if !cfg.Enabled() {
		return NewLocalStore(mediaDir), nil
	}

	s3store, err := NewS3Store(cfg, log)
	if err != nil {
		return nil, fmt.Errorf("s3 init: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s3store.HeadBucket(ctx); err != nil {
		return nil, fmt.Errorf("s3 startup check (bucket=%q endpoint=%q): %w",
			cfg.Bucket, cfg.Endpoint, err)
	}
	log.Info().Str("bucket", cfg.Bucket).Str("endpoint", cfg.Endpoint).Msg("s3 connection verified")

	return s3store, nil
}
