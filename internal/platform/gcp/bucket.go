package gcp

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"google.golang.org/api/iterator"

	"github.com/yungbote/viriato-backend/internal/platform/logger"
)

// ErrObjectNotFound is returned when the requested export is not in the bucket.
var ErrObjectNotFound = errors.New("gcs object not found")

type ObjectAttrs struct {
	Name    string
	Size    int64
	Updated time.Time
	ETag    string
}

// ExportBucket is a read-only view over the bucket holding raw open-data exports.
type ExportBucket interface {
	Open(ctx context.Context, name string) (io.ReadCloser, error)
	Attrs(ctx context.Context, name string) (*ObjectAttrs, error)
	List(ctx context.Context) ([]string, error)
	Close() error
}

type BucketConfig struct {
	Name         string
	Prefix       string
	EmulatorHost string
	// Credentials is inline service-account JSON or a key file path.
	Credentials string
}

func BucketConfigFromEnv() BucketConfig {
	return BucketConfig{
		Name:         strings.TrimSpace(os.Getenv("GCS_RAW_BUCKET")),
		Prefix:       strings.Trim(strings.TrimSpace(os.Getenv("GCS_RAW_PREFIX")), "/"),
		EmulatorHost: strings.TrimRight(strings.TrimSpace(os.Getenv("STORAGE_EMULATOR_HOST")), "/"),
		Credentials:  credentialsFromEnv(),
	}
}

type exportBucket struct {
	log    *logger.Logger
	client *storage.Client
	cfg    BucketConfig
}

func NewExportBucket(ctx context.Context, log *logger.Logger, cfg BucketConfig) (ExportBucket, error) {
	if cfg.Name == "" {
		return nil, fmt.Errorf("missing env var GCS_RAW_BUCKET")
	}
	client, err := storage.NewClient(ctx, clientOptions(cfg)...)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}
	serviceLog := log.With("service", "ExportBucket")
	serviceLog.Info("Export bucket initialized", "bucket", cfg.Name, "prefix", cfg.Prefix, "emulator_host", cfg.EmulatorHost)
	return &exportBucket{log: serviceLog, client: client, cfg: cfg}, nil
}

func (b *exportBucket) key(name string) string {
	if b.cfg.Prefix == "" {
		return name
	}
	return path.Join(b.cfg.Prefix, name)
}

func (b *exportBucket) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	r, err := b.client.Bucket(b.cfg.Name).Object(b.key(name)).NewReader(ctx)
	if errors.Is(err, storage.ErrObjectNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrObjectNotFound, b.key(name))
	}
	if err != nil {
		return nil, fmt.Errorf("open gs://%s/%s: %w", b.cfg.Name, b.key(name), err)
	}
	return r, nil
}

func (b *exportBucket) Attrs(ctx context.Context, name string) (*ObjectAttrs, error) {
	attrs, err := b.client.Bucket(b.cfg.Name).Object(b.key(name)).Attrs(ctx)
	if errors.Is(err, storage.ErrObjectNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrObjectNotFound, b.key(name))
	}
	if err != nil {
		return nil, err
	}
	return &ObjectAttrs{Name: name, Size: attrs.Size, Updated: attrs.Updated, ETag: attrs.Etag}, nil
}

func (b *exportBucket) List(ctx context.Context) ([]string, error) {
	q := &storage.Query{}
	if b.cfg.Prefix != "" {
		q.Prefix = b.cfg.Prefix + "/"
	}
	it := b.client.Bucket(b.cfg.Name).Objects(ctx, q)
	var out []string
	for {
		attrs, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, err
		}
		out = append(out, strings.TrimPrefix(attrs.Name, q.Prefix))
	}
	return out, nil
}

func (b *exportBucket) Close() error {
	return b.client.Close()
}
