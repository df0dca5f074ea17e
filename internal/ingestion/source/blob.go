package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/yungbote/viriato-backend/internal/platform/gcp"
)

// ErrNotFound is returned when a named export does not exist in the source.
var ErrNotFound = errors.New("raw export not found")

// BlobSource hands out raw export files by name.
type BlobSource interface {
	Open(ctx context.Context, name string) (io.ReadCloser, error)
	Describe() string
}

type dirSource struct {
	dir string
}

func NewDirSource(dir string) BlobSource {
	return &dirSource{dir: dir}
}

func (s *dirSource) Open(_ context.Context, name string) (io.ReadCloser, error) {
	f, err := os.Open(filepath.Join(s.dir, filepath.Base(name)))
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return f, err
}

func (s *dirSource) Describe() string { return "dir:" + s.dir }

type bucketSource struct {
	bucket gcp.ExportBucket
	name   string
}

func NewBucketSource(bucket gcp.ExportBucket, bucketName string) BlobSource {
	return &bucketSource{bucket: bucket, name: bucketName}
}

func (s *bucketSource) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	rc, err := s.bucket.Open(ctx, name)
	if errors.Is(err, gcp.ErrObjectNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return rc, err
}

func (s *bucketSource) Describe() string { return "gs://" + s.name }
