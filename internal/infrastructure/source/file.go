package source

import (
	"context"
	"fmt"
	"os"
)

// FileSource reads the archive from the local filesystem
type FileSource struct {
	path     string
	maxBytes int64
}

func NewFileSource(path string, maxBytes int64) *FileSource {
	return &FileSource{path: path, maxBytes: maxBytes}
}

func (s *FileSource) Name() string { return "file:" + s.path }

func (s *FileSource) Fetch(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}
	defer f.Close()

	data, err := readLimited(f, s.maxBytes)
	if err != nil {
		return nil, fmt.Errorf("read archive %s: %w", s.path, err)
	}
	return data, nil
}
