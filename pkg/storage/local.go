package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// LocalStorage writes uploads to a directory that the API process serves
// itself under publicPrefix. Keys are generated with a timestamp prefix, so
// concurrent saves never collide on a path.
type LocalStorage struct {
	root         string
	publicPrefix string
}

func NewLocalStorage(root, publicPrefix string) (*LocalStorage, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &LocalStorage{
		root:         root,
		publicPrefix: strings.TrimRight(publicPrefix, "/"),
	}, nil
}

func (s *LocalStorage) Save(_ context.Context, key string, reader io.Reader) (string, error) {
	dst, err := os.Create(filepath.Join(s.root, key))
	if err != nil {
		return "", fmt.Errorf("failed to create upload file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, reader); err != nil {
		return "", fmt.Errorf("failed to write upload file: %w", err)
	}
	return s.publicPrefix + "/" + key, nil
}
