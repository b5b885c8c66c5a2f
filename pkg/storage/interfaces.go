package storage

import (
	"context"
	"io"
)

// BlobStorage stores an uploaded media file under a key and returns the
// public URL (or path) the stored file is reachable at.
type BlobStorage interface {
	Save(ctx context.Context, key string, reader io.Reader) (string, error)
}
