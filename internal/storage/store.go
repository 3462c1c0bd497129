package storage

import (
	"context"
	"io"
)

// Store defines the interface for the binary archive backend (avatar
// history, exported attachments).
type Store interface {
	Save(ctx context.Context, path string, reader io.Reader) (int64, error)
	Get(ctx context.Context, path string) (io.ReadCloser, error)
	Delete(ctx context.Context, path string) error
}
