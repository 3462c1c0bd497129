package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// AferoStore implements Store over any afero filesystem: an OS directory in
// production, an in-memory filesystem in tests.
type AferoStore struct {
	fs afero.Fs
}

// NewAferoStore creates a new AferoStore.
func NewAferoStore(fs afero.Fs) *AferoStore {
	return &AferoStore{fs: fs}
}

// NewMemStore creates a Store backed by an in-memory filesystem.
func NewMemStore() *AferoStore {
	return NewAferoStore(afero.NewMemMapFs())
}

// Save writes the content of the reader to the given path.
func (s *AferoStore) Save(ctx context.Context, path string, reader io.Reader) (int64, error) {
	if err := s.fs.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return 0, err
	}
	f, err := s.fs.Create(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()
	return io.Copy(f, reader)
}

// Delete removes a file.
func (s *AferoStore) Delete(ctx context.Context, path string) error {
	return s.fs.Remove(path)
}

// Get opens a file for reading.
func (s *AferoStore) Get(ctx context.Context, path string) (io.ReadCloser, error) {
	return s.fs.OpenFile(path, os.O_RDONLY, 0)
}
