package attachment

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"sync"

	"github.com/spf13/afero"
)

// ErrNoSource is returned when a File was constructed without a source reader
// and without data.
var ErrNoSource = errors.New("attachment has no source")

// File is a named binary attachment. The source reader handed to New is
// typically single-use (a live download body); File materializes it into an
// owned buffer on first read, so the same logical bytes can be served to any
// number of consumers.
type File struct {
	name string

	mu     sync.Mutex
	source io.Reader
	data   []byte
	read   bool
}

// New wraps a single-use source reader. The reader is not consumed until the
// first call to Open, Bytes or Duplicate.
func New(name string, source io.Reader) *File {
	return &File{name: name, source: source}
}

// FromBytes builds a File over an already-materialized buffer. The buffer is
// treated as immutable from this point on.
func FromBytes(name string, data []byte) *File {
	return &File{name: name, data: data, read: true}
}

// FromFs loads a file from the given filesystem. The attachment name is the
// base name of the path.
func FromFs(fs afero.Fs, path string) (*File, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("reading attachment %q: %w", path, err)
	}
	return FromBytes(filepath.Base(path), data), nil
}

// Name returns the attachment's filename.
func (f *File) Name() string {
	return f.name
}

// materialize drains the source reader into the owned buffer. Safe to call
// repeatedly; the source is consumed at most once.
func (f *File) materialize() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.read {
		return nil
	}
	if f.source == nil {
		return ErrNoSource
	}

	data, err := io.ReadAll(f.source)
	if err != nil {
		return fmt.Errorf("materializing attachment %q: %w", f.name, err)
	}
	f.data = data
	f.read = true
	f.source = nil
	return nil
}

// Bytes returns the materialized content.
func (f *File) Bytes() ([]byte, error) {
	if err := f.materialize(); err != nil {
		return nil, err
	}
	return f.data, nil
}

// Open returns a fresh cursor over the materialized bytes. Every call yields
// an independent reader; consuming one does not affect any other.
func (f *File) Open() (io.ReadCloser, error) {
	if err := f.materialize(); err != nil {
		return nil, err
	}
	return io.NopCloser(bytes.NewReader(f.data)), nil
}

// Duplicate returns an independent, fully-readable copy of the attachment
// with the filename preserved. The underlying buffer is shared read-only, so
// duplication is cheap regardless of how many consumers there are.
func (f *File) Duplicate() (*File, error) {
	if err := f.materialize(); err != nil {
		return nil, err
	}
	return FromBytes(f.name, f.data), nil
}
