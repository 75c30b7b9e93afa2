// Package media stores uploaded audio files in a flat directory on local
// disk and derives the public URLs they are served under.
//
// Filenames are xid tokens plus the upload's original extension. xid gives
// 20 URL-safe characters with a random component, so concurrent uploads
// never collide and a stored name reveals nothing about the content or the
// uploader. The directory is served read-only at URLPrefix by the HTTP
// layer.
package media

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/xid"
)

// URLPrefix is the public path uploaded files are served under.
const URLPrefix = "/uploads/"

// Store is a flat-directory file store.
type Store struct {
	dir string
}

// New creates the upload directory if needed and returns a Store over it.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("media: creating upload dir %s: %w", dir, err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the directory the store writes into. The server mounts it as
// a static file root.
func (s *Store) Dir() string {
	return s.dir
}

// Save streams the upload to disk under a generated filename and returns
// the stored path. Only the extension of originalName is kept; the rest of
// the client-supplied name never touches the filesystem.
func (s *Store) Save(r io.Reader, originalName string) (string, error) {
	name := xid.New().String() + filepath.Ext(originalName)
	path := filepath.Join(s.dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("media: creating %s: %w", path, err)
	}

	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(path)
		return "", fmt.Errorf("media: writing %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("media: closing %s: %w", path, err)
	}

	return path, nil
}

// Remove deletes a stored file. Used to clean up when the snippet row
// insert fails after the bytes already hit disk.
func (s *Store) Remove(path string) error {
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("media: removing %s: %w", path, err)
	}
	return nil
}

// URL derives the public URL for a stored path: the URL prefix plus the
// generated filename. The filesystem location itself is never exposed.
func (s *Store) URL(path string) string {
	return URLPrefix + filepath.Base(path)
}
