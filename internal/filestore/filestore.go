package filestore

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Store keeps uploaded document files on disk, one file per document. Files
// are named by document id so a catalog row always finds its upload.
type Store struct {
	dir string
}

// New creates the upload directory if needed.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the directory uploads are stored under.
func (s *Store) Dir() string { return s.dir }

// Save writes data under the document's id and returns the stored path.
func (s *Store) Save(docID, filename string, data []byte) (string, error) {
	name := docID + "_" + filepath.Base(filename)
	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write upload %s: %w", name, err)
	}
	return path, nil
}

// Open opens a stored upload for reading.
func (s *Store) Open(path string) (*os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	return f, nil
}

// Remove deletes a stored upload. A file already gone is not an error.
func (s *Store) Remove(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove upload: %w", err)
	}
	return nil
}
