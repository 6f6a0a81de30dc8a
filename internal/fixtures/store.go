// Package fixtures persists generated record batches as pretty-printed JSON
// files and reads them back. The on-disk format is the contract consumed by
// external fixture loaders: a JSON array of records with stable per-record
// field order.
package fixtures

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/seedforge/seedforge/pkg/types"
)

// Store reads and writes fixture files under a single directory. The
// directory must exist; the store reports I/O errors rather than creating
// paths on the caller's behalf.
type Store struct {
	dir string
}

// NewStore creates a store rooted at dir.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Dir returns the store's root directory.
func (s *Store) Dir() string {
	return s.dir
}

// Path resolves a fixture filename inside the store directory.
func (s *Store) Path(filename string) string {
	return filepath.Join(s.dir, filename)
}

// Exists reports whether a fixture file is already present.
func (s *Store) Exists(filename string) bool {
	_, err := os.Stat(s.Path(filename))
	return err == nil
}

// Export serializes records to filename as an indented JSON array, writing
// through a temp file and renaming so a failed write never leaves a partial
// fixture behind. The target path is returned even on error.
func (s *Store) Export(records []types.Record, filename string) (string, error) {
	path := s.Path(filename)

	if records == nil {
		records = []types.Record{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return path, fmt.Errorf("failed to serialize records: %w", err)
	}
	data = append(data, '\n')

	tempPath := path + ".tmp"
	if err := os.WriteFile(tempPath, data, 0600); err != nil {
		return path, fmt.Errorf("failed to write fixture file: %w", err)
	}
	if err := os.Rename(tempPath, path); err != nil {
		_ = os.Remove(tempPath)
		return path, fmt.Errorf("failed to finalize fixture file: %w", err)
	}

	return path, nil
}

// Load reads a fixture file back into records, preserving field order.
func (s *Store) Load(filename string) ([]types.Record, error) {
	path := s.Path(filename)

	data, err := os.ReadFile(path) // #nosec G304 - path confined to the store dir
	if err != nil {
		return nil, fmt.Errorf("failed to read fixture file %s: %w", path, err)
	}

	var records []types.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to parse fixture file %s: %w", path, err)
	}
	return records, nil
}
