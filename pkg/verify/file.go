package verify

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/matzehuels/px/pkg/errors"
)

// FileName is the default cache file name inside the px config directory.
const FileName = "verified.json"

// fileLayout is the on-disk format: two name lists.
type fileLayout struct {
	PackagesWithTypes    []string `json:"packagesWithTypes"`
	PackagesWithoutTypes []string `json:"packagesWithoutTypes"`
}

// FileStore persists verification results in a single JSON file.
// The file is read on first use and rewritten on Flush only when
// something changed. A corrupt file is treated as empty.
type FileStore struct {
	mu      sync.Mutex
	path    string
	loaded  bool
	dirty   bool
	entries map[string]Availability
}

// NewFileStore creates a store backed by path. Nothing is read until the
// first Get, Set or List.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path, entries: make(map[string]Availability)}
}

// Path returns the cache file location.
func (s *FileStore) Path() string { return s.path }

func (s *FileStore) Get(ctx context.Context, pkg string) (Availability, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.load(); err != nil {
		return Unknown, err
	}
	return s.entries[pkg], nil
}

func (s *FileStore) Set(ctx context.Context, pkg string, a Availability) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.load(); err != nil {
		return err
	}
	if s.entries[pkg] == a {
		return nil
	}
	if a.Known() {
		s.entries[pkg] = a
	} else {
		delete(s.entries, pkg)
	}
	s.dirty = true
	return nil
}

func (s *FileStore) Flush(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.dirty {
		return nil
	}
	if err := s.write(); err != nil {
		return err
	}
	s.dirty = false
	return nil
}

func (s *FileStore) List(ctx context.Context) ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.load(); err != nil {
		return nil, err
	}
	return sortedEntries(s.entries), nil
}

// Clear removes the cache file and forgets all entries.
func (s *FileStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(errors.ErrCodeCacheWrite, err, "remove %s", s.path)
	}
	clear(s.entries)
	s.loaded = true
	s.dirty = false
	return nil
}

func (s *FileStore) load() error {
	if s.loaded {
		return nil
	}
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		s.loaded = true
		return nil
	}
	if err != nil {
		return errors.Wrap(errors.ErrCodeCacheRead, err, "read %s", s.path)
	}
	s.loaded = true

	var layout fileLayout
	if err := json.Unmarshal(data, &layout); err != nil {
		// Corrupt cache: start over and overwrite on next flush.
		s.dirty = true
		return nil
	}
	for _, pkg := range layout.PackagesWithoutTypes {
		s.entries[pkg] = NoTypes
	}
	for _, pkg := range layout.PackagesWithTypes {
		s.entries[pkg] = HasTypes
	}
	return nil
}

func (s *FileStore) write() error {
	layout := fileLayout{
		PackagesWithTypes:    []string{},
		PackagesWithoutTypes: []string{},
	}
	for _, e := range sortedEntries(s.entries) {
		switch e.Availability {
		case HasTypes:
			layout.PackagesWithTypes = append(layout.PackagesWithTypes, e.Package)
		case NoTypes:
			layout.PackagesWithoutTypes = append(layout.PackagesWithoutTypes, e.Package)
		}
	}

	data, err := json.MarshalIndent(layout, "", "  ")
	if err != nil {
		return errors.Wrap(errors.ErrCodeCacheWrite, err, "marshal cache")
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrap(errors.ErrCodeCacheWrite, err, "create %s", dir)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".*")
	if err != nil {
		return errors.Wrap(errors.ErrCodeCacheWrite, err, "create temp file")
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(append(data, '\n')); err != nil {
		tmp.Close()
		return errors.Wrap(errors.ErrCodeCacheWrite, err, "write %s", tmp.Name())
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(errors.ErrCodeCacheWrite, err, "close %s", tmp.Name())
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return errors.Wrap(errors.ErrCodeCacheWrite, err, "rename to %s", s.path)
	}
	return nil
}

var (
	_ Store  = (*FileStore)(nil)
	_ Lister = (*FileStore)(nil)
)
