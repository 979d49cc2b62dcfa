package pagefile

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/lightnote/puzzlerom/internal/errors"
)

// Store persists page records as individually named units. Remove supports
// the discard path for puzzles rejected after replay. Units returns all
// stored units sorted by name under plain byte order, so case never
// interleaves puzzle groups.
type Store interface {
	Write(p Page) error
	Remove(p Page) error
	Units() ([]Unit, error)
}

// DirStore stores one file per page record in a directory.
type DirStore struct {
	dir string
}

// NewDirStore creates the directory if needed and returns a store over it.
func NewDirStore(dir string) (*DirStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "creating output directory %s", dir)
	}
	return &DirStore{dir: dir}, nil
}

// Write writes the page record to its unit file.
func (s *DirStore) Write(p Page) error {
	line, err := p.Line()
	if err != nil {
		return err
	}
	path := filepath.Join(s.dir, p.UnitName())
	if err := os.WriteFile(path, []byte(line+"\n"), 0o644); err != nil {
		return errors.Wrapf(err, "writing %s", path)
	}
	return nil
}

// Remove deletes the page's unit file.
func (s *DirStore) Remove(p Page) error {
	path := filepath.Join(s.dir, p.UnitName())
	if err := os.Remove(path); err != nil {
		return errors.Wrapf(err, "removing %s", path)
	}
	return nil
}

// Units reads all unit files sorted by name.
func (s *DirStore) Units() ([]Unit, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, errors.Wrapf(err, "reading output directory %s", s.dir)
	}

	var units []Unit
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".txt") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.dir, entry.Name()))
		if err != nil {
			return nil, errors.Wrapf(err, "reading %s", entry.Name())
		}
		units = append(units, Unit{Name: entry.Name(), Data: data})
	}

	sort.Slice(units, func(i, j int) bool { return units[i].Name < units[j].Name })
	return units, nil
}

// MemStore keeps typed page records in memory. It is safe for concurrent
// use and serves both tests and single-invocation pipelines that assemble
// the image without touching the filesystem. Unlike DirStore it does not
// depend on name collation: Units orders records by the explicit sort key.
type MemStore struct {
	mu    sync.Mutex
	pages map[string]Page
}

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{pages: make(map[string]Page)}
}

// Write stores the page record under its unit name.
func (s *MemStore) Write(p Page) error {
	if _, err := p.Line(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pages[p.UnitName()] = p
	return nil
}

// Remove deletes the page's unit.
func (s *MemStore) Remove(p Page) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.pages, p.UnitName())
	return nil
}

// Units serializes all stored pages, ordered by Less.
func (s *MemStore) Units() ([]Unit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pages := make([]Page, 0, len(s.pages))
	for _, p := range s.pages {
		pages = append(pages, p)
	}
	sort.Slice(pages, func(i, j int) bool { return Less(pages[i], pages[j]) })

	units := make([]Unit, 0, len(pages))
	for _, p := range pages {
		line, err := p.Line()
		if err != nil {
			return nil, err
		}
		units = append(units, Unit{Name: p.UnitName(), Data: []byte(line + "\n")})
	}
	return units, nil
}

// Len returns the number of stored units.
func (s *MemStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pages)
}

// NopStore discards all writes. Used by dry runs, which count pages without
// producing output.
type NopStore struct{}

// Write validates the record but stores nothing.
func (NopStore) Write(p Page) error {
	_, err := p.Line()
	return err
}

// Remove does nothing.
func (NopStore) Remove(Page) error { return nil }

// Units always returns an empty set.
func (NopStore) Units() ([]Unit, error) { return nil, nil }
