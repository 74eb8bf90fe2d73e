package gallery

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
)

// Store is a file-backed gallery store. Each gallery lives in <id>.json under
// the base directory. Methods are safe for concurrent use within a process.
type Store struct {
	mu      sync.RWMutex
	baseDir string
	logger  *log.Logger
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir, logger: log.Default()}
}

// WithLogger replaces the store's logger and returns the store.
func (s *Store) WithLogger(l *log.Logger) *Store {
	if l != nil {
		s.logger = l
	}
	return s
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

func (s *Store) path(id string) string {
	return filepath.Join(s.baseDir, id+".json")
}

// Create stores a new empty gallery named name.
func (s *Store) Create(name string) (*Gallery, error) {
	g, err := NewGallery(name)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.write(g); err != nil {
		return nil, err
	}
	s.logger.Debug("created gallery", "id", g.ID, "name", g.Name)
	return g, nil
}

func (s *Store) Get(id string) (*Gallery, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.read(id)
}

// List returns every readable gallery ordered by creation time, then name.
// Unreadable files are skipped.
func (s *Store) List() ([]Gallery, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []Gallery{}, nil
		}
		return nil, err
	}

	galleries := make([]Gallery, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		g, err := s.read(strings.TrimSuffix(entry.Name(), ".json"))
		if err != nil {
			s.logger.Warn("skipping unreadable gallery", "file", entry.Name(), "err", err)
			continue
		}
		galleries = append(galleries, *g)
	}

	sort.SliceStable(galleries, func(i, j int) bool {
		if !galleries[i].CreatedAt.Equal(galleries[j].CreatedAt) {
			return galleries[i].CreatedAt.Before(galleries[j].CreatedAt)
		}
		return galleries[i].Name < galleries[j].Name
	})
	return galleries, nil
}

// Update replaces an existing gallery record.
func (s *Store) Update(g *Gallery) error {
	if strings.TrimSpace(g.Name) == "" {
		return ErrInvalidName
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.read(g.ID); err != nil {
		return err
	}
	return s.write(g)
}

func (s *Store) Delete(id string) error {
	if !validID(id) {
		return fmt.Errorf("%w: %q", ErrNotFound, id)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path(id)); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return err
	}
	s.logger.Debug("deleted gallery", "id", id)
	return nil
}

// AddArtwork appends a to the gallery, assigning an ID when a has none.
func (s *Store) AddArtwork(galleryID string, a Artwork) (*Gallery, error) {
	if a.ID == "" {
		fresh, err := NewArtwork(a.Title, a.ImageURL)
		if err != nil {
			return nil, err
		}
		a.ID, a.CreatedAt = fresh.ID, fresh.CreatedAt
	}
	return s.modify(galleryID, func(g *Gallery) error {
		g.Artworks = append(g.Artworks, a)
		return nil
	})
}

func (s *Store) RemoveArtwork(galleryID, artworkID string) (*Gallery, error) {
	return s.modify(galleryID, func(g *Gallery) error {
		i := g.artworkIndex(artworkID)
		if i < 0 {
			return fmt.Errorf("%w: %s", ErrArtworkNotFound, artworkID)
		}
		g.Artworks = append(g.Artworks[:i], g.Artworks[i+1:]...)
		return nil
	})
}

// Open prepares the store for use. The first time the base directory is
// created, the sample galleries are installed; an existing directory is left
// as it is, even when empty.
func (s *Store) Open() (seeded int, err error) {
	if _, err := os.Stat(s.baseDir); err == nil {
		return 0, nil
	} else if !os.IsNotExist(err) {
		return 0, err
	}
	if err := s.Init(); err != nil {
		return 0, err
	}
	return s.Seed()
}

// Seed installs the sample galleries when the store is empty and reports how
// many were written.
func (s *Store) Seed() (int, error) {
	existing, err := s.List()
	if err != nil {
		return 0, err
	}
	if len(existing) > 0 {
		return 0, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	samples := SampleGalleries()
	for i := range samples {
		if err := s.write(&samples[i]); err != nil {
			return i, err
		}
	}
	s.logger.Info("seeded sample galleries", "count", len(samples))
	return len(samples), nil
}

func (s *Store) modify(id string, fn func(g *Gallery) error) (*Gallery, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, err := s.read(id)
	if err != nil {
		return nil, err
	}
	if err := fn(g); err != nil {
		return nil, err
	}
	if err := s.write(g); err != nil {
		return nil, err
	}
	return g, nil
}

func (s *Store) read(id string) (*Gallery, error) {
	if !validID(id) {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	data, err := os.ReadFile(s.path(id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return nil, err
	}

	var g Gallery
	if err := json.Unmarshal(data, &g); err != nil {
		return nil, fmt.Errorf("parse gallery %s: %w", id, err)
	}
	if g.Artworks == nil {
		g.Artworks = []Artwork{}
	}
	return &g, nil
}

func (s *Store) write(g *Gallery) error {
	if err := os.MkdirAll(s.baseDir, 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(g, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal gallery: %w", err)
	}
	tmp := s.path(g.ID) + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path(g.ID))
}

func validID(id string) bool {
	return id != "" && id != "." && id != ".." && !strings.ContainsAny(id, `/\`)
}
