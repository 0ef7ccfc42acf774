package services

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"levelgen.dev/internal/catalog"
	"levelgen.dev/internal/generation"
	"levelgen.dev/internal/models"
)

// ErrCatalogNotFound is returned for unknown catalog names
var ErrCatalogNotFound = errors.New("catalog not found")

type catalogEntry struct {
	catalog *generation.Catalog
	def     *catalog.Definition
}

// CatalogService holds the named module catalogs
type CatalogService struct {
	mu       sync.RWMutex
	catalogs map[string]catalogEntry
}

// NewCatalogService registers the built-in catalogs and, when path is set,
// the catalog file at path.
func NewCatalogService(path string) (*CatalogService, error) {
	s := &CatalogService{catalogs: make(map[string]catalogEntry)}

	for _, name := range catalog.Names() {
		cat, def, err := catalog.Builtin(name)
		if err != nil {
			return nil, fmt.Errorf("failed to build catalog %s: %w", name, err)
		}
		s.catalogs[name] = catalogEntry{catalog: cat, def: def}
	}

	if path != "" {
		def, err := catalog.LoadFile(path)
		if err != nil {
			return nil, err
		}
		if err := s.Register(def); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Register builds a definition and stores it under its name, replacing any
// catalog with the same name
func (s *CatalogService) Register(def *catalog.Definition) error {
	cat, err := catalog.Build(def)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.catalogs[def.Name] = catalogEntry{catalog: cat, def: def}
	s.mu.Unlock()
	return nil
}

// Get returns a catalog by name
func (s *CatalogService) Get(name string) (*generation.Catalog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.catalogs[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrCatalogNotFound, name)
	}
	return entry.catalog, nil
}

// Definition returns the definition a catalog was built from, with door sides filled in
func (s *CatalogService) Definition(name string) (*catalog.Definition, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.catalogs[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrCatalogNotFound, name)
	}
	return catalog.Describe(entry.def.Name, entry.catalog.Templates()), nil
}

// List returns a summary of every catalog, sorted by name
func (s *CatalogService) List() []models.CatalogSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := make([]models.CatalogSummary, 0, len(s.catalogs))
	for name, entry := range s.catalogs {
		summary := models.CatalogSummary{
			Name:     name,
			Terminal: len(entry.catalog.Terminal),
			Normal:   len(entry.catalog.Normal),
		}
		for _, t := range entry.catalog.Templates() {
			summary.Modules = append(summary.Modules, t.Name())
		}
		list = append(list, summary)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list
}
