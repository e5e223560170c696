package catalog

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/megambeast/fincompare/internal/models"
)

// Loader holds the product catalog, loaded from YAML files. Products keep
// the order they appear in within each category file; the filter and sort
// engines rely on that order being stable.
type Loader struct {
	mu         sync.RWMutex
	byID       map[string]*models.Product
	byCategory map[models.Category][]*models.Product
}

// NewLoader creates an empty catalog loader.
func NewLoader() *Loader {
	return &Loader{
		byID:       make(map[string]*models.Product),
		byCategory: make(map[models.Category][]*models.Product),
	}
}

// LoadFromDir loads every YAML catalog file from a directory. Invalid
// products are skipped with a warning; a file that fails to parse does not
// abort the rest.
func (l *Loader) LoadFromDir(dir string) error {
	slog.Info("loading catalogs from directory", "dir", dir)

	var files []string
	for _, pattern := range []string{"*.yaml", "*.yml"} {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			continue
		}
		files = append(files, matches...)
	}

	loaded := 0
	for _, file := range files {
		if err := l.LoadFromFile(file); err != nil {
			slog.Warn("failed to load catalog file", "file", file, "error", err)
			continue
		}
		loaded++
	}

	slog.Info("catalogs loaded", "files", loaded, "products", l.Count())
	return nil
}

// LoadFromFile loads a single category catalog from a YAML file.
func (l *Loader) LoadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	var cf catalogFile
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return fmt.Errorf("failed to parse YAML: %w", err)
	}

	if !cf.Category.Valid() {
		return fmt.Errorf("unknown category %q", cf.Category)
	}

	added := 0
	for _, p := range cf.Products {
		p.Category = cf.Category
		if err := l.Add(p); err != nil {
			slog.Warn("skipping product", "file", path, "error", err)
			continue
		}
		added++
	}

	slog.Info("catalog loaded", "category", cf.Category, "products", added)
	return nil
}

// Add validates a product and appends it to its category, preserving
// insertion order. Duplicate ids are rejected.
func (l *Loader) Add(p *models.Product) error {
	if err := p.Validate(); err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if _, exists := l.byID[p.ID]; exists {
		return fmt.Errorf("product %s: duplicate id", p.ID)
	}
	l.byID[p.ID] = p
	l.byCategory[p.Category] = append(l.byCategory[p.Category], p)
	return nil
}

// Get retrieves a product by id, or nil.
func (l *Loader) Get(id string) *models.Product {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.byID[id]
}

// ListByCategory returns the products of a category in catalog order.
func (l *Loader) ListByCategory(cat models.Category) []*models.Product {
	l.mu.RLock()
	defer l.mu.RUnlock()

	src := l.byCategory[cat]
	result := make([]*models.Product, len(src))
	copy(result, src)
	return result
}

// Features returns the distinct feature tags of a category in first-seen
// order, for building facet pickers.
func (l *Loader) Features(cat models.Category) []string {
	l.mu.RLock()
	defer l.mu.RUnlock()

	seen := make(map[string]bool)
	var result []string
	for _, p := range l.byCategory[cat] {
		for _, f := range p.Features {
			if !seen[f] {
				seen[f] = true
				result = append(result, f)
			}
		}
	}
	return result
}

// Count returns the number of loaded products.
func (l *Loader) Count() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.byID)
}

// catalogFile represents the YAML structure of a category catalog file
type catalogFile struct {
	Category models.Category   `yaml:"category"`
	Products []*models.Product `yaml:"products"`
}
