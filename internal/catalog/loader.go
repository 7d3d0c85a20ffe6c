package catalog

import (
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"slices"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/pwpl/pds-engine/internal/models"
)

//go:embed defaults/*.yaml
var defaultsFS embed.FS

// Loader manages the standards catalog: selectable standards, their wire
// types and test plans, and the stranded conductor sizes
type Loader struct {
	mu        sync.RWMutex
	standards map[models.Standard]*models.StandardInfo
	sizes     map[string]models.ConductorSize
	sizeOrder []string
}

// NewLoader creates an empty catalog loader
func NewLoader() *Loader {
	return &Loader{
		standards: make(map[models.Standard]*models.StandardInfo),
		sizes:     make(map[string]models.ConductorSize),
	}
}

// NewDefaultLoader creates a loader populated with the built-in catalog
func NewDefaultLoader() (*Loader, error) {
	l := NewLoader()
	sub, err := fs.Sub(defaultsFS, "defaults")
	if err != nil {
		return nil, err
	}
	if err := l.LoadFromFS(sub); err != nil {
		return nil, err
	}
	return l, nil
}

// LoadFromDir loads every YAML file in dir. Entries override those already
// loaded with the same ID.
func (l *Loader) LoadFromDir(dir string) error {
	slog.Info("loading catalog from directory", "dir", dir)
	return l.LoadFromFS(os.DirFS(dir))
}

// LoadFromFS loads every YAML file at the root of fsys
func (l *Loader) LoadFromFS(fsys fs.FS) error {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("failed to read catalog: %w", err)
	}

	loaded := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(path.Ext(entry.Name()))
		if ext != ".yaml" && ext != ".yml" {
			continue
		}

		data, err := fs.ReadFile(fsys, entry.Name())
		if err != nil {
			slog.Warn("failed to read catalog file", "file", entry.Name(), "error", err)
			continue
		}
		if err := l.load(data); err != nil {
			slog.Warn("failed to load catalog file", "file", entry.Name(), "error", err)
			continue
		}
		loaded++
	}

	slog.Info("catalog loaded", "files", loaded, "standards", len(l.ListStandards()))
	return nil
}

// LoadFromFile loads a single catalog YAML file
func (l *Loader) LoadFromFile(name string) error {
	data, err := os.ReadFile(name)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}
	return l.load(data)
}

func (l *Loader) load(data []byte) error {
	var cf catalogFile
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return fmt.Errorf("failed to parse YAML: %w", err)
	}

	if cf.Standard == nil && len(cf.ConductorSizes) == 0 {
		return fmt.Errorf("file defines neither a standard nor conductor sizes")
	}

	if cf.Standard != nil {
		if cf.Standard.ID == "" {
			return fmt.Errorf("standard id is required")
		}
		if cf.Standard.Label == "" {
			cf.Standard.Label = string(cf.Standard.ID)
		}
		for _, t := range cf.Standard.Tests {
			if t.Test == "" {
				return fmt.Errorf("standard %s: test identifier is required", cf.Standard.ID)
			}
		}
	}
	for _, s := range cf.ConductorSizes {
		if s.ID == "" {
			return fmt.Errorf("conductor size id is required")
		}
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if cf.Standard != nil {
		l.standards[cf.Standard.ID] = cf.Standard
	}
	for _, s := range cf.ConductorSizes {
		if _, ok := l.sizes[s.ID]; !ok {
			l.sizeOrder = append(l.sizeOrder, s.ID)
		}
		l.sizes[s.ID] = s
	}
	return nil
}

// GetStandard retrieves a standard by ID
func (l *Loader) GetStandard(id models.Standard) *models.StandardInfo {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.standards[id]
}

// ListStandards returns all standards ordered by ID
func (l *Loader) ListStandards() []*models.StandardInfo {
	l.mu.RLock()
	defer l.mu.RUnlock()

	result := make([]*models.StandardInfo, 0, len(l.standards))
	for _, s := range l.standards {
		result = append(result, s)
	}
	slices.SortFunc(result, func(a, b *models.StandardInfo) int {
		return strings.Compare(string(a.ID), string(b.ID))
	})
	return result
}

// WireTypes returns the wire types listed under a standard
func (l *Loader) WireTypes(id models.Standard) []models.WireType {
	if s := l.GetStandard(id); s != nil {
		return s.WireTypes
	}
	return nil
}

// Tests returns the test definitions of a standard
func (l *Loader) Tests(id models.Standard) []models.TestDefinition {
	if s := l.GetStandard(id); s != nil {
		return s.Tests
	}
	return nil
}

// ConductorSizes returns conductor sizes in load order
func (l *Loader) ConductorSizes() []models.ConductorSize {
	l.mu.RLock()
	defer l.mu.RUnlock()

	result := make([]models.ConductorSize, 0, len(l.sizeOrder))
	for _, id := range l.sizeOrder {
		result = append(result, l.sizes[id])
	}
	return result
}

// GetConductorSize retrieves a conductor size by ID
func (l *Loader) GetConductorSize(id string) (models.ConductorSize, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	s, ok := l.sizes[id]
	return s, ok
}

// catalogFile is the YAML layout of a catalog file
type catalogFile struct {
	Standard       *models.StandardInfo   `yaml:"standard"`
	ConductorSizes []models.ConductorSize `yaml:"conductor_sizes"`
}
