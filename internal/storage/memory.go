package storage

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/pwpl/pds-engine/internal/models"
)

// MemoryRepository implements Repository in process memory. It backs the
// CLI and runs without a database.
type MemoryRepository struct {
	mu         sync.RWMutex
	products   map[string]*models.ProductModel
	datasheets map[string]*models.Datasheet
	reports    map[string]*models.ArchivedReport
}

// NewMemoryRepository creates an empty in-memory repository
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		products:   make(map[string]*models.ProductModel),
		datasheets: make(map[string]*models.Datasheet),
		reports:    make(map[string]*models.ArchivedReport),
	}
}

func (r *MemoryRepository) Ping(context.Context) error { return nil }
func (r *MemoryRepository) Close() error               { return nil }

// CreateProduct stores a product model
func (r *MemoryRepository) CreateProduct(_ context.Context, p *models.ProductModel) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cp := *p
	r.products[p.ID] = &cp
	return nil
}

// GetProduct retrieves a product model by ID
func (r *MemoryRepository) GetProduct(_ context.Context, id string) (*models.ProductModel, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

// ListProducts lists product models by name
func (r *MemoryRepository) ListProducts(_ context.Context, search string, limit, offset int) ([]*models.ProductModel, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	needle := strings.ToLower(search)
	var out []*models.ProductModel
	for _, p := range r.products {
		if needle != "" &&
			!strings.Contains(strings.ToLower(p.Name), needle) &&
			!strings.Contains(strings.ToLower(p.ModelNumber), needle) {
			continue
		}
		cp := *p
		out = append(out, &cp)
	}

	slices.SortFunc(out, func(a, b *models.ProductModel) int {
		return strings.Compare(a.Name, b.Name)
	})
	return page(out, limit, offset), nil
}

// UpsertDatasheet stores or replaces a datasheet
func (r *MemoryRepository) UpsertDatasheet(_ context.Context, ds *models.Datasheet) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cp := *ds
	if existing, ok := r.datasheets[ds.ID]; ok {
		cp.CreatedAt = existing.CreatedAt
	}
	r.datasheets[ds.ID] = &cp
	return nil
}

// GetDatasheet retrieves a datasheet with its sheets
func (r *MemoryRepository) GetDatasheet(_ context.Context, id string) (*models.Datasheet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ds, ok := r.datasheets[id]
	if !ok {
		return nil, nil
	}
	cp := *ds
	return &cp, nil
}

// ListDatasheets lists datasheet metadata, newest first
func (r *MemoryRepository) ListDatasheets(context.Context) ([]*models.Datasheet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*models.Datasheet, 0, len(r.datasheets))
	for _, ds := range r.datasheets {
		cp := *ds
		cp.Sheets = nil
		cp.Content = ""
		out = append(out, &cp)
	}

	slices.SortFunc(out, func(a, b *models.Datasheet) int {
		return b.ModifiedTime.Compare(a.ModifiedTime)
	})
	return out, nil
}

// CreateReport archives a report
func (r *MemoryRepository) CreateReport(_ context.Context, rep *models.ArchivedReport) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cp := *rep
	r.reports[rep.ID] = &cp
	return nil
}

// GetReport retrieves an archived report by ID
func (r *MemoryRepository) GetReport(_ context.Context, id string) (*models.ArchivedReport, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rep, ok := r.reports[id]
	if !ok {
		return nil, nil
	}
	cp := *rep
	return &cp, nil
}

// ListReports lists archived reports, newest first
func (r *MemoryRepository) ListReports(_ context.Context, filters models.ReportFilters) ([]*models.ArchivedReport, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*models.ArchivedReport
	for _, rep := range r.reports {
		if filters.Type != "" && rep.Type != filters.Type {
			continue
		}
		if filters.Standard != "" && rep.Standard != filters.Standard {
			continue
		}
		cp := *rep
		out = append(out, &cp)
	}

	slices.SortFunc(out, func(a, b *models.ArchivedReport) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return page(out, filters.Limit, filters.Offset), nil
}

// SetReportExportKey records where a rendered report was uploaded
func (r *MemoryRepository) SetReportExportKey(_ context.Context, id, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rep, ok := r.reports[id]
	if !ok {
		return ErrNotFound
	}
	rep.ExportKey = key
	return nil
}

// DeleteReportsBefore removes archived reports created before cutoff
func (r *MemoryRepository) DeleteReportsBefore(_ context.Context, cutoff time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var n int64
	for id, rep := range r.reports {
		if rep.CreatedAt.Before(cutoff) {
			delete(r.reports, id)
			n++
		}
	}
	return n, nil
}

func page[T any](items []T, limit, offset int) []T {
	if offset > 0 {
		if offset >= len(items) {
			return nil
		}
		items = items[offset:]
	}
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
