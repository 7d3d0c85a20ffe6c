package storage

import (
	"context"
	"errors"
	"time"

	"github.com/pwpl/pds-engine/internal/models"
)

// ErrNotFound is returned by updates that match no row
var ErrNotFound = errors.New("not found")

// Repository defines the interface for report engine persistence. Getters
// return nil, nil when the record does not exist.
type Repository interface {
	// Product models
	CreateProduct(ctx context.Context, p *models.ProductModel) error
	GetProduct(ctx context.Context, id string) (*models.ProductModel, error)
	ListProducts(ctx context.Context, search string, limit, offset int) ([]*models.ProductModel, error)

	// Production datasheets
	UpsertDatasheet(ctx context.Context, ds *models.Datasheet) error
	GetDatasheet(ctx context.Context, id string) (*models.Datasheet, error)
	ListDatasheets(ctx context.Context) ([]*models.Datasheet, error)

	// Report archive
	CreateReport(ctx context.Context, r *models.ArchivedReport) error
	GetReport(ctx context.Context, id string) (*models.ArchivedReport, error)
	ListReports(ctx context.Context, filters models.ReportFilters) ([]*models.ArchivedReport, error)
	SetReportExportKey(ctx context.Context, id, key string) error
	DeleteReportsBefore(ctx context.Context, cutoff time.Time) (int64, error)

	// Health
	Ping(ctx context.Context) error
	Close() error
}
