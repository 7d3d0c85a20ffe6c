package archive

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/pwpl/pds-engine/internal/metrics"
	"github.com/pwpl/pds-engine/internal/models"
	"github.com/pwpl/pds-engine/internal/report"
	"github.com/pwpl/pds-engine/internal/storage"
)

// Exporter uploads a rendered document and returns where it was stored
type Exporter interface {
	Export(ctx context.Context, rep *models.ArchivedReport, html []byte) (string, error)
}

// Archiver keeps generated reports for later retrieval and, when an
// exporter is configured, uploads their rendered HTML
type Archiver struct {
	repo     storage.Repository
	renderer *report.Renderer
	exporter Exporter
	now      func() time.Time
}

// NewArchiver creates a new report archiver. exporter may be nil.
func NewArchiver(repo storage.Repository, renderer *report.Renderer, exporter Exporter) *Archiver {
	return &Archiver{
		repo:     repo,
		renderer: renderer,
		exporter: exporter,
		now:      time.Now,
	}
}

// Archive stores rec under a new ID. Export failures are logged and do not
// fail the call.
func (a *Archiver) Archive(ctx context.Context, rec *models.ReportRecord) (*models.ArchivedReport, error) {
	if err := report.Validate(rec); err != nil {
		return nil, err
	}

	rep := &models.ArchivedReport{
		ID:          uuid.New().String(),
		Type:        rec.Type,
		DatasheetNo: rec.DatasheetNo,
		ItemName:    rec.ItemDescription,
		Standard:    rec.StandardName(),
		Record:      rec,
		CreatedAt:   a.now().UTC(),
	}

	if err := a.repo.CreateReport(ctx, rep); err != nil {
		return nil, fmt.Errorf("failed to archive report: %w", err)
	}
	metrics.ReportsArchived.Inc()

	slog.Info("report archived",
		"id", rep.ID,
		"type", rep.Type,
		"datasheet_no", rep.DatasheetNo,
	)

	if a.exporter != nil {
		a.export(ctx, rep)
	}
	return rep, nil
}

func (a *Archiver) export(ctx context.Context, rep *models.ArchivedReport) {
	var buf bytes.Buffer
	if err := a.renderer.RenderHTML(&buf, rep.Record); err != nil {
		slog.Error("failed to render report for export", "id", rep.ID, "error", err)
		return
	}

	key, err := a.exporter.Export(ctx, rep, buf.Bytes())
	if err != nil {
		slog.Error("failed to export report", "id", rep.ID, "error", err)
		return
	}

	if err := a.repo.SetReportExportKey(ctx, rep.ID, key); err != nil {
		slog.Error("failed to record export key", "id", rep.ID, "key", key, "error", err)
		return
	}
	rep.ExportKey = key
}

// Get retrieves an archived report, nil if absent
func (a *Archiver) Get(ctx context.Context, id string) (*models.ArchivedReport, error) {
	return a.repo.GetReport(ctx, id)
}

// List lists archived reports
func (a *Archiver) List(ctx context.Context, filters models.ReportFilters) ([]*models.ArchivedReport, error) {
	if filters.Limit <= 0 || filters.Limit > 100 {
		filters.Limit = 50
	}
	return a.repo.ListReports(ctx, filters)
}
