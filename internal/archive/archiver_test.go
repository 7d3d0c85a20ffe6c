package archive

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pwpl/pds-engine/internal/models"
	"github.com/pwpl/pds-engine/internal/report"
	"github.com/pwpl/pds-engine/internal/specs"
	"github.com/pwpl/pds-engine/internal/storage"
)

type fakeExporter struct {
	html string
	err  error
}

func (f *fakeExporter) Export(_ context.Context, rep *models.ArchivedReport, html []byte) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.html = string(html)
	return "reports/" + rep.ID + ".html", nil
}

func generate(t *testing.T) *models.ReportRecord {
	t.Helper()
	p := report.NewPipeline(specs.NewPopulator(), report.NewAssembler())
	rec, err := p.Generate("ATC 3C X12 (37/0.30) MM SHIELDED", "")
	require.NoError(t, err)
	return rec
}

func TestArchive_StoresAndExports(t *testing.T) {
	ctx := context.Background()
	repo := storage.NewMemoryRepository()
	exp := &fakeExporter{}
	a := NewArchiver(repo, report.NewRenderer(report.WithPrintScript(false)), exp)

	rec := generate(t)
	rep, err := a.Archive(ctx, rec)
	require.NoError(t, err)

	_, err = uuid.Parse(rep.ID)
	assert.NoError(t, err)
	assert.Equal(t, rec.DatasheetNo, rep.DatasheetNo)
	assert.Equal(t, models.StandardPart18, rep.Standard)
	assert.Equal(t, "reports/"+rep.ID+".html", rep.ExportKey)
	assert.True(t, strings.Contains(exp.html, "ENHANCED PRODUCTION DATA SHEET"))

	stored, err := a.Get(ctx, rep.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, rep.ExportKey, stored.ExportKey)

	list, err := a.List(ctx, models.ReportFilters{})
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestArchive_ExportFailureKeepsReport(t *testing.T) {
	ctx := context.Background()
	repo := storage.NewMemoryRepository()
	a := NewArchiver(repo, report.NewRenderer(), &fakeExporter{err: errors.New("bucket missing")})

	rep, err := a.Archive(ctx, generate(t))
	require.NoError(t, err)
	assert.Empty(t, rep.ExportKey)

	stored, err := a.Get(ctx, rep.ID)
	require.NoError(t, err)
	assert.NotNil(t, stored)
}

func TestArchive_RejectsInvalid(t *testing.T) {
	a := NewArchiver(storage.NewMemoryRepository(), report.NewRenderer(), nil)

	_, err := a.Archive(context.Background(), &models.ReportRecord{Type: models.ReportEnhanced})
	assert.ErrorIs(t, err, report.ErrInvalidReport)
}
