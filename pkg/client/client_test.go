package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pwpl/pds-engine/internal/api"
	"github.com/pwpl/pds-engine/internal/archive"
	"github.com/pwpl/pds-engine/internal/catalog"
	"github.com/pwpl/pds-engine/internal/config"
	"github.com/pwpl/pds-engine/internal/datasheets"
	"github.com/pwpl/pds-engine/internal/models"
	"github.com/pwpl/pds-engine/internal/report"
	"github.com/pwpl/pds-engine/internal/sheets"
	"github.com/pwpl/pds-engine/internal/specs"
	"github.com/pwpl/pds-engine/internal/storage"
)

func newTestClient(t *testing.T) *Client {
	t.Helper()

	repo := storage.NewMemoryRepository()
	loader, err := catalog.NewDefaultLoader()
	require.NoError(t, err)
	renderer := report.NewRenderer(report.WithPrintScript(false), report.WithLocation(time.UTC))

	srv := api.NewServer(config.ServerConfig{Port: 8080}, api.Deps{
		Pipeline:   report.NewPipeline(specs.NewPopulator(), report.NewAssembler()),
		Renderer:   renderer,
		Fetcher:    sheets.NewFetcher(sheets.Config{}, nil),
		Datasheets: datasheets.NewService(repo),
		Catalog:    loader,
		Repo:       repo,
		Archiver:   archive.NewArchiver(repo, renderer, nil),
	})

	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)
	return NewClient(ts.URL+"/", WithTimeout(5*time.Second))
}

func TestClient_GenerateAndFetch(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	require.NoError(t, c.Health(ctx))

	parsed, err := c.Parse(ctx, "ATC 3C X12 (37/0.30)")
	require.NoError(t, err)
	assert.Equal(t, "3", parsed.ConductorDetails.CoreCount)

	res, err := c.GenerateEnhanced(ctx, EnhancedRequest{ModelName: "ATC 3C X12 (37/0.30)"})
	require.NoError(t, err)
	require.NotNil(t, res.Report)
	require.NotEmpty(t, res.ArchiveID)

	stored, err := c.GetReport(ctx, res.ArchiveID)
	require.NoError(t, err)
	assert.Equal(t, res.Report.DatasheetNo, stored.DatasheetNo)

	html, err := c.GetReportHTML(ctx, res.ArchiveID)
	require.NoError(t, err)
	assert.Contains(t, html, "ENHANCED PRODUCTION DATA SHEET")

	text, err := c.RenderText(ctx, res.Report)
	require.NoError(t, err)
	assert.Contains(t, text, "SPECIFICATIONS:")

	list, err := c.ListReports(ctx, ListOptions{Type: models.ReportEnhanced, Limit: 10})
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestClient_Compliance(t *testing.T) {
	c := newTestClient(t)

	res, err := c.GenerateCompliance(context.Background(), ComplianceRequest{
		Standard: models.StandardPart31,
		WireType: "lf-sheath-85c",
	})
	require.NoError(t, err)
	assert.Equal(t, models.ReportCompliance, res.Report.Type)
	assert.False(t, res.Report.OverallCompliance)
}

func TestClient_CatalogAndProducts(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	standards, err := c.ListStandards(ctx)
	require.NoError(t, err)
	assert.Len(t, standards, 2)

	created, err := c.CreateProduct(ctx, &models.ProductModel{Name: "UL1007 22AWG"})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)

	products, err := c.ListProducts(ctx, "ul1007")
	require.NoError(t, err)
	assert.Len(t, products, 1)

	ds, err := c.UpsertDatasheet(ctx, &models.Datasheet{Name: "UL1007 production datasheet"})
	require.NoError(t, err)
	assert.Equal(t, models.MimeGoogleSheet, ds.MimeType)
}

func TestClient_APIErrors(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	_, err := c.GenerateEnhanced(ctx, EnhancedRequest{ModelName: ""})
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "validation_error", apiErr.Code)

	_, err = c.GetReport(ctx, "missing")
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "not_found", apiErr.Code)

	_, err = c.GetReportHTML(ctx, "missing")
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.Status)

	_, err = c.RenderHTML(ctx, &models.ReportRecord{Type: models.ReportStandard})
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "invalid_report", apiErr.Code)
}
