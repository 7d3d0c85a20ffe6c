package datasheets

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pwpl/pds-engine/internal/models"
)

var now = time.Date(2026, time.October, 19, 12, 0, 0, 0, time.UTC)

type fakeStore struct {
	sheets []*models.Datasheet
	err    error
}

func (f *fakeStore) ListDatasheets(context.Context) ([]*models.Datasheet, error) {
	return f.sheets, f.err
}

func (f *fakeStore) GetDatasheet(_ context.Context, id string) (*models.Datasheet, error) {
	for _, ds := range f.sheets {
		if ds.ID == id {
			return ds, nil
		}
	}
	return nil, nil
}

func newService(store Store) *Service {
	s := NewService(store)
	s.now = func() time.Time { return now }
	return s
}

func productionSheet() *models.Datasheet {
	return &models.Datasheet{
		ID:           "f1",
		Name:         "ATC 3C Production Sheet",
		MimeType:     models.MimeGoogleSheet,
		ModifiedTime: now.Add(-3 * 24 * time.Hour),
		Sheets: map[string][][]string{
			"Production Sheet": {
				{"Parameter", "Value", "Unit"},
				{"Conductor Type", "Tinned Copper", ""},
				{"AWG Size", "12", "AWG"},
				{"Insulation", "XLPE", ""},
				{"Temperature Rating", "-40 to +85", "°C"},
				{"Voltage Rating", "600", "V"},
				{"Standards", "DEF STAN 61-12", ""},
			},
		},
	}
}

func TestScore(t *testing.T) {
	tests := []struct {
		name     string
		file     string
		wire     string
		modified time.Time
		want     int
	}{
		{"keywords and full name", "ATC 3C production datasheet", "ATC 3C", time.Time{}, 10 + 10 + 5 + 5 + 20},
		{"recent bonus", "misc.xlsx", "zzz", now.Add(-2 * 24 * time.Hour), 15},
		{"month bonus", "misc.xlsx", "zzz", now.Add(-20 * 24 * time.Hour), 10},
		{"quarter bonus", "misc.xlsx", "zzz", now.Add(-60 * 24 * time.Hour), 5},
		{"old and unrelated", "misc.xlsx", "zzz", now.Add(-400 * 24 * time.Hour), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _ := Score(tt.file, NormalizeWireName(tt.wire), tt.modified, now)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeWireName(t *testing.T) {
	assert.Equal(t, "atc 3c x12 3730 mm", NormalizeWireName("  ATC 3C X12 (37/0.30) MM "))
	assert.Equal(t, "lfh-sheath", NormalizeWireName("LFH-Sheath!"))
}

func TestRank_FiltersAndOrders(t *testing.T) {
	sheets := []*models.Datasheet{
		{ID: "a", Name: "ATC wire notes", MimeType: models.MimeGoogleDoc},
		{ID: "b", Name: "ATC 3C production datasheet", MimeType: models.MimeXLSX},
		{ID: "c", Name: "ATC 3C production datasheet.pdf", MimeType: "application/pdf"},
		{ID: "d", Name: "unrelated", MimeType: models.MimeXLS},
	}

	matches := Rank(sheets, "ATC 3C", now)
	require.Len(t, matches, 2)
	assert.Equal(t, "b", matches[0].ID)
	assert.Equal(t, "a", matches[1].ID)
	assert.Equal(t, "https://docs.google.com/spreadsheets/d/b", matches[0].URL)
	assert.Equal(t, "https://docs.google.com/document/d/a", matches[1].URL)
	assert.Contains(t, matches[0].MatchedKeywords, "production")
}

func TestSearch_TopTen(t *testing.T) {
	store := &fakeStore{}
	for i := 0; i < 15; i++ {
		store.sheets = append(store.sheets, &models.Datasheet{
			ID:       fmt.Sprintf("id-%d", i),
			Name:     fmt.Sprintf("cable datasheet %d", i),
			MimeType: models.MimeGoogleSheet,
		})
	}

	res, err := newService(store).Search(context.Background(), "cable")
	require.NoError(t, err)
	assert.Len(t, res.Datasheets, MaxResults)
	assert.Equal(t, 15, res.TotalCount)
	assert.Equal(t, "cable", res.WireName)
}

func TestSearch_StoreError(t *testing.T) {
	_, err := newService(&fakeStore{err: errors.New("db down")}).Search(context.Background(), "x")
	assert.Error(t, err)
}

func TestIntegrate_FillsOnlyMissingFields(t *testing.T) {
	svc := newService(&fakeStore{sheets: []*models.Datasheet{productionSheet()}})

	report := map[string]any{
		"itemDescription":   "ATC 3C X12",
		"referenceStandard": "",
	}
	out, err := svc.Integrate(context.Background(), "ATC 3C", report)
	require.NoError(t, err)

	assert.Equal(t, "ATC 3C X12", out[FieldItemDescription])
	assert.Equal(t, "DEF STAN 61-12", out[FieldReferenceStandard])
	assert.Equal(t, "Tinned Copper", out[FieldConductorType])
	assert.Equal(t, "XLPE", out[FieldInsulationType])
	assert.Equal(t, "600", out[FieldVoltageRating])
	assert.Equal(t, "-40 to +85", out[FieldTemperatureRating])
	assert.Equal(t, "12", out[FieldAWGSize])

	prov, ok := out[ProvenanceKey].(models.DatasheetProvenance)
	require.True(t, ok)
	assert.Equal(t, "ATC 3C Production Sheet", prov.SourceFile)
	assert.Equal(t, "https://docs.google.com/spreadsheets/d/f1", prov.SourceURL)

	summaries, ok := out["datasheet_sheets"].(map[string]SheetSummary)
	require.True(t, ok)
	assert.Equal(t, 6, summaries["Production Sheet"].RowCount)

	// the caller's map is not modified
	assert.NotContains(t, report, ProvenanceKey)
}

func TestIntegrate_NoMatchReturnsReport(t *testing.T) {
	svc := newService(&fakeStore{})
	report := map[string]any{"itemDescription": "x"}

	out, err := svc.Integrate(context.Background(), "ATC", report)
	require.NoError(t, err)
	assert.Equal(t, report, out)
}

func TestIntegrateRecord(t *testing.T) {
	svc := newService(&fakeStore{sheets: []*models.Datasheet{productionSheet()}})
	rec := &models.ReportRecord{
		Type:              models.ReportEnhanced,
		ItemDescription:   "ATC 3C X12",
		ReferenceStandard: "DEF STAN 61-12 Part 18",
	}

	ok := IntegrateRecord(context.Background(), svc, "ATC 3C", rec)
	require.True(t, ok)
	require.NotNil(t, rec.ProductionDatasheet)
	assert.Equal(t, "ATC 3C Production Sheet", rec.ProductionDatasheet.SourceFile)
	assert.Equal(t, "ATC 3C X12", rec.ItemDescription)
	assert.Equal(t, "DEF STAN 61-12 Part 18", rec.ReferenceStandard)
	assert.Equal(t, "Tinned Copper", rec.Integrated[FieldConductorType])
	assert.Equal(t, "12", rec.Integrated[FieldAWGSize])
}

func TestIntegrateRecord_FailureLeavesRecord(t *testing.T) {
	svc := newService(&fakeStore{err: errors.New("db down")})
	rec := &models.ReportRecord{Type: models.ReportEnhanced, ItemDescription: "x"}

	assert.False(t, IntegrateRecord(context.Background(), svc, "x", rec))
	assert.Nil(t, rec.ProductionDatasheet)
	assert.Nil(t, rec.Integrated)
}

func TestDisabled(t *testing.T) {
	d := Disabled()
	res, err := d.Search(context.Background(), "ATC")
	require.NoError(t, err)
	assert.Empty(t, res.Datasheets)

	report := map[string]any{"a": "b"}
	out, err := d.Integrate(context.Background(), "ATC", report)
	require.NoError(t, err)
	assert.Equal(t, report, out)
}

func TestExtractFields_FirstSheetWins(t *testing.T) {
	ds := &models.Datasheet{Sheets: map[string][][]string{
		"B": {{"h"}, {"Voltage", "1000"}},
		"A": {{"h"}, {"Voltage Rating", "600"}, {"Gauge", ""}},
	}}
	fields := ExtractFields(ds)
	assert.Equal(t, "600", fields[FieldVoltageRating])
	assert.NotContains(t, fields, FieldAWGSize)
}

func TestRemoteClient(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		w.Header().Set("Content-Type", "application/json")

		switch r.URL.Path {
		case "/api/search-datasheets":
			assert.Equal(t, "ATC 3C", body["wire_name"])
			w.Write([]byte(`{"success":true,"datasheets":[{"id":"f1","name":"ATC 3C datasheet","url":"u","modified_time":"2026-10-18T10:00:00Z","relevance_score":45,"matched_keywords":["atc"],"mime_type":"application/vnd.ms-excel"}],"total_count":1}`))
		case "/api/integrate-datasheet":
			report := body["report_data"].(map[string]any)
			report[ProvenanceKey] = map[string]any{"source_file": "ATC 3C datasheet", "source_url": "u", "last_updated": "2026-10-18T10:00:00Z", "extraction_time": "2026-10-19T10:00:00.123456"}
			report[FieldVoltageRating] = "600"
			json.NewEncoder(w).Encode(map[string]any{"success": true, "enhanced_report": report})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	c := NewRemoteClient(srv.URL+"/", time.Second)

	res, err := c.Search(context.Background(), "ATC 3C")
	require.NoError(t, err)
	require.Len(t, res.Datasheets, 1)
	assert.Equal(t, 45, res.Datasheets[0].RelevanceScore)
	assert.Equal(t, 2026, res.Datasheets[0].ModifiedTime.Year())

	rec := &models.ReportRecord{Type: models.ReportEnhanced, ItemDescription: "ATC 3C"}
	require.True(t, IntegrateRecord(context.Background(), c, "ATC 3C", rec))
	assert.Equal(t, "ATC 3C datasheet", rec.ProductionDatasheet.SourceFile)
	assert.Equal(t, "2026-10-19T10:00:00.123456", rec.ProductionDatasheet.ExtractionTime)
	assert.Equal(t, "600", rec.Integrated[FieldVoltageRating])
}

func TestRemoteClient_Failure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"success":false,"error":"Wire name is required"}`))
	}))
	defer srv.Close()

	_, err := NewRemoteClient(srv.URL, time.Second).Search(context.Background(), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Wire name is required")
}
