// Package datasheets searches stored production datasheets by wire name
// and merges the best match into generated reports.
package datasheets

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/pwpl/pds-engine/internal/metrics"
	"github.com/pwpl/pds-engine/internal/models"
)

// MaxResults caps the matches returned by a search
const MaxResults = 10

// Store supplies stored datasheets. GetDatasheet returns nil, nil when the
// id is unknown.
type Store interface {
	ListDatasheets(ctx context.Context) ([]*models.Datasheet, error)
	GetDatasheet(ctx context.Context, id string) (*models.Datasheet, error)
}

// SearchResult holds the top matches and the total number found
type SearchResult struct {
	WireName   string                  `json:"wire_name"`
	Datasheets []models.DatasheetMatch `json:"datasheets"`
	TotalCount int                     `json:"total_count"`
}

// Integrator searches datasheets and merges them into report data
type Integrator interface {
	Search(ctx context.Context, wireName string) (*SearchResult, error)
	Integrate(ctx context.Context, wireName string, report map[string]any) (map[string]any, error)
}

// Service implements Integrator over a local Store
type Service struct {
	store Store
	now   func() time.Time
}

// NewService creates a new datasheet service
func NewService(store Store) *Service {
	return &Service{
		store: store,
		now:   time.Now,
	}
}

// Search ranks stored datasheets against wireName
func (s *Service) Search(ctx context.Context, wireName string) (*SearchResult, error) {
	all, err := s.store.ListDatasheets(ctx)
	if err != nil {
		metrics.DatasheetSearches.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("failed to list datasheets: %w", err)
	}

	matches := Rank(all, wireName, s.now())
	total := len(matches)
	if len(matches) > MaxResults {
		matches = matches[:MaxResults]
	}
	if matches == nil {
		matches = []models.DatasheetMatch{}
	}

	outcome := "found"
	if total == 0 {
		outcome = "empty"
	}
	metrics.DatasheetSearches.WithLabelValues(outcome).Inc()

	slog.Debug("datasheet search",
		"wire_name", wireName,
		"matches", total,
	)

	return &SearchResult{
		WireName:   wireName,
		Datasheets: matches,
		TotalCount: total,
	}, nil
}

// Latest returns the best matching datasheet with its sheets, or nil when
// nothing matches.
func (s *Service) Latest(ctx context.Context, wireName string) (*models.Datasheet, error) {
	res, err := s.Search(ctx, wireName)
	if err != nil {
		return nil, err
	}
	if len(res.Datasheets) == 0 {
		return nil, nil
	}

	best := res.Datasheets[0]
	ds, err := s.store.GetDatasheet(ctx, best.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load datasheet %s: %w", best.ID, err)
	}
	if ds != nil && ds.URL == "" {
		ds.URL = best.URL
	}
	return ds, nil
}

// Get loads a datasheet by id, falling back to the best match for wireName
// when id is empty or unknown.
func (s *Service) Get(ctx context.Context, id, wireName string) (*models.Datasheet, error) {
	if id != "" {
		ds, err := s.store.GetDatasheet(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("failed to load datasheet %s: %w", id, err)
		}
		if ds != nil {
			if ds.URL == "" {
				ds.URL = DocumentURL(ds.ID, ds.MimeType)
			}
			return ds, nil
		}
	}
	return s.Latest(ctx, wireName)
}

// Integrate merges the best matching datasheet into a copy of report.
// Fields already present in report are left alone. When nothing matches
// report is returned unchanged.
func (s *Service) Integrate(ctx context.Context, wireName string, report map[string]any) (map[string]any, error) {
	ds, err := s.Latest(ctx, wireName)
	if err != nil {
		metrics.DatasheetIntegrations.WithLabelValues("error").Inc()
		return nil, err
	}
	if ds == nil {
		metrics.DatasheetIntegrations.WithLabelValues("no_match").Inc()
		return report, nil
	}

	out := maps.Clone(report)
	if out == nil {
		out = make(map[string]any)
	}

	out[ProvenanceKey] = models.DatasheetProvenance{
		SourceFile:     ds.Name,
		SourceURL:      ds.URL,
		LastUpdated:    ds.ModifiedTime.UTC().Format(time.RFC3339),
		ExtractionTime: s.now().UTC().Format(time.RFC3339),
	}

	if len(ds.Sheets) > 0 {
		out["datasheet_sheets"] = SheetSummaries(ds)
	}
	for key, value := range ExtractFields(ds) {
		if isBlank(out[key]) {
			out[key] = value
		}
	}
	if ds.Content != "" {
		out["datasheet_content"] = map[string]any{
			"text_content": Truncate(ds.Content, 1000),
			"full_length":  len(ds.Content),
		}
	}

	metrics.DatasheetIntegrations.WithLabelValues("integrated").Inc()
	slog.Info("integrated production datasheet",
		"wire_name", wireName,
		"source_file", ds.Name,
	)
	return out, nil
}

// SheetSummary describes one sheet of a datasheet without its rows
type SheetSummary struct {
	Headers     []string `json:"headers"`
	RowCount    int      `json:"row_count"`
	ColumnCount int      `json:"column_count"`
}

// SheetSummaries describes every sheet of ds. The header row is not
// counted as data.
func SheetSummaries(ds *models.Datasheet) map[string]SheetSummary {
	out := make(map[string]SheetSummary, len(ds.Sheets))
	for name, rows := range ds.Sheets {
		var sum SheetSummary
		if len(rows) > 0 {
			sum.Headers = rows[0]
			sum.ColumnCount = len(rows[0])
			sum.RowCount = len(rows) - 1
		}
		if sum.Headers == nil {
			sum.Headers = []string{}
		}
		out[name] = sum
	}
	return out
}

// Truncate shortens s to n runes followed by "..."
func Truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}

func isBlank(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(t) == ""
	default:
		return false
	}
}

// sortedSheetNames orders sheet names for deterministic extraction
func sortedSheetNames(ds *models.Datasheet) []string {
	return slices.Sorted(maps.Keys(ds.Sheets))
}
