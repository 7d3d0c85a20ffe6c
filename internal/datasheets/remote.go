package datasheets

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/pwpl/pds-engine/internal/metrics"
	"github.com/pwpl/pds-engine/internal/models"
)

// RemoteClient implements Integrator against a separately deployed
// datasheet service
type RemoteClient struct {
	client *resty.Client
}

// NewRemoteClient creates a client for the datasheet service at baseURL
func NewRemoteClient(baseURL string, timeout time.Duration) *RemoteClient {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	client := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json")

	return &RemoteClient{client: client}
}

type remoteSearchResponse struct {
	Success    bool                 `json:"success"`
	Message    string               `json:"message"`
	Datasheets []remoteDatasheetHit `json:"datasheets"`
	TotalCount int                  `json:"total_count"`
	Error      string               `json:"error"`
}

type remoteDatasheetHit struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	URL             string   `json:"url"`
	ModifiedTime    string   `json:"modified_time"`
	RelevanceScore  int      `json:"relevance_score"`
	MatchedKeywords []string `json:"matched_keywords"`
	MimeType        string   `json:"mime_type"`
}

type remoteIntegrateResponse struct {
	Success        bool           `json:"success"`
	EnhancedReport map[string]any `json:"enhanced_report"`
	Error          string         `json:"error"`
}

// Search posts the wire name to the search endpoint
func (c *RemoteClient) Search(ctx context.Context, wireName string) (*SearchResult, error) {
	var out remoteSearchResponse
	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(map[string]string{"wire_name": wireName}).
		Post("/api/search-datasheets")
	if err != nil {
		metrics.DatasheetSearches.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("datasheet search request failed: %w", err)
	}
	if err := decodeRemote(resp, &out); err != nil {
		metrics.DatasheetSearches.WithLabelValues("error").Inc()
		return nil, err
	}
	if !out.Success {
		metrics.DatasheetSearches.WithLabelValues("error").Inc()
		return nil, remoteError(out.Error)
	}

	matches := make([]models.DatasheetMatch, 0, len(out.Datasheets))
	for _, hit := range out.Datasheets {
		modified, _ := time.Parse(time.RFC3339, hit.ModifiedTime)
		keywords := hit.MatchedKeywords
		if keywords == nil {
			keywords = []string{}
		}
		matches = append(matches, models.DatasheetMatch{
			ID:              hit.ID,
			Name:            hit.Name,
			URL:             hit.URL,
			MimeType:        hit.MimeType,
			ModifiedTime:    modified,
			RelevanceScore:  hit.RelevanceScore,
			MatchedKeywords: keywords,
		})
	}

	total := out.TotalCount
	if total < len(matches) {
		total = len(matches)
	}

	outcome := "found"
	if total == 0 {
		outcome = "empty"
	}
	metrics.DatasheetSearches.WithLabelValues(outcome).Inc()

	return &SearchResult{
		WireName:   wireName,
		Datasheets: matches,
		TotalCount: total,
	}, nil
}

// Integrate posts the report to the integration endpoint
func (c *RemoteClient) Integrate(ctx context.Context, wireName string, report map[string]any) (map[string]any, error) {
	var out remoteIntegrateResponse
	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(map[string]any{
			"wire_name":   wireName,
			"report_data": report,
		}).
		Post("/api/integrate-datasheet")
	if err != nil {
		metrics.DatasheetIntegrations.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("datasheet integration request failed: %w", err)
	}
	if err := decodeRemote(resp, &out); err != nil {
		metrics.DatasheetIntegrations.WithLabelValues("error").Inc()
		return nil, err
	}
	if !out.Success {
		metrics.DatasheetIntegrations.WithLabelValues("error").Inc()
		return nil, remoteError(out.Error)
	}
	if out.EnhancedReport == nil {
		metrics.DatasheetIntegrations.WithLabelValues("no_match").Inc()
		return report, nil
	}

	metrics.DatasheetIntegrations.WithLabelValues("integrated").Inc()
	return out.EnhancedReport, nil
}

// decodeRemote unmarshals the body even on error statuses, since the
// service reports failures as {success: false, error}
func decodeRemote(resp *resty.Response, out any) error {
	if err := json.Unmarshal(resp.Body(), out); err != nil {
		if resp.IsError() {
			return fmt.Errorf("datasheet service returned HTTP %d", resp.StatusCode())
		}
		return fmt.Errorf("invalid datasheet service response: %w", err)
	}
	return nil
}

func remoteError(msg string) error {
	if msg == "" {
		return errors.New("datasheet service reported failure")
	}
	return fmt.Errorf("datasheet service: %s", msg)
}
