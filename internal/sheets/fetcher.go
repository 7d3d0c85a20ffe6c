package sheets

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/pwpl/pds-engine/internal/cache"
	"github.com/pwpl/pds-engine/internal/metrics"
)

// DataPath is appended to each configured base URL
const DataPath = "/sheet-data"

const cacheKey = "sheets:last"

// Source names where a Result came from
type Source string

const (
	SourceRemote   Source = "remote"
	SourceCache    Source = "cache"
	SourceOffline  Source = "offline"
	SourceDisabled Source = "disabled"
)

var errNoSheet = errors.New("no valid sheet found")

// Result is the outcome of a fetch. Rows is never empty.
type Result struct {
	Rows   [][]string `json:"rows"`
	Sheet  string     `json:"sheet,omitempty"`
	Source Source     `json:"source"`
	URL    string     `json:"url,omitempty"`
}

// Config configures a Fetcher
type Config struct {
	Enabled  bool
	BaseURLs []string
	Timeout  time.Duration
	CacheTTL time.Duration
}

// Fetcher loads sheet data from the first reachable endpoint
type Fetcher struct {
	cfg    Config
	client *resty.Client
	cache  cache.Client
}

// NewFetcher creates a new sheet fetcher. c may be nil.
func NewFetcher(cfg Config, c cache.Client) *Fetcher {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	client := resty.New().
		SetTimeout(cfg.Timeout).
		SetHeader("Accept", "application/json")

	return &Fetcher{
		cfg:    cfg,
		client: client,
		cache:  c,
	}
}

// Fetch tries each base URL in order and returns the first usable sheet.
// When every endpoint fails it falls back to the last cached sheet and then
// to OfflineSample. Failures are logged, never returned.
func (f *Fetcher) Fetch(ctx context.Context) Result {
	if !f.cfg.Enabled {
		metrics.SheetFetches.WithLabelValues(string(SourceDisabled)).Inc()
		return Result{Rows: OfflineSample, Source: SourceDisabled}
	}

	for _, base := range f.cfg.BaseURLs {
		url := strings.TrimRight(base, "/") + DataPath
		timer := metrics.NewTimer()

		rows, sheet, err := f.fetchOne(ctx, url)
		if err != nil {
			metrics.RecordSheetAttempt("error", timer.Duration())
			slog.Warn("sheet data fetch failed", "url", url, "error", err)
			continue
		}
		metrics.RecordSheetAttempt("ok", timer.Duration())
		metrics.SheetFetches.WithLabelValues(string(SourceRemote)).Inc()

		f.store(ctx, rows, sheet)
		return Result{Rows: rows, Sheet: sheet, Source: SourceRemote, URL: url}
	}

	if res, ok := f.cached(ctx); ok {
		slog.Warn("all sheet data endpoints failed, using cached sheet", "sheet", res.Sheet)
		metrics.SheetFetches.WithLabelValues(string(SourceCache)).Inc()
		return res
	}

	slog.Warn("all sheet data endpoints failed, falling back to offline sample",
		"endpoints", len(f.cfg.BaseURLs),
	)
	metrics.SheetFetches.WithLabelValues(string(SourceOffline)).Inc()
	return Result{Rows: OfflineSample, Source: SourceOffline}
}

func (f *Fetcher) fetchOne(ctx context.Context, url string) ([][]string, string, error) {
	resp, err := f.client.R().
		SetContext(ctx).
		Get(url)
	if err != nil {
		return nil, "", fmt.Errorf("request failed: %w", err)
	}
	if resp.IsError() {
		return nil, "", fmt.Errorf("HTTP %d", resp.StatusCode())
	}
	return Decode(resp.Body())
}

// Decode accepts either an object keyed by sheet name or a bare 2-D array.
// Cells that are not strings are formatted as JSON text.
func Decode(body []byte) ([][]string, string, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return nil, "", errors.New("empty response")
	}

	if body[0] == '[' {
		rows, err := decodeRows(body)
		if err != nil {
			return nil, "", err
		}
		if len(rows) == 0 {
			return nil, "", errNoSheet
		}
		return rows, "", nil
	}

	names, raw, err := decodeWorkbook(body)
	if err != nil {
		return nil, "", fmt.Errorf("invalid sheet payload: %w", err)
	}

	workbook := make(map[string][][]string, len(raw))
	valid := make([]string, 0, len(names))
	for _, name := range names {
		rows, err := decodeRows(raw[name])
		if err != nil {
			continue
		}
		workbook[name] = rows
		valid = append(valid, name)
	}

	name, ok := SelectSheet(valid)
	if !ok || len(workbook[name]) == 0 {
		return nil, "", errNoSheet
	}
	return workbook[name], name, nil
}

// decodeWorkbook reads a JSON object keeping its keys in document order.
// A repeated key keeps its first position and its last value.
func decodeWorkbook(body []byte) ([]string, map[string]json.RawMessage, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	if tok, err := dec.Token(); err != nil {
		return nil, nil, err
	} else if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, nil, errors.New("expected a JSON object")
	}

	var names []string
	raw := make(map[string]json.RawMessage)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, nil, errors.New("expected an object key")
		}
		var msg json.RawMessage
		if err := dec.Decode(&msg); err != nil {
			return nil, nil, err
		}
		if _, seen := raw[key]; !seen {
			names = append(names, key)
		}
		raw[key] = msg
	}
	if _, err := dec.Token(); err != nil {
		return nil, nil, err
	}
	return names, raw, nil
}

func decodeRows(msg json.RawMessage) ([][]string, error) {
	var cells [][]json.RawMessage
	if err := json.Unmarshal(msg, &cells); err != nil {
		return nil, fmt.Errorf("sheet is not a 2-D array: %w", err)
	}

	rows := make([][]string, len(cells))
	for i, row := range cells {
		rows[i] = make([]string, len(row))
		for j, c := range row {
			var s string
			if err := json.Unmarshal(c, &s); err == nil {
				rows[i][j] = s
				continue
			}
			if string(c) != "null" {
				rows[i][j] = string(c)
			}
		}
	}
	return rows, nil
}

type cachedSheet struct {
	Rows  [][]string `json:"rows"`
	Sheet string     `json:"sheet"`
}

func (f *Fetcher) store(ctx context.Context, rows [][]string, sheet string) {
	if f.cache == nil {
		return
	}
	data, err := json.Marshal(cachedSheet{Rows: rows, Sheet: sheet})
	if err != nil {
		return
	}
	if err := f.cache.Set(ctx, cacheKey, data, f.cfg.CacheTTL); err != nil {
		slog.Warn("failed to cache sheet data", "error", err)
	}
}

func (f *Fetcher) cached(ctx context.Context) (Result, bool) {
	if f.cache == nil {
		return Result{}, false
	}
	data, err := f.cache.Get(ctx, cacheKey)
	if err != nil {
		if !errors.Is(err, cache.ErrCacheMiss) {
			slog.Warn("failed to read cached sheet data", "error", err)
		}
		return Result{}, false
	}

	var cs cachedSheet
	if err := json.Unmarshal(data, &cs); err != nil || len(cs.Rows) == 0 {
		return Result{}, false
	}
	return Result{Rows: cs.Rows, Sheet: cs.Sheet, Source: SourceCache}, true
}
