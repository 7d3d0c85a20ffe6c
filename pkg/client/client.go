// Package client is a Go SDK for the pds-engine HTTP API
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/pwpl/pds-engine/internal/models"
)

// Client talks to the /api/v1 endpoints of pds-engine
type Client struct {
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
	rest       *resty.Client
}

// Option configures the client
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithTimeout sets the client timeout
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// NewClient creates a new pds-engine client
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: 30 * time.Second,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.httpClient != nil {
		c.rest = resty.NewWithClient(c.httpClient)
	} else {
		c.rest = resty.New()
	}
	c.rest.
		SetBaseURL(c.baseURL).
		SetTimeout(c.timeout).
		SetHeader("Content-Type", "application/json")

	return c
}

// APIError is returned when the server answers with success=false
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error: %s - %s", e.Code, e.Message)
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// ReportResult is the body returned by the report generation endpoints
type ReportResult struct {
	Report              *models.ReportRecord `json:"report"`
	ArchiveID           string               `json:"archive_id,omitempty"`
	DatasheetIntegrated bool                 `json:"datasheet_integrated"`
}

// EnhancedRequest asks for a production data sheet
type EnhancedRequest struct {
	ModelName string          `json:"model_name"`
	Standard  models.Standard `json:"standard,omitempty"`
	Integrate *bool           `json:"integrate,omitempty"`
}

// ComplianceRequest asks for a standards compliance report
type ComplianceRequest struct {
	ProductName    string            `json:"product_name,omitempty"`
	Standard       models.Standard   `json:"standard"`
	WireType       string            `json:"wire_type"`
	ConductorSize  string            `json:"conductor_size,omitempty"`
	TestParameters map[string]string `json:"test_parameters,omitempty"`
}

// ListOptions contains options for listing archived reports
type ListOptions struct {
	Type     models.ReportType
	Standard models.Standard
	Limit    int
	Offset   int
}

// Health checks if the service is healthy
func (c *Client) Health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/health", nil, nil)
}

// Parse decodes a model name on the server
func (c *Client) Parse(ctx context.Context, modelName string) (*models.ParsedModel, error) {
	var out models.ParsedModel
	if err := c.do(ctx, http.MethodPost, "/api/v1/parse", map[string]string{"model_name": modelName}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GenerateStandard creates a standard data sheet for productName
func (c *Client) GenerateStandard(ctx context.Context, productName string) (*ReportResult, error) {
	var out ReportResult
	if err := c.do(ctx, http.MethodPost, "/api/v1/reports/standard", map[string]string{"product_name": productName}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GenerateEnhanced creates a production data sheet from a model name
func (c *Client) GenerateEnhanced(ctx context.Context, req EnhancedRequest) (*ReportResult, error) {
	var out ReportResult
	if err := c.do(ctx, http.MethodPost, "/api/v1/reports/enhanced", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GenerateCompliance evaluates test parameters against a standard
func (c *Client) GenerateCompliance(ctx context.Context, req ComplianceRequest) (*ReportResult, error) {
	var out ReportResult
	if err := c.do(ctx, http.MethodPost, "/api/v1/reports/compliance", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListReports retrieves archived reports
func (c *Client) ListReports(ctx context.Context, opts ListOptions) ([]*models.ArchivedReport, error) {
	q := url.Values{}
	if opts.Type != "" {
		q.Set("type", string(opts.Type))
	}
	if opts.Standard != "" {
		q.Set("standard", string(opts.Standard))
	}
	if opts.Limit > 0 {
		q.Set("limit", strconv.Itoa(opts.Limit))
	}
	if opts.Offset > 0 {
		q.Set("offset", strconv.Itoa(opts.Offset))
	}

	path := "/api/v1/reports"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var out struct {
		Reports []*models.ArchivedReport `json:"reports"`
		Total   int                      `json:"total"`
	}
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out.Reports, nil
}

// GetReport retrieves an archived report by ID
func (c *Client) GetReport(ctx context.Context, id string) (*models.ArchivedReport, error) {
	var out models.ArchivedReport
	if err := c.do(ctx, http.MethodGet, "/api/v1/reports/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetReportHTML retrieves the printable document of an archived report
func (c *Client) GetReportHTML(ctx context.Context, id string) (string, error) {
	return c.doRaw(ctx, http.MethodGet, "/api/v1/reports/"+url.PathEscape(id)+"/html", nil)
}

// RenderHTML renders rec on the server without archiving it
func (c *Client) RenderHTML(ctx context.Context, rec *models.ReportRecord) (string, error) {
	return c.doRaw(ctx, http.MethodPost, "/api/v1/render/html", rec)
}

// RenderText renders the plain-text summary of rec
func (c *Client) RenderText(ctx context.Context, rec *models.ReportRecord) (string, error) {
	return c.doRaw(ctx, http.MethodPost, "/api/v1/render/text", rec)
}

// ListStandards retrieves the supported standards
func (c *Client) ListStandards(ctx context.Context) ([]models.StandardInfo, error) {
	var out struct {
		Standards []models.StandardInfo `json:"standards"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/v1/standards", nil, &out); err != nil {
		return nil, err
	}
	return out.Standards, nil
}

// ListProducts retrieves stored product models matching search
func (c *Client) ListProducts(ctx context.Context, search string) ([]*models.ProductModel, error) {
	path := "/api/v1/products"
	if search != "" {
		path += "?search=" + url.QueryEscape(search)
	}

	var out struct {
		Products []*models.ProductModel `json:"products"`
	}
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out.Products, nil
}

// CreateProduct stores a product model
func (c *Client) CreateProduct(ctx context.Context, p *models.ProductModel) (*models.ProductModel, error) {
	var out models.ProductModel
	if err := c.do(ctx, http.MethodPost, "/api/v1/products", p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpsertDatasheet stores a production datasheet for search and integration
func (c *Client) UpsertDatasheet(ctx context.Context, ds *models.Datasheet) (*models.Datasheet, error) {
	var out models.Datasheet
	if err := c.do(ctx, http.MethodPost, "/api/v1/datasheets", ds, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// do performs a request against an enveloped endpoint and decodes data
// into out when it is non-nil
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	req := c.rest.R().SetContext(ctx)
	if body != nil {
		req.SetBody(body)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}

	var result envelope
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return fmt.Errorf("failed to unmarshal response (HTTP %d): %w", resp.StatusCode(), err)
	}

	if !result.Success {
		apiErr := &APIError{Status: resp.StatusCode(), Code: "unknown_error"}
		if result.Error != nil {
			apiErr.Code = result.Error.Code
			apiErr.Message = result.Error.Message
		}
		return apiErr
	}

	if out == nil || len(result.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(result.Data, out); err != nil {
		return fmt.Errorf("failed to unmarshal response data: %w", err)
	}
	return nil
}

// doRaw performs a request against a document endpoint. Error bodies are
// still enveloped.
func (c *Client) doRaw(ctx context.Context, method, path string, body any) (string, error) {
	req := c.rest.R().SetContext(ctx)
	if body != nil {
		req.SetBody(body)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}

	if resp.IsError() {
		var result envelope
		if err := json.Unmarshal(resp.Body(), &result); err == nil && result.Error != nil {
			return "", &APIError{Status: resp.StatusCode(), Code: result.Error.Code, Message: result.Error.Message}
		}
		return "", fmt.Errorf("HTTP %d: %s", resp.StatusCode(), resp.String())
	}

	return resp.String(), nil
}
