package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/pwpl/pds-engine/internal/datasheets"
	"github.com/pwpl/pds-engine/internal/health"
	"github.com/pwpl/pds-engine/internal/metrics"
	"github.com/pwpl/pds-engine/internal/modelname"
	"github.com/pwpl/pds-engine/internal/models"
	"github.com/pwpl/pds-engine/internal/report"
	"github.com/pwpl/pds-engine/internal/sheets"
)

// Response helpers

type apiResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *apiError   `json:"error,omitempty"`
}

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	resp := apiResponse{
		Success: status >= 200 && status < 300,
		Data:    data,
	}

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	resp := apiResponse{
		Success: false,
		Error: &apiError{
			Code:    code,
			Message: message,
		},
	}

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode error response", "error", err)
	}
}

// respondReportError maps generation and validation failures onto the
// error envelope
func respondReportError(w http.ResponseWriter, reportType models.ReportType, err error) {
	switch {
	case errors.Is(err, report.ErrInvalidInput):
		metrics.RecordReportError(string(reportType), "invalid_input")
		respondError(w, http.StatusBadRequest, "validation_error", err.Error())
	case errors.Is(err, report.ErrInvalidReport):
		metrics.RecordReportError(string(reportType), "invalid_report")
		respondError(w, http.StatusUnprocessableEntity, "invalid_report", err.Error())
	default:
		metrics.RecordReportError(string(reportType), "internal")
		slog.Error("failed to produce report", "type", reportType, "error", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to produce report")
	}
}

func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	return dec.Decode(v)
}

// Health handlers

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	results := s.deps.Health.HealthCheckAll(r.Context())

	checks := make(map[string]string, len(results))
	for name, err := range results {
		if err != nil {
			slog.Warn("dependency not ready", "dependency", name, "error", err)
			checks[name] = err.Error()
			continue
		}
		checks[name] = "ok"
	}

	if !health.Healthy(results) {
		respondError(w, http.StatusServiceUnavailable, "not_ready", "service not ready")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ready",
		"checks": checks,
	})
}

// Parse handler

type parseRequest struct {
	ModelName string `json:"model_name"`
}

func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	var req parseRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if strings.TrimSpace(req.ModelName) == "" {
		respondError(w, http.StatusBadRequest, "validation_error", "model_name is required")
		return
	}

	respondJSON(w, http.StatusOK, modelname.Parse(req.ModelName))
}

// Report handlers

type standardReportRequest struct {
	ProductName string `json:"product_name"`
}

type enhancedReportRequest struct {
	ModelName string          `json:"model_name"`
	Standard  models.Standard `json:"standard,omitempty"`
	Integrate *bool           `json:"integrate,omitempty"`
}

type reportResponse struct {
	Report              *models.ReportRecord `json:"report"`
	ArchiveID           string               `json:"archive_id,omitempty"`
	DatasheetIntegrated bool                 `json:"datasheet_integrated"`
}

func (s *Server) handleStandardReport(w http.ResponseWriter, r *http.Request) {
	var req standardReportRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if err := report.ValidateProductName(req.ProductName); err != nil {
		respondReportError(w, models.ReportStandard, err)
		return
	}

	rec := s.deps.Pipeline.Assembler().BuildStandardReport(req.ProductName)
	if err := report.Validate(rec); err != nil {
		respondReportError(w, models.ReportStandard, err)
		return
	}

	metrics.RecordReport(string(rec.Type), "")
	respondJSON(w, http.StatusCreated, s.archive(r, rec, false))
}

func (s *Server) handleEnhancedReport(w http.ResponseWriter, r *http.Request) {
	var req enhancedReportRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	rec, err := s.deps.Pipeline.Generate(req.ModelName, req.Standard)
	if err != nil {
		respondReportError(w, models.ReportEnhanced, err)
		return
	}

	integrated := false
	if req.Integrate == nil || *req.Integrate {
		integrated = datasheets.IntegrateRecord(r.Context(), s.deps.Integrator, req.ModelName, rec)
	}

	metrics.RecordReport(string(rec.Type), string(rec.StandardName()))
	slog.Info("production data sheet generated",
		"model_name", req.ModelName,
		"standard", rec.StandardName(),
		"datasheet_no", rec.DatasheetNo,
		"datasheet_integrated", integrated,
	)

	respondJSON(w, http.StatusCreated, s.archive(r, rec, integrated))
}

func (s *Server) handleComplianceReport(w http.ResponseWriter, r *http.Request) {
	var req report.ComplianceRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	name := req.ProductName
	if strings.TrimSpace(name) == "" {
		name = req.WireType
	}
	if err := report.ValidateInput(name, req.Standard); err != nil {
		respondReportError(w, models.ReportCompliance, err)
		return
	}
	if req.ProductName == "" {
		req.ProductName = req.WireType
	}

	rec := s.deps.Pipeline.Assembler().BuildComplianceReport(req)
	if err := report.Validate(rec); err != nil {
		respondReportError(w, models.ReportCompliance, err)
		return
	}

	metrics.RecordReport(string(rec.Type), string(rec.Standard))
	metrics.RecordCompliance(string(rec.Standard), rec.OverallCompliance)

	respondJSON(w, http.StatusCreated, s.archive(r, rec, false))
}

// archive stores rec when archiving is enabled. Failures are logged and
// the report is still returned.
func (s *Server) archive(r *http.Request, rec *models.ReportRecord, integrated bool) reportResponse {
	resp := reportResponse{Report: rec, DatasheetIntegrated: integrated}
	if s.deps.Archiver == nil {
		return resp
	}

	stored, err := s.deps.Archiver.Archive(r.Context(), rec)
	if err != nil {
		slog.Error("failed to archive report", "datasheet_no", rec.DatasheetNo, "error", err)
		return resp
	}
	resp.ArchiveID = stored.ID
	return resp
}

func (s *Server) handleListReports(w http.ResponseWriter, r *http.Request) {
	if s.deps.Archiver == nil {
		respondError(w, http.StatusNotFound, "not_found", "report archive is disabled")
		return
	}

	filters := models.ReportFilters{
		Type:     models.ReportType(r.URL.Query().Get("type")),
		Standard: models.Standard(r.URL.Query().Get("standard")),
		Limit:    50, // default
		Offset:   0,
	}

	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil && limit > 0 {
			filters.Limit = limit
		}
	}

	if offsetStr := r.URL.Query().Get("offset"); offsetStr != "" {
		if offset, err := strconv.Atoi(offsetStr); err == nil && offset >= 0 {
			filters.Offset = offset
		}
	}

	reports, err := s.deps.Archiver.List(r.Context(), filters)
	if err != nil {
		slog.Error("failed to list reports", "error", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to list reports")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"reports": reports,
		"total":   len(reports),
	})
}

func (s *Server) getArchived(w http.ResponseWriter, r *http.Request) *models.ArchivedReport {
	if s.deps.Archiver == nil {
		respondError(w, http.StatusNotFound, "not_found", "report archive is disabled")
		return nil
	}

	id := chi.URLParam(r, "id")
	rep, err := s.deps.Archiver.Get(r.Context(), id)
	if err != nil {
		slog.Error("failed to get report", "error", err, "id", id)
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to get report")
		return nil
	}
	if rep == nil {
		respondError(w, http.StatusNotFound, "not_found", "report not found")
		return nil
	}
	return rep
}

func (s *Server) handleGetReport(w http.ResponseWriter, r *http.Request) {
	if rep := s.getArchived(w, r); rep != nil {
		respondJSON(w, http.StatusOK, rep)
	}
}

func (s *Server) handleGetReportHTML(w http.ResponseWriter, r *http.Request) {
	if rep := s.getArchived(w, r); rep != nil {
		s.writeHTML(w, rep.Record)
	}
}

// Render handlers

func (s *Server) handleRenderHTML(w http.ResponseWriter, r *http.Request) {
	var rec models.ReportRecord
	if err := decodeJSON(r, &rec); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	s.writeHTML(w, &rec)
}

func (s *Server) handleRenderText(w http.ResponseWriter, r *http.Request) {
	var rec models.ReportRecord
	if err := decodeJSON(r, &rec); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	var buf bytes.Buffer
	if err := s.deps.Renderer.RenderText(&buf, &rec); err != nil {
		respondReportError(w, rec.Type, err)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

// writeHTML renders into a buffer first so a failed render sends no
// partial document
func (s *Server) writeHTML(w http.ResponseWriter, rec *models.ReportRecord) {
	var buf bytes.Buffer
	if err := s.deps.Renderer.RenderHTML(&buf, rec); err != nil {
		respondReportError(w, rec.Type, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

// Sheet handlers

type sheetResponse struct {
	sheets.Result
	Fields map[string]string `json:"fields"`
}

func (s *Server) handleFetchSheet(w http.ResponseWriter, r *http.Request) {
	res := s.deps.Fetcher.Fetch(r.Context())
	respondJSON(w, http.StatusOK, sheetResponse{
		Result: res,
		Fields: sheets.MapRows(res.Rows),
	})
}
