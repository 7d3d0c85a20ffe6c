package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pwpl/pds-engine/internal/datasheets"
	"github.com/pwpl/pds-engine/internal/models"
)

// Datasheet integration handlers. These keep the flat
// {success, message, ..., error} bodies the sheet and datasheet clients
// already speak, rather than the /api/v1 envelope.

func respondFlat(w http.ResponseWriter, status int, body map[string]interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func respondFlatError(w http.ResponseWriter, status int, message string) {
	respondFlat(w, status, map[string]interface{}{
		"success": false,
		"error":   message,
	})
}

type wireRequest struct {
	WireName       string                 `json:"wire_name"`
	FileID         string                 `json:"file_id"`
	ReportData     map[string]interface{} `json:"report_data"`
	StandardName   string                 `json:"standard_name"`
	AdditionalData map[string]interface{} `json:"additional_data"`
}

func decodeWireRequest(w http.ResponseWriter, r *http.Request) (*wireRequest, bool) {
	var req wireRequest
	if err := decodeJSON(r, &req); err != nil {
		respondFlatError(w, http.StatusBadRequest, "Invalid JSON body")
		return nil, false
	}
	req.WireName = strings.TrimSpace(req.WireName)
	req.FileID = strings.TrimSpace(req.FileID)
	return &req, true
}

func (s *Server) handleDatasheetHealth(w http.ResponseWriter, r *http.Request) {
	respondFlat(w, http.StatusOK, map[string]interface{}{
		"status":  "healthy",
		"message": "Datasheet integration API is running",
		"version": "1.0.0",
	})
}

func (s *Server) handleTestConnection(w http.ResponseWriter, r *http.Request) {
	res, err := s.deps.Integrator.Search(r.Context(), "test")
	if err != nil {
		slog.Error("datasheet connection test failed", "error", err)
		respondFlat(w, http.StatusInternalServerError, map[string]interface{}{
			"success":           false,
			"error":             fmt.Sprintf("Datasheet store connection failed: %v", err),
			"connection_status": "failed",
		})
		return
	}

	respondFlat(w, http.StatusOK, map[string]interface{}{
		"success":           true,
		"message":           "Datasheet store connection successful",
		"connection_status": "connected",
		"folder_access":     "success",
		"files_found":       res.TotalCount,
	})
}

func (s *Server) handleSearchDatasheets(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeWireRequest(w, r)
	if !ok {
		return
	}
	if req.WireName == "" {
		respondFlatError(w, http.StatusBadRequest, "Wire name is required")
		return
	}

	res, err := s.deps.Integrator.Search(r.Context(), req.WireName)
	if err != nil {
		slog.Error("failed to search datasheets", "wire_name", req.WireName, "error", err)
		respondFlatError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to search datasheets: %v", err))
		return
	}

	if len(res.Datasheets) == 0 {
		respondFlat(w, http.StatusOK, map[string]interface{}{
			"success":    true,
			"message":    "No datasheets found for wire: " + req.WireName,
			"datasheets": []models.DatasheetMatch{},
			"wire_name":  req.WireName,
		})
		return
	}

	respondFlat(w, http.StatusOK, map[string]interface{}{
		"success":     true,
		"message":     fmt.Sprintf("Found %d datasheets for wire: %s", res.TotalCount, req.WireName),
		"datasheets":  res.Datasheets,
		"wire_name":   req.WireName,
		"total_count": res.TotalCount,
	})
}

func (s *Server) handleGetDatasheet(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeWireRequest(w, r)
	if !ok {
		return
	}
	if req.FileID == "" {
		respondFlatError(w, http.StatusBadRequest, "File ID is required")
		return
	}

	ds, err := s.deps.Datasheets.Get(r.Context(), req.FileID, req.WireName)
	if err != nil {
		slog.Error("failed to get datasheet", "file_id", req.FileID, "error", err)
		respondFlatError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to get datasheet: %v", err))
		return
	}
	if ds == nil {
		respondFlatError(w, http.StatusNotFound, "Failed to extract datasheet data for wire: "+req.WireName)
		return
	}

	body := map[string]interface{}{
		"file_name":     ds.Name,
		"file_id":       ds.ID,
		"file_url":      ds.URL,
		"modified_time": ds.ModifiedTime.UTC().Format(time.RFC3339),
		"sheets":        datasheets.SheetSummaries(ds),
		"summary":       datasheets.ExtractFields(ds),
	}
	if ds.Content != "" {
		body["content"] = map[string]interface{}{
			"text_content": datasheets.Truncate(ds.Content, 2000),
			"full_length":  len(ds.Content),
		}
	}

	respondFlat(w, http.StatusOK, map[string]interface{}{
		"success":   true,
		"message":   "Successfully retrieved datasheet data for " + ds.Name,
		"datasheet": body,
	})
}

func (s *Server) handleIntegrateDatasheet(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeWireRequest(w, r)
	if !ok {
		return
	}
	if req.WireName == "" {
		respondFlatError(w, http.StatusBadRequest, "Wire name is required")
		return
	}
	if len(req.ReportData) == 0 {
		respondFlatError(w, http.StatusBadRequest, "Report data is required")
		return
	}

	enhanced, err := s.deps.Integrator.Integrate(r.Context(), req.WireName, req.ReportData)
	if err != nil {
		slog.Error("failed to integrate datasheet", "wire_name", req.WireName, "error", err)
		respondFlatError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to integrate datasheet: %v", err))
		return
	}

	respondFlat(w, http.StatusOK, map[string]interface{}{
		"success":         true,
		"message":         "Successfully integrated datasheet data for wire: " + req.WireName,
		"enhanced_report": enhanced,
	})
}

func (s *Server) handleAutoGenerateReport(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeWireRequest(w, r)
	if !ok {
		return
	}
	if req.WireName == "" {
		respondFlatError(w, http.StatusBadRequest, "Wire name is required")
		return
	}

	standard := req.StandardName
	if standard == "" {
		standard = "DEF STAN 61-12"
	}
	additional := req.AdditionalData
	if additional == nil {
		additional = map[string]interface{}{}
	}

	base := map[string]interface{}{
		"wire_name":       req.WireName,
		"standard_name":   standard,
		"generation_time": time.Now().UTC().Format(time.RFC3339),
		"additional_data": additional,
		"status":          "generated",
	}

	enhanced, err := s.deps.Integrator.Integrate(r.Context(), req.WireName, base)
	if err != nil {
		slog.Warn("datasheet integration failed", "wire_name", req.WireName, "error", err)
		base["datasheet_integration"] = "failed"
		base["datasheet_error"] = err.Error()
	} else {
		base = enhanced
		base["datasheet_integration"] = "success"
	}

	respondFlat(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Successfully generated report for wire: " + req.WireName,
		"report":  base,
	})
}

// Sheet service handlers

func (s *Server) handleSheetData(w http.ResponseWriter, r *http.Request) {
	ds, err := s.deps.Datasheets.Latest(r.Context(), "production")
	if err != nil {
		slog.Error("failed to load sheet data", "error", err)
		respondFlatError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to get sheet data: %v", err))
		return
	}
	if ds == nil || len(ds.Sheets) == 0 {
		respondFlatError(w, http.StatusNotFound, "No production datasheets found")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(ds.Sheets); err != nil {
		slog.Error("failed to encode sheet data", "error", err)
	}
}

func (s *Server) handleListSheets(w http.ResponseWriter, r *http.Request) {
	res, err := s.deps.Datasheets.Search(r.Context(), "production")
	if err != nil {
		slog.Error("failed to list sheets", "error", err)
		respondFlatError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to list sheets: %v", err))
		return
	}

	limit := min(len(res.Datasheets), 5)
	sheets := make([]map[string]interface{}, 0, limit)
	for _, m := range res.Datasheets[:limit] {
		sheets = append(sheets, map[string]interface{}{
			"name":     m.Name,
			"id":       m.ID,
			"url":      m.URL,
			"modified": m.ModifiedTime.UTC().Format(time.RFC3339),
			"type":     "production_datasheet",
		})
	}

	respondFlat(w, http.StatusOK, map[string]interface{}{
		"success":     true,
		"sheets":      sheets,
		"total_count": res.TotalCount,
	})
}

// Stored datasheet management

func (s *Server) handleListDatasheets(w http.ResponseWriter, r *http.Request) {
	list, err := s.deps.Repo.ListDatasheets(r.Context())
	if err != nil {
		slog.Error("failed to list datasheets", "error", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to list datasheets")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"datasheets": list,
		"total":      len(list),
	})
}

func (s *Server) handleUpsertDatasheet(w http.ResponseWriter, r *http.Request) {
	var ds models.Datasheet
	if err := decodeJSON(r, &ds); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if strings.TrimSpace(ds.Name) == "" {
		respondError(w, http.StatusBadRequest, "validation_error", "name is required")
		return
	}
	if ds.MimeType == "" {
		ds.MimeType = models.MimeGoogleSheet
	}
	if ds.ID == "" {
		ds.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	if ds.ModifiedTime.IsZero() {
		ds.ModifiedTime = now
	}
	if ds.CreatedAt.IsZero() {
		ds.CreatedAt = now
	}

	if err := s.deps.Repo.UpsertDatasheet(r.Context(), &ds); err != nil {
		slog.Error("failed to store datasheet", "error", err, "name", ds.Name)
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to store datasheet")
		return
	}

	slog.Info("datasheet stored", "id", ds.ID, "name", ds.Name, "sheets", len(ds.Sheets))
	respondJSON(w, http.StatusCreated, ds)
}
