package api

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pwpl/pds-engine/internal/compliance"
	"github.com/pwpl/pds-engine/internal/models"
)

// Catalog handlers: standards, wire types, conductor sizes and products

type standardResponse struct {
	*models.StandardInfo
	Details   models.StandardDetails  `json:"details"`
	Reference string                  `json:"reference"`
	Limits    []compliance.NamedLimit `json:"limits,omitempty"`
}

func (s *Server) handleListStandards(w http.ResponseWriter, r *http.Request) {
	standards := s.deps.Catalog.ListStandards()
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"standards":       standards,
		"conductor_sizes": s.deps.Catalog.ConductorSizes(),
		"total":           len(standards),
	})
}

func (s *Server) handleGetStandard(w http.ResponseWriter, r *http.Request) {
	id := models.Standard(chi.URLParam(r, "id"))
	info := s.deps.Catalog.GetStandard(id)
	if info == nil {
		respondError(w, http.StatusNotFound, "not_found", "standard not found")
		return
	}

	resp := standardResponse{
		StandardInfo: info,
		Details:      compliance.Details(id),
		Reference:    compliance.Reference(id),
	}
	if id == models.StandardPart31 {
		resp.Limits = compliance.Part31Limits
	}
	respondJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListProducts(w http.ResponseWriter, r *http.Request) {
	search := r.URL.Query().Get("search")
	limit, offset := 50, 0

	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if v, err := strconv.Atoi(limitStr); err == nil && v > 0 && v <= 200 {
			limit = v
		}
	}
	if offsetStr := r.URL.Query().Get("offset"); offsetStr != "" {
		if v, err := strconv.Atoi(offsetStr); err == nil && v >= 0 {
			offset = v
		}
	}

	products, err := s.deps.Repo.ListProducts(r.Context(), search, limit, offset)
	if err != nil {
		slog.Error("failed to list products", "error", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to list products")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"products": products,
		"total":    len(products),
	})
}

func (s *Server) handleGetProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	product, err := s.deps.Repo.GetProduct(r.Context(), id)
	if err != nil {
		slog.Error("failed to get product", "error", err, "id", id)
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to get product")
		return
	}
	if product == nil {
		respondError(w, http.StatusNotFound, "not_found", "product not found")
		return
	}
	respondJSON(w, http.StatusOK, product)
}

func (s *Server) handleCreateProduct(w http.ResponseWriter, r *http.Request) {
	var p models.ProductModel
	if err := decodeJSON(r, &p); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if strings.TrimSpace(p.Name) == "" {
		respondError(w, http.StatusBadRequest, "validation_error", "name is required")
		return
	}
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}

	if err := s.deps.Repo.CreateProduct(r.Context(), &p); err != nil {
		slog.Error("failed to create product", "error", err, "name", p.Name)
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to create product")
		return
	}

	respondJSON(w, http.StatusCreated, p)
}
