package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/hyperjump/katalog/internal/catalog"
	"github.com/hyperjump/katalog/internal/models"
)

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	tenantID := chi.URLParam(r, "tenantID")
	var query models.SearchQuery
	if !s.decode(w, r, &query) {
		return
	}
	s.logger.Debug("search request", zap.String("tenant", tenantID), zap.String("query", query.Query), zap.Int("limit", query.Limit))
	resp, err := s.engine.Search(r.Context(), tenantID, &query)
	if err != nil {
		s.respondEngineError(w, "search", err)
		return
	}
	s.respondJSON(w, http.StatusOK, resp)
}

func (s *Server) handlePublicSearch(w http.ResponseWriter, r *http.Request) {
	var query models.SearchQuery
	if !s.decode(w, r, &query) {
		return
	}
	s.logger.Debug("public search request", zap.String("query", query.Query), zap.Int("limit", query.Limit))
	resp, err := s.engine.PublicSearch(r.Context(), &query)
	if err != nil {
		s.respondEngineError(w, "public search", err)
		return
	}
	s.respondJSON(w, http.StatusOK, resp)
}

func (s *Server) handleTypeahead(w http.ResponseWriter, r *http.Request) {
	tenantID := chi.URLParam(r, "tenantID")
	var query models.TypeaheadQuery
	if !s.decode(w, r, &query) {
		return
	}
	resp, err := s.engine.Typeahead(r.Context(), tenantID, &query)
	if err != nil {
		s.respondEngineError(w, "typeahead", err)
		return
	}
	s.respondJSON(w, http.StatusOK, resp)
}

func (s *Server) handlePublicTypeahead(w http.ResponseWriter, r *http.Request) {
	var query models.TypeaheadQuery
	if !s.decode(w, r, &query) {
		return
	}
	resp, err := s.engine.PublicTypeahead(r.Context(), &query)
	if err != nil {
		s.respondEngineError(w, "public typeahead", err)
		return
	}
	s.respondJSON(w, http.StatusOK, resp)
}

func (s *Server) handleFacets(w http.ResponseWriter, r *http.Request) {
	tenantID := chi.URLParam(r, "tenantID")
	var query models.FacetQuery
	if !s.decode(w, r, &query) {
		return
	}
	resp, err := s.engine.Facets(r.Context(), tenantID, &query)
	if err != nil {
		s.respondEngineError(w, "facets", err)
		return
	}
	s.respondJSON(w, http.StatusOK, resp)
}

func (s *Server) handlePublicFacets(w http.ResponseWriter, r *http.Request) {
	var query models.FacetQuery
	if !s.decode(w, r, &query) {
		return
	}
	resp, err := s.engine.PublicFacets(r.Context(), &query)
	if err != nil {
		s.respondEngineError(w, "public facets", err)
		return
	}
	s.respondJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSuggestions(w http.ResponseWriter, r *http.Request) {
	tenantID := chi.URLParam(r, "tenantID")
	var query models.SuggestionQuery
	if !s.decode(w, r, &query) {
		return
	}
	resp, err := s.engine.Suggestions(r.Context(), tenantID, &query)
	if err != nil {
		s.respondEngineError(w, "suggestions", err)
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]interface{}{"suggestions": resp})
}

func (s *Server) handlePublicSuggestions(w http.ResponseWriter, r *http.Request) {
	var query models.SuggestionQuery
	if !s.decode(w, r, &query) {
		return
	}
	resp, err := s.engine.PublicSuggestions(r.Context(), &query)
	if err != nil {
		s.respondEngineError(w, "public suggestions", err)
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]interface{}{"suggestions": resp})
}

func (s *Server) handleUpsertRecord(w http.ResponseWriter, r *http.Request) {
	tenantID := chi.URLParam(r, "tenantID")
	var rec models.CatalogRecord
	if !s.decode(w, r, &rec) {
		return
	}
	catalog.PrepareRecords(tenantID, []*models.CatalogRecord{&rec})
	s.logger.Debug("upsert record request", zap.String("tenant", tenantID), zap.String("id", rec.ID))
	if err := s.store.UpsertRecord(r.Context(), &rec); err != nil {
		s.respondEngineError(w, "upsert record", err)
		return
	}
	s.respondJSON(w, http.StatusCreated, map[string]string{"id": rec.ID, "status": string(rec.Status)})
}

func (s *Server) handleGetRecord(w http.ResponseWriter, r *http.Request) {
	rec, err := s.store.GetRecord(r.Context(), chi.URLParam(r, "tenantID"), chi.URLParam(r, "id"))
	if err != nil {
		s.respondEngineError(w, "get record", err)
		return
	}
	s.respondJSON(w, http.StatusOK, rec)
}

func (s *Server) handleDeleteRecord(w http.ResponseWriter, r *http.Request) {
	tenantID, id := chi.URLParam(r, "tenantID"), chi.URLParam(r, "id")
	s.logger.Debug("delete record request", zap.String("tenant", tenantID), zap.String("id", id))
	if err := s.store.DeleteRecord(r.Context(), tenantID, id); err != nil {
		s.respondEngineError(w, "delete record", err)
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	count, err := s.store.CountRecords(ctx)
	if err != nil {
		s.logger.Error("status: count records failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	tenants, err := s.store.ListTenants(ctx)
	if err != nil {
		s.logger.Error("status: list tenants failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	resp := map[string]interface{}{
		"records": count,
		"tenants": tenants,
	}
	if s.config != nil {
		resp["config"] = map[string]interface{}{
			"database_path":   s.config.Storage.DatabasePath,
			"default_limit":   s.config.Search.DefaultLimit,
			"max_limit":       s.config.Search.MaxLimit,
			"typeahead_limit": s.config.Search.TypeaheadLimit,
		}
		if size, err := catalog.DatabaseSizeBytes(s.config.Storage.DatabasePath); err == nil {
			resp["disk_usage_bytes"] = size
		}
	}
	s.respondJSON(w, http.StatusOK, resp)
}

// decode reads a JSON body into v. An empty body leaves v at its zero value.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if r.Body == nil || r.Body == http.NoBody {
		return true
	}
	if err := json.NewDecoder(r.Body).Decode(v); err != nil && !errors.Is(err, io.EOF) {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

// respondEngineError maps catalog sentinel errors to HTTP status codes.
func (s *Server) respondEngineError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, catalog.ErrTenantRequired), errors.Is(err, catalog.ErrInvalidRecord):
		s.respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, catalog.ErrRecordNotFound):
		s.respondError(w, http.StatusNotFound, "record not found")
	default:
		s.logger.Error(op+" failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
	}
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}
