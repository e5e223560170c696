package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/megambeast/fincompare/internal/compare"
	"github.com/megambeast/fincompare/internal/models"
)

// Session handlers

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req models.CreateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if req.Category == "" {
		respondError(w, http.StatusBadRequest, "validation_error", "category is required")
		return
	}

	session, err := s.manager.CreateSession(r.Context(), req)
	if err != nil {
		if errors.Is(err, compare.ErrCategoryUnknown) {
			respondError(w, http.StatusBadRequest, "validation_error", "unknown category")
			return
		}
		slog.Error("failed to create session", "error", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to create session")
		return
	}

	respondJSON(w, http.StatusCreated, session)
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	session, err := s.manager.GetSession(r.Context(), id)
	if err != nil {
		if errors.Is(err, compare.ErrSessionNotFound) {
			respondError(w, http.StatusNotFound, "not_found", "session not found")
			return
		}
		slog.Error("failed to get session", "error", err, "id", id)
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to get session")
		return
	}

	respondJSON(w, http.StatusOK, session)
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := s.manager.DeleteSession(r.Context(), id); err != nil {
		if errors.Is(err, compare.ErrSessionNotFound) {
			respondError(w, http.StatusNotFound, "not_found", "session not found")
			return
		}
		slog.Error("failed to delete session", "error", err, "id", id)
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to delete session")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"message": "session deleted",
	})
}

func (s *Server) handleSetCategory(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req models.SetCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	session, err := s.manager.SetCategory(r.Context(), id, req.Category)
	if err != nil {
		s.respondSessionError(w, err, id, "failed to set category")
		return
	}

	respondJSON(w, http.StatusOK, session)
}

func (s *Server) handleSetFilters(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var filters models.FilterState
	if err := json.NewDecoder(r.Body).Decode(&filters); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	session, err := s.manager.SetFilters(r.Context(), id, filters)
	if err != nil {
		s.respondSessionError(w, err, id, "failed to set filters")
		return
	}

	respondJSON(w, http.StatusOK, session)
}

func (s *Server) handleResetFilters(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	session, err := s.manager.ResetFilters(r.Context(), id)
	if err != nil {
		s.respondSessionError(w, err, id, "failed to reset filters")
		return
	}

	respondJSON(w, http.StatusOK, session)
}

func (s *Server) handleSort(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req models.SortRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	session, err := s.manager.SortBy(r.Context(), id, req.Field)
	if err != nil {
		s.respondSessionError(w, err, id, "failed to sort")
		return
	}

	respondJSON(w, http.StatusOK, session)
}

func (s *Server) handleToggleSelection(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	productID := chi.URLParam(r, "productID")
	if productID == "" {
		respondError(w, http.StatusBadRequest, "validation_error", "product id is required")
		return
	}

	session, err := s.manager.ToggleSelection(r.Context(), id, productID)
	if err != nil {
		s.respondSessionError(w, err, id, "failed to toggle selection")
		return
	}

	respondJSON(w, http.StatusOK, session)
}

func (s *Server) handleClearSelection(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	session, err := s.manager.ClearSelection(r.Context(), id)
	if err != nil {
		s.respondSessionError(w, err, id, "failed to clear selection")
		return
	}

	respondJSON(w, http.StatusOK, session)
}

// handleSessionProducts serves the filtered, sorted product list for the
// session's current state.
func (s *Server) handleSessionProducts(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	products, err := s.manager.VisibleProducts(r.Context(), id)
	if err != nil {
		s.respondSessionError(w, err, id, "failed to list products")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"products": products,
		"total":    len(products),
	})
}

func (s *Server) handleComparison(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	comparison, err := s.manager.Comparison(r.Context(), id)
	if err != nil {
		s.respondSessionError(w, err, id, "failed to build comparison")
		return
	}

	respondJSON(w, http.StatusOK, comparison)
}

// respondSessionError maps manager sentinel errors to HTTP status codes.
func (s *Server) respondSessionError(w http.ResponseWriter, err error, id, logMsg string) {
	switch {
	case errors.Is(err, compare.ErrSessionNotFound):
		respondError(w, http.StatusNotFound, "not_found", "session not found")
	case errors.Is(err, compare.ErrProductNotFound):
		respondError(w, http.StatusNotFound, "product_not_found", "product not found")
	case errors.Is(err, compare.ErrCategoryUnknown):
		respondError(w, http.StatusBadRequest, "validation_error", "unknown category")
	case errors.Is(err, compare.ErrFilterInvalid):
		respondError(w, http.StatusBadRequest, "validation_error", err.Error())
	case errors.Is(err, compare.ErrSortFieldUnknown):
		respondError(w, http.StatusBadRequest, "validation_error", "unknown sort field")
	default:
		slog.Error(logMsg, "error", err, "id", id)
		respondError(w, http.StatusInternalServerError, "internal_error", logMsg)
	}
}
