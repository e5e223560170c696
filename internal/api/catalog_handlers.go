package api

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/megambeast/fincompare/internal/compare"
	"github.com/megambeast/fincompare/internal/models"
)

// Catalog handlers — category browsing and stateless product queries

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	type categoryInfo struct {
		ID           models.Category `json:"id"`
		DisplayName  string          `json:"display_name"`
		ProductCount int             `json:"product_count"`
		BalanceFacet bool            `json:"balance_facet"`
	}

	categories := make([]categoryInfo, 0, len(models.Categories()))
	for _, cat := range models.Categories() {
		categories = append(categories, categoryInfo{
			ID:           cat,
			DisplayName:  cat.DisplayName(),
			ProductCount: len(s.catalog.ListByCategory(cat)),
			BalanceFacet: cat.HasBalanceFacet(),
		})
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"categories": categories,
		"total":      len(categories),
	})
}

// handleListProducts serves a stateless filtered view of one category. The
// same facet semantics as session state apply, driven by query parameters.
func (s *Server) handleListProducts(w http.ResponseWriter, r *http.Request) {
	category := models.Category(chi.URLParam(r, "category"))
	if !category.Valid() {
		respondError(w, http.StatusNotFound, "not_found", "category not found")
		return
	}

	state := models.DefaultFilterState()
	q := r.URL.Query()
	state.SearchTerm = q.Get("search")
	if tier := q.Get("fee_tier"); tier != "" {
		state.FeeTier = models.FeeTier(tier)
	}
	if tier := q.Get("balance_tier"); tier != "" {
		state.BalanceTier = models.BalanceTier(tier)
	}
	if features := q.Get("features"); features != "" {
		state.RequiredFeatures = strings.Split(features, ",")
	}

	state = state.Normalize()
	if err := state.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	products := compare.Filter(s.catalog.ListByCategory(category), category, state)

	if field := models.SortField(q.Get("sort")); field != "" {
		if !field.Valid() {
			respondError(w, http.StatusBadRequest, "validation_error", "unknown sort field")
			return
		}
		dir := field.DefaultDirection()
		if d := models.SortDirection(q.Get("dir")); d == models.SortAsc || d == models.SortDesc {
			dir = d
		}
		products = compare.Sort(products, field, dir)
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"category": category,
		"products": products,
		"total":    len(products),
	})
}

func (s *Server) handleListFeatures(w http.ResponseWriter, r *http.Request) {
	category := models.Category(chi.URLParam(r, "category"))
	if !category.Valid() {
		respondError(w, http.StatusNotFound, "not_found", "category not found")
		return
	}

	features := s.catalog.Features(category)
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"category": category,
		"features": features,
		"total":    len(features),
	})
}

func (s *Server) handleGetProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		respondError(w, http.StatusBadRequest, "validation_error", "product id is required")
		return
	}

	product := s.catalog.Get(id)
	if product == nil {
		respondError(w, http.StatusNotFound, "not_found", "product not found")
		return
	}

	respondJSON(w, http.StatusOK, product)
}

// Recommendation handler

func (s *Server) handleRecommendations(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		respondError(w, http.StatusBadRequest, "validation_error", "user_id is required")
		return
	}

	category := models.Category(r.URL.Query().Get("category"))
	if !category.Valid() {
		respondError(w, http.StatusBadRequest, "validation_error", "valid category is required")
		return
	}

	recommendations := s.recommender.For(r.Context(), userID, category)
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"category":        category,
		"recommendations": recommendations,
		"total":           len(recommendations),
	})
}
