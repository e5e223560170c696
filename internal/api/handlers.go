package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/megambeast/fincompare/internal/experiment"
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

// Health handlers

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if err := s.manager.Ping(r.Context()); err != nil {
		respondError(w, http.StatusServiceUnavailable, "not_ready", "service not ready")
		return
	}

	// Collaborators are reported but never gate readiness; the service
	// degrades to fallbacks when they are down.
	collaborators := make(map[string]string)
	for name, err := range s.registry.HealthCheckAll(r.Context()) {
		if err != nil {
			collaborators[name] = "unreachable"
			continue
		}
		collaborators[name] = "ok"
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":        "ready",
		"collaborators": collaborators,
	})
}

// Identity handler

func (s *Server) handleCreateIdentity(w http.ResponseWriter, r *http.Request) {
	userID := s.identity.NewUserID()
	variant := experiment.Assign(userID)

	slog.Info("identity created", "user_id", userID, "variant", variant)

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"user_id": userID,
		"variant": variant,
	})
}
