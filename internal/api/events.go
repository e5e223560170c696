package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gorilla/websocket"

	"github.com/megambeast/fincompare/internal/models"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Event handlers

func (s *Server) handleRecordEvent(w http.ResponseWriter, r *http.Request) {
	var ev models.Event
	if err := json.NewDecoder(r.Body).Decode(&ev); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if err := ev.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	// Fire and forget: recording never blocks or fails the request.
	s.tracker.Record(&ev)

	respondJSON(w, http.StatusAccepted, map[string]string{
		"message": "event accepted",
	})
}

func (s *Server) handleRecentEvents(w http.ResponseWriter, r *http.Request) {
	limit := 50 // default
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 {
			limit = l
		}
	}

	events, err := s.repo.ListInteractions(r.Context(), limit)
	if err != nil {
		slog.Error("failed to list interactions", "error", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to list events")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"events": events,
		"total":  len(events),
	})
}

// handleEventsWS streams interaction events to the client as they are
// recorded. Slow consumers miss events rather than slow the tracker down.
func (s *Server) handleEventsWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("failed to upgrade to websocket", "error", err)
		return
	}
	defer conn.Close()

	slog.Info("event feed websocket connected", "remote_addr", r.RemoteAddr)

	sub := s.tracker.Subscribe()
	defer s.tracker.Unsubscribe(sub)

	// Drain the read side so we notice the peer closing.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
					slog.Debug("websocket read error", "error", err)
				}
				return
			}
		}
	}()

	for {
		select {
		case <-done:
			slog.Info("event feed websocket disconnected", "remote_addr", r.RemoteAddr)
			return
		case ev := <-sub:
			data, err := json.Marshal(ev)
			if err != nil {
				slog.Error("failed to marshal event", "error", err)
				continue
			}
			if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
				slog.Debug("failed to send event", "error", err)
				return
			}
		}
	}
}
