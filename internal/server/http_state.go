package server

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/groblegark/onboard/internal/events"
	"github.com/groblegark/onboard/internal/model"
)

// maxStateBytes bounds the accepted state body.
const maxStateBytes = 1 << 20

// handleGetState handles GET /api/clients/{id}/state. Unknown ids read as the
// empty object, never 404.
func (s *Server) handleGetState(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	state, err := s.store.GetState(r.Context(), id)
	if err != nil {
		slog.Error("failed to get state", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to get state")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(state)
}

// handlePutState handles PUT /api/clients/{id}/state. The body must be a JSON
// object; the whole prior state is replaced. Writing to an unseen id first
// creates the client (name = id) and then upserts the state. Both statements
// are idempotent, so no transaction: concurrent writers to the same new id
// are benign and the last commit wins.
func (s *Server) handlePutState(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	body, err := io.ReadAll(io.LimitReader(r.Body, maxStateBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read body")
		return
	}

	state, err := validateStateObject(body)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.store.EnsureClient(r.Context(), id); err != nil {
		slog.Error("failed to ensure client", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to save state")
		return
	}
	if err := s.store.PutState(r.Context(), id, state); err != nil {
		slog.Error("failed to put state", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to save state")
		return
	}

	s.publish(r.Context(), events.TopicStateUpdated, events.StateUpdated{ClientID: id, State: state})

	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// validateStateObject checks that body is a JSON object (not an array,
// scalar, or null) and returns it as state.
func validateStateObject(body []byte) (model.State, error) {
	var obj map[string]any
	if err := json.Unmarshal(body, &obj); err != nil {
		return nil, inputError("state must be a JSON object")
	}
	if obj == nil {
		// "null" unmarshals into a nil map without error.
		return nil, inputError("state must be a JSON object")
	}
	return model.State(body), nil
}
