package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/groblegark/onboard/internal/events"
	"github.com/groblegark/onboard/internal/model"
	"github.com/groblegark/onboard/internal/slug"
	"github.com/groblegark/onboard/internal/store"
)

// nameInput is the request body for create and rename.
type nameInput struct {
	Name string `json:"name"`
}

func (in nameInput) trimmed() (string, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return "", inputError("name is required")
	}
	return name, nil
}

// handleListClients handles GET /api/clients.
func (s *Server) handleListClients(w http.ResponseWriter, r *http.Request) {
	clients, err := s.store.ListClients(r.Context())
	if err != nil {
		slog.Error("failed to list clients", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list clients")
		return
	}

	// Ensure the response is never null.
	if clients == nil {
		clients = []*model.Client{}
	}

	writeJSON(w, http.StatusOK, clients)
}

// handleCreateClient handles POST /api/clients. The id is derived from the
// name; posting a name whose slug already exists overwrites that client's
// name (last writer wins) and leaves its state alone.
func (s *Server) handleCreateClient(w http.ResponseWriter, r *http.Request) {
	var in nameInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	name, err := in.trimmed()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	client := &model.Client{ID: slug.Derive(name), Name: name}
	if err := s.store.UpsertClient(r.Context(), client); err != nil {
		slog.Error("failed to upsert client", "id", client.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to save client")
		return
	}

	s.publish(r.Context(), events.TopicClientCreated, events.ClientCreated{Client: client})

	writeJSON(w, http.StatusOK, client)
}

// handleRenameClient handles PUT /api/clients/{id}. Only the display name
// changes; the id and state stay as they are.
func (s *Server) handleRenameClient(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var in nameInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	name, err := in.trimmed()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	client, err := s.store.RenameClient(r.Context(), id, name)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "client not found")
		return
	}
	if err != nil {
		slog.Error("failed to rename client", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to rename client")
		return
	}

	s.publish(r.Context(), events.TopicClientRenamed, events.ClientRenamed{Client: client})

	writeJSON(w, http.StatusOK, client)
}

// handleDeleteClient handles DELETE /api/clients/{id}.
func (s *Server) handleDeleteClient(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	err := s.store.DeleteClient(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "client not found")
		return
	}
	if err != nil {
		slog.Error("failed to delete client", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to delete client")
		return
	}

	s.publish(r.Context(), events.TopicClientDeleted, events.ClientDeleted{ClientID: id})

	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
