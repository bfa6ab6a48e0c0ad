package server

import (
	"bytes"
	"log/slog"
	"net/http"

	"github.com/groblegark/onboard/internal/export"
)

// handleResetAll handles GET /api/admin/reset-all. Destructive: wipes every
// client and state row.
func (s *Server) handleResetAll(w http.ResponseWriter, r *http.Request) {
	if err := s.store.ResetAll(r.Context()); err != nil {
		slog.Error("failed to reset store", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to reset")
		return
	}

	slog.Info("all client data wiped via admin reset")
	writeJSON(w, http.StatusOK, map[string]any{
		"ok":      true,
		"message": "all clients and state deleted",
	})
}

// handleExport handles GET /api/admin/export: streams a JSONL snapshot of all
// clients and state to the caller, and uploads the same bytes to the
// configured destination when one is set. Upload failures are reported, not
// swallowed — the caller asked for a backup.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := export.SnapshotJSONL(r.Context(), s.store, &buf); err != nil {
		slog.Error("failed to build export snapshot", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to export")
		return
	}

	if s.exporter != nil {
		if err := s.exporter.Write(r.Context(), buf.Bytes()); err != nil {
			slog.Error("failed to upload export snapshot", "error", err)
			writeError(w, http.StatusInternalServerError, "failed to upload export")
			return
		}
		slog.Info("export snapshot uploaded", "bytes", buf.Len())
	}

	w.Header().Set("Content-Type", "application/x-ndjson")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}
