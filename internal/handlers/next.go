package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/jwebster45206/cliffhanger/internal/engine"
	"github.com/jwebster45206/cliffhanger/internal/storage"
)

// NextRequest advances the story to its next scripted scene. The choice
// is what the player picked on the previous screen; scene order is fixed
// regardless, so it is accepted for the client's benefit only.
type NextRequest struct {
	Choice string `json:"choice"`
}

type NextHandler struct {
	engine  *engine.Engine
	storage storage.Storage
	logger  *slog.Logger
}

func NewNextHandler(eng *engine.Engine, store storage.Storage, logger *slog.Logger) *NextHandler {
	return &NextHandler{
		engine:  eng,
		storage: store,
		logger:  logger,
	}
}

// ServeHTTP handles POST /api/next
func (h *NextHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if r.Method != http.MethodPost {
		writeError(h.logger, w, http.StatusMethodNotAllowed, "Method not allowed. Supported methods: POST")
		return
	}

	// An empty body means no choice was made; that's fine.
	var req NextRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		h.logger.Warn("Invalid request body", "error", err)
		writeError(h.logger, w, http.StatusBadRequest, "Invalid request body")
		return
	}

	id := sessionID(w, r)
	st, err := loadOrNewSession(r.Context(), h.storage, id)
	if err != nil {
		h.logger.Error("Failed to load session", "session_id", id, "error", err)
		writeError(h.logger, w, http.StatusInternalServerError, "Failed to load session")
		return
	}

	result := h.engine.AdvanceScene(r.Context(), st, req.Choice)

	// End means no story was active and nothing changed; skip the save.
	if !result.End {
		if err := h.storage.SaveSession(r.Context(), id, st); err != nil {
			h.logger.Error("Failed to save session", "session_id", id, "error", err)
			writeError(h.logger, w, http.StatusInternalServerError, "Failed to save session")
			return
		}
	}

	writeJSON(h.logger, w, http.StatusOK, result)
}
