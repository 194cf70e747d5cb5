package handlers

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/jwebster45206/cliffhanger/internal/engine"
	"github.com/jwebster45206/cliffhanger/internal/storage"
)

type StartHandler struct {
	engine  *engine.Engine
	storage storage.Storage
	logger  *slog.Logger
}

func NewStartHandler(eng *engine.Engine, store storage.Storage, logger *slog.Logger) *StartHandler {
	return &StartHandler{
		engine:  eng,
		storage: store,
		logger:  logger,
	}
}

// ServeHTTP handles POST /api/start/{storyId}
func (h *StartHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if r.Method != http.MethodPost {
		writeError(h.logger, w, http.StatusMethodNotAllowed, "Method not allowed. Supported methods: POST")
		return
	}

	idStr := strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/start"), "/")
	storyIndex, err := strconv.Atoi(idStr)
	if err != nil {
		h.logger.Warn("Invalid story ID", "id", idStr, "error", err)
		writeError(h.logger, w, http.StatusBadRequest, "Invalid story ID")
		return
	}

	id := sessionID(w, r)
	st, err := loadOrNewSession(r.Context(), h.storage, id)
	if err != nil {
		h.logger.Error("Failed to load session", "session_id", id, "error", err)
		writeError(h.logger, w, http.StatusInternalServerError, "Failed to load session")
		return
	}

	result, err := h.engine.StartStory(r.Context(), st, storyIndex)
	if err != nil {
		h.logger.Warn("Story not found", "index", storyIndex, "error", err)
		writeError(h.logger, w, http.StatusNotFound, "Story not found")
		return
	}

	if err := h.storage.SaveSession(r.Context(), id, st); err != nil {
		h.logger.Error("Failed to save session", "session_id", id, "error", err)
		writeError(h.logger, w, http.StatusInternalServerError, "Failed to save session")
		return
	}

	writeJSON(h.logger, w, http.StatusOK, result)
}
