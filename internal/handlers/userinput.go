package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/jwebster45206/cliffhanger/internal/engine"
	"github.com/jwebster45206/cliffhanger/internal/storage"
)

// UserInputRequest carries one free-form player action or question.
type UserInputRequest struct {
	Input string `json:"input"`
}

type UserInputHandler struct {
	engine  *engine.Engine
	storage storage.Storage
	logger  *slog.Logger
}

func NewUserInputHandler(eng *engine.Engine, store storage.Storage, logger *slog.Logger) *UserInputHandler {
	return &UserInputHandler{
		engine:  eng,
		storage: store,
		logger:  logger,
	}
}

// ServeHTTP handles POST /api/user-input
func (h *UserInputHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if r.Method != http.MethodPost {
		writeError(h.logger, w, http.StatusMethodNotAllowed, "Method not allowed. Supported methods: POST")
		return
	}

	var req UserInputRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("Invalid request body", "error", err)
		writeError(h.logger, w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(req.Input) == "" {
		writeError(h.logger, w, http.StatusBadRequest, "Input is required")
		return
	}

	id := sessionID(w, r)
	st, err := loadOrNewSession(r.Context(), h.storage, id)
	if err != nil {
		h.logger.Error("Failed to load session", "session_id", id, "error", err)
		writeError(h.logger, w, http.StatusInternalServerError, "Failed to load session")
		return
	}

	result := h.engine.HandleInput(r.Context(), st, req.Input)

	if !result.End {
		if err := h.storage.SaveSession(r.Context(), id, st); err != nil {
			h.logger.Error("Failed to save session", "session_id", id, "error", err)
			writeError(h.logger, w, http.StatusInternalServerError, "Failed to save session")
			return
		}
	}

	writeJSON(h.logger, w, http.StatusOK, result)
}
