package handlers

import (
	"log/slog"
	"net/http"

	"github.com/jwebster45206/cliffhanger/pkg/story"
)

// StorySummary is one catalog entry as the client sees it: the id used
// to start the story and its display title.
type StorySummary struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
}

type StoriesHandler struct {
	catalog *story.Catalog
	logger  *slog.Logger
}

func NewStoriesHandler(catalog *story.Catalog, logger *slog.Logger) *StoriesHandler {
	return &StoriesHandler{
		catalog: catalog,
		logger:  logger,
	}
}

// ServeHTTP handles GET /api/stories
func (h *StoriesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if r.Method != http.MethodGet {
		writeError(h.logger, w, http.StatusMethodNotAllowed, "Method not allowed. Supported methods: GET")
		return
	}

	titles := h.catalog.Titles()
	summaries := make([]StorySummary, 0, len(titles))
	for i, title := range titles {
		summaries = append(summaries, StorySummary{ID: i, Title: title})
	}

	writeJSON(h.logger, w, http.StatusOK, summaries)
}
