package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwebster45206/cliffhanger/internal/engine"
	"github.com/jwebster45206/cliffhanger/internal/services"
	"github.com/jwebster45206/cliffhanger/internal/storage"
	"github.com/jwebster45206/cliffhanger/pkg/continuity"
	"github.com/jwebster45206/cliffhanger/pkg/story"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))
}

func testCatalog() *story.Catalog {
	return story.NewCatalog(story.Story{
		Title:          "Test Nick Nolan Mystery",
		CanonicalFacts: []string{"The statue is called the Algerian Eagle."},
		Intro:          "The fog rolled in off the bay as Nick waited in his office.",
		Scenes: []string{
			"Nick visits the mansion.",
			"Nick follows Lefty to the docks.",
		},
	})
}

// testServer wires the full handler stack over mock storage and a mock
// model, the way cmd/api does it.
func testServer(t *testing.T, mockLLM *services.MockLLMAPI) (*http.ServeMux, *storage.MockStorage) {
	t.Helper()

	logger := testLogger()
	store := storage.NewMockStorage()
	catalog := testCatalog()
	tracker := continuity.NewTracker(continuity.ProfileRich, logger)
	eng := engine.New(mockLLM, catalog, tracker, logger)

	mux := http.NewServeMux()
	mux.Handle("/api/stories", NewStoriesHandler(catalog, logger))
	mux.Handle("/api/start/", NewStartHandler(eng, store, logger))
	mux.Handle("/api/next", NewNextHandler(eng, store, logger))
	mux.Handle("/api/user-input", NewUserInputHandler(eng, store, logger))
	mux.Handle("/health", NewHealthHandler(store, logger))

	return mux, store
}

// sessionCookie extracts the minted session cookie from a response.
func sessionCookie(t *testing.T, rr *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rr.Result().Cookies() {
		if c.Name == sessionCookieName {
			return c
		}
	}
	t.Fatal("Expected a session cookie to be set")
	return nil
}

func TestStoriesHandler(t *testing.T) {
	mux, _ := testServer(t, services.NewMockLLMAPI())

	req := httptest.NewRequest(http.MethodGet, "/api/stories", nil)
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var summaries []StorySummary
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &summaries))
	require.Len(t, summaries, 1)
	assert.Equal(t, 0, summaries[0].ID)
	assert.Equal(t, "Test Nick Nolan Mystery", summaries[0].Title)
}

func TestStoriesHandler_MethodNotAllowed(t *testing.T) {
	mux, _ := testServer(t, services.NewMockLLMAPI())

	req := httptest.NewRequest(http.MethodPost, "/api/stories", nil)
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}

func TestStartHandler(t *testing.T) {
	mux, store := testServer(t, services.NewMockLLMAPI())

	req := httptest.NewRequest(http.MethodPost, "/api/start/0", nil)
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var result engine.Result
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &result))
	assert.True(t, strings.HasPrefix(result.Message, "The fog rolled in"))
	assert.True(t, strings.HasSuffix(result.Message, "What do you want to do next?"))
	assert.Equal(t, "story1_1.jpg", result.Image)

	// A session was minted and persisted
	cookie := sessionCookie(t, rr)
	id, err := uuid.Parse(cookie.Value)
	require.NoError(t, err)
	assert.True(t, cookie.HttpOnly)

	st, err := store.LoadSession(req.Context(), id)
	require.NoError(t, err)
	require.NotNil(t, st)
	assert.Equal(t, 0, *st.StoryIndex)
	assert.Equal(t, 0, st.CurrentScene)
}

func TestStartHandler_InvalidID(t *testing.T) {
	mux, _ := testServer(t, services.NewMockLLMAPI())

	tests := []struct {
		name   string
		path   string
		status int
	}{
		{"non-numeric id", "/api/start/abc", http.StatusBadRequest},
		{"unknown story", "/api/start/42", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, tt.path, nil)
			rr := httptest.NewRecorder()
			mux.ServeHTTP(rr, req)

			assert.Equal(t, tt.status, rr.Code)

			var errResp ErrorResponse
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &errResp))
			assert.NotEmpty(t, errResp.Error)
		})
	}
}

func TestNextHandler_NoActiveStory(t *testing.T) {
	mux, _ := testServer(t, services.NewMockLLMAPI())

	req := httptest.NewRequest(http.MethodPost, "/api/next", bytes.NewBufferString(`{"choice":"go on"}`))
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var result engine.Result
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &result))
	assert.Equal(t, "Please select a story first.", result.Message)
	assert.True(t, result.End)
}

func TestNextHandler_AdvancesScene(t *testing.T) {
	mockLLM := services.NewMockLLMAPI()
	mux, store := testServer(t, mockLLM)

	// Start a story to establish the session
	startReq := httptest.NewRequest(http.MethodPost, "/api/start/0", nil)
	startRR := httptest.NewRecorder()
	mux.ServeHTTP(startRR, startReq)
	require.Equal(t, http.StatusOK, startRR.Code)
	cookie := sessionCookie(t, startRR)

	// Advance with the same session; empty body is accepted
	req := httptest.NewRequest(http.MethodPost, "/api/next", nil)
	req.AddCookie(cookie)
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var result engine.Result
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &result))
	assert.True(t, strings.HasSuffix(result.Message, "What do you want to do next?"))
	assert.Equal(t, "story1_1.jpg", result.Image)
	assert.Equal(t, 1, mockLLM.GenerateCallCount())

	// Scene advance was persisted
	id, err := uuid.Parse(cookie.Value)
	require.NoError(t, err)
	st, err := store.LoadSession(req.Context(), id)
	require.NoError(t, err)
	require.NotNil(t, st)
	assert.Equal(t, 1, st.CurrentScene)
}

func TestUserInputHandler(t *testing.T) {
	mockLLM := services.NewMockLLMAPI()
	mockLLM.GenerateFunc = func(ctx context.Context, req services.GenerateRequest) (string, error) {
		return "Nick pulled the drawer open and found a telegram.", nil
	}
	mux, store := testServer(t, mockLLM)

	startReq := httptest.NewRequest(http.MethodPost, "/api/start/0", nil)
	startRR := httptest.NewRecorder()
	mux.ServeHTTP(startRR, startReq)
	cookie := sessionCookie(t, startRR)

	body := bytes.NewBufferString(`{"input":"open the drawer"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/user-input", body)
	req.AddCookie(cookie)
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var result engine.Result
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &result))
	assert.Contains(t, result.Message, "found a telegram")
	assert.True(t, strings.HasSuffix(result.Message, "What do you want to do next?"))
	assert.Empty(t, result.Image)
	assert.False(t, result.End)

	// The exchange was persisted in the session history
	id, err := uuid.Parse(cookie.Value)
	require.NoError(t, err)
	st, err := store.LoadSession(req.Context(), id)
	require.NoError(t, err)
	require.NotNil(t, st)
	require.Len(t, st.ConversationHistory, 1)
	assert.Equal(t, "open the drawer", st.ConversationHistory[0].User)
}

func TestUserInputHandler_BadRequests(t *testing.T) {
	mux, _ := testServer(t, services.NewMockLLMAPI())

	tests := []struct {
		name string
		body string
	}{
		{"invalid JSON", "not json"},
		{"missing input", `{}`},
		{"blank input", `{"input":"   "}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/user-input", bytes.NewBufferString(tt.body))
			rr := httptest.NewRecorder()
			mux.ServeHTTP(rr, req)

			assert.Equal(t, http.StatusBadRequest, rr.Code)
		})
	}
}

func TestUserInputHandler_NoActiveStory(t *testing.T) {
	mux, _ := testServer(t, services.NewMockLLMAPI())

	body := bytes.NewBufferString(`{"input":"look around"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/user-input", body)
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var result engine.Result
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &result))
	assert.Equal(t, "Please select a story first to begin your adventure.", result.Message)
	assert.True(t, result.End)
}

func TestHealthHandler(t *testing.T) {
	mux, store := testServer(t, services.NewMockLLMAPI())

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var health HealthResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &health))
	assert.Equal(t, "healthy", health.Status)
	assert.Equal(t, "cliffhanger", health.Service)
	assert.Equal(t, "healthy", health.Components["storage"])

	// Degrades when storage is down
	store.SetPingError(errors.New("redis down"))
	rr = httptest.NewRecorder()
	mux.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
}
