package storage

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"

	"github.com/jwebster45206/cliffhanger/pkg/session"
)

func setupTestRedis(t *testing.T) (*RedisStorage, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to start miniredis: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	store := NewRedisStorage(mr.Addr(), logger)

	return store, mr
}

func TestRedisStorage_SaveAndLoadSession(t *testing.T) {
	store, mr := setupTestRedis(t)
	defer mr.Close()
	defer store.Close()

	ctx := context.Background()
	id := uuid.New()

	st := session.New()
	st.StartStory(1)
	st.AdvanceScene()
	st.AddInteraction("look around", "The office is dim and smells of old cigarettes.")
	st.StoryFacts = []string{"Nick found the ledger in the desk drawer."}
	st.AddDescribedElement("office_setting")

	if err := store.SaveSession(ctx, id, st); err != nil {
		t.Fatalf("Failed to save session: %v", err)
	}

	loaded, err := store.LoadSession(ctx, id)
	if err != nil {
		t.Fatalf("Failed to load session: %v", err)
	}
	if loaded == nil {
		t.Fatal("Expected non-nil session")
	}

	if !loaded.HasStory() || *loaded.StoryIndex != 1 {
		t.Errorf("Expected story index 1, got %v", loaded.StoryIndex)
	}
	if loaded.CurrentScene != 1 {
		t.Errorf("Expected scene 1, got %d", loaded.CurrentScene)
	}
	if len(loaded.ConversationHistory) != 1 {
		t.Fatalf("Expected 1 interaction, got %d", len(loaded.ConversationHistory))
	}
	if loaded.ConversationHistory[0].User != "look around" {
		t.Errorf("Unexpected user input: %q", loaded.ConversationHistory[0].User)
	}
	if len(loaded.StoryFacts) != 1 {
		t.Errorf("Expected 1 story fact, got %d", len(loaded.StoryFacts))
	}
	if !loaded.HasDescribedElement("office_setting") {
		t.Error("Expected described element to survive the round trip")
	}
	if loaded.UpdatedAt.IsZero() {
		t.Error("Expected UpdatedAt to be set on save")
	}
}

func TestRedisStorage_LoadNonExistentSession(t *testing.T) {
	store, mr := setupTestRedis(t)
	defer mr.Close()
	defer store.Close()

	loaded, err := store.LoadSession(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("Expected no error for non-existent session, got: %v", err)
	}
	if loaded != nil {
		t.Error("Expected nil for non-existent session")
	}
}

func TestRedisStorage_DeleteSession(t *testing.T) {
	store, mr := setupTestRedis(t)
	defer mr.Close()
	defer store.Close()

	ctx := context.Background()
	id := uuid.New()

	if err := store.SaveSession(ctx, id, session.New()); err != nil {
		t.Fatalf("Failed to save session: %v", err)
	}

	if err := store.DeleteSession(ctx, id); err != nil {
		t.Fatalf("Failed to delete session: %v", err)
	}

	loaded, err := store.LoadSession(ctx, id)
	if err != nil {
		t.Fatalf("Unexpected error after delete: %v", err)
	}
	if loaded != nil {
		t.Error("Expected nil after delete")
	}
}

func TestRedisStorage_SessionTTL(t *testing.T) {
	store, mr := setupTestRedis(t)
	defer mr.Close()
	defer store.Close()

	ctx := context.Background()
	id := uuid.New()

	if err := store.SaveSession(ctx, id, session.New()); err != nil {
		t.Fatalf("Failed to save session: %v", err)
	}

	ttl := mr.TTL("session:" + id.String())
	if ttl != sessionTTL {
		t.Errorf("Expected TTL %v, got %v", sessionTTL, ttl)
	}

	// Expiry removes the session
	mr.FastForward(sessionTTL)
	loaded, err := store.LoadSession(ctx, id)
	if err != nil {
		t.Fatalf("Unexpected error after expiry: %v", err)
	}
	if loaded != nil {
		t.Error("Expected nil after TTL expiry")
	}
}

func TestRedisStorage_ResetSessions(t *testing.T) {
	store, mr := setupTestRedis(t)
	defer mr.Close()
	defer store.Close()

	ctx := context.Background()

	ids := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}
	for _, id := range ids {
		if err := store.SaveSession(ctx, id, session.New()); err != nil {
			t.Fatalf("Failed to save session: %v", err)
		}
	}

	// Unrelated keys are untouched
	mr.Set("other:key", "value")

	deleted, err := store.ResetSessions(ctx)
	if err != nil {
		t.Fatalf("Failed to reset sessions: %v", err)
	}
	if deleted != len(ids) {
		t.Errorf("Expected %d deleted, got %d", len(ids), deleted)
	}

	for _, id := range ids {
		loaded, err := store.LoadSession(ctx, id)
		if err != nil {
			t.Fatalf("Unexpected error after reset: %v", err)
		}
		if loaded != nil {
			t.Errorf("Expected session %s to be deleted", id)
		}
	}

	if !mr.Exists("other:key") {
		t.Error("Expected unrelated key to survive reset")
	}
}
