package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/jwebster45206/cliffhanger/internal/storage"
	"github.com/jwebster45206/cliffhanger/pkg/session"
)

// sessionCookieName carries the player's session identifier. The cookie
// holds only an opaque UUID; all state lives server-side.
const sessionCookieName = "session_id"

// sessionCookieMaxAge matches the server-side session TTL.
const sessionCookieMaxAge = int(24 * time.Hour / time.Second)

// sessionID returns the caller's session identifier, minting a fresh one
// and setting the cookie when none exists or the cookie is malformed.
func sessionID(w http.ResponseWriter, r *http.Request) uuid.UUID {
	if c, err := r.Cookie(sessionCookieName); err == nil {
		if id, err := uuid.Parse(c.Value); err == nil {
			return id
		}
	}

	id := uuid.New()
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    id.String(),
		Path:     "/",
		MaxAge:   sessionCookieMaxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}

// loadOrNewSession fetches the caller's session, returning a fresh empty
// one when nothing is stored (expired, reset, or first visit).
func loadOrNewSession(ctx context.Context, store storage.Storage, id uuid.UUID) (*session.State, error) {
	st, err := store.LoadSession(ctx, id)
	if err != nil {
		return nil, err
	}
	if st == nil {
		st = session.New()
	}
	return st, nil
}
