package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

type contextKey string

const (
	// DefaultVisitorCookie is the cookie name used when none is configured.
	DefaultVisitorCookie = "ct_visitor"

	// VisitorIDKey is the context key for the visitor ID.
	VisitorIDKey = contextKey("visitor_id")
)

// Visitor assigns every browser a stable visitor ID kept in a cookie.
// Missing or malformed cookies are replaced with a fresh ID.
func Visitor(cookieName string, maxAge time.Duration) func(http.Handler) http.Handler {
	if cookieName == "" {
		cookieName = DefaultVisitorCookie
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var id uuid.UUID
			if cookie, err := r.Cookie(cookieName); err == nil {
				if parsed, err := uuid.Parse(cookie.Value); err == nil {
					id = parsed
				}
			}
			if id == uuid.Nil {
				id = uuid.New()
			}

			// Refresh on every request so the cookie outlives the idle TTL.
			SetVisitorCookie(w, cookieName, id.String(), int(maxAge.Seconds()))

			ctx := context.WithValue(r.Context(), VisitorIDKey, id.String())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SetVisitorCookie writes the visitor cookie.
func SetVisitorCookie(w http.ResponseWriter, name, value string, maxAge int) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// GetVisitorID extracts the visitor ID from the context.
// Returns an empty string if no visitor ID is found.
func GetVisitorID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if id, ok := ctx.Value(VisitorIDKey).(string); ok {
		return id
	}
	return ""
}

// WithVisitorID returns a context carrying the visitor ID.
func WithVisitorID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, VisitorIDKey, id)
}

// DefaultStack applies the default middleware stack to a router.
func DefaultStack(r chi.Router, timeout time.Duration) {
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	if timeout > 0 {
		r.Use(Timeout(timeout))
	}
}

// Timeout is chi's Timeout middleware for everything except websocket
// upgrades, which outlive any request deadline.
func Timeout(d time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		timed := chimw.Timeout(d)(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if websocket.IsWebSocketUpgrade(r) {
				next.ServeHTTP(w, r)
				return
			}
			timed.ServeHTTP(w, r)
		})
	}
}
