package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
)

// CORS allows the JSON API to be called from the given origins with the
// visitor cookie attached. An empty list disables cross-origin access.
func CORS(origins []string) func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	})
}
