package web

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/crazythinker/studio/assets"
	"github.com/crazythinker/studio/pkg/ct/logger"
	"github.com/go-chi/chi/v5"
)

func TestFileServer(t *testing.T) {
	tests := []struct {
		name      string
		maxAge    int
		path      string
		wantCode  int
		wantCache string
	}{
		{"stylesheet", 3600, "/static/site.css", http.StatusOK, "public, max-age=3600"},
		{"dev no cache", 0, "/static/site.js", http.StatusOK, "no-cache"},
		{"missing is not cached", 3600, "/static/nope.css", http.StatusNotFound, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := chi.NewRouter()
			NewFileServer(assets.FS, tt.maxAge, logger.NewNoopLogger()).RegisterRoutes(r)

			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))

			if rec.Code != tt.wantCode {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantCode)
			}
			if rec.Header().Get("Cache-Control") != tt.wantCache {
				t.Errorf("Cache-Control = %q, want %q", rec.Header().Get("Cache-Control"), tt.wantCache)
			}
			if tt.wantCode == http.StatusOK && strings.TrimSpace(rec.Body.String()) == "" {
				t.Error("expected a body")
			}
		})
	}
}
