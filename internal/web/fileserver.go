package web

import (
	"fmt"
	"io/fs"
	"net/http"

	"github.com/crazythinker/studio/pkg/ct/logger"
	"github.com/go-chi/chi/v5"
)

const (
	staticAssetsPath = "static"
	staticURLPrefix  = "/static"
)

// FileServer serves the embedded static assets under /static.
type FileServer struct {
	assetsFS fs.FS
	maxAge   int
	log      logger.Logger
}

// NewFileServer creates a file server. A positive maxAge (seconds) enables
// client caching; dev builds pass zero so edits show up on reload.
func NewFileServer(assetsFS fs.FS, maxAge int, log logger.Logger) *FileServer {
	return &FileServer{
		assetsFS: assetsFS,
		maxAge:   maxAge,
		log:      log,
	}
}

func (s *FileServer) RegisterRoutes(r chi.Router) {
	s.log.Infof("Registering file server: %s -> %s", staticURLPrefix, staticAssetsPath)

	staticFS, err := fs.Sub(s.assetsFS, staticAssetsPath)
	if err != nil {
		s.log.Errorf("Error creating static files sub-filesystem: %v", err)
		return
	}

	files := http.StripPrefix(staticURLPrefix+"/", http.FileServer(http.FS(staticFS)))
	r.Handle(staticURLPrefix+"/*", s.cacheControl(files))
}

// cacheControl sets the caching policy for served files. http.FileServer
// drops the header on error responses, so 404s are never cached.
func (s *FileServer) cacheControl(next http.Handler) http.Handler {
	value := "no-cache"
	if s.maxAge > 0 {
		value = fmt.Sprintf("public, max-age=%d", s.maxAge)
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", value)
		next.ServeHTTP(w, r)
	})
}
