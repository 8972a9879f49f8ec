package site

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"strings"

	"github.com/crazythinker/studio/internal/feat/content"
	"github.com/crazythinker/studio/internal/feat/nav"
	"github.com/crazythinker/studio/internal/feat/portfolio"
	"github.com/crazythinker/studio/pkg/ct/config"
	"github.com/crazythinker/studio/pkg/ct/logger"
	"github.com/crazythinker/studio/pkg/ct/render"
	"github.com/go-chi/chi/v5"
)

// Handler renders the visitor's active page and serves the session state
// API. Templates are parsed once in Start.
type Handler struct {
	sessions *Store
	catalog  *content.Catalog
	assetsFS fs.FS
	cfg      *config.Config
	log      logger.Logger

	pages map[nav.PageID]*template.Template
}

func NewHandler(sessions *Store, catalog *content.Catalog, assetsFS fs.FS, cfg *config.Config, log logger.Logger) *Handler {
	return &Handler{
		sessions: sessions,
		catalog:  catalog,
		assetsFS: assetsFS,
		cfg:      cfg,
		log:      log,
	}
}

func (h *Handler) Start(ctx context.Context) error {
	pages := make(map[nav.PageID]*template.Template, len(nav.Pages()))
	for _, p := range nav.Pages() {
		tmpl, err := h.parsePage(p)
		if err != nil {
			return err
		}
		pages[p] = tmpl
	}
	h.pages = pages
	h.log.Infof("Parsed %d page templates", len(pages))
	return nil
}

func (h *Handler) Stop(ctx context.Context) error {
	return nil
}

func (h *Handler) parsePage(p nav.PageID) (*template.Template, error) {
	funcs := render.MergeFuncMaps(render.FuncMap(), template.FuncMap{
		"isYes": func(s string) bool { return strings.EqualFold(s, "yes") },
	})
	name := "templates/pages/" + strings.ToLower(p.String()) + ".html"
	tmpl, err := template.New("").Funcs(funcs).ParseFS(h.assetsFS,
		"templates/base.html",
		"templates/partials/*.html",
		name,
	)
	if err != nil {
		return nil, fmt.Errorf("cannot parse %s: %w", name, err)
	}
	return tmpl, nil
}

// RegisterRoutes registers the page and session state routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	h.log.Info("Registering site routes")

	r.Get("/", h.HandlePage)
	r.Post("/nav", h.HandleNav)
	r.Post("/menu", h.HandleMenu)
	r.Post("/portfolio/filter", h.HandleFilter)

	r.Get("/api/state", h.HandleState)
	r.Post("/api/nav", h.HandleAPINav)
	r.Post("/api/portfolio/filter", h.HandleAPIFilter)

	r.Get("/healthz", h.HandleHealth)
}

// --- Pages ---

func (h *Handler) HandlePage(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	v := s.View()
	data := PageData{
		Catalog:  h.catalog,
		Page:     v.Page,
		Links:    v.Links,
		MenuOpen: v.MenuOpen,
		Form:     v.Form,
		Env:      h.cfg.Env,
	}
	if v.Page == nav.Portfolio {
		data.Portfolio = newPortfolioView(v.Category, h.catalog.Projects)
	}

	h.renderPage(w, v.Page, data)
}

func (h *Handler) HandleNav(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	s.Navigate(nav.ParsePageID(r.FormValue("page")))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handler) HandleMenu(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	s.ToggleMenu()
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handler) HandleFilter(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	// Unknown values reset the filter, the same as the controller does.
	c, _ := portfolio.ParseCategory(r.FormValue("category"))
	if _, err := s.SetCategory(c); err != nil {
		h.log.Debugf("Filter post outside the portfolio page: %v", err)
	}
	http.Redirect(w, r, "/#projects", http.StatusSeeOther)
}

// --- JSON API ---

func (h *Handler) HandleState(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	h.jsonResponse(w, http.StatusOK, newStateResponse(s.View(), h.catalog.Projects))
}

func (h *Handler) HandleAPINav(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	var req NavRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.jsonError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	s.Navigate(nav.ParsePageID(req.Page))
	h.jsonResponse(w, http.StatusOK, newStateResponse(s.View(), h.catalog.Projects))
}

func (h *Handler) HandleAPIFilter(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	var req FilterRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.jsonError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	c, ok := portfolio.ParseCategory(req.Category)
	if !ok {
		h.jsonError(w, http.StatusBadRequest, fmt.Sprintf("unknown category %q", req.Category))
		return
	}

	active, err := s.SetCategory(c)
	if errors.Is(err, ErrNotMounted) {
		h.jsonError(w, http.StatusConflict, "portfolio page is not active")
		return
	}
	h.jsonResponse(w, http.StatusOK, newFilterResponse(active, h.catalog.Projects))
}

func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	h.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// --- Helpers ---

func (h *Handler) session(w http.ResponseWriter, r *http.Request) (*Session, bool) {
	s, err := h.sessions.FromContext(r.Context())
	if err != nil {
		h.log.Errorf("Cannot resolve session: %v", err)
		http.Error(w, "No visitor session", http.StatusBadRequest)
		return nil, false
	}
	return s, true
}

func (h *Handler) renderPage(w http.ResponseWriter, p nav.PageID, data PageData) {
	tmpl, ok := h.pages[p]
	if !ok {
		h.log.Errorf("No template for page %s", p)
		http.Error(w, "Template error", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "base.html", data); err != nil {
		h.log.Errorf("Cannot render page %s: %v", p, err)
		http.Error(w, "Template error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	if _, err := buf.WriteTo(w); err != nil {
		h.log.Debugf("Cannot write page %s: %v", p, err)
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	return json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(v)
}

func (h *Handler) jsonError(w http.ResponseWriter, status int, msg string) {
	h.jsonResponse(w, status, map[string]string{"error": msg})
}

func (h *Handler) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Errorf("Cannot encode response: %v", err)
	}
}
