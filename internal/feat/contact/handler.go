package contact

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/crazythinker/studio/pkg/ct/config"
	"github.com/crazythinker/studio/pkg/ct/logger"
	"github.com/crazythinker/studio/pkg/ct/validation"
	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
)

// ErrNoForm is returned by a Resolver when the visitor has no contact form mounted.
var ErrNoForm = errors.New("no contact form mounted")

// Resolver finds the contact form mounted for the visitor of a request.
type Resolver interface {
	ContactForm(ctx context.Context) (*Controller, error)
}

const (
	honeypotField = "_honeypot"
	formIDField   = "_form"
	writeWait     = 10 * time.Second
)

// Handler exposes the visitor's contact form over HTML form posts, a JSON
// API and a websocket status stream.
type Handler struct {
	forms    Resolver
	cfg      *config.Config
	log      logger.Logger
	limiter  *rateLimiter
	upgrader websocket.Upgrader
}

// NewHandler creates a new contact handler.
func NewHandler(forms Resolver, cfg *config.Config, log logger.Logger) *Handler {
	return &Handler{
		forms:   forms,
		cfg:     cfg,
		log:     log,
		limiter: newRateLimiter(cfg.Contact.RateLimit, time.Hour),
	}
}

func (h *Handler) Start(ctx context.Context) error {
	h.limiter.start(10 * time.Minute)
	h.log.Info("Contact handler started")
	return nil
}

func (h *Handler) Stop(ctx context.Context) error {
	h.limiter.close()
	return nil
}

// RegisterRoutes registers the contact form routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	h.log.Info("Registering contact routes")

	r.With(h.rateLimitMiddleware).Post("/contact/submit", h.HandleFormSubmit)

	r.Route("/api/contact", func(r chi.Router) {
		r.Get("/status", h.HandleStatus)
		r.Put("/fields/{field}", h.HandleUpdateField)
		r.With(h.rateLimitMiddleware).Post("/submit", h.HandleSubmit)
	})

	r.Get("/ws/contact/{formID}", h.HandleEvents)
}

// HandleFormSubmit handles the plain HTML form post: copy the fields into the
// controller, submit, and return to the page.
func (h *Handler) HandleFormSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	if r.FormValue(honeypotField) != "" {
		h.log.Debugf("Dropped honeypot submission from %s", clientIP(r))
		redirectToForm(w, r)
		return
	}

	form, err := h.forms.ContactForm(r.Context())
	if err != nil {
		h.log.Debugf("Contact post without a mounted form: %v", err)
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	if id := r.FormValue(formIDField); id != "" && id != form.ID().String() {
		h.log.Debugf("Stale contact form %s, current is %s", id, form.ID())
		redirectToForm(w, r)
		return
	}

	if err := h.applyAndSubmit(form, func(f Field) string { return r.FormValue(string(f)) }); err != nil {
		h.log.Debugf("Contact submission not started: %v", err)
	}
	redirectToForm(w, r)
}

func (h *Handler) applyAndSubmit(form *Controller, value func(Field) string) error {
	for _, f := range Fields() {
		if err := form.UpdateField(f, value(f)); err != nil {
			return err
		}
	}
	return form.Submit()
}

// HandleStatus returns the current form snapshot.
func (h *Handler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	form, err := h.forms.ContactForm(r.Context())
	if err != nil {
		h.writeError(w, err, nil)
		return
	}
	h.jsonResponse(w, http.StatusOK, form.Snapshot())
}

type fieldRequest struct {
	Value string `json:"value"`
}

// HandleUpdateField replaces one field value.
func (h *Handler) HandleUpdateField(w http.ResponseWriter, r *http.Request) {
	field, ok := ParseField(chi.URLParam(r, "field"))
	if !ok {
		h.writeError(w, ErrUnknownField, nil)
		return
	}

	var req fieldRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(&req); err != nil {
		h.jsonError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	form, err := h.forms.ContactForm(r.Context())
	if err != nil {
		h.writeError(w, err, nil)
		return
	}

	if err := form.UpdateField(field, req.Value); err != nil {
		h.writeError(w, err, form)
		return
	}
	h.jsonResponse(w, http.StatusOK, form.Snapshot())
}

// HandleSubmit submits the fields already stored in the controller.
func (h *Handler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	form, err := h.forms.ContactForm(r.Context())
	if err != nil {
		h.writeError(w, err, nil)
		return
	}

	if err := form.Submit(); err != nil {
		h.writeError(w, err, form)
		return
	}
	h.jsonResponse(w, http.StatusAccepted, form.Snapshot())
}

type event struct {
	Type     string   `json:"type"`
	Snapshot Snapshot `json:"snapshot"`
}

// HandleEvents streams snapshots of the visitor's form until the form is
// disposed or the client goes away.
func (h *Handler) HandleEvents(w http.ResponseWriter, r *http.Request) {
	form, err := h.forms.ContactForm(r.Context())
	if err != nil {
		h.writeError(w, err, nil)
		return
	}
	if chi.URLParam(r, "formID") != form.ID().String() {
		h.jsonError(w, http.StatusGone, "contact form is no longer mounted")
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Errorf("Cannot upgrade contact stream: %v", err)
		return
	}

	gone := make(chan struct{})
	go func() {
		defer close(gone)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
	defer func() {
		conn.Close()
		<-gone
	}()

	feed, stop := form.Subscribe()
	defer stop()

	if err := writeEvent(conn, "snapshot", form.Snapshot()); err != nil {
		return
	}

	for {
		select {
		case s, ok := <-feed:
			if !ok {
				deadline := time.Now().Add(writeWait)
				msg := websocket.FormatCloseMessage(websocket.CloseGoingAway, "form disposed")
				_ = conn.WriteControl(websocket.CloseMessage, msg, deadline)
				return
			}
			if err := writeEvent(conn, "snapshot", s); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					h.log.Errorf("Contact stream write: %v", err)
				}
				return
			}
		case <-gone:
			return
		}
	}
}

func writeEvent(conn *websocket.Conn, typ string, s Snapshot) error {
	if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return conn.WriteJSON(event{Type: typ, Snapshot: s})
}

// --- Response helpers ---

func (h *Handler) writeError(w http.ResponseWriter, err error, form *Controller) {
	var verrs validation.ValidationErrors
	switch {
	case errors.As(err, &verrs):
		h.jsonResponse(w, http.StatusUnprocessableEntity, form.Snapshot())
	case errors.Is(err, ErrSubmissionInFlight), errors.Is(err, ErrNoForm):
		h.jsonError(w, http.StatusConflict, err.Error())
	case errors.Is(err, ErrDisposed):
		h.jsonError(w, http.StatusGone, err.Error())
	case errors.Is(err, ErrUnknownField):
		h.jsonError(w, http.StatusNotFound, err.Error())
	default:
		h.log.Errorf("Contact request failed: %v", err)
		h.jsonError(w, http.StatusInternalServerError, "internal error")
	}
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

func redirectToForm(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/#contact-form", http.StatusSeeOther)
}
