package site

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/crazythinker/studio/internal/feat/contact"
	"github.com/crazythinker/studio/internal/feat/nav"
	"github.com/crazythinker/studio/internal/feat/portfolio"
	"github.com/crazythinker/studio/pkg/ct/config"
	"github.com/crazythinker/studio/pkg/ct/logger"
	"github.com/crazythinker/studio/pkg/ct/middleware"
)

// blockingSender holds every delivery until its context ends.
var blockingSender = contact.SenderFunc(func(ctx context.Context, _ contact.FormState) error {
	<-ctx.Done()
	return ctx.Err()
})

func newTestStore(sender contact.Sender) *Store {
	return NewStore(config.Default(), sender, logger.NewNoopLogger())
}

func fillForm(t *testing.T, form *contact.Controller) {
	t.Helper()
	values := map[contact.Field]string{
		contact.FieldName:    "Jane",
		contact.FieldEmail:   "jane@x.com",
		contact.FieldMessage: "Hello",
	}
	for f, v := range values {
		if err := form.UpdateField(f, v); err != nil {
			t.Fatalf("UpdateField(%s) error = %v", f, err)
		}
	}
}

func TestNewSessionStartsHome(t *testing.T) {
	s := newSession("v1", func() *contact.Controller { return contact.NewController(blockingSender) })
	defer s.Close()

	v := s.View()
	if v.Page != nav.Home || v.MenuOpen || v.Form != nil {
		t.Errorf("unexpected initial view %+v", v)
	}
	if _, err := s.ContactForm(); !errors.Is(err, contact.ErrNoForm) {
		t.Errorf("ContactForm() error = %v, want ErrNoForm", err)
	}
	if _, err := s.SetCategory(portfolio.ECommerce); !errors.Is(err, ErrNotMounted) {
		t.Errorf("SetCategory() error = %v, want ErrNotMounted", err)
	}
}

func TestSessionNavigateFallsBackHome(t *testing.T) {
	s := newSession("v1", func() *contact.Controller { return contact.NewController(blockingSender) })
	defer s.Close()

	s.Navigate(nav.Pricing)
	if got := s.Navigate(nav.PageID("Blog")); got != nav.Home {
		t.Errorf("Navigate(Blog) = %q, want Home", got)
	}
}

func TestSessionFilterScope(t *testing.T) {
	s := newSession("v1", func() *contact.Controller { return contact.NewController(blockingSender) })
	defer s.Close()

	s.Navigate(nav.Portfolio)
	if v := s.View(); v.Category != portfolio.All {
		t.Fatalf("new portfolio scope should show All, got %q", v.Category)
	}

	if got, err := s.SetCategory(portfolio.MobileApp); err != nil || got != portfolio.MobileApp {
		t.Fatalf("SetCategory() = %q, %v", got, err)
	}

	s.Navigate(nav.Portfolio)
	if v := s.View(); v.Category != portfolio.MobileApp {
		t.Errorf("re-selecting the active page should keep the filter, got %q", v.Category)
	}

	s.Navigate(nav.Pricing)
	s.Navigate(nav.Portfolio)
	if v := s.View(); v.Category != portfolio.All {
		t.Errorf("filter should reset after leaving the page, got %q", v.Category)
	}
}

func TestSessionContactScope(t *testing.T) {
	s := newSession("v1", func() *contact.Controller { return contact.NewController(blockingSender) })
	defer s.Close()

	s.Navigate(nav.Contact)
	form, err := s.ContactForm()
	if err != nil {
		t.Fatalf("ContactForm() error = %v", err)
	}
	fillForm(t, form)
	if err := form.Submit(); err != nil {
		t.Fatalf("Submit() error = %v", err)
	}

	s.Navigate(nav.Home)
	if !form.Disposed() {
		t.Error("leaving the page should dispose the form")
	}
	if form.Status() != contact.Sending {
		t.Errorf("disposed form status = %q, want it frozen at sending", form.Status())
	}

	s.Navigate(nav.Contact)
	again, err := s.ContactForm()
	if err != nil {
		t.Fatalf("ContactForm() error = %v", err)
	}
	if again.ID() == form.ID() {
		t.Error("coming back should mount a fresh form")
	}
	if snap := again.Snapshot(); snap.Status != contact.Idle || !snap.Form.IsEmpty() {
		t.Errorf("fresh form snapshot = %+v", snap)
	}
}

func TestSessionMenu(t *testing.T) {
	s := newSession("v1", func() *contact.Controller { return contact.NewController(blockingSender) })
	defer s.Close()

	if !s.ToggleMenu() {
		t.Fatal("ToggleMenu() should open the menu")
	}
	s.Navigate(nav.Services)
	if s.View().MenuOpen {
		t.Error("navigating should close the menu")
	}
}

func TestSessionClose(t *testing.T) {
	s := newSession("v1", func() *contact.Controller { return contact.NewController(blockingSender) })
	s.Navigate(nav.Contact)
	form, _ := s.ContactForm()

	s.Close()
	s.Close()

	if !form.Disposed() {
		t.Error("Close should dispose the mounted form")
	}
	s.Navigate(nav.Home)
	s.Navigate(nav.Contact)
	if _, err := s.ContactForm(); !errors.Is(err, contact.ErrNoForm) {
		t.Errorf("closed session should mount nothing, got %v", err)
	}
}

func TestStoreGet(t *testing.T) {
	st := newTestStore(blockingSender)
	defer st.Stop(context.Background())

	a := st.Get("a")
	if st.Get("a") != a {
		t.Error("Get should return the same session for a visitor")
	}
	if st.Get("b") == a {
		t.Error("visitors should not share sessions")
	}
	if st.Len() != 2 {
		t.Errorf("Len() = %d, want 2", st.Len())
	}
}

func TestStoreSweepExpiresIdleSessions(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	st := newTestStore(blockingSender)
	st.now = func() time.Time { return now }

	idle := st.Get("idle")
	idle.Navigate(nav.Contact)
	form, _ := idle.ContactForm()
	fillForm(t, form)
	if err := form.Submit(); err != nil {
		t.Fatalf("Submit() error = %v", err)
	}

	now = now.Add(20 * time.Minute)
	st.Get("active")
	now = now.Add(15 * time.Minute)

	if n := st.Sweep(); n != 1 {
		t.Fatalf("Sweep() = %d, want 1", n)
	}
	if !form.Disposed() {
		t.Error("expired session should dispose its pending form")
	}
	if st.Len() != 1 {
		t.Errorf("Len() = %d, want 1", st.Len())
	}
	if st.Get("idle") == idle {
		t.Error("expired visitor should get a new session")
	}
	st.Stop(context.Background())
}

func TestStoreContactForm(t *testing.T) {
	st := newTestStore(blockingSender)
	defer st.Stop(context.Background())

	if _, err := st.ContactForm(context.Background()); !errors.Is(err, contact.ErrNoForm) {
		t.Errorf("missing visitor: error = %v, want ErrNoForm", err)
	}

	ctx := middleware.WithVisitorID(context.Background(), "v1")
	if _, err := st.ContactForm(ctx); !errors.Is(err, contact.ErrNoForm) {
		t.Errorf("home page: error = %v, want ErrNoForm", err)
	}

	st.Get("v1").Navigate(nav.Contact)
	form, err := st.ContactForm(ctx)
	if err != nil || form == nil {
		t.Fatalf("ContactForm() = %v, %v", form, err)
	}
}

func TestStoreStartStop(t *testing.T) {
	cfg := config.Default()
	cfg.Session.SweepInterval = time.Millisecond
	st := NewStore(cfg, blockingSender, logger.NewNoopLogger())

	if err := st.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	s := st.Get("v1")
	s.Navigate(nav.Contact)
	form, _ := s.ContactForm()

	if err := st.Stop(context.Background()); err != nil {
		t.Fatalf("Stop() error = %v", err)
	}
	if !form.Disposed() {
		t.Error("Stop should close every session")
	}
	if st.Len() != 0 {
		t.Errorf("Len() = %d after Stop", st.Len())
	}
}
