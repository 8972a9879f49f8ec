package site

import (
	"errors"
	"sync"

	"github.com/crazythinker/studio/internal/feat/contact"
	"github.com/crazythinker/studio/internal/feat/nav"
	"github.com/crazythinker/studio/internal/feat/portfolio"
)

// ErrNotMounted is returned when a page-scoped controller is used while its
// page is not the active one.
var ErrNotMounted = errors.New("page not active")

// scope owns the controllers of the page being displayed. It lives exactly
// as long as its page stays active.
type scope struct {
	page   nav.PageID
	filter *portfolio.Filter
	form   *contact.Controller
}

func (s *scope) dispose() {
	if s.form != nil {
		s.form.Dispose()
	}
}

// Session is the view state of one visitor: its navigation controller and
// the scope of the active page.
type Session struct {
	id      string
	newForm func() *contact.Controller

	mu     sync.Mutex
	nav    *nav.Controller
	scope  *scope
	closed bool
}

func newSession(id string, newForm func() *contact.Controller) *Session {
	s := &Session{
		id:      id,
		newForm: newForm,
		nav:     nav.NewController(),
	}
	s.scope = s.mount(s.nav.ActivePage())
	return s
}

func (s *Session) ID() string {
	return s.id
}

// Navigate makes p the active page, falling back to Home for unknown ids.
// Moving to another page disposes the old page's controllers; re-selecting
// the active page keeps them.
func (s *Session) Navigate(p nav.PageID) nav.PageID {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nav.SetActivePage(p)
	active := s.nav.ActivePage()
	if active == s.scope.page {
		return active
	}

	s.scope.dispose()
	if s.closed {
		s.scope = &scope{page: active}
		return active
	}
	s.scope = s.mount(active)
	return active
}

func (s *Session) mount(p nav.PageID) *scope {
	sc := &scope{page: p}
	switch p {
	case nav.Portfolio:
		sc.filter = portfolio.NewFilter()
	case nav.Contact:
		sc.form = s.newForm()
	}
	return sc
}

// ToggleMenu flips the mobile menu and returns the new state.
func (s *Session) ToggleMenu() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nav.ToggleMenu()
	return s.nav.MenuOpen()
}

// SetCategory changes the portfolio filter of the active Portfolio page.
func (s *Session) SetCategory(c portfolio.Category) (portfolio.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.scope.filter == nil {
		return "", ErrNotMounted
	}
	s.scope.filter.SetCategory(c)
	return s.scope.filter.Category(), nil
}

// ContactForm returns the form of the active Contact page.
func (s *Session) ContactForm() (*contact.Controller, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.scope.form == nil {
		return nil, contact.ErrNoForm
	}
	return s.scope.form, nil
}

// View is a consistent copy of the session for rendering.
type View struct {
	Page     nav.PageID
	MenuOpen bool
	Links    []nav.Link
	Category portfolio.Category
	Form     *contact.Snapshot
}

func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := View{
		Page:     s.nav.ActivePage(),
		MenuOpen: s.nav.MenuOpen(),
		Links:    s.nav.Links(),
	}
	if s.scope.filter != nil {
		v.Category = s.scope.filter.Category()
	}
	if s.scope.form != nil {
		snap := s.scope.form.Snapshot()
		v.Form = &snap
	}
	return v
}

// Close disposes the active page scope. Further navigation keeps working
// but mounts nothing new.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.closed = true
	s.scope.dispose()
}
