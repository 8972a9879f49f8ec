package site

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/crazythinker/studio/internal/feat/contact"
	"github.com/crazythinker/studio/pkg/ct/config"
	"github.com/crazythinker/studio/pkg/ct/logger"
	"github.com/crazythinker/studio/pkg/ct/middleware"
)

// ErrNoVisitor is returned when a request carries no visitor ID.
var ErrNoVisitor = errors.New("no visitor in context")

type entry struct {
	session  *Session
	lastSeen time.Time
}

// Store keeps one Session per visitor in memory and closes sessions that
// stay idle longer than the configured TTL.
type Store struct {
	ttl        time.Duration
	sweepEvery time.Duration
	newForm    func() *contact.Controller
	log        logger.Logger
	now        func() time.Time

	mu       sync.Mutex
	sessions map[string]*entry

	stop chan struct{}
	done chan struct{}
}

// NewStore creates a session store whose contact forms deliver through sender.
func NewStore(cfg *config.Config, sender contact.Sender, log logger.Logger) *Store {
	formLog := log.With("component", "contact")
	return &Store{
		ttl:        cfg.Session.IdleTTL,
		sweepEvery: cfg.Session.SweepInterval,
		log:        log,
		now:        time.Now,
		sessions:   make(map[string]*entry),
		newForm: func() *contact.Controller {
			return contact.NewController(sender,
				contact.WithMaxFieldLength(cfg.Contact.MaxFieldLength),
				contact.WithLogger(formLog),
			)
		},
	}
}

// Start runs the idle sweeper.
func (st *Store) Start(ctx context.Context) error {
	st.stop = make(chan struct{})
	st.done = make(chan struct{})
	go func() {
		defer close(st.done)
		ticker := time.NewTicker(st.sweepEvery)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if n := st.Sweep(); n > 0 {
					st.log.Debugf("Expired %d idle sessions", n)
				}
			case <-st.stop:
				return
			}
		}
	}()
	st.log.Infof("Session store started (idle TTL %s)", st.ttl)
	return nil
}

// Stop halts the sweeper and closes every session.
func (st *Store) Stop(ctx context.Context) error {
	if st.stop != nil {
		close(st.stop)
		<-st.done
		st.stop = nil
	}

	st.mu.Lock()
	all := st.sessions
	st.sessions = make(map[string]*entry)
	st.mu.Unlock()

	for _, e := range all {
		e.session.Close()
	}
	st.log.Infof("Closed %d sessions", len(all))
	return nil
}

// Get returns the session for visitorID, creating it on first use, and
// marks it as seen.
func (st *Store) Get(visitorID string) *Session {
	st.mu.Lock()
	defer st.mu.Unlock()

	e, ok := st.sessions[visitorID]
	if !ok {
		e = &entry{session: newSession(visitorID, st.newForm)}
		st.sessions[visitorID] = e
	}
	e.lastSeen = st.now()
	return e.session
}

// FromContext returns the session of the request's visitor.
func (st *Store) FromContext(ctx context.Context) (*Session, error) {
	id := middleware.GetVisitorID(ctx)
	if id == "" {
		return nil, ErrNoVisitor
	}
	return st.Get(id), nil
}

// ContactForm resolves the contact form mounted for the request's visitor.
func (st *Store) ContactForm(ctx context.Context) (*contact.Controller, error) {
	s, err := st.FromContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", contact.ErrNoForm, err)
	}
	return s.ContactForm()
}

// Sweep closes sessions idle for longer than the TTL and returns how many
// were removed.
func (st *Store) Sweep() int {
	cutoff := st.now().Add(-st.ttl)

	st.mu.Lock()
	var expired []*Session
	for id, e := range st.sessions {
		if e.lastSeen.Before(cutoff) {
			expired = append(expired, e.session)
			delete(st.sessions, id)
		}
	}
	st.mu.Unlock()

	for _, s := range expired {
		s.Close()
	}
	return len(expired)
}

// Len returns the number of live sessions.
func (st *Store) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.sessions)
}
