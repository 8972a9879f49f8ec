package contact

import (
	"context"
	"errors"
	"sync"

	"github.com/crazythinker/studio/pkg/ct/logger"
	"github.com/crazythinker/studio/pkg/ct/validation"
	"github.com/google/uuid"
)

var (
	// ErrSubmissionInFlight is returned while a submission is being sent.
	ErrSubmissionInFlight = errors.New("submission already in flight")

	// ErrDisposed is returned by a controller whose owner has gone away.
	ErrDisposed = errors.New("contact form disposed")

	// ErrUnknownField is returned for a field name outside the form.
	ErrUnknownField = errors.New("unknown form field")
)

// Option configures a Controller.
type Option func(*Controller)

// WithMaxFieldLength caps every field at n characters.
func WithMaxFieldLength(n int) Option {
	return func(c *Controller) { c.maxFieldLength = n }
}

// WithLogger sets the logger used for delivery outcomes.
func WithLogger(log logger.Logger) Option {
	return func(c *Controller) { c.log = log }
}

// Controller drives the lifecycle of one mounted contact form: field edits,
// validation, a single in-flight delivery, and its outcome.
//
// Submit moves the form to Sending before it returns and hands delivery to
// one goroutine. That goroutine applies its outcome only if the controller
// is still alive and no newer attempt has started. Dispose cancels it.
type Controller struct {
	id             uuid.UUID
	sender         Sender
	maxFieldLength int
	log            logger.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu       sync.Mutex
	form     FormState
	status   Status
	errs     validation.ValidationErrors
	attempt  uint64
	disposed bool
	subs     map[int]chan Snapshot
	nextSub  int
}

// NewController returns an idle controller with an empty form.
func NewController(sender Sender, opts ...Option) *Controller {
	ctx, cancel := context.WithCancel(context.Background())
	c := &Controller{
		id:     uuid.New(),
		sender: sender,
		log:    logger.NewNoopLogger(),
		ctx:    ctx,
		cancel: cancel,
		status: Idle,
		subs:   make(map[int]chan Snapshot),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.log = c.log.With("form", c.id.String())
	return c
}

// ID identifies this form instance.
func (c *Controller) ID() uuid.UUID {
	return c.id
}

// UpdateField replaces the value of one field. It is refused while a
// submission is in flight and never changes the status.
func (c *Controller) UpdateField(f Field, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.disposed {
		return ErrDisposed
	}
	if c.status == Sending {
		return ErrSubmissionInFlight
	}
	if !c.form.set(f, value) {
		return ErrUnknownField
	}
	c.clearFieldErrorLocked(string(f))
	c.notifyLocked()
	return nil
}

// Submit validates the form and starts delivery. On validation failure it
// returns validation.ValidationErrors and leaves the status untouched.
func (c *Controller) Submit() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.disposed {
		return ErrDisposed
	}
	if c.status == Sending {
		return ErrSubmissionInFlight
	}

	if errs := c.form.Validate(c.maxFieldLength); errs.HasErrors() {
		c.errs = errs
		c.notifyLocked()
		return errs
	}

	c.errs = nil
	c.status = Sending
	c.attempt++
	attempt, form := c.attempt, c.form

	c.wg.Add(1)
	go c.deliver(attempt, form)

	c.notifyLocked()
	return nil
}

func (c *Controller) deliver(attempt uint64, form FormState) {
	defer c.wg.Done()

	err := c.sender.Send(c.ctx, form)

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.disposed || attempt != c.attempt || c.status != Sending {
		return
	}

	if err != nil {
		c.log.Errorf("Cannot deliver contact message: %v", err)
		c.status = Failed
	} else {
		c.log.Infof("Contact message delivered for %s", form.Email)
		c.status = Succeeded
		c.form = FormState{}
	}
	c.notifyLocked()
}

// Dispose cancels any pending delivery, closes subscriptions and returns
// once the delivery goroutine has exited. After Dispose the controller state
// is frozen. It is safe to call more than once.
func (c *Controller) Dispose() {
	c.mu.Lock()
	if !c.disposed {
		c.disposed = true
		c.cancel()
		for id, ch := range c.subs {
			close(ch)
			delete(c.subs, id)
		}
	}
	c.mu.Unlock()

	// deliver takes c.mu to apply its outcome.
	c.wg.Wait()
}

// Disposed reports whether Dispose has been called.
func (c *Controller) Disposed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.disposed
}

func (c *Controller) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

func (c *Controller) Form() FormState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.form
}

// Snapshot returns a consistent copy of the controller state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Subscribe returns a feed of snapshots taken after every change. The feed
// keeps only the latest unread snapshot. It is closed by the returned stop
// function or by Dispose.
func (c *Controller) Subscribe() (<-chan Snapshot, func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	ch := make(chan Snapshot, 1)
	if c.disposed {
		close(ch)
		return ch, func() {}
	}

	id := c.nextSub
	c.nextSub++
	c.subs[id] = ch

	stop := func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if sub, ok := c.subs[id]; ok {
			close(sub)
			delete(c.subs, id)
		}
	}
	return ch, stop
}

func (c *Controller) snapshotLocked() Snapshot {
	s := Snapshot{
		ID:        c.id,
		Status:    c.status,
		Form:      c.form,
		Notice:    noticeFor(c.status),
		CanSubmit: !c.disposed && c.status != Sending,
	}
	if len(c.errs) > 0 {
		s.Errors = make(map[string]string, len(c.errs))
		for _, e := range c.errs {
			if _, ok := s.Errors[e.Field]; !ok {
				s.Errors[e.Field] = e.Message
			}
		}
	}
	return s
}

func (c *Controller) clearFieldErrorLocked(field string) {
	if len(c.errs) == 0 {
		return
	}
	// Submit handed c.errs to its caller; never reuse the backing array.
	var kept validation.ValidationErrors
	for _, e := range c.errs {
		if e.Field != field {
			kept = append(kept, e)
		}
	}
	c.errs = kept
}

// notifyLocked pushes the current snapshot to subscribers, replacing any
// snapshot they have not read yet. Callers hold c.mu, so there is a single
// producer per channel.
func (c *Controller) notifyLocked() {
	if len(c.subs) == 0 {
		return
	}
	s := c.snapshotLocked()
	for _, ch := range c.subs {
		select {
		case ch <- s:
		default:
			select {
			case <-ch:
			default:
			}
			ch <- s
		}
	}
}
