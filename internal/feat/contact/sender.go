package contact

import (
	"context"
	"time"
)

// Sender delivers a completed form. A nil error means the message was
// accepted; any error fails the attempt and keeps the form for a retry.
// Send must return soon after ctx is cancelled: Controller.Dispose waits
// for it.
type Sender interface {
	Send(ctx context.Context, form FormState) error
}

// SenderFunc adapts a function to Sender.
type SenderFunc func(ctx context.Context, form FormState) error

func (f SenderFunc) Send(ctx context.Context, form FormState) error {
	return f(ctx, form)
}

// DefaultSendDelay is how long SimulatedSender takes when Delay is zero.
const DefaultSendDelay = 2 * time.Second

// SimulatedSender stands in for a delivery backend: it waits Delay and
// reports success. It returns early with ctx.Err() when ctx ends.
type SimulatedSender struct {
	Delay time.Duration
}

func (s SimulatedSender) Send(ctx context.Context, _ FormState) error {
	delay := s.Delay
	if delay <= 0 {
		delay = DefaultSendDelay
	}

	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
