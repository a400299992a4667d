package submission

import (
	"context"
	"log/slog"
	"time"
)

// DefaultDelay is how long DelayEffect pretends the backend takes.
const DefaultDelay = 3000 * time.Millisecond

// Effect is the external collaborator that receives a valid submission. A
// real transport can replace the stub without touching the controller.
type Effect interface {
	Submit(ctx context.Context, record Record) error
}

// EffectFunc adapts a function into an Effect.
type EffectFunc func(ctx context.Context, record Record) error

// Submit calls the underlying function.
func (fn EffectFunc) Submit(ctx context.Context, record Record) error {
	return fn(ctx, record)
}

// DelayEffect stands in for a network call: it waits a fixed delay and then
// writes the record to the diagnostic log. It cannot fail and does not stop
// early when ctx is cancelled.
type DelayEffect struct {
	delay  time.Duration
	logger *slog.Logger
}

// NewDelayEffect builds the stub effect. A negative delay falls back to
// DefaultDelay; a nil logger uses slog.Default().
func NewDelayEffect(delay time.Duration, logger *slog.Logger) *DelayEffect {
	if delay < 0 {
		delay = DefaultDelay
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &DelayEffect{delay: delay, logger: logger}
}

// Delay reports the configured wait.
func (e *DelayEffect) Delay() time.Duration {
	return e.delay
}

// Submit waits and logs.
func (e *DelayEffect) Submit(ctx context.Context, record Record) error {
	if e.delay > 0 {
		timer := time.NewTimer(e.delay)
		<-timer.C
	}
	e.logger.InfoContext(ctx, "Form data submitted",
		slog.String("form", record.FormID),
		slog.Any("data", record),
	)
	return nil
}
