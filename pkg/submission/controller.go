package submission

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/goliatone/go-jobform/pkg/form"
)

var (
	// ErrSubmitInFlight is returned when Submit is called while a previous
	// submission is still validating or awaiting its effect.
	ErrSubmitInFlight = errors.New("submission: submit already in flight")
	// ErrNoEffect is returned when the controller has no effect to invoke.
	ErrNoEffect = errors.New("submission: effect is required")
)

// State is the controller lifecycle position.
type State int

const (
	StateIdle State = iota
	StateValidating
	StateBlocked
	StateSubmitting
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateValidating:
		return "validating"
	case StateBlocked:
		return "blocked"
	case StateSubmitting:
		return "submitting"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Result describes the outcome of one submit attempt.
type Result struct {
	// State is where the controller settled: StateBlocked or StateIdle.
	State State
	// Errors holds field messages when the attempt was blocked.
	Errors map[string][]string
	// FormErrors holds form-level messages, such as an effect failure.
	FormErrors []string
	// Record is the snapshot passed to the effect, nil when blocked.
	Record *Record
}

// Submitted reports whether the effect ran and succeeded.
func (r Result) Submitted() bool {
	return r.Record != nil && len(r.FormErrors) == 0
}

// Blocked reports whether validation stopped the submission.
func (r Result) Blocked() bool {
	return r.State == StateBlocked
}

// Option configures a Controller.
type Option func(*Controller)

// WithFormID tags records with the form identifier.
func WithFormID(id string) Option {
	return func(c *Controller) {
		c.formID = id
	}
}

// WithLogger sets the logger used for lifecycle events.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithClock overrides the record timestamp source.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		if now != nil {
			c.now = now
		}
	}
}

// WithStateObserver registers a callback invoked on every transition. The
// rendering layer uses it to disable the submit control while busy.
func WithStateObserver(fn func(State)) Option {
	return func(c *Controller) {
		if fn != nil {
			c.observers = append(c.observers, fn)
		}
	}
}

// Controller gatekeeps submissions for one form session.
type Controller struct {
	mu        sync.Mutex
	registry  *form.Registry
	effect    Effect
	formID    string
	state     State
	logger    *slog.Logger
	now       func() time.Time
	observers []func(State)
}

// NewController wires a registry to an effect.
func NewController(registry *form.Registry, effect Effect, options ...Option) *Controller {
	c := &Controller{
		registry: registry,
		effect:   effect,
		logger:   slog.New(slog.DiscardHandler),
		now:      time.Now,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}
	return c
}

// State returns the current lifecycle state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Busy reports whether the submit control should be disabled.
func (c *Controller) Busy() bool {
	switch c.State() {
	case StateValidating, StateSubmitting:
		return true
	default:
		return false
	}
}

// Submit revalidates every field and, when all pass, invokes the effect and
// waits for it. Validation failures are reported in the Result, not as an
// error. An effect failure is reported both as a form-level message and as
// the returned error; the controller is back in StateIdle either way.
func (c *Controller) Submit(ctx context.Context) (Result, error) {
	if c.registry == nil {
		return Result{}, errors.New("submission: registry is required")
	}
	if c.effect == nil {
		return Result{}, ErrNoEffect
	}

	c.mu.Lock()
	if c.state == StateValidating || c.state == StateSubmitting {
		current := c.state
		c.mu.Unlock()
		return Result{State: current}, ErrSubmitInFlight
	}
	c.state = StateValidating
	observers := c.snapshotObservers()
	c.mu.Unlock()
	notify(observers, StateValidating)

	// Writes are refused until the attempt settles, and the record is built
	// from exactly the values that passed.
	release := c.registry.Freeze()
	defer release()

	check := c.registry.Check()
	if !check.Valid() {
		release()
		c.transition(StateBlocked)
		c.logger.DebugContext(ctx, "submission blocked",
			slog.String("form", c.formID),
			slog.Int("invalid_fields", len(check.Failures)),
		)
		return Result{State: StateBlocked, Errors: check.Failures}, nil
	}

	record := BuildRecord(c.formID, c.registry.Fields(), check.Values, c.now())
	c.transition(StateSubmitting)

	err := c.effect.Submit(ctx, record)
	release()
	c.transition(StateIdle)

	result := Result{State: StateIdle, Record: &record}
	if err != nil {
		c.logger.ErrorContext(ctx, "submission effect failed",
			slog.String("form", c.formID),
			slog.Any("error", err),
		)
		result.FormErrors = []string{"Submission failed, please try again"}
		return result, fmt.Errorf("submission: effect: %w", err)
	}
	return result, nil
}

func (c *Controller) transition(next State) {
	c.mu.Lock()
	c.state = next
	observers := c.snapshotObservers()
	c.mu.Unlock()
	notify(observers, next)
}

func (c *Controller) snapshotObservers() []func(State) {
	if len(c.observers) == 0 {
		return nil
	}
	return append([]func(State){}, c.observers...)
}

func notify(observers []func(State), state State) {
	for _, fn := range observers {
		fn(state)
	}
}
