package rules

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/goliatone/go-jobform/pkg/model"
)

var (
	// ErrUnknownField is returned when evaluating a field with no rule set.
	ErrUnknownField = errors.New("rules: unknown field")
	// ErrDuplicateField is returned when a rule set is registered twice.
	ErrDuplicateField = errors.New("rules: field already registered")
)

// CriteriaMode selects how many messages a failing field reports.
type CriteriaMode int

const (
	// CriteriaFirstError stops at the first failing rule (declaration order).
	CriteriaFirstError CriteriaMode = iota
	// CriteriaAll reports every failing rule in declaration order.
	CriteriaAll
)

// Evaluate runs rules against value. It returns nil when the value passes.
func Evaluate(set []Rule, value model.Value, env Env, mode CriteriaMode) []string {
	var messages []string
	for _, rule := range set {
		msg, ok := rule.Check(value, env)
		if ok {
			continue
		}
		messages = append(messages, msg)
		if mode == CriteriaFirstError {
			break
		}
	}
	return messages
}

// Option configures an Evaluator.
type Option func(*Evaluator)

// WithClock overrides the time source used for age checks.
func WithClock(now func() time.Time) Option {
	return func(e *Evaluator) {
		if now != nil {
			e.now = now
		}
	}
}

// WithCriteriaMode selects first-error or all-errors reporting.
func WithCriteriaMode(mode CriteriaMode) Option {
	return func(e *Evaluator) {
		e.mode = mode
	}
}

// Evaluator maps field names to ordered rule sets.
type Evaluator struct {
	mu    sync.RWMutex
	sets  map[string][]Rule
	order []string
	now   func() time.Time
	mode  CriteriaMode
}

// NewEvaluator constructs an empty evaluator.
func NewEvaluator(options ...Option) *Evaluator {
	e := &Evaluator{
		sets: make(map[string][]Rule),
		now:  time.Now,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(e)
	}
	return e
}

// FromForm compiles every field of form into a new evaluator.
func FromForm(form model.FormModel, options ...Option) (*Evaluator, error) {
	e := NewEvaluator(options...)
	for _, field := range form.Fields {
		set, err := Compile(field)
		if err != nil {
			return nil, err
		}
		if err := e.Register(field.Name, set); err != nil {
			return nil, err
		}
	}
	return e, nil
}

// Register binds an ordered rule set to a field name.
func (e *Evaluator) Register(field string, set []Rule) error {
	name := strings.TrimSpace(field)
	if name == "" {
		return errors.New("rules: field name is required")
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if _, exists := e.sets[name]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateField, name)
	}
	e.sets[name] = append([]Rule(nil), set...)
	e.order = append(e.order, name)
	return nil
}

// Has reports whether field has a registered rule set.
func (e *Evaluator) Has(field string) bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	_, ok := e.sets[field]
	return ok
}

// Fields lists registered field names in registration order.
func (e *Evaluator) Fields() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return append([]string(nil), e.order...)
}

// Rules returns a copy of the rule set bound to field.
func (e *Evaluator) Rules(field string) []Rule {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return append([]Rule(nil), e.sets[field]...)
}

// Env builds the evaluation context for the current instant.
func (e *Evaluator) Env() Env {
	return Env{Now: e.now()}
}

// Evaluate checks value against the field's rules.
func (e *Evaluator) Evaluate(field string, value model.Value) ([]string, error) {
	e.mu.RLock()
	set, ok := e.sets[field]
	e.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	return Evaluate(set, value, e.Env(), e.mode), nil
}
