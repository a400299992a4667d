package form

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/goliatone/go-jobform/pkg/model"
	"github.com/goliatone/go-jobform/pkg/rules"
)

var (
	// ErrFieldNameRequired is returned when registering an unnamed field.
	ErrFieldNameRequired = errors.New("form: field name is required")
	// ErrDuplicateField is returned when two fields share a name.
	ErrDuplicateField = errors.New("form: duplicate field")
	// ErrUnknownField is returned when addressing a field that was never registered.
	ErrUnknownField = errors.New("form: unknown field")
	// ErrFormLocked is returned when a write lands while the form is frozen
	// by an in-flight submission.
	ErrFormLocked = errors.New("form: locked by submission")
)

// FieldState is a field's current value plus the messages of its failing
// rules. It is recomputed on every change and every submit attempt.
type FieldState struct {
	Value  model.Value `json:"value"`
	Errors []string    `json:"errors,omitempty"`
}

// HasError reports whether any rule failed.
func (s FieldState) HasError() bool {
	return len(s.Errors) > 0
}

// Message returns the first failing rule's message, or "".
func (s FieldState) Message() string {
	if len(s.Errors) == 0 {
		return ""
	}
	return s.Errors[0]
}

// Registry associates field names with rule sets and current state.
type Registry struct {
	mu        sync.RWMutex
	evaluator *rules.Evaluator
	bindings  map[string]*Binding
	order     []string
	frozen    bool
}

// NewRegistry creates an empty registry evaluating through evaluator. A nil
// evaluator is replaced with rules.NewEvaluator().
func NewRegistry(evaluator *rules.Evaluator) *Registry {
	if evaluator == nil {
		evaluator = rules.NewEvaluator()
	}
	return &Registry{
		evaluator: evaluator,
		bindings:  make(map[string]*Binding),
	}
}

// New compiles every field of the form model and registers it, preserving
// the model's field order.
func New(form model.FormModel, options ...rules.Option) (*Registry, error) {
	reg := NewRegistry(rules.NewEvaluator(options...))
	for _, field := range form.Fields {
		set, err := rules.Compile(field)
		if err != nil {
			return nil, fmt.Errorf("form: %w", err)
		}
		if _, err := reg.Register(field.Name, set); err != nil {
			return nil, err
		}
	}
	return reg, nil
}

// Register binds set to name and returns the binding the UI layer uses to
// push values and read state.
func (r *Registry) Register(name string, set []rules.Rule) (*Binding, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return nil, ErrFieldNameRequired
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.bindings[trimmed]; exists {
		return nil, fmt.Errorf("%w: %q", ErrDuplicateField, trimmed)
	}
	if err := r.evaluator.Register(trimmed, set); err != nil {
		if errors.Is(err, rules.ErrDuplicateField) {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateField, trimmed)
		}
		return nil, fmt.Errorf("form: register %q: %w", trimmed, err)
	}

	binding := &Binding{registry: r, name: trimmed}
	r.bindings[trimmed] = binding
	r.order = append(r.order, trimmed)
	return binding, nil
}

// Binding returns the binding registered under name.
func (r *Registry) Binding(name string) (*Binding, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.bindings[name]
	return b, ok
}

// Fields lists field names in registration order.
func (r *Registry) Fields() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.order...)
}

// Evaluator exposes the evaluator backing this registry.
func (r *Registry) Evaluator() *rules.Evaluator {
	return r.evaluator
}

// Set updates one field and re-evaluates it.
func (r *Registry) Set(name string, value model.Value) (FieldState, error) {
	b, ok := r.Binding(name)
	if !ok {
		return FieldState{}, fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	return b.Set(value)
}

// Freeze refuses every write until the returned release func is called.
// Releasing more than once is a no-op.
func (r *Registry) Freeze() (release func()) {
	r.mu.Lock()
	r.frozen = true
	r.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			r.mu.Lock()
			r.frozen = false
			r.mu.Unlock()
		})
	}
}

// Frozen reports whether writes are currently refused.
func (r *Registry) Frozen() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.frozen
}

// Check is one consistent validation pass: the values that were evaluated
// and the fields among them that failed.
type Check struct {
	Values   map[string]model.Value
	Failures map[string][]string
}

// Valid reports whether no field failed.
func (c Check) Valid() bool {
	return len(c.Failures) == 0
}

// Check snapshots every value, evaluates the snapshot and stores the
// resulting states. A field written after the snapshot keeps its newer
// state; the returned Check always describes the snapshot.
func (r *Registry) Check() Check {
	type entry struct {
		binding *Binding
		value   model.Value
		version uint64
	}

	r.mu.RLock()
	entries := make([]entry, 0, len(r.order))
	for _, name := range r.order {
		b := r.bindings[name]
		entries = append(entries, entry{binding: b, value: b.state.clone().Value, version: b.version})
	}
	r.mu.RUnlock()

	out := Check{Values: make(map[string]model.Value, len(entries))}
	states := make([]FieldState, len(entries))
	for i, e := range entries {
		messages, _ := r.evaluator.Evaluate(e.binding.name, e.value)
		states[i] = FieldState{Value: e.value, Errors: messages}
		out.Values[e.binding.name] = e.value
		if len(messages) == 0 {
			continue
		}
		if out.Failures == nil {
			out.Failures = make(map[string][]string)
		}
		out.Failures[e.binding.name] = append([]string(nil), messages...)
	}

	r.mu.Lock()
	for i, e := range entries {
		if e.binding.version != e.version {
			continue
		}
		e.binding.state = states[i]
	}
	r.mu.Unlock()
	return out
}

// ValidateAll re-evaluates every field and returns the failing ones keyed by
// name. A nil map means the whole form is valid.
func (r *Registry) ValidateAll() map[string][]string {
	return r.Check().Failures
}

// Valid reports whether every field currently has zero errors. It does not
// re-evaluate.
func (r *Registry) Valid() bool {
	for _, state := range r.States() {
		if state.HasError() {
			return false
		}
	}
	return true
}

// Values snapshots the current value of every field.
func (r *Registry) Values() map[string]model.Value {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string]model.Value, len(r.bindings))
	for name, b := range r.bindings {
		out[name] = b.state.Value
	}
	return out
}

// States snapshots every field's state.
func (r *Registry) States() map[string]FieldState {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string]FieldState, len(r.bindings))
	for name, b := range r.bindings {
		out[name] = b.state.clone()
	}
	return out
}

// Errors returns the current messages of every failing field without
// re-evaluating.
func (r *Registry) Errors() map[string][]string {
	var out map[string][]string
	for name, state := range r.States() {
		if !state.HasError() {
			continue
		}
		if out == nil {
			out = make(map[string][]string)
		}
		out[name] = state.Errors
	}
	return out
}

// Reset clears every value and error. It returns ErrFormLocked while the
// form is frozen.
func (r *Registry) Reset() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.frozen {
		return ErrFormLocked
	}
	for _, b := range r.bindings {
		b.state = FieldState{}
		b.version++
	}
	return nil
}

// Binding connects one input to the registry.
type Binding struct {
	registry *Registry
	name     string
	state    FieldState
	version  uint64
}

// Name returns the bound field name.
func (b *Binding) Name() string {
	return b.name
}

// Set stores value and re-evaluates this field only. While the form is
// frozen the value is dropped and ErrFormLocked is returned with the
// unchanged state.
func (b *Binding) Set(value model.Value) (FieldState, error) {
	if b.registry.Frozen() {
		return b.State(), fmt.Errorf("%w: %q", ErrFormLocked, b.name)
	}
	messages, _ := b.registry.evaluator.Evaluate(b.name, value)

	b.registry.mu.Lock()
	defer b.registry.mu.Unlock()
	if b.registry.frozen {
		return b.state.clone(), fmt.Errorf("%w: %q", ErrFormLocked, b.name)
	}
	b.state = FieldState{Value: value, Errors: messages}
	b.version++
	return b.state.clone(), nil
}

// Validate re-evaluates the current value. A write racing with it wins.
func (b *Binding) Validate() FieldState {
	b.registry.mu.RLock()
	value := b.state.clone().Value
	version := b.version
	b.registry.mu.RUnlock()

	messages, _ := b.registry.evaluator.Evaluate(b.name, value)

	b.registry.mu.Lock()
	defer b.registry.mu.Unlock()
	if b.version == version {
		b.state = FieldState{Value: value, Errors: messages}
	}
	return b.state.clone()
}

// State returns the current field state.
func (b *Binding) State() FieldState {
	b.registry.mu.RLock()
	defer b.registry.mu.RUnlock()
	return b.state.clone()
}

// HasError reports whether the field currently fails a rule.
func (b *Binding) HasError() bool {
	return b.State().HasError()
}

func (s FieldState) clone() FieldState {
	out := FieldState{Value: s.Value}
	if len(s.Value.Files) > 0 {
		out.Value.Files = append([]model.FileRef(nil), s.Value.Files...)
	}
	if len(s.Errors) > 0 {
		out.Errors = append([]string(nil), s.Errors...)
	}
	return out
}
