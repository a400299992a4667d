package widgets

import (
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-jobform/pkg/model"
)

// Built-in widget identifiers. They double as component names in the HTML
// renderer.
const (
	WidgetInput  = "input"
	WidgetSelect = "select"
	WidgetFile   = "file"
)

// MetadataKey is the field metadata entry that pins a widget explicitly.
const MetadataKey = "widget"

// Matcher decides whether a widget renderer should handle the supplied field.
type Matcher func(field model.Field) bool

type rule struct {
	name     string
	priority int
	match    Matcher
	order    int
}

// Registry selects widgets for fields based on explicit metadata or
// registered matchers. Higher priority wins; ties fall back to registration
// order.
type Registry struct {
	mu       sync.RWMutex
	rules    []rule
	fallback string
}

// NewRegistry constructs a registry with the built-in matchers registered.
// Fields nothing matches resolve to WidgetInput.
func NewRegistry() *Registry {
	reg := &Registry{fallback: WidgetInput}
	reg.registerBuiltins()
	return reg
}

// Register adds a widget matcher with the provided name and priority.
func (r *Registry) Register(name string, priority int, matcher Matcher) {
	if r == nil || matcher == nil {
		return
	}
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.rules = append(r.rules, rule{
		name:     trimmed,
		priority: priority,
		match:    matcher,
		order:    len(r.rules),
	})
}

// Resolve returns the widget name for a field. Metadata["widget"] wins over
// matchers.
func (r *Registry) Resolve(field model.Field) (string, bool) {
	if explicit := strings.TrimSpace(field.Metadata[MetadataKey]); explicit != "" {
		return explicit, true
	}
	if r == nil {
		return "", false
	}
	r.mu.RLock()
	rules := append([]rule(nil), r.rules...)
	fallback := r.fallback
	r.mu.RUnlock()

	sort.SliceStable(rules, func(i, j int) bool {
		if rules[i].priority == rules[j].priority {
			return rules[i].order < rules[j].order
		}
		return rules[i].priority > rules[j].priority
	})
	for _, entry := range rules {
		if entry.match(field) {
			return entry.name, true
		}
	}
	return fallback, fallback != ""
}

// Decorate implements model.Decorator, recording the resolved widget in each
// field's metadata unless one is already set.
func (r *Registry) Decorate(form *model.FormModel) error {
	if r == nil || form == nil {
		return nil
	}
	for idx := range form.Fields {
		field := &form.Fields[idx]
		widget, ok := r.Resolve(*field)
		if !ok || widget == "" {
			continue
		}
		if field.Metadata == nil {
			field.Metadata = make(map[string]string)
		}
		if field.Metadata[MetadataKey] == "" {
			field.Metadata[MetadataKey] = widget
		}
	}
	return nil
}

func (r *Registry) registerBuiltins() {
	r.Register(WidgetFile, 90, func(field model.Field) bool {
		return field.Type == model.FieldTypeFile
	})
	r.Register(WidgetSelect, 80, func(field model.Field) bool {
		return field.Type == model.FieldTypeSelect || len(field.Options) > 0
	})
}
