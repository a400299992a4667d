package render

import (
	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-jobform/pkg/form"
	"github.com/goliatone/go-jobform/pkg/model"
)

// RenderOptions describe per-request data that renderers use to reflect the
// current form state without mutating the form model.
type RenderOptions struct {
	// Values pre-populates controls. File fields only show the first file name.
	Values map[string]model.Value
	// Errors holds the failing rule messages keyed by field name. Renderers
	// show the first message inline and flag the control.
	Errors map[string][]string
	// FormErrors are messages that do not belong to a single field, such as a
	// failed submission effect.
	FormErrors []string
	// Notices are informational messages, such as a submission confirmation.
	Notices []string
	// Busy disables the submit control and swaps its label for the form's
	// busy label.
	Busy bool
	// Hidden is emitted as hidden inputs, sorted by name.
	Hidden map[string]string
	// Theme carries the resolved theme tokens and partial overrides.
	Theme *theme.RendererConfig
}

// WithStates returns a copy of o populated from a registry snapshot.
func (o RenderOptions) WithStates(states map[string]form.FieldState) RenderOptions {
	if len(states) == 0 {
		return o
	}
	values := make(map[string]model.Value, len(states)+len(o.Values))
	for name, value := range o.Values {
		values[name] = value
	}
	var errs map[string][]string
	for name, messages := range o.Errors {
		if errs == nil {
			errs = make(map[string][]string)
		}
		errs[name] = messages
	}
	for name, state := range states {
		values[name] = state.Value
		if !state.HasError() {
			continue
		}
		if errs == nil {
			errs = make(map[string][]string)
		}
		errs[name] = state.Errors
	}
	o.Values = values
	o.Errors = errs
	return o
}

// FirstError returns the message shown inline for field, or "".
func (o RenderOptions) FirstError(field string) string {
	for _, message := range o.Errors[field] {
		if message != "" {
			return message
		}
	}
	return ""
}
