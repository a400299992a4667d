package tui

import (
	"time"

	"github.com/goliatone/go-jobform/pkg/submission"
)

// OutputFormat controls how the submitted record is serialized.
type OutputFormat string

const (
	// OutputFormatJSON emits the record as an ordered JSON object.
	OutputFormatJSON OutputFormat = "json"
	// OutputFormatPrettyText emits one "label: value" line per field.
	OutputFormatPrettyText OutputFormat = "pretty"
)

// Theme captures optional prefixes the renderer applies when printing
// messages.
type Theme struct {
	InfoPrefix  string
	ErrorPrefix string
}

// Option configures the TUI renderer.
type Option func(*Renderer)

// WithPromptDriver overrides the prompt driver used by the renderer.
func WithPromptDriver(driver PromptDriver) Option {
	return func(r *Renderer) {
		if driver != nil {
			r.driver = driver
		}
	}
}

// WithOutputFormat selects the output serialization format.
func WithOutputFormat(format OutputFormat) Option {
	return func(r *Renderer) {
		if format != "" {
			r.outputFormat = format
		}
	}
}

// WithEffect runs the submission controller with effect once every field has
// been collected. Without an effect the record is only serialized.
func WithEffect(effect submission.Effect) Option {
	return func(r *Renderer) {
		r.effect = effect
	}
}

// WithFileInspector replaces the local disk inspector used for file fields.
func WithFileInspector(inspector FileInspector) Option {
	return func(r *Renderer) {
		if inspector != nil {
			r.files = inspector
		}
	}
}

// WithClock overrides the time source used for age rules and record stamps.
func WithClock(now func() time.Time) Option {
	return func(r *Renderer) {
		if now != nil {
			r.now = now
		}
	}
}

// WithConfirm asks for confirmation before submitting.
func WithConfirm(enabled bool) Option {
	return func(r *Renderer) {
		r.confirm = enabled
	}
}

// WithTheme applies optional message prefixes.
func WithTheme(theme Theme) Option {
	return func(r *Renderer) {
		r.theme = theme
	}
}
