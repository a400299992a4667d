package tui

import (
	"context"
	"errors"
	"fmt"
	"html"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-jobform/pkg/form"
	"github.com/goliatone/go-jobform/pkg/model"
	"github.com/goliatone/go-jobform/pkg/render"
	"github.com/goliatone/go-jobform/pkg/rules"
	"github.com/goliatone/go-jobform/pkg/submission"
)

// Renderer implements render.Renderer for terminal sessions. Each field is
// prompted in declaration order and re-asked until its rules pass; the
// collected record is then optionally submitted and serialized.
type Renderer struct {
	driver       PromptDriver
	outputFormat OutputFormat
	effect       submission.Effect
	files        FileInspector
	now          func() time.Time
	confirm      bool
	theme        Theme
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs a TUI renderer with defaults (survey driver, JSON output,
// local file inspection).
func New(options ...Option) (*Renderer, error) {
	r := &Renderer{
		driver:       newSurveyDriver(),
		outputFormat: OutputFormatJSON,
		files:        LocalFiles{},
		now:          time.Now,
		theme:        Theme{ErrorPrefix: "✗ "},
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	switch r.outputFormat {
	case OutputFormatJSON, OutputFormatPrettyText:
	default:
		return nil, fmt.Errorf("tui: unsupported output format %q", r.outputFormat)
	}
	return r, nil
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return "tui"
}

// ContentType reports the serialization format used by Render.
func (r *Renderer) ContentType() string {
	if r.outputFormat == OutputFormatPrettyText {
		return "text/plain; charset=utf-8"
	}
	return "application/json"
}

// Render prompts for every field, seeding defaults from opts.Values, and
// returns the serialized record. With an effect configured the record goes
// through the submission controller first and the busy label is printed
// while the effect runs.
func (r *Renderer) Render(ctx context.Context, def model.FormModel, opts render.RenderOptions) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("tui: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.driver == nil {
		return nil, errors.New("tui: prompt driver is nil")
	}

	registry, err := form.New(def, rules.WithClock(r.now))
	if err != nil {
		return nil, fmt.Errorf("tui: %w", err)
	}

	if def.Title != "" {
		if err := r.driver.Info(ctx, r.theme.InfoPrefix+def.Title); err != nil {
			return nil, err
		}
	}

	for _, field := range def.Fields {
		binding, ok := registry.Binding(field.Name)
		if !ok {
			return nil, fmt.Errorf("tui: field %q not registered", field.Name)
		}
		if err := r.promptField(ctx, field, binding, registry.Evaluator(), opts.Values[field.Name]); err != nil {
			return nil, err
		}
	}

	record, err := r.submit(ctx, def, registry)
	if err != nil {
		return nil, err
	}
	return r.serialize(def, record)
}

func (r *Renderer) promptField(ctx context.Context, field model.Field, binding *form.Binding, evaluator *rules.Evaluator, prefill model.Value) error {
	for {
		value, problem, err := r.ask(ctx, field, evaluator, prefill)
		if err != nil {
			return err
		}
		if problem == "" {
			state, err := binding.Set(value)
			if err != nil {
				return err
			}
			if !state.HasError() {
				return nil
			}
			problem = state.Message()
		}
		if err := r.driver.Info(ctx, r.theme.ErrorPrefix+problem); err != nil {
			return err
		}
	}
}

// ask collects one raw value. problem is set when the input could not be
// turned into a value at all, such as an unreadable file path.
func (r *Renderer) ask(ctx context.Context, field model.Field, evaluator *rules.Evaluator, prefill model.Value) (value model.Value, problem string, err error) {
	label := displayLabel(field)
	help := displayHelp(field)

	switch field.Type {
	case model.FieldTypeSelect:
		if len(field.Options) == 0 {
			return model.Value{}, "", fmt.Errorf("%w: %q", ErrNoOptions, field.Name)
		}
		labels := make([]string, len(field.Options))
		defaultIdx := -1
		for i, option := range field.Options {
			labels[i] = option.Label
			if labels[i] == "" {
				labels[i] = option.Value
			}
			if option.Value == prefill.Text {
				defaultIdx = i
			}
		}
		idx, err := r.driver.Select(ctx, SelectConfig{
			Message:      label,
			Options:      labels,
			DefaultIndex: defaultIdx,
			Help:         help,
		})
		if err != nil {
			return model.Value{}, "", err
		}
		if idx < 0 || idx >= len(field.Options) {
			return model.Value{}, "", nil
		}
		return model.Text(field.Options[idx].Value), "", nil

	case model.FieldTypeFile:
		path, err := r.driver.Input(ctx, InputConfig{
			Message: label + " (path)",
			Default: prefill.Display(),
			Help:    help,
		})
		if err != nil {
			return model.Value{}, "", err
		}
		if strings.TrimSpace(path) == "" {
			return model.Value{}, "", nil
		}
		ref, err := r.files.Inspect(path)
		if err != nil {
			return model.Value{}, err.Error(), nil
		}
		return model.Files(ref), "", nil

	default:
		if field.Type == model.FieldTypeDate && help == "" {
			help = "Format: YYYY-MM-DD"
		}
		text, err := r.driver.Input(ctx, InputConfig{
			Message:   label,
			Default:   prefill.Text,
			Help:      help,
			Validator: fieldValidator(evaluator, field.Name),
		})
		if err != nil {
			return model.Value{}, "", err
		}
		return model.Text(text), "", nil
	}
}

func (r *Renderer) submit(ctx context.Context, def model.FormModel, registry *form.Registry) (submission.Record, error) {
	if r.effect == nil {
		if failures := registry.ValidateAll(); len(failures) > 0 {
			return submission.Record{}, blockedError(failures)
		}
		return submission.BuildRecord(def.ID, registry.Fields(), registry.Values(), r.now()), nil
	}

	if r.confirm {
		ok, err := r.driver.Confirm(ctx, ConfirmConfig{Message: submitLabel(def) + "?", Default: true})
		if err != nil {
			return submission.Record{}, err
		}
		if !ok {
			return submission.Record{}, ErrAborted
		}
	}

	busyLabel := def.BusyLabel
	if busyLabel == "" {
		busyLabel = "Submitting..."
	}
	controller := submission.NewController(registry, r.effect,
		submission.WithFormID(def.ID),
		submission.WithClock(r.now),
		submission.WithStateObserver(func(state submission.State) {
			if state == submission.StateSubmitting {
				_ = r.driver.Info(ctx, r.theme.InfoPrefix+busyLabel)
			}
		}),
	)

	result, err := controller.Submit(ctx)
	if err != nil {
		return submission.Record{}, err
	}
	if result.Blocked() {
		return submission.Record{}, blockedError(result.Errors)
	}
	return *result.Record, nil
}

func (r *Renderer) serialize(def model.FormModel, record submission.Record) ([]byte, error) {
	if r.outputFormat == OutputFormatPrettyText {
		var b strings.Builder
		for _, entry := range record.Entries() {
			label := entry.Name
			if field, ok := def.Field(entry.Name); ok {
				label = displayLabel(field)
			}
			fmt.Fprintf(&b, "%s: %s\n", label, entry.Value)
		}
		return []byte(b.String()), nil
	}
	return record.MarshalJSON()
}

func fieldValidator(evaluator *rules.Evaluator, name string) func(string) error {
	return func(input string) error {
		messages, err := evaluator.Evaluate(name, model.Text(input))
		if err != nil {
			return err
		}
		if len(messages) > 0 {
			return errors.New(messages[0])
		}
		return nil
	}
}

func blockedError(failures map[string][]string) error {
	names := make([]string, 0, len(failures))
	for name := range failures {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s: %s", name, strings.Join(failures[name], "; ")))
	}
	return fmt.Errorf("%w (%s)", ErrBlocked, strings.Join(parts, ", "))
}

func submitLabel(def model.FormModel) string {
	if def.SubmitLabel != "" {
		return def.SubmitLabel
	}
	return "Submit"
}

func displayLabel(field model.Field) string {
	if field.Label != "" {
		return field.Label
	}
	return model.DefaultLabeler(field.Name)
}

var (
	plainTextOnce   sync.Once
	plainTextPolicy *bluemonday.Policy
)

// displayHelp strips help markup down to plain text, falling back to the
// placeholder.
func displayHelp(field model.Field) string {
	if strings.TrimSpace(field.HelpHTML) == "" {
		return field.Placeholder
	}
	plainTextOnce.Do(func() {
		plainTextPolicy = bluemonday.StrictPolicy()
	})
	return strings.TrimSpace(html.UnescapeString(plainTextPolicy.Sanitize(field.HelpHTML)))
}
