package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-jobform/pkg/formdef"
	"github.com/goliatone/go-jobform/pkg/model"
	"github.com/goliatone/go-jobform/pkg/render"
	"github.com/goliatone/go-jobform/pkg/renderers/vanilla"
	"github.com/goliatone/go-jobform/pkg/renderers/vanilla/components"
	"github.com/goliatone/go-jobform/pkg/themes"
	"github.com/goliatone/go-jobform/pkg/widgets"
)

const defaultRendererName = "vanilla"

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithStore replaces the embedded form definitions.
func WithStore(store *formdef.Store) Option {
	return func(o *Orchestrator) {
		o.store = store
	}
}

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithDefaultRenderer overrides the renderer used when a request omits one.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.defaultRenderer = strings.TrimSpace(name)
	}
}

// WithWidgets replaces the widget registry that tags fields before rendering.
func WithWidgets(registry *widgets.Registry) Option {
	return func(o *Orchestrator) {
		o.widgets = registry
	}
}

// WithDecorators registers decorators applied to every form after widgets
// are resolved.
func WithDecorators(decorators ...model.Decorator) Option {
	return func(o *Orchestrator) {
		o.decorators = append(o.decorators, decorators...)
	}
}

// WithThemeSelector sets the selector used to resolve request themes.
func WithThemeSelector(selector theme.ThemeSelector) Option {
	return func(o *Orchestrator) {
		o.themeSelector = selector
	}
}

// WithThemeFallbacks supplies partials used when a theme does not override
// them.
func WithThemeFallbacks(fallbacks map[string]string) Option {
	return func(o *Orchestrator) {
		o.themeFallbacks = fallbacks
	}
}

// Orchestrator resolves a form definition, decorates a copy of it and renders
// it with the requested renderer and theme.
type Orchestrator struct {
	store           *formdef.Store
	registry        *render.Registry
	defaultRenderer string
	widgets         *widgets.Registry
	decorators      []model.Decorator
	themeSelector   theme.ThemeSelector
	themeFallbacks  map[string]string
	initialiseErr   error
}

// New constructs an Orchestrator. Missing dependencies use the built-in
// implementations: embedded definitions, the vanilla renderer and the
// default theme.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{defaultRenderer: defaultRendererName}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Request describes one render.
type Request struct {
	// FormID selects a definition from the store. Ignored when Form is set.
	FormID string

	// Form bypasses the store with an already built model.
	Form *model.FormModel

	// Renderer names the renderer; empty means the default renderer.
	Renderer string

	// ThemeName and ThemeVariant select the theme. Empty values use the
	// selector defaults.
	ThemeName    string
	ThemeVariant string

	// RenderOptions carries values, errors and the busy flag. A Theme already
	// set here wins over ThemeName/ThemeVariant.
	RenderOptions render.RenderOptions
}

// Generate renders the requested form.
func (o *Orchestrator) Generate(ctx context.Context, req Request) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if o.initialiseErr != nil {
		return nil, o.initialiseErr
	}

	var form model.FormModel
	if req.Form != nil {
		decorated, err := o.decorate(*req.Form)
		if err != nil {
			return nil, err
		}
		form = decorated
	} else {
		loaded, err := o.Form(req.FormID)
		if err != nil {
			return nil, err
		}
		form = loaded
	}

	renderer, err := o.Renderer(req.Renderer)
	if err != nil {
		return nil, err
	}

	opts := req.RenderOptions
	if opts.Theme == nil {
		cfg, err := o.Theme(req.ThemeName, req.ThemeVariant)
		if err != nil {
			return nil, err
		}
		opts.Theme = cfg
	}

	output, err := renderer.Render(ctx, form, opts)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: render output: %w", err)
	}
	return output, nil
}

// Form returns a decorated copy of the stored definition id. A blank id
// selects the job application form.
func (o *Orchestrator) Form(id string) (model.FormModel, error) {
	if o.initialiseErr != nil {
		return model.FormModel{}, o.initialiseErr
	}
	id = strings.TrimSpace(id)
	if id == "" {
		id = formdef.JobApplicationID
	}
	form, ok := o.store.Form(id)
	if !ok {
		return model.FormModel{}, fmt.Errorf("orchestrator: form %q not found", id)
	}
	return o.decorate(form)
}

// Renderer resolves name against the registry, falling back to the default
// renderer when name is blank.
func (o *Orchestrator) Renderer(name string) (render.Renderer, error) {
	if o.registry == nil {
		return nil, errors.New("orchestrator: renderer registry is nil")
	}
	target := strings.TrimSpace(name)
	if target == "" {
		target = o.defaultRenderer
	}
	renderer, err := o.registry.Resolve(target)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: %w", err)
	}
	return renderer, nil
}

// Theme resolves a theme selection into renderer configuration. Without a
// selector it returns nil and renderers use their built-in classes.
func (o *Orchestrator) Theme(name, variant string) (*theme.RendererConfig, error) {
	if o.themeSelector == nil {
		return nil, nil
	}
	cfg, err := themes.Resolve(o.themeSelector, name, variant, o.themeFallbacks)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: resolve theme: %w", err)
	}
	return cfg, nil
}

func (o *Orchestrator) decorate(form model.FormModel) (model.FormModel, error) {
	out := form.Clone()
	if o.widgets != nil {
		if err := o.widgets.Decorate(&out); err != nil {
			return model.FormModel{}, fmt.Errorf("orchestrator: resolve widgets: %w", err)
		}
	}
	for _, decorator := range o.decorators {
		if decorator == nil {
			continue
		}
		if err := decorator.Decorate(&out); err != nil {
			return model.FormModel{}, fmt.Errorf("orchestrator: decorate form: %w", err)
		}
	}
	return out, nil
}

func (o *Orchestrator) applyDefaults() {
	if o.store == nil {
		store, err := formdef.LoadFS(formdef.DefinitionsFS(), model.LabelDecorator(nil))
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: load definitions: %w", err)
			return
		}
		o.store = store
	}
	if o.widgets == nil {
		o.widgets = widgets.NewRegistry()
	}
	if o.registry == nil {
		o.registry = render.NewRegistry()
		renderer, err := vanilla.New(vanilla.WithWidgets(o.widgets))
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default renderer: %w", err)
			return
		}
		o.registry.MustRegister(renderer)
	}
	if o.themeSelector == nil {
		selector, err := themes.NewSelector(themes.Default())
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default theme: %w", err)
			return
		}
		o.themeSelector = selector
	}
	if o.themeFallbacks == nil {
		o.themeFallbacks = components.DefaultPartials()
	}
}
