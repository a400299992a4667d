package vanilla

import (
	"context"
	"fmt"
	"io/fs"
	"strings"

	"github.com/goliatone/go-jobform/pkg/model"
	"github.com/goliatone/go-jobform/pkg/render"
	rendertemplate "github.com/goliatone/go-jobform/pkg/render/template"
	gotemplate "github.com/goliatone/go-jobform/pkg/render/template/gotemplate"
	"github.com/goliatone/go-jobform/pkg/renderers/vanilla/components"
	"github.com/goliatone/go-jobform/pkg/themes"
	"github.com/goliatone/go-jobform/pkg/widgets"
)

type Option func(*config)

type config struct {
	templateFS   fs.FS
	templatesDir string
	widgets      *widgets.Registry
	document     bool
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir layers a directory on disk over the template bundle. A
// file at the same relative path (templates/form.tmpl,
// templates/components/input.tmpl, ...) replaces the bundled one.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		cfg.templatesDir = strings.TrimSpace(path)
	}
}

// WithWidgets replaces the registry that picks a component per field.
func WithWidgets(registry *widgets.Registry) Option {
	return func(cfg *config) {
		if registry != nil {
			cfg.widgets = registry
		}
	}
}

// WithDocument wraps the form in a complete HTML page.
func WithDocument(enabled bool) Option {
	return func(cfg *config) {
		cfg.document = enabled
	}
}

type Renderer struct {
	templates  rendertemplate.TemplateRenderer
	components *components.Registry
	widgets    *widgets.Registry
	document   bool
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the vanilla renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}
	if cfg.widgets == nil {
		cfg.widgets = widgets.NewRegistry()
	}

	engine, err := gotemplate.New(
		gotemplate.WithBaseDir(cfg.templatesDir),
		gotemplate.WithFS(cfg.templateFS),
		gotemplate.WithExtension(".tmpl"),
	)
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: configure templates: %w", err)
	}

	return &Renderer{
		templates:  engine,
		components: components.NewDefaultRegistry(),
		widgets:    cfg.widgets,
		document:   cfg.document,
	}, nil
}

func (r *Renderer) Name() string {
	return "vanilla"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render draws every field with its label, current value and first error
// message. While options.Busy is set the controls and the submit button are
// disabled and the button shows the form's busy label.
func (r *Renderer) Render(_ context.Context, form model.FormModel, options render.RenderOptions) ([]byte, error) {
	if r.templates == nil {
		return nil, fmt.Errorf("vanilla renderer: template renderer is nil")
	}

	classes := resolveClasses(options)
	fields := newComponentRenderer(r.templates, r.components, r.widgets, classes, options)

	var sections []map[string]any
	for _, section := range render.GroupSections(form) {
		views := make([]map[string]any, 0, len(section.Fields))
		for _, field := range section.Fields {
			view, err := fields.render(field)
			if err != nil {
				return nil, fmt.Errorf("vanilla renderer: %w", err)
			}
			views = append(views, view)
		}
		sections = append(sections, map[string]any{
			"title":  section.Title,
			"fields": views,
		})
	}

	var hidden []map[string]any
	for _, field := range render.SortedHiddenFields(options.Hidden) {
		hidden = append(hidden, map[string]any{"name": field.Name, "value": field.Value})
	}

	submitLabel := strings.TrimSpace(form.SubmitLabel)
	if submitLabel == "" {
		submitLabel = "Submit"
	}
	busyLabel := strings.TrimSpace(form.BusyLabel)
	if busyLabel == "" {
		busyLabel = "Submitting..."
	}

	var stylesheet, cssVars string
	if options.Theme != nil {
		if options.Theme.AssetURL != nil {
			stylesheet = options.Theme.AssetURL(themes.StylesheetAsset)
		}
		cssVars = cssVarsStyle(options.Theme.CSSVars)
	}

	result, err := r.templates.RenderTemplate("templates/form.tmpl", map[string]any{
		"form": map[string]any{
			"id":          form.ID,
			"title":       form.Title,
			"endpoint":    form.Endpoint,
			"method":      strings.ToLower(form.Method),
			"submitLabel": submitLabel,
			"busyLabel":   busyLabel,
		},
		"sections":     sections,
		"hiddenFields": hidden,
		"formErrors":   render.MergeFormErrors(options.FormErrors),
		"notices":      options.Notices,
		"busy":         options.Busy,
		"classes":      classes.view(options.Busy),
		"stylesheet":   stylesheet,
		"componentCSS": fields.stylesheets(),
		"cssVars":      cssVars,
	})
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render template: %w", err)
	}

	if !r.document {
		return []byte(result), nil
	}
	page, err := r.templates.RenderTemplate("templates/page.tmpl", map[string]any{
		"title": form.Title,
		"body":  result,
	})
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render page: %w", err)
	}
	return []byte(page), nil
}
