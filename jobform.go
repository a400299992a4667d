// Package jobform is the top-level entry point for rendering the job
// application form. The subpackages hold the field registry, rule evaluator,
// submission controller and renderers; this package re-exports the pieces a
// caller needs for the common cases.
package jobform

import (
	"context"
	"io/fs"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-jobform/pkg/formdef"
	"github.com/goliatone/go-jobform/pkg/model"
	"github.com/goliatone/go-jobform/pkg/orchestrator"
	"github.com/goliatone/go-jobform/pkg/render"
	"github.com/goliatone/go-jobform/pkg/renderers/vanilla"
)

// RenderOptions describes per-request values, errors and busy state.
type RenderOptions = render.RenderOptions

// FormModel is the declarative form definition renderers consume.
type FormModel = model.FormModel

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// GenerateHTML renders the stored form formID (the job application when
// blank) with the named renderer.
func GenerateHTML(ctx context.Context, formID, rendererName string, options ...orchestrator.Option) ([]byte, error) {
	return orchestrator.New(options...).Generate(ctx, orchestrator.Request{
		FormID:   formID,
		Renderer: rendererName,
	})
}

// JobApplication returns the embedded job-application definition.
func JobApplication() (FormModel, error) {
	return formdef.JobApplication()
}

// LoadDefinitions parses every definition under fsys, deriving missing
// labels from field names.
func LoadDefinitions(fsys fs.FS) (*formdef.Store, error) {
	return formdef.LoadFS(fsys, model.LabelDecorator(nil))
}

// WithDefinitions is an orchestrator option rendering forms from fsys
// instead of the embedded definitions.
func WithDefinitions(fsys fs.FS) (orchestrator.Option, error) {
	store, err := LoadDefinitions(fsys)
	if err != nil {
		return nil, err
	}
	return orchestrator.WithStore(store), nil
}

// WithThemeSelector passes a go-theme selector through to the orchestrator.
func WithThemeSelector(selector theme.ThemeSelector) orchestrator.Option {
	return orchestrator.WithThemeSelector(selector)
}

// EmbeddedTemplates exposes the built-in vanilla templates so callers can
// reuse or extend them.
func EmbeddedTemplates() fs.FS {
	return vanilla.TemplatesFS()
}

// AssetsFS exposes the stylesheet referenced by the default theme.
//
//	mux.Handle("/assets/",
//	  http.StripPrefix("/assets/",
//	    http.FileServerFS(jobform.AssetsFS()),
//	  ),
//	)
func AssetsFS() fs.FS {
	return vanilla.AssetsFS()
}
