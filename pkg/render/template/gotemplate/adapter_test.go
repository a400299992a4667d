package gotemplate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-jobform/pkg/render/template/gotemplate"
)

var bundle = fstest.MapFS{
	"templates/hello.tmpl":  {Data: []byte("Hello {{ name }}")},
	"templates/button.tmpl": {Data: []byte(`<button{% if busy %} disabled{% endif %}>{{ label }}</button>`)},
	"templates/broken.tmpl": {Data: []byte("{{ name|nosuchfilter }}")},
}

func TestEngine_RenderTemplate(t *testing.T) {
	engine, err := gotemplate.New(gotemplate.WithFS(bundle))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	tests := []struct {
		name     string
		template string
		data     map[string]any
		want     string
	}{
		{name: "extension appended", template: "templates/hello", data: map[string]any{"name": "Ada"}, want: "Hello Ada"},
		{name: "extension kept", template: "templates/hello.tmpl", data: map[string]any{"name": "Grace"}, want: "Hello Grace"},
		{name: "escapes values", template: "templates/hello", data: map[string]any{"name": "<b>"}, want: "Hello &lt;b&gt;"},
		{name: "conditionals", template: "templates/button", data: map[string]any{"busy": true, "label": "Submitting..."}, want: "<button disabled>Submitting...</button>"},
		{name: "nil data", template: "templates/hello", want: "Hello "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := engine.RenderTemplate(tt.template, tt.data)
			if err != nil {
				t.Fatalf("render: %v", err)
			}
			if got != tt.want {
				t.Fatalf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEngine_Errors(t *testing.T) {
	engine, err := gotemplate.New(gotemplate.WithFS(bundle), gotemplate.WithExtension("tmpl"))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	if _, err := engine.RenderTemplate("templates/missing", nil); err == nil || !strings.Contains(err.Error(), "templates/missing.tmpl") {
		t.Fatalf("expected load error naming the template, got %v", err)
	}
	if _, err := engine.RenderTemplate("templates/broken", map[string]any{"name": "x"}); err == nil {
		t.Fatalf("expected error for unknown filter")
	}
}

func TestEngine_BaseDirOverridesBundle(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "templates"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "templates", "hello.tmpl"), []byte("Hi {{ name }}!"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	engine, err := gotemplate.New(gotemplate.WithBaseDir(dir), gotemplate.WithFS(bundle))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	got, err := engine.RenderTemplate("templates/hello", map[string]any{"name": "Ada"})
	if err != nil {
		t.Fatalf("render override: %v", err)
	}
	if got != "Hi Ada!" {
		t.Fatalf("override not used, got %q", got)
	}

	got, err = engine.RenderTemplate("templates/button", map[string]any{"label": "Submit"})
	if err != nil {
		t.Fatalf("render fallback: %v", err)
	}
	if got != "<button>Submit</button>" {
		t.Fatalf("bundle fallback not used, got %q", got)
	}
}

func TestNew_Errors(t *testing.T) {
	if _, err := gotemplate.New(); err == nil {
		t.Fatalf("expected error without templates")
	}
	if _, err := gotemplate.New(gotemplate.WithBaseDir(filepath.Join(t.TempDir(), "absent"))); err == nil {
		t.Fatalf("expected error for a missing template dir")
	}
}
