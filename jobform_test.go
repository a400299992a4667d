package jobform_test

import (
	"context"
	"io/fs"
	"strings"
	"testing"
	"testing/fstest"

	jobform "github.com/goliatone/go-jobform"
	"github.com/goliatone/go-jobform/pkg/renderers/vanilla"
)

func TestGenerateHTML(t *testing.T) {
	html, err := jobform.GenerateHTML(context.Background(), "", "")
	if err != nil {
		t.Fatalf("GenerateHTML: %v", err)
	}
	if !strings.Contains(string(html), `<form id="job-application"`) {
		t.Fatalf("unexpected output:\n%s", html)
	}
}

func TestWithDefinitions(t *testing.T) {
	opt, err := jobform.WithDefinitions(fstest.MapFS{
		"survey.yaml": {Data: []byte("id: survey\nendpoint: /survey\nfields:\n  - name: favouriteColour\n")},
	})
	if err != nil {
		t.Fatalf("WithDefinitions: %v", err)
	}
	html, err := jobform.GenerateHTML(context.Background(), "survey", "vanilla", opt)
	if err != nil {
		t.Fatalf("GenerateHTML: %v", err)
	}
	if !strings.Contains(string(html), "Favourite Colour") {
		t.Fatalf("expected derived label in output:\n%s", html)
	}
}

func TestEmbeddedFilesystems(t *testing.T) {
	if _, err := fs.Stat(jobform.EmbeddedTemplates(), "templates/form.tmpl"); err != nil {
		t.Fatalf("form template missing: %v", err)
	}
	if _, err := fs.Stat(jobform.AssetsFS(), vanilla.StylesheetName); err != nil {
		t.Fatalf("stylesheet missing: %v", err)
	}
}

func TestJobApplication(t *testing.T) {
	form, err := jobform.JobApplication()
	if err != nil {
		t.Fatalf("JobApplication: %v", err)
	}
	if form.Endpoint != "/apply" {
		t.Fatalf("endpoint = %q", form.Endpoint)
	}
}
