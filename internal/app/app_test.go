package app_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/goliatone/go-jobform/internal/app"
	"github.com/goliatone/go-jobform/internal/config"
	"github.com/goliatone/go-jobform/pkg/submission"
	"github.com/goliatone/go-jobform/pkg/themes"
)

func baseConfig() *config.Config {
	return &config.Config{
		Form:       config.FormConfig{ID: "job-application"},
		Theme:      config.ThemeConfig{Name: themes.DefaultName, Variant: themes.DarkVariant},
		Submission: config.SubmissionConfig{Delay: 10 * time.Millisecond},
	}
}

func TestBuild_EmbeddedDefinitions(t *testing.T) {
	components, err := app.Build(baseConfig(), slog.New(slog.DiscardHandler))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if components.Form.ID != "job-application" || len(components.Form.Fields) != 11 {
		t.Fatalf("unexpected form %q with %d fields", components.Form.ID, len(components.Form.Fields))
	}
	if components.Theme == nil || components.Theme.Variant != themes.DarkVariant {
		t.Fatalf("theme = %+v, want dark variant", components.Theme)
	}
	effect, ok := components.Effect.(*submission.DelayEffect)
	if !ok || effect.Delay() != 10*time.Millisecond {
		t.Fatalf("effect = %#v", components.Effect)
	}
}

func TestBuild_DefinitionsDirectory(t *testing.T) {
	dir := t.TempDir()
	body := "id: contact\nendpoint: /contact\nfields:\n  - name: email\n    validations:\n      - kind: required\n        message: Email is required\n"
	if err := os.WriteFile(filepath.Join(dir, "contact.yaml"), []byte(body), 0o600); err != nil {
		t.Fatalf("write definition: %v", err)
	}

	cfg := baseConfig()
	cfg.Form = config.FormConfig{Definitions: dir, ID: "contact"}
	components, err := app.Build(cfg, nil)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if components.Form.Endpoint != "/contact" {
		t.Fatalf("endpoint = %q", components.Form.Endpoint)
	}
	if got := components.Form.Fields[0].Label; got != "Email" {
		t.Errorf("derived label = %q, want Email", got)
	}
}

func TestBuild_Errors(t *testing.T) {
	cfg := baseConfig()
	cfg.Form.ID = "missing"
	if _, err := app.Build(cfg, nil); err == nil {
		t.Error("expected error for unknown form")
	}

	cfg = baseConfig()
	cfg.Theme.Variant = "sepia"
	if _, err := app.Build(cfg, nil); err == nil {
		t.Error("expected error for unknown variant")
	}

	if _, err := app.Build(nil, nil); err == nil {
		t.Error("expected error for nil config")
	}
}
