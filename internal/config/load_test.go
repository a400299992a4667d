package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-jobform/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	want := config.Config{
		Server: config.ServerConfig{
			Host:            "127.0.0.1",
			Port:            8080,
			ReadTimeout:     5 * time.Second,
			WriteTimeout:    10 * time.Second,
			ShutdownTimeout: 5 * time.Second,
			MaxUploadBytes:  8 << 20,
			SessionTTL:      30 * time.Minute,
		},
		Log: config.LogConfig{
			Level:  "info",
			Format: "json",
			Redact: []string{"email", "phone", "dob"},
		},
		Form:       config.FormConfig{ID: "job-application"},
		Theme:      config.ThemeConfig{Name: "jobform"},
		Submission: config.SubmissionConfig{Delay: 3 * time.Second},
	}
	if diff := cmp.Diff(want, *cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
	if got := cfg.Server.Addr(); got != "127.0.0.1:8080" {
		t.Errorf("Addr() = %q, want 127.0.0.1:8080", got)
	}
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9000
log:
  format: text
theme:
  variant: dark
submission:
  delay: 250ms
`)

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 9000 {
		t.Errorf("Server.Port = %d, want 9000", cfg.Server.Port)
	}
	if cfg.Log.Format != "text" {
		t.Errorf("Log.Format = %q, want text", cfg.Log.Format)
	}
	if cfg.Theme.Variant != "dark" {
		t.Errorf("Theme.Variant = %q, want dark", cfg.Theme.Variant)
	}
	if cfg.Submission.Delay != 250*time.Millisecond {
		t.Errorf("Submission.Delay = %s, want 250ms", cfg.Submission.Delay)
	}
	if cfg.Server.Host != "127.0.0.1" {
		t.Errorf("Server.Host = %q, want default", cfg.Server.Host)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "server:\n  port: 9000\n")
	t.Setenv("JOBFORM_SERVER_PORT", "9100")
	t.Setenv("JOBFORM_SERVER_READ_TIMEOUT", "7s")
	t.Setenv("JOBFORM_LOG_REDACT", "email, ssn")

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 9100 {
		t.Errorf("Server.Port = %d, want 9100", cfg.Server.Port)
	}
	if cfg.Server.ReadTimeout != 7*time.Second {
		t.Errorf("Server.ReadTimeout = %s, want 7s", cfg.Server.ReadTimeout)
	}
	if diff := cmp.Diff([]string{"email", "ssn"}, cfg.Log.Redact); diff != "" {
		t.Errorf("Log.Redact mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoad_ValidationAggregatesErrors(t *testing.T) {
	t.Setenv("JOBFORM_SERVER_PORT", "0")
	t.Setenv("JOBFORM_LOG_LEVEL", "verbose")

	_, err := config.Load("")
	if err == nil {
		t.Fatal("expected validation error")
	}
	for _, fragment := range []string{"server.port", "log.level"} {
		if !strings.Contains(err.Error(), fragment) {
			t.Errorf("error %q does not mention %s", err, fragment)
		}
	}
}

func TestValidate_Form(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	cfg.Form.ID = " "
	cfg.Submission.Delay = -time.Second
	err = cfg.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}
	for _, fragment := range []string{"form.id", "submission.delay"} {
		if !strings.Contains(err.Error(), fragment) {
			t.Errorf("error %q does not mention %s", err, fragment)
		}
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "jobform.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad_SessionTTL(t *testing.T) {
	t.Setenv("JOBFORM_SERVER_SESSION_TTL", "90s")

	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.SessionTTL != 90*time.Second {
		t.Errorf("Server.SessionTTL = %s, want 90s", cfg.Server.SessionTTL)
	}

	cfg.Server.SessionTTL = 0
	if err := cfg.Validate(); err == nil || !strings.Contains(err.Error(), "server.session_ttl") {
		t.Fatalf("expected session_ttl validation error, got %v", err)
	}
}
