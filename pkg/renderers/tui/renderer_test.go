package tui

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-jobform/pkg/form"
	"github.com/goliatone/go-jobform/pkg/formdef"
	"github.com/goliatone/go-jobform/pkg/model"
	"github.com/goliatone/go-jobform/pkg/render"
	"github.com/goliatone/go-jobform/pkg/rules"
	"github.com/goliatone/go-jobform/pkg/submission"
)

type stubDriver struct {
	inputs       []string
	selectIdx    []int
	confirm      []bool
	infoMessages []string
	inputPos     int
	selectPos    int
	confirmPos   int
	abortAt      int
}

func (s *stubDriver) Input(_ context.Context, _ InputConfig) (string, error) {
	if s.abortAt > 0 && s.inputPos+1 == s.abortAt {
		return "", ErrAborted
	}
	if s.inputPos >= len(s.inputs) {
		return "", errors.New("no input scripted")
	}
	val := s.inputs[s.inputPos]
	s.inputPos++
	return val, nil
}

func (s *stubDriver) Confirm(_ context.Context, _ ConfirmConfig) (bool, error) {
	if s.confirmPos >= len(s.confirm) {
		return false, errors.New("no confirm scripted")
	}
	val := s.confirm[s.confirmPos]
	s.confirmPos++
	return val, nil
}

func (s *stubDriver) Select(_ context.Context, _ SelectConfig) (int, error) {
	if s.selectPos >= len(s.selectIdx) {
		return -1, errors.New("no select scripted")
	}
	val := s.selectIdx[s.selectPos]
	s.selectPos++
	return val, nil
}

func (s *stubDriver) Info(_ context.Context, msg string) error {
	s.infoMessages = append(s.infoMessages, msg)
	return nil
}

var fixedNow = time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC)

func fakeFiles() FileInspector {
	return FileInspectorFunc(func(path string) (model.FileRef, error) {
		switch path {
		case "me.png":
			return model.FileRef{Name: "me.png", Type: "image/png", Size: 1000}, nil
		case "anim.gif":
			return model.FileRef{Name: "anim.gif", Type: "image/gif", Size: 1000}, nil
		default:
			return model.FileRef{}, errors.New("no such file: " + path)
		}
	})
}

func validAnswers(firstName, photo string) []string {
	return []string{
		firstName, "Smith", "2000-01-01", "a@b.co", "1234567890",
		"India", "Kerala", "Kochi", "", photo,
	}
}

func newTestRenderer(t *testing.T, driver *stubDriver, extra ...Option) *Renderer {
	t.Helper()
	options := append([]Option{
		WithPromptDriver(driver),
		WithFileInspector(fakeFiles()),
		WithClock(func() time.Time { return fixedNow }),
	}, extra...)
	r, err := New(options...)
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	return r
}

func jobApplication(t *testing.T) model.FormModel {
	t.Helper()
	def, err := formdef.JobApplication()
	if err != nil {
		t.Fatalf("load job application: %v", err)
	}
	return def
}

func TestRender_RepromptsUntilValid(t *testing.T) {
	inputs := append([]string{"Ann"}, validAnswers("Annabel", "")...)
	inputs = append(inputs, "missing.png", "anim.gif", "me.png")
	driver := &stubDriver{inputs: inputs, selectIdx: []int{2}}

	out, err := newTestRenderer(t, driver).Render(context.Background(), jobApplication(t), render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	want := `{"firstName":"Annabel","lastName":"Smith","dob":"2000-01-01","email":"a@b.co","phone":"1234567890","country":"India","state":"Kerala","district":"Kochi","landmark":"","qualification":"master","photo":"me.png"}`
	if string(out) != want {
		t.Fatalf("output mismatch\nwant: %s\n got: %s", want, out)
	}

	wantInfo := []string{
		"Job Application",
		"✗ First name must be at least 5 characters",
		"✗ Please upload a photo",
		"✗ no such file: missing.png",
		"✗ Only .jpg and .png formats are allowed",
	}
	if diff := cmp.Diff(wantInfo, driver.infoMessages); diff != "" {
		t.Fatalf("info messages mismatch (-want +got):\n%s", diff)
	}
}

func TestRender_SubmitsThroughEffect(t *testing.T) {
	driver := &stubDriver{inputs: validAnswers("Annabel", "me.png"), selectIdx: []int{0}, confirm: []bool{true}}

	var records []submission.Record
	effect := submission.EffectFunc(func(_ context.Context, record submission.Record) error {
		records = append(records, record)
		return nil
	})

	r := newTestRenderer(t, driver, WithEffect(effect), WithConfirm(true), WithOutputFormat(OutputFormatPrettyText))
	out, err := r.Render(context.Background(), jobApplication(t), render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	if len(records) != 1 {
		t.Fatalf("expected effect called once, got %d", len(records))
	}
	if got, _ := records[0].Get("qualification"); got != "highschool" {
		t.Fatalf("qualification mismatch: %q", got)
	}
	if !strings.Contains(string(out), "Upload Photo: me.png\n") {
		t.Fatalf("pretty output missing photo line:\n%s", out)
	}
	if last := driver.infoMessages[len(driver.infoMessages)-1]; last != "Submitting..." {
		t.Fatalf("expected busy label to be printed, got %q", last)
	}
	if r.ContentType() != "text/plain; charset=utf-8" {
		t.Fatalf("unexpected content type %q", r.ContentType())
	}
}

func TestRender_DeclinedConfirmAborts(t *testing.T) {
	driver := &stubDriver{inputs: validAnswers("Annabel", "me.png"), selectIdx: []int{0}, confirm: []bool{false}}
	effect := submission.EffectFunc(func(context.Context, submission.Record) error {
		t.Fatalf("effect must not run")
		return nil
	})

	_, err := newTestRenderer(t, driver, WithEffect(effect), WithConfirm(true)).
		Render(context.Background(), jobApplication(t), render.RenderOptions{})
	if !errors.Is(err, ErrAborted) {
		t.Fatalf("expected ErrAborted, got %v", err)
	}
}

func TestRender_AbortPropagates(t *testing.T) {
	driver := &stubDriver{inputs: validAnswers("Annabel", "me.png"), abortAt: 3}
	_, err := newTestRenderer(t, driver).Render(context.Background(), jobApplication(t), render.RenderOptions{})
	if !errors.Is(err, ErrAborted) {
		t.Fatalf("expected ErrAborted, got %v", err)
	}
}

func TestRender_SelectWithoutOptions(t *testing.T) {
	def := model.FormModel{ID: "x", Fields: []model.Field{{Name: "choice", Type: model.FieldTypeSelect}}}
	_, err := newTestRenderer(t, &stubDriver{}).Render(context.Background(), def, render.RenderOptions{})
	if !errors.Is(err, ErrNoOptions) {
		t.Fatalf("expected ErrNoOptions, got %v", err)
	}
}

func TestNew_RejectsUnknownFormat(t *testing.T) {
	if _, err := New(WithOutputFormat("xml")); err == nil {
		t.Fatalf("expected unsupported format error")
	}
}

func TestRender_PhoneRules(t *testing.T) {
	def := jobApplication(t)
	def.Fields = def.Fields[4:5]

	driver := &stubDriver{inputs: []string{"12ab", "1234567890"}}
	out, err := newTestRenderer(t, driver).Render(context.Background(), def, render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if string(out) != `{"phone":"1234567890"}` {
		t.Fatalf("unexpected output %s", out)
	}
	if diff := cmp.Diff([]string{"Job Application", "✗ Phone number must contain only digits"}, driver.infoMessages); diff != "" {
		t.Fatalf("info mismatch (-want +got):\n%s", diff)
	}
}

func TestDisplayHelp_StripsMarkup(t *testing.T) {
	got := displayHelp(model.Field{HelpHTML: "JPG or PNG, <strong>max 2MB</strong> &amp; square"})
	if got != "JPG or PNG, max 2MB & square" {
		t.Fatalf("unexpected help %q", got)
	}
	if got := displayHelp(model.Field{Placeholder: "Select your qualification"}); got != "Select your qualification" {
		t.Fatalf("expected placeholder fallback, got %q", got)
	}
}

func TestLocalFiles_SniffsContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "photo.jpg")
	png := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00\x90wS\xde")
	if err := os.WriteFile(path, png, 0o600); err != nil {
		t.Fatalf("write file: %v", err)
	}

	ref, err := LocalFiles{}.Inspect(path)
	if err != nil {
		t.Fatalf("inspect: %v", err)
	}
	want := model.FileRef{Name: "photo.jpg", Type: "image/png", Size: int64(len(png))}
	if diff := cmp.Diff(want, ref); diff != "" {
		t.Fatalf("file ref mismatch (-want +got):\n%s", diff)
	}

	if _, err := (LocalFiles{}).Inspect(filepath.Join(t.TempDir(), "missing.png")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestFieldValidator(t *testing.T) {
	registry, err := form.New(jobApplication(t), rules.WithClock(func() time.Time { return fixedNow }))
	if err != nil {
		t.Fatalf("registry: %v", err)
	}
	validate := fieldValidator(registry.Evaluator(), "dob")
	if err := validate("2010-01-01"); err == nil || err.Error() != "You must be at least 18 years old" {
		t.Fatalf("expected age message, got %v", err)
	}
	if err := validate("2006-06-02"); err != nil {
		t.Fatalf("expected valid dob, got %v", err)
	}
	if err := fieldValidator(registry.Evaluator(), "nope")("x"); err == nil {
		t.Fatalf("expected unknown field error")
	}
}
