package formdef_test

import (
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-jobform/pkg/form"
	"github.com/goliatone/go-jobform/pkg/formdef"
	"github.com/goliatone/go-jobform/pkg/model"
	"github.com/goliatone/go-jobform/pkg/rules"
)

func TestJobApplication_FieldOrder(t *testing.T) {
	def, err := formdef.JobApplication()
	if err != nil {
		t.Fatalf("load job application: %v", err)
	}

	var names []string
	for _, field := range def.Fields {
		names = append(names, field.Name)
	}
	want := []string{
		"firstName", "lastName", "dob", "email", "phone",
		"country", "state", "district", "landmark", "qualification", "photo",
	}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Fatalf("field order mismatch (-want +got):\n%s", diff)
	}

	if def.BusyLabel != "Submitting..." {
		t.Fatalf("busy label mismatch: %q", def.BusyLabel)
	}
	qualification, _ := def.Field("qualification")
	if qualification.Type != model.FieldTypeSelect || len(qualification.Options) != 4 {
		t.Fatalf("qualification select not parsed: %#v", qualification)
	}
	photo, _ := def.Field("photo")
	if !strings.Contains(photo.HelpHTML, "<strong>") {
		t.Fatalf("expected help markup to keep <strong>, got %q", photo.HelpHTML)
	}
}

func TestJobApplication_Behaviour(t *testing.T) {
	def, err := formdef.JobApplication()
	if err != nil {
		t.Fatalf("load job application: %v", err)
	}
	now := time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC)
	reg, err := form.New(def, rules.WithClock(func() time.Time { return now }))
	if err != nil {
		t.Fatalf("build registry: %v", err)
	}

	cases := []struct {
		field string
		value model.Value
		want  []string
	}{
		{"firstName", model.Text("Ann"), []string{"First name must be at least 5 characters"}},
		{"firstName", model.Text(strings.Repeat("a", 21)), []string{"First name must be less than 20 characters"}},
		{"firstName", model.Text("Annabel"), nil},
		{"lastName", model.Text(""), nil},
		{"lastName", model.Text("O'Neil"), []string{"Last name must contain only letters"}},
		{"dob", model.Text("2006-06-02"), nil},
		{"dob", model.Text("2010-01-01"), []string{"You must be at least 18 years old"}},
		{"email", model.Text("a@b"), []string{"Invalid email address"}},
		{"email", model.Text("a\u00a0b@x.io"), []string{"Invalid email address"}},
		{"email", model.Text("a\u2003b@x.io"), []string{"Invalid email address"}},
		{"email", model.Text("janet@example.com"), nil},
		{"phone", model.Text("123456789"), []string{"Phone number must be 10 digits"}},
		{"phone", model.Text("1234567890"), nil},
		{"country", model.Text(""), []string{"Country is required"}},
		{"district", model.Text("North 9"), []string{"District must contain only letters"}},
		{"district", model.Text("North\u00a0Goa"), nil},
		{"state", model.Text("Tamil\u3000Nadu"), nil},
		{"country", model.Text("India\u00e9"), []string{"Country must contain only letters"}},
		{"landmark", model.Text(""), nil},
		{"qualification", model.Text(""), []string{"Qualification is required"}},
		{"photo", model.Files(model.FileRef{Name: "a.gif", Type: "image/gif", Size: 10}), []string{"Only .jpg and .png formats are allowed"}},
		{"photo", model.Files(model.FileRef{Name: "a.png", Type: "image/png", Size: 2_500_000}), []string{"File size must be under 2MB"}},
		{"photo", model.Value{}, []string{"Please upload a photo"}},
	}

	for _, tc := range cases {
		state, err := reg.Set(tc.field, tc.value)
		if err != nil {
			t.Fatalf("set %s: %v", tc.field, err)
		}
		if diff := cmp.Diff(tc.want, state.Errors); diff != "" {
			t.Errorf("%s=%q mismatch (-want +got):\n%s", tc.field, tc.value.Display(), diff)
		}
	}
}

func TestLoadFS_JSONAndYAML(t *testing.T) {
	fsys := fstest.MapFS{
		"a.json":    {Data: []byte(`{"id":"contact","endpoint":"/contact","fields":[{"name":"full_name","validations":[{"kind":"required"}]}]}`)},
		"b.yml":     {Data: []byte("id: survey\nendpoint: /survey\nfields:\n  - name: answer\n    type: select\n    options:\n      - {value: y, label: Yes}\n")},
		"notes.txt": {Data: []byte("ignored")},
	}

	store, err := formdef.LoadFS(fsys, model.LabelDecorator(nil))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff([]string{"contact", "survey"}, store.IDs()); diff != "" {
		t.Fatalf("ids mismatch (-want +got):\n%s", diff)
	}

	contact, _ := store.Form("contact")
	field := contact.Fields[0]
	if field.Type != model.FieldTypeText {
		t.Fatalf("expected default text type, got %q", field.Type)
	}
	if field.Label != "Full Name" {
		t.Fatalf("expected derived label, got %q", field.Label)
	}
	if contact.Method != "POST" || contact.SubmitLabel != "Submit" || contact.BusyLabel != "Submitting..." {
		t.Fatalf("defaults not applied: %#v", contact)
	}
}

func TestParse_Rejects(t *testing.T) {
	cases := map[string]string{
		"empty":          "   ",
		"missing id":     "fields:\n  - name: a\n",
		"no fields":      "id: x\n",
		"duplicate":      "id: x\nfields:\n  - name: a\n  - name: a\n",
		"bad type":       "id: x\nfields:\n  - name: a\n    type: checkbox\n",
		"select options": "id: x\nfields:\n  - name: a\n    type: select\n",
		"bad rule":       "id: x\nfields:\n  - name: a\n    validations:\n      - kind: minLength\n        params: {value: ten}\n",
		"unknown rule":   "id: x\nfields:\n  - name: a\n    validations:\n      - kind: luhn\n",
		"not a document": "id: [",
	}
	for name, input := range cases {
		if _, err := formdef.Parse([]byte(input), name+".yaml"); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestLoadFS_DuplicateForm(t *testing.T) {
	doc := []byte("id: x\nfields:\n  - name: a\n")
	_, err := formdef.LoadFS(fstest.MapFS{"one.yaml": {Data: doc}, "two.yaml": {Data: doc}})
	if err == nil {
		t.Fatalf("expected duplicate form error")
	}
}

func TestSanitizeHelp(t *testing.T) {
	got := formdef.SanitizeHelp(`Max <strong>2MB</strong><script>alert(1)</script><img src=x onerror=y>`)
	if want := "Max <strong>2MB</strong>"; got != want {
		t.Fatalf("sanitized markup mismatch: want %q, got %q", want, got)
	}
	if formdef.SanitizeHelp("   ") != "" {
		t.Fatalf("expected blank input to stay blank")
	}
}
