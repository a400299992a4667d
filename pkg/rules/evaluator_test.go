package rules

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-jobform/pkg/model"
)

var fixedNow = time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC)

func phoneField() model.Field {
	return model.Field{
		Name: "phone",
		Type: model.FieldTypeText,
		Validations: []model.ValidationRule{
			{Kind: model.ValidationRuleRequired, Message: "Phone number is required"},
			{Kind: model.ValidationRulePattern, Params: map[string]string{"pattern": "^[0-9]+$"}, Message: "Phone number must contain only digits"},
			{Kind: model.ValidationRuleMinLength, Params: map[string]string{"value": "10"}, Message: "Phone number must be 10 digits"},
			{Kind: model.ValidationRuleMaxLength, Params: map[string]string{"value": "10"}, Message: "Phone number must be 10 digits"},
		},
	}
}

func dobField() model.Field {
	return model.Field{
		Name: "dob",
		Type: model.FieldTypeDate,
		Validations: []model.ValidationRule{
			{Kind: model.ValidationRuleRequired, Message: "Date of birth is required"},
			{Kind: model.ValidationRuleMinAge, Params: map[string]string{"value": "18"}, Message: "You must be at least 18 years old"},
		},
	}
}

func photoField() model.Field {
	return model.Field{
		Name: "photo",
		Type: model.FieldTypeFile,
		Validations: []model.ValidationRule{
			{Kind: model.ValidationRuleRequired, Message: "Please upload a photo"},
			{Kind: model.ValidationRuleAccept, Params: map[string]string{"types": "image/jpeg, image/png, image/jpg"}, Message: "Only .jpg and .png formats are allowed"},
			{Kind: model.ValidationRuleMaxFileSize, Params: map[string]string{"value": "2000000"}, Message: "File size must be under 2MB"},
		},
	}
}

func newTestEvaluator(t *testing.T, mode CriteriaMode, fields ...model.Field) *Evaluator {
	t.Helper()
	eval, err := FromForm(model.FormModel{Fields: fields}, WithClock(func() time.Time { return fixedNow }), WithCriteriaMode(mode))
	if err != nil {
		t.Fatalf("from form: %v", err)
	}
	return eval
}

func TestEvaluate_Phone(t *testing.T) {
	eval := newTestEvaluator(t, CriteriaFirstError, phoneField())

	cases := []struct {
		input string
		want  []string
	}{
		{input: "", want: []string{"Phone number is required"}},
		{input: "12345", want: []string{"Phone number must be 10 digits"}},
		{input: "1234567890", want: nil},
		{input: "12345678901", want: []string{"Phone number must be 10 digits"}},
		{input: "123abc7890", want: []string{"Phone number must contain only digits"}},
	}
	for _, tc := range cases {
		got, err := eval.Evaluate("phone", model.Text(tc.input))
		if err != nil {
			t.Fatalf("evaluate %q: %v", tc.input, err)
		}
		if diff := cmp.Diff(tc.want, got); diff != "" {
			t.Fatalf("phone %q mismatch (-want +got):\n%s", tc.input, diff)
		}
	}
}

func TestEvaluate_DateOfBirthUsesCalendarYears(t *testing.T) {
	eval := newTestEvaluator(t, CriteriaFirstError, dobField())

	got, _ := eval.Evaluate("dob", model.Text("2006-06-02"))
	if got != nil {
		t.Fatalf("expected 2006-06-02 to count as 18 on 2024-06-01, got %v", got)
	}

	got, _ = eval.Evaluate("dob", model.Text("2010-01-01"))
	if diff := cmp.Diff([]string{"You must be at least 18 years old"}, got); diff != "" {
		t.Fatalf("dob mismatch (-want +got):\n%s", diff)
	}

	got, _ = eval.Evaluate("dob", model.Text("not-a-date"))
	if diff := cmp.Diff([]string{"You must be at least 18 years old"}, got); diff != "" {
		t.Fatalf("unparseable dob mismatch (-want +got):\n%s", diff)
	}

	got, _ = eval.Evaluate("dob", model.Value{})
	if diff := cmp.Diff([]string{"Date of birth is required"}, got); diff != "" {
		t.Fatalf("empty dob mismatch (-want +got):\n%s", diff)
	}
}

func TestEvaluate_Photo(t *testing.T) {
	eval := newTestEvaluator(t, CriteriaFirstError, photoField())

	cases := []struct {
		name string
		file model.FileRef
		want []string
	}{
		{name: "gif small", file: model.FileRef{Name: "a.gif", Type: "image/gif", Size: 10}, want: []string{"Only .jpg and .png formats are allowed"}},
		{name: "gif large", file: model.FileRef{Name: "a.gif", Type: "image/gif", Size: 9_000_000}, want: []string{"Only .jpg and .png formats are allowed"}},
		{name: "png too big", file: model.FileRef{Name: "a.png", Type: "image/png", Size: 2_500_000}, want: []string{"File size must be under 2MB"}},
		{name: "png ok", file: model.FileRef{Name: "a.png", Type: "image/png", Size: 500_000}, want: nil},
		{name: "jpeg at cap", file: model.FileRef{Name: "a.jpg", Type: "image/jpeg", Size: 2_000_000}, want: nil},
	}
	for _, tc := range cases {
		got, _ := eval.Evaluate("photo", model.Files(tc.file))
		if diff := cmp.Diff(tc.want, got); diff != "" {
			t.Fatalf("%s mismatch (-want +got):\n%s", tc.name, diff)
		}
	}

	got, _ := eval.Evaluate("photo", model.Files())
	if diff := cmp.Diff([]string{"Please upload a photo"}, got); diff != "" {
		t.Fatalf("missing photo mismatch (-want +got):\n%s", diff)
	}
}

func TestEvaluate_FirstFileOnly(t *testing.T) {
	eval := newTestEvaluator(t, CriteriaFirstError, photoField())
	got, _ := eval.Evaluate("photo", model.Files(
		model.FileRef{Name: "ok.png", Type: "image/png", Size: 1},
		model.FileRef{Name: "bad.gif", Type: "image/gif", Size: 99_000_000},
	))
	if got != nil {
		t.Fatalf("expected only the first file to be checked, got %v", got)
	}
}

func TestEvaluate_CriteriaAll(t *testing.T) {
	eval := newTestEvaluator(t, CriteriaAll, photoField())
	got, _ := eval.Evaluate("photo", model.Value{})
	want := []string{
		"Please upload a photo",
		"Only .jpg and .png formats are allowed",
		"File size must be under 2MB",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("criteria all mismatch (-want +got):\n%s", diff)
	}
}

func TestEvaluate_OptionalPatternSkipsEmpty(t *testing.T) {
	field := model.Field{
		Name: "lastName",
		Validations: []model.ValidationRule{
			{Kind: model.ValidationRulePattern, Params: map[string]string{"pattern": "^[A-Za-z]+$"}, Message: "Last name must contain only letters"},
		},
	}
	eval := newTestEvaluator(t, CriteriaFirstError, field)

	if got, _ := eval.Evaluate("lastName", model.Text("")); got != nil {
		t.Fatalf("expected empty optional value to pass, got %v", got)
	}
	if got, _ := eval.Evaluate("lastName", model.Text("O'Neil")); len(got) != 1 {
		t.Fatalf("expected pattern failure, got %v", got)
	}
}

func TestEvaluate_UnknownField(t *testing.T) {
	eval := NewEvaluator()
	if _, err := eval.Evaluate("missing", model.Text("x")); !errors.Is(err, ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField, got %v", err)
	}
}

func TestRegister_Duplicate(t *testing.T) {
	eval := NewEvaluator()
	if err := eval.Register("email", nil); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := eval.Register("email", nil); !errors.Is(err, ErrDuplicateField) {
		t.Fatalf("expected ErrDuplicateField, got %v", err)
	}
	if diff := cmp.Diff([]string{"email"}, eval.Fields()); diff != "" {
		t.Fatalf("fields mismatch (-want +got):\n%s", diff)
	}
}

func TestCompile_Errors(t *testing.T) {
	cases := map[string]model.ValidationRule{
		"unknown":      {Kind: "between"},
		"missing kind": {},
		"bad length":   {Kind: model.ValidationRuleMinLength, Params: map[string]string{"value": "five"}},
		"bad pattern":  {Kind: model.ValidationRulePattern, Params: map[string]string{"pattern": "("}},
		"no types":     {Kind: model.ValidationRuleAccept},
		"bad size":     {Kind: model.ValidationRuleMaxFileSize, Params: map[string]string{"value": "-1"}},
	}
	for name, rule := range cases {
		if _, err := Compile(model.Field{Name: "f", Validations: []model.ValidationRule{rule}}); err == nil {
			t.Fatalf("%s: expected compile error", name)
		}
	}
}

func TestCompile_DefaultMessages(t *testing.T) {
	set := MustCompile(model.Field{
		Name: "firstName",
		Validations: []model.ValidationRule{
			{Kind: model.ValidationRuleRequired},
			{Kind: model.ValidationRuleMinLength, Params: map[string]string{"value": "5"}},
		},
	})
	got := Evaluate(set, model.Text("Ann"), Env{Now: fixedNow}, CriteriaAll)
	if diff := cmp.Diff([]string{"First Name must be at least 5 characters"}, got); diff != "" {
		t.Fatalf("default message mismatch (-want +got):\n%s", diff)
	}
	if set[0].Kind() != model.ValidationRuleRequired {
		t.Fatalf("expected declaration order preserved, got %s", set[0].Kind())
	}
}

func TestAgeInYears(t *testing.T) {
	dob := time.Date(2006, time.December, 31, 0, 0, 0, 0, time.UTC)
	if got := AgeInYears(dob, fixedNow); got != 18 {
		t.Fatalf("expected year subtraction to give 18, got %d", got)
	}
}
