package openapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-jobform/pkg/model"
)

// ValidatePathTemplate is the route of the per-field validation endpoint.
const ValidatePathTemplate = "/api/fields/{name}/validate"

// Extension keys for constraints OpenAPI cannot express natively.
const (
	ExtMinAge      = "x-min-age"
	ExtMaxFileSize = "x-max-file-size"
	ExtAccept      = "x-accept"
	ExtMessages    = "x-messages"
)

// Option configures document generation.
type Option func(*config)

type config struct {
	version         string
	sessionField    string
	includeValidate bool
	servers         []string
}

// WithVersion sets info.version (default "1.0.0").
func WithVersion(version string) Option {
	return func(cfg *config) {
		if v := strings.TrimSpace(version); v != "" {
			cfg.version = v
		}
	}
}

// WithSessionField declares an extra optional string property carrying the
// form session id.
func WithSessionField(name string) Option {
	return func(cfg *config) {
		cfg.sessionField = strings.TrimSpace(name)
	}
}

// WithValidateEndpoint toggles the per-field validation operation.
func WithValidateEndpoint(enabled bool) Option {
	return func(cfg *config) {
		cfg.includeValidate = enabled
	}
}

// WithServer adds a server URL.
func WithServer(url string) Option {
	return func(cfg *config) {
		if u := strings.TrimSpace(url); u != "" {
			cfg.servers = append(cfg.servers, u)
		}
	}
}

// Document builds and validates the OpenAPI description of form.
func Document(ctx context.Context, form model.FormModel, options ...Option) (*openapi3.T, error) {
	cfg := config{version: "1.0.0", includeValidate: true}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	if strings.TrimSpace(form.Endpoint) == "" {
		return nil, errors.New("openapi: form endpoint is required")
	}

	body, err := submitSchema(form, cfg)
	if err != nil {
		return nil, err
	}

	content := openapi3.NewContentWithSchema(body, []string{"multipart/form-data"})
	if encoding := fileEncodings(form); len(encoding) > 0 {
		content["multipart/form-data"].Encoding = encoding
	}

	submit := &openapi3.Operation{
		OperationID: operationID(form),
		Summary:     fmt.Sprintf("Submit %s", titleOf(form)),
		RequestBody: &openapi3.RequestBodyRef{
			Value: openapi3.NewRequestBody().WithRequired(true).WithContent(content),
		},
		Responses: openapi3.NewResponses(
			openapi3.WithStatus(http.StatusOK, &openapi3.ResponseRef{
				Value: openapi3.NewResponse().WithDescription("Submission accepted"),
			}),
			openapi3.WithStatus(http.StatusUnprocessableEntity, &openapi3.ResponseRef{
				Value: openapi3.NewResponse().
					WithDescription("Validation failed; the form is re-rendered with inline errors").
					WithContent(openapi3.NewContentWithSchema(openapi3.NewStringSchema(), []string{"text/html"})),
			}),
			openapi3.WithStatus(http.StatusConflict, &openapi3.ResponseRef{
				Value: openapi3.NewResponse().WithDescription("A submission for this session is already in flight"),
			}),
			openapi3.WithStatus(http.StatusBadGateway, &openapi3.ResponseRef{
				Value: openapi3.NewResponse().WithDescription("The submission effect failed"),
			}),
		),
	}

	item := &openapi3.PathItem{}
	switch strings.ToUpper(form.Method) {
	case "", http.MethodPost:
		item.Post = submit
	case http.MethodPut:
		item.Put = submit
	case http.MethodPatch:
		item.Patch = submit
	default:
		return nil, fmt.Errorf("openapi: unsupported form method %q", form.Method)
	}

	pathOptions := []openapi3.NewPathsOption{openapi3.WithPath(form.Endpoint, item)}
	if cfg.includeValidate {
		pathOptions = append(pathOptions, openapi3.WithPath(ValidatePathTemplate, validateItem(form)))
	}

	doc := &openapi3.T{
		OpenAPI: "3.0.3",
		Info: &openapi3.Info{
			Title:   titleOf(form),
			Version: cfg.version,
		},
		Paths: openapi3.NewPaths(pathOptions...),
	}
	for _, url := range cfg.servers {
		doc.Servers = append(doc.Servers, &openapi3.Server{URL: url})
	}

	if err := doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("openapi: validate document: %w", err)
	}
	return doc, nil
}

// JSON renders the validated document as JSON.
func JSON(ctx context.Context, form model.FormModel, options ...Option) ([]byte, error) {
	doc, err := Document(ctx, form, options...)
	if err != nil {
		return nil, err
	}
	data, err := doc.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("openapi: marshal document: %w", err)
	}
	return data, nil
}

func submitSchema(form model.FormModel, cfg config) (*openapi3.Schema, error) {
	schema := openapi3.NewObjectSchema()
	for _, field := range form.Fields {
		property, err := fieldSchema(field)
		if err != nil {
			return nil, err
		}
		schema.WithProperty(field.Name, property)
		if field.Required() {
			schema.Required = append(schema.Required, field.Name)
		}
	}
	if cfg.sessionField != "" {
		schema.WithProperty(cfg.sessionField, openapi3.NewStringSchema().WithFormat("uuid"))
	}
	return schema, nil
}

func fieldSchema(field model.Field) (*openapi3.Schema, error) {
	schema := openapi3.NewStringSchema()
	schema.Title = field.Label
	schema.Description = field.Placeholder

	switch field.Type {
	case model.FieldTypeDate:
		schema.WithFormat("date")
	case model.FieldTypeFile:
		schema.WithFormat("binary")
	case model.FieldTypeSelect:
		values := make([]any, 0, len(field.Options))
		for _, option := range field.Options {
			values = append(values, option.Value)
		}
		schema.WithEnum(values...)
	}
	if field.Metadata["inputType"] == "email" {
		schema.WithFormat("email")
	}

	messages := make(map[string]any)
	for _, rule := range field.Validations {
		if rule.Message != "" {
			messages[rule.Kind] = rule.Message
		}
		switch rule.Kind {
		case model.ValidationRuleMinLength, model.ValidationRuleMaxLength:
			n, err := strconv.ParseInt(strings.TrimSpace(rule.Params["value"]), 10, 64)
			if err != nil {
				return nil, fmt.Errorf("openapi: field %q %s: %w", field.Name, rule.Kind, err)
			}
			if rule.Kind == model.ValidationRuleMinLength {
				schema.WithMinLength(n)
			} else {
				schema.WithMaxLength(n)
			}
		case model.ValidationRulePattern:
			schema.WithPattern(rule.Params["pattern"])
		case model.ValidationRuleMinAge:
			setExtension(schema, ExtMinAge, strings.TrimSpace(rule.Params["value"]))
		case model.ValidationRuleMaxFileSize:
			setExtension(schema, ExtMaxFileSize, strings.TrimSpace(rule.Params["value"]))
		case model.ValidationRuleAccept:
			setExtension(schema, ExtAccept, strings.TrimSpace(rule.Params["types"]))
		}
	}
	if len(messages) > 0 {
		setExtension(schema, ExtMessages, messages)
	}
	return schema, nil
}

func fileEncodings(form model.FormModel) map[string]*openapi3.Encoding {
	var out map[string]*openapi3.Encoding
	for _, field := range form.Fields {
		if field.Type != model.FieldTypeFile {
			continue
		}
		rule, ok := field.Rule(model.ValidationRuleAccept)
		if !ok {
			continue
		}
		if out == nil {
			out = make(map[string]*openapi3.Encoding)
		}
		out[field.Name] = &openapi3.Encoding{ContentType: strings.ReplaceAll(rule.Params["types"], ",", ", ")}
	}
	return out
}

func validateItem(form model.FormModel) *openapi3.PathItem {
	names := make([]any, 0, len(form.Fields))
	for _, field := range form.Fields {
		names = append(names, field.Name)
	}

	file := openapi3.NewObjectSchema().
		WithProperty("name", openapi3.NewStringSchema()).
		WithProperty("type", openapi3.NewStringSchema()).
		WithProperty("size", openapi3.NewInt64Schema())
	request := openapi3.NewObjectSchema().
		WithProperty("value", openapi3.NewStringSchema()).
		WithProperty("files", openapi3.NewArraySchema().WithItems(file)).
		WithProperty("session", openapi3.NewStringSchema())
	response := openapi3.NewObjectSchema().
		WithProperty("field", openapi3.NewStringSchema()).
		WithProperty("valid", openapi3.NewBoolSchema()).
		WithProperty("errors", openapi3.NewArraySchema().WithItems(openapi3.NewStringSchema()))

	return &openapi3.PathItem{
		Post: &openapi3.Operation{
			OperationID: operationID(form) + "ValidateField",
			Summary:     "Validate a single field",
			Parameters: openapi3.Parameters{
				{Value: openapi3.NewPathParameter("name").WithSchema(openapi3.NewStringSchema().WithEnum(names...))},
			},
			RequestBody: &openapi3.RequestBodyRef{
				Value: openapi3.NewRequestBody().WithRequired(true).WithJSONSchema(request),
			},
			Responses: openapi3.NewResponses(
				openapi3.WithStatus(http.StatusOK, &openapi3.ResponseRef{
					Value: openapi3.NewResponse().WithDescription("Field evaluated").WithJSONSchema(response),
				}),
				openapi3.WithStatus(http.StatusNotFound, &openapi3.ResponseRef{
					Value: openapi3.NewResponse().WithDescription("Unknown field"),
				}),
			),
		},
	}
}

func setExtension(schema *openapi3.Schema, key string, value any) {
	if schema.Extensions == nil {
		schema.Extensions = make(map[string]any)
	}
	schema.Extensions[key] = value
}

func operationID(form model.FormModel) string {
	id := strings.TrimSpace(form.ID)
	if id == "" {
		return "submitForm"
	}
	var b strings.Builder
	b.WriteString("submit")
	upper := true
	for _, r := range id {
		if r == '-' || r == '_' || r == ' ' {
			upper = true
			continue
		}
		if upper {
			b.WriteString(strings.ToUpper(string(r)))
			upper = false
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func titleOf(form model.FormModel) string {
	if t := strings.TrimSpace(form.Title); t != "" {
		return t
	}
	if form.ID != "" {
		return form.ID
	}
	return "Form"
}
