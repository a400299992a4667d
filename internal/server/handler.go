package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-jobform/internal/logging"
	"github.com/goliatone/go-jobform/pkg/form"
	"github.com/goliatone/go-jobform/pkg/model"
	"github.com/goliatone/go-jobform/pkg/openapi"
	"github.com/goliatone/go-jobform/pkg/render"
	"github.com/goliatone/go-jobform/pkg/rules"
	"github.com/goliatone/go-jobform/pkg/submission"
)

const (
	defaultMaxUploadBytes = 8 << 20
	submittedNotice       = "Application submitted"
)

// Option configures a Handler.
type Option func(*Handler)

// WithEffect replaces the submission effect. Defaults to a DelayEffect with
// the standard delay.
func WithEffect(effect submission.Effect) Option {
	return func(h *Handler) {
		if effect != nil {
			h.effect = effect
		}
	}
}

// WithLogger sets the base logger.
func WithLogger(logger *slog.Logger) Option {
	return func(h *Handler) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// WithTheme sets the resolved theme passed to every render.
func WithTheme(cfg *theme.RendererConfig) Option {
	return func(h *Handler) {
		h.theme = cfg
	}
}

// WithClock overrides the clock used for age rules and record timestamps.
func WithClock(now func() time.Time) Option {
	return func(h *Handler) {
		if now != nil {
			h.now = now
		}
	}
}

// WithMaxUploadBytes caps multipart request bodies.
func WithMaxUploadBytes(limit int64) Option {
	return func(h *Handler) {
		if limit > 0 {
			h.maxUpload = limit
		}
	}
}

// WithSessionTTL sets how long an idle session is kept. Defaults to 30
// minutes.
func WithSessionTTL(ttl time.Duration) Option {
	return func(h *Handler) {
		if ttl > 0 {
			h.sessionTTL = ttl
		}
	}
}

// Handler serves one form definition.
type Handler struct {
	form      model.FormModel
	renderer  render.Renderer
	effect    submission.Effect
	theme     *theme.RendererConfig
	logger    *slog.Logger
	now       func() time.Time
	maxUpload int64

	sessionTTL time.Duration
	evaluator  *rules.Evaluator
	sessions   *sessionStore
	spec       []byte
}

// New builds a handler for def rendered through renderer.
func New(ctx context.Context, def model.FormModel, renderer render.Renderer, options ...Option) (*Handler, error) {
	if renderer == nil {
		return nil, errors.New("server: renderer is required")
	}
	h := &Handler{
		form:      def,
		renderer:  renderer,
		logger:    slog.New(slog.DiscardHandler),
		now:       time.Now,
		maxUpload: defaultMaxUploadBytes,
	}
	for _, opt := range options {
		if opt != nil {
			opt(h)
		}
	}
	if h.effect == nil {
		h.effect = submission.NewDelayEffect(submission.DefaultDelay, h.logger)
	}

	evaluator, err := rules.FromForm(def, rules.WithClock(h.now))
	if err != nil {
		return nil, fmt.Errorf("server: compile rules: %w", err)
	}
	h.evaluator = evaluator

	spec, err := openapi.JSON(ctx, def, openapi.WithSessionField(render.SessionFieldName))
	if err != nil {
		return nil, fmt.Errorf("server: %w", err)
	}
	h.spec = spec

	h.sessions = newSessionStore(def, h.effect, h.logger, h.now, h.sessionTTL)
	return h, nil
}

// ShowForm handles GET / by opening a session and rendering an idle form.
func (h *Handler) ShowForm(w http.ResponseWriter, r *http.Request) {
	sess, err := h.sessions.create()
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.renderForm(w, r, http.StatusOK, sess, render.RenderOptions{})
}

// Submit handles the form endpoint. A session already submitting answers 409
// without touching its values. Otherwise values are pushed into the
// session's registry field by field and the controller decides: blocked
// (422), effect failure (502) or submitted (200).
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload)
	if err := r.ParseMultipartForm(h.maxUpload); err != nil {
		if !errors.Is(err, http.ErrNotMultipart) {
			writeError(w, r, http.StatusBadRequest, "invalid form body")
			return
		}
		if err := r.ParseForm(); err != nil {
			writeError(w, r, http.StatusBadRequest, "invalid form body")
			return
		}
	}

	sess, err := h.sessions.resolve(r.PostFormValue(render.SessionFieldName))
	if err != nil {
		h.fail(w, r, err)
		return
	}

	// A busy session keeps the values of the submission in flight.
	if sess.controller.Busy() {
		h.rejectInFlight(w, r, sess)
		return
	}
	if err := h.bindValues(r, sess); err != nil {
		if errors.Is(err, form.ErrFormLocked) {
			h.rejectInFlight(w, r, sess)
			return
		}
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	result, err := sess.controller.Submit(ctx)
	switch {
	case errors.Is(err, submission.ErrSubmitInFlight):
		h.rejectInFlight(w, r, sess)
	case err != nil && result.Record == nil:
		h.fail(w, r, err)
	case err != nil:
		h.respondSubmit(w, r, http.StatusBadGateway, sess, result, render.RenderOptions{FormErrors: result.FormErrors})
	case result.Blocked():
		h.respondSubmit(w, r, http.StatusUnprocessableEntity, sess, result, render.RenderOptions{})
	default:
		h.respondSubmit(w, r, http.StatusOK, sess, result, render.RenderOptions{Notices: []string{submittedNotice}})
	}
}

func (h *Handler) rejectInFlight(w http.ResponseWriter, r *http.Request, sess *session) {
	logging.FromContext(r.Context()).InfoContext(r.Context(), "submit rejected while in flight",
		slog.String("session", sess.id),
	)
	result := submission.Result{State: sess.controller.State()}
	h.respondSubmit(w, r, http.StatusConflict, sess, result, render.RenderOptions{Busy: true})
}

type validateRequest struct {
	Value   string          `json:"value"`
	Files   []model.FileRef `json:"files"`
	Session string          `json:"session"`
}

type validateResponse struct {
	Field  string   `json:"field"`
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}

// ValidateField handles POST /api/fields/{name}/validate. With a known
// session the value is stored in that session's registry; otherwise it is
// evaluated without state. A session with a submission in flight answers 409.
func (h *Handler) ValidateField(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if !h.evaluator.Has(name) {
		writeError(w, r, http.StatusNotFound, fmt.Sprintf("unknown field %q", name))
		return
	}

	var req validateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid JSON body")
		return
	}

	value := model.Value{Text: req.Value}
	if field, ok := h.form.Field(name); ok && field.Type == model.FieldTypeFile {
		value = model.Files(req.Files...)
	}

	var messages []string
	if sess, ok := h.sessions.get(req.Session); ok {
		if sess.controller.Busy() {
			writeError(w, r, http.StatusConflict, "submission in flight")
			return
		}
		state, err := sess.registry.Set(name, value)
		if errors.Is(err, form.ErrFormLocked) {
			writeError(w, r, http.StatusConflict, "submission in flight")
			return
		}
		if err != nil {
			h.fail(w, r, err)
			return
		}
		messages = state.Errors
	} else {
		evaluated, err := h.evaluator.Evaluate(name, value)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		messages = evaluated
	}

	if messages == nil {
		messages = []string{}
	}
	writeJSON(w, r, http.StatusOK, validateResponse{
		Field:  name,
		Valid:  len(messages) == 0,
		Errors: messages,
	})
}

// OpenAPI serves the generated API description.
func (h *Handler) OpenAPI(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(h.spec)
}

// Health handles GET /healthz.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) bindValues(r *http.Request, sess *session) error {
	for _, field := range h.form.Fields {
		var value model.Value
		if field.Type == model.FieldTypeFile {
			if r.MultipartForm != nil {
				refs, err := fileRefs(r.MultipartForm.File[field.Name])
				if err != nil {
					return err
				}
				value = model.Files(refs...)
			}
		} else {
			value = model.Text(r.PostFormValue(field.Name))
		}
		if _, err := sess.registry.Set(field.Name, value); err != nil {
			return err
		}
	}
	return nil
}

type submitResponse struct {
	Session    string              `json:"session"`
	State      string              `json:"state"`
	Submitted  bool                `json:"submitted"`
	Errors     map[string][]string `json:"errors,omitempty"`
	FormErrors []string            `json:"formErrors,omitempty"`
	Record     *submission.Record  `json:"record,omitempty"`
}

func (h *Handler) respondSubmit(w http.ResponseWriter, r *http.Request, status int, sess *session, result submission.Result, opts render.RenderOptions) {
	if wantsJSON(r) {
		writeJSON(w, r, status, submitResponse{
			Session:    sess.id,
			State:      result.State.String(),
			Submitted:  result.Submitted(),
			Errors:     result.Errors,
			FormErrors: result.FormErrors,
			Record:     result.Record,
		})
		return
	}
	h.renderForm(w, r, status, sess, opts)
}

func (h *Handler) renderForm(w http.ResponseWriter, r *http.Request, status int, sess *session, opts render.RenderOptions) {
	opts = opts.WithStates(sess.registry.States())
	opts.Hidden = render.MergeHiddenFields(opts.Hidden, render.SessionField(sess.id))
	opts.Theme = h.theme
	if sess.controller.Busy() {
		opts.Busy = true
	}

	body, err := h.renderer.Render(r.Context(), h.form, opts)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", h.renderer.ContentType())
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	logging.FromContext(r.Context()).ErrorContext(r.Context(), "request failed",
		slog.String("path", r.URL.Path),
		slog.Any("error", err),
	)
	writeError(w, r, http.StatusInternalServerError, "internal error")
}
