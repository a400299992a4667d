package server

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/goliatone/go-jobform/pkg/openapi"
	"github.com/goliatone/go-jobform/pkg/renderers/vanilla"
	"github.com/goliatone/go-jobform/pkg/themes"
)

// NewRouter registers every route of h. Request ids, panic recovery and
// request logging are applied globally, followed by middlewares in order.
func NewRouter(h *Handler, logger *slog.Logger, middlewares ...func(http.Handler) http.Handler) http.Handler {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.Recoverer, requestLogger(logger))
	for _, mw := range middlewares {
		r.Use(mw)
	}

	r.Get("/", h.ShowForm)
	r.Get("/healthz", h.Health)
	r.Get("/openapi.json", h.OpenAPI)
	r.Post(openapi.ValidatePathTemplate, h.ValidateField)
	r.Method(submitMethod(h.form.Method), h.form.Endpoint, http.HandlerFunc(h.Submit))

	prefix := themes.Default().Assets.Prefix + "/"
	r.Handle(prefix+"*", http.StripPrefix(prefix, http.FileServer(http.FS(vanilla.AssetsFS()))))

	return r
}

func submitMethod(method string) string {
	if method == "" {
		return http.MethodPost
	}
	return method
}
