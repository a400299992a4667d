// Package app turns a loaded Config into the collaborators both binaries
// share: the orchestrator, the resolved form and theme, and the submission
// effect.
package app

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-jobform/internal/config"
	"github.com/goliatone/go-jobform/pkg/formdef"
	"github.com/goliatone/go-jobform/pkg/model"
	"github.com/goliatone/go-jobform/pkg/orchestrator"
	"github.com/goliatone/go-jobform/pkg/submission"
)

// Components holds the wired collaborators.
type Components struct {
	Orchestrator *orchestrator.Orchestrator
	Form         model.FormModel
	Theme        *theme.RendererConfig
	Effect       submission.Effect
}

// Build wires cfg. Extra orchestrator options are applied after the
// configured store, so callers can still replace the renderer registry.
func Build(cfg *config.Config, logger *slog.Logger, options ...orchestrator.Option) (*Components, error) {
	if cfg == nil {
		return nil, fmt.Errorf("app: config is required")
	}
	if logger == nil {
		logger = slog.Default()
	}

	var opts []orchestrator.Option
	if dir := strings.TrimSpace(cfg.Form.Definitions); dir != "" {
		store, err := formdef.LoadFS(os.DirFS(dir), model.LabelDecorator(nil))
		if err != nil {
			return nil, fmt.Errorf("app: load definitions from %s: %w", dir, err)
		}
		opts = append(opts, orchestrator.WithStore(store))
	}
	opts = append(opts, options...)

	orch := orchestrator.New(opts...)
	form, err := orch.Form(cfg.Form.ID)
	if err != nil {
		return nil, fmt.Errorf("app: %w", err)
	}
	themeCfg, err := orch.Theme(cfg.Theme.Name, cfg.Theme.Variant)
	if err != nil {
		return nil, fmt.Errorf("app: %w", err)
	}

	return &Components{
		Orchestrator: orch,
		Form:         form,
		Theme:        themeCfg,
		Effect:       submission.NewDelayEffect(cfg.Submission.Delay, logger),
	}, nil
}
