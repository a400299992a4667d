// Command jobform-cli renders the job-application form to HTML, exports its
// OpenAPI description, or fills it in interactively in the terminal.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/goliatone/go-jobform/internal/app"
	"github.com/goliatone/go-jobform/internal/config"
	"github.com/goliatone/go-jobform/internal/logging"
	"github.com/goliatone/go-jobform/pkg/openapi"
	"github.com/goliatone/go-jobform/pkg/orchestrator"
	"github.com/goliatone/go-jobform/pkg/render"
	"github.com/goliatone/go-jobform/pkg/renderers/tui"
	"github.com/goliatone/go-jobform/pkg/renderers/vanilla"
)

func main() {
	configPath := flag.String("config", "", "YAML config file (optional)")
	renderer := flag.String("renderer", "tui", "renderer to use: tui or vanilla")
	format := flag.String("format", string(tui.OutputFormatJSON), "tui output format: json or pretty")
	page := flag.Bool("page", false, "wrap vanilla output in a full HTML document")
	templates := flag.String("templates", "", "directory of vanilla templates overriding the bundled ones (defaults to form.templates)")
	exportSpec := flag.Bool("openapi", false, "print the OpenAPI description and exit")
	server := flag.String("server", "", "server URL recorded in the OpenAPI description")
	output := flag.String("output", "", "output file (stdout if empty)")
	flag.Parse()

	ctx := context.Background()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	logger := logging.New(cfg.Log.Level, cfg.Log.Format, os.Stderr, cfg.Log.Redact...)

	components, err := app.Build(cfg, logger)
	if err != nil {
		log.Fatalf("Failed to build form: %v", err)
	}

	if *exportSpec {
		data, err := openapi.JSON(ctx, components.Form, openapi.WithServer(*server))
		if err != nil {
			log.Fatalf("Failed to export OpenAPI: %v", err)
		}
		write(*output, data)
		return
	}

	templatesDir := *templates
	if templatesDir == "" {
		templatesDir = cfg.Form.Templates
	}
	html, err := vanilla.New(
		vanilla.WithDocument(*page),
		vanilla.WithTemplatesDir(templatesDir),
	)
	if err != nil {
		log.Fatalf("Failed to configure vanilla renderer: %v", err)
	}
	terminal, err := tui.New(
		tui.WithOutputFormat(tui.OutputFormat(*format)),
		tui.WithEffect(components.Effect),
		tui.WithConfirm(true),
	)
	if err != nil {
		log.Fatalf("Failed to configure terminal renderer: %v", err)
	}

	registry := render.NewRegistry()
	registry.MustRegister(terminal)
	registry.MustRegister(html)

	orch := orchestrator.New(orchestrator.WithRegistry(registry))
	data, err := orch.Generate(ctx, orchestrator.Request{
		Form:          &components.Form,
		Renderer:      *renderer,
		RenderOptions: render.RenderOptions{Theme: components.Theme},
	})
	if err != nil {
		log.Fatalf("Failed to render form: %v", err)
	}
	write(*output, data)
}

func write(path string, data []byte) {
	if path == "" {
		fmt.Println(string(data))
		return
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		log.Fatalf("Failed to write output: %v", err)
	}
	fmt.Printf("Output written to %s\n", path)
}
