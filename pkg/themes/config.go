package themes

import (
	"fmt"
	"path"
	"strings"

	theme "github.com/goliatone/go-theme"
)

// RendererConfig flattens a selection into renderer configuration. Partials
// start from fallbacks, then the manifest templates, then the variant's.
// Tokens merge the same way and every non-class token is exposed as a CSS
// variable named "--<token>".
func RendererConfig(selection *theme.Selection, fallbacks map[string]string) *theme.RendererConfig {
	cfg := &theme.RendererConfig{
		Partials: mergeMaps(fallbacks),
	}
	if selection == nil || selection.Manifest == nil {
		return cfg
	}

	manifest := selection.Manifest
	cfg.Theme = selection.Theme
	cfg.Variant = selection.Variant

	variant, hasVariant := manifest.Variants[selection.Variant]
	if hasVariant {
		cfg.Partials = mergeMaps(fallbacks, manifest.Templates, variant.Templates)
		cfg.Tokens = mergeMaps(manifest.Tokens, variant.Tokens)
	} else {
		cfg.Partials = mergeMaps(fallbacks, manifest.Templates)
		cfg.Tokens = mergeMaps(manifest.Tokens)
	}

	for key, value := range cfg.Tokens {
		if strings.HasSuffix(key, ".class") {
			continue
		}
		if cfg.CSSVars == nil {
			cfg.CSSVars = make(map[string]string)
		}
		cfg.CSSVars["--"+strings.ReplaceAll(key, ".", "-")] = value
	}

	prefix := manifest.Assets.Prefix
	files := mergeMaps(manifest.Assets.Files)
	if hasVariant {
		if variant.Assets.Prefix != "" {
			prefix = variant.Assets.Prefix
		}
		files = mergeMaps(manifest.Assets.Files, variant.Assets.Files)
	}
	cfg.AssetURL = func(key string) string {
		file, ok := files[key]
		if !ok {
			return ""
		}
		if prefix == "" || strings.HasPrefix(file, "/") || strings.Contains(file, "://") {
			return file
		}
		return path.Join(prefix, file)
	}
	return cfg
}

// Resolve selects name/variant through selector and builds its renderer
// configuration.
func Resolve(selector theme.ThemeSelector, name, variant string, fallbacks map[string]string) (*theme.RendererConfig, error) {
	if selector == nil {
		return nil, fmt.Errorf("themes: selector is required")
	}
	selection, err := selector.Select(name, variant)
	if err != nil {
		return nil, err
	}
	return RendererConfig(selection, fallbacks), nil
}

// Token reads a token from cfg, returning fallback when unset.
func Token(cfg *theme.RendererConfig, key, fallback string) string {
	if cfg == nil {
		return fallback
	}
	if value := strings.TrimSpace(cfg.Tokens[key]); value != "" {
		return value
	}
	return fallback
}

func mergeMaps(layers ...map[string]string) map[string]string {
	var out map[string]string
	for _, layer := range layers {
		for key, value := range layer {
			if strings.TrimSpace(value) == "" {
				continue
			}
			if out == nil {
				out = make(map[string]string)
			}
			out[key] = value
		}
	}
	return out
}
