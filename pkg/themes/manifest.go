package themes

import (
	theme "github.com/goliatone/go-theme"
)

// DefaultName is the built-in theme and DarkVariant its only variant.
const (
	DefaultName = "jobform"
	DarkVariant = "dark"
)

// Token keys the HTML renderer reads. Keys ending in ".class" hold CSS class
// lists; every other token becomes a CSS variable.
const (
	TokenFormClass       = "form.class"
	TokenSectionClass    = "section.class"
	TokenFieldClass      = "field.class"
	TokenLabelClass      = "label.class"
	TokenInputClass      = "input.class"
	TokenInputErrorClass = "input.error.class"
	TokenErrorClass      = "error.class"
	TokenHelpClass       = "help.class"
	TokenButtonClass     = "button.class"
	TokenButtonBusyClass = "button.busy.class"
	TokenFormErrorsClass = "form-errors.class"
	TokenNoticeClass     = "notice.class"
)

// StylesheetAsset is the asset key of the theme stylesheet.
const StylesheetAsset = "jobform.stylesheet"

// Default returns the built-in manifest. Each call returns a fresh copy.
func Default() *theme.Manifest {
	return &theme.Manifest{
		Name:    DefaultName,
		Version: "1.0.0",
		Tokens: map[string]string{
			TokenFormClass:       "jf-form",
			TokenSectionClass:    "jf-section",
			TokenFieldClass:      "jf-field",
			TokenLabelClass:      "jf-label",
			TokenInputClass:      "jf-input",
			TokenInputErrorClass: "input-error",
			TokenErrorClass:      "error",
			TokenHelpClass:       "jf-help",
			TokenButtonClass:     "jf-button",
			TokenButtonBusyClass: "jf-button-busy",
			TokenFormErrorsClass: "jf-form-errors",
			TokenNoticeClass:     "jf-notice",
			"brand":              "#2563eb",
			"danger":             "#dc2626",
			"surface":            "#ffffff",
			"text":               "#111827",
		},
		Assets: theme.Assets{
			Prefix: "/assets",
			Files: map[string]string{
				StylesheetAsset: "jobform.css",
			},
		},
		Variants: map[string]theme.Variant{
			DarkVariant: {
				Tokens: map[string]string{
					"surface": "#111827",
					"text":    "#f9fafb",
				},
			},
		},
	}
}
