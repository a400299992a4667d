// Package themes resolves go-theme manifests into the renderer configuration
// the HTML renderer consumes: CSS class tokens, CSS variables, template
// partial overrides and asset URLs.
package themes
