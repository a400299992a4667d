package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("tui: aborted")
	// ErrNoOptions is returned for a select field without options.
	ErrNoOptions = errors.New("tui: select field has no options")
	// ErrBlocked is returned when the final submit finds invalid fields.
	ErrBlocked = errors.New("tui: submission blocked by validation errors")
)
