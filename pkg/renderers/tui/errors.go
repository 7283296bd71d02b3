package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("tui: aborted")
	// ErrNoFields is returned when a session is run without fields.
	ErrNoFields = errors.New("tui: no fields to prompt")
)
