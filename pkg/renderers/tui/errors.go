package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("tui: aborted")
	// ErrTooManyAttempts is returned when fields are still invalid after the
	// configured number of prompting rounds.
	ErrTooManyAttempts = errors.New("tui: fields still invalid")
)
