package app

import (
	"errors"

	"github.com/kyaoi/dough/internal/deck"
	"github.com/kyaoi/dough/internal/markdown"
	"github.com/kyaoi/dough/internal/style"
)

var (
	// ErrUsage reports a malformed command line.
	ErrUsage = errors.New("invalid usage")
	// ErrUnsupportedMode is returned for output modes that are not built yet.
	ErrUnsupportedMode = errors.New("unsupported output mode")
	// ErrTerminal means stdout is not a usable terminal.
	ErrTerminal = errors.New("terminal unavailable")
)

// Process exit statuses.
const (
	ExitOK = iota
	ExitFailure
	ExitUsage
	ExitStyle
	ExitParse
	ExitMissingSlide
	ExitTerminal
)

// ExitCode maps err to the status the process should exit with.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, ErrUsage), errors.Is(err, ErrUnsupportedMode), errors.Is(err, ErrUnknownTemplate):
		return ExitUsage
	case errors.Is(err, style.ErrMissingKey), errors.Is(err, style.ErrInvalidValue):
		return ExitStyle
	case errors.Is(err, markdown.ErrParse):
		return ExitParse
	case errors.Is(err, deck.ErrMissingSlide):
		return ExitMissingSlide
	case errors.Is(err, ErrTerminal):
		return ExitTerminal
	default:
		return ExitFailure
	}
}
