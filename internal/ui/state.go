package ui

import (
	"github.com/kyaoi/dough/internal/code"
	"github.com/kyaoi/dough/internal/deck"
	"github.com/kyaoi/dough/internal/style"
)

// RenderState is the navigation position within a presentation.
type RenderState struct {
	Slide         int
	HighlightMode bool
	// Visible counts the lines hidden from the bottom of the current frame
	// in scroll mode, and the revealed code lines in highlight mode.
	Visible     int
	NeedsRedraw bool
}

// State contains the data required to bootstrap the Bubble Tea model.
type State struct {
	Deck      *deck.Deck
	StylePath string
	Config    style.Config
	Runner    *code.Runner
	Width     int
	Height    int
	// Watch reloads the slide and style file when they change on disk.
	Watch bool
}
