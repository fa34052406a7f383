// Package render runs one slide through styling and layout.
package render

import (
	"github.com/kyaoi/dough/internal/code"
	"github.com/kyaoi/dough/internal/layout"
	"github.com/kyaoi/dough/internal/markdown"
	"github.com/kyaoi/dough/internal/style"
)

// Context holds everything a render depends on besides the slide source.
type Context struct {
	Config style.Config
	Width  int
	Height int
	// Highlight is the number of code lines revealed in highlight mode.
	Highlight int
	// HighlightLine is the line to emphasise counted from the bottom of the
	// frame, or layout.NoHighlight.
	HighlightLine int
}

// NewContext returns a Context for a terminal of the given size with no
// highlighting.
func NewContext(cfg style.Config, width, height int) Context {
	return Context{
		Config:        cfg,
		Width:         width,
		Height:        height,
		HighlightLine: layout.NoHighlight,
	}
}

// Frame is a fully rendered slide.
type Frame struct {
	Lines       []string
	Bounds      layout.Bounds
	Registry    *code.Registry
	CodeLines   int
	Boxed       bool
	TrailingPad int
}

// Render strips comments from source, styles it and lays it out.
func Render(source string, ctx Context) (Frame, error) {
	styled, err := markdown.Style(markdown.StripComments(source), ctx.Config, markdown.Options{
		Highlight: ctx.Highlight,
		Width:     ctx.Width,
	})
	if err != nil {
		return Frame{}, err
	}

	res := layout.Layout(styled.Text, ctx.Config, layout.Options{
		Width:     ctx.Width,
		Height:    ctx.Height,
		Highlight: ctx.HighlightLine,
	})
	return Frame{
		Lines:       res.Lines,
		Bounds:      res.Bounds,
		Registry:    styled.Registry,
		CodeLines:   styled.CodeLines,
		Boxed:       res.Boxed,
		TrailingPad: res.TrailingPad,
	}, nil
}

// Visible returns the lines of f left after hiding hidden lines from the
// bottom.
func (f Frame) Visible(hidden int) []string {
	return layout.Trim(f.Lines, hidden)
}
