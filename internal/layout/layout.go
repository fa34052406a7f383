// Package layout positions styled slide text on the terminal and reports how
// far the result may be scrolled.
package layout

import (
	"strings"

	"github.com/kyaoi/dough/internal/colortrack"
	"github.com/kyaoi/dough/internal/style"
)

// NoHighlight disables line highlighting.
const NoHighlight = -1

// Options describes the terminal the layout targets.
type Options struct {
	Width  int
	Height int
	// Highlight selects the line to highlight, counted from the end of the
	// final buffer starting at zero. NoHighlight disables it.
	Highlight int
}

// Bounds is the legal range for the number of lines hidden from the bottom
// of a frame.
type Bounds struct {
	Upper int
	Lower int
}

// Clamp limits n to the bounds.
func (b Bounds) Clamp(n int) int {
	return min(max(n, b.Lower), b.Upper)
}

// Result is a laid out frame.
type Result struct {
	Lines       []string
	Bounds      Bounds
	Boxed       bool
	LeadingPad  int
	TrailingPad int
}

// Layout applies alignment markup, line highlighting, the optional box and
// centring to styled, in that order.
func Layout(styled string, cfg style.Config, opts Options) Result {
	lines := strings.Split(styled, "\n")
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}

	lines = applyAlignment(lines)

	total := len(lines)
	if cfg.Box {
		total += 2
	}
	leading, trailing := verticalPad(cfg, opts.Height, total)

	if opts.Highlight >= 0 {
		at := total + trailing - 1 - opts.Highlight
		if cfg.Box {
			at--
		}
		if at >= 0 && at < len(lines) {
			lines[at] = highlightLine(lines[at], cfg.Highlight)
		}
	}

	if cfg.Box {
		lines = box(lines, cfg.BoxColor)
	}

	if cfg.HorizontalAlignment && opts.Width > 0 {
		lines = centre(lines, opts.Width)
	}

	out := make([]string, 0, leading+len(lines)+trailing)
	out = append(out, blank(leading)...)
	out = append(out, lines...)
	out = append(out, blank(trailing)...)

	return Result{
		Lines:       out,
		Bounds:      Bounds{Upper: len(lines) + trailing, Lower: trailing},
		Boxed:       cfg.Box,
		LeadingPad:  leading,
		TrailingPad: trailing,
	}
}

// verticalPad splits the free rows around content. Warp's terminal keeps
// its prompt at the top, so the padding goes below the content there.
func verticalPad(cfg style.Config, height, content int) (leading, trailing int) {
	if !cfg.VerticalAlignment || height <= content {
		return 0, 0
	}
	pad := (height - content) / 2
	if cfg.Terminal == style.TerminalWarp {
		return 0, pad
	}
	return pad, 0
}

func highlightLine(line, color string) string {
	plain := colortrack.Strip(line)
	if color == "" {
		return plain
	}
	return color + plain + reset
}

func centre(lines []string, width int) []string {
	pad := (width - longest(lines)) / 2
	if pad <= 0 {
		return lines
	}
	indent := reset + strings.Repeat(" ", pad)
	colors := carried(lines)
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = indent + colors[i] + line
	}
	return out
}

func blank(n int) []string {
	return make([]string, n)
}
