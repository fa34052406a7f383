package layout

import (
	"strings"

	"github.com/kyaoi/dough/internal/colortrack"
)

type alignment int

const (
	alignNone alignment = iota
	alignLeft
	alignCenter
	alignRight
)

const blockEnd = "$[e]$"

var inlineDirectives = map[string]alignment{
	"$[l]$": alignLeft,
	"$[c]$": alignCenter,
	"$[r]$": alignRight,
}

// Lines made of nothing but one of these open an aligned block.
var blockDirectives = map[string]alignment{
	"$[l]":  alignLeft,
	"$[l]$": alignLeft,
	"$[c]":  alignCenter,
	"$[r]":  alignRight,
}

// applyAlignment removes alignment markup and indents the affected lines
// relative to the widest remaining line.
func applyAlignment(lines []string) []string {
	out := make([]string, 0, len(lines))
	aligns := make([]alignment, 0, len(lines))
	block := alignNone

	for _, line := range lines {
		visible := strings.TrimSpace(colortrack.Strip(line))
		if visible == blockEnd {
			block = alignNone
			continue
		}
		if a, ok := blockDirectives[visible]; ok {
			block = a
			continue
		}

		a := block
		if text, inline, ok := cutInline(line); ok {
			line, a = text, inline
		}
		out = append(out, line)
		aligns = append(aligns, a)
	}

	widest := longest(out)
	for i, a := range aligns {
		if pad := padding(a, widest, Width(out[i])); pad > 0 {
			out[i] = strings.Repeat(" ", pad) + out[i]
		}
	}
	return out
}

// cutInline strips a trailing inline directive from line.
func cutInline(line string) (string, alignment, bool) {
	visible := strings.TrimRight(colortrack.Strip(line), " ")
	for marker, a := range inlineDirectives {
		if !strings.HasSuffix(visible, marker) {
			continue
		}
		at := strings.LastIndex(line, marker)
		if at < 0 {
			return line, alignNone, false
		}
		text := strings.TrimRight(line[:at], " ") + line[at+len(marker):]
		return text, a, true
	}
	return line, alignNone, false
}

func padding(a alignment, widest, width int) int {
	switch a {
	case alignCenter:
		return (widest - width) / 2
	case alignRight:
		return widest - width
	default:
		return 0
	}
}
