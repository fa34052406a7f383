package layout

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/kyaoi/dough/internal/colortrack"
)

const reset = colortrack.Reset

var border = lipgloss.RoundedBorder()

// carried returns, per line, the colour still open where the line starts.
// Lines that close their own styling leave nothing open.
func carried(lines []string) []string {
	track := colortrack.Track(lines)
	out := make([]string, len(lines))
	open := ""
	for i, line := range lines {
		out[i] = open
		codes := colortrack.Codes(line)
		switch {
		case strings.TrimSpace(colortrack.Strip(line)) == "":
			open = ""
		case len(codes) == 0:
		case colortrack.IsReset(codes[len(codes)-1]):
			open = ""
		default:
			open = track[i]
		}
	}
	return out
}

func edge(color, s string) string {
	return color + s + reset
}

// box frames lines in a rounded border four cells wider than the widest line.
func box(lines []string, color string) []string {
	widest := longest(lines)
	colors := carried(lines)
	side := edge(color, border.Left)

	out := make([]string, 0, len(lines)+2)
	out = append(out, edge(color, border.TopLeft+strings.Repeat(border.Top, widest+2)+border.TopRight))
	for i, line := range lines {
		pad := strings.Repeat(" ", widest-Width(line)+1)
		out = append(out, side+" "+colors[i]+line+reset+pad+edge(color, border.Right))
	}
	out = append(out, edge(color, border.BottomLeft+strings.Repeat(border.Bottom, widest+2)+border.BottomRight))
	return out
}

// Unbox reverses the framing Layout applies when box is enabled and reports
// whether lines carried such a frame.
func Unbox(lines []string, color string) ([]string, bool) {
	if len(lines) < 2 {
		return lines, false
	}
	top := colortrack.Strip(lines[0])
	bottom := colortrack.Strip(lines[len(lines)-1])
	if !strings.HasPrefix(top, border.TopLeft) || !strings.HasPrefix(bottom, border.BottomLeft) {
		return lines, false
	}

	left := edge(color, border.Left) + " "
	right := edge(color, border.Right)
	inner := lines[1 : len(lines)-1]
	out := make([]string, 0, len(inner))
	open := ""
	for _, line := range inner {
		body, ok := strings.CutPrefix(line, left)
		if !ok {
			return lines, false
		}
		if body, ok = strings.CutSuffix(body, right); !ok {
			return lines, false
		}
		body = strings.TrimRight(body, " ")
		body = strings.TrimSuffix(body, reset)
		body = strings.TrimPrefix(body, open)
		out = append(out, body)
		open = nextOpen(body, open)
	}
	return out, true
}

// nextOpen is the colour left open after line when open was active before it.
func nextOpen(line, open string) string {
	codes := colortrack.Codes(line)
	switch {
	case strings.TrimSpace(colortrack.Strip(line)) == "":
		return ""
	case len(codes) == 0:
		return open
	case colortrack.IsReset(codes[len(codes)-1]):
		return ""
	default:
		return codes[len(codes)-1]
	}
}
