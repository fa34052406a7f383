package layout

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Width is the number of terminal cells line occupies. Escape sequences and
// combining marks take no space.
func Width(line string) int {
	return ansi.StringWidth(line)
}

// LongestLine returns the widest line of s in terminal cells.
func LongestLine(s string) int {
	return longest(strings.Split(s, "\n"))
}

func longest(lines []string) int {
	n := 0
	for _, line := range lines {
		n = max(n, Width(line))
	}
	return n
}

// Trim drops the last n lines. n is clamped to the length of lines.
func Trim(lines []string, n int) []string {
	n = min(max(n, 0), len(lines))
	return lines[:len(lines)-n]
}
