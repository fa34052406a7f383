// Package colortrack records which ANSI colour is active on each line of a
// rendered buffer so that code inserting padding or borders can re-apply it.
package colortrack

import (
	"regexp"
	"strings"
)

// Reset is the SGR sequence that returns the terminal to default attributes.
const Reset = "\x1b[0m"

var sgrPattern = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// Track walks lines in order and returns, per line index, the colour that is
// active for that line. Blank lines reset the colour, lines carrying a colour
// sequence set it, and every other line inherits the previous value.
func Track(lines []string) map[int]string {
	colors := make(map[int]string, len(lines))
	current := Reset
	for i, line := range lines {
		if strings.TrimSpace(Strip(line)) == "" {
			current = Reset
		} else if code := lastColor(line); code != "" {
			current = code
		}
		colors[i] = current
	}
	return colors
}

// Strip removes every SGR sequence from s.
func Strip(s string) string {
	if !strings.Contains(s, "\x1b[") {
		return s
	}
	return sgrPattern.ReplaceAllString(s, "")
}

// Codes returns the SGR sequences found in s, in order.
func Codes(s string) []string {
	return sgrPattern.FindAllString(s, -1)
}

// IsReset reports whether code clears all attributes.
func IsReset(code string) bool {
	return code == Reset || code == "\x1b[m"
}

func lastColor(line string) string {
	codes := Codes(line)
	for i := len(codes) - 1; i >= 0; i-- {
		if !IsReset(codes[i]) {
			return codes[i]
		}
	}
	return ""
}
