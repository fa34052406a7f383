package style

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/charmbracelet/x/ansi"
	colorful "github.com/lucasb-eyer/go-colorful"
)

var basicColors = map[string]ansi.BasicColor{
	"black":   ansi.Black,
	"red":     ansi.Red,
	"green":   ansi.Green,
	"yellow":  ansi.Yellow,
	"blue":    ansi.Blue,
	"magenta": ansi.Magenta,
	"purple":  ansi.Magenta,
	"cyan":    ansi.Cyan,
	"white":   ansi.White,

	"bright_black":   ansi.BrightBlack,
	"bright_red":     ansi.BrightRed,
	"bright_green":   ansi.BrightGreen,
	"bright_yellow":  ansi.BrightYellow,
	"bright_blue":    ansi.BrightBlue,
	"bright_magenta": ansi.BrightMagenta,
	"bright_purple":  ansi.BrightMagenta,
	"bright_cyan":    ansi.BrightCyan,
	"bright_white":   ansi.BrightWhite,
	"gray":           ansi.BrightBlack,
	"grey":           ansi.BrightBlack,
}

// ParseColor converts a colour spec such as "bold red", "black on white",
// "#7aa2f7" or "on 236" into a single SGR escape sequence. An empty spec, or
// "none", yields the empty string.
func ParseColor(spec string) (string, error) {
	spec = strings.ToLower(strings.TrimSpace(spec))
	if spec == "" || spec == "none" || spec == "default" {
		return "", nil
	}

	fg, bg, hasBg := strings.Cut(spec, " on ")
	if strings.HasPrefix(spec, "on ") {
		fg, bg, hasBg = "", strings.TrimPrefix(spec, "on "), true
	}

	var s ansi.Style
	words := strings.Fields(fg)
	for i, word := range words {
		switch word {
		case "bold":
			s = s.Bold()
		case "italic":
			s = s.Italic()
		case "underline":
			s = s.Underline()
		case "faint", "dim":
			s = s.Faint()
		default:
			if i != len(words)-1 {
				return "", fmt.Errorf("%w: unknown colour modifier %q in %q", ErrInvalidValue, word, spec)
			}
			c, err := parseColorName(word)
			if err != nil {
				return "", fmt.Errorf("%w: %q: %v", ErrInvalidValue, spec, err)
			}
			s = s.ForegroundColor(c)
		}
	}

	if hasBg {
		c, err := parseColorName(strings.TrimSpace(bg))
		if err != nil {
			return "", fmt.Errorf("%w: %q: %v", ErrInvalidValue, spec, err)
		}
		s = s.BackgroundColor(c)
	}

	if len(s) == 0 {
		return "", nil
	}
	return s.String(), nil
}

func parseColorName(name string) (color.Color, error) {
	name = strings.ReplaceAll(name, "-", "_")
	if c, ok := basicColors[name]; ok {
		return c, nil
	}
	if strings.HasPrefix(name, "#") {
		c, err := colorful.Hex(name)
		if err != nil {
			return nil, err
		}
		r, g, b := c.RGB255()
		return ansi.TrueColor(uint32(r)<<16 | uint32(g)<<8 | uint32(b)), nil
	}
	if n, err := strconv.Atoi(name); err == nil {
		if n < 0 || n > 255 {
			return nil, fmt.Errorf("palette index %d out of range", n)
		}
		return ansi.ExtendedColor(n), nil
	}
	return nil, fmt.Errorf("unknown colour %q", name)
}
