package style

import (
	"fmt"
	"strings"
)

// Terminal selects the vertical padding placement.
type Terminal string

const (
	// TerminalDefault pads above the content.
	TerminalDefault Terminal = "default"
	// TerminalWarp pads below the content, for emulators that anchor output
	// at the top of a block.
	TerminalWarp Terminal = "warp"
)

// DefaultSyntaxTheme is used when syntax_theme is absent.
const DefaultSyntaxTheme = "monokai"

// requiredFlags must be present in every style file.
var requiredFlags = []string{
	"clear",
	"box",
	"vertical_alignment",
	"horizontal_alignment",
	"syntax_highlighting",
	"syntax_bg",
	"progress",
}

// optionalFlags have a documented default of false.
var optionalFlags = []string{
	"line_highlight",
	"wrap",
}

var defaultColors = map[string]string{
	"h1":                    "bold red",
	"h2":                    "bold yellow",
	"h3":                    "bold green",
	"h4":                    "bold cyan",
	"h5":                    "bold blue",
	"h6":                    "bold magenta",
	"code":                  "black on white",
	"inline_code":           "bright_cyan",
	"blockquote":            "black on white",
	"ordered_list_bullet":   "yellow",
	"unordered_list_bullet": "yellow",
	"ordered_list":          "white",
	"unordered_list":        "white",
	"link_text":             "bright_green",
	"link_url":              "blue",
	"thematic_break":        "white on black",
	"emphasis":              "italic",
	"strong":                "bold",
	"strikethrough":         "",
	"definition_term":       "bold",
	"box_color":             "black on white",
	"highlight_fg":          "black",
	"highlight_bg":          "yellow",
}

var defaultRuntimes = map[string]string{
	"python":     "python3",
	"sh":         "sh",
	"bash":       "bash",
	"javascript": "node",
	"typescript": "ts-node",
	"ruby":       "ruby",
	"php":        "php",
	"swift":      "swift",
	"go":         "go run",
	"c":          "gcc",
	"cpp":        "g++",
	"rust":       "rustc",
	"java":       "javac",
}

// DefaultBullets are the unordered list glyphs, indexed by nesting depth.
var DefaultBullets = []string{"•", "◦", "▪", "▸"}

// Config is the validated style configuration used by the render pipeline.
// Colour fields hold ready-to-write SGR sequences, or "" for no styling.
type Config struct {
	Headings        [6]string
	Code            string
	InlineCode      string
	Blockquote      string
	OrderedBullet   string
	UnorderedBullet string
	OrderedList     string
	UnorderedList   string
	LinkText        string
	LinkURL         string
	ThematicBreak   string
	Emphasis        string
	Strong          string
	Strikethrough   string
	DefinitionTerm  string
	BoxColor        string
	Highlight       string

	// ProgressColor is passed to the progress bar as-is; empty selects the
	// default gradient.
	ProgressColor string

	Clear               bool
	Box                 bool
	VerticalAlignment   bool
	HorizontalAlignment bool
	SyntaxHighlighting  bool
	SyntaxBackground    bool
	Progress            bool
	LineHighlight       bool
	Wrap                bool

	SyntaxTheme string
	Terminal    Terminal
	Bullets     []string
	Runtimes    map[string]string

	// Warnings lists recoverable problems found while parsing.
	Warnings []string
}

// HeadingColor returns the colour for a heading level, or "" for levels
// outside 1..6.
func (c Config) HeadingColor(level int) string {
	if level < 1 || level > len(c.Headings) {
		return ""
	}
	return c.Headings[level-1]
}

// Bullet returns the unordered list glyph for a nesting depth.
func (c Config) Bullet(depth int) string {
	bullets := c.Bullets
	if len(bullets) == 0 {
		bullets = DefaultBullets
	}
	if depth < 0 {
		depth = 0
	}
	return bullets[depth%len(bullets)]
}

// Runtime returns the command configured for lang.
func (c Config) Runtime(lang string) (string, bool) {
	cmd, ok := c.Runtimes[strings.ToLower(lang)]
	return cmd, ok && cmd != ""
}

// Parse validates m. The first missing required flag or malformed value is
// returned as an error wrapping ErrMissingKey or ErrInvalidValue.
func Parse(m Map) (Config, error) {
	var cfg Config
	flags := make(map[string]bool, len(requiredFlags)+len(optionalFlags))

	for _, key := range requiredFlags {
		raw, ok := m.Get(key)
		if !ok {
			return Config{}, fmt.Errorf("%w: %s", ErrMissingKey, key)
		}
		v, err := parseFlag(key, raw)
		if err != nil {
			return Config{}, err
		}
		flags[key] = v
	}
	for _, key := range optionalFlags {
		raw, ok := m.Get(key)
		if !ok {
			continue
		}
		v, err := parseFlag(key, raw)
		if err != nil {
			return Config{}, err
		}
		flags[key] = v
	}

	cfg.Clear = flags["clear"]
	cfg.Box = flags["box"]
	cfg.VerticalAlignment = flags["vertical_alignment"]
	cfg.HorizontalAlignment = flags["horizontal_alignment"]
	cfg.SyntaxHighlighting = flags["syntax_highlighting"]
	cfg.SyntaxBackground = flags["syntax_bg"]
	cfg.Progress = flags["progress"]
	cfg.LineHighlight = flags["line_highlight"]
	cfg.Wrap = flags["wrap"]

	colors := make(map[string]string, len(defaultColors))
	for key, def := range defaultColors {
		spec, ok := m.Get(key)
		if !ok {
			spec = def
		}
		code, err := ParseColor(spec)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", key, err)
		}
		colors[key] = code
	}
	for i := range cfg.Headings {
		cfg.Headings[i] = colors[fmt.Sprintf("h%d", i+1)]
	}
	cfg.Code = colors["code"]
	cfg.InlineCode = colors["inline_code"]
	cfg.Blockquote = colors["blockquote"]
	cfg.OrderedBullet = colors["ordered_list_bullet"]
	cfg.UnorderedBullet = colors["unordered_list_bullet"]
	cfg.OrderedList = colors["ordered_list"]
	cfg.UnorderedList = colors["unordered_list"]
	cfg.LinkText = colors["link_text"]
	cfg.LinkURL = colors["link_url"]
	cfg.ThematicBreak = colors["thematic_break"]
	cfg.Emphasis = colors["emphasis"]
	cfg.Strong = colors["strong"]
	cfg.Strikethrough = colors["strikethrough"]
	cfg.DefinitionTerm = colors["definition_term"]
	cfg.BoxColor = colors["box_color"]

	highlight, err := highlightColor(m)
	if err != nil {
		return Config{}, err
	}
	cfg.Highlight = highlight
	cfg.ProgressColor, _ = m.Get("progress_color")

	cfg.SyntaxTheme = DefaultSyntaxTheme
	if theme, ok := m.Get("syntax_theme"); ok && theme != "" {
		cfg.SyntaxTheme = theme
	}

	cfg.Terminal = TerminalDefault
	if term, ok := m.Get("terminal"); ok && term != "" {
		switch Terminal(strings.ToLower(term)) {
		case TerminalDefault:
		case TerminalWarp:
			cfg.Terminal = TerminalWarp
		default:
			return Config{}, fmt.Errorf("%w: terminal must be %q or %q, got %q",
				ErrInvalidValue, TerminalDefault, TerminalWarp, term)
		}
	}

	cfg.Bullets = DefaultBullets
	if bullets, ok := m.Get("bullets"); ok {
		if glyphs := strings.Fields(bullets); len(glyphs) > 0 {
			cfg.Bullets = glyphs
		}
	}

	cfg.Runtimes = make(map[string]string, len(defaultRuntimes))
	for lang, cmd := range defaultRuntimes {
		if configured, ok := m.Runtimes[lang]; ok && configured != "" {
			cfg.Runtimes[lang] = configured
			continue
		}
		if len(m.Runtimes) > 0 {
			cfg.Warnings = append(cfg.Warnings,
				fmt.Sprintf("runtime for %s not configured, using %q", lang, cmd))
		}
		cfg.Runtimes[lang] = cmd
	}
	for lang, cmd := range m.Runtimes {
		if _, ok := cfg.Runtimes[lang]; !ok {
			cfg.Runtimes[lang] = cmd
		}
	}
	return cfg, nil
}

func parseFlag(key, raw string) (bool, error) {
	switch raw {
	case "true":
		return true, nil
	case "false":
		return false, nil
	default:
		return false, fmt.Errorf("%w: %s must be \"true\" or \"false\", got %q", ErrInvalidValue, key, raw)
	}
}

func highlightColor(m Map) (string, error) {
	fg, ok := m.Get("highlight_fg")
	if !ok {
		fg = defaultColors["highlight_fg"]
	}
	bg, ok := m.Get("highlight_bg")
	if !ok {
		bg = defaultColors["highlight_bg"]
	}
	spec := fg
	if bg != "" {
		spec = strings.TrimSpace(fg + " on " + bg)
	}
	code, err := ParseColor(spec)
	if err != nil {
		return "", fmt.Errorf("highlight_fg/highlight_bg: %w", err)
	}
	return code, nil
}
