package style

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// DefaultFile is written to a project that has no style file.
const DefaultFile = `# Default style settings for the dough terminal renderer.

# Markdown styles. Colours are "[bold|italic|underline|faint] <fg> [on <bg>]"
# where a colour is a name, a 0-255 palette index or #rrggbb.
h1: bold red
h2: bold yellow
h3: bold green
h4: bold cyan
h5: bold blue
h6: bold magenta
code: black on white
inline_code: bright_cyan
blockquote: black on white
ordered_list_bullet: yellow
unordered_list_bullet: yellow
ordered_list: white
unordered_list: white
link_text: bright_green
link_url: blue
thematic_break: white on black
emphasis: italic
strong: bold
definition_term: bold
bullets: "• ◦ ▪ ▸"

# Terminal styles

# clear starts every slide hidden in scroll mode; press down to reveal it
# line by line.
clear: false

box: true
box_color: black on white

# vertical_alignment centres the slide vertically in the terminal.
vertical_alignment: true

# horizontal_alignment centres the slide horizontally in the terminal.
horizontal_alignment: true

# terminal selects where vertical padding goes: "default" pads above the
# slide, "warp" pads below it.
terminal: default

# syntax_highlighting colours fenced code blocks with syntax_theme.
syntax_highlighting: true
syntax_theme: monokai
syntax_bg: false

# line_highlight marks the most recently revealed line in scroll mode.
line_highlight: false
highlight_fg: black
highlight_bg: yellow

# wrap word-wraps paragraphs to the terminal width.
wrap: false

progress: true

# runtime_map names the interpreter or compiler used to run code blocks
# (press the block number while presenting).
runtime_map:
  python: python3
  sh: sh
  bash: bash
  javascript: node
  typescript: ts-node
  ruby: ruby
  php: php
  swift: swift
  go: go run
  c: gcc
  cpp: g++
  rust: rustc
  java: javac
`

// EnsureFile writes DefaultFile into projectDir when no style file exists.
// It reports whether a file was created.
func EnsureFile(projectDir string) (bool, error) {
	path := Path(projectDir)
	_, err := os.Stat(path)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return false, fmt.Errorf("stat style file: %w", err)
	}
	if err := os.WriteFile(path, []byte(DefaultFile), 0o644); err != nil {
		return false, fmt.Errorf("write default style file: %w", err)
	}
	return true, nil
}

// Default returns the Config described by DefaultFile.
func Default() Config {
	m, err := Decode([]byte(DefaultFile))
	if err != nil {
		panic(fmt.Sprintf("style: default file does not decode: %v", err))
	}
	cfg, err := Parse(m)
	if err != nil {
		panic(fmt.Sprintf("style: default file does not parse: %v", err))
	}
	return cfg
}
