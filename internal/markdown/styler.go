// Package markdown converts one Markdown slide into ANSI-decorated text and
// collects its fenced code blocks.
package markdown

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"

	"github.com/kyaoi/dough/internal/code"
	"github.com/kyaoi/dough/internal/style"
)

// ErrParse reports a document that could not be parsed.
var ErrParse = errors.New("could not parse markdown")

var commentPattern = regexp.MustCompile(`(?s)<!--.*?-->`)

// Options controls a single styling pass.
type Options struct {
	// Highlight is the number of leading code lines, counted across the whole
	// document, that are revealed. Zero reveals everything.
	Highlight int
	// Width is the terminal width used for paragraph wrapping. Zero disables
	// wrapping.
	Width int
}

// Result is the output of Style.
type Result struct {
	Text        string
	Registry    *code.Registry
	CodeLines   int
	FrontMatter map[string]any
}

var parser = goldmark.New(
	goldmark.WithExtensions(
		extension.Strikethrough,
		extension.DefinitionList,
	),
)

// StripComments removes HTML comments, including ones spanning lines.
func StripComments(s string) string {
	return commentPattern.ReplaceAllString(s, "")
}

// Style renders document with cfg. The registry in the result holds every
// fenced or indented code block in document order.
func Style(document string, cfg style.Config, opts Options) (res Result, err error) {
	if !utf8.ValidString(document) {
		return Result{}, fmt.Errorf("%w: invalid UTF-8 at byte %d", ErrParse, invalidOffset(document))
	}

	defer func() {
		if p := recover(); p != nil {
			res = Result{}
			err = fmt.Errorf("%w: %v", ErrParse, p)
		}
	}()

	meta, body := splitFrontMatter(document)
	source := []byte(body)
	root := parser.Parser().Parse(text.NewReader(source))

	r := &renderer{
		cfg:      cfg,
		opts:     opts,
		source:   source,
		registry: code.NewRegistry(),
	}
	out := r.document(root)

	return Result{
		Text:        out,
		Registry:    r.registry,
		CodeLines:   r.codeLine,
		FrontMatter: meta,
	}, nil
}

func invalidOffset(s string) int {
	for i, r := range s {
		if r == utf8.RuneError {
			if _, size := utf8.DecodeRuneInString(s[i:]); size <= 1 {
				return i
			}
		}
	}
	return len(s)
}

// paint wraps every non-empty line of s in code. Resets inside s are
// followed by code again so nested styling does not end the outer one.
func paint(code, s string) string {
	if code == "" || s == "" {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if line == "" {
			continue
		}
		lines[i] = code + strings.ReplaceAll(line, reset, reset+code) + reset
	}
	return strings.Join(lines, "\n")
}

// overstrike follows every visible rune with a combining long stroke.
// Escape sequences are copied through untouched.
func overstrike(s string) string {
	var b strings.Builder
	b.Grow(len(s) * 2)
	for i := 0; i < len(s); {
		if s[i] == '\x1b' && i+1 < len(s) && s[i+1] == '[' {
			end := strings.IndexByte(s[i:], 'm')
			if end >= 0 {
				b.WriteString(s[i : i+end+1])
				i += end + 1
				continue
			}
		}
		r, size := utf8.DecodeRuneInString(s[i:])
		b.WriteRune(r)
		if r != '\n' {
			b.WriteRune('\u0336')
		}
		i += size
	}
	return b.String()
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", "    ")
}

func prefixLines(s, first, rest string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		p := rest
		if i == 0 {
			p = first
		}
		if line == "" && i != 0 {
			continue
		}
		lines[i] = p + line
	}
	return strings.Join(lines, "\n")
}
