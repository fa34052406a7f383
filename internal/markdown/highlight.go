package markdown

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/x/ansi"
	"github.com/yuin/goldmark/ast"

	"github.com/kyaoi/dough/internal/colortrack"
)

var faint = ansi.Style{}.Faint().String()

// codeBlock registers the block and renders it one styled line per source
// line. Lines past the reveal budget are drawn faint.
func (r *renderer) codeBlock(lang string, n ast.Node) string {
	var raw strings.Builder
	segments := n.Lines()
	for i := 0; i < segments.Len(); i++ {
		seg := segments.At(i)
		raw.Write(seg.Value(r.source))
	}
	r.registry.Add(lang, raw.String())

	display := expandTabs(strings.TrimSuffix(raw.String(), "\n"))
	lines := strings.Split(display, "\n")

	var styled []string
	fill := r.cfg.Code
	if r.cfg.SyntaxHighlighting {
		styled, fill = r.highlight(lang, display, len(lines))
	} else {
		styled = lines
	}

	width := 0
	for _, line := range lines {
		width = max(width, ansi.StringWidth(line))
	}

	out := make([]string, len(lines))
	for i, line := range lines {
		global := r.codeLine
		r.codeLine++

		pad := strings.Repeat(" ", width-ansi.StringWidth(line)+1)
		if r.opts.Highlight > 0 && global >= r.opts.Highlight {
			out[i] = faint + " " + line + pad + reset
			continue
		}
		if !r.cfg.SyntaxHighlighting {
			out[i] = paint(fill, " "+line+pad)
			continue
		}
		out[i] = paint(fill, " ") + styled[i] + paint(fill, pad)
	}
	return strings.Join(out, "\n")
}

// highlight tokenises code with chroma and returns exactly want styled lines
// along with the SGR used for padding around them.
func (r *renderer) highlight(lang, code string, want int) ([]string, string) {
	lexer := lexers.Get(lang)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)
	theme := styles.Get(r.cfg.SyntaxTheme)

	plain := strings.Split(code, "\n")
	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return plain, ""
	}

	fill := ""
	if r.cfg.SyntaxBackground {
		if bg := theme.Get(chroma.Background).Background; bg.IsSet() {
			fill = ansi.Style{}.BackgroundColor(trueColor(bg)).String()
		}
	}

	cache := map[chroma.TokenType]string{}
	lines := make([]string, 0, want)
	for _, tokens := range chroma.SplitTokensIntoLines(iterator.Tokens()) {
		if len(lines) == want {
			break
		}
		var b strings.Builder
		for _, tok := range tokens {
			value := strings.TrimRight(tok.Value, "\n")
			if value == "" {
				continue
			}
			sgr, ok := cache[tok.Type]
			if !ok {
				sgr = r.tokenStyle(theme.Get(tok.Type))
				cache[tok.Type] = sgr
			}
			if sgr == "" {
				b.WriteString(value)
				continue
			}
			b.WriteString(sgr + value + reset)
		}
		lines = append(lines, b.String())
	}
	for len(lines) < want {
		lines = append(lines, "")
	}

	// Token text must match the source line for padding to line up.
	for i := range lines {
		if colortrack.Strip(lines[i]) != plain[i] {
			lines[i] = plain[i]
		}
	}
	return lines, fill
}

func (r *renderer) tokenStyle(entry chroma.StyleEntry) string {
	var s ansi.Style
	if entry.Colour.IsSet() {
		s = s.ForegroundColor(trueColor(entry.Colour))
	}
	if r.cfg.SyntaxBackground && entry.Background.IsSet() {
		s = s.BackgroundColor(trueColor(entry.Background))
	}
	if entry.Bold == chroma.Yes {
		s = s.Bold()
	}
	if entry.Italic == chroma.Yes {
		s = s.Italic()
	}
	if entry.Underline == chroma.Yes {
		s = s.Underline()
	}
	if len(s) == 0 {
		return ""
	}
	return s.String()
}

func trueColor(c chroma.Colour) ansi.TrueColor {
	return ansi.TrueColor(uint32(c.Red())<<16 | uint32(c.Green())<<8 | uint32(c.Blue()))
}
