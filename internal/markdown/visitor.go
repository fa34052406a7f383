package markdown

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/reflow/wordwrap"
	"github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"

	"github.com/kyaoi/dough/internal/code"
	"github.com/kyaoi/dough/internal/colortrack"
	"github.com/kyaoi/dough/internal/style"
)

const (
	reset          = colortrack.Reset
	quoteBar       = "▌ "
	ruleWidth      = 32
	definitionPad  = "    "
	listItemIndent = 2
)

// scope carries nesting information down the tree.
type scope struct {
	depth int // block quotes and lists entered so far
	list  int // lists entered so far
}

func (s scope) nested(list bool) scope {
	s.depth++
	if list {
		s.list++
	}
	return s
}

type renderer struct {
	cfg      style.Config
	opts     Options
	source   []byte
	registry *code.Registry
	codeLine int
}

func (r *renderer) document(doc ast.Node) string {
	return r.blocks(doc, scope{}) + "\n"
}

// blocks renders the block children of n separated by blank lines.
func (r *renderer) blocks(n ast.Node, s scope) string {
	var parts []string
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if out, ok := r.block(c, s); ok {
			parts = append(parts, out)
		}
	}
	return strings.Join(parts, "\n\n")
}

func (r *renderer) block(n ast.Node, s scope) (string, bool) {
	switch n := n.(type) {
	case *ast.Heading:
		return paint(r.cfg.HeadingColor(n.Level), r.inlines(n)), true
	case *ast.Paragraph:
		return r.paragraph(n, s), true
	case *ast.TextBlock:
		return r.paragraph(n, s), true
	case *ast.ThematicBreak:
		return paint(r.cfg.ThematicBreak, strings.Repeat("─", ruleWidth)), true
	case *ast.FencedCodeBlock:
		return r.codeBlock(string(n.Language(r.source)), n), true
	case *ast.CodeBlock:
		return r.codeBlock("", n), true
	case *ast.Blockquote:
		return r.blockquote(n, s), true
	case *ast.List:
		return r.list(n, s), true
	case *east.DefinitionList:
		return r.definitionList(n, s), true
	case *ast.HTMLBlock:
		return "", false
	default:
		if n.Type() == ast.TypeInline {
			return r.inline(n), true
		}
		if n.HasChildren() {
			return r.blocks(n, s), true
		}
		return "", false
	}
}

func (r *renderer) paragraph(n ast.Node, s scope) string {
	out := r.inlines(n)
	if r.cfg.Wrap && r.opts.Width > 0 {
		limit := r.opts.Width - s.depth*listItemIndent
		if limit > 8 {
			out = wordwrap.String(out, limit)
		}
	}
	return out
}

func (r *renderer) blockquote(n *ast.Blockquote, s scope) string {
	inner := r.blocks(n, s.nested(false))
	lines := strings.Split(inner, "\n")
	for i, line := range lines {
		lines[i] = paint(r.cfg.Blockquote, quoteBar+line+" ")
	}
	return strings.Join(lines, "\n")
}

func (r *renderer) list(n *ast.List, s scope) string {
	inner := s.nested(true)
	number := n.Start

	var items []string
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		item, ok := c.(*ast.ListItem)
		if !ok {
			continue
		}
		var marker, textColor string
		if n.IsOrdered() {
			marker = paint(r.cfg.OrderedBullet, fmt.Sprintf("%d.", number))
			textColor = r.cfg.OrderedList
			number++
		} else {
			marker = paint(r.cfg.UnorderedBullet, r.cfg.Bullet(s.list))
			textColor = r.cfg.UnorderedList
		}
		body := r.listItem(item, inner, textColor)
		hang := strings.Repeat(" ", ansi.StringWidth(marker)+1)
		items = append(items, prefixLines(body, marker+" ", hang))
	}
	return strings.Join(items, "\n")
}

func (r *renderer) listItem(item *ast.ListItem, s scope, textColor string) string {
	var parts []string
	for c := item.FirstChild(); c != nil; c = c.NextSibling() {
		switch c.(type) {
		case *ast.Paragraph, *ast.TextBlock:
			parts = append(parts, paint(textColor, r.paragraph(c, s)))
		default:
			if out, ok := r.block(c, s); ok {
				parts = append(parts, out)
			}
		}
	}
	if len(parts) == 0 {
		return ""
	}
	return strings.Join(parts, "\n")
}

func (r *renderer) definitionList(n *east.DefinitionList, s scope) string {
	var parts []string
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch c := c.(type) {
		case *east.DefinitionTerm:
			parts = append(parts, paint(r.cfg.DefinitionTerm, r.inlines(c)))
		case *east.DefinitionDescription:
			body := r.blocks(c, s.nested(false))
			if body == "" {
				body = r.inlines(c)
			}
			parts = append(parts, prefixLines(body, definitionPad, definitionPad))
		}
	}
	return strings.Join(parts, "\n")
}

// inlines concatenates the inline children of n.
func (r *renderer) inlines(n ast.Node) string {
	var b strings.Builder
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		b.WriteString(r.inline(c))
	}
	return b.String()
}

func (r *renderer) inline(n ast.Node) string {
	switch n := n.(type) {
	case *ast.Text:
		out := string(n.Segment.Value(r.source))
		if n.SoftLineBreak() || n.HardLineBreak() {
			out += "\n"
		}
		return out
	case *ast.String:
		return string(n.Value)
	case *ast.CodeSpan:
		return paint(r.cfg.InlineCode, r.plain(n))
	case *ast.Emphasis:
		if n.Level >= 2 {
			return paint(r.cfg.Strong, r.inlines(n))
		}
		return paint(r.cfg.Emphasis, r.inlines(n))
	case *east.Strikethrough:
		return paint(r.cfg.Strikethrough, overstrike(r.inlines(n)))
	case *ast.Link:
		label := r.inlines(n)
		url := string(n.Destination)
		if colortrack.Strip(label) == url || label == "" {
			return paint(r.cfg.LinkURL, url)
		}
		return paint(r.cfg.LinkText, label) + " - " + paint(r.cfg.LinkURL, url)
	case *ast.AutoLink:
		return paint(r.cfg.LinkURL, string(n.URL(r.source)))
	case *ast.Image:
		return "[" + r.plain(n) + "] - " + paint(r.cfg.LinkURL, string(n.Destination))
	case *ast.RawHTML:
		return ""
	default:
		return r.inlines(n)
	}
}

// plain returns the unstyled text below n.
func (r *renderer) plain(n ast.Node) string {
	var b strings.Builder
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch c := c.(type) {
		case *ast.Text:
			b.Write(c.Segment.Value(r.source))
			if c.SoftLineBreak() {
				b.WriteByte(' ')
			}
		case *ast.String:
			b.Write(c.Value)
		default:
			b.WriteString(r.plain(c))
		}
	}
	return b.String()
}
