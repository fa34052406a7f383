package markdown

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kyaoi/dough/internal/code"
	"github.com/kyaoi/dough/internal/colortrack"
	"github.com/kyaoi/dough/internal/style"
)

func plainConfig() style.Config {
	return style.Config{Bullets: style.DefaultBullets}
}

func render(t *testing.T, doc string, cfg style.Config, opts Options) Result {
	t.Helper()
	res, err := Style(doc, cfg, opts)
	require.NoError(t, err)
	return res
}

func TestStyle_HeadingUsesLevelColour(t *testing.T) {
	t.Parallel()

	cfg := style.Default()
	res := render(t, "# Title\n\n###### Small", cfg, Options{})

	assert.Contains(t, res.Text, "\x1b[1;31mTitle\x1b[0m")
	assert.Contains(t, res.Text, cfg.HeadingColor(6)+"Small\x1b[0m")
}

func TestStyle_BlocksSeparatedByBlankLine(t *testing.T) {
	t.Parallel()

	res := render(t, "# Title\n\nBody line one\nline two", plainConfig(), Options{})

	assert.Equal(t, "Title\n\nBody line one\nline two\n", res.Text)
}

func TestStyle_RegistersCodeBlocksInOrder(t *testing.T) {
	t.Parallel()

	doc := "intro\n\n```python\nprint(1)\n```\n\nbetween\n\n- item\n\n```go\nfmt.Println(2)\n```\n"
	res := render(t, doc, plainConfig(), Options{})

	require.Equal(t, 2, res.Registry.Len())
	first, err := res.Registry.Get(1)
	require.NoError(t, err)
	assert.Equal(t, code.Block{Index: 1, Lang: "python", Code: "print(1)\n"}, first)

	second, err := res.Registry.Get(2)
	require.NoError(t, err)
	assert.Equal(t, "go", second.Lang)
	assert.Equal(t, "fmt.Println(2)\n", second.Code)

	_, err = res.Registry.Get(3)
	assert.ErrorIs(t, err, code.ErrBlockNotFound)
}

func TestStyle_RegistersBlockWhenLexerUnknown(t *testing.T) {
	t.Parallel()

	cfg := plainConfig()
	cfg.SyntaxHighlighting = true
	cfg.SyntaxTheme = "no-such-theme"
	res := render(t, "```klingon\nqapla'\n```", cfg, Options{})

	assert.Equal(t, 1, res.Registry.Len())
	assert.Contains(t, colortrack.Strip(res.Text), "qapla'")
}

func TestStyle_SyntaxHighlightingKeepsText(t *testing.T) {
	t.Parallel()

	cfg := plainConfig()
	cfg.SyntaxHighlighting = true
	cfg.SyntaxTheme = "monokai"
	res := render(t, "```go\nfunc main() {}\nvar x = 1\n```", cfg, Options{})

	lines := strings.Split(strings.TrimSuffix(res.Text, "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, " func main() {} ", colortrack.Strip(lines[0]))
	assert.Equal(t, " var x = 1      ", colortrack.Strip(lines[1]))
	assert.Contains(t, lines[0], "\x1b[")
}

func TestStyle_ExpandsTabsForDisplayOnly(t *testing.T) {
	t.Parallel()

	res := render(t, "```\n\tindented\n```", plainConfig(), Options{})

	assert.Contains(t, res.Text, "    indented")
	assert.NotContains(t, res.Text, "\t")
	block, err := res.Registry.Get(1)
	require.NoError(t, err)
	assert.Equal(t, "\tindented\n", block.Code)
}

func TestStyle_HighlightBudgetSpansBlocks(t *testing.T) {
	t.Parallel()

	doc := "```sh\na\nb\n```\n\ntext\n\n```sh\nc\nd\n```"
	res := render(t, doc, plainConfig(), Options{Highlight: 3})

	assert.Equal(t, 4, res.CodeLines)
	var dimmed []string
	for _, line := range strings.Split(res.Text, "\n") {
		if strings.HasPrefix(line, faint) {
			dimmed = append(dimmed, strings.TrimSpace(colortrack.Strip(line)))
		}
	}
	assert.Equal(t, []string{"d"}, dimmed)
}

func TestStyle_ZeroHighlightRevealsEverything(t *testing.T) {
	t.Parallel()

	res := render(t, "```\na\nb\n```", plainConfig(), Options{})

	assert.NotContains(t, res.Text, faint)
}

func TestStyle_Strikethrough(t *testing.T) {
	t.Parallel()

	res := render(t, "~~no~~ yes", plainConfig(), Options{})

	assert.Equal(t, "n\u0336o\u0336 yes\n", res.Text)
}

func TestStyle_LinkRendersTextAndURL(t *testing.T) {
	t.Parallel()

	cfg := plainConfig()
	cfg.LinkText = "\x1b[32m"
	cfg.LinkURL = "\x1b[34m"
	res := render(t, "[docs](https://example.com)", cfg, Options{})

	assert.Equal(t, "\x1b[32mdocs\x1b[0m - \x1b[34mhttps://example.com\x1b[0m\n", res.Text)
}

func TestStyle_NestedEmphasisRestoresOuterColour(t *testing.T) {
	t.Parallel()

	cfg := plainConfig()
	cfg.Strong = "\x1b[1m"
	cfg.Emphasis = "\x1b[3m"
	res := render(t, "**bold *it* after**", cfg, Options{})

	assert.Equal(t, "\x1b[1mbold \x1b[3mit\x1b[0m\x1b[1m after\x1b[0m\n", res.Text)
}

func TestStyle_ListsUseDepthBullets(t *testing.T) {
	t.Parallel()

	res := render(t, "- one\n  - two\n    - three\n\n1. first\n2. second", plainConfig(), Options{})

	assert.Equal(t, "• one\n  ◦ two\n    ▪ three\n\n1. first\n2. second\n", res.Text)
}

func TestStyle_OrderedListKeepsSourceStart(t *testing.T) {
	t.Parallel()

	res := render(t, "0. zero\n1. one\n\n---\n\n7. seven\n8. eight", plainConfig(), Options{})

	assert.Contains(t, res.Text, "0. zero\n1. one\n")
	assert.Contains(t, res.Text, "7. seven\n8. eight\n")
}

func TestStyle_BlockquoteAndRule(t *testing.T) {
	t.Parallel()

	res := render(t, "> quoted\n\n---", plainConfig(), Options{})

	assert.Equal(t, "▌ quoted \n\n"+strings.Repeat("─", ruleWidth)+"\n", res.Text)
}

func TestStyle_DefinitionList(t *testing.T) {
	t.Parallel()

	res := render(t, "Term\n: Meaning", plainConfig(), Options{})

	assert.Equal(t, "Term\n    Meaning\n", res.Text)
}

func TestStyle_StripsFrontMatter(t *testing.T) {
	t.Parallel()

	res := render(t, "---\ntitle: Intro\n---\n# Hello", plainConfig(), Options{})

	assert.Equal(t, "Hello\n", res.Text)
	assert.Equal(t, "Intro", res.FrontMatter["title"])
}

func TestStyle_UnclosedFrontMatterConsumesDocument(t *testing.T) {
	t.Parallel()

	res := render(t, "---\nnot: closed\n# Hidden", plainConfig(), Options{})

	assert.Equal(t, "\n", res.Text)
}

func TestStyle_MalformedFrontMatterIsStillStripped(t *testing.T) {
	t.Parallel()

	res := render(t, "---\n: : [\n---\nBody", plainConfig(), Options{})

	assert.Equal(t, "Body\n", res.Text)
	assert.Empty(t, res.FrontMatter)
}

func TestStyle_InvalidUTF8IsParseError(t *testing.T) {
	t.Parallel()

	_, err := Style("ok \xff\xfe", plainConfig(), Options{})

	require.ErrorIs(t, err, ErrParse)
	assert.Contains(t, err.Error(), "invalid UTF-8 at byte 3")
}

func TestStyle_WrapsParagraphsWhenEnabled(t *testing.T) {
	t.Parallel()

	cfg := plainConfig()
	cfg.Wrap = true
	res := render(t, "alpha beta gamma delta epsilon", cfg, Options{Width: 12})

	for _, line := range strings.Split(strings.TrimSuffix(res.Text, "\n"), "\n") {
		assert.LessOrEqual(t, len(line), 12)
	}
}

func TestStripComments(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "before after", StripComments("before <!-- note\nspanning -->after"))
	assert.Equal(t, "a b", StripComments("a <!--x-->b<!---->"))
}
