package markdown

import (
	"strings"

	"github.com/adrg/frontmatter"
)

const frontMatterDelim = "---"

// splitFrontMatter removes a leading block delimited by "---" lines. The
// block runs to the next "---" line, or to the end of the document when no
// closing line exists. Its YAML content is decoded but nothing in the render
// path reads it yet.
func splitFrontMatter(doc string) (map[string]any, string) {
	lines := strings.SplitAfter(doc, "\n")
	if len(lines) == 0 || strings.TrimRight(lines[0], "\r\n") != frontMatterDelim {
		return nil, doc
	}

	end := -1
	for i := 1; i < len(lines); i++ {
		if strings.TrimRight(lines[i], "\r\n") == frontMatterDelim {
			end = i
			break
		}
	}

	var block, body string
	if end < 0 {
		block = strings.Join(lines[1:], "")
	} else {
		block = strings.Join(lines[1:end], "")
		body = strings.Join(lines[end+1:], "")
	}
	return decodeFrontMatter(block), body
}

func decodeFrontMatter(block string) map[string]any {
	meta := map[string]any{}
	if strings.TrimSpace(block) == "" {
		return meta
	}
	framed := frontMatterDelim + "\n" + strings.TrimRight(block, "\n") + "\n" + frontMatterDelim + "\n"
	if _, err := frontmatter.Parse(strings.NewReader(framed), &meta); err != nil {
		return map[string]any{}
	}
	return meta
}
