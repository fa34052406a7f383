package code

import "strings"

type buildKind int

const (
	interpreted buildKind = iota
	compiled
	jvm
)

// language describes how a fenced block tag is executed.
type language struct {
	runtime string // key in the runtime map
	ext     string
	kind    buildKind
}

var languages = map[string]language{
	"python":     {"python", ".py", interpreted},
	"py":         {"python", ".py", interpreted},
	"javascript": {"javascript", ".js", interpreted},
	"js":         {"javascript", ".js", interpreted},
	"typescript": {"typescript", ".ts", interpreted},
	"ts":         {"typescript", ".ts", interpreted},
	"ruby":       {"ruby", ".rb", interpreted},
	"rb":         {"ruby", ".rb", interpreted},
	"sh":         {"sh", ".sh", interpreted},
	"shell":      {"sh", ".sh", interpreted},
	"bash":       {"bash", ".sh", interpreted},
	"php":        {"php", ".php", interpreted},
	"swift":      {"swift", ".swift", interpreted},
	"go":         {"go", ".go", interpreted},
	"golang":     {"go", ".go", interpreted},
	"c":          {"c", ".c", compiled},
	"cpp":        {"cpp", ".cpp", compiled},
	"c++":        {"cpp", ".cpp", compiled},
	"cc":         {"cpp", ".cpp", compiled},
	"rust":       {"rust", ".rs", compiled},
	"rs":         {"rust", ".rs", compiled},
	"java":       {"java", ".java", jvm},
}

func lookupLanguage(tag string) (language, bool) {
	l, ok := languages[strings.ToLower(strings.TrimSpace(tag))]
	return l, ok
}

// Supported reports whether blocks tagged lang can be executed.
func Supported(lang string) bool {
	_, ok := lookupLanguage(lang)
	return ok
}
