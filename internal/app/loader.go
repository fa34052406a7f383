package app

import (
	"fmt"
	"sort"
	"strings"

	"github.com/alecthomas/chroma/v2/styles"

	"github.com/kyaoi/dough/internal/code"
	"github.com/kyaoi/dough/internal/deck"
	"github.com/kyaoi/dough/internal/style"
	"github.com/kyaoi/dough/internal/ui"
)

// LoadInitialState opens the project, bootstraps its style file when missing
// and validates the style. The returned warnings are safe to ignore.
func LoadInitialState(project string) (ui.State, []string, error) {
	d, err := deck.Open(project)
	if err != nil {
		return ui.State{}, nil, fmt.Errorf("open project: %w", err)
	}
	if !d.Exists(1) {
		return ui.State{}, nil, fmt.Errorf("%s: %w", d.Path(1), deck.ErrMissingSlide)
	}

	var warnings []string
	created, err := style.EnsureFile(d.Root())
	if err != nil {
		return ui.State{}, nil, err
	}
	stylePath := style.Path(d.Root())
	if created {
		warnings = append(warnings, fmt.Sprintf("no style file found, wrote defaults to %s", stylePath))
	}

	raw, err := style.Load(stylePath)
	if err != nil {
		return ui.State{}, nil, err
	}
	cfg, err := style.Parse(raw)
	if err != nil {
		return ui.State{}, nil, fmt.Errorf("%s: %w", stylePath, err)
	}
	warnings = append(warnings, cfg.Warnings...)
	warnings = append(warnings, checkConfig(cfg)...)

	return ui.State{
		Deck:      d,
		StylePath: stylePath,
		Config:    cfg,
	}, warnings, nil
}

func checkConfig(cfg style.Config) []string {
	var warnings []string
	if cfg.SyntaxHighlighting {
		if _, ok := styles.Registry[strings.ToLower(cfg.SyntaxTheme)]; !ok {
			warnings = append(warnings, fmt.Sprintf("syntax theme %q not found, using %s", cfg.SyntaxTheme, styles.Fallback.Name))
		}
	}
	langs := make([]string, 0, len(cfg.Runtimes))
	for lang := range cfg.Runtimes {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	for _, lang := range langs {
		if !code.Supported(lang) {
			warnings = append(warnings, fmt.Sprintf("runtime_map entry %q is not a language that can be run", lang))
		}
	}
	return warnings
}
