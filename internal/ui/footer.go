package ui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/mattn/go-runewidth"

	"github.com/kyaoi/dough/internal/style"
)

func newProgress(cfg style.Config, width int) progress.Model {
	opt := progress.WithDefaultGradient()
	if cfg.ProgressColor != "" {
		opt = progress.WithSolidFill(cfg.ProgressColor)
	}
	p := progress.New(opt, progress.WithoutPercentage())
	p.Width = max(width-4, 10)
	return p
}

// footer is the status line with the slide counter and title above a
// progress bar.
func (m *Model) footer() string {
	total := max(m.deck.Count(), m.state.Slide)
	counter := fmt.Sprintf("%d/%d", m.state.Slide, total)

	title := slideTitle(m.source)
	if title == "" {
		title = filepath.Base(m.deck.Root())
	}
	room := m.width - runewidth.StringWidth(counter) - 4
	if room < 4 {
		title = ""
	} else {
		title = runewidth.Truncate(title, room, "…")
	}

	gap := max(m.width-runewidth.StringWidth(counter)-runewidth.StringWidth(title)-2, 1)
	status := statusStyle.Render(" " + counter + strings.Repeat(" ", gap) + title)
	return status + "\n" + m.progress.ViewAs(float64(m.state.Slide)/float64(total))
}

// slideTitle is the text of the first ATX heading in src.
func slideTitle(src string) string {
	for _, line := range strings.Split(src, "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "#") {
			continue
		}
		if title := strings.TrimSpace(strings.TrimLeft(line, "#")); title != "" {
			return title
		}
	}
	return ""
}
