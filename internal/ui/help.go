package ui

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	styles "github.com/charmbracelet/glamour/styles"

	"github.com/kyaoi/dough/internal/deck"
)

const helpMarkdown = `# Keys

| Key | Action |
| --- | --- |
| → l | next slide |
| ← h | previous slide |
| ↑ k | hide a line, or dim a code line in highlight mode |
| ↓ j | reveal a line, or a code line in highlight mode |
| t | toggle highlight mode (the first ↓ dims all but code line 1) |
| 1-9 0 | run code block 1-10 |
| : | go to slide |
| ctrl+r | reload |
| ? | close this help |
| q esc | quit |
`

const helpWidth = 60

func newRenderer(width int) (*glamour.TermRenderer, error) {
	return glamour.NewTermRenderer(
		glamour.WithStandardStyle(styles.TokyoNightStyle),
		glamour.WithWordWrap(width),
	)
}

func (m *Model) openHelp() {
	if m.help == "" {
		width := helpWidth
		if m.width > 0 {
			width = min(width, m.width-6)
		}
		renderer, err := newRenderer(max(width, 20))
		if err != nil {
			m.err = err
			return
		}
		out, err := renderer.Render(helpMarkdown)
		if err != nil {
			m.err = err
			return
		}
		m.help = strings.TrimSpace(out)
	}
	m.showHelp = true
}

func (m *Model) openGoto() tea.Cmd {
	m.gotoInput.SetValue("")
	m.gotoInput.CursorEnd()
	m.gotoActive = true
	return m.gotoInput.Focus()
}

func (m *Model) closeGoto() {
	m.gotoActive = false
	m.gotoInput.Blur()
}

func (m *Model) updateGoto(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEnter:
		value := strings.TrimSpace(m.gotoInput.Value())
		m.closeGoto()
		n, err := strconv.Atoi(value)
		if err != nil || !m.deck.Exists(n) {
			m.err = fmt.Errorf("go to %q: %w", value, deck.ErrMissingSlide)
			return nil
		}
		m.gotoSlide(n)
		return nil
	case tea.KeyEsc:
		m.closeGoto()
		return nil
	}
	var cmd tea.Cmd
	m.gotoInput, cmd = m.gotoInput.Update(msg)
	return cmd
}
