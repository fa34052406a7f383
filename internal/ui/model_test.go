package ui

import (
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kyaoi/dough/internal/code"
	"github.com/kyaoi/dough/internal/colortrack"
	"github.com/kyaoi/dough/internal/deck"
	"github.com/kyaoi/dough/internal/layout"
	"github.com/kyaoi/dough/internal/style"
)

func testConfig() style.Config {
	cfg := style.Default()
	cfg.SyntaxHighlighting = false
	cfg.Progress = false
	return cfg
}

func writeProject(t *testing.T, slides ...string) string {
	t.Helper()
	dir := t.TempDir()
	for i, src := range slides {
		name := filepath.Join(dir, strconv.Itoa(i+1)+".md")
		require.NoError(t, os.WriteFile(name, []byte(src), 0o644))
	}
	return dir
}

func newTestModel(t *testing.T, cfg style.Config, slides ...string) *Model {
	t.Helper()
	d, err := deck.Open(writeProject(t, slides...))
	require.NoError(t, err)
	return NewModel(State{Deck: d, Config: cfg, Width: 80, Height: 24})
}

func keyMsg(key string) tea.KeyMsg {
	switch key {
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "ctrl+r":
		return tea.KeyMsg{Type: tea.KeyCtrlR}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
}

func press(m *Model, key string) tea.Cmd {
	_, cmd := m.Update(keyMsg(key))
	return cmd
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestModel_TwoSlideWalkthrough(t *testing.T) {
	t.Parallel()

	m := newTestModel(t, testConfig(), "# Title", "Body")
	require.NoError(t, m.Err())
	assert.Equal(t, 1, m.State().Slide)

	assert.False(t, isQuit(press(m, "right")))
	assert.Equal(t, 2, m.State().Slide)
	assert.True(t, m.State().NeedsRedraw)
	assert.Contains(t, colortrack.Strip(strings.Join(m.Frame().Lines, "\n")), "Body")

	assert.False(t, isQuit(press(m, "left")))
	assert.Equal(t, 1, m.State().Slide)
	assert.Equal(t, m.baseline(), m.State().Visible)

	press(m, "l")
	assert.True(t, isQuit(press(m, "right")), "advancing past the last slide quits")
	assert.Equal(t, FarewellMessage, m.Farewell())
}

func TestModel_LeftResetsVisibleToBaseline(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.Clear = true
	m := newTestModel(t, cfg, "# One\n\nalpha\n\nbeta", "# Two\n\ngamma")

	assert.Equal(t, m.Frame().Bounds.Upper, m.State().Visible, "clear starts fully hidden")
	press(m, "down")
	press(m, "down")
	press(m, "right")
	press(m, "j")
	press(m, "left")

	assert.Equal(t, 1, m.State().Slide)
	assert.Equal(t, m.Frame().Bounds.Upper, m.State().Visible)
}

func TestModel_LeftOnFirstSlideIsNoop(t *testing.T) {
	t.Parallel()

	m := newTestModel(t, testConfig(), "# Only")
	press(m, "h")

	assert.Equal(t, 1, m.State().Slide)
	assert.False(t, m.State().NeedsRedraw)
}

func TestModel_ScrollStaysWithinBounds(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.Terminal = style.TerminalWarp
	m := newTestModel(t, cfg, "# Heading\n\none\n\ntwo\n\n- a\n- b\n\n```sh\necho 1\n```")
	bounds := m.Frame().Bounds
	require.Greater(t, bounds.Lower, 0, "warp pads below the slide")

	pattern := []string{"up", "up", "k", "down", "K", "up", "j", "J", "down", "down", "down"}
	for round := 0; round < 30; round++ {
		for _, key := range pattern[round%len(pattern):] {
			press(m, key)
			v := m.State().Visible
			assert.GreaterOrEqual(t, v, bounds.Lower)
			assert.LessOrEqual(t, v, bounds.Upper)
		}
	}
	for i := 0; i < 100; i++ {
		press(m, "up")
	}
	assert.Equal(t, bounds.Upper, m.State().Visible)
	assert.Empty(t, strings.Join(m.Frame().Visible(m.State().Visible), ""))
	for i := 0; i < 100; i++ {
		press(m, "down")
	}
	assert.Equal(t, bounds.Lower, m.State().Visible)
}

func TestModel_ScrollIsPartialRedraw(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.Clear = true
	m := newTestModel(t, cfg, "a\n\nb")
	press(m, "down")

	assert.False(t, m.State().NeedsRedraw)
	assert.Equal(t, m.Frame().Bounds.Upper-1, m.State().Visible)
}

func TestModel_ToggleHighlightMode(t *testing.T) {
	t.Parallel()

	m := newTestModel(t, testConfig(), "```sh\none\ntwo\nthree\n```")
	require.Equal(t, 3, m.Frame().CodeLines)

	press(m, "t")
	assert.True(t, m.State().HighlightMode)
	assert.Zero(t, m.State().Visible)

	press(m, "down")
	assert.Equal(t, 1, m.State().Visible)
	assert.Equal(t, 2, countFaint(m.Frame().Lines))

	for i := 0; i < 10; i++ {
		press(m, "j")
	}
	assert.Equal(t, 3, m.State().Visible, "capped at the number of code lines")

	for i := 0; i < 10; i++ {
		press(m, "k")
	}
	assert.Zero(t, m.State().Visible)
	assert.Zero(t, countFaint(m.Frame().Lines))

	press(m, "t")
	assert.False(t, m.State().HighlightMode)
	assert.Equal(t, m.baseline(), m.State().Visible)
}

func countFaint(lines []string) int {
	n := 0
	for _, line := range lines {
		if strings.Contains(line, "\x1b[2m") {
			n++
		}
	}
	return n
}

func TestModel_CtrlRReadsSlideAgain(t *testing.T) {
	t.Parallel()

	m := newTestModel(t, testConfig(), "before")
	require.NoError(t, os.WriteFile(m.deck.Path(1), []byte("after"), 0o644))

	press(m, "ctrl+r")
	assert.True(t, m.State().NeedsRedraw)
	text := colortrack.Strip(strings.Join(m.Frame().Lines, "\n"))
	assert.Contains(t, text, "after")
	assert.Equal(t, 1, m.State().Slide)
}

func TestModel_BrokenStyleKeepsPreviousConfig(t *testing.T) {
	t.Parallel()

	dir := writeProject(t, "# Slide")
	stylePath := style.Path(dir)
	require.NoError(t, os.WriteFile(stylePath, []byte(style.DefaultFile), 0o644))
	d, err := deck.Open(dir)
	require.NoError(t, err)

	m := NewModel(State{Deck: d, StylePath: stylePath, Config: testConfig(), Width: 80, Height: 24})
	require.NoError(t, m.Err())
	assert.True(t, m.cfg.Box)

	broken := strings.Replace(style.DefaultFile, "box: true", "box: maybe", 1)
	require.NoError(t, os.WriteFile(stylePath, []byte(broken), 0o644))
	press(m, "ctrl+r")

	assert.ErrorIs(t, m.Err(), style.ErrInvalidValue)
	assert.True(t, m.cfg.Box)
	assert.Contains(t, m.View(), "style not reloaded")
}

func TestModel_QuitKeys(t *testing.T) {
	t.Parallel()

	for _, key := range []string{"q", "Q", "esc", "ctrl+c"} {
		m := newTestModel(t, testConfig(), "# Slide")
		assert.True(t, isQuit(press(m, key)), key)
		assert.Empty(t, m.Farewell())
	}
}

func TestModel_CtrlCQuitsFromOverlays(t *testing.T) {
	t.Parallel()

	m := newTestModel(t, testConfig(), "# Slide")
	press(m, "?")
	require.True(t, m.showHelp)
	assert.True(t, isQuit(press(m, "ctrl+c")), "help open")

	m = newTestModel(t, testConfig(), "# Slide")
	press(m, ":")
	require.True(t, m.gotoActive)
	assert.True(t, isQuit(press(m, "ctrl+c")), "goto prompt open")

	m = newTestModel(t, testConfig(), "# Slide")
	press(m, "?")
	assert.False(t, isQuit(press(m, "Q")))
	assert.False(t, m.showHelp, "Q closes help like q")
}

func TestModel_UnknownKeyIsNoop(t *testing.T) {
	t.Parallel()

	m := newTestModel(t, testConfig(), "# Slide")
	before := m.State()
	assert.Nil(t, press(m, "z"))
	assert.Equal(t, before.Slide, m.State().Slide)
	assert.Equal(t, before.Visible, m.State().Visible)
}

func TestModel_DigitWithoutRunner(t *testing.T) {
	t.Parallel()

	m := newTestModel(t, testConfig(), "```sh\necho hi\n```")
	press(m, "1")
	assert.ErrorIs(t, m.Err(), errNoRunner)
}

func TestModel_DigitRunsBlock(t *testing.T) {
	t.Parallel()
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}

	d, err := deck.Open(writeProject(t, "```sh\necho from-block\n```"))
	require.NoError(t, err)
	runner := code.NewRunner(code.WithWorkers(1))
	t.Cleanup(func() { _ = runner.Close() })

	m := NewModel(State{Deck: d, Config: testConfig(), Runner: runner, Width: 80, Height: 24})
	wait := m.Init()
	require.NotNil(t, wait)

	press(m, "2")
	assert.ErrorIs(t, m.Err(), code.ErrBlockNotFound)

	press(m, "1")
	msg := receive(t, m.waitForResult())
	_, next := m.Update(msg)
	assert.NotNil(t, next)

	view := m.View()
	assert.Contains(t, view, "[1] sh")
	assert.Contains(t, view, "from-block")
}

func receive(t *testing.T, cmd tea.Cmd) tea.Msg {
	t.Helper()
	done := make(chan tea.Msg, 1)
	go func() { done <- cmd() }()
	select {
	case msg := <-done:
		return msg
	case <-time.After(10 * time.Second):
		t.Fatal("timed out waiting for code result")
		return nil
	}
}

func TestBlockNumber_ZeroIsTen(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 10, blockNumber("0"))
	assert.Equal(t, 1, blockNumber("1"))
	assert.Equal(t, 9, blockNumber("9"))
}

func TestModel_GotoPrompt(t *testing.T) {
	t.Parallel()

	m := newTestModel(t, testConfig(), "# One", "# Two", "# Three")
	press(m, ":")
	require.True(t, m.gotoActive)
	press(m, "3")
	press(m, "enter")

	assert.False(t, m.gotoActive)
	assert.Equal(t, 3, m.State().Slide)

	press(m, ":")
	press(m, "9")
	press(m, "enter")
	assert.ErrorIs(t, m.Err(), deck.ErrMissingSlide)
	assert.Equal(t, 3, m.State().Slide)

	press(m, ":")
	press(m, "q")
	press(m, "esc")
	assert.False(t, m.gotoActive)
	assert.Equal(t, 3, m.State().Slide, "keys typed into the prompt do not navigate")
}

func TestModel_HelpOverlay(t *testing.T) {
	t.Parallel()

	m := newTestModel(t, testConfig(), "# Slide", "# Next")
	press(m, "?")
	require.True(t, m.showHelp)
	require.NoError(t, m.Err())
	assert.Contains(t, colortrack.Strip(m.View()), "Keys")

	press(m, "right")
	assert.Equal(t, 1, m.State().Slide, "help swallows navigation")

	press(m, "?")
	assert.False(t, m.showHelp)
}

func TestModel_ProgressFooter(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.Progress = true
	m := newTestModel(t, cfg, "# Opening", "# Second")

	view := colortrack.Strip(m.View())
	assert.Contains(t, view, "1/2")
	assert.Contains(t, view, "Opening")
}

func TestModel_WatchEventRedrawsCurrentSlide(t *testing.T) {
	t.Parallel()

	m := newTestModel(t, testConfig(), "old text", "other")
	require.NoError(t, os.WriteFile(m.deck.Path(1), []byte("new text"), 0o644))

	m.Update(fileEventMsg{path: m.deck.Path(2)})
	assert.Contains(t, colortrack.Strip(strings.Join(m.Frame().Lines, "\n")), "old text")

	m.Update(fileEventMsg{path: m.deck.Path(1)})
	assert.Contains(t, colortrack.Strip(strings.Join(m.Frame().Lines, "\n")), "new text")
}

func TestModel_ResizeRerenders(t *testing.T) {
	t.Parallel()

	m := newTestModel(t, testConfig(), "# Slide")
	m.Update(tea.WindowSizeMsg{Width: 40, Height: 10})

	require.NotEmpty(t, m.Frame().Lines)
	assert.LessOrEqual(t, len(m.Frame().Lines), 10)
	for _, line := range m.Frame().Lines {
		assert.LessOrEqual(t, layout.Width(line), 40)
	}
}

func TestModel_ResizeKeepsRevealedLines(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.Clear = true
	cfg.Terminal = style.TerminalWarp
	m := newTestModel(t, cfg, "# Slide\n\nbody")
	require.Equal(t, m.Frame().Bounds.Upper, m.State().Visible)

	oldUpper := m.Frame().Bounds.Upper
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 40})
	require.Greater(t, m.Frame().Bounds.Upper, oldUpper, "taller terminal adds padding")
	assert.Equal(t, m.Frame().Bounds.Upper, m.State().Visible, "still fully hidden")

	press(m, "down")
	press(m, "down")
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 30})
	assert.Equal(t, m.Frame().Bounds.Upper-2, m.State().Visible)
}

func TestSlideTitle(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Hello", slideTitle("intro\n## Hello \nmore"))
	assert.Empty(t, slideTitle("no heading"))
}
