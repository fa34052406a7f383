package ui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/fsnotify/fsnotify"

	"github.com/kyaoi/dough/internal/code"
	"github.com/kyaoi/dough/internal/deck"
	"github.com/kyaoi/dough/internal/render"
	"github.com/kyaoi/dough/internal/style"
)

// FarewellMessage is printed once the last slide has been passed.
const FarewellMessage = "Thanks for watching!"

const (
	outputHeight = 8
	footerHeight = 2
)

var errNoRunner = errors.New("code execution is not available")

var (
	helpBoxStyle = lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#7aa2f7"))
	promptStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(lipgloss.Color("#a9b1d6")).
			Background(lipgloss.Color("#1f2335"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff6b6b"))
	outputStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderTop(true).
			BorderForeground(lipgloss.Color("#3b4261"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#a9b1d6"))
)

// Model implements the Bubble Tea program that presents a deck.
type Model struct {
	deck      *deck.Deck
	stylePath string
	cfg       style.Config
	runner    *code.Runner

	state  RenderState
	source string
	frame  render.Frame

	width    int
	height   int
	err      error
	farewell string

	showHelp bool
	help     string

	gotoInput  textinput.Model
	gotoActive bool

	output     viewport.Model
	outputText []string

	progress progress.Model

	watchEnabled bool
	watcher      *fsnotify.Watcher
	watchDir     string
	watchChan    chan tea.Msg
}

type runResultMsg struct {
	result code.Result
}

// NewModel constructs the presenter positioned on slide 1.
func NewModel(state State) *Model {
	gotoInput := textinput.New()
	gotoInput.Prompt = "go to slide: "
	gotoInput.CharLimit = 6
	gotoInput.Placeholder = "number"
	gotoInput.Blur()

	m := &Model{
		deck:         state.Deck,
		stylePath:    state.StylePath,
		cfg:          state.Config,
		runner:       state.Runner,
		state:        RenderState{Slide: 1},
		width:        state.Width,
		height:       state.Height,
		gotoInput:    gotoInput,
		output:       viewport.New(state.Width, outputHeight),
		progress:     newProgress(state.Config, state.Width),
		watchEnabled: state.Watch,
	}
	m.redraw()
	m.rebaseline()
	return m
}

// State returns the current navigation position.
func (m *Model) State() RenderState {
	return m.state
}

// Frame returns the most recent full render.
func (m *Model) Frame() render.Frame {
	return m.frame
}

// Farewell returns the closing message once the deck has been finished, or
// an empty string when the program quit early.
func (m *Model) Farewell() string {
	return m.farewell
}

// Err is the problem shown in the status line, if any.
func (m *Model) Err() error {
	return m.err
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	var cmds []tea.Cmd
	if m.runner != nil {
		cmds = append(cmds, m.waitForResult())
	}
	if m.watchEnabled {
		cmds = append(cmds, m.startWatching())
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	m.state.NeedsRedraw = false

	switch msg := msg.(type) {
	case runResultMsg:
		m.showResult(msg.result)
		return m, m.waitForResult()
	case fileEventMsg:
		return m, m.handleFileEvent(msg)
	case fileWatchErrMsg:
		m.err = msg.err
		return m, m.waitForFileEvent()
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil
	case tea.KeyMsg:
		key := msg.String()
		if key == "ctrl+c" {
			return m, tea.Quit
		}
		if m.gotoActive {
			return m, m.updateGoto(msg)
		}
		if m.showHelp {
			switch key {
			case "q", "Q", "?", "esc":
				m.showHelp = false
			}
			return m, nil
		}
		return m, m.handleKey(key)
	}
	return m, nil
}

func (m *Model) handleKey(key string) tea.Cmd {
	switch key {
	case "right", "l", "L":
		return m.next()
	case "left", "h", "H":
		if m.state.Slide > 1 {
			m.gotoSlide(m.state.Slide - 1)
		}
	case "up", "k", "K":
		m.scroll(1)
	case "down", "j", "J":
		m.scroll(-1)
	case "t":
		m.state.HighlightMode = !m.state.HighlightMode
		m.state.Visible = 0
		m.restyle()
		m.rebaseline()
	case "ctrl+r":
		m.redraw()
	case "q", "Q", "esc", "ctrl+c":
		return tea.Quit
	case "?":
		m.openHelp()
	case ":":
		return m.openGoto()
	case "1", "2", "3", "4", "5", "6", "7", "8", "9", "0":
		m.runBlock(blockNumber(key))
	}
	return nil
}

func blockNumber(key string) int {
	if key == "0" {
		return 10
	}
	return int(key[0] - '0')
}

func (m *Model) next() tea.Cmd {
	if !m.deck.Exists(m.state.Slide + 1) {
		m.farewell = FarewellMessage
		return tea.Quit
	}
	m.gotoSlide(m.state.Slide + 1)
	return nil
}

func (m *Model) gotoSlide(n int) {
	m.state.Slide = n
	m.state.Visible = 0
	m.clearOutput()
	m.redraw()
	m.rebaseline()
}

// scroll hides delta more lines in scroll mode. In highlight mode Visible
// counts the revealed code lines, so a negative delta reveals one more.
func (m *Model) scroll(delta int) {
	if m.state.HighlightMode {
		m.state.Visible = clamp(m.state.Visible-delta, 0, m.frame.CodeLines)
		m.restyle()
		return
	}
	m.state.Visible = m.frame.Bounds.Clamp(m.state.Visible + delta)
	if m.cfg.LineHighlight {
		m.restyle()
	}
}

func (m *Model) baseline() int {
	switch {
	case m.state.HighlightMode:
		return 0
	case m.cfg.Clear:
		return m.frame.Bounds.Upper
	default:
		return m.frame.Bounds.Lower
	}
}

func (m *Model) rebaseline() {
	m.state.Visible = m.baseline()
	if m.cfg.LineHighlight && !m.state.HighlightMode {
		m.restyle()
	}
}

// redraw re-reads the style file and the current slide and renders again.
// A broken style file keeps the previous configuration.
func (m *Model) redraw() {
	m.state.NeedsRedraw = true
	m.err = nil
	m.reloadStyle()

	src, err := m.deck.Read(m.state.Slide)
	if err != nil {
		m.err = err
		return
	}
	m.source = src
	m.restyle()
}

func (m *Model) reloadStyle() {
	if m.stylePath == "" {
		return
	}
	raw, err := style.Load(m.stylePath)
	if err == nil {
		var cfg style.Config
		if cfg, err = style.Parse(raw); err == nil {
			m.cfg = cfg
			return
		}
	}
	m.err = fmt.Errorf("style not reloaded: %w", err)
}

// restyle renders the cached slide source with the current context.
func (m *Model) restyle() {
	frame, err := render.Render(m.source, m.context())
	if err != nil {
		m.err = err
		return
	}
	m.frame = frame
	if m.state.HighlightMode {
		m.state.Visible = clamp(m.state.Visible, 0, m.frame.CodeLines)
	} else {
		m.state.Visible = m.frame.Bounds.Clamp(m.state.Visible)
	}
}

func (m *Model) context() render.Context {
	ctx := render.NewContext(m.cfg, m.width, m.contentHeight())
	if m.state.HighlightMode {
		ctx.Highlight = m.state.Visible
	} else if m.cfg.LineHighlight {
		ctx.HighlightLine = m.state.Visible
	}
	return ctx
}

func (m *Model) contentHeight() int {
	h := m.height
	if m.cfg.Progress {
		h -= footerHeight
	}
	if len(m.outputText) > 0 {
		h -= outputHeight + 1
	}
	return max(h, 0)
}

func (m *Model) resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	m.width = width
	m.height = height
	m.output.Width = width
	m.progress.Width = max(width-4, 10)

	if m.state.HighlightMode {
		m.redraw()
		return
	}
	// Upper moves with the padding; the revealed count is what survives.
	revealed := m.frame.Bounds.Upper - m.state.Visible
	m.redraw()
	m.state.Visible = m.frame.Bounds.Clamp(m.frame.Bounds.Upper - revealed)
	if m.cfg.LineHighlight {
		m.restyle()
	}
}

func (m *Model) runBlock(n int) {
	if m.runner == nil {
		m.err = errNoRunner
		return
	}
	block, err := m.frame.Registry.Get(n)
	if err != nil {
		m.err = err
		return
	}
	if err := m.runner.Submit(block, m.cfg.Runtimes); err != nil {
		m.err = fmt.Errorf("block %d: %w", n, err)
	}
}

func (m *Model) waitForResult() tea.Cmd {
	if m.runner == nil {
		return nil
	}
	results := m.runner.Results()
	return func() tea.Msg {
		res, ok := <-results
		if !ok {
			return nil
		}
		return runResultMsg{result: res}
	}
}

func (m *Model) showResult(res code.Result) {
	text := res.Label()
	if out := strings.TrimRight(res.Output, "\n"); out != "" {
		text += "\n" + out
	}
	first := len(m.outputText) == 0
	m.outputText = append(m.outputText, text)
	m.output.SetContent(strings.Join(m.outputText, "\n\n"))
	m.output.GotoBottom()
	if first {
		m.restyle()
	}
}

func (m *Model) clearOutput() {
	m.outputText = nil
	m.output.SetContent("")
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.showHelp {
		overlay := helpBoxStyle.Render(m.help)
		if m.width > 0 && m.height > 0 {
			return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, overlay)
		}
		return overlay
	}

	hidden := m.state.Visible
	if m.state.HighlightMode {
		hidden = 0
	}
	sections := []string{strings.Join(m.frame.Visible(hidden), "\n")}
	if len(m.outputText) > 0 {
		sections = append(sections, outputStyle.Render(m.output.View()))
	}
	if m.gotoActive {
		sections = append(sections, promptStyle.Render(m.gotoInput.View()))
	} else if m.err != nil {
		sections = append(sections, errorStyle.Render(m.err.Error()))
	}
	if m.cfg.Progress {
		sections = append(sections, m.footer())
	}
	return strings.Join(sections, "\n")
}

func clamp(value, low, high int) int {
	if value < low {
		return low
	}
	if value > high {
		return high
	}
	return value
}
