package app

import (
	"fmt"
	"io"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/kyaoi/dough/internal/code"
	"github.com/kyaoi/dough/internal/ui"
)

// Output modes accepted by Run.
const (
	ModeTerm = "term"
	ModeHTML = "html"
)

const (
	debugEnv = "DOUGH_DEBUG"
	debugLog = "dough-debug.log"
)

// Options configures a presentation run.
type Options struct {
	Mode  string
	Watch bool
	// Out receives the farewell message. Defaults to stdout.
	Out io.Writer
}

// Run presents the project in dir until the viewer quits.
func Run(dir string, opts Options) error {
	if err := checkMode(opts.Mode); err != nil {
		return err
	}
	width, height, err := terminalSize(os.Stdout)
	if err != nil {
		return err
	}

	state, warnings, err := LoadInitialState(dir)
	if err != nil {
		return err
	}
	for _, w := range warnings {
		log.Printf("warning: %s", w)
	}

	if os.Getenv(debugEnv) != "" {
		f, err := tea.LogToFile(debugLog, "dough")
		if err != nil {
			return fmt.Errorf("open debug log: %w", err)
		}
		defer f.Close()
	}

	runner := code.NewRunner()
	defer runner.Close()

	state.Runner = runner
	state.Width = width
	state.Height = height
	state.Watch = opts.Watch
	return runProgram(state, opts.Out)
}

func runProgram(state ui.State, out io.Writer) error {
	model := ui.NewModel(state)
	defer model.Close()

	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return err
	}
	if msg := model.Farewell(); msg != "" {
		if out == nil {
			out = os.Stdout
		}
		fmt.Fprintln(out, msg)
	}
	return nil
}

func checkMode(mode string) error {
	switch mode {
	case "", ModeTerm:
		return nil
	case ModeHTML:
		return fmt.Errorf("%w: %s", ErrUnsupportedMode, mode)
	default:
		return fmt.Errorf("%w: unknown mode %q (want %s or %s)", ErrUsage, mode, ModeTerm, ModeHTML)
	}
}

// terminalSize reports the size of f, which must be a terminal.
func terminalSize(f *os.File) (int, int, error) {
	fd := int(f.Fd())
	if !term.IsTerminal(fd) {
		return 0, 0, fmt.Errorf("%w: stdout is not a terminal", ErrTerminal)
	}
	width, height, err := term.GetSize(fd)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %v", ErrTerminal, err)
	}
	return width, height, nil
}
