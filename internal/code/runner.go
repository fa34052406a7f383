package code

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"
)

var (
	// ErrSubprocess reports a non-zero exit from an interpreter or compiler.
	ErrSubprocess = errors.New("subprocess failed")
	// ErrUnsupported reports a language with no known execution recipe or
	// runtime.
	ErrUnsupported = errors.New("language not supported")
	// ErrBusy reports that every worker is occupied.
	ErrBusy = errors.New("all code runners busy")
	// ErrClosed reports a submission after Close.
	ErrClosed = errors.New("code runner closed")
)

const defaultWorkers = 4

// Result is the outcome of running one block.
type Result struct {
	Block  Block
	Output string
	Err    error
}

// Label formats the result header shown next to the output.
func (r Result) Label() string {
	lang := r.Block.Lang
	if lang == "" {
		lang = "text"
	}
	if r.Err != nil {
		return fmt.Sprintf("[%d] %s: error: %v", r.Block.Index, lang, r.Err)
	}
	return fmt.Sprintf("[%d] %s", r.Block.Index, lang)
}

// Runner executes code blocks on a bounded pool of workers. Results are
// delivered on Results in completion order.
type Runner struct {
	group   errgroup.Group
	results chan Result
	ctx     context.Context
	cancel  context.CancelFunc
	tempDir string
}

// Option configures a Runner.
type Option func(*runnerOptions)

type runnerOptions struct {
	workers int
	tempDir string
}

// WithWorkers bounds the number of concurrently running blocks.
func WithWorkers(n int) Option {
	return func(o *runnerOptions) {
		if n > 0 {
			o.workers = n
		}
	}
}

// WithTempDir sets where temporary sources and artifacts are created.
func WithTempDir(dir string) Option {
	return func(o *runnerOptions) {
		o.tempDir = dir
	}
}

// NewRunner starts a runner. Close must be called to release it.
func NewRunner(opts ...Option) *Runner {
	o := runnerOptions{workers: defaultWorkers}
	for _, opt := range opts {
		opt(&o)
	}
	ctx, cancel := context.WithCancel(context.Background())
	r := &Runner{
		results: make(chan Result, o.workers*2),
		ctx:     ctx,
		cancel:  cancel,
		tempDir: o.tempDir,
	}
	r.group.SetLimit(o.workers)
	return r
}

// Results returns the channel on which finished runs are published.
func (r *Runner) Results() <-chan Result {
	return r.results
}

// Submit schedules b without blocking. runtimes maps runtime keys (python,
// c, java, ...) to commands.
func (r *Runner) Submit(b Block, runtimes map[string]string) error {
	if r.ctx.Err() != nil {
		return ErrClosed
	}
	ok := r.group.TryGo(func() error {
		out, err := r.Run(r.ctx, b, runtimes)
		select {
		case r.results <- Result{Block: b, Output: out, Err: err}:
		case <-r.ctx.Done():
		}
		return nil
	})
	if !ok {
		return ErrBusy
	}
	return nil
}

// Close stops accepting work, kills running subprocesses and waits for the
// workers to exit.
func (r *Runner) Close() error {
	r.cancel()
	return r.group.Wait()
}

// Run executes b synchronously and returns its combined output.
func (r *Runner) Run(ctx context.Context, b Block, runtimes map[string]string) (string, error) {
	lang, ok := lookupLanguage(b.Lang)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupported, b.Lang)
	}
	argv := runtimeCommand(runtimes, lang.runtime)
	if len(argv) == 0 {
		return "", fmt.Errorf("%w: no runtime configured for %s", ErrUnsupported, lang.runtime)
	}

	dir, err := os.MkdirTemp(r.tempDir, "dough-run-*")
	if err != nil {
		return "", fmt.Errorf("create temp dir: %w", err)
	}
	defer os.RemoveAll(dir)

	src, err := writeSource(dir, lang, b.Code)
	if err != nil {
		return "", err
	}

	switch lang.kind {
	case compiled:
		artifact := filepath.Join(dir, "snippet")
		if out, err := execute(ctx, dir, append(argv, src, "-o", artifact)...); err != nil {
			return out, err
		}
		return execute(ctx, dir, artifact)
	case jvm:
		if out, err := execute(ctx, dir, append(argv, src)...); err != nil {
			return out, err
		}
		return execute(ctx, dir, "java", "-cp", dir, "Main")
	default:
		return execute(ctx, dir, append(argv, src)...)
	}
}

func runtimeCommand(runtimes map[string]string, key string) []string {
	cmd := runtimes[key]
	if cmd == "" && key == "cpp" {
		cmd = runtimes["c"]
	}
	return strings.Fields(cmd)
}

func writeSource(dir string, lang language, code string) (string, error) {
	if lang.kind == jvm {
		path := filepath.Join(dir, "Main.java")
		if err := os.WriteFile(path, []byte(code), 0o600); err != nil {
			return "", fmt.Errorf("write source: %w", err)
		}
		return path, nil
	}
	f, err := os.CreateTemp(dir, "snippet-*"+lang.ext)
	if err != nil {
		return "", fmt.Errorf("create source: %w", err)
	}
	if _, err := f.WriteString(code); err != nil {
		_ = f.Close()
		return "", fmt.Errorf("write source: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close source: %w", err)
	}
	return f.Name(), nil
}

func execute(ctx context.Context, dir string, argv ...string) (string, error) {
	var buf bytes.Buffer
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = dir
	cmd.Stdout = &buf
	cmd.Stderr = &buf
	if err := cmd.Run(); err != nil {
		return buf.String(), fmt.Errorf("%w: %s: %v", ErrSubprocess, filepath.Base(argv[0]), err)
	}
	return buf.String(), nil
}
