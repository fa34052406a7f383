package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"

	"github.com/kyaoi/dough/internal/app"
)

const usage = `Usage:
  dough new <project> [--template name]
  dough present <project> [--mode term|html] [--watch]
  dough build <project> <term|html>
  dough help
`

func main() {
	log.SetFlags(0)
	log.SetPrefix("dough: ")

	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		log.Print(err)
		os.Exit(app.ExitCode(err))
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	if len(args) == 0 {
		fmt.Fprint(stderr, usage)
		return fmt.Errorf("%w: missing command", app.ErrUsage)
	}

	switch cmd, rest := args[0], args[1:]; cmd {
	case "new":
		return runNew(rest, stdout, stderr)
	case "present":
		return runPresent(rest, stdout, stderr)
	case "build":
		return runBuild(rest, stdout)
	case "help", "-h", "--help":
		fmt.Fprint(stdout, usage)
		return nil
	default:
		fmt.Fprint(stderr, usage)
		return fmt.Errorf("%w: unknown command %q", app.ErrUsage, cmd)
	}
}

func newFlagSet(name string, stderr io.Writer) *pflag.FlagSet {
	flags := pflag.NewFlagSet(name, pflag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.SetInterspersed(true)
	flags.Usage = func() {
		fmt.Fprint(stderr, usage)
		fmt.Fprintln(stderr, "\nFlags:")
		flags.PrintDefaults()
	}
	return flags
}

func parseProject(flags *pflag.FlagSet, args []string, extra int) ([]string, error) {
	if err := flags.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", app.ErrUsage, err)
	}
	rest := flags.Args()
	if len(rest) != 1+extra {
		flags.Usage()
		return nil, fmt.Errorf("%w: %s expects %d argument(s)", app.ErrUsage, flags.Name(), 1+extra)
	}
	return rest, nil
}

func runNew(args []string, stdout, stderr io.Writer) error {
	flags := newFlagSet("new", stderr)
	tmpl := flags.StringP("template", "t", app.DefaultTemplate,
		"Project template ("+strings.Join(app.Templates(), "|")+")")
	rest, err := parseProject(flags, args, 0)
	if err != nil {
		return err
	}

	dir := filepath.Clean(rest[0])
	if err := app.NewProject(dir, *tmpl); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Created project '%s'.\n", dir)
	return nil
}

func runPresent(args []string, stdout, stderr io.Writer) error {
	flags := newFlagSet("present", stderr)
	mode := flags.StringP("mode", "m", app.ModeTerm, "Output mode (term|html)")
	watch := flags.BoolP("watch", "w", false, "Reload slides and style when they change on disk")
	rest, err := parseProject(flags, args, 0)
	if err != nil {
		return err
	}
	return app.Run(filepath.Clean(rest[0]), app.Options{Mode: *mode, Watch: *watch, Out: stdout})
}

// runBuild accepts the positional "build <project> <format>" form.
func runBuild(args []string, stdout io.Writer) error {
	flags := newFlagSet("build", io.Discard)
	rest, err := parseProject(flags, args, 1)
	if err != nil {
		return err
	}
	return app.Run(filepath.Clean(rest[0]), app.Options{Mode: rest[1], Out: stdout})
}
