package app

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"text/template"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/kyaoi/dough/internal/style"
)

// DefaultTemplate is used when no template is named.
const DefaultTemplate = "default"

var (
	// ErrProjectExists is returned when the project directory is already there.
	ErrProjectExists = errors.New("project already exists")
	// ErrUnknownTemplate is returned for a template name with no files.
	ErrUnknownTemplate = errors.New("unknown template")
)

//go:embed templates
var templates embed.FS

// Templates lists the available project templates.
func Templates() []string {
	entries, err := fs.ReadDir(templates, "templates")
	if err != nil {
		return nil
	}
	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)
	return names
}

// NewProject creates dir with the slides of the named template and the
// default style file. The directory must not exist yet.
func NewProject(dir, templateName string) error {
	if templateName == "" {
		templateName = DefaultTemplate
	}
	root := path.Join("templates", templateName)
	files, err := fs.ReadDir(templates, root)
	if err != nil {
		return fmt.Errorf("%w %q (available: %s)", ErrUnknownTemplate, templateName, strings.Join(Templates(), ", "))
	}

	if _, err := os.Stat(dir); err == nil {
		return fmt.Errorf("%s: %w", dir, ErrProjectExists)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create project: %w", err)
	}

	data := struct{ Title string }{Title: projectTitle(dir)}
	for _, file := range files {
		if file.IsDir() {
			continue
		}
		src, err := fs.ReadFile(templates, path.Join(root, file.Name()))
		if err != nil {
			return err
		}
		tmpl, err := template.New(file.Name()).Parse(string(src))
		if err != nil {
			return fmt.Errorf("template %s/%s: %w", templateName, file.Name(), err)
		}
		out, err := os.Create(filepath.Join(dir, file.Name()))
		if err != nil {
			return fmt.Errorf("create slide: %w", err)
		}
		err = tmpl.Execute(out, data)
		if cerr := out.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return fmt.Errorf("write slide %s: %w", file.Name(), err)
		}
	}

	if _, err := style.EnsureFile(dir); err != nil {
		return err
	}
	return nil
}

// projectTitle turns a directory name such as "go-tour" into "Go Tour".
func projectTitle(dir string) string {
	name := filepath.Base(filepath.Clean(dir))
	name = strings.NewReplacer("-", " ", "_", " ").Replace(name)
	return cases.Title(language.English).String(name)
}
