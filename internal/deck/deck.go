// Package deck locates the numbered slide files of a presentation project.
package deck

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// ErrMissingSlide is returned when a requested slide file does not exist.
var ErrMissingSlide = errors.New("slide not found")

var errNotDir = errors.New("path is not a directory")

const slideExt = ".md"

// Deck reads slides named 1.md, 2.md and so on from a project directory.
// Nothing is cached, so edits show up on the next read.
type Deck struct {
	root string
}

// Open returns a Deck rooted at dir.
func Open(dir string) (*Deck, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s: %w", abs, errNotDir)
	}
	return &Deck{root: abs}, nil
}

// Root is the absolute project directory.
func (d *Deck) Root() string {
	return d.root
}

// Path returns the file that holds slide n.
func (d *Deck) Path(n int) string {
	return filepath.Join(d.root, strconv.Itoa(n)+slideExt)
}

// Exists reports whether slide n is present.
func (d *Deck) Exists(n int) bool {
	if n < 1 {
		return false
	}
	info, err := os.Stat(d.Path(n))
	return err == nil && !info.IsDir()
}

// Read returns the source of slide n.
func (d *Deck) Read(n int) (string, error) {
	if n < 1 {
		return "", fmt.Errorf("slide %d: %w", n, ErrMissingSlide)
	}
	data, err := os.ReadFile(d.Path(n))
	if errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("slide %d: %w", n, ErrMissingSlide)
	}
	if err != nil {
		return "", fmt.Errorf("read slide %d: %w", n, err)
	}
	return string(data), nil
}

// Count returns how many slides exist without a gap, starting from 1.
func (d *Deck) Count() int {
	numbers, err := d.Numbers()
	if err != nil {
		return 0
	}
	count := 0
	for _, n := range numbers {
		if n != count+1 {
			break
		}
		count++
	}
	return count
}

// Numbers lists the slide numbers found in the project in ascending order.
func (d *Deck) Numbers() ([]int, error) {
	entries, err := os.ReadDir(d.root)
	if err != nil {
		return nil, err
	}
	var numbers []int
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if n, ok := slideNumber(entry.Name()); ok {
			numbers = append(numbers, n)
		}
	}
	sort.Ints(numbers)
	return numbers, nil
}

func slideNumber(name string) (int, bool) {
	base, ok := strings.CutSuffix(strings.ToLower(name), slideExt)
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(base)
	if err != nil || n < 1 || strconv.Itoa(n) != base {
		return 0, false
	}
	return n, true
}
