// Package style loads the per-project style file and turns it into a typed,
// validated Config.
//
// The style file is YAML made of flat "key: value" pairs plus one nested
// runtime map that names the interpreter or compiler for each language:
//
//	h1: bold red
//	box: true
//	runtime_map:
//	  python: python3
//
// Loading is split in two steps. Load reads the file into a raw Map of
// strings, and Parse validates the Map into a Config. Render code only ever
// sees Config, so a missing key fails once at startup instead of deep inside
// the render loop.
package style

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// FileName is the style file looked up inside a project directory.
const FileName = "style.yml"

var (
	// ErrMissingKey reports a required style key that is absent.
	ErrMissingKey = errors.New("missing style key")
	// ErrInvalidValue reports a style value that cannot be interpreted.
	ErrInvalidValue = errors.New("invalid style value")
)

// runtimeKeys are the accepted spellings of the nested runtime map.
var runtimeKeys = []string{"runtime_map", "-runtime_map"}

// Map is the raw content of a style file.
type Map struct {
	Values   map[string]string
	Runtimes map[string]string
}

// Get returns the raw value for key.
func (m Map) Get(key string) (string, bool) {
	v, ok := m.Values[key]
	return v, ok
}

// Keys returns the flat keys in sorted order.
func (m Map) Keys() []string {
	keys := make([]string, 0, len(m.Values))
	for k := range m.Values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Path returns the style file location for a project directory.
func Path(projectDir string) string {
	return filepath.Join(projectDir, FileName)
}

// Load reads and decodes the style file at path.
func Load(path string) (Map, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Map{}, fmt.Errorf("read style file: %w", err)
	}
	m, err := Decode(data)
	if err != nil {
		return Map{}, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// Decode parses style file content.
func Decode(data []byte) (Map, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Map{}, fmt.Errorf("%w: %v", ErrInvalidValue, err)
	}

	m := Map{
		Values:   make(map[string]string, len(raw)),
		Runtimes: make(map[string]string),
	}
	for key, value := range raw {
		if isRuntimeKey(key) {
			runtimes, ok := value.(map[string]any)
			if !ok {
				return Map{}, fmt.Errorf("%w: %s must be a mapping", ErrInvalidValue, key)
			}
			for lang, cmd := range runtimes {
				m.Runtimes[strings.ToLower(lang)] = scalar(cmd)
			}
			continue
		}
		switch value.(type) {
		case map[string]any, []any:
			return Map{}, fmt.Errorf("%w: %s must be a scalar", ErrInvalidValue, key)
		}
		m.Values[key] = scalar(value)
	}
	return m, nil
}

func isRuntimeKey(key string) bool {
	for _, k := range runtimeKeys {
		if key == k {
			return true
		}
	}
	return false
}

func scalar(v any) string {
	if v == nil {
		return ""
	}
	return strings.TrimSpace(fmt.Sprint(v))
}
