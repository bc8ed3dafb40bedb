package cascade

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"gopkg.in/yaml.v3"
)

// Loader builds a prioritized cascade of configuration sources and applies them to a destination struct.
type Loader struct {
	sources []source          // Ordered from low to high priority.
	origins map[string]string // Dotted key -> name of the source that last set it. Populated by StrictlyLoad.
}

// New returns a new Loader. It is equivalent to &Loader{}.
func New() *Loader {
	return &Loader{}
}

// WithDefaults registers m as a source of default values. Keys may use dot-notation. A nil map contributes nothing.
func (c *Loader) WithDefaults(m map[string]any) *Loader {
	c.sources = append(c.sources, &sourceMap{m: m})
	return c
}

// WithFile registers a JSON or YAML file. path is expanded with ExpandPath when read; a missing file is skipped.
func (c *Loader) WithFile(path string) *Loader {
	c.sources = append(c.sources, &sourceFile{path: path})
	return c
}

// WithNearestFile searches upward from startDir (or, if empty, the working directory) for the first directory holding a readable, non-empty file with one of fileNames, and
// registers that file. Within one directory, earlier names win. fileNames must be relative; WithNearestFile panics otherwise. If nothing is found, the loader is unchanged.
func (c *Loader) WithNearestFile(startDir string, fileNames ...string) *Loader {
	for _, name := range fileNames {
		if filepath.IsAbs(name) {
			panic("fileName shouldn't be absolute")
		}
	}

	start := startDir
	if start == "" {
		if wd, err := os.Getwd(); err == nil {
			start = wd
		}
	}
	if start == "" {
		return c
	}
	if fi, err := os.Stat(start); err == nil && !fi.IsDir() {
		start = filepath.Dir(start)
	}

	for dir := start; ; dir = filepath.Dir(dir) {
		for _, name := range fileNames {
			candidate := filepath.Join(dir, name)
			if data, err := os.ReadFile(candidate); err == nil && strings.TrimSpace(string(data)) != "" {
				c.sources = append(c.sources, &sourceFile{path: candidate})
				return c
			}
		}
		if parent := filepath.Dir(dir); parent == dir {
			break
		}
	}
	return c
}

// WithEnv registers an environment source. m maps a configuration key to an environment variable name.
func (c *Loader) WithEnv(m map[string]string) *Loader {
	c.sources = append(c.sources, &sourceEnv{keyToEnv: m})
	return c
}

// StrictlyLoad applies c's sources to dest, a non-nil pointer to a struct, from low to high priority. Later sources overwrite earlier values; fields no source mentions keep their
// current value. Required fields are validated after all sources.
func (c *Loader) StrictlyLoad(dest any) error {
	destVal := reflect.ValueOf(dest)
	if dest == nil || destVal.Kind() != reflect.Pointer || destVal.IsNil() {
		return fmt.Errorf("dest must be a non-nil pointer to struct")
	}
	if destVal.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("dest must be a pointer to struct, got %s", destVal.Elem().Kind())
	}

	c.origins = map[string]string{}
	for _, src := range c.sources {
		m, err := src.ToMap()
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrPermission) {
				continue
			}
			return fmt.Errorf("%s: %w", src.Name(), err)
		}
		if len(m) == 0 {
			continue
		}

		b, err := yaml.Marshal(m)
		if err != nil {
			return fmt.Errorf("%s: %w", src.Name(), err)
		}
		if err := yaml.Unmarshal(b, dest); err != nil {
			return fmt.Errorf("%s: %w", src.Name(), err)
		}
		paths(m, "", c.origins, src.Name())
	}

	return validateRequired(destVal.Elem().Type(), "", c.origins)
}

// Origin returns the name of the source that last set key ("defaults", "env", or a file path) during the most recent StrictlyLoad, or "" if no source set it.
func (c *Loader) Origin(key string) string {
	return c.origins[strings.ToLower(key)]
}

func validateRequired(t reflect.Type, prefix string, set map[string]string) error {
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		key := fieldKey(f)
		if key == "-" {
			continue
		}
		if prefix != "" {
			key = prefix + "." + key
		}
		if isRequired(f) {
			if _, ok := set[key]; !ok {
				return fmt.Errorf("missing required config %q", key)
			}
		}
		if ft := f.Type; ft.Kind() == reflect.Struct {
			if err := validateRequired(ft, key, set); err != nil {
				return err
			}
		}
	}
	return nil
}

// fieldKey returns the key yaml.v3 decodes f from: the yaml tag name, or the lowercased field name.
func fieldKey(f reflect.StructField) string {
	if tag := f.Tag.Get("yaml"); tag != "" {
		if name, _, _ := strings.Cut(tag, ","); name != "" {
			return strings.ToLower(name)
		}
	}
	return strings.ToLower(f.Name)
}

func isRequired(f reflect.StructField) bool {
	tag := f.Tag.Get("cascade")
	if tag == "" {
		return false
	}
	parts := strings.Split(tag, ",")
	for _, p := range parts[1:] {
		if strings.TrimSpace(p) == "required" {
			return true
		}
	}
	return false
}
