package cascade

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// source produces a normalized map: lowercase keys, dotted keys expanded into nested maps.
type source interface {
	Name() string
	ToMap() (map[string]any, error)
}

type sourceMap struct {
	m map[string]any
}

func (s *sourceMap) Name() string { return "defaults" }

func (s *sourceMap) ToMap() (map[string]any, error) {
	return normalize(s.m), nil
}

type sourceFile struct {
	path string
}

func (s *sourceFile) Name() string { return ExpandPath(s.path) }

// ToMap returns the file's contents. Read errors are returned as-is so the caller can ignore missing and unreadable files. An empty file yields nil.
func (s *sourceFile) ToMap() (map[string]any, error) {
	data, err := os.ReadFile(ExpandPath(s.path))
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(string(data)) == "" {
		return nil, nil
	}
	var m map[string]any
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	return normalize(m), nil
}

type sourceEnv struct {
	keyToEnv map[string]string
}

func (s *sourceEnv) Name() string { return "env" }

func (s *sourceEnv) ToMap() (map[string]any, error) {
	m := map[string]any{}
	for key, env := range s.keyToEnv {
		raw := os.Getenv(env)
		if raw == "" {
			continue
		}
		var v any
		if err := yaml.Unmarshal([]byte(raw), &v); err != nil || !isScalar(v) {
			v = raw
		}
		m[key] = v
	}
	return normalize(m), nil
}

func isScalar(v any) bool {
	switch v.(type) {
	case string, bool, int, float64:
		return true
	}
	return false
}

// normalize lowercases keys recursively and expands dotted keys ("a.b": 1 becomes "a": {"b": 1}).
func normalize(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := map[string]any{}
	for k, v := range m {
		if nested, ok := v.(map[string]any); ok {
			v = normalize(nested)
		}
		parts := strings.Split(strings.ToLower(k), ".")
		cur := out
		for _, p := range parts[:len(parts)-1] {
			next, ok := cur[p].(map[string]any)
			if !ok {
				next = map[string]any{}
				cur[p] = next
			}
			cur = next
		}
		last := parts[len(parts)-1]
		if existing, ok := cur[last].(map[string]any); ok {
			if nested, ok := v.(map[string]any); ok {
				mergeInto(existing, nested)
				continue
			}
		}
		cur[last] = v
	}
	return out
}

func mergeInto(dst, src map[string]any) {
	for k, v := range src {
		if d, ok := dst[k].(map[string]any); ok {
			if s, ok := v.(map[string]any); ok {
				mergeInto(d, s)
				continue
			}
		}
		dst[k] = v
	}
}

// paths appends the dotted path of every leaf in m to dst.
func paths(m map[string]any, prefix string, dst map[string]string, origin string) {
	for k, v := range m {
		p := k
		if prefix != "" {
			p = prefix + "." + k
		}
		if nested, ok := v.(map[string]any); ok {
			dst[p] = origin
			paths(nested, p, dst, origin)
			continue
		}
		dst[p] = origin
	}
}
