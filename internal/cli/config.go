package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"slices"

	"github.com/codalotl/linediff/internal/q/cascade"
)

// Output formats and color modes.
var (
	formats    = []string{"plain", "pretty", "side", "html", "json"}
	colorModes = []string{"auto", "always", "never"}
)

// Config is linediff's configuration loaded from a cascade of sources. Command-line flags override it.
type Config struct {
	// Format is the default output format for compare and watch.
	Format string `yaml:"format" json:"format"`

	// Color is auto, always, or never. auto colors only when stdout is a terminal and NO_COLOR is unset.
	Color string `yaml:"color" json:"color"`

	// Context is the number of unchanged lines shown around each change. Negative shows every line.
	Context int `yaml:"context" json:"context"`

	// Width is the total width of side-by-side output. 0 means the terminal width (or 120 when not a terminal).
	Width int `yaml:"width" json:"width"`

	// MaxCells caps (old lines + 1) * (new lines + 1), the size of the comparison table, so huge inputs fail fast instead of exhausting memory.
	MaxCells int `yaml:"maxcells" json:"maxcells"`

	// Summary appends the summary line to text output.
	Summary bool `yaml:"summary" json:"summary"`
}

var configDefaults = map[string]any{
	"format":   "pretty",
	"color":    "auto",
	"context":  -1,
	"width":    0,
	"maxcells": 50_000_000,
	"summary":  false,
}

var configEnv = map[string]string{
	"format":   "LINEDIFF_FORMAT",
	"color":    "LINEDIFF_COLOR",
	"context":  "LINEDIFF_CONTEXT",
	"width":    "LINEDIFF_WIDTH",
	"maxcells": "LINEDIFF_MAXCELLS",
	"summary":  "LINEDIFF_SUMMARY",
}

// loadConfig loads defaults, then ~/.linediff/config.{json,yaml}, then the nearest .linediff/config.{json,yaml} at or above cwd, then LINEDIFF_* environment variables.
// The loader is returned so callers can report where each value came from.
func loadConfig(cwd string) (Config, *cascade.Loader, error) {
	loader := cascade.New().
		WithDefaults(configDefaults).
		WithFile(cascade.InUserConfigDirectory(filepath.Join(".linediff", "config.json"))).
		WithFile(cascade.InUserConfigDirectory(filepath.Join(".linediff", "config.yaml"))).
		WithNearestFile(cwd, filepath.Join(".linediff", "config.json"), filepath.Join(".linediff", "config.yaml")).
		WithEnv(configEnv)

	var cfg Config
	if err := loader.StrictlyLoad(&cfg); err != nil {
		return Config{}, nil, fmt.Errorf("load configuration: %w", err)
	}
	if err := validateConfig(cfg); err != nil {
		return Config{}, nil, err
	}
	return cfg, loader, nil
}

func validateConfig(cfg Config) error {
	switch {
	case !slices.Contains(formats, cfg.Format):
		return fmt.Errorf("invalid configuration: format must be one of %v (got %q)", formats, cfg.Format)
	case !slices.Contains(colorModes, cfg.Color):
		return fmt.Errorf("invalid configuration: color must be one of %v (got %q)", colorModes, cfg.Color)
	case cfg.Width < 0:
		return fmt.Errorf("invalid configuration: width must be >= 0 (got %d)", cfg.Width)
	case cfg.MaxCells <= 0:
		return fmt.Errorf("invalid configuration: maxcells must be > 0 (got %d)", cfg.MaxCells)
	}
	return nil
}

func writeConfigJSON(w io.Writer, cfg Config) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(cfg)
}

// writeConfigOrigins prints one "key=value (source)" line per configuration key, in configDefaults order.
func writeConfigOrigins(w io.Writer, cfg Config, loader *cascade.Loader) error {
	values := map[string]any{
		"format":   cfg.Format,
		"color":    cfg.Color,
		"context":  cfg.Context,
		"width":    cfg.Width,
		"maxcells": cfg.MaxCells,
		"summary":  cfg.Summary,
	}
	for _, key := range []string{"format", "color", "context", "width", "maxcells", "summary"} {
		if _, err := fmt.Fprintf(w, "%s=%v (%s)\n", key, values[key], loader.Origin(key)); err != nil {
			return err
		}
	}
	return nil
}
