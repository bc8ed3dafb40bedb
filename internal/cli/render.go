package cli

import (
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"

	"github.com/codalotl/linediff/internal/diff"
	qcli "github.com/codalotl/linediff/internal/q/cli"
)

// renderFlags are the output flags shared by compare and watch. Each overrides the matching Config value only when given on the command line.
type renderFlags struct {
	format  *string
	color   *string
	context *int
	width   *int
	summary *bool
	minify  *bool
}

func bindRenderFlags(fs *qcli.FlagSet) *renderFlags {
	return &renderFlags{
		format:  fs.Enum("format", 'f', "", formats, "Output format (default from config: pretty)"),
		color:   fs.Enum("color", 0, "", colorModes, "Colorize output (default from config: auto)"),
		context: fs.Int("context", 'C', 0, "Unchanged lines shown around each change; negative shows all"),
		width:   fs.Int("width", 'w', 0, "Total width of side-by-side output; 0 uses the terminal width"),
		summary: fs.Bool("summary", 's', false, "Append the summary line"),
		minify:  fs.Bool("minify", 0, false, "Minify html output"),
	}
}

// apply returns cfg with the flags given on the command line applied.
func (f *renderFlags) apply(c *qcli.Context, cfg Config) Config {
	if c.Changed("format") {
		cfg.Format = *f.format
	}
	if c.Changed("color") {
		cfg.Color = *f.color
	}
	if c.Changed("context") {
		cfg.Context = *f.context
	}
	if c.Changed("width") {
		cfg.Width = *f.width
	}
	if c.Changed("summary") {
		cfg.Summary = *f.summary
	}
	return cfg
}

// renderer turns a Diff into output bytes for one format.
type renderer struct {
	cfg      Config
	color    bool
	width    int
	minify   bool
	fromName string
	toName   string
}

func newRenderer(cfg Config, out io.Writer, minify bool, fromName, toName string) renderer {
	r := renderer{cfg: cfg, minify: minify, fromName: fromName, toName: toName}
	switch cfg.Color {
	case "always":
		r.color = true
	case "auto":
		r.color = isTerminal(out) && os.Getenv("NO_COLOR") == ""
	}
	r.width = cfg.Width
	if r.width <= 0 {
		r.width = detectTerminalWidth(out)
	}
	return r
}

// render returns the full output for d, ending in a newline unless empty.
func (r renderer) render(d diff.Diff) (string, error) {
	var body string
	switch r.cfg.Format {
	case "json":
		return d.RenderJSON()
	case "html":
		s, err := d.RenderHTML(diff.HTMLOptions{
			Standalone:  true,
			Title:       r.fromName + " -> " + r.toName,
			Summary:     r.cfg.Summary,
			Minify:      r.minify,
			ContextSize: r.cfg.Context,
		})
		if err != nil {
			return "", err
		}
		return s + "\n", nil
	case "side":
		body = d.RenderSideBySide(r.width, r.color, r.cfg.Context)
	case "pretty":
		if r.color {
			body = d.RenderPretty(r.fromName, r.toName, r.cfg.Context)
		} else {
			body = d.RenderPlain(r.cfg.Context)
		}
	default:
		body = d.RenderPlain(r.cfg.Context)
	}

	var b strings.Builder
	if body != "" {
		b.WriteString(body)
		b.WriteByte('\n')
	}
	if r.cfg.Summary {
		if body != "" {
			b.WriteByte('\n')
		}
		b.WriteString(d.Summary().String())
		b.WriteByte('\n')
	}
	return b.String(), nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && f != nil && term.IsTerminal(int(f.Fd()))
}

// detectTerminalWidth returns the width of w if it is a terminal, else $COLUMNS, else 0 (the renderer's default).
func detectTerminalWidth(w io.Writer) int {
	if f, ok := w.(*os.File); ok && f != nil {
		fd := int(f.Fd())
		if term.IsTerminal(fd) {
			if cols, _, err := term.GetSize(fd); err == nil && cols > 0 {
				return cols
			}
		}
	}
	if cols := strings.TrimSpace(os.Getenv("COLUMNS")); cols != "" {
		if n, err := strconv.Atoi(cols); err == nil && n > 0 {
			return n
		}
	}
	return 0
}
