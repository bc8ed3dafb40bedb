package cli

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/codalotl/linediff/internal/diff"
	"github.com/codalotl/linediff/internal/lcs"
	"github.com/codalotl/linediff/internal/q/cascade"
	qcli "github.com/codalotl/linediff/internal/q/cli"
	"github.com/codalotl/linediff/internal/simplelogger"
	"github.com/codalotl/linediff/internal/textdiff"
	"github.com/codalotl/linediff/internal/watcher"
)

type configState struct {
	once   sync.Once
	dir    string
	cfg    Config
	loader *cascade.Loader
	err    error
}

func (s *configState) get() (Config, *cascade.Loader, error) {
	s.once.Do(func() {
		dir := s.dir
		if dir == "" {
			dir, _ = os.Getwd()
		}
		s.cfg, s.loader, s.err = loadConfig(dir)
	})
	return s.cfg, s.loader, s.err
}

func newRootCommand(dir string) *qcli.Command {
	cfgState := &configState{dir: dir}

	withConfig := func(next func(c *qcli.Context, cfg Config) error) qcli.RunFunc {
		return func(c *qcli.Context) error {
			cfg, _, err := cfgState.get()
			if err != nil {
				return qcli.ExitError{Code: 1, Err: err}
			}
			return next(c, cfg)
		}
	}

	root := &qcli.Command{
		Name:  "linediff",
		Short: "linediff compares two texts line by line, and changed lines word by word.",
	}

	compare := &qcli.Command{
		Name:    "compare",
		Aliases: []string{"diff"},
		Short:   "Compare two files",
		Long:    "Compare <old> and <new> and print their differences. Either may be - to read stdin. Exits 0 whether or not they differ.",
		Example: "linediff compare old.txt new.txt\ngit show HEAD:README.md | linediff compare -f side - README.md",
		Args:    qcli.ExactArgs(2),
	}
	compareFlags := bindRenderFlags(compare.Flags())
	compare.Run = withConfig(func(c *qcli.Context, cfg Config) error {
		cfg = compareFlags.apply(c, cfg)
		oldText, newText, err := readInputs(c.In, c.Args[0], c.Args[1])
		if err != nil {
			return err
		}
		r := newRenderer(cfg, c.Out, *compareFlags.minify, displayName(c.Args[0]), displayName(c.Args[1]))
		return compareAndWrite(c.Out, r, oldText, newText)
	})

	words := &qcli.Command{
		Name:  "words",
		Short: "Compare two single lines word by word",
		Long:  "Print the token-level edit script from <old-line> to <new-line>, one token per line: = kept, - removed, + added.",
		Args:  qcli.ExactArgs(2),
		Run: func(c *qcli.Context) error {
			return writeWordScript(c.Out, textdiff.DiffTokens(c.Args[0], c.Args[1]))
		},
	}

	watch := &qcli.Command{
		Name:  "watch",
		Short: "Re-compare two files whenever either changes",
		Long:  "Print the comparison of <old> and <new>, then print it again after every change to either file, until interrupted.",
		Args:  qcli.ExactArgs(2),
	}
	watchFlags := bindRenderFlags(watch.Flags())
	debounce := watch.Flags().Duration("debounce", 0, watcher.DefaultDebounce, "Quiet period before re-rendering")
	watch.Run = withConfig(func(c *qcli.Context, cfg Config) error {
		cfg = watchFlags.apply(c, cfg)
		if c.Args[0] == "-" || c.Args[1] == "-" {
			return qcli.Usagef("watch needs files, not stdin")
		}
		r := newRenderer(cfg, c.Out, *watchFlags.minify, c.Args[0], c.Args[1])
		return runWatch(c, r, c.Args[0], c.Args[1], *debounce)
	})

	config := &qcli.Command{
		Name:  "config",
		Short: "Print the effective configuration",
		Args:  qcli.NoArgs,
	}
	origins := config.Flags().Bool("origins", 0, false, "Print key=value (source) lines instead of JSON")
	config.Run = func(c *qcli.Context) error {
		cfg, loader, err := cfgState.get()
		if err != nil {
			return qcli.ExitError{Code: 1, Err: err}
		}
		if *origins {
			return writeConfigOrigins(c.Out, cfg, loader)
		}
		return writeConfigJSON(c.Out, cfg)
	}

	version := &qcli.Command{
		Name:  "version",
		Short: "Print the version",
		Args:  qcli.NoArgs,
		Run: func(c *qcli.Context) error {
			_, err := fmt.Fprintf(c.Out, "linediff %s\n", Version)
			return err
		},
	}

	root.AddCommand(compare, words, watch, config, version)
	return root
}

// compareAndWrite diffs oldText against newText and writes r's rendering to w.
func compareAndWrite(w io.Writer, r renderer, oldText, newText string) error {
	start := time.Now()
	d, err := diff.DiffTextLimited(oldText, newText, r.cfg.MaxCells)
	if err != nil {
		return err
	}
	out, err := r.render(d)
	if err != nil {
		return err
	}
	simplelogger.Log("compare: old=%q (%s) new=%q (%s) rows=%d format=%s took %s",
		r.fromName, humanize.Bytes(uint64(len(oldText))), r.toName, humanize.Bytes(uint64(len(newText))), len(d.Lines), r.cfg.Format, time.Since(start))

	_, err = io.WriteString(w, out)
	return err
}

// writeWordScript prints one token per line. Empty edge tokens are skipped.
func writeWordScript(w io.Writer, script []lcs.Edit[string]) error {
	for _, e := range script {
		if e.Value == "" {
			continue
		}
		mark := "="
		switch e.Kind {
		case lcs.Added:
			mark = "+"
		case lcs.Removed:
			mark = "-"
		}
		if _, err := fmt.Fprintf(w, "%s %s\n", mark, strconv.Quote(e.Value)); err != nil {
			return err
		}
	}
	return nil
}

const clearScreen = "\x1b[H\x1b[2J"

// runWatch renders once, then again after each debounced change, until c is cancelled. A render that fails (ex: a file is mid-save and briefly missing)
// is reported on c.Err and watching continues.
func runWatch(c *qcli.Context, r renderer, oldPath, newPath string, debounce time.Duration) error {
	w, err := watcher.New([]string{oldPath, newPath}, watcher.Options{Debounce: debounce})
	if err != nil {
		return err
	}
	defer w.Close()

	render := func() error {
		if r.color {
			if _, err := io.WriteString(c.Out, clearScreen); err != nil {
				return err
			}
		}
		oldText, newText, err := readFilesSettled(c.Context, oldPath, newPath)
		if err == nil {
			err = compareAndWrite(c.Out, r, oldText, newText)
		}
		if err != nil {
			fmt.Fprintln(c.Err, err)
		}
		return nil
	}

	if err := render(); err != nil {
		return err
	}
	err = w.Run(c.Context, render)
	s := w.Stats()
	simplelogger.Log("watch: events=%d renders=%d", s.Events, s.Fires)
	return err
}
