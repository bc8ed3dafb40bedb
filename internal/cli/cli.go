package cli

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/signal"
	"strings"

	qcli "github.com/codalotl/linediff/internal/q/cli"
)

// Version is the linediff version. It is a var so build tooling can override it (ex: `-ldflags "-X .../internal/cli.Version=1.2.3"`).
var Version = "0.3.0"

// RunOptions override standard I/O. If nil, defaults are used. Overriding is useful for testing.
type RunOptions struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer

	// Dir is the directory searched for a project .linediff config. Defaults to the working directory.
	Dir string

	// Context, if set, is the parent context of the command. Otherwise an interrupt-aware background context is used.
	Context context.Context
}

// Run runs the CLI with args (typically os.Args).
//
// It returns a recommended exit code (0, 1, or 2) and an error, if any:
//   - 0 -> err == nil
//   - 1 -> err != nil, but the structure of args is sound (ex: unreadable file).
//   - 2 -> err != nil, args parse error or misuse of flags, etc.
//
// In cases of errors, Run has already displayed an error message to opts.Err || Stderr.
func Run(args []string, opts *RunOptions) (int, error) {
	argv := args
	if len(argv) > 0 {
		argv = argv[1:]
	}

	var in io.Reader = os.Stdin
	var out io.Writer = os.Stdout
	var errW io.Writer = os.Stderr
	dir := ""
	ctx := context.Background()
	if opts != nil {
		if opts.In != nil {
			in = opts.In
		}
		if opts.Out != nil {
			out = opts.Out
		}
		if opts.Err != nil {
			errW = opts.Err
		}
		dir = opts.Dir
		if opts.Context != nil {
			ctx = opts.Context
		}
	}
	if opts == nil || opts.Context == nil {
		var stop context.CancelFunc
		ctx, stop = signal.NotifyContext(ctx, os.Interrupt)
		defer stop()
	}

	// internal/q/cli returns only an exit code, so tee stderr to produce a non-nil error when the exit code != 0.
	var stderrBuf bytes.Buffer
	exitCode := qcli.Run(ctx, newRootCommand(dir), qcli.Options{
		Args: argv,
		In:   in,
		Out:  out,
		Err:  io.MultiWriter(errW, &stderrBuf),
	})
	if exitCode == 0 {
		return 0, nil
	}

	msg := strings.TrimSpace(stderrBuf.String())
	if msg == "" {
		msg = "command failed"
	}
	return exitCode, errors.New(msg)
}
