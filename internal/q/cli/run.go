package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// Options configure Run.
type Options struct {
	// Args is the argv excluding the program name (typically os.Args[1:]).
	Args []string

	// In/Out/Err override standard I/O. If nil, the os.Std* files are used.
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// Context is passed to a command handler. Flag values are read through the pointers returned when the flags were registered.
type Context struct {
	context.Context

	Command *Command
	Args    []string

	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// Changed reports whether the flag named name, local or inherited, was set on the command line.
func (c *Context) Changed(name string) bool {
	def := c.Command.activeFlags().byLong[name]
	return def != nil && def.changed
}

// Run executes a command tree as a CLI program and returns a process exit code:
//   - 0 on success or after printing help.
//   - 2 on usage errors, which print the message and the selected command's usage to Err.
//   - The ExitCode of a handler error implementing ExitCoder, otherwise 1. The message is printed to Err without usage.
func Run(ctx context.Context, root *Command, opts Options) int {
	if root == nil || root.Name == "" {
		panic("cli: Run needs a named root command")
	}

	c := &Context{Context: ctx, In: opts.In, Out: opts.Out, Err: opts.Err}
	if c.In == nil {
		c.In = os.Stdin
	}
	if c.Out == nil {
		c.Out = os.Stdout
	}
	if c.Err == nil {
		c.Err = os.Stderr
	}

	selected, args, err := parseArgv(root, opts.Args, c.Out)
	if errors.Is(err, errHelpPrinted) {
		return 0
	}
	if err != nil {
		printUsageError(root, selected, err, c.Err)
		return 2
	}

	if selected.Run == nil {
		if len(args) == 0 {
			err = usageErrorf("missing required subcommand")
		} else {
			err = usageErrorf("unknown subcommand: %s", args[0])
		}
		printUsageError(root, selected, err, c.Err)
		return 2
	}

	if selected.Args != nil {
		if err := selected.Args(args); err != nil {
			var ec ExitCoder
			if !errors.As(err, &ec) {
				err = UsageError{Message: err.Error()}
			}
			return exitFor(root, selected, err, c.Err)
		}
	}

	c.Command = selected
	c.Args = args
	if err := selected.Run(c); err != nil {
		return exitFor(root, selected, err, c.Err)
	}
	return 0
}

var errHelpPrinted = errors.New("help printed")

// parseArgv selects the deepest command named by the leading non-flag tokens and parses flags anywhere in argv. Flags are resolved against the command selected so far. "--" ends
// both selection and flag parsing; "-" is a positional arg.
func parseArgv(root *Command, argv []string, out io.Writer) (*Command, []string, error) {
	selected := root
	selectionEnded := false
	var positional []string

	for i := 0; i < len(argv); i++ {
		token := argv[i]

		switch {
		case token == "--":
			return selected, append(positional, argv[i+1:]...), nil
		case token == "-h" || token == "--help":
			writeHelp(out, root, selected)
			return selected, nil, errHelpPrinted
		case strings.HasPrefix(token, "-") && token != "-":
			var next *string
			if i+1 < len(argv) {
				next = &argv[i+1]
			}
			consumed, err := parseFlagToken(selected.activeFlags(), token, next)
			if err != nil {
				return selected, nil, err
			}
			if consumed {
				i++
			}
			continue
		}

		if !selectionEnded {
			if child := selected.childByToken(token); child != nil {
				selected = child
				continue
			}
			selectionEnded = true
		}
		positional = append(positional, token)
	}
	return selected, positional, nil
}

// parseFlagToken handles --name, --name=value, -n, -n=value, and the single-dash long forms -name and -name=value.
func parseFlagToken(active activeFlags, token string, next *string) (bool, error) {
	body := strings.TrimPrefix(token, "-")
	long := strings.HasPrefix(body, "-")
	body = strings.TrimPrefix(body, "-")

	name, value, hasValue := strings.Cut(body, "=")
	var valuePtr *string
	if hasValue {
		valuePtr = &value
	}

	if !long && len([]rune(name)) == 1 {
		return active.parseAndSet(token, "", []rune(name)[0], valuePtr, next)
	}
	if name == "" {
		return false, usageErrorf("unknown flag: %s", token)
	}
	return active.parseAndSet(token, name, 0, valuePtr, next)
}

func exitFor(root, cmd *Command, err error, errOut io.Writer) int {
	code := 1
	var ec ExitCoder
	if errors.As(err, &ec) {
		code = ec.ExitCode()
	}
	switch code {
	case 0:
		return 0
	case 2:
		printUsageError(root, cmd, err, errOut)
		return 2
	}
	if msg := err.Error(); msg != "" {
		fmt.Fprintln(errOut, msg)
	}
	return code
}

func printUsageError(root, cmd *Command, err error, errOut io.Writer) {
	msg := err.Error()
	var ue UsageError
	if errors.As(err, &ue) {
		msg = ue.Message
	}
	if msg != "" {
		fmt.Fprintln(errOut, msg)
		fmt.Fprintln(errOut)
	}
	writeHelp(errOut, root, cmd)
}
