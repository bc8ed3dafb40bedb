// Package simplelogger appends printf-style lines to a log file chosen by the environment. It exists for debugging the CLI and the watcher, whose
// stdout and stderr belong to the user.
package simplelogger

import (
	"bytes"
	"fmt"
	"os"
	"sync"
	"time"
)

// EnvVar names the environment variable holding the log file path.
const EnvVar = "LINEDIFF_LOG_FILE"

var (
	mu  sync.Mutex
	now = time.Now
)

// Log formats a line, prefixes it with an RFC 3339 timestamp, and appends it to the file named by LINEDIFF_LOG_FILE. A trailing newline is added if missing.
//
// If LINEDIFF_LOG_FILE is unset or empty, or the path can't be opened as a file, Log is a no-op.
func Log(format string, args ...any) {
	path := os.Getenv(EnvVar)
	if path == "" {
		return
	}

	mu.Lock()
	defer mu.Unlock()

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return
	}
	defer f.Close()

	var b bytes.Buffer
	b.WriteString(now().Format(time.RFC3339))
	b.WriteByte(' ')
	_, _ = fmt.Fprintf(&b, format, args...)
	if b.Bytes()[b.Len()-1] != '\n' {
		_ = b.WriteByte('\n')
	}
	_, _ = f.Write(b.Bytes())
}

// Enabled reports whether Log writes anywhere. Callers use it to skip building expensive arguments.
func Enabled() bool {
	return os.Getenv(EnvVar) != ""
}
