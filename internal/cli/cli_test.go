package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points HOME at an empty directory and clears LINEDIFF_* so no real configuration leaks into the test. It returns a project directory for RunOptions.Dir.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	if runtime.GOOS == "windows" {
		t.Setenv("USERPROFILE", home)
	} else {
		t.Setenv("HOME", home)
	}
	for _, env := range configEnv {
		t.Setenv(env, "")
	}
	t.Setenv("NO_COLOR", "")
	t.Setenv("COLUMNS", "")
	return t.TempDir()
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

type result struct {
	code   int
	err    error
	stdout string
	stderr string
}

func run(t *testing.T, dir string, stdin string, args ...string) result {
	t.Helper()
	var out, errOut bytes.Buffer
	code, err := Run(append([]string{"linediff"}, args...), &RunOptions{
		In:      strings.NewReader(stdin),
		Out:     &out,
		Err:     &errOut,
		Dir:     dir,
		Context: context.Background(),
	})
	return result{code: code, err: err, stdout: out.String(), stderr: errOut.String()}
}

func helloFiles(t *testing.T, dir string) (string, string) {
	t.Helper()
	return writeFile(t, dir, "old.txt", "hello world\nfoo"), writeFile(t, dir, "new.txt", "hello there\nfoo")
}

func TestRun_Help(t *testing.T) {
	dir := isolate(t)
	res := run(t, dir, "", "-h")
	require.NoError(t, res.err)
	assert.Equal(t, 0, res.code)
	assert.Contains(t, res.stdout, "compare")
	assert.Contains(t, res.stdout, "watch")
	assert.Empty(t, res.stderr)
}

func TestRun_MissingSubcommand(t *testing.T) {
	dir := isolate(t)
	res := run(t, dir, "")
	require.Error(t, res.err)
	assert.Equal(t, 2, res.code)
	assert.Contains(t, res.err.Error(), "missing required subcommand")
}

func TestCompare_Formats(t *testing.T) {
	dir := isolate(t)
	oldPath, newPath := helloFiles(t, dir)

	t.Run("default is uncolored when not a terminal", func(t *testing.T) {
		res := run(t, dir, "", "compare", oldPath, newPath)
		require.NoError(t, res.err)
		assert.Equal(t, "- hello world\n+ hello there\n  foo\n", res.stdout)
	})

	t.Run("plain with summary", func(t *testing.T) {
		res := run(t, dir, "", "compare", "-f", "plain", "-s", oldPath, newPath)
		require.NoError(t, res.err)
		assert.Equal(t, "- hello world\n+ hello there\n  foo\n\nOriginal: 2 lines | Modified: 2 lines | Same: 1 | Added: 1 | Removed: 1 | Changed pairs: 1\n", res.stdout)
	})

	t.Run("pretty forced color", func(t *testing.T) {
		res := run(t, dir, "", "compare", "--format=pretty", "--color", "always", oldPath, newPath)
		require.NoError(t, res.err)
		assert.True(t, strings.HasPrefix(res.stdout, "\x1b[1;36m"+oldPath+" -> "+newPath+":\x1b[0m\n"))
		assert.Contains(t, res.stdout, "\x1b[48;5;217mworld")
	})

	t.Run("side", func(t *testing.T) {
		res := run(t, dir, "", "compare", "-f", "side", "-w", "23", oldPath, newPath)
		require.NoError(t, res.err)
		lines := strings.Split(strings.TrimSuffix(res.stdout, "\n"), "\n")
		require.Len(t, lines, 2)
		assert.Equal(t, "hello wor… | hello the…", lines[0])
	})

	t.Run("json", func(t *testing.T) {
		res := run(t, dir, "", "compare", "-f", "json", oldPath, newPath)
		require.NoError(t, res.err)
		var report struct {
			Summary struct {
				ChangedPairs int `json:"changed_pairs"`
			} `json:"summary"`
			Rows []struct {
				Kind string `json:"kind"`
			} `json:"rows"`
		}
		require.NoError(t, json.Unmarshal([]byte(res.stdout), &report))
		assert.Equal(t, 1, report.Summary.ChangedPairs)
		require.Len(t, report.Rows, 2)
		assert.Equal(t, "modified", report.Rows[0].Kind)
	})

	t.Run("html", func(t *testing.T) {
		res := run(t, dir, "", "compare", "-f", "html", "--minify", oldPath, newPath)
		require.NoError(t, res.err)
		assert.Contains(t, strings.ToLower(res.stdout), "<!doctype html>")
		assert.Contains(t, res.stdout, "diff-word-added")
	})
}

func TestCompare_Stdin(t *testing.T) {
	dir := isolate(t)
	_, newPath := helloFiles(t, dir)

	res := run(t, dir, "hello world\nfoo", "compare", "-f", "plain", "-", newPath)
	require.NoError(t, res.err)
	assert.Equal(t, "- hello world\n+ hello there\n  foo\n", res.stdout)

	res = run(t, dir, "x", "compare", "-", "-")
	assert.Equal(t, 2, res.code)
	assert.Contains(t, res.stderr, "only one of the inputs can be read from stdin")
}

func TestCompare_IdenticalExitsZero(t *testing.T) {
	dir := isolate(t)
	p := writeFile(t, dir, "same.txt", "a\nb")

	res := run(t, dir, "", "compare", "-f", "plain", "-C", "1", p, p)
	require.NoError(t, res.err)
	assert.Equal(t, 0, res.code)
	assert.Equal(t, "", res.stdout)
}

func TestCompare_InputErrors(t *testing.T) {
	dir := isolate(t)
	oldPath, newPath := helloFiles(t, dir)
	binPath := writeFile(t, dir, "bin.dat", "a\x00b")
	longOld := writeFile(t, dir, "long_old.txt", strings.Repeat("a ", 2500))
	longNew := writeFile(t, dir, "long_new.txt", strings.Repeat("b ", 2500))

	tests := []struct {
		name string
		args []string
		env  map[string]string
		code int
		msg  string
	}{
		{name: "missing file", args: []string{"compare", filepath.Join(dir, "nope.txt"), newPath}, code: 1, msg: "read "},
		{name: "binary", args: []string{"compare", binPath, newPath}, code: 1, msg: "binary input is not supported"},
		{name: "too large", args: []string{"compare", oldPath, newPath}, env: map[string]string{"LINEDIFF_MAXCELLS": "8"}, code: 1, msg: "inputs too large: 2 x 2 lines exceeds maxcells (8)"},
		{name: "long modified line", args: []string{"compare", longOld, longNew}, env: map[string]string{"LINEDIFF_MAXCELLS": "100"}, code: 1, msg: "line 1 too large: 5,001 x 5,001 words exceeds maxcells (100)"},
		{name: "bad format flag", args: []string{"compare", "-f", "xml", oldPath, newPath}, code: 2, msg: "invalid value for -f/--format"},
		{name: "wrong arg count", args: []string{"compare", oldPath}, code: 2, msg: "expected 2 args, got 1"},
		{name: "bad config", args: []string{"compare", oldPath, newPath}, env: map[string]string{"LINEDIFF_FORMAT": "xml"}, code: 1, msg: "invalid configuration: format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			res := run(t, dir, "", tt.args...)
			assert.Equal(t, tt.code, res.code)
			require.Error(t, res.err)
			assert.Contains(t, res.err.Error(), tt.msg)
			assert.Empty(t, res.stdout)
		})
	}
}

func TestCompare_ConfigAndFlagPrecedence(t *testing.T) {
	dir := isolate(t)
	oldPath := writeFile(t, dir, "old.txt", "a\nb\nc\nd\ne\nf\ng")
	newPath := writeFile(t, dir, "new.txt", "a\nb\nc\nX\ne\nf\ng")
	writeFile(t, dir, ".linediff/config.yaml", "format: plain\ncontext: 1\n")

	res := run(t, dir, "", "compare", oldPath, newPath)
	require.NoError(t, res.err)
	assert.Equal(t, "  c\n- d\n+ X\n  e\n", res.stdout)

	t.Setenv("LINEDIFF_CONTEXT", "0")
	res = run(t, dir, "", "compare", oldPath, newPath)
	require.NoError(t, res.err)
	assert.Equal(t, "- d\n+ X\n", res.stdout)

	res = run(t, dir, "", "compare", "-C", "-1", oldPath, newPath)
	require.NoError(t, res.err)
	assert.Equal(t, "  a\n  b\n  c\n- d\n+ X\n  e\n  f\n  g\n", res.stdout)
}

func TestWords(t *testing.T) {
	dir := isolate(t)
	res := run(t, dir, "", "words", "hello world", "hello there")
	require.NoError(t, res.err)
	assert.Equal(t, "= \"hello\"\n= \" \"\n+ \"there\"\n- \"world\"\n", res.stdout)

	res = run(t, dir, "", "words", " x", "x ")
	require.NoError(t, res.err)
	assert.Equal(t, "+ \"x\"\n+ \" \"\n- \" \"\n- \"x\"\n", res.stdout)

	res = run(t, dir, "", "words", "", "")
	require.NoError(t, res.err)
	assert.Equal(t, "", res.stdout)
}

func TestConfigCommand(t *testing.T) {
	dir := isolate(t)
	cfgPath := writeFile(t, dir, ".linediff/config.json", `{"format": "side", "width": 80}`)
	t.Setenv("LINEDIFF_COLOR", "never")

	res := run(t, dir, "", "config")
	require.NoError(t, res.err)
	var cfg Config
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &cfg))
	assert.Equal(t, Config{Format: "side", Color: "never", Context: -1, Width: 80, MaxCells: 50_000_000}, cfg)

	res = run(t, dir, "", "config", "--origins")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "format=side ("+cfgPath+")\n")
	assert.Contains(t, res.stdout, "color=never (env)\n")
	assert.Contains(t, res.stdout, "context=-1 (defaults)\n")
}

func TestConfigFromHome(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("home config lives under AppData on windows")
	}
	dir := isolate(t)
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	writeFile(t, home, ".linediff/config.yaml", "summary: true\nformat: json\n")
	writeFile(t, dir, ".linediff/config.yaml", "format: plain\n")

	res := run(t, dir, "", "config")
	require.NoError(t, res.err)
	var cfg Config
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &cfg))
	assert.True(t, cfg.Summary)
	assert.Equal(t, "plain", cfg.Format)
}

func TestVersion(t *testing.T) {
	dir := isolate(t)
	res := run(t, dir, "", "version")
	require.NoError(t, res.err)
	assert.Equal(t, "linediff "+Version+"\n", res.stdout)
}

// syncBuffer is a bytes.Buffer safe for the watch goroutine and the test to share.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestWatch(t *testing.T) {
	dir := isolate(t)
	oldPath, newPath := helloFiles(t, dir)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var out, errOut syncBuffer
	type ret struct {
		code int
		err  error
	}
	done := make(chan ret, 1)
	go func() {
		code, err := Run([]string{"linediff", "watch", "-f", "plain", "--debounce", "20ms", oldPath, newPath}, &RunOptions{
			In: strings.NewReader(""), Out: &out, Err: &errOut, Dir: dir, Context: ctx,
		})
		done <- ret{code, err}
	}()

	first := "- hello world\n+ hello there\n  foo\n"
	require.Eventually(t, func() bool { return out.String() == first }, 5*time.Second, 10*time.Millisecond)

	require.NoError(t, os.WriteFile(newPath, []byte("hello world\nfoo"), 0o644))
	require.Eventually(t, func() bool {
		return strings.HasSuffix(out.String(), "  hello world\n  foo\n")
	}, 5*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case r := <-done:
		assert.Equal(t, 0, r.code)
		assert.NoError(t, r.err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop")
	}
	assert.Empty(t, errOut.String())
}

func TestWatchRejectsStdin(t *testing.T) {
	dir := isolate(t)
	_, newPath := helloFiles(t, dir)
	res := run(t, dir, "", "watch", "-", newPath)
	assert.Equal(t, 2, res.code)
	assert.Contains(t, res.stderr, "watch needs files, not stdin")
}

func TestReadFilesSettled(t *testing.T) {
	dir := t.TempDir()
	oldPath := writeFile(t, dir, "old.txt", "a")
	newPath := filepath.Join(dir, "new.txt")

	go func() {
		time.Sleep(30 * time.Millisecond)
		_ = os.WriteFile(newPath, []byte("b"), 0o644)
	}()
	oldText, newText, err := readFilesSettled(context.Background(), oldPath, newPath)
	require.NoError(t, err)
	assert.Equal(t, "a", oldText)
	assert.Equal(t, "b", newText)

	_, _, err = readFilesSettled(context.Background(), oldPath, filepath.Join(dir, "never.txt"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
