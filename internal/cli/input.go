package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"time"

	"github.com/sethvargo/go-retry"

	qcli "github.com/codalotl/linediff/internal/q/cli"
)

// readInputs reads the old and new texts. "-" reads in, and may name at most one side.
func readInputs(in io.Reader, oldPath, newPath string) (string, string, error) {
	if oldPath == "-" && newPath == "-" {
		return "", "", qcli.Usagef("only one of the inputs can be read from stdin")
	}
	oldText, err := readInput(in, oldPath)
	if err != nil {
		return "", "", err
	}
	newText, err := readInput(in, newPath)
	if err != nil {
		return "", "", err
	}
	return oldText, newText, nil
}

func readInput(in io.Reader, path string) (string, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(in)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("read %s: %w", displayName(path), err)
	}
	if bytes.IndexByte(data, 0) >= 0 {
		return "", fmt.Errorf("%s: binary input is not supported", displayName(path))
	}
	return string(data), nil
}

// Editors often save by writing a temp file and renaming it over the original, so a watched file can be missing for a moment.
const (
	missingRetries  = 5
	missingInterval = 20 * time.Millisecond
)

// readFilesSettled is readInputs for two files that may be mid-save: a missing file is re-read a few times before the error is returned.
func readFilesSettled(ctx context.Context, oldPath, newPath string) (string, string, error) {
	var oldText, newText string
	b := retry.WithMaxRetries(missingRetries, retry.NewConstant(missingInterval))
	err := retry.Do(ctx, b, func(ctx context.Context) error {
		var err error
		oldText, newText, err = readInputs(nil, oldPath, newPath)
		if errors.Is(err, fs.ErrNotExist) {
			return retry.RetryableError(err)
		}
		return err
	})
	return oldText, newText, err
}

func displayName(path string) string {
	if path == "-" {
		return "<stdin>"
	}
	return path
}
