package cascade

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// ExpandPath expands a leading "~" to the user's home directory and makes path absolute. "" stays "".
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}

	if path == "~" {
		path = "~/"
	}
	if rest, ok := strings.CutPrefix(path, "~/"); ok {
		path = homeJoin(rest, path)
	} else if rest, ok := strings.CutPrefix(path, `~\`); ok {
		path = homeJoin(rest, path)
	}

	if !filepath.IsAbs(path) {
		if abs, err := filepath.Abs(path); err == nil {
			path = abs
		}
	}
	return path
}

func homeJoin(rest, fallback string) string {
	home, _ := os.UserHomeDir()
	if home == "" {
		return fallback
	}
	return filepath.Join(home, rest)
}

// InUserConfigDirectory returns the absolute path of subPath under the directory that holds per-user config: the home directory, or %USERPROFILE%\AppData\Local on Windows.
func InUserConfigDirectory(subPath string) string {
	if runtime.GOOS == "windows" {
		return filepath.Join(ExpandPath("~/AppData/Local"), subPath)
	}
	return filepath.Join(ExpandPath("~"), subPath)
}
