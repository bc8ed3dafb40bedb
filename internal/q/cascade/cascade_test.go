package cascade

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testConfig struct {
	Name    string   `yaml:"name"`
	Port    int      `yaml:"port"`
	Debug   bool     `yaml:"debug"`
	Ratio   float64  `yaml:"ratio"`
	Tags    []string `yaml:"tags"`
	Timeout int      `yaml:"timeout"`
	Server  struct {
		Host string `yaml:"host"`
	} `yaml:"server"`
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestPrecedence(t *testing.T) {
	dir := t.TempDir()
	jsonPath := writeFile(t, dir, "config.json", `{"Name": "fromjson", "port": 8080, "debug": true, "tags": ["j1", "j2"], "server": {"host": "json.example"}}`)
	yamlPath := writeFile(t, dir, "config.yaml", "port: 8181\nratio: 2.5\n")

	t.Setenv("TEST_NAME", "fromenv")
	t.Setenv("TEST_DEBUG", "false")
	t.Setenv("TEST_RATIO", "3.25")

	var cfg testConfig
	l := New().
		WithDefaults(map[string]any{"name": "default", "port": 80, "timeout": 30, "server.host": "localhost"}).
		WithFile(jsonPath).
		WithFile(yamlPath).
		WithEnv(map[string]string{"name": "TEST_NAME", "debug": "TEST_DEBUG", "ratio": "TEST_RATIO", "port": "TEST_UNSET_PORT"})
	require.NoError(t, l.StrictlyLoad(&cfg))

	assert.Equal(t, "fromenv", cfg.Name)
	assert.Equal(t, 8181, cfg.Port)
	assert.False(t, cfg.Debug)
	assert.InDelta(t, 3.25, cfg.Ratio, 1e-9)
	assert.Equal(t, []string{"j1", "j2"}, cfg.Tags)
	assert.Equal(t, 30, cfg.Timeout)
	assert.Equal(t, "json.example", cfg.Server.Host)

	assert.Equal(t, "env", l.Origin("name"))
	assert.Equal(t, yamlPath, l.Origin("port"))
	assert.Equal(t, jsonPath, l.Origin("Server.Host"))
	assert.Equal(t, "defaults", l.Origin("timeout"))
	assert.Equal(t, "", l.Origin("missing"))
}

func TestEnvValueTypes(t *testing.T) {
	t.Setenv("TEST_NAME", "123")
	t.Setenv("TEST_PORT", "9090")

	var cfg testConfig
	err := New().WithEnv(map[string]string{"name": "TEST_NAME", "port": "TEST_PORT"}).StrictlyLoad(&cfg)
	require.NoError(t, err)
	assert.Equal(t, "123", cfg.Name)
	assert.Equal(t, 9090, cfg.Port)
}

func TestEnvEmptyValueIgnored(t *testing.T) {
	t.Setenv("TEST_NAME", "")

	cfg := testConfig{Name: "preset"}
	err := New().WithEnv(map[string]string{"name": "TEST_NAME"}).StrictlyLoad(&cfg)
	require.NoError(t, err)
	assert.Equal(t, "preset", cfg.Name)
}

func TestBadValueNamesSource(t *testing.T) {
	t.Setenv("TEST_PORT", "eighty")

	var cfg testConfig
	err := New().WithEnv(map[string]string{"port": "TEST_PORT"}).StrictlyLoad(&cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "env:")
}

func TestBadFile(t *testing.T) {
	path := writeFile(t, t.TempDir(), "config.json", `{"port": `)

	var cfg testConfig
	err := New().WithFile(path).StrictlyLoad(&cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), path)
}

func TestMissingAndEmptyFilesIgnored(t *testing.T) {
	dir := t.TempDir()
	empty := writeFile(t, dir, "empty.yaml", "  \n")

	var cfg testConfig
	err := New().
		WithDefaults(map[string]any{"port": 1}).
		WithFile(filepath.Join(dir, "nope.json")).
		WithFile(empty).
		StrictlyLoad(&cfg)
	require.NoError(t, err)
	assert.Equal(t, 1, cfg.Port)
}

func TestRequired(t *testing.T) {
	type cfgT struct {
		Host string `yaml:"host" cascade:",required"`
		Port int    `yaml:"port"`
	}

	var cfg cfgT
	err := New().WithDefaults(map[string]any{"port": 1}).StrictlyLoad(&cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"host"`)

	err = New().WithDefaults(map[string]any{"HOST": "h"}).StrictlyLoad(&cfg)
	require.NoError(t, err)
	assert.Equal(t, "h", cfg.Host)
}

func TestDestValidation(t *testing.T) {
	var cfg testConfig
	assert.Error(t, New().StrictlyLoad(nil))
	assert.Error(t, New().StrictlyLoad(cfg))
	n := 1
	assert.Error(t, New().StrictlyLoad(&n))
}

func TestWithNearestFile(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, ".app/config.json", `{"port": 1}`)
	mid := filepath.Join(root, "a")
	writeFile(t, mid, ".app/config.yaml", "port: 2\n")
	writeFile(t, mid, ".app/config.json", "   ")
	deep := filepath.Join(mid, "b", "c")
	require.NoError(t, os.MkdirAll(deep, 0o755))

	var cfg testConfig
	require.NoError(t, New().WithNearestFile(deep, ".app/config.json", ".app/config.yaml").StrictlyLoad(&cfg))
	assert.Equal(t, 2, cfg.Port)

	cfg = testConfig{}
	require.NoError(t, New().WithNearestFile(root, ".app/config.json", ".app/config.yaml").StrictlyLoad(&cfg))
	assert.Equal(t, 1, cfg.Port)

	assert.Panics(t, func() { New().WithNearestFile(root, filepath.Join(root, "x.json")) })
}

func TestExpandPath(t *testing.T) {
	home := t.TempDir()
	if runtime.GOOS == "windows" {
		t.Setenv("USERPROFILE", home)
	} else {
		t.Setenv("HOME", home)
	}

	assert.Equal(t, "", ExpandPath(""))
	assert.Equal(t, home, ExpandPath("~"))
	assert.Equal(t, filepath.Join(home, "x", "y.json"), ExpandPath("~/x/y.json"))

	wd, err := os.Getwd()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(wd, "rel.json"), ExpandPath("rel.json"))

	if runtime.GOOS != "windows" {
		assert.Equal(t, filepath.Join(home, ".linediff", "config.json"), InUserConfigDirectory(".linediff/config.json"))
	}
}
