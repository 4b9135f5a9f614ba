package driver

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeManifest(t *testing.T, dir, contents string) string {
	t.Helper()
	path := filepath.Join(dir, ManifestFileName)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoadManifest(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, `
name: demo
version: 0.1.0
authors: [Ada, Grace]
targets:
  main:
    main: src/main.x
  tools: scripts/tools.x
repl:
  prompt: "x> "
  banner: false
logging:
  level: debug
color: never
`)

	manifest, err := LoadManifest(path)
	require.NoError(t, err)
	assert.Equal(t, "demo", manifest.Name)
	assert.Equal(t, []string{"Ada", "Grace"}, manifest.Authors)
	assert.Equal(t, []string{"main", "tools"}, manifest.TargetOrder)
	assert.Equal(t, "x> ", manifest.REPL.Prompt)
	assert.False(t, manifest.REPL.Banner)
	assert.Equal(t, DefaultHistory, manifest.REPL.History)
	assert.Equal(t, ColorNever, manifest.Color)
	assert.Equal(t, "debug", manifest.Logging.Level)

	target, err := manifest.DefaultTarget()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "src", "main.x"), manifest.MainPath(target))

	tools, ok := manifest.FindTarget("TOOLS")
	require.True(t, ok)
	assert.Equal(t, "scripts/tools.x", tools.Main)
	assert.Equal(t, filepath.Join(dir, DefaultHistory), manifest.HistoryPath())
}

func TestLoadManifestValidation(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, `
authors: ["", Ada]
targets:
  main:
    main: main.py
  empty: {}
logging:
  level: loud
color: sometimes
`)

	_, err := LoadManifest(path)
	var verr *ValidationError
	require.True(t, errors.As(err, &verr), "expected validation error, got %v", err)
	assert.Equal(t, []string{
		"name must be provided",
		"authors[0] must be a non-empty string",
		`target "main" main "main.py" must have extension .x`,
		`target "empty" requires a main entrypoint`,
		`color must be one of auto, always, never (found "sometimes")`,
		`logging.level "loud" is not a known level`,
	}, verr.Issues)
}

func TestLoadManifestRejectsUnknownFields(t *testing.T) {
	path := writeManifest(t, t.TempDir(), "name: demo\nplugins: []\n")
	_, err := LoadManifest(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "plugins")
}

func TestLoadManifestEmpty(t *testing.T) {
	path := writeManifest(t, t.TempDir(), "")
	_, err := LoadManifest(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "is empty")
}

func TestFindManifestWalksUp(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, "name: demo\n")
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	found, err := FindManifest(nested)
	require.NoError(t, err)
	want, _ := filepath.Abs(filepath.Join(root, ManifestFileName))
	assert.Equal(t, want, found)
}

func TestDefaultManifestHasNoTargets(t *testing.T) {
	manifest := DefaultManifest()
	_, err := manifest.DefaultTarget()
	assert.ErrorIs(t, err, ErrNoTarget)
	assert.Equal(t, DefaultPrompt, manifest.REPL.Prompt)
	assert.True(t, manifest.REPL.Banner)
}

func TestHistoryPathDisabled(t *testing.T) {
	path := writeManifest(t, t.TempDir(), "name: demo\nrepl:\n  history: \"\"\n")
	manifest, err := LoadManifest(path)
	require.NoError(t, err)
	assert.Equal(t, "", manifest.HistoryPath())

	t.Setenv(EnvHistory, "/tmp/elsewhere")
	assert.Equal(t, "/tmp/elsewhere", ResolveHistoryPath(manifest))
}

func TestParseLevel(t *testing.T) {
	for _, name := range []string{"trace", "DEBUG", "info", "warning", "error"} {
		_, ok := ParseLevel(name)
		assert.True(t, ok, name)
	}
	_, ok := ParseLevel("verbose")
	assert.False(t, ok)
}
