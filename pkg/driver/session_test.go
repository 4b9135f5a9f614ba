package driver

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minhtribui153/xlang/pkg/diag"
)

func newTestSession(t *testing.T, out io.Writer) *Session {
	t.Helper()
	session, err := NewSession(Config{Stdout: out, Logger: NewLogger(nil, io.Discard)})
	require.NoError(t, err)
	t.Cleanup(session.Close)
	return session
}

func TestSessionExecutePersistsGlobals(t *testing.T) {
	var out bytes.Buffer
	session := newTestSession(t, &out)

	_, err := session.Execute(ReplFileName, "assign mut total = 1")
	require.NoError(t, err)
	value, err := session.Execute(ReplFileName, "set total = total + 41; printLn(total)")
	require.NoError(t, err)
	assert.Equal(t, "[42, nil]", value.String())
	assert.Equal(t, "42\n", out.String())
}

func TestSessionParseUsesCache(t *testing.T) {
	session := newTestSession(t, io.Discard)
	first, err := session.Parse("a.x", "1 + 2")
	require.NoError(t, err)
	second, err := session.Parse("a.x", "1 + 2")
	require.NoError(t, err)
	assert.Same(t, first, second)

	other, err := session.Parse("a.x", "1 + 3")
	require.NoError(t, err)
	assert.NotSame(t, first, other)
}

func TestSessionLanguageErrors(t *testing.T) {
	session := newTestSession(t, io.Discard)

	_, err := session.Execute(ReplFileName, "1 / 0")
	var d *diag.Error
	require.True(t, errors.As(err, &d))
	assert.Equal(t, diag.ZeroDivision, d.Kind)
	rendered := session.Render(err)
	assert.True(t, strings.HasPrefix(rendered, "<stdin>:1:5: ZeroDivisionError: Division by zero\n"), rendered)

	_, err = session.Execute(ReplFileName, "1 $ 2")
	require.True(t, errors.As(err, &d))
	assert.Equal(t, diag.IllegalCharacter, d.Kind)

	_, err = session.Execute(ReplFileName, "1 2")
	require.True(t, errors.As(err, &d))
	assert.Equal(t, diag.InvalidSyntax, d.Kind)
}

func TestSessionRenderHostError(t *testing.T) {
	session := newTestSession(t, io.Discard)
	assert.Equal(t, "boom\n", session.Render(errors.New("boom")))
}

func TestRunFile(t *testing.T) {
	dir := t.TempDir()
	script := filepath.Join(dir, "hello.x")
	require.NoError(t, os.WriteFile(script, []byte("printLn(\"hello\")\n"), 0o644))

	var out bytes.Buffer
	session := newTestSession(t, &out)
	_, err := session.RunFile(script)
	require.NoError(t, err)
	assert.Equal(t, "hello\n", out.String())
}

func TestReadSourceChecks(t *testing.T) {
	dir := t.TempDir()
	_, err := ReadSource(dir)
	assert.ErrorIs(t, err, ErrNotAFile)

	txt := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(txt, []byte("1"), 0o644))
	_, err = ReadSource(txt)
	assert.ErrorIs(t, err, ErrInvalidFormat)

	_, err = ReadSource(filepath.Join(dir, "missing.x"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestUseColor(t *testing.T) {
	assert.True(t, UseColor(ColorAlways, nil))
	assert.False(t, UseColor(ColorNever, nil))
	assert.False(t, UseColor(ColorAuto, nil))
	t.Setenv("NO_COLOR", "1")
	assert.False(t, UseColor(ColorAlways, nil))
}
