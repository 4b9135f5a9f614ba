package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/peterh/liner"

	"github.com/minhtribui153/xlang/pkg/driver"
)

// lineEditor adapts liner to driver.LineEditor.
type lineEditor struct {
	state *liner.State
}

func (e lineEditor) Prompt(prompt string) (string, error) {
	line, err := e.state.Prompt(prompt)
	if errors.Is(err, liner.ErrPromptAborted) {
		return "", driver.ErrInterrupted
	}
	return line, err
}

func (e lineEditor) AppendHistory(item string) {
	e.state.AppendHistory(item)
}

func banner(manifest *driver.Manifest) string {
	if !manifest.REPL.Banner {
		return ""
	}
	text := fmt.Sprintf("X Programming Language (%s)\nType ':help' for commands, ':exit' to quit.", cliToolVersion)
	if manifest.Name != "" {
		text += fmt.Sprintf("\nProject: %s %s", manifest.Name, manifest.Version)
	}
	return text
}

func runREPL(stdout, stderr io.Writer) int {
	manifest, err := loadManifestFrom(".")
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	state := liner.NewLiner()
	defer state.Close()
	state.SetCtrlCAborts(true)
	editor := lineEditor{state: state}

	session, err := newSession(manifest, stdout, stderr, editor)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	defer session.Close()
	logger := session.Logger()

	history := driver.NewHistoryStore(driver.ResolveHistoryPath(manifest))
	if _, err := history.Load(state); err != nil {
		logger.Warn().Err(err).Str("path", history.Path()).Msg("could not load history")
	}

	repl := &driver.REPL{
		Session: session,
		Editor:  editor,
		Out:     stdout,
		Prompt:  manifest.REPL.Prompt,
		Banner:  banner(manifest),
	}
	runErr := repl.Run()

	if _, err := history.Save(state); err != nil {
		logger.Warn().Err(err).Str("path", history.Path()).Msg("could not save history")
	}
	if runErr != nil {
		fmt.Fprintf(stderr, "Error: %v\n", runErr)
		return 1
	}
	return 0
}
