package driver

import (
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"

	"github.com/minhtribui153/xlang/pkg/runtime"
)

// ReplFileName labels input typed at the prompt.
const ReplFileName = "<stdin>"

// ErrInterrupted is returned by a LineEditor when the user aborts the
// current line; the loop continues with a fresh prompt.
var ErrInterrupted = errors.New("interrupted")

// LineEditor reads lines and records history. *liner.State satisfies it.
type LineEditor interface {
	Prompt(prompt string) (string, error)
	AppendHistory(item string)
}

const replHelp = `Commands:
  :help    show this message
  :vars    list global bindings
  :exit    leave the REPL
`

// REPL is the interactive loop. Each line runs against the session's
// persistent global scope.
type REPL struct {
	Session *Session
	Editor  LineEditor
	Out     io.Writer
	Prompt  string
	Banner  string
}

// Run reads lines until EOF or :exit.
func (r *REPL) Run() error {
	prompt := r.Prompt
	if prompt == "" {
		prompt = DefaultPrompt
	}
	if r.Banner != "" {
		fmt.Fprintln(r.Out, r.Banner)
	}
	for {
		line, err := r.Editor.Prompt(prompt)
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(r.Out)
			return nil
		}
		if errors.Is(err, ErrInterrupted) {
			continue
		}
		if err != nil {
			return errors.Wrap(err, "repl: read line")
		}
		if exit := r.Handle(line); exit {
			return nil
		}
	}
}

// Handle processes one input line and reports whether the loop should end.
func (r *REPL) Handle(line string) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return false
	}
	r.Editor.AppendHistory(line)
	if strings.HasPrefix(trimmed, ":") {
		return r.command(trimmed)
	}

	tokens, err := r.Session.Tokenize(ReplFileName, line)
	if err != nil {
		fmt.Fprint(r.Out, r.Session.Render(err))
		return false
	}
	if len(tokens) < 2 {
		return false
	}
	value, err := r.Session.Execute(ReplFileName, line)
	if err != nil {
		fmt.Fprint(r.Out, r.Session.Render(err))
		return false
	}
	fmt.Fprintln(r.Out, FormatResult(value))
	return false
}

// FormatResult shows a single-statement program as its one value and
// anything else as the whole list.
func FormatResult(value runtime.Value) string {
	if list, ok := value.(*runtime.ListValue); ok && len(list.Elements) == 1 {
		return list.Elements[0].String()
	}
	return value.String()
}

func (r *REPL) command(line string) bool {
	fields := strings.Fields(line)
	switch fields[0] {
	case ":":
		fmt.Fprintln(r.Out, "CommandError: Please enter a command")
	case ":help":
		fmt.Fprint(r.Out, replHelp)
	case ":exit", ":quit":
		return true
	case ":vars":
		global := r.Session.Interpreter().Global()
		for _, name := range global.Keys() {
			v, _ := global.Get(name)
			fmt.Fprintf(r.Out, "%s = %s\n", name, v)
		}
	default:
		fmt.Fprintf(r.Out, "CommandError: No such command '%s'\n", strings.TrimPrefix(fields[0], ":"))
	}
	return false
}
