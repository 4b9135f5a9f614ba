package interpreter

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/minhtribui153/xlang/pkg/runtime"
)

// LineReader supplies input() with one line of user text.
type LineReader interface {
	Prompt(prompt string) (string, error)
}

// StdinReader is the LineReader used when none is configured.
type StdinReader struct {
	in  *bufio.Reader
	out io.Writer
}

func NewStdinReader(in io.Reader, out io.Writer) *StdinReader {
	return &StdinReader{in: bufio.NewReader(in), out: out}
}

func (r *StdinReader) Prompt(prompt string) (string, error) {
	if _, err := io.WriteString(r.out, prompt); err != nil {
		return "", err
	}
	line, err := r.in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (i *Interpreter) installGlobals() {
	runtime.RegisterBuiltinTypes(i.global)
	i.global.Set("nil", runtime.NewNull())

	builtins := []*runtime.BuiltinFunction{
		runtime.NewBuiltin("printLn", []runtime.Param{{Name: "value", Type: runtime.ObjectType}}, i.printLn),
		runtime.NewBuiltin("input", []runtime.Param{{Name: "prompt", Type: "string"}}, i.input),
		runtime.NewBuiltin("parseString", []runtime.Param{{Name: "value", Type: runtime.ObjectType}}, parseString),
	}
	for _, fn := range builtins {
		fn.Immutable = true
		i.global.SetFunction(fn.Name, fn)
	}
}

func (i *Interpreter) printLn(args []runtime.Value) (runtime.Value, error) {
	if _, err := fmt.Fprintln(i.out, runtime.Raw(args[0])); err != nil {
		return nil, err
	}
	return runtime.NewNull(), nil
}

func (i *Interpreter) input(args []runtime.Value) (runtime.Value, error) {
	line, err := i.in.Prompt(runtime.Raw(args[0]))
	if err != nil {
		return nil, fmt.Errorf("Input closed: %v", err)
	}
	return runtime.NewString(line), nil
}

func parseString(args []runtime.Value) (runtime.Value, error) {
	return runtime.NewString(runtime.Raw(args[0])), nil
}
