package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/oarkflow/json"

	"github.com/minhtribui153/xlang/pkg/driver"
)

const cliToolVersion = "xlang 1.1.5-alpha"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		return runREPL(stdout, stderr)
	}

	switch args[0] {
	case "--help", "-h", "help":
		printUsage(stdout)
		return 0
	case "--version", "-V", "version":
		fmt.Fprintln(stdout, cliToolVersion)
		return 0
	case "repl":
		return runREPL(stdout, stderr)
	case "run":
		return runEntry(args[1:], stdout, stderr)
	case "tokens":
		return runTokens(args[1:], stdout, stderr)
	case "ast":
		return runAST(args[1:], stdout, stderr)
	default:
		if looksLikePathCandidate(args[0]) {
			return runEntry(args, stdout, stderr)
		}
		fmt.Fprintf(stderr, "Error: Command '%s' not found\n", args[0])
		printUsage(stderr)
		return 1
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintf(w, `Usage:
  xlang                      start the interactive REPL
  xlang repl                 start the interactive REPL
  xlang run [file.x|target]  run a source file or manifest target
  xlang tokens [--json] <file.x>
  xlang ast <file.x>
  xlang version
`)
}

// loadManifestFrom returns the nearest xlang.yml above start, or the default
// manifest when there is none.
func loadManifestFrom(start string) (*driver.Manifest, error) {
	path, err := driver.FindManifest(start)
	if err != nil {
		return nil, err
	}
	if path == "" {
		return driver.DefaultManifest(), nil
	}
	manifest, err := driver.LoadManifest(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load manifest: %w", err)
	}
	return manifest, nil
}

func looksLikePathCandidate(arg string) bool {
	return strings.HasSuffix(arg, driver.SourceExtension) || strings.ContainsRune(arg, filepath.Separator)
}

func newSession(manifest *driver.Manifest, stdout, stderr io.Writer, editor driver.LineEditor) (*driver.Session, error) {
	cfg := driver.Config{
		Manifest: manifest,
		Stdout:   stdout,
		Logger:   driver.NewLogger(manifest, stderr),
		Color:    driver.UseColor(manifest.Color, fileOf(stderr)),
	}
	if editor != nil {
		cfg.Input = editor
	}
	return driver.NewSession(cfg)
}

func fileOf(w io.Writer) *os.File {
	if f, ok := w.(*os.File); ok {
		return f
	}
	return nil
}

// resolveEntry maps `run` arguments to a source path: no argument means the
// manifest's default target, a target name resolves through the manifest,
// anything else is a file path.
func resolveEntry(args []string, manifest *driver.Manifest) (string, error) {
	if len(args) == 0 {
		target, err := manifest.DefaultTarget()
		if err != nil {
			return "", fmt.Errorf("xlang run requires a source file or manifest target: %w", err)
		}
		return manifest.MainPath(target), nil
	}
	if len(args) > 1 {
		return "", fmt.Errorf("unexpected arguments: %s", strings.Join(args[1:], " "))
	}
	if target, ok := manifest.FindTarget(args[0]); ok {
		return manifest.MainPath(target), nil
	}
	return args[0], nil
}

func runEntry(args []string, stdout, stderr io.Writer) int {
	manifest, err := loadManifestFrom(".")
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	entry, err := resolveEntry(args, manifest)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	session, err := newSession(manifest, stdout, stderr, nil)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	defer session.Close()
	if manifest.Path != "" {
		session.Logger().Info().Str("manifest", manifest.Path).Str("entry", entry).Msg("resolved entry from manifest")
	}

	if _, err := session.RunFile(entry); err != nil {
		fmt.Fprint(stderr, session.Render(err))
		return 1
	}
	return 0
}

func readSourceArg(args []string, usage string) (string, string, error) {
	if len(args) != 1 {
		return "", "", fmt.Errorf("usage: %s", usage)
	}
	file, err := driver.ReadSource(args[0])
	if err != nil {
		return "", "", err
	}
	return file.Name, file.Text, nil
}

func runTokens(args []string, stdout, stderr io.Writer) int {
	asJSON := false
	if len(args) > 0 && args[0] == "--json" {
		asJSON = true
		args = args[1:]
	}
	name, text, err := readSourceArg(args, "xlang tokens [--json] <file.x>")
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	session, err := newSession(driver.DefaultManifest(), stdout, stderr, nil)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	defer session.Close()

	tokens, err := session.Tokenize(name, text)
	if err != nil {
		fmt.Fprint(stderr, session.Render(err))
		return 1
	}
	if asJSON {
		return writeJSON(stdout, stderr, tokens)
	}
	for _, tok := range tokens {
		fmt.Fprintln(stdout, tok.String())
	}
	return 0
}

func runAST(args []string, stdout, stderr io.Writer) int {
	name, text, err := readSourceArg(args, "xlang ast <file.x>")
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	session, err := newSession(driver.DefaultManifest(), stdout, stderr, nil)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	defer session.Close()

	program, err := session.Parse(name, text)
	if err != nil {
		fmt.Fprint(stderr, session.Render(err))
		return 1
	}
	return writeJSON(stdout, stderr, program)
}

func writeJSON(stdout, stderr io.Writer, v any) int {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Fprintf(stderr, "Error: encode: %v\n", err)
		return 1
	}
	stdout.Write(data)
	fmt.Fprintln(stdout)
	return 0
}
