package driver

import (
	"io"
	"os"
	"time"

	"github.com/oarkflow/log"
	"github.com/oarkflow/xid"
	"github.com/pkg/errors"

	"github.com/minhtribui153/xlang/pkg/ast"
	"github.com/minhtribui153/xlang/pkg/diag"
	"github.com/minhtribui153/xlang/pkg/interpreter"
	"github.com/minhtribui153/xlang/pkg/lexer"
	"github.com/minhtribui153/xlang/pkg/parser"
	"github.com/minhtribui153/xlang/pkg/runtime"
	"github.com/minhtribui153/xlang/pkg/source"
)

// Config assembles a Session.
type Config struct {
	Manifest  *Manifest
	Stdout    io.Writer
	Input     interpreter.LineReader
	Logger    *log.Logger
	Color     bool
	CacheSize int
}

// Session owns one interpreter and its persistent global scope.
type Session struct {
	ID       xid.ID
	Manifest *Manifest

	interp   *interpreter.Interpreter
	cache    *ProgramCache
	logger   *log.Logger
	renderer diag.Renderer
}

// NewSession builds a session from cfg, filling defaults for unset fields.
func NewSession(cfg Config) (*Session, error) {
	if cfg.Manifest == nil {
		cfg.Manifest = DefaultManifest()
	}
	if cfg.Stdout == nil {
		cfg.Stdout = os.Stdout
	}
	if cfg.Logger == nil {
		cfg.Logger = NewLogger(cfg.Manifest, os.Stderr)
	}
	cache, err := NewProgramCache(cfg.CacheSize)
	if err != nil {
		return nil, err
	}
	opts := []interpreter.Option{interpreter.WithOutput(cfg.Stdout)}
	if cfg.Input != nil {
		opts = append(opts, interpreter.WithInput(cfg.Input))
	}
	s := &Session{
		ID:       xid.New(),
		Manifest: cfg.Manifest,
		interp:   interpreter.New(opts...),
		cache:    cache,
		logger:   cfg.Logger,
		renderer: diag.Renderer{Color: cfg.Color},
	}
	s.logger.Debug().Str("session", s.ID.String()).Str("project", cfg.Manifest.Name).Msg("session started")
	return s, nil
}

// Interpreter exposes the session's interpreter.
func (s *Session) Interpreter() *interpreter.Interpreter {
	return s.interp
}

// Logger exposes the session logger.
func (s *Session) Logger() *log.Logger {
	return s.logger
}

// Tokenize lexes text as the file name.
func (s *Session) Tokenize(name, text string) ([]lexer.Token, error) {
	tokens, err := lexer.TokenizeFile(source.NewFile(name, text))
	if err != nil {
		return nil, err
	}
	return tokens, nil
}

// Parse lexes and parses text, consulting the program cache first.
func (s *Session) Parse(name, text string) (*ast.Block, error) {
	if program, ok := s.cache.Get(name, text); ok {
		s.logger.Debug().Str("session", s.ID.String()).Str("file", name).Msg("program cache hit")
		return program, nil
	}
	started := time.Now()
	tokens, err := s.Tokenize(name, text)
	if err != nil {
		return nil, err
	}
	lexed := time.Now()
	program, perr := parser.New(tokens).ParseProgram()
	if perr != nil {
		return nil, perr
	}
	s.logger.Debug().
		Str("session", s.ID.String()).
		Str("file", name).
		Int("tokens", len(tokens)).
		Dur("lex", lexed.Sub(started)).
		Dur("parse", time.Since(lexed)).
		Msg("parsed program")
	s.cache.Put(name, text, program)
	return program, nil
}

// Execute parses and evaluates text against the session's global scope.
// Language errors are returned as *diag.Error.
func (s *Session) Execute(name, text string) (runtime.Value, error) {
	program, err := s.Parse(name, text)
	if err != nil {
		return nil, err
	}
	started := time.Now()
	value, rerr := s.interp.EvaluateProgram(program)
	s.logger.Debug().
		Str("session", s.ID.String()).
		Str("file", name).
		Dur("evaluate", time.Since(started)).
		Bool("failed", rerr != nil).
		Msg("evaluated program")
	if rerr != nil {
		return nil, rerr
	}
	return value, nil
}

// RunFile reads and executes a source file.
func (s *Session) RunFile(path string) (runtime.Value, error) {
	file, err := ReadSource(path)
	if err != nil {
		return nil, err
	}
	return s.Execute(file.Name, file.Text)
}

// Render formats err for the terminal. Language errors get a traceback and
// source excerpt; anything else is its message.
func (s *Session) Render(err error) string {
	var d *diag.Error
	if errors.As(err, &d) {
		return s.renderer.Render(d)
	}
	return err.Error() + "\n"
}

// Close releases session resources.
func (s *Session) Close() {
	s.cache.Close()
}
