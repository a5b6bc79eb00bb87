package driver

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/google/uuid"

	"github.com/kievzenit/snuplc/internal/ast"
	"github.com/kievzenit/snuplc/internal/config"
	"github.com/kievzenit/snuplc/internal/lexer"
	"github.com/kievzenit/snuplc/internal/parser"
	"github.com/kievzenit/snuplc/internal/target"
	"github.com/kievzenit/snuplc/internal/types"
)

// Environment is one compilation session: a target, the type manager all
// modules of the session intern their types in, and a logger tagged with the
// session's run id.
type Environment struct {
	Target target.Target
	Types  *types.Manager
	Logger *slog.Logger
	RunID  string

	ImplicitDeclarations bool
}

func NewEnvironment(cfg *config.Config, logger *slog.Logger) (*Environment, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	t, err := target.Lookup(cfg.Target)
	if err != nil {
		return nil, err
	}

	tm, err := types.NewManager(t.WordSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create type manager: %w", err)
	}

	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	runID := uuid.NewString()

	env := &Environment{
		Target: t,
		Types:  tm,
		Logger: logger.With(slog.String("component", "driver"), slog.String("run", runID)),
		RunID:  runID,

		ImplicitDeclarations: cfg.ImplicitDeclarations,
	}
	env.Logger.Debug("environment created", slog.String("target", t.Key))

	return env, nil
}

func (e *Environment) newParser(scanner lexer.TokenScanner, name string) *parser.Parser {
	logger := e.Logger.With(slog.String("component", "parser"), slog.String("file", name))

	return parser.NewParser(scanner, e.Types,
		parser.WithLogger(logger),
		parser.WithImplicitDeclarations(e.ImplicitDeclarations),
	)
}

// ParseSource parses a module read from r. name is only used for logging.
// Syntax errors are returned as *parser.ParseError.
func (e *Environment) ParseSource(name string, r io.Reader) (*ast.Module, error) {
	module, err := e.newParser(lexer.NewScanner(r), name).Parse()
	e.logResult(name, module, err)

	return module, err
}

func (e *Environment) ParseFile(path string) (*ast.Module, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open source: %w", err)
	}
	defer f.Close()

	return e.ParseSource(path, f)
}

// ParseTokens parses an already scanned token stream.
func (e *Environment) ParseTokens(name string, tokens []lexer.Token) (*ast.Module, error) {
	module, err := e.newParser(lexer.NewTokenScanner(tokens), name).Parse()
	e.logResult(name, module, err)

	return module, err
}

// ParseStatements parses a bare statement sequence terminated by ".".
func (e *Environment) ParseStatements(name string, r io.Reader) (*ast.Module, error) {
	module, err := e.newParser(lexer.NewScanner(r), name).ParseStatements()
	e.logResult(name, module, err)

	return module, err
}

// ScanFile returns every token of a file up to and including EOF or the
// I/O error token.
func (e *Environment) ScanFile(path string) ([]lexer.Token, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open source: %w", err)
	}
	defer f.Close()

	tokens := lexer.NewScanner(f).Tokenize()
	e.Logger.Debug("file scanned", slog.String("file", path), slog.Int("tokens", len(tokens)))

	return tokens, nil
}

func (e *Environment) logResult(name string, module *ast.Module, err error) {
	if err != nil {
		e.Logger.Info("parse failed", slog.String("file", name), slog.String("error", err.Error()))
		return
	}

	e.Logger.Info("parse succeeded",
		slog.String("file", name),
		slog.String("module", module.Name),
		slog.Int("scopes", len(module.Symtab.Scopes())),
	)
}
