package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"github.com/kievzenit/snuplc/internal/ast"
	"github.com/kievzenit/snuplc/internal/parser"
)

const (
	replPrompt  = "snuplc> "
	historyFile = ".snuplc_history"
)

const replHelp = `Enter a statement sequence, e.g. "i := 1; WriteInt(i * 2)". A missing
final "." is added. Unknown variables are declared as integers.

  :types   print the type registry
  :help    print this help
  :quit    leave the repl`

// replSession evaluates one input line at a time. Every line is parsed on
// its own.
type replSession struct {
	a       *app
	dumpAST bool
}

// eval returns false when the session should end.
func (s *replSession) eval(line string) bool {
	src := strings.TrimSpace(line)

	switch src {
	case "":
		return true
	case ":quit", ":q":
		return false
	case ":help":
		s.a.printer.text(replHelp)
		return true
	case ":types":
		s.a.printer.text(s.a.env.Types.String())
		return true
	}
	if strings.HasPrefix(src, ":") {
		s.a.printer.print(s.a.printer.failure, "unknown command %s, try :help", src)
		return true
	}

	input := src
	if !strings.HasSuffix(src, ".") {
		// on its own line so a trailing comment cannot swallow it
		src += "\n."
	}

	module, err := s.a.env.ParseStatements("repl", strings.NewReader(src))

	var parseErr *parser.ParseError
	switch {
	case errors.As(err, &parseErr):
		col := parseErr.Token.Column
		if parseErr.Token.Line > 1 {
			col = len(input) + 1
		}
		s.a.printer.caret(input, col)
		s.a.printer.text(s.a.printer.diagnostic("", parseErr))
		return true
	case err != nil:
		s.a.printer.print(s.a.printer.failure, "%s", err)
		return true
	}

	if len(module.Body) == 0 {
		s.a.printer.print(s.a.printer.dim, "(no statements)")
	} else {
		s.a.printer.text(ast.FormatStmts(module.Body, 0))
	}
	if s.dumpAST {
		s.a.printer.text(astDumper.Sdump(module.Body))
	}

	return true
}

func newReplCommand(a *app) *cobra.Command {
	var dumpAST bool

	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Parse statements interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			session := &replSession{a: a, dumpAST: dumpAST || a.cfg.DumpAST}
			return runRepl(session)
		},
	}

	cmd.Flags().BoolVar(&dumpAST, "ast", false, "dump the syntax tree of every input")

	return cmd
}

func runRepl(session *replSession) error {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	histPath := ""
	if home, err := os.UserHomeDir(); err == nil {
		histPath = filepath.Join(home, historyFile)
		if f, err := os.Open(histPath); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
	}
	defer func() {
		if histPath == "" {
			return
		}
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	session.a.printer.print(session.a.printer.header, "snuplc repl (%s), :help for help", session.a.env.Target.Key)

	for {
		line, err := ln.Prompt(replPrompt)
		if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
			fmt.Fprintln(session.a.printer.out)
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}

		if strings.TrimSpace(line) != "" {
			ln.AppendHistory(line)
		}
		if !session.eval(line) {
			return nil
		}
	}
}
