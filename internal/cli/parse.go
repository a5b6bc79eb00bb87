package cli

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/sanity-io/litter"
	"github.com/spf13/cobra"

	"github.com/kievzenit/snuplc/internal/ast"
	"github.com/kievzenit/snuplc/internal/compiler_errors"
	"github.com/kievzenit/snuplc/internal/parser"
)

// astDumper hides the symbol table and token positions; both are printed
// separately.
var astDumper = litter.Options{
	HidePrivateFields: true,
	HideZeroValues:    true,
	FieldExclusions:   regexp.MustCompile(`^(StartToken|Symtab|Scope|Location)$`),
}

type parseFlags struct {
	ast    bool
	symtab bool
	tokens bool
}

func newParseCommand(a *app) *cobra.Command {
	var flags parseFlags

	cmd := &cobra.Command{
		Use:   "parse FILE...",
		Short: "Parse modules and report syntax errors",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags.ast = flags.ast || a.cfg.DumpAST
			flags.symtab = flags.symtab || a.cfg.DumpSymtab

			eh := a.printer.errorHandler()
			for _, path := range args {
				if err := a.parseFile(path, flags, eh); err != nil {
					return err
				}
			}

			if n := eh.Report(); n > 0 {
				return fmt.Errorf("%d of %d files failed to parse", n, len(args))
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&flags.ast, "ast", false, "dump the syntax tree")
	cmd.Flags().BoolVar(&flags.symtab, "symtab", false, "dump the symbol tables")
	cmd.Flags().BoolVar(&flags.tokens, "tokens", false, "print the token stream before parsing")

	return cmd
}

// parseFile returns an error only when the file cannot be read. Syntax
// errors go to eh.
func (a *app) parseFile(path string, flags parseFlags, eh compiler_errors.ErrorHandler) error {
	var (
		module *ast.Module
		err    error
	)

	if flags.tokens {
		tokens, scanErr := a.env.ScanFile(path)
		if scanErr != nil {
			return scanErr
		}

		a.printer.print(a.printer.header, "%s tokens:", path)
		for _, token := range tokens {
			a.printer.print(a.printer.dim, "  %s", token.String())
		}

		module, err = a.env.ParseTokens(path, tokens)
	} else {
		module, err = a.env.ParseFile(path)
	}

	var parseErr *parser.ParseError
	switch {
	case errors.As(err, &parseErr):
		eh.AddError(path, parseErr)
		return nil
	case err != nil:
		return err
	}

	a.printer.print(a.printer.success, "%s: successfully parsed.", path)

	if flags.ast {
		a.printer.print(a.printer.header, "syntax tree:")
		a.printer.text(astDumper.Sdump(module))
	}
	if flags.symtab {
		a.printer.print(a.printer.header, "symbol tables:")
		a.printer.text(module.Symtab.String())
	}

	return nil
}
