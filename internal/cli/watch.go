package cli

import (
	"errors"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/kievzenit/snuplc/internal/ast"
	"github.com/kievzenit/snuplc/internal/driver"
	"github.com/kievzenit/snuplc/internal/parser"
)

func newWatchCommand(a *app) *cobra.Command {
	var debounce time.Duration

	cmd := &cobra.Command{
		Use:   "watch FILE",
		Short: "Re-parse a module whenever it changes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			w := driver.NewWatcher(a.env, path, func(module *ast.Module, err error) {
				a.reportWatch(path, module, err)
			}).WithDebounce(debounce)

			return w.Run(ctx)
		},
	}

	cmd.Flags().DurationVar(&debounce, "debounce", driver.DefaultDebounce, "quiet period before re-parsing")

	return cmd
}

func (a *app) reportWatch(path string, module *ast.Module, err error) {
	stamp := time.Now().Format(time.TimeOnly)

	var parseErr *parser.ParseError
	switch {
	case errors.As(err, &parseErr):
		a.printer.print(a.printer.dim, "[%s]", stamp)
		a.printer.text(a.printer.diagnostic(path, parseErr))
	case err != nil:
		a.printer.print(a.printer.failure, "[%s] %s", stamp, err)
	default:
		a.printer.print(a.printer.success, "[%s] %s: successfully parsed module %s.", stamp, path, module.Name)
	}
}
