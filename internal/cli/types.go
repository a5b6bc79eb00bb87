package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newTypesCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "types [FILE...]",
		Short: "Print the type registry of the target",
		Long: `Print the type registry of the configured target. Modules given as
arguments are parsed first, so the pointer and array types they use are
listed too.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			eh := a.printer.errorHandler()
			for _, path := range args {
				if err := a.parseFile(path, parseFlags{}, eh); err != nil {
					return err
				}
			}
			if n := eh.Report(); n > 0 {
				return fmt.Errorf("%d of %d files failed to parse", n, len(args))
			}

			a.printer.print(a.printer.header, "target: %s", a.env.Target)
			a.printer.text(a.env.Types.String())

			return nil
		},
	}
}
