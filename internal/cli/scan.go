package cli

import (
	"github.com/spf13/cobra"
)

func newScanCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "scan FILE...",
		Short: "Print the token stream of source files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, path := range args {
				tokens, err := a.env.ScanFile(path)
				if err != nil {
					return err
				}

				a.printer.print(a.printer.header, "%s:", path)
				for _, token := range tokens {
					if token.Kind.IsError() {
						a.printer.print(a.printer.failure, "  %s", token.String())
						continue
					}
					a.printer.print(a.printer.dim, "  %s", token.String())
				}
			}

			return nil
		},
	}
}
