package cli

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kievzenit/snuplc/internal/config"
	"github.com/kievzenit/snuplc/internal/driver"
	"github.com/kievzenit/snuplc/internal/target"
)

type options struct {
	configPath string
	target     string
	logLevel   string
}

// app is the state shared by all commands of one invocation. It is filled
// in by the root command's pre-run hook.
type app struct {
	opts options

	cfg     *config.Config
	env     *driver.Environment
	printer *printer
}

func NewRootCommand() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "snuplc",
		Short: "SnuPL/2 compiler front end",
		Long: `snuplc scans and parses SnuPL/2 modules and reports the resulting
syntax tree, symbol tables and types.

Commands:
  scan    Print the token stream of source files
  parse   Parse modules and report syntax errors
  types   Print the type registry of the target
  watch   Re-parse a module whenever it changes
  repl    Parse statements interactively
  config  Print the effective configuration
`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&a.opts.configPath, "config", "c", "", "configuration file (.toml, .yaml)")
	flags.StringVarP(&a.opts.target, "target", "t", "",
		fmt.Sprintf("target architecture (%s)", strings.Join(target.Keys(), ", ")))
	flags.StringVar(&a.opts.logLevel, "log-level", "", "log level (debug, info, warn, error)")

	root.AddCommand(
		newScanCommand(a),
		newParseCommand(a),
		newTypesCommand(a),
		newWatchCommand(a),
		newReplCommand(a),
		newConfigCommand(a),
	)

	return root
}

func Execute() error {
	return NewRootCommand().Execute()
}

// setup resolves the configuration in increasing priority: defaults, the
// config file, SNUPLC_* variables, command line flags.
func (a *app) setup(cmd *cobra.Command) error {
	cfg := config.Default()
	if a.opts.configPath != "" {
		loaded, err := config.Load(a.opts.configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	cfg.ApplyEnv()
	if a.opts.target != "" {
		cfg.Target = a.opts.target
	}
	if a.opts.logLevel != "" {
		cfg.LogLevel = a.opts.logLevel
	}

	if err := cfg.Validate(); err != nil {
		return err
	}
	level, _ := cfg.Level()

	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	env, err := driver.NewEnvironment(cfg, logger)
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.env = env
	a.printer = newPrinter(cmd.OutOrStdout(), cfg.Color)

	return nil
}
