package app

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/agbru/errdemo/internal/cli"
	"github.com/agbru/errdemo/internal/config"
	"github.com/agbru/errdemo/internal/demo"
	apperrors "github.com/agbru/errdemo/internal/errors"
	"github.com/agbru/errdemo/internal/ui"
)

// session carries the state shared by the commands of one invocation.
type session struct {
	stdin    io.Reader
	flagged  config.AppConfig
	cfg      config.AppConfig
	exitCode int
	appOpts  []AppOption
}

// Execute builds the command tree, runs it with args and returns the
// process exit code. Command errors are printed to stderr.
func Execute(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer, opts ...AppOption) int {
	s := &session{stdin: stdin, flagged: config.Default(), appOpts: opts}
	root := s.rootCommand()
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(stderr, cli.FormatError(err))
		return apperrors.ExitCode(err)
	}
	return s.exitCode
}

func (s *session) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "errdemo",
		Short: "A guided tour of failure handling",
		Long: `errdemo runs a fixed sequence of small demonstrations. Each one attempts an
operation that may fail, resolves the failure through the first handler that
declares its kind, and runs its cleanup step whatever happened.

Without a subcommand errdemo behaves like "errdemo run".`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Resolve(cmd.Flags(), s.flagged)
			if err != nil {
				return err
			}
			s.cfg = cfg
			ui.InitTheme(cfg.Theme, cfg.NoColor)
			return nil
		},
		RunE: s.run,
	}

	config.BindFlags(root.PersistentFlags(), &s.flagged)
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return apperrors.NewConfigError("%v", err)
	})

	root.AddCommand(s.runCommand(), s.replCommand(), s.listCommand(), conditionsCommand(), versionCommand())
	return root
}

func (s *session) runCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "run [unit...]",
		Short: "Run the demonstrations (all of them, or the named units)",
		Example: `  errdemo run
  errdemo run parse-int cleanup
  errdemo run --age 30 --input answers.txt`,
		RunE: s.run,
	}
}

func (s *session) run(cmd *cobra.Command, args []string) error {
	cfg := s.cfg
	cfg.Units = append(cfg.Units, args...)
	opts := append([]AppOption{WithInput(s.stdin)}, s.appOpts...)
	s.exitCode = New(cfg, cmd.ErrOrStderr(), opts...).Run(cmd.Context(), cmd.OutOrStdout())
	return nil
}

func (s *session) replCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Explore the units interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts := append([]AppOption{WithInput(s.stdin)}, s.appOpts...)
			s.exitCode = New(s.cfg, cmd.ErrOrStderr(), opts...).Interactive(cmd.Context(), cmd.OutOrStdout())
			return nil
		},
	}
}

func (s *session) listCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the unit IDs in run order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cli.DisplayUnits(demo.Builtin(demo.Env{}), cmd.OutOrStdout())
			return nil
		},
	}
}

func conditionsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "conditions",
		Short: "Describe the well-known failure kinds",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cli.DisplayCatalogue(apperrors.Catalogue(), cmd.OutOrStdout())
			return nil
		},
	}
}

func versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			PrintVersion(cmd.OutOrStdout())
			return nil
		},
	}
}
