package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	offerrors "github.com/naoray/offshoot/internal/errors"
	"github.com/naoray/offshoot/internal/ui"
)

// NewRootCmd builds the offshoot command tree. The root command itself
// creates worktrees: any first argument that is not a subcommand is taken
// as a branch name.
func NewRootCmd(app *App) *cobra.Command {
	var (
		share   string
		clone   string
		noShell bool
	)

	rootCmd := &cobra.Command{
		Use:   "offshoot <branch> [--share f1,f2 | --clone f1,f2]",
		Short: "Spin up a git worktree per task",
		Long: `Offshoot creates a git worktree and branch for a task next to the current
repository, optionally sharing (symlinking) or cloning (copying) local files
such as .env from the main checkout, and drops you into a shell inside it.

The worktree for branch feature/login of repository proj lives in
../proj-feature-login. An existing local branch is checked out; otherwise
the branch is created.`,
		Example: `  offshoot add-auth
  offshoot feature/login --share .env,config/local.yaml
  offshoot fix-bug --clone .env
  offshoot list
  offshoot cleanup`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				_ = cmd.Usage()
				return fmt.Errorf("%w: a branch name or command is required", offerrors.ErrUsage)
			}
			if len(args) > 1 {
				_ = cmd.Usage()
				return fmt.Errorf("%w: unexpected arguments %v", offerrors.ErrUsage, args[1:])
			}

			intent, err := createIntent(args[0], share, clone,
				cmd.Flags().Changed("share"), cmd.Flags().Changed("clone"), noShell)
			if err != nil {
				return err
			}
			return app.dispatch(cmd.Context(), intent)
		},
	}

	rootCmd.PersistentFlags().BoolVar(&app.verbose, "verbose", false, "Enable verbose output")
	rootCmd.Flags().StringVar(&share, "share", "", "Comma-separated files to symlink from the main checkout")
	rootCmd.Flags().StringVar(&clone, "clone", "", "Comma-separated files to copy from the main checkout")
	rootCmd.Flags().BoolVar(&noShell, "no-shell", false, "Print the worktree path instead of starting a shell")

	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		cmd.PrintErrln(cmd.UsageString())
		return fmt.Errorf("%w: %w", offerrors.ErrUsage, err)
	})

	// Only the commands below are reserved; "completion" and "help" stay
	// usable as branch names.
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.SetHelpCommand(&cobra.Command{Hidden: true})

	rootCmd.AddCommand(
		newCleanupCmd(app),
		newListCmd(app),
		newLinkCmd(app, CommandShare),
		newLinkCmd(app, CommandClone),
		newVersionCmd(app),
	)

	return rootCmd
}

// Run executes args and returns the process exit code. Errors are printed
// once, here.
func (a *App) Run(ctx context.Context, args []string) int {
	rootCmd := NewRootCmd(a)
	rootCmd.SetArgs(args)
	rootCmd.SetOut(a.Stdout)
	rootCmd.SetErr(a.Stderr)

	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		if ui.IsAbort(err) {
			err = fmt.Errorf("%w: %w", offerrors.ErrAborted, err)
		}
		ui.NewPrinter(a.Stdout, a.Stderr).Error(err.Error())
	}
	return offerrors.ExitCode(err)
}

// Execute runs offshoot with the process arguments. Interrupts cancel the
// running git command.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return NewApp().Run(ctx, os.Args[1:])
}
