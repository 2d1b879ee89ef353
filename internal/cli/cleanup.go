package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newCleanupCmd(app *App) *cobra.Command {
	var noShell bool

	cmd := &cobra.Command{
		Use:   "cleanup",
		Short: "Remove the current worktree and return to the main checkout",
		Long: `Force-removes the offshoot worktree you are in, discarding any uncommitted
changes in it, and starts a shell in the main checkout.

The branch is never deleted. Run it from the root of the worktree.
Set cleanup.confirm in the config to be asked first.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.dispatch(cmd.Context(), Intent{Command: CommandCleanup, NoShell: noShell})
		},
	}

	cmd.Flags().BoolVar(&noShell, "no-shell", false, "Print the main checkout path instead of starting a shell")

	return cmd
}

func (a *App) runCleanup(ctx context.Context, intent Intent) error {
	mgr, repo, cfg, cwd, err := a.open(ctx)
	if err != nil {
		return err
	}

	if cfg.Cleanup.Confirm && a.interactive() && a.Confirm != nil {
		mgr.Confirm = func(path, branch string) (bool, error) {
			return a.Confirm("Remove worktree",
				fmt.Sprintf("Force-remove %s? Uncommitted changes are lost; branch %q is kept.", path, branch))
		}
	}

	result, err := mgr.Cleanup(ctx, repo, cwd)
	if err != nil {
		return err
	}

	p := a.printer(intent.NoShell)
	p.Success(fmt.Sprintf("Removed worktree %s", result.Removed))
	if result.Branch != "" {
		p.Detail(fmt.Sprintf("Branch %s preserved", result.Branch))
	}
	p.Info(fmt.Sprintf("Now in %s", result.MainPath))

	return a.handoff(cfg, intent.NoShell, result.MainPath)
}
