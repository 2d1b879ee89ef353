package cli

import (
	"context"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/naoray/offshoot/internal/worktree"
)

func newListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List active offshoot worktrees",
		Long: `Lists the worktrees of this repository that follow offshoot's
<repo>-<branch> naming. With --verbose, also shows how each was created.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.dispatch(cmd.Context(), Intent{Command: CommandList})
		},
	}
}

func (a *App) runList(ctx context.Context) error {
	// Listing never depends on configuration, so a broken config file
	// cannot hide the worktrees.
	mgr, repo, _, err := a.openRepo(ctx)
	if err != nil {
		return err
	}

	var details func(worktree.Entry) []string
	if a.verbose {
		details = func(e worktree.Entry) []string {
			state, err := mgr.State(ctx, repo, e.Path)
			if err != nil {
				a.log().Debug("reading worktree state", "path", e.Path, "err", err)
				return nil
			}
			if state == nil {
				return nil
			}

			var lines []string
			if !state.CreatedAt.IsZero() {
				lines = append(lines, "created: "+state.CreatedAt.Local().Format(time.DateTime))
			}
			if len(state.Shared) > 0 {
				lines = append(lines, "shared: "+strings.Join(state.Shared, ", "))
			}
			if len(state.Cloned) > 0 {
				lines = append(lines, "cloned: "+strings.Join(state.Cloned, ", "))
			}
			return lines
		}
	}

	worktree.RenderList(a.Stdout, mgr.Active(repo), details)
	return nil
}
