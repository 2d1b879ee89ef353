package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/naoray/offshoot/internal/files"
	"github.com/naoray/offshoot/internal/worktree"
)

// newLinkCmd builds the share or clone command; they differ only in mode.
func newLinkCmd(app *App, command Command) *cobra.Command {
	mode := files.ModeShare
	short := "Symlink files from the main checkout into the current worktree"
	if command == CommandClone {
		mode = files.ModeClone
		short = "Copy files from the main checkout into the current worktree"
	}

	return &cobra.Command{
		Use:   command.String() + " <f1,f2,...>",
		Short: short,
		Long: short + `.

Paths are relative to the repository root and separated by commas. Must be
run from the root of an offshoot worktree that is not on a protected branch
(main and master by default).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			intent, err := linkIntent(mode, args[0])
			if err != nil {
				return err
			}
			return app.dispatch(cmd.Context(), intent)
		},
	}
}

func (a *App) runLink(ctx context.Context, intent Intent) error {
	mgr, repo, cfg, cwd, err := a.open(ctx)
	if err != nil {
		return err
	}

	result, err := mgr.Link(ctx, repo, cwd, worktree.LinkOptions{
		Files:     intent.Files,
		Mode:      intent.Mode,
		Protected: cfg.IsProtected,
	})
	if result != nil {
		reportFiles(a.printer(false), result.Files, result.Unignored)
	}
	return err
}
