package cli

import (
	"context"
	"fmt"

	"github.com/naoray/offshoot/internal/files"
	"github.com/naoray/offshoot/internal/worktree"
)

func (a *App) runCreate(ctx context.Context, intent Intent) error {
	mgr, repo, cfg, _, err := a.open(ctx)
	if err != nil {
		return err
	}

	opts := worktree.CreateOptions{Branch: intent.Branch, Mode: intent.Mode, Files: intent.Files}
	if opts.Mode == files.ModeNone {
		switch {
		case len(cfg.Share) > 0:
			opts.Mode, opts.Files = files.ModeShare, cfg.Share
		case len(cfg.Clone) > 0:
			opts.Mode, opts.Files = files.ModeClone, cfg.Clone
		}
	}

	p := a.printer(intent.NoShell)
	result, err := mgr.Create(ctx, repo, opts)
	if result != nil {
		if result.NewBranch {
			p.Success(fmt.Sprintf("Created worktree %s on new branch %s", result.Path, intent.Branch))
		} else {
			p.Success(fmt.Sprintf("Created worktree %s on existing branch %s", result.Path, intent.Branch))
		}
		reportFiles(p, result.Files, result.Unignored)
	}
	if err != nil {
		return err
	}

	p.Info(fmt.Sprintf("Now in %s", result.Path))
	return a.handoff(cfg, intent.NoShell, result.Path)
}
