// Package worktree implements the offshoot worktree lifecycle: creating a
// worktree and branch next to the repository, linking files into it,
// listing the worktrees offshoot manages and removing them again.
//
// Operations take the caller's working directory explicitly and return the
// directory the caller should continue in; they never change the process
// working directory or start a shell.
package worktree

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/naoray/offshoot/internal/config"
	offerrors "github.com/naoray/offshoot/internal/errors"
	"github.com/naoray/offshoot/internal/exec"
	"github.com/naoray/offshoot/internal/files"
	"github.com/naoray/offshoot/internal/git"
	"github.com/naoray/offshoot/internal/utils"
)

// ProgressFunc runs action while reporting title to the user.
type ProgressFunc func(title string, action func() error) error

// ConfirmFunc asks whether the worktree at path, on branch, may be removed.
type ConfirmFunc func(path, branch string) (bool, error)

// Manager runs worktree operations against a repository.
type Manager struct {
	commander exec.Commander
	linker    *files.Linker
	logger    *log.Logger

	// Progress wraps slow git mutations. Nil runs them directly.
	Progress ProgressFunc
	// Confirm is consulted by Cleanup before removing anything. Nil removes
	// without asking.
	Confirm ConfirmFunc
	// Now is used for metadata timestamps.
	Now func() time.Time
}

// NewManager creates a Manager. Nil arguments select the real git binary, a
// linker on the OS filesystem and a discarding logger.
func NewManager(commander exec.Commander, linker *files.Linker, logger *log.Logger) *Manager {
	if commander == nil {
		commander = exec.DefaultCommander
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if linker == nil {
		linker = files.NewLinker(nil, logger)
	}
	return &Manager{
		commander: commander,
		linker:    linker,
		logger:    logger,
		Now:       time.Now,
	}
}

// Repo is a snapshot of the repository around a working directory.
type Repo struct {
	// Root is the top level of the working tree containing the directory
	// the repository was opened from.
	Root      string
	Main      git.Worktree
	Worktrees []git.Worktree

	client *git.Client
}

// Open inspects the repository containing dir. It only runs read-only git
// commands and fails with ErrNotRepository outside a repository.
func (m *Manager) Open(ctx context.Context, dir string) (*Repo, error) {
	client := git.NewClient(m.commander, dir, m.logger)

	root, err := client.RepoRoot(ctx)
	if err != nil {
		return nil, err
	}

	worktrees, err := client.ListWorktrees(ctx)
	if err != nil {
		return nil, err
	}

	worktrees, main, ok := client.ResolveMain(ctx, worktrees)
	if !ok {
		return nil, fmt.Errorf("%w: no worktrees listed for %s", offerrors.ErrNotRepository, root)
	}

	return &Repo{Root: root, Main: main, Worktrees: worktrees, client: client}, nil
}

// Managed returns the managed worktree whose path is exactly dir.
func (r *Repo) Managed(dir string) (git.Worktree, bool) {
	for _, wt := range r.Worktrees {
		if IsManaged(wt) && utils.SamePath(wt.Path, dir) {
			return wt, true
		}
	}
	return git.Worktree{}, false
}

// CreateOptions describes a worktree to create.
type CreateOptions struct {
	Branch string
	Mode   files.Mode
	Files  []string
}

// CreateResult reports what Create did. On a file linking failure it is
// returned alongside the error with the worktree already in place.
type CreateResult struct {
	Path string
	// NewBranch is set when the branch was created with the worktree.
	NewBranch bool
	Files     []files.Result
	// Unignored lists linked files git would not ignore in the worktree.
	Unignored []string
}

// Create adds a worktree for opts.Branch in the sibling directory
// <repo>-<branch>, binding an existing local branch or creating a new one,
// then shares or clones opts.Files from the main checkout into it.
func (m *Manager) Create(ctx context.Context, repo *Repo, opts CreateOptions) (*CreateResult, error) {
	if opts.Branch == "" {
		return nil, fmt.Errorf("%w: branch name is required", offerrors.ErrUsage)
	}

	target := TargetDir(repo.Root, opts.Branch)
	if _, err := os.Lstat(target); err == nil {
		return nil, fmt.Errorf("%w: %s", offerrors.ErrWorktreeExists, target)
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("checking %s: %w", target, err)
	}

	exists, err := repo.client.BranchExists(ctx, opts.Branch)
	if err != nil {
		return nil, err
	}

	title := fmt.Sprintf("Creating worktree for %s", opts.Branch)
	err = m.progress(title, func() error {
		return repo.client.AddWorktree(ctx, target, opts.Branch, !exists)
	})
	if err != nil {
		return nil, fmt.Errorf("creating worktree: %w", err)
	}
	m.logger.Info("created worktree", "path", target, "branch", opts.Branch, "new_branch", !exists)

	result := &CreateResult{Path: target, NewBranch: !exists}
	wtClient := repo.client.WithDir(target)

	m.writeState(ctx, wtClient, config.WorktreeState{
		Branch:       opts.Branch,
		MainCheckout: repo.Main.Path,
		CreatedAt:    m.Now(),
	})

	if opts.Mode == files.ModeNone || len(opts.Files) == 0 {
		return result, nil
	}

	linked, err := m.link(ctx, wtClient, repo.Main.Path, target, opts.Files, opts.Mode)
	result.Files = linked.Files
	result.Unignored = linked.Unignored
	if err != nil {
		return result, err
	}
	return result, nil
}

// CleanupResult reports a removed worktree.
type CleanupResult struct {
	Removed string
	// Branch was checked out in the removed worktree and still exists.
	Branch string
	// MainPath is the main checkout, where the caller should continue.
	MainPath string
}

// Cleanup force-removes the managed worktree at dir, discarding uncommitted
// changes in it. The branch is left alone.
func (m *Manager) Cleanup(ctx context.Context, repo *Repo, dir string) (*CleanupResult, error) {
	wt, ok := repo.Managed(dir)
	if !ok {
		return nil, fmt.Errorf("%w: %s", offerrors.ErrNotManagedWorktree, dir)
	}

	branch, err := repo.client.WithDir(wt.Path).CurrentBranch(ctx)
	if err != nil {
		return nil, err
	}

	if m.Confirm != nil {
		confirmed, err := m.Confirm(wt.Path, branch)
		if err != nil {
			return nil, err
		}
		if !confirmed {
			return nil, offerrors.ErrAborted
		}
	}

	mainClient := repo.client.WithDir(repo.Main.Path)
	title := fmt.Sprintf("Removing worktree %s", filepath.Base(wt.Path))
	err = m.progress(title, func() error {
		return mainClient.RemoveWorktree(ctx, wt.Path, true)
	})
	if err != nil {
		return nil, fmt.Errorf("removing worktree: %w", err)
	}
	m.logger.Info("removed worktree", "path", wt.Path, "branch", branch)

	return &CleanupResult{Removed: wt.Path, Branch: branch, MainPath: repo.Main.Path}, nil
}

// LinkOptions describes files to share or clone into the current worktree.
type LinkOptions struct {
	Files []string
	Mode  files.Mode
	// Protected reports branches that refuse linking. Nil protects nothing.
	Protected func(branch string) bool
}

// LinkResult reports linked files.
type LinkResult struct {
	Path      string
	Files     []files.Result
	Unignored []string
}

// Link shares or clones files from the main checkout into the managed
// worktree at dir. Worktrees on a protected branch are refused before any
// file is touched.
func (m *Manager) Link(ctx context.Context, repo *Repo, dir string, opts LinkOptions) (*LinkResult, error) {
	if opts.Mode == files.ModeNone {
		return nil, fmt.Errorf("%w: no file mode given", offerrors.ErrUsage)
	}
	if len(opts.Files) == 0 {
		return nil, fmt.Errorf("%w: no files given", offerrors.ErrUsage)
	}

	wt, ok := repo.Managed(dir)
	if !ok {
		return nil, fmt.Errorf("%w: %s", offerrors.ErrNotManagedWorktree, dir)
	}

	wtClient := repo.client.WithDir(wt.Path)
	branch, err := wtClient.CurrentBranch(ctx)
	if err != nil {
		return nil, err
	}
	if opts.Protected != nil && opts.Protected(branch) {
		return nil, fmt.Errorf("%w: %s", offerrors.ErrProtectedBranch, branch)
	}

	result, err := m.link(ctx, wtClient, repo.Main.Path, wt.Path, opts.Files, opts.Mode)
	return &result, err
}

func (m *Manager) link(ctx context.Context, wtClient *git.Client, mainRoot, target string, list []string, mode files.Mode) (LinkResult, error) {
	results, linkErr := m.linker.Link(mainRoot, target, list, mode)
	out := LinkResult{Path: target, Files: results}

	if len(results) > 0 {
		linked := make([]string, 0, len(results))
		for _, r := range results {
			linked = append(linked, filepath.ToSlash(r.File))
		}
		m.appendState(ctx, wtClient, mode, linked)
	}

	for _, r := range results {
		ignored, err := wtClient.IsIgnored(ctx, filepath.ToSlash(r.File))
		if err != nil {
			m.logger.Debug("ignore check failed", "file", r.File, "err", err)
			continue
		}
		if !ignored {
			out.Unignored = append(out.Unignored, filepath.ToSlash(r.File))
		}
	}

	if linkErr != nil {
		return out, fmt.Errorf("%s files: %w", mode, linkErr)
	}
	return out, nil
}

// Active returns the managed worktrees of repo in listing order.
func (m *Manager) Active(repo *Repo) []Entry {
	var entries []Entry
	for _, wt := range repo.Worktrees {
		if !IsManaged(wt) {
			continue
		}
		entries = append(entries, Entry{
			Name:     DisplayName(filepath.Base(wt.Path)),
			Path:     wt.Path,
			Branch:   wt.Branch,
			Detached: wt.Detached,
		})
	}
	return entries
}

// State reads the metadata offshoot recorded for the worktree at path. It
// returns nil when nothing was recorded.
func (m *Manager) State(ctx context.Context, repo *Repo, path string) (*config.WorktreeState, error) {
	gitDir, err := repo.client.WithDir(path).GitDir(ctx)
	if err != nil {
		return nil, err
	}
	if gitDir == "" {
		return nil, nil
	}
	return config.ReadWorktreeState(gitDir)
}

func (m *Manager) progress(title string, action func() error) error {
	if m.Progress == nil {
		return action()
	}
	return m.Progress(title, action)
}

// writeState records metadata next to the worktree's git files. Failures are
// logged and otherwise ignored; the metadata is informational.
func (m *Manager) writeState(ctx context.Context, wtClient *git.Client, state config.WorktreeState) {
	gitDir, err := wtClient.GitDir(ctx)
	if err != nil || gitDir == "" {
		m.logger.Debug("skipping worktree state", "dir", wtClient.Dir(), "err", err)
		return
	}
	if err := config.WriteWorktreeState(gitDir, state); err != nil {
		m.logger.Warn("could not record worktree state", "err", err)
	}
}

func (m *Manager) appendState(ctx context.Context, wtClient *git.Client, mode files.Mode, linked []string) {
	gitDir, err := wtClient.GitDir(ctx)
	if err != nil || gitDir == "" {
		m.logger.Debug("skipping worktree state", "dir", wtClient.Dir(), "err", err)
		return
	}

	existing, err := config.ReadWorktreeState(gitDir)
	if err != nil {
		m.logger.Warn("could not read worktree state", "err", err)
		return
	}

	// A file lives in exactly one list, the mode it was linked with last.
	shared, cloned := []string{}, []string{}
	if existing != nil {
		shared = append(shared, existing.Shared...)
		cloned = append(cloned, existing.Cloned...)
	}
	for _, f := range linked {
		if mode == files.ModeClone {
			shared = slices.DeleteFunc(shared, func(s string) bool { return s == f })
			if !slices.Contains(cloned, f) {
				cloned = append(cloned, f)
			}
			continue
		}
		cloned = slices.DeleteFunc(cloned, func(s string) bool { return s == f })
		if !slices.Contains(shared, f) {
			shared = append(shared, f)
		}
	}

	if err := config.WriteWorktreeState(gitDir, config.WorktreeState{Shared: shared, Cloned: cloned}); err != nil {
		m.logger.Warn("could not record worktree state", "err", err)
	}
}
