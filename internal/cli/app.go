package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/naoray/offshoot/internal/config"
	offerrors "github.com/naoray/offshoot/internal/errors"
	"github.com/naoray/offshoot/internal/exec"
	"github.com/naoray/offshoot/internal/files"
	"github.com/naoray/offshoot/internal/shell"
	"github.com/naoray/offshoot/internal/ui"
	"github.com/naoray/offshoot/internal/worktree"
)

// App holds the dependencies of the command layer. The zero values of the
// optional fields select the real implementations.
type App struct {
	Stdout io.Writer
	Stderr io.Writer

	Commander exec.Commander
	// Launcher replaces the shell configured for the project when set.
	Launcher    shell.Launcher
	Getwd       func() (string, error)
	LoadConfig  func(projectDir string) (*config.Config, error)
	Interactive func() bool
	Confirm     func(title, description string) (bool, error)

	verbose bool
	logger  *log.Logger
}

// NewApp returns an App wired to the process environment.
func NewApp() *App {
	return &App{
		Stdout:      os.Stdout,
		Stderr:      os.Stderr,
		Commander:   exec.DefaultCommander,
		Getwd:       os.Getwd,
		LoadConfig:  config.LoadForProject,
		Interactive: ui.IsInteractive,
		Confirm:     ui.Confirm,
	}
}

func (a *App) log() *log.Logger {
	if a.logger == nil {
		a.logger = ui.NewLogger(a.Stderr, a.verbose)
	}
	return a.logger
}

// printer returns the status printer. With the shell handoff disabled only
// the resulting path goes to stdout, so status lines move to stderr.
func (a *App) printer(noShell bool) *ui.Printer {
	if noShell {
		return ui.NewPrinter(a.Stderr, a.Stderr)
	}
	return ui.NewPrinter(a.Stdout, a.Stderr)
}

// openRepo locates the repository around the working directory without
// reading any configuration.
func (a *App) openRepo(ctx context.Context) (*worktree.Manager, *worktree.Repo, string, error) {
	cwd, err := a.Getwd()
	if err != nil {
		return nil, nil, "", fmt.Errorf("getting working directory: %w", err)
	}

	mgr := worktree.NewManager(a.Commander, files.NewLinker(nil, a.log()), a.log())
	repo, err := mgr.Open(ctx, cwd)
	if err != nil {
		return nil, nil, "", err
	}
	return mgr, repo, cwd, nil
}

// open locates the repository around the working directory and loads the
// configuration of its main checkout.
func (a *App) open(ctx context.Context) (*worktree.Manager, *worktree.Repo, *config.Config, string, error) {
	mgr, repo, cwd, err := a.openRepo(ctx)
	if err != nil {
		return nil, nil, nil, "", err
	}

	load := a.LoadConfig
	if load == nil {
		load = config.LoadForProject
	}
	cfg, err := load(repo.Main.Path)
	if err != nil {
		return nil, nil, nil, "", err
	}

	if a.interactive() {
		spinner := cfg.Spinner
		mgr.Progress = func(title string, action func() error) error {
			return ui.RunWithSpinner(spinner, title, action)
		}
	}

	return mgr, repo, cfg, cwd, nil
}

func (a *App) interactive() bool {
	return a.Interactive != nil && a.Interactive()
}

// dispatch runs a parsed intent.
func (a *App) dispatch(ctx context.Context, intent Intent) error {
	a.log().Debug("dispatch", "command", intent.Command, "branch", intent.Branch, "mode", intent.Mode, "files", strings.Join(intent.Files, ","))

	switch intent.Command {
	case CommandCreate:
		return a.runCreate(ctx, intent)
	case CommandCleanup:
		return a.runCleanup(ctx, intent)
	case CommandList:
		return a.runList(ctx)
	case CommandShare, CommandClone:
		return a.runLink(ctx, intent)
	}
	return fmt.Errorf("%w: nothing to do", offerrors.ErrUsage)
}

// handoff ends create and cleanup: the user lands in dir, either in a new
// shell or, with noShell, by having the path printed.
func (a *App) handoff(cfg *config.Config, noShell bool, dir string) error {
	if noShell {
		fmt.Fprintln(a.Stdout, dir)
		return nil
	}

	launcher := a.Launcher
	if launcher == nil {
		launcher = shell.NewLauncher(cfg.Shell)
	}
	a.log().Debug("starting shell", "dir", dir)
	return launcher.Launch(dir)
}

// reportFiles prints one line per linked file and warns about files git
// would pick up in the worktree.
func reportFiles(p *ui.Printer, results []files.Result, unignored []string) {
	for _, r := range results {
		switch r.Mode {
		case files.ModeShare:
			p.Success(fmt.Sprintf("Shared %s → %s", r.File, r.Source))
		case files.ModeClone:
			p.Success(fmt.Sprintf("Cloned %s", r.File))
		}
	}
	for _, f := range unignored {
		p.Warning(fmt.Sprintf("%s is not ignored by git in this worktree and could be committed", f))
	}
}
