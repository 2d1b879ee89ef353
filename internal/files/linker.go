// Package files shares files from the main checkout into a worktree, either
// by symbolic link (share) or by copy (clone).
package files

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"

	offerrors "github.com/naoray/offshoot/internal/errors"
)

// Mode selects how files reach the worktree.
type Mode int

const (
	ModeNone Mode = iota
	ModeShare
	ModeClone
)

func (m Mode) String() string {
	switch m {
	case ModeShare:
		return "share"
	case ModeClone:
		return "clone"
	default:
		return "none"
	}
}

// ErrSymlinksUnsupported is returned when the filesystem cannot create links.
var ErrSymlinksUnsupported = errors.New("filesystem does not support symlinks")

// ParseList splits a comma-separated file list, trimming whitespace around
// each entry and dropping empty ones.
func ParseList(raw string) []string {
	var list []string
	for _, entry := range strings.Split(raw, ",") {
		if entry = strings.TrimSpace(entry); entry != "" {
			list = append(list, entry)
		}
	}
	return list
}

// Result records one linked or copied file.
type Result struct {
	File   string
	Source string
	Target string
	Mode   Mode
}

// Linker links or copies files between two roots on a filesystem.
type Linker struct {
	fs     afero.Fs
	logger *log.Logger
}

// NewLinker creates a Linker. A nil fs uses the OS filesystem.
func NewLinker(fs afero.Fs, logger *log.Logger) *Linker {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Linker{fs: fs, logger: logger}
}

// Link processes files in order, each resolved against mainRoot and placed at
// the same relative path under targetRoot. Processing stops at the first
// failure; the results for files handled before it are returned with the
// error and left in place.
func (l *Linker) Link(mainRoot, targetRoot string, files []string, mode Mode) ([]Result, error) {
	if mode == ModeNone {
		return nil, nil
	}

	var results []Result
	for _, file := range files {
		file = strings.TrimSpace(file)
		if file == "" {
			continue
		}

		result, err := l.linkOne(mainRoot, targetRoot, file, mode)
		if err != nil {
			return results, err
		}
		results = append(results, result)
	}
	return results, nil
}

func (l *Linker) linkOne(mainRoot, targetRoot, file string, mode Mode) (Result, error) {
	rel := filepath.Clean(filepath.FromSlash(file))
	if !filepath.IsLocal(rel) {
		return Result{}, fmt.Errorf("%w: %q must be a relative path inside the repository", offerrors.ErrUsage, file)
	}

	source := filepath.Join(mainRoot, rel)
	target := filepath.Join(targetRoot, rel)
	if source == target {
		return Result{}, fmt.Errorf("%w: %s is both source and target", offerrors.ErrUsage, source)
	}

	info, err := l.fs.Stat(source)
	if err != nil || !info.Mode().IsRegular() {
		return Result{}, fmt.Errorf("%w: %s", offerrors.ErrFileNotFound, source)
	}

	if err := l.fs.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return Result{}, fmt.Errorf("creating directory for %s: %w", file, err)
	}

	// Replace whatever is there; writing through an old symlink would
	// clobber the main checkout's copy.
	if err := l.fs.Remove(target); err != nil && !os.IsNotExist(err) {
		return Result{}, fmt.Errorf("replacing %s: %w", target, err)
	}

	switch mode {
	case ModeShare:
		linker, ok := l.fs.(afero.Linker)
		if !ok {
			return Result{}, ErrSymlinksUnsupported
		}
		if err := linker.SymlinkIfPossible(source, target); err != nil {
			return Result{}, fmt.Errorf("linking %s: %w", file, err)
		}
	case ModeClone:
		if err := l.copyFile(source, target, info.Mode().Perm()); err != nil {
			return Result{}, fmt.Errorf("copying %s: %w", file, err)
		}
	}

	l.logger.Debug("file", "mode", mode, "source", source, "target", target)
	return Result{File: rel, Source: source, Target: target, Mode: mode}, nil
}

func (l *Linker) copyFile(source, target string, perm os.FileMode) error {
	src, err := l.fs.Open(source)
	if err != nil {
		return err
	}
	defer src.Close()

	dst, err := l.fs.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return err
	}

	if _, err := io.Copy(dst, src); err != nil {
		_ = dst.Close()
		return err
	}
	return dst.Close()
}
