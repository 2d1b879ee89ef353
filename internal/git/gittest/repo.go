// Package gittest creates throwaway git repositories for tests.
package gittest

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

// NewRepo creates a repository named name inside a fresh temp directory,
// on branch main with one commit, and returns its path with symlinks
// resolved so it compares equal to paths reported by git.
func NewRepo(t *testing.T, name string) string {
	t.Helper()

	tmpDir, err := filepath.EvalSymlinks(t.TempDir())
	if err != nil {
		t.Fatalf("resolving temp dir: %v", err)
	}
	repoDir := filepath.Join(tmpDir, name)

	if err := os.MkdirAll(repoDir, 0755); err != nil {
		t.Fatalf("creating repo dir: %v", err)
	}

	Run(t, repoDir, "init", "-b", "main")
	Run(t, repoDir, "config", "user.email", "test@example.com")
	Run(t, repoDir, "config", "user.name", "Test User")

	if err := os.WriteFile(filepath.Join(repoDir, "README.md"), []byte("test"), 0644); err != nil {
		t.Fatalf("writing README: %v", err)
	}

	Run(t, repoDir, "add", ".")
	Run(t, repoDir, "commit", "-m", "Initial commit")

	return repoDir
}

// Run runs git in dir and returns its trimmed output, failing the test on error.
func Run(t *testing.T, dir string, args ...string) string {
	t.Helper()

	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	output, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("git %s: %v\n%s", strings.Join(args, " "), err, string(output))
	}
	return strings.TrimSpace(string(output))
}

// WriteFile writes content to dir/rel, creating parent directories.
func WriteFile(t *testing.T, dir, rel, content string) {
	t.Helper()

	path := filepath.Join(dir, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("creating %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}
