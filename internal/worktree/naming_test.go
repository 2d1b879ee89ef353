package worktree

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/naoray/offshoot/internal/git"
)

func TestDirName(t *testing.T) {
	tests := []struct {
		repo     string
		branch   string
		expected string
	}{
		{repo: "proj", branch: "add-auth", expected: "proj-add-auth"},
		{repo: "proj", branch: "feature/login", expected: "proj-feature-login"},
		{repo: "proj", branch: "a/b/c", expected: "proj-a-b-c"},
		{repo: "proj", branch: "Fix_Bug.v2@x", expected: "proj-Fix_Bug.v2@x"},
	}

	for _, tt := range tests {
		t.Run(tt.branch, func(t *testing.T) {
			assert.Equal(t, tt.expected, DirName(tt.repo, tt.branch))
		})
	}
}

func TestTargetDir(t *testing.T) {
	root := filepath.Join("/src", "proj")
	assert.Equal(t, filepath.Join("/src", "proj-feature-x"), TargetDir(root, "feature/x"))
}

func TestIsManagedName(t *testing.T) {
	assert.True(t, IsManagedName("proj-add-auth"))
	assert.True(t, IsManagedName("proj-x"))
	assert.False(t, IsManagedName("proj"))
	assert.False(t, IsManagedName("-leading"))
	assert.False(t, IsManagedName("trailing-"))
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "add-auth", DisplayName("proj-add-auth"))
	assert.Equal(t, "fix-bug", DisplayName("proj-fix-bug"))
	assert.Equal(t, "proj", DisplayName("proj"))
}

func TestIsManaged(t *testing.T) {
	tests := []struct {
		name     string
		wt       git.Worktree
		expected bool
	}{
		{name: "managed", wt: git.Worktree{Path: "/src/proj-add-auth"}, expected: true},
		{name: "main checkout with dash", wt: git.Worktree{Path: "/src/my-proj", IsMain: true}, expected: false},
		{name: "no dash", wt: git.Worktree{Path: "/src/scratch"}, expected: false},
		{name: "inside git metadata", wt: git.Worktree{Path: "/src/proj/.git/modules/sub-mod"}, expected: false},
		{name: "bare", wt: git.Worktree{Path: "/src/proj-bare", Bare: true}, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsManaged(tt.wt))
		})
	}
}
