package files

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	offerrors "github.com/naoray/offshoot/internal/errors"
)

func setupRoots(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()
	mainRoot := filepath.Join(dir, "proj")
	targetRoot := filepath.Join(dir, "proj-feature")
	require.NoError(t, os.MkdirAll(filepath.Join(mainRoot, "b"), 0755))
	require.NoError(t, os.MkdirAll(targetRoot, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(mainRoot, "a.txt"), []byte("alpha"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(mainRoot, "b", "c.txt"), []byte("charlie"), 0600))
	return mainRoot, targetRoot
}

func TestParseList(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{name: "single", input: ".env", expected: []string{".env"}},
		{name: "trimmed", input: " a.txt , b/c.txt ", expected: []string{"a.txt", "b/c.txt"}},
		{name: "empty entries skipped", input: "a,,b,", expected: []string{"a", "b"}},
		{name: "empty", input: "", expected: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseList(tt.input))
		})
	}
}

func TestLink_Share(t *testing.T) {
	mainRoot, targetRoot := setupRoots(t)
	linker := NewLinker(nil, nil)

	results, err := linker.Link(mainRoot, targetRoot, []string{" a.txt ", "b/c.txt"}, ModeShare)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "a.txt", results[0].File)
	assert.Equal(t, filepath.Join("b", "c.txt"), results[1].File)

	for _, rel := range []string{"a.txt", filepath.Join("b", "c.txt")} {
		target := filepath.Join(targetRoot, rel)
		info, err := os.Lstat(target)
		require.NoError(t, err)
		assert.True(t, info.Mode()&os.ModeSymlink != 0, "%s should be a symlink", rel)

		dest, err := os.Readlink(target)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(mainRoot, rel), dest, "link should point at the absolute main path")
	}

	// Edits through the link reach the main checkout.
	require.NoError(t, os.WriteFile(filepath.Join(targetRoot, "a.txt"), []byte("changed"), 0644))
	content, err := os.ReadFile(filepath.Join(mainRoot, "a.txt"))
	require.NoError(t, err)
	assert.Equal(t, "changed", string(content))
}

func TestLink_ShareOverwritesExisting(t *testing.T) {
	mainRoot, targetRoot := setupRoots(t)
	require.NoError(t, os.WriteFile(filepath.Join(targetRoot, "a.txt"), []byte("stale"), 0644))
	linker := NewLinker(nil, nil)

	_, err := linker.Link(mainRoot, targetRoot, []string{"a.txt"}, ModeShare)
	require.NoError(t, err)
	_, err = linker.Link(mainRoot, targetRoot, []string{"a.txt"}, ModeShare)
	require.NoError(t, err, "re-sharing should replace the existing link")

	content, err := os.ReadFile(filepath.Join(targetRoot, "a.txt"))
	require.NoError(t, err)
	assert.Equal(t, "alpha", string(content))
}

func TestLink_Clone(t *testing.T) {
	mainRoot, targetRoot := setupRoots(t)
	linker := NewLinker(nil, nil)

	results, err := linker.Link(mainRoot, targetRoot, []string{"a.txt", " b/c.txt"}, ModeClone)
	require.NoError(t, err)
	require.Len(t, results, 2)

	info, err := os.Lstat(filepath.Join(targetRoot, "b", "c.txt"))
	require.NoError(t, err)
	assert.True(t, info.Mode().IsRegular())
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm(), "copy keeps source permissions")

	// The copy is independent of the main checkout.
	require.NoError(t, os.WriteFile(filepath.Join(targetRoot, "a.txt"), []byte("changed"), 0644))
	content, err := os.ReadFile(filepath.Join(mainRoot, "a.txt"))
	require.NoError(t, err)
	assert.Equal(t, "alpha", string(content))
}

func TestLink_CloneReplacesSharedLink(t *testing.T) {
	mainRoot, targetRoot := setupRoots(t)
	linker := NewLinker(nil, nil)

	_, err := linker.Link(mainRoot, targetRoot, []string{"a.txt"}, ModeShare)
	require.NoError(t, err)
	_, err = linker.Link(mainRoot, targetRoot, []string{"a.txt"}, ModeClone)
	require.NoError(t, err)

	info, err := os.Lstat(filepath.Join(targetRoot, "a.txt"))
	require.NoError(t, err)
	assert.True(t, info.Mode().IsRegular(), "clone must not write through the old link")
}

func TestLink_CloneInMemory(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/proj/config/local.yaml", []byte("db: local"), 0644))
	require.NoError(t, fs.MkdirAll("/proj-x", 0755))
	linker := NewLinker(fs, nil)

	results, err := linker.Link("/proj", "/proj-x", []string{"config/local.yaml"}, ModeClone)
	require.NoError(t, err)
	require.Len(t, results, 1)

	content, err := afero.ReadFile(fs, "/proj-x/config/local.yaml")
	require.NoError(t, err)
	assert.Equal(t, "db: local", string(content))
}

func TestLink_ShareUnsupportedFilesystem(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/proj/.env", []byte("A=1"), 0644))
	linker := NewLinker(fs, nil)

	_, err := linker.Link("/proj", "/proj-x", []string{".env"}, ModeShare)
	assert.ErrorIs(t, err, ErrSymlinksUnsupported)
}

func TestLink_MissingFileLeavesPartialEffect(t *testing.T) {
	for _, mode := range []Mode{ModeShare, ModeClone} {
		t.Run(mode.String(), func(t *testing.T) {
			mainRoot, targetRoot := setupRoots(t)
			linker := NewLinker(nil, nil)

			results, err := linker.Link(mainRoot, targetRoot, []string{"a.txt", "b/c.txt", "missing.txt", "a.txt"}, mode)
			require.Error(t, err)
			assert.True(t, errors.Is(err, offerrors.ErrFileNotFound))
			assert.Len(t, results, 2, "files before the failure are reported")

			_, err = os.Lstat(filepath.Join(targetRoot, "a.txt"))
			assert.NoError(t, err)
			_, err = os.Lstat(filepath.Join(targetRoot, "b", "c.txt"))
			assert.NoError(t, err)
			_, err = os.Lstat(filepath.Join(targetRoot, "missing.txt"))
			assert.True(t, os.IsNotExist(err))
		})
	}
}

func TestLink_RejectsDirectoriesAndEscapes(t *testing.T) {
	mainRoot, targetRoot := setupRoots(t)
	linker := NewLinker(nil, nil)

	_, err := linker.Link(mainRoot, targetRoot, []string{"b"}, ModeShare)
	assert.ErrorIs(t, err, offerrors.ErrFileNotFound, "directories are not regular files")

	_, err = linker.Link(mainRoot, targetRoot, []string{"../outside.txt"}, ModeClone)
	assert.ErrorIs(t, err, offerrors.ErrUsage)

	_, err = linker.Link(mainRoot, targetRoot, []string{"/etc/hosts"}, ModeClone)
	assert.ErrorIs(t, err, offerrors.ErrUsage)

	_, err = linker.Link(mainRoot, mainRoot, []string{"a.txt"}, ModeShare)
	assert.ErrorIs(t, err, offerrors.ErrUsage)
}

func TestLink_ModeNone(t *testing.T) {
	mainRoot, targetRoot := setupRoots(t)

	results, err := NewLinker(nil, nil).Link(mainRoot, targetRoot, []string{"a.txt"}, ModeNone)
	require.NoError(t, err)
	assert.Empty(t, results)

	_, err = os.Lstat(filepath.Join(targetRoot, "a.txt"))
	assert.True(t, os.IsNotExist(err))
}
