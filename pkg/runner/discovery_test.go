package runner_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/csvdoc/pkg/runner"
)

func relAll(t *testing.T, dir string, files []string) []string {
	t.Helper()

	out := make([]string, 0, len(files))
	for _, f := range files {
		rel, err := filepath.Rel(dir, f)
		require.NoError(t, err)
		out = append(out, filepath.ToSlash(rel))
	}
	return out
}

func TestDiscover_SingleFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "data.csv", "a\n")

	files, err := runner.Discover(context.Background(), runner.Options{
		Paths:      []string{"data.csv"},
		WorkingDir: dir,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"data.csv"}, relAll(t, dir, files))
}

func TestDiscover_Directory(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "a.csv", "")
	writeFile(t, dir, "nested/b.tsv", "")
	writeFile(t, dir, "nested/deeper/c.CSV", "")
	writeFile(t, dir, "notes.txt", "")
	writeFile(t, dir, "README.md", "")

	files, err := runner.Discover(context.Background(), runner.Options{WorkingDir: dir})
	require.NoError(t, err)
	assert.Equal(t, []string{"a.csv", "nested/deeper/c.CSV"}, relAll(t, dir, files))
}

func TestDiscover_CustomExtensions(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "a.csv", "")
	writeFile(t, dir, "b.psv", "")

	files, err := runner.Discover(context.Background(), runner.Options{
		WorkingDir: dir,
		Extensions: []string{".psv"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"b.psv"}, relAll(t, dir, files))
}

func TestDiscover_ExcludeGlobs(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "keep.csv", "")
	writeFile(t, dir, "skip.csv", "")
	writeFile(t, dir, "vendor/dep.csv", "")
	writeFile(t, dir, "data/raw/x.csv", "")

	files, err := runner.Discover(context.Background(), runner.Options{
		WorkingDir:   dir,
		ExcludeGlobs: []string{"skip.csv", "vendor/**", "**/raw/*.csv"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"keep.csv"}, relAll(t, dir, files))
}

func TestDiscover_IncludeGlobs(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "a.csv", "")
	writeFile(t, dir, "reports/q1.csv", "")
	writeFile(t, dir, "reports/q2.csv", "")

	files, err := runner.Discover(context.Background(), runner.Options{
		WorkingDir:   dir,
		IncludeGlobs: []string{"reports/*.csv"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"reports/q1.csv", "reports/q2.csv"}, relAll(t, dir, files))
}

func TestDiscover_HiddenFilesAndDirectories(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "visible.csv", "")
	writeFile(t, dir, ".hidden.csv", "")
	writeFile(t, dir, ".git/data.csv", "")

	files, err := runner.Discover(context.Background(), runner.Options{WorkingDir: dir})
	require.NoError(t, err)
	assert.Equal(t, []string{"visible.csv"}, relAll(t, dir, files))
}

func TestDiscover_DeduplicationAndOrdering(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "z.csv", "")
	writeFile(t, dir, "a.csv", "")
	writeFile(t, dir, "m/b.csv", "")

	files, err := runner.Discover(context.Background(), runner.Options{
		Paths:      []string{"z.csv", ".", "m", "a.csv"},
		WorkingDir: dir,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"a.csv", "m/b.csv", "z.csv"}, relAll(t, dir, files))
}

func TestDiscover_NonExistentPath(t *testing.T) {
	t.Parallel()

	_, err := runner.Discover(context.Background(), runner.Options{
		Paths:      []string{"missing.csv"},
		WorkingDir: t.TempDir(),
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestDiscover_ContextCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := runner.Discover(ctx, runner.Options{WorkingDir: t.TempDir()})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDiscover_DirectorySymlinks(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	target := t.TempDir()
	writeFile(t, dir, "own.csv", "")
	writeFile(t, target, "linked.csv", "")

	if err := os.Symlink(target, filepath.Join(dir, "link")); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	files, err := runner.Discover(context.Background(), runner.Options{WorkingDir: dir})
	require.NoError(t, err)
	assert.Len(t, files, 1)

	files, err = runner.Discover(context.Background(), runner.Options{
		WorkingDir:     dir,
		FollowSymlinks: true,
	})
	require.NoError(t, err)
	assert.Len(t, files, 2)
}

func TestDiscover_SymlinkLoop(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "own.csv", "")

	if err := os.Symlink(dir, filepath.Join(dir, "loop")); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	files, err := runner.Discover(context.Background(), runner.Options{
		WorkingDir:     dir,
		FollowSymlinks: true,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"own.csv"}, relAll(t, dir, files))
}

func TestDefaultExtensions(t *testing.T) {
	t.Parallel()

	exts := runner.DefaultExtensions()
	assert.Contains(t, exts, ".csv")
	assert.NotContains(t, exts, ".md")
}
