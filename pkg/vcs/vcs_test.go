package vcs

import (
	"os"
	"path/filepath"
	"testing"

	gogit "github.com/go-git/go-git/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// initRepo creates an empty git repository with a commit identity configured
func initRepo(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	repo, err := gogit.PlainInit(dir, false)
	require.NoError(t, err)

	cfg, err := repo.Config()
	require.NoError(t, err)
	cfg.User.Name = "test"
	cfg.User.Email = "test@example.com"
	require.NoError(t, repo.SetConfig(cfg))

	return dir
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
}

func TestDetectNoVCS(t *testing.T) {
	assert.Nil(t, Detect(t.TempDir()))
}

func TestDetectGit(t *testing.T) {
	dir := initRepo(t)
	handle := Detect(dir)
	require.NotNil(t, handle)
}

func TestIsClean(t *testing.T) {
	dir := initRepo(t)
	handle := Detect(dir)
	require.NotNil(t, handle)

	clean, err := handle.IsClean()
	require.NoError(t, err)
	assert.True(t, clean)

	writeFile(t, dir, "module.json", `{"name": "x", "version": "1.0.0"}`)
	clean, err = handle.IsClean()
	require.NoError(t, err)
	assert.False(t, clean)
}

func TestMarkForCommitAndCommit(t *testing.T) {
	dir := initRepo(t)
	handle := Detect(dir)
	require.NotNil(t, handle)

	writeFile(t, dir, "module.json", `{"name": "x", "version": "1.0.1"}`)
	require.NoError(t, handle.MarkForCommit("module.json"))
	require.NoError(t, handle.Commit("version v1.0.1", "v1.0.1"))

	clean, err := handle.IsClean()
	require.NoError(t, err)
	assert.True(t, clean)

	// The tag was applied
	repo, err := gogit.PlainOpen(dir)
	require.NoError(t, err)
	_, err = repo.Tag("v1.0.1")
	assert.NoError(t, err)
}

func TestCommitWithoutTag(t *testing.T) {
	dir := initRepo(t)
	handle := Detect(dir)
	require.NotNil(t, handle)

	writeFile(t, dir, "a.txt", "a")
	require.NoError(t, handle.MarkForCommit("a.txt"))
	require.NoError(t, handle.Commit("initial", ""))

	repo, err := gogit.PlainOpen(dir)
	require.NoError(t, err)
	head, err := repo.Head()
	require.NoError(t, err)
	commit, err := repo.CommitObject(head.Hash())
	require.NoError(t, err)
	assert.Equal(t, "initial", commit.Message)
}
