package pack

import (
	"os"
	"path/filepath"
	"testing"

	gogit "github.com/go-git/go-git/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/packship/pkg/errors"
	"github.com/arthur-debert/packship/pkg/semver"
	"github.com/arthur-debert/packship/pkg/testutil"
)

func loadPack(t *testing.T, dir string) *Pack {
	t.Helper()
	p, err := Load(dir, ComponentManifest, false, nil)
	require.NoError(t, err)
	return p
}

func TestLoadValidPack(t *testing.T) {
	dir := testutil.MakePack(t, "simplelog", "0.0.7")
	p := loadPack(t, dir)

	assert.True(t, p.IsValid())
	assert.NoError(t, p.Err())
	assert.True(t, p.Exists())
	assert.Equal(t, "simplelog", p.Name())
	assert.Equal(t, "0.0.7", p.Version().String())
	assert.Equal(t, "simplelog-0.0.7", p.ArchiveBaseName())
	assert.False(t, p.InstalledLinked())
}

func TestLoadMissingManifest(t *testing.T) {
	dir := t.TempDir()
	p, err := Load(dir, ComponentManifest, false, nil)
	require.NoError(t, err)

	assert.False(t, p.IsValid())
	assert.Error(t, p.Err())
	assert.False(t, p.Exists())
	assert.Equal(t, dir, p.Path)
	assert.Equal(t, "", p.Name())
	assert.Nil(t, p.Version())

	err = p.Validate()
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrPackInvalid))
}

func TestLoadMalformedManifest(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ComponentManifest), []byte("{nope"), 0644))

	p, err := Load(dir, ComponentManifest, false, nil)
	require.NoError(t, err)
	assert.False(t, p.IsValid())
	assert.Error(t, p.Err())
}

func TestLoadManifestWithoutVersion(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ComponentManifest),
		[]byte(`{"name": "noversion"}`), 0644))

	p, err := Load(dir, ComponentManifest, false, nil)
	require.NoError(t, err)
	assert.False(t, p.IsValid())
	assert.Error(t, p.Err())
	assert.Nil(t, p.Version())
}

func TestLoadUnreadableIgnoreFileFails(t *testing.T) {
	dir := testutil.MakePack(t, "simplelog", "1.0.0")
	// A directory with the override file's name makes the open fail with
	// something other than "does not exist"
	require.NoError(t, os.Mkdir(filepath.Join(dir, ".yotta_ignore"), 0755))

	_, err := Load(dir, ComponentManifest, false, nil)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrIgnoreRead))
}

func TestSetVersionSyncsManifest(t *testing.T) {
	dir := testutil.MakePack(t, "simplelog", "1.2.3")
	p := loadPack(t, dir)

	p.SetVersion(semver.MustParse("1.3.0"))
	assert.Equal(t, "1.3.0", p.Version().String())

	vs, err := p.Manifest().VersionString()
	require.NoError(t, err)
	assert.Equal(t, "1.3.0", vs)
}

func TestSetName(t *testing.T) {
	dir := testutil.MakePack(t, "oldname", "1.0.0")
	p := loadPack(t, dir)

	p.SetName("newname")
	assert.Equal(t, "newname", p.Name())
}

func TestOutdated(t *testing.T) {
	tests := []struct {
		name         string
		version      string
		latest       string // "" = never set
		wantOutdated bool
	}{
		{name: "newer available", version: "1.0.0", latest: "1.1.0", wantOutdated: true},
		{name: "same version", version: "1.0.0", latest: "1.0.0", wantOutdated: false},
		{name: "older available", version: "1.1.0", latest: "1.0.0", wantOutdated: false},
		{name: "no candidate", version: "1.0.0", latest: "", wantOutdated: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := testutil.MakePack(t, "simplelog", tt.version)
			p := loadPack(t, dir)
			if tt.latest != "" {
				p.SetLatestAvailable(semver.MustParse(tt.latest))
			}

			got := p.Outdated()
			if tt.wantOutdated {
				require.NotNil(t, got)
				assert.Equal(t, tt.latest, got.String())
			} else {
				assert.Nil(t, got)
			}
		})
	}
}

func TestOutdatedViaLoad(t *testing.T) {
	dir := testutil.MakePack(t, "simplelog", "1.0.0")
	p, err := Load(dir, ComponentManifest, false, semver.MustParse("2.0.0"))
	require.NoError(t, err)

	require.NotNil(t, p.Outdated())
	assert.Equal(t, "2.0.0", p.Outdated().String())
}

func TestVCSDetectedAtLoad(t *testing.T) {
	dir := testutil.MakePack(t, "simplelog", "1.0.0")
	repo, err := gogit.PlainInit(dir, false)
	require.NoError(t, err)
	cfg, err := repo.Config()
	require.NoError(t, err)
	cfg.User.Name = "test"
	cfg.User.Email = "test@example.com"
	require.NoError(t, repo.SetConfig(cfg))

	p := loadPack(t, dir)

	// The manifest is untracked, so the tree is dirty
	clean, err := p.VCSIsClean()
	require.NoError(t, err)
	assert.False(t, clean)

	// WriteManifest stages the description; CommitVCS commits and tags
	require.NoError(t, p.WriteManifest())
	require.NoError(t, p.CommitVCS("v1.0.0"))

	clean, err = p.VCSIsClean()
	require.NoError(t, err)
	assert.True(t, clean)

	_, err = repo.Tag("v1.0.0")
	assert.NoError(t, err)
}

func TestVCSIsCleanWithoutVCS(t *testing.T) {
	dir := testutil.MakePack(t, "simplelog", "1.0.0")
	p := loadPack(t, dir)

	clean, err := p.VCSIsClean()
	require.NoError(t, err)
	assert.True(t, clean)
}

func TestCommitVCSWithoutVCSIsNoop(t *testing.T) {
	dir := testutil.MakePack(t, "simplelog", "1.0.0")
	p := loadPack(t, dir)

	assert.NoError(t, p.CommitVCS("v1.0.0"))
}

func TestIgnores(t *testing.T) {
	dir := testutil.MakePack(t, "simplelog", "1.0.0")
	testutil.WriteFile(t, dir, ".yotta_ignore", "*.secret\n")
	p := loadPack(t, dir)

	assert.True(t, p.Ignores("build/out.o"))
	assert.True(t, p.Ignores("keys.secret"))
	assert.False(t, p.Ignores("src/main.c"))
}

func TestWriteManifestRoundTrip(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ComponentManifest), []byte(`{
  "name": "ordered",
  "version": "1.0.0",
  "description": "round trip",
  "license": "MIT"
}`), 0644))

	p := loadPack(t, dir)
	p.SetVersion(semver.MustParse("1.0.1"))
	require.NoError(t, p.WriteManifest())

	reloaded := loadPack(t, dir)
	assert.True(t, reloaded.IsValid())
	assert.Equal(t, "1.0.1", reloaded.Version().String())
	assert.Equal(t, []string{"name", "version", "description", "license"}, reloaded.Manifest().Keys())
}

func TestString(t *testing.T) {
	dir := testutil.MakePack(t, "simplelog", "1.0.0")
	p := loadPack(t, dir)
	assert.Contains(t, p.String(), "simplelog 1.0.0")

	invalid, err := Load(t.TempDir(), ComponentManifest, false, nil)
	require.NoError(t, err)
	assert.Contains(t, invalid.String(), "invalid pack")
}
