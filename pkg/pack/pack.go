// Package pack models a versioned source package: a directory with an
// ordered JSON description, an exclusion policy for publishing, and an
// optional version control handle. Construction never fails on a bad or
// missing description; the problem is captured and inspectable so callers
// can render diagnostics for invalid packs.
package pack

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/packship/pkg/errors"
	"github.com/arthur-debert/packship/pkg/ignore"
	"github.com/arthur-debert/packship/pkg/logging"
	"github.com/arthur-debert/packship/pkg/manifest"
	"github.com/arthur-debert/packship/pkg/semver"
	"github.com/arthur-debert/packship/pkg/vcs"
)

// Well-known filenames of the package format
const (
	// ComponentManifest describes a component pack
	ComponentManifest = "module.json"
	// TargetManifest describes a target pack
	TargetManifest = "target.json"
	// StagingFileName is where the archive is staged during publish
	StagingFileName = "upload.tar.gz"
)

// Pack is a package directory and its parsed state
type Pack struct {
	// Path is the absolute path to the pack directory
	Path string

	manifestName    string
	manifest        *manifest.Manifest
	version         *semver.Version
	latestSuitable  *semver.Version
	vcs             vcs.VCS
	ignore          *ignore.RuleSet
	installedLinked bool
	loadErr         error
	logger          zerolog.Logger
}

// Load reads the pack at path. A missing or malformed description does not
// fail the load: the resulting pack is invalid (IsValid() == false) but
// still carries its path and error for diagnostics. Only an unreadable
// ignore override file is a hard failure. latestSuitable may be nil; it is
// the externally-resolved newest candidate used by Outdated.
func Load(path, manifestName string, installedLinked bool, latestSuitable *semver.Version) (*Pack, error) {
	p := &Pack{
		Path:            path,
		manifestName:    manifestName,
		manifest:        manifest.New(),
		latestSuitable:  latestSuitable,
		installedLinked: installedLinked,
		logger:          logging.GetLogger("pack"),
	}

	m, err := manifest.Load(p.ManifestPath())
	if err != nil {
		p.loadErr = err
		p.logger.Debug().Err(err).Str("path", path).Msg("cannot load description")
	} else {
		vs, err := m.VersionString()
		if err == nil {
			p.version, err = semver.Parse(vs)
		}
		if err != nil {
			// A description without a usable version does not describe a
			// pack; keep the manifest empty so truthiness stays consistent.
			p.loadErr = err
		} else {
			p.manifest = m
		}
	}

	p.ignore, err = ignore.NewRuleSet(path)
	if err != nil {
		return nil, err
	}

	p.vcs = vcs.Detect(path)
	return p, nil
}

// IsValid reports whether the description was successfully loaded
func (p *Pack) IsValid() bool {
	return !p.manifest.IsEmpty()
}

// Err returns the load error explaining why the pack is invalid, nil for
// valid packs.
func (p *Pack) Err() error {
	return p.loadErr
}

// Exists reports whether the description file is present on disk
func (p *Pack) Exists() bool {
	_, err := os.Stat(p.ManifestPath())
	return err == nil
}

// ManifestPath returns the full path of the description file
func (p *Pack) ManifestPath() string {
	return filepath.Join(p.Path, p.manifestName)
}

// InstalledLinked reports whether this pack is a linked development copy
// rather than a registry-fetched one.
func (p *Pack) InstalledLinked() bool {
	return p.installedLinked
}

// Name returns the declared package name, "" for invalid packs
func (p *Pack) Name() string {
	return p.manifest.Name()
}

// Version returns the declared version. This is always a real, comparable
// version, never a hash or URL, and is nil only for invalid packs.
func (p *Pack) Version() *semver.Version {
	return p.version
}

// SetVersion updates the version, keeping the description field in sync
func (p *Pack) SetVersion(v *semver.Version) {
	p.version = v
	p.manifest.SetVersionString(v.String())
}

// SetName updates the declared package name
func (p *Pack) SetName(name string) {
	p.manifest.SetName(name)
}

// SetLatestAvailable records the externally-resolved newest candidate
func (p *Pack) SetLatestAvailable(v *semver.Version) {
	p.latestSuitable = v
}

// Outdated returns the latest suitable version when it is strictly newer
// than the pack's own, nil otherwise.
func (p *Pack) Outdated() *semver.Version {
	if p.latestSuitable != nil && p.version != nil && p.latestSuitable.GreaterThan(p.version) {
		return p.latestSuitable
	}
	return nil
}

// VCSIsClean reports whether the directory is not version controlled at
// all, or version controlled and without uncommitted changes.
func (p *Pack) VCSIsClean() (bool, error) {
	if p.vcs == nil {
		return true, nil
	}
	return p.vcs.IsClean()
}

// CommitVCS commits the working tree with a version message and applies tag.
// It does nothing when the directory is not version controlled.
func (p *Pack) CommitVCS(tag string) error {
	if p.vcs == nil {
		return nil
	}
	return p.vcs.Commit(fmt.Sprintf("version %s", tag), tag)
}

// Ignores reports whether the publish exclusion policy drops relPath
func (p *Pack) Ignores(relPath string) bool {
	return p.ignore.Matches(relPath)
}

// IgnoreRules exposes the compiled rule set for the archive builder
func (p *Pack) IgnoreRules() *ignore.RuleSet {
	return p.ignore
}

// WriteManifest writes the (possibly modified) description back to disk,
// preserving key order, and stages it for the next commit when the pack is
// version controlled. It does not commit.
func (p *Pack) WriteManifest() error {
	if err := p.manifest.Save(p.ManifestPath()); err != nil {
		return err
	}
	if p.vcs != nil {
		if err := p.vcs.MarkForCommit(p.manifestName); err != nil {
			return err
		}
	}
	return nil
}

// Manifest exposes the ordered description for read access
func (p *Pack) Manifest() *manifest.Manifest {
	return p.manifest
}

// ArchiveBaseName is the root directory name of the published archive, so
// extracted versions never collide.
func (p *Pack) ArchiveBaseName() string {
	return fmt.Sprintf("%s-%s", p.Name(), p.version)
}

// String renders a short description for logs and errors
func (p *Pack) String() string {
	if !p.IsValid() {
		return fmt.Sprintf("invalid pack at %s", p.Path)
	}
	return fmt.Sprintf("%s %s at %s", p.Name(), p.version, p.Path)
}

// Validate returns a coded error for invalid packs, nil otherwise
func (p *Pack) Validate() error {
	if p.IsValid() {
		return nil
	}
	return errors.Wrapf(p.loadErr, errors.ErrPackInvalid, "not a valid pack: %s", p.Path)
}
