// Package semver wraps the Masterminds semver types with the small surface
// the rest of packship needs: parsing manifest version strings, ordering
// comparisons, and bump operations for the version command.
package semver

import (
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/arthur-debert/packship/pkg/errors"
)

// Version is a parsed semantic version. It is always a real, comparable
// version, never a URL or VCS hash.
type Version struct {
	v *semver.Version
}

// Parse parses a semantic version string. A leading "v" is tolerated on
// input but never produced on output.
func Parse(s string) (*Version, error) {
	v, err := semver.StrictNewVersion(strings.TrimPrefix(s, "v"))
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrVersionParse, "invalid version %q", s)
	}
	return &Version{v: v}, nil
}

// MustParse parses a version string known to be valid, panicking otherwise.
// Intended for tests and constants.
func MustParse(s string) *Version {
	v, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return v
}

// String returns the canonical form, e.g. "1.2.3" or "1.2.3-beta.1".
func (v *Version) String() string {
	return v.v.String()
}

// GreaterThan reports whether v is strictly newer than other
func (v *Version) GreaterThan(other *Version) bool {
	return v.v.GreaterThan(other.v)
}

// Equal reports whether v and other denote the same version
func (v *Version) Equal(other *Version) bool {
	return v.v.Equal(other.v)
}

// Bump returns a new version with the named component incremented. Component
// is one of "major", "minor" or "patch"; anything else is parsed as an
// explicit version.
func (v *Version) Bump(component string) (*Version, error) {
	switch component {
	case "major":
		nv := v.v.IncMajor()
		return &Version{v: &nv}, nil
	case "minor":
		nv := v.v.IncMinor()
		return &Version{v: &nv}, nil
	case "patch":
		nv := v.v.IncPatch()
		return &Version{v: &nv}, nil
	default:
		return Parse(component)
	}
}
