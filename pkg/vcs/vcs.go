// Package vcs gives packship a narrow view of version control: is the tree
// clean, stage a file, commit and tag. Backends are selected by inspecting
// the directory, and a directory under no supported VCS simply has no
// handle.
package vcs

import (
	"github.com/arthur-debert/packship/pkg/logging"
)

// VCS is the capability surface the pack entity relies on
type VCS interface {
	// IsClean reports whether the working tree has no uncommitted changes
	IsClean() (bool, error)
	// Commit records the current working tree state, applying tag when
	// it is non-empty
	Commit(message, tag string) error
	// MarkForCommit stages the file at relPath for the next commit
	MarkForCommit(relPath string) error
}

// Detect inspects dir and returns a handle for the version control system
// managing it, or nil when no supported VCS is found.
func Detect(dir string) VCS {
	logger := logging.GetLogger("vcs")

	if g := detectGit(dir); g != nil {
		logger.Debug().Str("dir", dir).Msg("git working tree detected")
		return g
	}
	return nil
}
