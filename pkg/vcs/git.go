package vcs

import (
	gogit "github.com/go-git/go-git/v5"

	"github.com/arthur-debert/packship/pkg/errors"
)

// Git is the go-git backed VCS handle
type Git struct {
	repo *gogit.Repository
}

// detectGit opens dir as a git working tree, returning nil when dir is not
// the root of one.
func detectGit(dir string) *Git {
	repo, err := gogit.PlainOpen(dir)
	if err != nil {
		return nil
	}
	return &Git{repo: repo}
}

// IsClean reports whether the working tree has no uncommitted changes
func (g *Git) IsClean() (bool, error) {
	wt, err := g.repo.Worktree()
	if err != nil {
		return false, errors.Wrap(err, errors.ErrVCSAccess, "cannot open working tree")
	}
	status, err := wt.Status()
	if err != nil {
		return false, errors.Wrap(err, errors.ErrVCSAccess, "cannot read working tree status")
	}
	return status.IsClean(), nil
}

// Commit commits all tracked changes, then applies tag when non-empty
func (g *Git) Commit(message, tag string) error {
	wt, err := g.repo.Worktree()
	if err != nil {
		return errors.Wrap(err, errors.ErrVCSCommit, "cannot open working tree")
	}
	hash, err := wt.Commit(message, &gogit.CommitOptions{All: true})
	if err != nil {
		return errors.Wrap(err, errors.ErrVCSCommit, "commit failed")
	}
	if tag == "" {
		return nil
	}
	_, err = g.repo.CreateTag(tag, hash, nil)
	if err != nil {
		return errors.Wrapf(err, errors.ErrVCSCommit, "cannot create tag %s", tag)
	}
	return nil
}

// MarkForCommit stages the file at relPath for the next commit
func (g *Git) MarkForCommit(relPath string) error {
	wt, err := g.repo.Worktree()
	if err != nil {
		return errors.Wrap(err, errors.ErrVCSAccess, "cannot open working tree")
	}
	if _, err := wt.Add(relPath); err != nil {
		return errors.Wrapf(err, errors.ErrVCSAccess, "cannot stage %s", relPath)
	}
	return nil
}
