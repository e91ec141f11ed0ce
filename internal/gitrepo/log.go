package gitrepo

import (
	"context"
	"fmt"

	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"

	"github.com/ariel-frischer/commitlog/internal/conventional"
)

// RefRoot is the sentinel ref name that resolves to the repository's
// first commit, so "root..HEAD" covers the whole history.
const RefRoot = "root"

// ResolveRef resolves a ref identifier (branch, tag, hash, HEAD, or the
// root sentinel) to a commit hash.
func (r *Reader) ResolveRef(name string) (plumbing.Hash, error) {
	if name == RefRoot {
		return r.firstCommit()
	}

	hash, err := r.repo.ResolveRevision(plumbing.Revision(name))
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("resolving ref %q: %w", name, err)
	}

	logDebug("[gitrepo] resolved %s to %s", name, hash.String())
	return *hash, nil
}

// firstCommit returns the hash of the first parentless commit reachable
// from HEAD, walking newest to oldest.
func (r *Reader) firstCommit() (plumbing.Hash, error) {
	head, err := r.repo.Head()
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("getting HEAD reference: %w", err)
	}

	headCommit, err := r.repo.CommitObject(head.Hash())
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("reading HEAD commit: %w", err)
	}

	root := plumbing.ZeroHash
	iter := object.NewCommitPreorderIter(headCommit, nil, nil)
	err = iter.ForEach(func(c *object.Commit) error {
		if c.NumParents() == 0 {
			root = c.Hash
			return storer.ErrStop
		}
		return nil
	})
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("walking history for root commit: %w", err)
	}
	if root == plumbing.ZeroHash {
		return plumbing.ZeroHash, fmt.Errorf("no root commit reachable from HEAD")
	}

	logDebug("[gitrepo] resolved root to %s", root.String())
	return root, nil
}

// CommitsBetween returns the commits in the range from..to: reachable
// from to but not from from, newest first, the same set "git log
// from..to" reports. The from commit itself is excluded. An empty range
// yields an empty slice, not an error.
func (r *Reader) CommitsBetween(ctx context.Context, from, to string) ([]conventional.RawCommit, error) {
	fromHash, err := r.ResolveRef(from)
	if err != nil {
		return nil, err
	}
	toHash, err := r.ResolveRef(to)
	if err != nil {
		return nil, err
	}

	if fromHash == toHash {
		return nil, nil
	}

	excluded, err := r.ancestorSet(fromHash)
	if err != nil {
		return nil, err
	}

	toCommit, err := r.repo.CommitObject(toHash)
	if err != nil {
		return nil, fmt.Errorf("reading commit %s: %w", toHash.String(), err)
	}

	var commits []conventional.RawCommit
	iter := object.NewCommitPreorderIter(toCommit, excluded, nil)
	err = iter.ForEach(func(c *object.Commit) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		commits = append(commits, rawCommit(c))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking commits %s..%s: %w", from, to, err)
	}

	logDebug("[gitrepo] collected %d commits in %s..%s", len(commits), from, to)
	return commits, nil
}

// ancestorSet collects the hash of the given commit and all its
// ancestors, the exclusion set for a range walk.
func (r *Reader) ancestorSet(hash plumbing.Hash) (map[plumbing.Hash]bool, error) {
	commit, err := r.repo.CommitObject(hash)
	if err != nil {
		return nil, fmt.Errorf("reading commit %s: %w", hash.String(), err)
	}

	seen := make(map[plumbing.Hash]bool)
	iter := object.NewCommitPreorderIter(commit, nil, nil)
	err = iter.ForEach(func(c *object.Commit) error {
		seen[c.Hash] = true
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking ancestors of %s: %w", hash.String(), err)
	}

	return seen, nil
}

// rawCommit converts a go-git commit object to the reader's output shape.
func rawCommit(c *object.Commit) conventional.RawCommit {
	return conventional.RawCommit{
		Hash:    c.Hash.String(),
		Author:  c.Author.Name,
		Email:   c.Author.Email,
		When:    c.Author.When,
		Message: c.Message,
	}
}
