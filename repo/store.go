package repo

import (
	"errors"
	"fmt"
	"sync"
	"unicode/utf8"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/anton-dovnar/gno/history"
	"github.com/anton-dovnar/gno/logging"
)

// maxPeelDepth bounds how many annotated tags pointing at tags are followed.
const maxPeelDepth = 16

// Store implements history.Store on top of go-git.
type Store struct {
	repo *git.Repository

	// shallow holds the boundary commits of a shallow clone. Their parents
	// were never fetched, so they are walked as roots.
	shallow func() (mapset.Set[plumbing.Hash], error)
}

var _ history.Store = (*Store)(nil)

func NewStore(r *git.Repository) *Store {
	return &Store{
		repo: r,
		shallow: sync.OnceValues(func() (mapset.Set[plumbing.Hash], error) {
			hashes, err := r.Storer.Shallow()
			if err != nil {
				return nil, fmt.Errorf("%w: read shallow commits: %w", history.ErrStoreUnavailable, err)
			}
			if len(hashes) > 0 {
				logging.Logger.Debug("Shallow repository", "boundary", len(hashes))
			}
			return mapset.NewThreadUnsafeSet(hashes...), nil
		}),
	}
}

// ListReferences lists every reference, including HEAD, tags, remotes and
// notes, peeled to the commit it designates. References that do not lead to
// a commit are skipped: they may be mid-update by another process or point
// at trees and blobs.
func (s *Store) ListReferences() ([]history.Reference, error) {
	refIter, err := s.repo.References()
	if err != nil {
		return nil, fmt.Errorf("%w: read references: %w", history.ErrStoreUnavailable, err)
	}
	defer refIter.Close()

	var refs []history.Reference
	err = refIter.ForEach(func(ref *plumbing.Reference) error {
		target, ok := s.peel(ref)
		if !ok {
			logging.Logger.Debug("Skipping unresolvable reference", "ref", ref.Name().String())
			return nil
		}
		refs = append(refs, history.Reference{Name: ref.Name().String(), Target: target})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: iterate references: %w", history.ErrStoreUnavailable, err)
	}
	return refs, nil
}

// peel resolves symbolic references and annotated tags down to a commit.
func (s *Store) peel(ref *plumbing.Reference) (plumbing.Hash, bool) {
	if ref.Type() == plumbing.SymbolicReference {
		resolved, err := s.repo.Reference(ref.Name(), true)
		if err != nil {
			return plumbing.ZeroHash, false
		}
		ref = resolved
	}

	h := ref.Hash()
	for depth := 0; depth < maxPeelDepth; depth++ {
		if h.IsZero() {
			return plumbing.ZeroHash, false
		}
		obj, err := s.repo.Storer.EncodedObject(plumbing.AnyObject, h)
		if err != nil {
			return plumbing.ZeroHash, false
		}
		switch obj.Type() {
		case plumbing.CommitObject:
			return h, true
		case plumbing.TagObject:
			tag, err := object.DecodeTag(s.repo.Storer, obj)
			if err != nil {
				return plumbing.ZeroHash, false
			}
			h = tag.Target
		default:
			return plumbing.ZeroHash, false
		}
	}
	return plumbing.ZeroHash, false
}

// ResolveCommit reads the commit id from the object store. Commits on a
// shallow boundary are returned without parents.
func (s *Store) ResolveCommit(id plumbing.Hash) (*history.Commit, error) {
	shallow, err := s.shallow()
	if err != nil {
		return nil, err
	}

	commit, err := s.repo.CommitObject(id)
	switch {
	case errors.Is(err, plumbing.ErrObjectNotFound):
		return nil, fmt.Errorf("%w: %s", history.ErrCommitNotFound, id)
	case err != nil:
		return nil, fmt.Errorf("%w: %s: %w", history.ErrCorruptObject, id, err)
	}

	parents := commit.ParentHashes
	if shallow.Contains(id) {
		parents = nil
	}
	return &history.Commit{
		ID:      id,
		Parents: parents,
		Author:  authorOf(commit),
	}, nil
}

// authorOf returns nil when the commit carries no usable author line.
// Fields that are not valid UTF-8 are blanked rather than dropped.
func authorOf(c *object.Commit) *history.Identity {
	sig := c.Author
	if sig.Name == "" && sig.Email == "" && sig.When.IsZero() {
		return nil
	}
	id := &history.Identity{Name: sig.Name, Email: sig.Email}
	if !utf8.ValidString(id.Name) {
		id.Name = ""
	}
	if !utf8.ValidString(id.Email) {
		id.Email = ""
	}
	return id
}

// ListLocalBranches returns the short names of all refs/heads/* references.
func (s *Store) ListLocalBranches() ([]string, error) {
	branchIter, err := s.repo.Branches()
	if err != nil {
		return nil, fmt.Errorf("%w: read branches: %w", history.ErrStoreUnavailable, err)
	}
	defer branchIter.Close()

	var names []string
	err = branchIter.ForEach(func(ref *plumbing.Reference) error {
		names = append(names, ref.Name().Short())
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: iterate branches: %w", history.ErrStoreUnavailable, err)
	}
	return names, nil
}
