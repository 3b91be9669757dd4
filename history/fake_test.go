package history

import (
	"fmt"

	"github.com/go-git/go-git/v5/plumbing"
)

// fakeStore is an in-memory commit graph keyed by short labels.
type fakeStore struct {
	refs     []Reference
	refsErr  error
	commits  map[plumbing.Hash]*Commit
	corrupt  map[plumbing.Hash]bool
	branches []string
	resolves map[plumbing.Hash]int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		commits:  make(map[plumbing.Hash]*Commit),
		corrupt:  make(map[plumbing.Hash]bool),
		resolves: make(map[plumbing.Hash]int),
	}
}

func id(label string) plumbing.Hash {
	return plumbing.ComputeHash(plumbing.CommitObject, []byte(label))
}

func author(name, email string) *Identity {
	return &Identity{Name: name, Email: email}
}

// add records a commit named label with the given author and parent labels.
func (s *fakeStore) add(label string, a *Identity, parents ...string) plumbing.Hash {
	c := &Commit{ID: id(label), Author: a}
	for _, p := range parents {
		c.Parents = append(c.Parents, id(p))
	}
	s.commits[c.ID] = c
	return c.ID
}

func (s *fakeStore) ref(name, label string) {
	s.refs = append(s.refs, Reference{Name: name, Target: id(label)})
}

func (s *fakeStore) branch(name, label string) {
	s.ref("refs/heads/"+name, label)
	s.branches = append(s.branches, name)
}

func (s *fakeStore) ListReferences() ([]Reference, error) {
	if s.refsErr != nil {
		return nil, s.refsErr
	}
	return s.refs, nil
}

func (s *fakeStore) ResolveCommit(h plumbing.Hash) (*Commit, error) {
	s.resolves[h]++
	if s.corrupt[h] {
		return nil, fmt.Errorf("%w: %s", ErrCorruptObject, h)
	}
	c, ok := s.commits[h]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrCommitNotFound, h)
	}
	return c, nil
}

func (s *fakeStore) ListLocalBranches() ([]string, error) {
	if s.refsErr != nil {
		return nil, s.refsErr
	}
	return s.branches, nil
}
