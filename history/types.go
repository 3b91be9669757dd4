// Package history walks the commit graph of a repository and aggregates
// statistics over every commit reachable from any reference.
package history

import (
	"errors"
	"fmt"

	"github.com/go-git/go-git/v5/plumbing"
)

var (
	// ErrStoreUnavailable is returned when the object store or its
	// reference database cannot be read at all.
	ErrStoreUnavailable = errors.New("repository store unavailable")
	// ErrCommitNotFound is returned when a commit reachable from a
	// reference is missing from the object store.
	ErrCommitNotFound = errors.New("commit not found")
	// ErrCorruptObject is returned when a commit exists but cannot be decoded.
	ErrCorruptObject = errors.New("corrupt commit object")
)

// Reference is a named pointer into the commit graph. Target is the commit
// the reference resolves to after peeling symbolic refs and tags.
type Reference struct {
	Name   string
	Target plumbing.Hash
}

// Identity is an author name and email pair.
type Identity struct {
	Name  string
	Email string
}

// String renders the identity as "Name <email>", the key used to count
// distinct contributors.
func (i Identity) String() string {
	return fmt.Sprintf("%s <%s>", i.Name, i.Email)
}

// Commit is a node of the ancestry graph. Author is nil when the author
// signature could not be read.
type Commit struct {
	ID      plumbing.Hash
	Parents []plumbing.Hash
	Author  *Identity
}

// Store is the read-only view of a repository the walker depends on.
type Store interface {
	// ListReferences returns every reference that resolves to a commit.
	// Unresolvable references are left out rather than reported.
	ListReferences() ([]Reference, error)
	// ResolveCommit returns the commit named by id, or an error wrapping
	// ErrCommitNotFound or ErrCorruptObject.
	ResolveCommit(id plumbing.Hash) (*Commit, error)
	// ListLocalBranches returns the short names of refs/heads/*.
	ListLocalBranches() ([]string, error)
}

// Stats holds the aggregates produced by one traversal.
type Stats struct {
	Commits      int
	Contributors int
}

// TraversalError reports a commit that could not be read while walking.
// The walk is aborted because a partial count would be wrong.
type TraversalError struct {
	ID  plumbing.Hash
	Err error
}

func (e *TraversalError) Error() string {
	return fmt.Sprintf("walk history at %s: %v", e.ID, e.Err)
}

func (e *TraversalError) Unwrap() error {
	return e.Err
}
