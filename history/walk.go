package history

import (
	"github.com/go-git/go-git/v5/plumbing"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/emirpasic/gods/stacks/arraystack"
)

// Walk visits every commit reachable from heads exactly once and returns
// the number of distinct commits and distinct author identities.
//
// All heads seed a single traversal so history shared between references
// is only counted once. Parents are pushed without checking the visited
// set; duplicates are dropped when popped.
func Walk(store Store, heads []plumbing.Hash) (Stats, error) {
	visited := mapset.NewThreadUnsafeSet[plumbing.Hash]()
	contributors := mapset.NewThreadUnsafeSet[string]()

	// Iteratively walk the commit graph (avoid recursion)
	toProcess := arraystack.New()
	for _, h := range heads {
		toProcess.Push(h)
	}

	for !toProcess.Empty() {
		v, _ := toProcess.Pop()
		current := v.(plumbing.Hash)
		if !visited.Add(current) {
			continue
		}

		commit, err := store.ResolveCommit(current)
		if err != nil {
			return Stats{}, &TraversalError{ID: current, Err: err}
		}

		if commit.Author != nil {
			contributors.Add(commit.Author.String())
		}

		for _, parent := range commit.Parents {
			toProcess.Push(parent)
		}
	}

	return Stats{
		Commits:      visited.Cardinality(),
		Contributors: contributors.Cardinality(),
	}, nil
}
