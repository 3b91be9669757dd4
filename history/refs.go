package history

import (
	"fmt"

	"github.com/go-git/go-git/v5/plumbing"
)

// Heads returns the commit every reference points to, across all
// namespaces. References without a resolved target are skipped.
func Heads(store Store) ([]plumbing.Hash, error) {
	refs, err := store.ListReferences()
	if err != nil {
		return nil, fmt.Errorf("list references: %w", err)
	}

	heads := make([]plumbing.Hash, 0, len(refs))
	for _, ref := range refs {
		if ref.Target.IsZero() {
			continue
		}
		heads = append(heads, ref.Target)
	}
	return heads, nil
}

// CountBranches returns the number of local branches. Unlike Heads it
// ignores tags, remotes and any other namespace.
func CountBranches(store Store) (int, error) {
	branches, err := store.ListLocalBranches()
	if err != nil {
		return 0, fmt.Errorf("list branches: %w", err)
	}
	return len(branches), nil
}

// Compute walks all history reachable from any reference in store.
func Compute(store Store) (Stats, error) {
	heads, err := Heads(store)
	if err != nil {
		return Stats{}, err
	}
	return Walk(store, heads)
}
