package history

import (
	"fmt"
	"testing"

	"github.com/go-git/go-git/v5/plumbing"
	"pgregory.net/rapid"
)

var authorPool = []*Identity{
	author("alice", "alice@example.com"),
	author("alice", "alice@corp.example"),
	author("bob", "bob@example.com"),
	author("Bob", "bob@example.com"),
	author("carol", "carol@example.com"),
}

// drawGraph builds a random DAG. Node i may only have parents j < i.
func drawGraph(t *rapid.T) (*fakeStore, int) {
	store := newFakeStore()
	n := rapid.IntRange(0, 40).Draw(t, "nodes")
	for i := 0; i < n; i++ {
		var parents []string
		if i > 0 {
			for _, p := range rapid.SliceOfN(rapid.IntRange(0, i-1), 0, 3).Draw(t, fmt.Sprintf("parents-%d", i)) {
				parents = append(parents, fmt.Sprint(p))
			}
		}
		var a *Identity
		if idx := rapid.IntRange(-1, len(authorPool)-1).Draw(t, fmt.Sprintf("author-%d", i)); idx >= 0 {
			a = authorPool[idx]
		}
		store.add(fmt.Sprint(i), a, parents...)
	}
	if n > 0 {
		for i, h := range rapid.SliceOfN(rapid.IntRange(0, n-1), 0, 6).Draw(t, "heads") {
			store.ref(fmt.Sprintf("refs/heads/b%d", i), fmt.Sprint(h))
		}
	}
	return store, n
}

// reachable collects every commit reachable from start with a plain
// depth-first search, used as the reference result.
func reachable(store *fakeStore, start plumbing.Hash, seen map[plumbing.Hash]bool) {
	if seen[start] {
		return
	}
	seen[start] = true
	for _, p := range store.commits[start].Parents {
		reachable(store, p, seen)
	}
}

func TestProperty_WalkMatchesUnionReachability(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		store, _ := drawGraph(t)

		seen := make(map[plumbing.Hash]bool)
		perHeadSum := 0
		for _, ref := range store.refs {
			reachable(store, ref.Target, seen)
			single := make(map[plumbing.Hash]bool)
			reachable(store, ref.Target, single)
			perHeadSum += len(single)
		}
		authors := make(map[string]struct{})
		for h := range seen {
			if a := store.commits[h].Author; a != nil {
				authors[a.String()] = struct{}{}
			}
		}

		stats, err := Compute(store)
		if err != nil {
			t.Fatalf("Compute: %v", err)
		}
		if stats.Commits != len(seen) {
			t.Fatalf("Commits = %d, want %d", stats.Commits, len(seen))
		}
		if stats.Contributors != len(authors) {
			t.Fatalf("Contributors = %d, want %d", stats.Contributors, len(authors))
		}
		if stats.Commits > perHeadSum {
			t.Fatalf("Commits = %d exceeds per-head sum %d", stats.Commits, perHeadSum)
		}
		for h, n := range store.resolves {
			if n != 1 {
				t.Fatalf("commit %s resolved %d times", h, n)
			}
		}
	})
}

func TestProperty_ComputeIsIdempotent(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		store, _ := drawGraph(t)

		first, err := Compute(store)
		if err != nil {
			t.Fatalf("Compute: %v", err)
		}
		second, err := Compute(store)
		if err != nil {
			t.Fatalf("Compute: %v", err)
		}
		if first != second {
			t.Fatalf("Compute not idempotent: %+v then %+v", first, second)
		}
	})
}
