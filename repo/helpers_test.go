package repo

import (
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/storage/memory"
	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func newMemRepo(t *testing.T) *git.Repository {
	t.Helper()
	r, err := git.Init(memory.NewStorage(), nil)
	require.NoError(t, err)
	return r
}

func sig(name, email string) object.Signature {
	return object.Signature{Name: name, Email: email, When: epoch}
}

func storeObject(t *testing.T, r *git.Repository, enc interface {
	Encode(plumbing.EncodedObject) error
}) plumbing.Hash {
	t.Helper()
	obj := r.Storer.NewEncodedObject()
	require.NoError(t, enc.Encode(obj))
	h, err := r.Storer.SetEncodedObject(obj)
	require.NoError(t, err)
	return h
}

func addCommit(t *testing.T, r *git.Repository, msg string, author object.Signature, parents ...plumbing.Hash) plumbing.Hash {
	t.Helper()
	return storeObject(t, r, &object.Commit{
		Author:       author,
		Committer:    author,
		Message:      msg,
		TreeHash:     plumbing.ZeroHash,
		ParentHashes: parents,
	})
}

func addTag(t *testing.T, r *git.Repository, name string, target plumbing.Hash, typ plumbing.ObjectType) plumbing.Hash {
	t.Helper()
	return storeObject(t, r, &object.Tag{
		Name:       name,
		Tagger:     sig("tagger", "tagger@example.com"),
		Message:    name,
		TargetType: typ,
		Target:     target,
	})
}

func addRaw(t *testing.T, r *git.Repository, typ plumbing.ObjectType, content string) plumbing.Hash {
	t.Helper()
	obj := r.Storer.NewEncodedObject()
	obj.SetType(typ)
	w, err := obj.Writer()
	require.NoError(t, err)
	_, err = w.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	h, err := r.Storer.SetEncodedObject(obj)
	require.NoError(t, err)
	return h
}

func setRef(t *testing.T, r *git.Repository, name string, h plumbing.Hash) {
	t.Helper()
	require.NoError(t, r.Storer.SetReference(plumbing.NewHashReference(plumbing.ReferenceName(name), h)))
}
