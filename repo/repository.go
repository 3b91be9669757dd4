// Package repo adapts a go-git repository to the read-only store the
// history walker consumes, and measures the size of its metadata directory.
package repo

import (
	"fmt"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/storage/filesystem"

	"github.com/anton-dovnar/gno/history"
	"github.com/anton-dovnar/gno/logging"
)

// Repository is an opened git repository.
type Repository struct {
	path string
	repo *git.Repository
}

// Open opens the repository containing path. Any subdirectory of a work
// tree is accepted.
func Open(path string) (*Repository, error) {
	r, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %w", history.ErrStoreUnavailable, path, err)
	}
	logging.Logger.Debug("Opened repository", "path", path)
	return &Repository{path: path, repo: r}, nil
}

// Wrap adapts an already opened go-git repository. path is only used to
// locate the metadata directory when the storage is not on disk.
func Wrap(r *git.Repository, path string) *Repository {
	return &Repository{path: path, repo: r}
}

// Store returns the history view of the repository.
func (r *Repository) Store() *Store {
	return NewStore(r.repo)
}

// MetadataDir returns the directory holding the repository's objects and
// refs, normally the .git directory.
func (r *Repository) MetadataDir() (string, error) {
	if fs, ok := r.repo.Storer.(*filesystem.Storage); ok {
		return fs.Filesystem().Root(), nil
	}
	return ResolveGitDir(r.path)
}
