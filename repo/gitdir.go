package repo

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ResolveGitDir finds the metadata directory for startPath.
//
// It supports:
// - bare repositories, where startPath itself holds HEAD and objects/
// - standard repos where ".git" is a directory
// - worktrees/submodules where ".git" is a file containing "gitdir: <path>"
// - being called from any subdirectory of the repo (walks parents)
func ResolveGitDir(startPath string) (string, error) {
	if startPath == "" {
		return "", errors.New("empty path")
	}

	p, err := filepath.Abs(startPath)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", startPath, err)
	}
	for {
		dotgit := filepath.Join(p, ".git")
		fi, err := os.Stat(dotgit)
		if err == nil {
			if fi.IsDir() {
				return dotgit, nil
			}
			return readGitFile(p, dotgit)
		}
		if isBare(p) {
			return p, nil
		}

		parent := filepath.Dir(p)
		if parent == p {
			break
		}
		p = parent
	}

	return "", fmt.Errorf("could not find .git starting at %s", startPath)
}

// readGitFile parses a ".git" file of the form "gitdir: <path>".
func readGitFile(dir, dotgit string) (string, error) {
	b, err := os.ReadFile(dotgit)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", dotgit, err)
	}
	s := strings.TrimSpace(string(b))
	if !strings.HasPrefix(s, "gitdir:") {
		return "", fmt.Errorf("unrecognized .git file format: %s", dotgit)
	}
	gd := strings.TrimSpace(strings.TrimPrefix(s, "gitdir:"))
	if gd == "" {
		return "", fmt.Errorf("invalid gitdir in %s", dotgit)
	}
	if !filepath.IsAbs(gd) {
		gd = filepath.Join(dir, gd)
	}
	return filepath.Clean(gd), nil
}

func isBare(dir string) bool {
	if _, err := os.Stat(filepath.Join(dir, "HEAD")); err != nil {
		return false
	}
	fi, err := os.Stat(filepath.Join(dir, "objects"))
	return err == nil && fi.IsDir()
}
