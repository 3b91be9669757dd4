package repo

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"

	"github.com/anton-dovnar/gno/logging"
)

// DirSize returns the total size in bytes of every non-directory entry
// below root. Symlinks count with their own size and are not followed.
func DirSize(fs billy.Filesystem, root string) (int64, error) {
	var total int64
	err := util.Walk(fs, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return fmt.Errorf("walk %s: %w", path, err)
		}
		if !info.IsDir() {
			total += info.Size()
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return total, nil
}

// MetadataSize returns the on-disk size of the metadata directory dir.
func MetadataSize(dir string) (int64, error) {
	dir = filepath.Clean(dir)
	fs := osfs.New(filepath.Dir(dir))
	size, err := DirSize(fs, filepath.Base(dir))
	if err != nil {
		return 0, fmt.Errorf("measure %s: %w", dir, err)
	}
	logging.Logger.Debug("Computed metadata size", "dir", dir, "bytes", size)
	return size, nil
}
