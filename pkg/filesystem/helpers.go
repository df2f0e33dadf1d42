package filesystem

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strconv"
	"time"

	"github.com/arthur-debert/apphide/pkg/types"
)

// linkResolver is implemented by filesystems that can follow symlinks
type linkResolver interface {
	ResolveLinks(name string) (string, error)
}

// WriteFileAtomic writes data to a sibling temp file and renames it over
// path, so readers only ever see the old or the new content. A symlink at
// path is written through and kept. An existing file keeps its mode, perm
// only applies to new files.
func WriteFileAtomic(fsys types.FS, path string, data []byte, perm fs.FileMode) error {
	target := path
	if r, ok := fsys.(linkResolver); ok {
		resolved, err := r.ResolveLinks(path)
		if err != nil {
			return fmt.Errorf("failed to resolve %s: %w", path, err)
		}
		target = resolved
	}

	info, err := fsys.Stat(target)
	switch {
	case err == nil && info.IsDir():
		return &fs.PathError{Op: "write", Path: path, Err: fs.ErrInvalid}
	case err == nil:
		perm = info.Mode().Perm()
	case !errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("failed to stat %s: %w", path, err)
	}

	tmp := filepath.Join(filepath.Dir(target), "."+filepath.Base(target)+".tmp-"+strconv.FormatInt(time.Now().UnixNano(), 36))
	if err := fsys.WriteFile(tmp, data, perm); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := fsys.Rename(tmp, target); err != nil {
		_ = fsys.Remove(tmp)
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}

// Exists reports whether path exists. Errors other than not-exist are
// returned so callers can tell "absent" from "unreadable".
func Exists(fsys types.FS, path string) (bool, error) {
	_, err := fsys.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}

// RemoveIfExists removes path, treating a missing file as success.
func RemoveIfExists(fsys types.FS, path string) error {
	if err := fsys.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}
