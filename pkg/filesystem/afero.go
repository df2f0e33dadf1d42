package filesystem

import (
	"errors"
	"io/fs"
	"path/filepath"

	"github.com/arthur-debert/apphide/pkg/types"
	"github.com/spf13/afero"
)

// maxLinkHops bounds symlink chains followed by ResolveLinks
const maxLinkHops = 40

// aferoFS adapts an afero.Fs to types.FS. Both the real filesystem and
// the in-memory one used by tests go through it.
type aferoFS struct {
	fs afero.Fs
}

// NewOS returns the real filesystem
func NewOS() types.FS {
	return NewAferoFS(afero.NewOsFs())
}

// NewMemory returns an empty in-memory filesystem
func NewMemory() types.FS {
	return NewAferoFS(afero.NewMemMapFs())
}

// NewAferoFS wraps fs
func NewAferoFS(fs afero.Fs) types.FS {
	return &aferoFS{fs: fs}
}

func (a *aferoFS) Stat(name string) (fs.FileInfo, error) {
	return a.fs.Stat(name)
}

// ReadFile refuses directories on every backend; MemMapFs would
// otherwise return an empty slice.
func (a *aferoFS) ReadFile(name string) ([]byte, error) {
	info, err := a.fs.Stat(name)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, &fs.PathError{Op: "read", Path: name, Err: fs.ErrInvalid}
	}
	return afero.ReadFile(a.fs, name)
}

func (a *aferoFS) WriteFile(name string, data []byte, perm fs.FileMode) error {
	return afero.WriteFile(a.fs, name, data, perm)
}

func (a *aferoFS) MkdirAll(path string, perm fs.FileMode) error {
	return a.fs.MkdirAll(path, perm)
}

func (a *aferoFS) ReadDir(name string) ([]fs.DirEntry, error) {
	infos, err := afero.ReadDir(a.fs, name)
	if err != nil {
		return nil, err
	}
	entries := make([]fs.DirEntry, 0, len(infos))
	for _, info := range infos {
		entries = append(entries, fs.FileInfoToDirEntry(info))
	}
	return entries, nil
}

func (a *aferoFS) Remove(name string) error {
	return a.fs.Remove(name)
}

func (a *aferoFS) RemoveAll(path string) error {
	return a.fs.RemoveAll(path)
}

func (a *aferoFS) Rename(oldpath, newpath string) error {
	return a.fs.Rename(oldpath, newpath)
}

// ResolveLinks follows symbolic links at name and returns the file they
// end at, which may not exist yet. Backends without symlink support
// return name unchanged.
func (a *aferoFS) ResolveLinks(name string) (string, error) {
	lstater, ok := a.fs.(afero.Lstater)
	if !ok {
		return name, nil
	}
	reader, ok := a.fs.(afero.LinkReader)
	if !ok {
		return name, nil
	}

	for hop := 0; hop < maxLinkHops; hop++ {
		info, _, err := lstater.LstatIfPossible(name)
		if errors.Is(err, fs.ErrNotExist) {
			return name, nil
		}
		if err != nil {
			return "", err
		}
		if info.Mode()&fs.ModeSymlink == 0 {
			return name, nil
		}

		target, err := reader.ReadlinkIfPossible(name)
		if err != nil {
			return "", err
		}
		if !filepath.IsAbs(target) {
			target = filepath.Join(filepath.Dir(name), target)
		}
		name = target
	}
	return "", &fs.PathError{Op: "resolve", Path: name, Err: errors.New("too many levels of symbolic links")}
}
