package overrides

import (
	"path/filepath"

	"github.com/arthur-debert/apphide/pkg/desktop"
	"github.com/arthur-debert/apphide/pkg/errors"
	"github.com/arthur-debert/apphide/pkg/filesystem"
	"github.com/arthur-debert/apphide/pkg/logging"
	"github.com/arthur-debert/apphide/pkg/paths"
	"github.com/arthur-debert/apphide/pkg/types"
	"github.com/rs/zerolog"
)

// Parser loads a descriptor from disk
type Parser interface {
	Parse(path string) (*desktop.Entry, error)
}

// Tracker is the subset of the integrity tracker the resolver needs
type Tracker interface {
	Contains(path string) bool
	Record(path string) error
	Forget(path string) bool
	Unchanged(path string) (bool, error)
	Flush() error
}

// Deps are the collaborators shared by every resolver of a scan
type Deps struct {
	FS      types.FS
	Parser  Parser
	Tracker Tracker

	// DataHome is the user-writable data root.
	DataHome string

	// SearchRoots are the data roots in precedence order.
	SearchRoots []string

	// Desktops are the current desktop environment names.
	Desktops []string
}

// Resolver manages the visibility of one application
type Resolver struct {
	group    *Group
	deps     Deps
	current  *desktop.Entry
	savePath string
	logger   zerolog.Logger
}

// New binds a resolver to group. A user-layer file written by apphide whose
// system copy is gone is deleted first, leaving the resolver without a
// current entry. Otherwise the highest-precedence file is parsed.
func New(group *Group, deps Deps) (*Resolver, error) {
	if group == nil || len(group.Paths) == 0 {
		return nil, errors.New(errors.ErrInvalidInput, "descriptor group is empty")
	}

	r := &Resolver{
		group:  group,
		deps:   deps,
		logger: logging.GetLogger("overrides").With().Str("app", group.Filename).Logger(),
	}
	r.savePath = r.computeSavePath()

	orphaned, err := r.cleanup()
	if err != nil {
		return nil, err
	}
	if orphaned {
		return r, nil
	}

	current, err := deps.Parser.Parse(group.Top())
	if err != nil {
		return nil, err
	}
	r.current = current
	return r, nil
}

// cleanup removes a leftover override of an uninstalled application
func (r *Resolver) cleanup() (bool, error) {
	g := r.group
	if len(g.SystemPaths) > 0 || len(g.UserPaths) == 0 {
		return false, nil
	}
	leftover := g.UserPaths[0]
	if !r.deps.Tracker.Contains(leftover) {
		return false, nil
	}

	r.logger.Debug().Str("path", leftover).Msg("Detected uninstalled app, removing leftover file")
	r.deps.Tracker.Forget(leftover)
	if err := filesystem.RemoveIfExists(r.deps.FS, leftover); err != nil {
		r.logger.Warn().Err(err).Str("path", leftover).Msg("Failed to remove leftover file")
	}
	r.current = nil

	if err := r.deps.Tracker.Flush(); err != nil {
		return true, err
	}
	return true, nil
}

// computeSavePath picks the single file this resolver writes to
func (r *Resolver) computeSavePath() string {
	top := r.group.Top()
	if paths.IsWithin(r.deps.DataHome, top) {
		return top
	}

	if paths.IsFlatpakExport(top) {
		for _, root := range r.deps.SearchRoots {
			if paths.IsWithin(r.deps.DataHome, root) && paths.IsFlatpakExport(root) {
				return filepath.Join(root, paths.ApplicationsDirName, r.group.Filename)
			}
		}
	}

	return filepath.Join(r.deps.DataHome, paths.ApplicationsDirName, r.group.Filename)
}

// ID returns the desktop file id
func (r *Resolver) ID() string {
	return r.group.Filename
}

// Group returns the descriptors backing this resolver
func (r *Resolver) Group() *Group {
	return r.group
}

// Current returns the effective entry, nil after orphan cleanup
func (r *Resolver) Current() *desktop.Entry {
	return r.current
}

// SavePath returns where an override for this application is written
func (r *Resolver) SavePath() string {
	return r.savePath
}

// Name returns the display name
func (r *Resolver) Name() string {
	if r.current == nil {
		return ""
	}
	return r.current.Name()
}

// Icon returns the icon name
func (r *Resolver) Icon() string {
	if r.current == nil {
		return ""
	}
	return r.current.Icon()
}

// Description returns the comment
func (r *Resolver) Description() string {
	if r.current == nil {
		return ""
	}
	return r.current.Comment()
}

// Visible reports whether the application is shown in menus
func (r *Resolver) Visible() bool {
	return r.current != nil && !r.current.NoDisplay()
}

// Overridden reports whether a user-layer file shadows a system file
func (r *Resolver) Overridden() bool {
	return len(r.group.UserPaths) > 0 && len(r.group.SystemPaths) > 0
}

// Tracked reports whether the save path was written by apphide
func (r *Resolver) Tracked() bool {
	return r.deps.Tracker.Contains(r.savePath)
}

// IsDisplayableApplication reports whether the application belongs in the
// listing for the current desktop
func (r *Resolver) IsDisplayableApplication() bool {
	e := r.current
	if e == nil || !e.IsApplication() {
		return false
	}
	if len(r.group.UserPaths) == 0 && e.NoDisplay() {
		return false
	}
	if r.matchesDesktop(e.NotShowIn()) {
		return false
	}
	if only := e.OnlyShowIn(); len(only) > 0 && !r.matchesDesktop(only) {
		return false
	}
	return true
}

func (r *Resolver) matchesDesktop(tags []string) bool {
	for _, current := range r.deps.Desktops {
		for _, tag := range tags {
			if current == tag {
				return true
			}
		}
	}
	return false
}

// SourceUnit returns the entry a visibility change is derived from. An
// untouched apphide-written override defers to a fresh parse of the system
// copy; anything else, including a hand-edited override, is used as is.
func (r *Resolver) SourceUnit() (*desktop.Entry, error) {
	g := r.group
	if len(g.Paths) == 1 || len(g.SystemPaths) == 0 || len(g.UserPaths) == 0 {
		return r.current, nil
	}

	exists, err := filesystem.Exists(r.deps.FS, r.savePath)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to stat %s", r.savePath)
	}
	if exists && r.deps.Tracker.Contains(r.savePath) {
		unchanged, err := r.deps.Tracker.Unchanged(r.savePath)
		if err != nil {
			return nil, err
		}
		if unchanged {
			return r.deps.Parser.Parse(g.SystemPaths[0])
		}
	}
	return r.current, nil
}

// SetVisible shows or hides the application. It is a no-op when the state
// already holds.
func (r *Resolver) SetVisible(visible bool) error {
	if r.current == nil {
		return errors.Newf(errors.ErrInvalidInput, "%s has no descriptor to change", r.group.Filename)
	}
	hidden := !visible
	if r.current.NoDisplay() == hidden {
		return nil
	}

	if hidden {
		r.logger.Info().Str("name", r.Name()).Msg("Hiding application")
	} else {
		r.logger.Info().Str("name", r.Name()).Msg("Showing application")
	}

	src, err := r.SourceUnit()
	if err != nil {
		return err
	}
	dst := r.savePath
	fromSource := filepath.Clean(src.Path()) != filepath.Clean(dst)

	if fromSource && src.NoDisplay() == hidden {
		return r.revert(src, dst)
	}
	return r.mutate(src, dst, hidden, fromSource)
}

// revert deletes the override so the source file applies again
func (r *Resolver) revert(src *desktop.Entry, dst string) error {
	r.logger.Debug().Str("path", dst).Msg("Switching to source file, removing override")

	// the entry must outlive a failed removal, the file is still ours
	if err := filesystem.RemoveIfExists(r.deps.FS, dst); err != nil {
		return errors.Wrapf(err, errors.ErrFileRemove, "failed to remove %s", dst).
			WithDetail("path", dst)
	}
	r.deps.Tracker.Forget(dst)
	if err := r.deps.Tracker.Flush(); err != nil {
		return err
	}
	r.group.remove(dst)

	fresh, err := r.deps.Parser.Parse(src.Path())
	if err != nil {
		return err
	}
	r.current = fresh
	return nil
}

// mutate writes src with the new NoDisplay value to dst
func (r *Resolver) mutate(src *desktop.Entry, dst string, hidden, fromSource bool) error {
	updated := src.WithNoDisplay(hidden)

	existed, err := filesystem.Exists(r.deps.FS, dst)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "failed to stat %s", dst).
			WithDetail("path", dst)
	}

	dir := filepath.Dir(dst)
	if err := r.deps.FS.MkdirAll(dir, 0755); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "failed to create %s", dir)
	}
	if err := filesystem.WriteFileAtomic(r.deps.FS, dst, updated.Bytes(), 0644); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to write %s", dst).
			WithDetail("path", dst)
	}
	r.logger.Debug().Str("path", dst).Bool("from_source", fromSource).Msg("Wrote override")

	if fromSource {
		if err := r.deps.Tracker.Record(dst); err != nil {
			r.discard(dst, existed)
			return err
		}
	}
	if err := r.deps.Tracker.Flush(); err != nil {
		return err
	}
	r.group.addUser(dst)

	fresh, err := r.deps.Parser.Parse(dst)
	if err != nil {
		return err
	}
	r.current = fresh
	return nil
}

// discard removes an override that could not be recorded. A file that was
// there before the write is left alone.
func (r *Resolver) discard(dst string, existed bool) {
	if existed {
		return
	}
	if err := filesystem.RemoveIfExists(r.deps.FS, dst); err != nil {
		r.logger.Warn().Err(err).Str("path", dst).Msg("Failed to remove unrecorded override")
	}
}
