package tracker

import (
	"encoding/json"
	"path/filepath"
	"sort"

	"github.com/arthur-debert/apphide/pkg/errors"
	"github.com/arthur-debert/apphide/pkg/filesystem"
	"github.com/arthur-debert/apphide/pkg/internal/hashutil"
	"github.com/arthur-debert/apphide/pkg/logging"
	"github.com/arthur-debert/apphide/pkg/paths"
	"github.com/arthur-debert/apphide/pkg/types"
	"github.com/rs/zerolog"
)

// State describes a tracked file as seen by Check
type State string

const (
	// StateClean means the file still matches its recorded hash
	StateClean State = "clean"
	// StateModified means the file was changed outside apphide
	StateModified State = "modified"
	// StateMissing means the file no longer exists
	StateMissing State = "missing"
)

// Options configures Open
type Options struct {
	FS types.FS

	// File is the manifest location.
	File string

	// DataRoot is the user-writable root; only paths below it are tracked.
	DataRoot string

	// LegacyDir is the marker directory used before the manifest existed.
	// Migration is skipped when empty.
	LegacyDir string

	// ApplicationsDir is where legacy markers are resolved to.
	ApplicationsDir string
}

// Tracker is the in-memory view of the manifest
type Tracker struct {
	fs       types.FS
	file     string
	dataRoot string
	hashes   map[string]string
	dirty    bool
	logger   zerolog.Logger
}

// New returns an empty tracker that will persist to file. Nothing is
// read from disk.
func New(fs types.FS, file, dataRoot string) *Tracker {
	return &Tracker{
		fs:       fs,
		file:     file,
		dataRoot: filepath.Clean(dataRoot),
		hashes:   make(map[string]string),
		logger:   logging.GetLogger("tracker"),
	}
}

// Open loads the manifest, creating its directory when needed. A missing
// manifest combined with an existing legacy directory triggers migration.
func Open(opts Options) (*Tracker, error) {
	t := New(opts.FS, opts.File, opts.DataRoot)

	configDir := filepath.Dir(opts.File)
	if err := opts.FS.MkdirAll(configDir, 0755); err != nil {
		return nil, errors.Wrapf(err, errors.ErrDirCreate, "failed to create config directory %s", configDir)
	}

	exists, err := filesystem.Exists(opts.FS, opts.File)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to stat manifest %s", opts.File)
	}

	if exists {
		if err := t.load(); err != nil {
			return nil, err
		}
		t.PruneMissing()
		return t, nil
	}

	if opts.LegacyDir != "" {
		legacy, err := filesystem.Exists(opts.FS, opts.LegacyDir)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to stat legacy tracker %s", opts.LegacyDir)
		}
		if legacy {
			if err := t.MigrateLegacy(opts.LegacyDir, opts.ApplicationsDir); err != nil {
				return nil, err
			}
		}
	}

	return t, nil
}

func (t *Tracker) load() error {
	data, err := t.fs.ReadFile(t.file)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "failed to read manifest %s", t.file)
	}

	hashes := make(map[string]string)
	if err := json.Unmarshal(data, &hashes); err != nil {
		return errors.Wrapf(err, errors.ErrManifestCorrupt, "failed to decode manifest %s", t.file).
			WithDetail("path", t.file)
	}
	t.hashes = hashes

	t.logger.Debug().Str("file", t.file).Int("entries", len(hashes)).Msg("Manifest loaded")
	return nil
}

// File returns the manifest location
func (t *Tracker) File() string {
	return t.file
}

// Contains reports whether path is tracked
func (t *Tracker) Contains(path string) bool {
	_, ok := t.hashes[path]
	return ok
}

// Record hashes the file at path and stores the digest
func (t *Tracker) Record(path string) error {
	if !paths.IsWithin(t.dataRoot, path) {
		return errors.Newf(errors.ErrOutsideRoot, "refusing to track %s outside %s", path, t.dataRoot).
			WithDetail("path", path)
	}

	sum, err := hashutil.CalculateFileChecksum(t.fs, path)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "failed to hash %s", path).
			WithDetail("path", path)
	}

	t.hashes[path] = sum
	t.dirty = true
	t.logger.Debug().Str("path", path).Str("hash", sum).Msg("Recorded file")
	return nil
}

// Forget drops path from the manifest and reports whether it was tracked
func (t *Tracker) Forget(path string) bool {
	if _, ok := t.hashes[path]; !ok {
		return false
	}
	delete(t.hashes, path)
	t.dirty = true
	t.logger.Debug().Str("path", path).Msg("Forgot file")
	return true
}

// Unchanged reports whether the file at path still matches its recorded
// hash. A mismatch forgets the entry, so the file is treated as
// user-owned from then on. path must be tracked.
func (t *Tracker) Unchanged(path string) (bool, error) {
	recorded, ok := t.hashes[path]
	if !ok {
		return false, errors.Newf(errors.ErrNotTracked, "%s is not tracked", path).
			WithDetail("path", path)
	}

	current, err := hashutil.CalculateFileChecksum(t.fs, path)
	if err != nil {
		return false, errors.Wrapf(err, errors.ErrFileAccess, "failed to hash %s", path).
			WithDetail("path", path)
	}

	if current == recorded {
		return true, nil
	}

	t.logger.Debug().
		Str("path", path).
		Str("recorded", recorded).
		Str("current", current).
		Msg("Stored hash does not match file")
	t.Forget(path)
	return false, nil
}

// Check inspects path without modifying the manifest
func (t *Tracker) Check(path string) (State, error) {
	recorded, ok := t.hashes[path]
	if !ok {
		return "", errors.Newf(errors.ErrNotTracked, "%s is not tracked", path).
			WithDetail("path", path)
	}

	exists, err := filesystem.Exists(t.fs, path)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrFileAccess, "failed to stat %s", path)
	}
	if !exists {
		return StateMissing, nil
	}

	current, err := hashutil.CalculateFileChecksum(t.fs, path)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrFileAccess, "failed to hash %s", path)
	}
	if current != recorded {
		return StateModified, nil
	}
	return StateClean, nil
}

// PruneMissing removes entries whose file is gone or that lie outside the
// data root. It returns the number of entries removed and does not flush.
func (t *Tracker) PruneMissing() int {
	removed := 0
	for path := range t.hashes {
		if !paths.IsWithin(t.dataRoot, path) {
			t.logger.Warn().Str("path", path).Msg("Dropping manifest entry outside data root")
			t.Forget(path)
			removed++
			continue
		}
		exists, err := filesystem.Exists(t.fs, path)
		if err != nil {
			t.logger.Warn().Err(err).Str("path", path).Msg("Unable to stat tracked file, keeping entry")
			continue
		}
		if !exists {
			t.Forget(path)
			removed++
		}
	}
	if removed > 0 {
		t.logger.Debug().Int("removed", removed).Msg("Pruned manifest")
	}
	return removed
}

// Paths returns the tracked paths in sorted order
func (t *Tracker) Paths() []string {
	out := make([]string, 0, len(t.hashes))
	for path := range t.hashes {
		out = append(out, path)
	}
	sort.Strings(out)
	return out
}

// Hash returns the recorded digest for path
func (t *Tracker) Hash(path string) (string, bool) {
	h, ok := t.hashes[path]
	return h, ok
}

// Dirty reports whether there are unflushed changes
func (t *Tracker) Dirty() bool {
	return t.dirty
}

// Flush writes the manifest if it changed since the last flush
func (t *Tracker) Flush() error {
	if !t.dirty {
		return nil
	}

	data, err := json.MarshalIndent(t.hashes, "", "  ")
	if err != nil {
		return errors.Wrap(err, errors.ErrInternal, "failed to encode manifest")
	}
	data = append(data, '\n')

	if err := t.fs.MkdirAll(filepath.Dir(t.file), 0755); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "failed to create config directory for %s", t.file)
	}
	if err := filesystem.WriteFileAtomic(t.fs, t.file, data, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to write manifest %s", t.file)
	}

	t.dirty = false
	t.logger.Debug().Str("file", t.file).Int("entries", len(t.hashes)).Msg("Manifest flushed")
	return nil
}
