package tracker

import (
	"path/filepath"
	"strings"

	"github.com/arthur-debert/apphide/pkg/errors"
	"github.com/arthur-debert/apphide/pkg/filesystem"
)

const legacyMarkerSuffix = ".desktop"

// MigrateLegacy converts the marker directory layout into manifest
// entries. Each marker names a descriptor under appsDir; the ones that
// still exist are recorded. The legacy tree is then removed (a failure is
// only logged) and the manifest flushed. A missing legacyDir is a no-op.
func (t *Tracker) MigrateLegacy(legacyDir, appsDir string) error {
	exists, err := filesystem.Exists(t.fs, legacyDir)
	if err != nil {
		return errors.Wrapf(err, errors.ErrMigrate, "failed to stat legacy tracker %s", legacyDir)
	}
	if !exists {
		return nil
	}

	entries, err := t.fs.ReadDir(legacyDir)
	if err != nil {
		return errors.Wrapf(err, errors.ErrMigrate, "failed to list legacy tracker %s", legacyDir)
	}

	migrated := 0
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), legacyMarkerSuffix) {
			continue
		}

		target := filepath.Join(appsDir, entry.Name())
		present, err := filesystem.Exists(t.fs, target)
		if err != nil {
			return errors.Wrapf(err, errors.ErrMigrate, "failed to stat %s", target)
		}
		if !present {
			t.logger.Debug().Str("marker", entry.Name()).Msg("Skipping legacy marker without descriptor")
			continue
		}

		if err := t.Record(target); err != nil {
			return errors.Wrapf(err, errors.ErrMigrate, "failed to migrate %s", entry.Name())
		}
		migrated++
	}

	if err := t.fs.RemoveAll(legacyDir); err != nil {
		t.logger.Warn().Err(err).Str("dir", legacyDir).Msg("Failed to remove legacy tracker directory")
	}

	t.logger.Info().Int("migrated", migrated).Str("from", legacyDir).Msg("Migrated legacy tracker")
	return t.Flush()
}
