// Package catalog discovers the installed applications across the XDG
// search roots.
package catalog

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/arthur-debert/apphide/pkg/errors"
	"github.com/arthur-debert/apphide/pkg/filesystem"
	"github.com/arthur-debert/apphide/pkg/logging"
	"github.com/arthur-debert/apphide/pkg/overrides"
	"github.com/arthur-debert/apphide/pkg/paths"
	"github.com/rs/zerolog"
)

// Scanner groups descriptors by file name and wraps each group in a
// resolver
type Scanner struct {
	deps   overrides.Deps
	logger zerolog.Logger
}

// NewScanner returns a scanner over deps.SearchRoots
func NewScanner(deps overrides.Deps) *Scanner {
	return &Scanner{
		deps:   deps,
		logger: logging.GetLogger("catalog"),
	}
}

// Groups lists <root>/applications for every search root and groups the
// descriptors by file name. Groups are returned in first-seen order, each
// group's paths in root precedence order.
func (s *Scanner) Groups() ([]*overrides.Group, error) {
	byName := make(map[string][]string)
	var order []string

	for _, root := range s.deps.SearchRoots {
		appDir := filepath.Join(root, paths.ApplicationsDirName)

		exists, err := filesystem.Exists(s.deps.FS, appDir)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrDirScan, "failed to stat %s", appDir).
				WithDetail("path", appDir)
		}
		if !exists {
			continue
		}

		entries, err := s.deps.FS.ReadDir(appDir)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrDirScan, "failed to list %s", appDir).
				WithDetail("path", appDir)
		}

		for _, entry := range entries {
			name := entry.Name()
			if entry.IsDir() || !strings.HasSuffix(name, ".desktop") {
				continue
			}
			if _, seen := byName[name]; !seen {
				order = append(order, name)
			}
			byName[name] = append(byName[name], filepath.Join(appDir, name))
		}
	}

	groups := make([]*overrides.Group, 0, len(order))
	for _, name := range order {
		groups = append(groups, overrides.NewGroup(name, byName[name], s.deps.DataHome))
	}
	s.logger.Debug().Int("groups", len(groups)).Int("roots", len(s.deps.SearchRoots)).Msg("Grouped descriptors")
	return groups, nil
}

// Scan returns a resolver for every displayable application, sorted by
// display name without regard to case
func (s *Scanner) Scan() ([]*overrides.Resolver, error) {
	done := logging.LogOperationStart(s.logger, "scan")
	defer done()

	groups, err := s.Groups()
	if err != nil {
		return nil, err
	}

	var apps []*overrides.Resolver
	for _, group := range groups {
		r, err := overrides.New(group, s.deps)
		if err != nil {
			if errors.IsErrorCode(err, errors.ErrParse) {
				s.logger.Warn().Err(err).Str("app", group.Filename).Msg("Skipping unparsable descriptor")
				continue
			}
			return nil, err
		}
		if !r.IsDisplayableApplication() {
			s.logger.Trace().Str("app", group.Filename).Msg("Not displayable")
			continue
		}
		apps = append(apps, r)
	}

	sort.SliceStable(apps, func(i, j int) bool {
		a, b := strings.ToLower(apps[i].Name()), strings.ToLower(apps[j].Name())
		if a != b {
			return a < b
		}
		return apps[i].ID() < apps[j].ID()
	})

	s.logger.Debug().Int("apps", len(apps)).Msg("Scan complete")
	return apps, nil
}
