package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/apphide/pkg/errors"
)

// Environment variable names
const (
	// EnvConfigDir overrides the XDG config directory for apphide
	EnvConfigDir = "APPHIDE_CONFIG_DIR"

	// EnvHome is the standard home directory variable
	EnvHome = "HOME"
)

// Default directories and files
const (
	// AppDirName is the directory name for apphide-specific files
	AppDirName = "apphide"

	// ApplicationsDirName is the subdirectory of every data root holding descriptors
	ApplicationsDirName = "applications"

	// TrackerFileName is the name of the tracker manifest
	TrackerFileName = "tracker.json"

	// LegacyTrackerDirName is the marker directory used by releases before the manifest
	LegacyTrackerDirName = "tracker"

	// LogFileName is the name of the log file
	LogFileName = "apphide.log"

	// FlatpakExportsMarker identifies data roots exported by flatpak
	FlatpakExportsMarker = "flatpak/exports"
)

// Paths provides centralized path management for apphide
type Paths interface {
	DataHome() string
	SearchRoots() []string
	ApplicationsDir() string
	ConfigDir() string
	StateDir() string
	TrackerFile() string
	LegacyTrackerDir() string
	LogFilePath() string
	IsUserPath(path string) bool
}

// Options overrides the directories discovered from the environment.
// Empty fields fall back to the XDG values.
type Options struct {
	DataHome   string
	DataDirs   []string
	ConfigHome string
	StateHome  string

	// ConfigDir is the exact apphide config directory; it wins over
	// ConfigHome and APPHIDE_CONFIG_DIR.
	ConfigDir string

	// ExtraDirs are searched after the system data dirs.
	ExtraDirs []string

	// UserOnly restricts the search roots to the user data home.
	UserOnly bool

	// TrackerFile is either a file name inside ConfigDir or an absolute path.
	TrackerFile string
}

// paths provides centralized path management for apphide
type paths struct {
	dataHome    string
	searchRoots []string
	configDir   string
	stateDir    string
	trackerFile string
}

// New creates a new Paths instance from the environment and opts.
func New(opts Options) (Paths, error) {
	p := &paths{}

	dataHome := firstNonEmpty(opts.DataHome, xdg.DataHome)
	if dataHome == "" {
		return nil, errors.New(errors.ErrFileAccess, "unable to determine user data directory")
	}
	abs, err := filepath.Abs(expandHome(dataHome))
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to get absolute path for data home")
	}
	p.dataHome = abs

	dataDirs := opts.DataDirs
	if dataDirs == nil {
		dataDirs = xdg.DataDirs
	}
	roots := []string{p.dataHome}
	if !opts.UserOnly {
		roots = append(roots, dataDirs...)
		roots = append(roots, opts.ExtraDirs...)
	}
	p.searchRoots = dedupe(roots)

	switch {
	case opts.ConfigDir != "":
		p.configDir = expandHome(opts.ConfigDir)
	case os.Getenv(EnvConfigDir) != "":
		p.configDir = expandHome(os.Getenv(EnvConfigDir))
	default:
		p.configDir = filepath.Join(expandHome(firstNonEmpty(opts.ConfigHome, xdg.ConfigHome)), AppDirName)
	}

	p.stateDir = filepath.Join(expandHome(firstNonEmpty(opts.StateHome, xdg.StateHome)), AppDirName)

	trackerFile := firstNonEmpty(opts.TrackerFile, TrackerFileName)
	if filepath.IsAbs(trackerFile) {
		p.trackerFile = filepath.Clean(trackerFile)
	} else {
		p.trackerFile = filepath.Join(p.configDir, trackerFile)
	}

	return p, nil
}

// DataHome returns the user-writable data root
func (p *paths) DataHome() string {
	return p.dataHome
}

// SearchRoots returns the data roots in precedence order, user first
func (p *paths) SearchRoots() []string {
	out := make([]string, len(p.searchRoots))
	copy(out, p.searchRoots)
	return out
}

// ApplicationsDir returns the default directory overrides are saved to
func (p *paths) ApplicationsDir() string {
	return filepath.Join(p.dataHome, ApplicationsDirName)
}

// ConfigDir returns the apphide config directory
func (p *paths) ConfigDir() string {
	return p.configDir
}

// StateDir returns the apphide state directory
func (p *paths) StateDir() string {
	return p.stateDir
}

// TrackerFile returns the path of the tracker manifest
func (p *paths) TrackerFile() string {
	return p.trackerFile
}

// LegacyTrackerDir returns the marker directory older releases tracked files in
func (p *paths) LegacyTrackerDir() string {
	return filepath.Join(p.configDir, LegacyTrackerDirName)
}

// LogFilePath returns the path to the log file
func (p *paths) LogFilePath() string {
	return filepath.Join(p.stateDir, LogFileName)
}

// IsUserPath reports whether path lives under the user data home
func (p *paths) IsUserPath(path string) bool {
	return IsWithin(p.dataHome, path)
}

// IsWithin reports whether path equals root or is nested below it.
// Sibling directories sharing a name prefix are not considered inside.
func IsWithin(root, path string) bool {
	rel, err := filepath.Rel(filepath.Clean(root), filepath.Clean(path))
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}

// IsFlatpakExport reports whether path belongs to a flatpak export tree
func IsFlatpakExport(path string) bool {
	return strings.Contains(filepath.ToSlash(path), FlatpakExportsMarker)
}

// expandHome expands ~ to the home directory
func expandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = os.Getenv(EnvHome)
		if homeDir == "" {
			return path
		}
	}

	if len(path) == 1 {
		return homeDir
	}
	if path[1] == '/' || path[1] == filepath.Separator {
		return filepath.Join(homeDir, path[2:])
	}

	// ~something (not the user's home)
	return path
}

func dedupe(dirs []string) []string {
	seen := make(map[string]bool, len(dirs))
	out := make([]string, 0, len(dirs))
	for _, dir := range dirs {
		if dir == "" {
			continue
		}
		dir = filepath.Clean(expandHome(dir))
		if seen[dir] {
			continue
		}
		seen[dir] = true
		out = append(out, dir)
	}
	return out
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
