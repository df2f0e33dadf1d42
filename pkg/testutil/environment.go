// pkg/testutil/environment.go
// DEPENDENCIES: None (base test utilities)
// PURPOSE: Orchestrate XDG test environments with descriptor fixtures

package testutil

import (
	"path/filepath"
	"testing"

	"github.com/arthur-debert/apphide/pkg/filesystem"
	"github.com/arthur-debert/apphide/pkg/paths"
	"github.com/arthur-debert/apphide/pkg/tracker"
	"github.com/arthur-debert/apphide/pkg/types"
)

// EnvType defines the type of test environment
type EnvType int

const (
	EnvMemoryOnly EnvType = iota // Pure in-memory, no real filesystem
	EnvIsolated                  // Real filesystem in temp directory
)

// Environment provides a user session layout for tests
type Environment struct {
	HomeDir   string
	DataHome  string
	SystemDir string
	ConfigDir string
	StateHome string

	FS   types.FS
	Type EnvType

	t *testing.T
}

// NewEnvironment creates a new test environment
func NewEnvironment(t *testing.T, envType EnvType) *Environment {
	t.Helper()

	env := &Environment{t: t, Type: envType}

	root := "/virtual"
	switch envType {
	case EnvMemoryOnly:
		env.FS = filesystem.NewMemory()
	case EnvIsolated:
		root = t.TempDir()
		env.FS = filesystem.NewOS()
	}

	env.HomeDir = filepath.Join(root, "home")
	env.DataHome = filepath.Join(env.HomeDir, ".local", "share")
	env.SystemDir = filepath.Join(root, "usr", "share")
	env.ConfigDir = filepath.Join(env.HomeDir, ".config", paths.AppDirName)
	env.StateHome = filepath.Join(env.HomeDir, ".local", "state")

	for _, dir := range []string{env.HomeDir, env.DataHome, env.SystemDir} {
		if err := env.FS.MkdirAll(dir, 0755); err != nil {
			t.Fatalf("Failed to create %s: %v", dir, err)
		}
	}

	return env
}

// Options returns path options describing this environment. extra data
// dirs are searched after the system dir.
func (env *Environment) Options(extra ...string) paths.Options {
	return paths.Options{
		DataHome:  env.DataHome,
		DataDirs:  append([]string{env.SystemDir}, extra...),
		ConfigDir: env.ConfigDir,
		StateHome: env.StateHome,
	}
}

// Paths builds a paths.Paths for this environment
func (env *Environment) Paths(extra ...string) paths.Paths {
	env.t.Helper()

	p, err := paths.New(env.Options(extra...))
	if err != nil {
		env.t.Fatalf("Failed to create paths: %v", err)
	}
	return p
}

// OpenTracker opens the tracker manifest of this environment
func (env *Environment) OpenTracker() *tracker.Tracker {
	env.t.Helper()

	p := env.Paths()
	tr, err := tracker.Open(tracker.Options{
		FS:              env.FS,
		File:            p.TrackerFile(),
		DataRoot:        p.DataHome(),
		LegacyDir:       p.LegacyTrackerDir(),
		ApplicationsDir: p.ApplicationsDir(),
	})
	if err != nil {
		env.t.Fatalf("Failed to open tracker: %v", err)
	}
	return tr
}

// UserApp writes a descriptor to the user applications dir
func (env *Environment) UserApp(filename, content string) string {
	return env.WriteApp(env.DataHome, filename, content)
}

// SystemApp writes a descriptor to the system applications dir
func (env *Environment) SystemApp(filename, content string) string {
	return env.WriteApp(env.SystemDir, filename, content)
}

// WriteApp writes a descriptor to <root>/applications
func (env *Environment) WriteApp(root, filename, content string) string {
	env.t.Helper()
	return env.WriteFile(filepath.Join(root, paths.ApplicationsDirName, filename), content)
}

// WriteFile writes content to path, creating parent directories
func (env *Environment) WriteFile(path, content string) string {
	env.t.Helper()

	if err := env.FS.MkdirAll(filepath.Dir(path), 0755); err != nil {
		env.t.Fatalf("Failed to create directory for %s: %v", path, err)
	}
	if err := env.FS.WriteFile(path, []byte(content), 0644); err != nil {
		env.t.Fatalf("Failed to write file %s: %v", path, err)
	}
	return path
}

// ReadFile returns the content of path
func (env *Environment) ReadFile(path string) string {
	env.t.Helper()

	data, err := env.FS.ReadFile(path)
	if err != nil {
		env.t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(data)
}

// Exists reports whether path exists
func (env *Environment) Exists(path string) bool {
	env.t.Helper()

	ok, err := filesystem.Exists(env.FS, path)
	if err != nil {
		env.t.Fatalf("Failed to stat %s: %v", path, err)
	}
	return ok
}

// WithFileTree creates a complete file tree structure below root
func (env *Environment) WithFileTree(root string, tree FileTree) {
	env.t.Helper()
	createFileTree(env.t, env.FS, root, tree)
}

// FileTree represents a directory structure for testing
type FileTree map[string]interface{}

// createFileTree recursively creates a file tree
func createFileTree(t *testing.T, fs types.FS, basePath string, tree FileTree) {
	t.Helper()

	for name, content := range tree {
		fullPath := filepath.Join(basePath, name)

		switch v := content.(type) {
		case string:
			if err := fs.MkdirAll(basePath, 0755); err != nil {
				t.Fatalf("Failed to create directory %s: %v", basePath, err)
			}
			if err := fs.WriteFile(fullPath, []byte(v), 0644); err != nil {
				t.Fatalf("Failed to write file %s: %v", fullPath, err)
			}
		case FileTree:
			if err := fs.MkdirAll(fullPath, 0755); err != nil {
				t.Fatalf("Failed to create directory %s: %v", fullPath, err)
			}
			createFileTree(t, fs, fullPath, v)
		default:
			t.Fatalf("Invalid file tree content type for %s: %T", name, content)
		}
	}
}
