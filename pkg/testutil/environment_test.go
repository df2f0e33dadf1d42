// pkg/testutil/environment_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: afero MemMapFs, real temp directory
// PURPOSE: Verify the test environment builds a usable XDG layout

package testutil_test

import (
	"path/filepath"
	"testing"

	"github.com/arthur-debert/apphide/pkg/testutil"
	"github.com/stretchr/testify/assert"
)

func TestNewEnvironment(t *testing.T) {
	for _, envType := range []testutil.EnvType{testutil.EnvMemoryOnly, testutil.EnvIsolated} {
		env := testutil.NewEnvironment(t, envType)

		p := env.Paths()
		assert.Equal(t, env.DataHome, p.DataHome())
		assert.Equal(t, []string{env.DataHome, env.SystemDir}, p.SearchRoots())
		assert.Equal(t, filepath.Join(env.ConfigDir, "tracker.json"), p.TrackerFile())

		path := env.SystemApp("foo.desktop", testutil.Descriptor("Foo"))
		assert.Equal(t, filepath.Join(env.SystemDir, "applications", "foo.desktop"), path)
		assert.True(t, env.Exists(path))
		assert.Contains(t, env.ReadFile(path), "Name=Foo\n")
	}
}

func TestWithFileTree(t *testing.T) {
	env := testutil.NewEnvironment(t, testutil.EnvMemoryOnly)

	env.WithFileTree(env.DataHome, testutil.FileTree{
		"applications": testutil.FileTree{
			"a.desktop": testutil.Descriptor("A"),
		},
		"notes.txt": "x",
	})

	assert.True(t, env.Exists(filepath.Join(env.DataHome, "applications", "a.desktop")))
	assert.Equal(t, "x", env.ReadFile(filepath.Join(env.DataHome, "notes.txt")))
}

func TestDescriptor(t *testing.T) {
	assert.Equal(t,
		"[Desktop Entry]\nType=Application\nName=My App\nExec=my-app\nNoDisplay=true\nIcon=my\n",
		testutil.Hidden("My App", "Icon=my"))
}
