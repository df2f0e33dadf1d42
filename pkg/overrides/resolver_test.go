// pkg/overrides/resolver_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: afero MemMapFs via testutil, real tracker
// PURPOSE: Verify visibility decisions, save paths and override writes/reverts

package overrides_test

import (
	"io/fs"
	"path/filepath"
	"strings"
	"testing"

	"github.com/arthur-debert/apphide/pkg/desktop"
	"github.com/arthur-debert/apphide/pkg/errors"
	"github.com/arthur-debert/apphide/pkg/internal/hashutil"
	"github.com/arthur-debert/apphide/pkg/overrides"
	"github.com/arthur-debert/apphide/pkg/testutil"
	"github.com/arthur-debert/apphide/pkg/tracker"
	"github.com/arthur-debert/apphide/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	env      *testutil.Environment
	tracker  *tracker.Tracker
	extra    []string
	desktops []string
}

func newFixture(t *testing.T) *fixture {
	env := testutil.NewEnvironment(t, testutil.EnvMemoryOnly)
	return &fixture{env: env, tracker: env.OpenTracker(), desktops: []string{"GNOME"}}
}

func (f *fixture) group(t *testing.T, filename string) *overrides.Group {
	t.Helper()
	p := f.env.Paths(f.extra...)
	var found []string
	for _, root := range p.SearchRoots() {
		path := filepath.Join(root, "applications", filename)
		if f.env.Exists(path) {
			found = append(found, path)
		}
	}
	require.NotEmpty(t, found, "no descriptor named %s", filename)
	return overrides.NewGroup(filename, found, p.DataHome())
}

func (f *fixture) deps() overrides.Deps {
	p := f.env.Paths(f.extra...)
	return overrides.Deps{
		FS:          f.env.FS,
		Parser:      desktop.NewParser(f.env.FS),
		Tracker:     f.tracker,
		DataHome:    p.DataHome(),
		SearchRoots: p.SearchRoots(),
		Desktops:    f.desktops,
	}
}

func (f *fixture) resolver(t *testing.T, filename string) *overrides.Resolver {
	t.Helper()
	r, err := overrides.New(f.group(t, filename), f.deps())
	require.NoError(t, err)
	return r
}

func (f *fixture) userPath(filename string) string {
	return filepath.Join(f.env.DataHome, "applications", filename)
}

// override writes a user-layer copy of the system descriptor as apphide would
func (f *fixture) override(t *testing.T, filename, content string) string {
	t.Helper()
	path := f.env.UserApp(filename, content)
	require.NoError(t, f.tracker.Record(path))
	require.NoError(t, f.tracker.Flush())
	return path
}

func TestIsDisplayableApplication(t *testing.T) {
	tests := []struct {
		name     string
		system   string
		user     string
		desktops []string
		want     bool
	}{
		{name: "plain application", system: testutil.Descriptor("Foo"), want: true},
		{name: "not an application", system: "[Desktop Entry]\nType=Link\nName=Foo\nURL=https://example.com\n", want: false},
		{name: "system default hidden", system: testutil.Hidden("Foo"), want: false},
		{name: "hidden by user override", system: testutil.Descriptor("Foo"), user: testutil.Hidden("Foo"), want: true},
		{name: "hidden user-only file", user: testutil.Hidden("Foo"), want: true},
		{name: "not shown in current desktop", system: testutil.Descriptor("Foo", "NotShowIn=GNOME;"), want: false},
		{name: "not shown elsewhere", system: testutil.Descriptor("Foo", "NotShowIn=KDE;"), want: true},
		{name: "only shown elsewhere", system: testutil.Descriptor("Foo", "OnlyShowIn=KDE;XFCE;"), want: false},
		{name: "only shown here", system: testutil.Descriptor("Foo", "OnlyShowIn=KDE;GNOME;"), want: true},
		{name: "any of several desktops", system: testutil.Descriptor("Foo", "OnlyShowIn=GNOME;"), desktops: []string{"ubuntu", "GNOME"}, want: true},
		{name: "no desktop set with restriction", system: testutil.Descriptor("Foo", "OnlyShowIn=GNOME;"), desktops: []string{}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			if tt.desktops != nil {
				f.desktops = tt.desktops
			}
			if tt.system != "" {
				f.env.SystemApp("foo.desktop", tt.system)
			}
			if tt.user != "" {
				f.env.UserApp("foo.desktop", tt.user)
			}

			r := f.resolver(t, "foo.desktop")

			assert.Equal(t, tt.want, r.IsDisplayableApplication())
		})
	}
}

func TestAccessors(t *testing.T) {
	f := newFixture(t)
	f.env.SystemApp("foo.desktop", testutil.Descriptor("Foo", "Icon=foo-icon", "Comment=Browse things"))

	r := f.resolver(t, "foo.desktop")

	assert.Equal(t, "foo.desktop", r.ID())
	assert.Equal(t, "Foo", r.Name())
	assert.Equal(t, "foo-icon", r.Icon())
	assert.Equal(t, "Browse things", r.Description())
	assert.True(t, r.Visible())
	assert.False(t, r.Overridden())
	assert.False(t, r.Tracked())
	require.NotNil(t, r.Current())
	assert.Equal(t, filepath.Join(f.env.SystemDir, "applications", "foo.desktop"), r.Current().Path())
}

func TestSavePath(t *testing.T) {
	t.Run("user file is edited in place", func(t *testing.T) {
		f := newFixture(t)
		f.env.SystemApp("foo.desktop", testutil.Descriptor("Foo"))
		user := f.env.UserApp("foo.desktop", testutil.Descriptor("Foo"))

		assert.Equal(t, user, f.resolver(t, "foo.desktop").SavePath())
	})

	t.Run("system file saves to user applications", func(t *testing.T) {
		f := newFixture(t)
		f.env.SystemApp("foo.desktop", testutil.Descriptor("Foo"))

		assert.Equal(t, f.userPath("foo.desktop"), f.resolver(t, "foo.desktop").SavePath())
	})

	t.Run("flatpak export saves to user export root", func(t *testing.T) {
		f := newFixture(t)
		userExport := filepath.Join(f.env.DataHome, "flatpak", "exports", "share")
		systemExport := "/virtual/var/lib/flatpak/exports/share"
		f.extra = []string{userExport, systemExport}
		f.env.WriteApp(systemExport, "org.example.Foo.desktop", testutil.Descriptor("Foo"))

		r := f.resolver(t, "org.example.Foo.desktop")

		assert.Equal(t, filepath.Join(userExport, "applications", "org.example.Foo.desktop"), r.SavePath())
	})

	t.Run("flatpak export without user export root", func(t *testing.T) {
		f := newFixture(t)
		systemExport := "/virtual/var/lib/flatpak/exports/share"
		f.extra = []string{systemExport}
		f.env.WriteApp(systemExport, "org.example.Foo.desktop", testutil.Descriptor("Foo"))

		r := f.resolver(t, "org.example.Foo.desktop")

		assert.Equal(t, f.userPath("org.example.Foo.desktop"), r.SavePath())
	})
}

func TestSetVisible_HideSystemOnly(t *testing.T) {
	f := newFixture(t)
	system := testutil.Visible("Foo", "Icon=foo", "Comment=Browse", "# keep me", "Categories=Network;")
	f.env.SystemApp("foo.desktop", system)
	r := f.resolver(t, "foo.desktop")

	require.NoError(t, r.SetVisible(false))

	dst := f.userPath("foo.desktop")
	want := strings.Replace(system, "NoDisplay=false", "NoDisplay=true", 1)
	assert.Equal(t, want, f.env.ReadFile(dst))
	assert.Equal(t, system, f.env.ReadFile(filepath.Join(f.env.SystemDir, "applications", "foo.desktop")))

	hash, ok := f.tracker.Hash(dst)
	require.True(t, ok)
	assert.Equal(t, hashutil.Sum([]byte(want)), hash)
	assert.False(t, f.tracker.Dirty(), "tracker is flushed after a toggle")

	assert.False(t, r.Visible())
	assert.Equal(t, dst, r.Current().Path())
	assert.Equal(t, []string{dst}, r.Group().UserPaths)
	assert.True(t, r.Overridden())
	assert.True(t, r.Tracked())
}

func TestSetVisible_Idempotent(t *testing.T) {
	f := newFixture(t)
	f.env.SystemApp("foo.desktop", testutil.Descriptor("Foo"))
	r := f.resolver(t, "foo.desktop")

	require.NoError(t, r.SetVisible(true))
	assert.False(t, f.env.Exists(f.userPath("foo.desktop")), "already visible, nothing written")

	require.NoError(t, r.SetVisible(false))
	dst := f.userPath("foo.desktop")
	first := f.env.ReadFile(dst)
	hash, _ := f.tracker.Hash(dst)

	require.NoError(t, r.SetVisible(false))
	assert.Equal(t, first, f.env.ReadFile(dst))
	again, _ := f.tracker.Hash(dst)
	assert.Equal(t, hash, again)
	assert.False(t, f.tracker.Dirty())
}

func TestSetVisible_RevertToSystem(t *testing.T) {
	f := newFixture(t)
	systemPath := f.env.SystemApp("foo.desktop", testutil.Visible("Foo"))
	dst := f.override(t, "foo.desktop", testutil.Hidden("Foo"))
	r := f.resolver(t, "foo.desktop")
	require.False(t, r.Visible())

	require.NoError(t, r.SetVisible(true))

	assert.False(t, f.env.Exists(dst), "override removed")
	assert.False(t, f.tracker.Contains(dst))
	assert.True(t, r.Visible())
	assert.Equal(t, systemPath, r.Current().Path())
	assert.Empty(t, r.Group().UserPaths)
	assert.Equal(t, []string{systemPath}, r.Group().Paths)
}

// stuckFS refuses to delete path
type stuckFS struct {
	types.FS
	path string
}

func (s stuckFS) Remove(name string) error {
	if name == s.path {
		return fs.ErrPermission
	}
	return s.FS.Remove(name)
}

func TestSetVisible_RevertKeepsEntryWhenRemoveFails(t *testing.T) {
	f := newFixture(t)
	f.env.SystemApp("foo.desktop", testutil.Visible("Foo"))
	dst := f.override(t, "foo.desktop", testutil.Hidden("Foo"))
	deps := f.deps()
	deps.FS = stuckFS{FS: f.env.FS, path: dst}
	r, err := overrides.New(f.group(t, "foo.desktop"), deps)
	require.NoError(t, err)

	err = r.SetVisible(true)

	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrFileRemove))
	assert.True(t, f.env.Exists(dst))
	assert.True(t, f.tracker.Contains(dst))

	require.NoError(t, f.tracker.Flush())
	reopened := f.env.OpenTracker()
	assert.True(t, reopened.Contains(dst), "entry survives the flush")
	assert.False(t, r.Visible())
}

// rejectingTracker fails every Record call
type rejectingTracker struct {
	overrides.Tracker
}

func (rejectingTracker) Record(path string) error {
	return errors.Newf(errors.ErrOutsideRoot, "refusing to track %s", path)
}

func TestSetVisible_UnrecordedOverrideIsRemoved(t *testing.T) {
	f := newFixture(t)
	f.env.SystemApp("foo.desktop", testutil.Visible("Foo"))
	deps := f.deps()
	deps.Tracker = rejectingTracker{Tracker: f.tracker}
	r, err := overrides.New(f.group(t, "foo.desktop"), deps)
	require.NoError(t, err)

	err = r.SetVisible(false)

	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrOutsideRoot))
	assert.False(t, f.env.Exists(f.userPath("foo.desktop")), "no untracked copy is left behind")
	assert.Empty(t, f.tracker.Paths())
	assert.True(t, r.Visible())
}

func TestSetVisible_HideThenShowLeavesNoOverride(t *testing.T) {
	f := newFixture(t)
	system := testutil.Descriptor("Foo", "Icon=foo")
	f.env.SystemApp("foo.desktop", system)
	r := f.resolver(t, "foo.desktop")

	require.NoError(t, r.SetVisible(false))
	require.True(t, f.env.Exists(f.userPath("foo.desktop")))

	require.NoError(t, r.SetVisible(true))

	assert.False(t, f.env.Exists(f.userPath("foo.desktop")))
	assert.Empty(t, f.tracker.Paths())
	assert.True(t, r.Visible())
}

func TestSetVisible_UserEditedOverrideIsKept(t *testing.T) {
	f := newFixture(t)
	f.env.SystemApp("foo.desktop", testutil.Visible("Foo"))
	dst := f.override(t, "foo.desktop", testutil.Hidden("Foo"))
	// edited outside apphide after it was recorded
	edited := testutil.Hidden("Foo", "Exec=foo --custom")
	f.env.UserApp("foo.desktop", edited)
	r := f.resolver(t, "foo.desktop")

	require.NoError(t, r.SetVisible(true))

	assert.Equal(t, strings.Replace(edited, "NoDisplay=true", "NoDisplay=false", 1), f.env.ReadFile(dst))
	assert.False(t, f.tracker.Contains(dst), "drifted file is no longer tracked")
	assert.True(t, r.Visible())
}

func TestSetVisible_RoundTripUserOnly(t *testing.T) {
	f := newFixture(t)
	original := "# hand written\n[Desktop Entry]\nType=Application\nName=Tool\nExec=tool %U\nNoDisplay=false\n\n[Desktop Action new]\nName=New\nExec=tool --new\n"
	path := f.env.UserApp("tool.desktop", original)
	r := f.resolver(t, "tool.desktop")
	require.Equal(t, path, r.SavePath())

	require.NoError(t, r.SetVisible(false))
	assert.Equal(t, strings.Replace(original, "NoDisplay=false", "NoDisplay=true", 1), f.env.ReadFile(path))
	assert.False(t, f.tracker.Contains(path), "in-place edits are not tracked")

	require.NoError(t, r.SetVisible(true))
	assert.Equal(t, original, f.env.ReadFile(path))
}

func TestNew_OrphanCleanup(t *testing.T) {
	f := newFixture(t)
	leftover := f.override(t, "gone.desktop", testutil.Hidden("Gone"))
	group := f.group(t, "gone.desktop")

	r, err := overrides.New(group, f.deps())

	require.NoError(t, err)
	assert.Nil(t, r.Current())
	assert.False(t, r.IsDisplayableApplication())
	assert.False(t, f.env.Exists(leftover))
	assert.False(t, f.tracker.Contains(leftover))
	assert.False(t, f.tracker.Dirty())

	err = r.SetVisible(true)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestNew_HandPlacedUserFileIsKept(t *testing.T) {
	f := newFixture(t)
	path := f.env.UserApp("mine.desktop", testutil.Descriptor("Mine"))

	r := f.resolver(t, "mine.desktop")

	assert.True(t, f.env.Exists(path))
	assert.True(t, r.IsDisplayableApplication())
}

func TestNew_ParseError(t *testing.T) {
	f := newFixture(t)
	f.env.SystemApp("bad.desktop", "Name=No group\n")

	_, err := overrides.New(f.group(t, "bad.desktop"), f.deps())

	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrParse))
}

func TestNew_EmptyGroup(t *testing.T) {
	f := newFixture(t)

	_, err := overrides.New(&overrides.Group{Filename: "x.desktop"}, f.deps())

	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestSourceUnit(t *testing.T) {
	t.Run("single path is current", func(t *testing.T) {
		f := newFixture(t)
		f.env.SystemApp("foo.desktop", testutil.Descriptor("Foo"))
		r := f.resolver(t, "foo.desktop")

		src, err := r.SourceUnit()
		require.NoError(t, err)
		assert.Same(t, r.Current(), src)
	})

	t.Run("untouched override defers to system", func(t *testing.T) {
		f := newFixture(t)
		systemPath := f.env.SystemApp("foo.desktop", testutil.Descriptor("Foo"))
		f.override(t, "foo.desktop", testutil.Hidden("Foo"))
		r := f.resolver(t, "foo.desktop")

		src, err := r.SourceUnit()
		require.NoError(t, err)
		assert.Equal(t, systemPath, src.Path())
	})

	t.Run("untracked override is authoritative", func(t *testing.T) {
		f := newFixture(t)
		f.env.SystemApp("foo.desktop", testutil.Descriptor("Foo"))
		user := f.env.UserApp("foo.desktop", testutil.Hidden("Foo"))
		r := f.resolver(t, "foo.desktop")

		src, err := r.SourceUnit()
		require.NoError(t, err)
		assert.Equal(t, user, src.Path())
	})
}
