package desktop

import (
	"strings"
	"testing"

	"github.com/arthur-debert/apphide/pkg/errors"
	"github.com/arthur-debert/apphide/pkg/filesystem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	fs := filesystem.NewMemory()
	require.NoError(t, fs.MkdirAll("/usr/share/applications", 0755))
	require.NoError(t, fs.WriteFile("/usr/share/applications/firefox.desktop", []byte(firefoxEntry), 0644))

	entry, err := NewParser(fs).Parse("/usr/share/applications/firefox.desktop")
	require.NoError(t, err)

	assert.Equal(t, "/usr/share/applications/firefox.desktop", entry.Path())
	assert.Equal(t, "Firefox Web Browser", entry.Name())
	assert.Equal(t, "Browse the World Wide Web", entry.Comment())
	assert.Equal(t, "firefox", entry.Icon())
	assert.True(t, entry.IsApplication())
	assert.False(t, entry.NoDisplay())
	assert.Empty(t, entry.OnlyShowIn())
	assert.Empty(t, entry.NotShowIn())
}

func TestParse_Failures(t *testing.T) {
	fs := filesystem.NewMemory()
	require.NoError(t, fs.MkdirAll("/apps", 0755))
	require.NoError(t, fs.WriteFile("/apps/nogroup.desktop", []byte("[Other]\nName=Foo\n"), 0644))
	require.NoError(t, fs.WriteFile("/apps/broken.desktop", []byte("garbage\n"), 0644))

	_, err := Parse(fs, "/apps/nogroup.desktop")
	assert.True(t, errors.IsErrorCode(err, errors.ErrParse))

	_, err = Parse(fs, "/apps/broken.desktop")
	assert.True(t, errors.IsErrorCode(err, errors.ErrParse))
	assert.Equal(t, "/apps/broken.desktop", errors.GetErrorDetails(err)["path"])

	_, err = Parse(fs, "/apps/missing.desktop")
	assert.True(t, errors.IsErrorCode(err, errors.ErrFileAccess))
}

func TestEntry_TypedValues(t *testing.T) {
	entry, err := ParseBytes("/x.desktop", []byte(`[Desktop Entry]
Type=Application
Name=Tab\tand\sspace
NoDisplay=1
OnlyShowIn=GNOME;Unity;
NotShowIn=KDE;semi\;colon
`))
	require.NoError(t, err)

	assert.Equal(t, "Tab\tand space", entry.Name())
	assert.True(t, entry.NoDisplay())
	assert.Equal(t, []string{"GNOME", "Unity"}, entry.OnlyShowIn())
	assert.Equal(t, []string{"KDE", "semi;colon"}, entry.NotShowIn())
}

func TestEntry_NoDisplayValues(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{value: "true", want: true},
		{value: "True", want: true},
		{value: "1", want: true},
		{value: "false", want: false},
		{value: "False", want: false},
		{value: "0", want: false},
		{value: "yes", want: false},
		{value: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			entry, err := ParseBytes("/x.desktop", []byte("[Desktop Entry]\nType=Application\nName=Foo\nNoDisplay="+tt.value+"\n"))
			require.NoError(t, err)
			assert.Equal(t, tt.want, entry.NoDisplay())
		})
	}
}

func TestEntry_KDEGroup(t *testing.T) {
	entry, err := ParseBytes("/old.desktop", []byte("[KDE Desktop Entry]\nType=Application\nName=Old\n"))
	require.NoError(t, err)
	assert.Equal(t, "Old", entry.Name())

	hidden := entry.WithNoDisplay(true)
	assert.Contains(t, string(hidden.Bytes()), "NoDisplay=true")
}

func TestEntry_WithNoDisplay(t *testing.T) {
	entry, err := ParseBytes("/usr/share/applications/firefox.desktop", []byte(firefoxEntry))
	require.NoError(t, err)

	hidden := entry.WithNoDisplay(true)
	assert.True(t, hidden.NoDisplay())
	assert.False(t, entry.NoDisplay(), "original entry must not change")
	assert.Equal(t, entry.Path(), hidden.Path())

	shown := hidden.WithNoDisplay(false)
	assert.False(t, shown.NoDisplay())
	assert.Equal(t, string(hidden.Bytes()), strings.Replace(string(shown.Bytes()), "NoDisplay=false", "NoDisplay=true", 1))
}
