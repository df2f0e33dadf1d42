package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/apphide/pkg/errors"
	gotoml "github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(content), 0644))
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(t.TempDir(), nil)
	require.NoError(t, err)

	assert.Equal(t, "", cfg.Desktop.Current)
	assert.Empty(t, cfg.Search.ExtraDirs)
	assert.True(t, cfg.Search.IncludeSystem)
	assert.Equal(t, "tracker.json", cfg.Tracker.File)
	assert.Equal(t, "auto", cfg.Output.Format)
}

func TestLoad_Layers(t *testing.T) {
	t.Run("config file", func(t *testing.T) {
		dir := t.TempDir()
		writeConfig(t, dir, `
[desktop]
current = "KDE"

[search]
extra_dirs = ["/opt/share", "/srv/share"]
include_system = false
`)
		cfg, err := Load(dir, nil)
		require.NoError(t, err)

		assert.Equal(t, "KDE", cfg.Desktop.Current)
		assert.Equal(t, []string{"/opt/share", "/srv/share"}, cfg.Search.ExtraDirs)
		assert.False(t, cfg.Search.IncludeSystem)
		assert.Equal(t, "auto", cfg.Output.Format, "untouched keys keep defaults")
	})

	t.Run("environment beats file", func(t *testing.T) {
		dir := t.TempDir()
		writeConfig(t, dir, "[output]\nformat = \"text\"\n")
		t.Setenv("APPHIDE_OUTPUT_FORMAT", "json")
		t.Setenv("APPHIDE_SEARCH_EXTRA_DIRS", "/a,/b")
		t.Setenv("APPHIDE_SEARCH_INCLUDE_SYSTEM", "false")

		cfg, err := Load(dir, nil)
		require.NoError(t, err)

		assert.Equal(t, "json", cfg.Output.Format)
		assert.Equal(t, []string{"/a", "/b"}, cfg.Search.ExtraDirs)
		assert.False(t, cfg.Search.IncludeSystem)
	})

	t.Run("overrides beat environment", func(t *testing.T) {
		t.Setenv("APPHIDE_OUTPUT_FORMAT", "json")

		cfg, err := Load(t.TempDir(), map[string]interface{}{"output.format": "TEXT"})
		require.NoError(t, err)

		assert.Equal(t, "text", cfg.Output.Format)
	})
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "malformed toml", content: "[output\nformat = "},
		{name: "unknown format", content: "[output]\nformat = \"yaml\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeConfig(t, dir, tt.content)

			_, err := Load(dir, nil)

			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, errors.ErrConfigParse), "got %v", err)
		})
	}
}

func TestEnvKey(t *testing.T) {
	tests := map[string]string{
		"APPHIDE_DESKTOP_CURRENT":       "desktop.current",
		"APPHIDE_SEARCH_EXTRA_DIRS":     "search.extra_dirs",
		"APPHIDE_SEARCH_INCLUDE_SYSTEM": "search.include_system",
		"APPHIDE_TRACKER_FILE":          "tracker.file",
	}
	for in, want := range tests {
		assert.Equal(t, want, envKey(in), in)
	}
}

func TestDesktops(t *testing.T) {
	tests := []struct {
		name       string
		configured string
		env        string
		want       []string
	}{
		{name: "from environment", env: "ubuntu:GNOME", want: []string{"ubuntu", "GNOME"}},
		{name: "configured wins", configured: "KDE", env: "GNOME", want: []string{"KDE"}},
		{name: "comma list", configured: "XFCE, LXDE", want: []string{"XFCE", "LXDE"}},
		{name: "unset", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(EnvCurrentDesktop, tt.env)
			cfg := &Config{Desktop: DesktopConfig{Current: tt.configured}}

			assert.Equal(t, tt.want, cfg.Desktops())
		})
	}
}

func TestGenerate(t *testing.T) {
	cfg, err := Load(t.TempDir(), map[string]interface{}{"search.extra_dirs": []string{"/opt/share"}})
	require.NoError(t, err)

	data, err := Generate(cfg)
	require.NoError(t, err)

	var decoded Config
	require.NoError(t, gotoml.Unmarshal(data, &decoded))
	assert.Equal(t, *cfg, decoded)
}

func TestGenerateConfigContent(t *testing.T) {
	content := GenerateConfigContent()

	assert.Contains(t, content, "[search]\n")
	assert.Contains(t, content, "# include_system = true\n")
	assert.Contains(t, content, "# format = \"auto\"\n")
	assert.NotContains(t, content, "\nformat =")
}
