package config

import (
	"os"
	"strings"
)

// EnvCurrentDesktop is the freedesktop variable naming the running desktops
const EnvCurrentDesktop = "XDG_CURRENT_DESKTOP"

// Config is the effective apphide configuration
type Config struct {
	Desktop DesktopConfig `koanf:"desktop" toml:"desktop"`
	Search  SearchConfig  `koanf:"search" toml:"search"`
	Tracker TrackerConfig `koanf:"tracker" toml:"tracker"`
	Output  OutputConfig  `koanf:"output" toml:"output"`
}

// DesktopConfig selects the desktop environment
type DesktopConfig struct {
	Current string `koanf:"current" toml:"current"`
}

// SearchConfig controls which data roots are scanned
type SearchConfig struct {
	ExtraDirs     []string `koanf:"extra_dirs" toml:"extra_dirs"`
	IncludeSystem bool     `koanf:"include_system" toml:"include_system"`
}

// TrackerConfig locates the manifest
type TrackerConfig struct {
	File string `koanf:"file" toml:"file"`
}

// OutputConfig selects the output renderer
type OutputConfig struct {
	Format string `koanf:"format" toml:"format"`
}

// Desktops returns the current desktop names. The configured value wins
// over XDG_CURRENT_DESKTOP; both accept ':' separated lists.
func (c *Config) Desktops() []string {
	value := c.Desktop.Current
	if value == "" {
		value = os.Getenv(EnvCurrentDesktop)
	}

	var out []string
	for _, name := range strings.FieldsFunc(value, func(r rune) bool { return r == ':' || r == ',' }) {
		if name = strings.TrimSpace(name); name != "" {
			out = append(out, name)
		}
	}
	return out
}
