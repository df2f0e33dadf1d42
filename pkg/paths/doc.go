// Package paths provides centralized path handling for apphide.
//
// This package implements the XDG Base Directory specification and provides
// a consistent API for the directories apphide reads and writes:
//
//   - The user data home, the only root apphide ever writes descriptors to
//   - The ordered search roots whose applications/ directories are scanned
//   - The config directory holding the tracker manifest
//   - The state directory holding the log file
//
// # Environment Variables
//
// The package respects the standard XDG variables (through
// github.com/adrg/xdg) plus:
//
//   - APPHIDE_CONFIG_DIR: Override the config directory (default: $XDG_CONFIG_HOME/apphide)
//
// # Usage
//
//	p, err := paths.New(paths.Options{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	p.ApplicationsDir() // /home/user/.local/share/applications
//	p.TrackerFile()     // /home/user/.config/apphide/tracker.json
//	p.IsUserPath("/usr/share/applications/firefox.desktop") // false
package paths
