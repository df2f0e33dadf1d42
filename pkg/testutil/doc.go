// Package testutil provides utilities for testing apphide components.
//
// Key components:
//   - Environment: an XDG layout (user data home, one system data dir,
//     config and state homes) on either afero's in-memory filesystem or a
//     real temp directory
//   - Descriptor: inline .desktop content for fixtures
//
// Usage guidelines:
//   - Prefer EnvMemoryOnly; use EnvIsolated for code that goes through
//     the OS filesystem
//   - All test data should be defined inline, not in external files
package testutil
