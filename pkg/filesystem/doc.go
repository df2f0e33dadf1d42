// Package filesystem provides filesystem implementations for apphide.
//
// This package contains implementations of the types.FS interface,
// the standard OS filesystem and an afero-backed one used for in-memory
// tests, plus helpers shared by the components that write files.
package filesystem
