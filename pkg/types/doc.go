// Package types defines the small set of interfaces shared across apphide
// packages, chiefly the FS abstraction every component performs its I/O
// through.
package types
