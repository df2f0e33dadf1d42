// Package core implements the apphide application context.
//
// An App owns the tracker for the lifetime of a command and exposes the
// operations the command line drives: listing the installed applications,
// showing or hiding one, reporting on the files apphide manages and
// migrating the legacy tracker layout.
//
// # Overrides
//
// apphide never edits system descriptors. Hiding a system application
// writes a copy to the user's applications directory with NoDisplay=true
// and records its hash. Showing it again deletes that copy when it is
// still exactly what apphide wrote, so the user layer only holds files
// that differ from the system default. A copy the user edited since is
// changed in place instead, keeping their edits.
package core
