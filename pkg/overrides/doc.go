// Package overrides decides how one application is shown and performs the
// writes that change it.
//
// A Group collects every descriptor with the same file name across the
// search roots, in precedence order, split into the user layer (below the
// user data home) and the system layer. A Resolver is bound to one Group:
// it knows which file is effective, where an override would be written,
// and which file is authoritative when the visibility changes.
//
// Changing visibility either writes an override to the save path or, when
// the system copy already has the requested state and the existing
// override is an untouched engine-written copy, deletes the override so
// the system default applies again. Files the user edited by hand are
// never replaced from the system copy; drift is detected through the
// tracker.
package overrides
