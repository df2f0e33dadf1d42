// Package tracker records a content hash for every descriptor file apphide
// writes, so later runs can tell an untouched engine-written override from
// one the user edited by hand.
//
// The manifest is a flat JSON object mapping absolute paths to hex SHA-224
// digests. It is loaded once by Open, pruned of paths that no longer exist,
// and written back only by Flush, and only when something changed.
//
// A Tracker is owned by the application context and is not safe for
// concurrent use; apphide assumes a single writer per user session.
package tracker
