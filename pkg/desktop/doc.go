// Package desktop reads and writes freedesktop desktop entry files.
//
// Documents are kept line by line so that a round trip through Parse and
// Bytes reproduces the input exactly; Set only touches the line holding
// the key it changes (or appends one to the group). Entry layers typed
// accessors for the keys apphide needs on top of a Document.
package desktop
