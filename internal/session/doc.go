// Package session guards a single map package being edited.
//
// document.File is a plain value with no locking. A Session owns one file
// and serializes access to it so several goroutines (a CLI command, a file
// watcher, an autosave timer) can share it:
//
//   - Update runs an edit against a private copy and commits it only when
//     the edit succeeds, so callers never observe a half-applied change.
//   - Snapshot returns a deep copy that is safe to read without the lock.
//   - Save encodes the current file and hands the layout to a pkgfs.Writer.
//
// The Dirty flag is set by every successful Update and cleared by a
// successful Save.
package session
