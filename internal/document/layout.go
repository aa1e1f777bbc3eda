package document

import (
	"maps"
	"slices"
)

// EntryKind distinguishes the nodes of a package layout tree.
type EntryKind uint8

const (
	EntryRegular EntryKind = iota
	EntryDirectory
	EntrySymlink
)

func (k EntryKind) String() string {
	switch k {
	case EntryRegular:
		return "regular"
	case EntryDirectory:
		return "directory"
	case EntrySymlink:
		return "symlink"
	default:
		return "unknown"
	}
}

// Entry is one node of a package layout: a regular file with contents, a
// directory of named children, or a symlink (which decoding ignores).
type Entry struct {
	Kind     EntryKind
	Contents []byte           // regular files
	Target   string           // symlinks
	Entries  map[string]Entry // directories
}

// RegularFile returns a file entry holding contents.
func RegularFile(contents []byte) Entry {
	return Entry{Kind: EntryRegular, Contents: contents}
}

// Directory returns a directory entry holding entries.
func Directory(entries map[string]Entry) Entry {
	if entries == nil {
		entries = map[string]Entry{}
	}
	return Entry{Kind: EntryDirectory, Entries: entries}
}

// Symlink returns a symlink entry pointing at target.
func Symlink(target string) Entry {
	return Entry{Kind: EntrySymlink, Target: target}
}

// IsRegular reports whether e is a regular file.
func (e Entry) IsRegular() bool { return e.Kind == EntryRegular }

// IsDirectory reports whether e is a directory.
func (e Entry) IsDirectory() bool { return e.Kind == EntryDirectory }

// Child returns the named child of a directory entry.
func (e Entry) Child(name string) (Entry, bool) {
	if !e.IsDirectory() {
		return Entry{}, false
	}
	child, ok := e.Entries[name]
	return child, ok
}

// Names returns the child names of a directory entry in no particular order.
func (e Entry) Names() []string {
	return slices.Collect(maps.Keys(e.Entries))
}
