// Package pkgfs moves map packages between disk and document.Entry trees.
package pkgfs

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/five82/mcmap/internal/document"
)

// Reader loads a package layout from a directory.
type Reader interface {
	Read(ctx context.Context, dir string) (document.Entry, error)
}

// Writer stores a package layout into a directory.
type Writer interface {
	Write(ctx context.Context, dir string, root document.Entry) error
}

var (
	_ Reader = (*Store)(nil)
	_ Writer = (*Store)(nil)
)

const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// Store reads and writes package directories on the local filesystem.
type Store struct {
	logger logrus.FieldLogger
}

// New returns a Store logging through logger.
func New(logger logrus.FieldLogger) *Store {
	return &Store{logger: logger}
}

// Read walks dir into an entry tree. Symlinks are recorded, not followed.
func (s *Store) Read(ctx context.Context, dir string) (document.Entry, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return document.Entry{}, errors.Wrapf(err, "stat package '%s'", dir)
	}
	if !info.IsDir() {
		return document.Entry{}, errors.Errorf("package '%s' is not a directory", dir)
	}

	root, err := s.readDir(ctx, dir)
	if err != nil {
		return document.Entry{}, err
	}
	s.logger.WithField("action", "read_package").
		WithField("package", dir).
		WithField("entries", len(root.Entries)).
		Debug("read package")
	return root, nil
}

func (s *Store) readDir(ctx context.Context, dir string) (document.Entry, error) {
	if err := ctx.Err(); err != nil {
		return document.Entry{}, errors.Wrapf(err, "read dir '%s'", dir)
	}
	items, err := os.ReadDir(dir)
	if err != nil {
		return document.Entry{}, errors.Wrapf(err, "read dir '%s'", dir)
	}

	entries := make(map[string]document.Entry, len(items))
	for _, item := range items {
		path := filepath.Join(dir, item.Name())
		switch mode := item.Type(); {
		case mode&fs.ModeSymlink != 0:
			target, err := os.Readlink(path)
			if err != nil {
				return document.Entry{}, errors.Wrapf(err, "read link '%s'", path)
			}
			entries[item.Name()] = document.Symlink(target)
		case mode.IsDir():
			child, err := s.readDir(ctx, path)
			if err != nil {
				return document.Entry{}, err
			}
			entries[item.Name()] = child
		case mode.IsRegular():
			contents, err := os.ReadFile(path)
			if err != nil {
				return document.Entry{}, errors.Wrapf(err, "read file '%s'", path)
			}
			entries[item.Name()] = document.RegularFile(contents)
		default:
			s.logger.WithField("action", "read_package").
				WithField("path", path).
				Debugf("skipping %s entry", mode.Type())
		}
	}
	return document.Directory(entries), nil
}

// Write stores root at dir. The tree is written to a sibling temporary
// directory first and swapped into place, so a failed write leaves any
// existing package untouched.
func (s *Store) Write(ctx context.Context, dir string, root document.Entry) error {
	if !root.IsDirectory() {
		return errors.Errorf("package root is a %s, want directory", root.Kind)
	}
	dir = filepath.Clean(dir)
	parent := filepath.Dir(dir)
	if err := os.MkdirAll(parent, dirPerm); err != nil {
		return errors.Wrapf(err, "make dir '%s'", parent)
	}

	suffix := uuid.NewString()
	staging := dir + ".tmp-" + suffix
	if err := s.writeEntry(ctx, staging, root); err != nil {
		_ = os.RemoveAll(staging)
		return err
	}

	backup := ""
	if _, err := os.Lstat(dir); err == nil {
		backup = dir + ".old-" + suffix
		if err := os.Rename(dir, backup); err != nil {
			_ = os.RemoveAll(staging)
			return errors.Wrapf(err, "move aside '%s'", dir)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		_ = os.RemoveAll(staging)
		return errors.Wrapf(err, "stat package '%s'", dir)
	}

	if err := os.Rename(staging, dir); err != nil {
		if backup != "" {
			_ = os.Rename(backup, dir)
		}
		_ = os.RemoveAll(staging)
		return errors.Wrapf(err, "move '%s' into place", staging)
	}

	if backup != "" {
		if err := os.RemoveAll(backup); err != nil {
			s.logger.WithField("action", "write_package").
				WithField("package", dir).
				WithError(err).
				Warnf("failed removing previous package copy %v", backup)
		}
	}

	s.logger.WithField("action", "write_package").
		WithField("package", dir).
		Debug("wrote package")
	return nil
}

func (s *Store) writeEntry(ctx context.Context, path string, entry document.Entry) error {
	if err := ctx.Err(); err != nil {
		return errors.Wrapf(err, "write '%s'", path)
	}
	switch entry.Kind {
	case document.EntryDirectory:
		if err := os.MkdirAll(path, dirPerm); err != nil {
			return errors.Wrapf(err, "make dir '%s'", path)
		}
		for name, child := range entry.Entries {
			if name == "" || name != filepath.Base(name) || name == "." || name == ".." {
				return errors.Errorf("invalid entry name %q in '%s'", name, path)
			}
			if err := s.writeEntry(ctx, filepath.Join(path, name), child); err != nil {
				return err
			}
		}
	case document.EntryRegular:
		if err := os.WriteFile(path, entry.Contents, filePerm); err != nil {
			return errors.Wrapf(err, "write file '%s'", path)
		}
	case document.EntrySymlink:
		if err := os.Symlink(entry.Target, path); err != nil {
			return errors.Wrapf(err, "write link '%s'", path)
		}
	default:
		return errors.Errorf("unknown entry kind %s at '%s'", entry.Kind, path)
	}
	return nil
}
