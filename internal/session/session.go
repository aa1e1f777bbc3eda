package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/five82/mcmap/internal/document"
	"github.com/five82/mcmap/internal/pkgfs"
)

// Snapshot is a point-in-time copy of an editing session.
type Snapshot struct {
	Path      string
	File      document.File
	Dirty     bool
	LastSaved time.Time
	LastError error
}

// Session owns one document and serializes every access to it.
type Session struct {
	mu       sync.RWMutex
	snapshot Snapshot
	logger   logrus.FieldLogger
}

// New returns a session editing file, which will be saved to path.
func New(path string, file document.File, logger logrus.FieldLogger) *Session {
	return &Session{
		snapshot: Snapshot{Path: path, File: file},
		logger:   logger.WithField("package", path),
	}
}

// Open reads and decodes the package at path.
func Open(ctx context.Context, path string, r pkgfs.Reader, logger logrus.FieldLogger) (*Session, error) {
	root, err := r.Read(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("read package: %w", err)
	}
	file, err := document.DecodeLayout(root)
	if err != nil {
		return nil, fmt.Errorf("open package %s: %w", path, err)
	}
	return New(path, file, logger), nil
}

// Update applies edit to the document under the write lock. When edit
// fails the document is left as it was before the call.
func (s *Session) Update(edit func(*document.File) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	working := s.snapshot.File.Clone()
	if err := edit(&working); err != nil {
		s.snapshot.LastError = err
		return err
	}
	s.snapshot.File = working
	s.snapshot.Dirty = true
	s.snapshot.LastError = nil
	return nil
}

// Save encodes the document and writes it through w.
func (s *Session) Save(ctx context.Context, w pkgfs.Writer) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	layout, err := s.snapshot.File.EncodeLayout()
	if err == nil {
		err = w.Write(ctx, s.snapshot.Path, layout)
	}
	if err != nil {
		s.snapshot.LastError = err
		s.logger.WithField("action", "save_package").WithError(err).Error("save failed")
		return fmt.Errorf("save package: %w", err)
	}

	s.snapshot.Dirty = false
	s.snapshot.LastSaved = time.Now()
	s.snapshot.LastError = nil
	s.logger.WithField("action", "save_package").
		WithField("pins", len(s.snapshot.File.Manifest.Pins)).
		WithField("images", len(s.snapshot.File.Images)).
		Info("saved package")
	return nil
}

// Snapshot returns a deep copy of the current session state.
func (s *Session) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.File = s.snapshot.File.Clone()
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}
