package filelock

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// DefaultScratchPath is the well-known location config blocks are staged in.
var DefaultScratchPath = filepath.Join(os.TempDir(), "docverify_config_test.toml")

// ErrScratchBusy is returned by Acquire when another run holds the scratch lock.
var ErrScratchBusy = errors.New("scratch file is in use by another run")

// ScratchWriteError reports that block content could not be staged.
type ScratchWriteError struct {
	Path string
	Err  error
}

// Error implements the error interface for ScratchWriteError.
func (e *ScratchWriteError) Error() string {
	return fmt.Sprintf("failed to write scratch file %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying I/O error.
func (e *ScratchWriteError) Unwrap() error {
	return e.Err
}

// Scratch is a single file overwritten once per verified block. The file is
// shared by every block of a run, so a run holds an exclusive lock on
// "<path>.lock" between Acquire and Release.
type Scratch struct {
	path    string
	lock    *FileLock
	tempDir string // removed on Release when the scratch is per-run
}

// NewScratch returns a scratch file at a fixed path.
func NewScratch(path string) *Scratch {
	return &Scratch{
		path: path,
		lock: NewFileLock(path + ".lock"),
	}
}

// NewUniqueScratch allocates a scratch file inside a fresh temporary directory,
// so concurrent runs never share it.
func NewUniqueScratch(name string) (*Scratch, error) {
	dir, err := os.MkdirTemp("", "docverify-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create scratch directory: %w", err)
	}
	s := NewScratch(filepath.Join(dir, name))
	s.tempDir = dir
	return s, nil
}

// Path returns the location the validator binary is pointed at.
func (s *Scratch) Path() string {
	return s.path
}

// Acquire takes the scratch lock without blocking.
func (s *Scratch) Acquire() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return &ScratchWriteError{Path: s.path, Err: err}
	}
	ok, err := s.lock.TryLock()
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %s", ErrScratchBusy, s.path)
	}
	return nil
}

// Write replaces the scratch content. No handle stays open between writes.
func (s *Scratch) Write(content string) error {
	if !s.lock.Locked() {
		return &ScratchWriteError{Path: s.path, Err: errors.New("scratch lock not held")}
	}
	if err := AtomicWrite(s.path, []byte(content)); err != nil {
		return &ScratchWriteError{Path: s.path, Err: err}
	}
	return nil
}

// Release drops the lock and, for a per-run scratch, removes its directory.
func (s *Scratch) Release() error {
	var errs []error
	if s.lock.Locked() {
		if err := s.lock.Unlock(); err != nil {
			errs = append(errs, err)
		}
	}
	if s.tempDir != "" {
		if err := os.RemoveAll(s.tempDir); err != nil {
			errs = append(errs, fmt.Errorf("failed to remove scratch directory: %w", err))
		}
	}
	return errors.Join(errs...)
}
