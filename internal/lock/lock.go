// Package lock guards target_dir against a second concurrent gocar
// instance with an advisory lock, the way a build database file gets
// locked against concurrent writers.
package lock

import (
	"path/filepath"

	"github.com/danjacques/gofslock/fslock"
	"github.com/gocar-build/gocar/internal/base"
)

var LogLock = base.NewLogCategory("Lock")

// TargetDir is a held advisory lock on one target directory. Two
// concurrent engine instances sharing a target_dir are out of
// contract; acquiring this lock turns that into a fast, diagnosable
// failure instead of racing writers.
type TargetDir struct {
	handle fslock.Handle
}

// Acquire takes an exclusive, non-blocking lock on targetDir. It fails
// immediately (rather than waiting) if another gocar process already
// holds it.
func Acquire(targetDir string) (*TargetDir, error) {
	lockPath := filepath.Join(targetDir, ".gocar.lock")
	handle, err := fslock.Lock(lockPath)
	if err != nil {
		return nil, base.WrapFilesystem("lock", lockPath, err)
	}
	base.LogDebugf(LogLock, "locked %q", lockPath)
	return &TargetDir{handle: handle}, nil
}

// Release unlocks targetDir. Safe to call on every exit path,
// including after a failed build.
func (l *TargetDir) Release() error {
	if l == nil || l.handle == nil {
		return nil
	}
	return l.handle.Unlock()
}
