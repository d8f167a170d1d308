// Package lockfile implements the exclusive-create + atomic-rename
// critical section shared by the index and HEAD: a writer reserves a
// target path by creating "<target>.lock" (failing if it already
// exists), streams its new content into that file, and publishes it by
// renaming the lock onto the target. Targets live on a billy.Filesystem
// rather than bare os calls, the same way dotgit's ref storage locks
// and publishes through its own billy.Filesystem.
package lockfile

import (
	"os"

	"github.com/go-git/go-billy/v5"
	"github.com/pkg/errors"

	"github.com/aureliengamet/minigit/internal/trace"
)

// ErrLockContention is the underlying cause wrapped into the
// user-facing message when a lock file already exists.
var ErrLockContention = errors.New("lock file already held")

// LockFile is a held exclusive lock on Target, not yet published.
type LockFile struct {
	Target    string
	lockPath  string
	fs        billy.Filesystem
	file      billy.File
	committed bool
}

// Acquire creates "<target>.lock" on fs with O_CREATE|O_EXCL, failing
// loudly if another process already holds it.
func Acquire(fs billy.Filesystem, target string) (*LockFile, error) {
	lockPath := target + ".lock"
	f, err := fs.OpenFile(lockPath, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if os.IsExist(err) {
			return nil, errors.Wrapf(ErrLockContention, "unable to create %q: another minigit process may be running", lockPath)
		}
		return nil, errors.Wrapf(err, "unable to create %q", lockPath)
	}
	return &LockFile{Target: target, lockPath: lockPath, fs: fs, file: f}, nil
}

// Write appends bytes to the lock file, never to Target.
func (l *LockFile) Write(p []byte) (int, error) {
	return l.file.Write(p)
}

// Commit closes the lock file and renames it onto Target, publishing
// its content atomically. After Commit, Release is a no-op.
func (l *LockFile) Commit() error {
	if l.committed {
		return nil
	}
	if err := l.file.Close(); err != nil {
		return errors.Wrapf(err, "closing %q", l.lockPath)
	}
	if err := l.fs.Rename(l.lockPath, l.Target); err != nil {
		return errors.Wrapf(err, "renaming %q to %q", l.lockPath, l.Target)
	}
	l.committed = true
	return nil
}

// Release discards the lock without publishing it: the lock file is
// closed and best-effort deleted. Safe to call after Commit (no-op) or
// multiple times.
func (l *LockFile) Release() {
	if l.committed {
		return
	}
	l.committed = true
	if err := l.file.Close(); err != nil {
		trace.General.Printf("lockfile: close %q failed: %v", l.lockPath, err)
	}
	if err := l.fs.Remove(l.lockPath); err != nil && !os.IsNotExist(err) {
		trace.General.Printf("lockfile: removing %q failed: %v", l.lockPath, err)
	}
}
