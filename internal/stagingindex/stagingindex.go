// Package stagingindex binds the binary index format to the lock-file
// discipline: loading acquires "index.lock" immediately, mutations only
// ever touch the in-memory map, and WriteUpdates is the only path that
// publishes them — by streaming straight through the held lock file and
// committing it via rename.
package stagingindex

import (
	"os"

	"github.com/go-git/go-billy/v5"
	"github.com/pkg/errors"

	"github.com/aureliengamet/minigit/internal/lockfile"
	"github.com/aureliengamet/minigit/plumbing/format/index"
	"github.com/aureliengamet/minigit/plumbing/hash"
)

// StagingIndex is an Index with an exclusively held lock. The lock is
// transferred out by WriteUpdates (commit) or released by Release
// (drop) — never both.
type StagingIndex struct {
	path    string
	lock    *lockfile.LockFile
	idx     *index.Index
	changed bool
}

// LoadForUpdate acquires path's lock on fs and loads the existing index
// file, or starts from an empty index if none exists yet.
func LoadForUpdate(fs billy.Filesystem, path string) (*StagingIndex, error) {
	lock, err := lockfile.Acquire(fs, path)
	if err != nil {
		return nil, err
	}

	idx, err := loadExisting(fs, path)
	if err != nil {
		lock.Release()
		return nil, err
	}

	return &StagingIndex{path: path, lock: lock, idx: idx}, nil
}

func loadExisting(fs billy.Filesystem, path string) (*index.Index, error) {
	f, err := fs.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return index.New(), nil
		}
		return nil, errors.Wrapf(err, "opening index %q", path)
	}
	defer f.Close() //nolint:errcheck

	idx, err := index.Decode(f)
	if err != nil {
		return nil, err
	}
	return idx, nil
}

// Add stages path, evicting whatever conflicts with it.
func (s *StagingIndex) Add(path string, oid hash.OID, meta index.Metadata) {
	s.idx.Add(path, oid, meta)
	s.changed = true
}

// IsPathTracked reports whether path is staged or contains staged
// entries beneath it.
func (s *StagingIndex) IsPathTracked(path string) bool {
	return s.idx.IsPathTracked(path)
}

// SortedEntries returns every staged entry in lexicographic path order.
func (s *StagingIndex) SortedEntries() []*index.Entry {
	return s.idx.SortedEntries()
}

// WriteUpdates streams the index through the held lock file and
// commits it. If nothing changed since load, it is a no-op that still
// releases the lock.
func (s *StagingIndex) WriteUpdates() error {
	if !s.changed {
		s.lock.Release()
		return nil
	}

	if err := index.Encode(s.lock, s.idx); err != nil {
		s.lock.Release()
		return err
	}
	if err := s.lock.Commit(); err != nil {
		return err
	}
	s.changed = false
	return nil
}

// Release drops the lock without writing anything back, used by
// operations (like commit) that only need to read the staged entries.
func (s *StagingIndex) Release() {
	s.lock.Release()
}
