// Package refs manages HEAD, the only reference this system supports —
// there are no branches, tags, or other reference namespaces.
package refs

import (
	"io"
	"os"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/pkg/errors"

	"github.com/aureliengamet/minigit/internal/lockfile"
	"github.com/aureliengamet/minigit/plumbing/hash"
)

const headFile = "HEAD"

// Refs manages HEAD on a billy.Filesystem chrooted at the git
// directory, the same filesystem dotgit uses for its own ref storage.
type Refs struct {
	fs billy.Filesystem
}

// New returns a Refs operating on fs (typically chrooted at "<workspace>/.git").
func New(fs billy.Filesystem) *Refs {
	return &Refs{fs: fs}
}

// ReadHead returns the current HEAD OID, or "" if HEAD has never been
// written (no commit yet).
func (r *Refs) ReadHead() (hash.OID, error) {
	f, err := r.fs.Open(headFile)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", errors.Wrap(err, "reading HEAD")
	}
	defer f.Close() //nolint:errcheck

	data, err := io.ReadAll(f)
	if err != nil {
		return "", errors.Wrap(err, "reading HEAD")
	}
	return hash.OID(strings.TrimSpace(string(data))), nil
}

// UpdateHead atomically publishes oid as the new HEAD, through the same
// lock-file-then-rename discipline the index uses.
func (r *Refs) UpdateHead(oid hash.OID) error {
	lock, err := lockfile.Acquire(r.fs, headFile)
	if err != nil {
		return err
	}
	defer lock.Release()

	if _, err := lock.Write([]byte(oid.String())); err != nil {
		return errors.Wrap(err, "writing HEAD")
	}
	return lock.Commit()
}
