// Package objectdb stores content-addressed blob/tree/commit objects as
// zlib-compressed loose files under objects/<oid[:2]>/<oid[2:]>, exactly
// as the mainstream git object store lays them out.
package objectdb

import (
	"bytes"
	"compress/zlib"
	"os"
	"strconv"
	"time"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/aureliengamet/minigit/plumbing/hash"
	"github.com/aureliengamet/minigit/plumbing/object"
)

// Database writes objects under a single "objects" root directory,
// through a billy.Filesystem chrooted there — the same abstraction the
// teacher's PackWriter uses for its own temp-file-then-rename writes.
type Database struct {
	fs billy.Filesystem
}

// New returns a Database rooted at objectsDir (typically "<git-dir>/objects").
func New(objectsDir string) *Database {
	return &Database{fs: osfs.New(objectsDir)}
}

// NewFS returns a Database operating directly on fs, typically a
// billy.Filesystem already chrooted at "<git-dir>/objects" so it shares
// the underlying root with Refs and the staging index.
func NewFS(fs billy.Filesystem) *Database {
	return &Database{fs: fs}
}

func (db *Database) pathFor(oid hash.OID) (dir, target string) {
	s := oid.String()
	dir = s[:2]
	target = db.fs.Join(dir, s[2:])
	return dir, target
}

// Store computes obj's OID, and if no object already exists at that
// address, zlib-compresses it and places it via temp-file-then-rename.
// Because objects are immutable by construction, an existing target is
// treated as success without rewriting it.
func (db *Database) Store(obj *object.Object) (hash.OID, error) {
	oid := obj.OID()
	dir, target := db.pathFor(oid)

	if _, err := db.fs.Stat(target); err == nil {
		return oid, nil
	} else if !os.IsNotExist(err) {
		return "", errors.Wrap(err, "Couldn't write bytes to disk")
	}

	if err := db.fs.MkdirAll(dir, 0o755); err != nil {
		return "", errors.Wrap(err, "Couldn't write bytes to disk")
	}

	var compressed bytes.Buffer
	zw := zlib.NewWriter(&compressed)
	if _, err := zw.Write(obj.Bytes()); err != nil {
		return "", errors.Wrap(err, "Couldn't write bytes to disk")
	}
	if err := zw.Close(); err != nil {
		return "", errors.Wrap(err, "Couldn't write bytes to disk")
	}

	tmp := db.fs.Join(dir, tempName())
	f, err := db.fs.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o444)
	if err != nil {
		return "", errors.Wrap(err, "Couldn't write bytes to disk")
	}
	if _, err := f.Write(compressed.Bytes()); err != nil {
		f.Close() //nolint:errcheck
		return "", errors.Wrap(err, "Couldn't write bytes to disk")
	}
	if err := f.Close(); err != nil {
		return "", errors.Wrap(err, "Couldn't write bytes to disk")
	}

	if err := db.fs.Rename(tmp, target); err != nil {
		return "", errors.Wrap(err, "Couldn't write bytes to disk")
	}

	return oid, nil
}

// tempName embeds a nanosecond timestamp, so a reader can tell temp
// files apart from real objects at a glance, plus a random suffix, so
// two writers racing within the same nanosecond on a coarse-grained
// clock still never collide.
func tempName() string {
	return "tmp_obj_" + strconv.FormatInt(time.Now().UnixNano(), 10) + "_" + uuid.NewString()
}
