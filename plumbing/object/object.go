// Package object implements the three content-addressed object variants
// (blob, tree, commit) and their canonical, git-compatible serialization.
package object

import (
	"fmt"

	"github.com/aureliengamet/minigit/plumbing/hash"
)

// Type tags an Object's variant. The three values below are the only
// ones this system ever produces; it never reads objects back.
type Type string

const (
	// BlobTypeTag is the header tag for a blob object.
	BlobTypeTag Type = "blob"
	// TreeTypeTag is the header tag for a tree object.
	TreeTypeTag Type = "tree"
	// CommitTypeTag is the header tag for a commit object.
	CommitTypeTag Type = "commit"
)

// Object is a tagged record holding the canonical payload for one of the
// three variants. Its OID is the SHA-1 of the header-prefixed buffer,
// never stored on the struct directly so it can never drift from its
// content.
type Object struct {
	Type    Type
	Content []byte
}

// header returns the "type len\0" prefix prepended to Content before
// hashing or storing, per the git object format.
func (o *Object) header() []byte {
	return []byte(fmt.Sprintf("%s %d\x00", o.Type, len(o.Content)))
}

// Bytes returns the full header+payload buffer as stored on disk
// (before zlib compression).
func (o *Object) Bytes() []byte {
	return append(o.header(), o.Content...)
}

// OID computes this object's content-addressed id.
func (o *Object) OID() hash.OID {
	sum := hash.Sum(o.Bytes())
	oid, _ := hash.FromBytes(sum[:]) // sum is always Size bytes
	return oid
}
