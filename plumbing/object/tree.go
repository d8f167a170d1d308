package object

import (
	"bytes"
	"fmt"

	"github.com/aureliengamet/minigit/plumbing/filemode"
	"github.com/aureliengamet/minigit/plumbing/hash"
)

// TreeEntry is one child of a tree object: either a regular/executable
// file (blob) or a sub-tree, named within its parent directory.
type TreeEntry struct {
	Mode filemode.FileMode
	Name string
	OID  hash.OID
}

// NewTree serializes entries, in the order given, into a tree Object.
// Callers are responsible for ordering (the tree builder always hands
// entries in insertion order, which for a freshly-built tree is the
// sorted order the format expects).
func NewTree(entries []TreeEntry) (*Object, error) {
	var buf bytes.Buffer
	for _, e := range entries {
		raw, err := e.OID.Bytes()
		if err != nil {
			return nil, fmt.Errorf("tree entry %q: %w", e.Name, err)
		}
		buf.WriteString(e.Mode.String())
		buf.WriteByte(' ')
		buf.WriteString(e.Name)
		buf.WriteByte(0)
		buf.Write(raw)
	}
	return &Object{Type: TreeTypeTag, Content: buf.Bytes()}, nil
}
