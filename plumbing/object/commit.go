package object

import (
	"bytes"
	"fmt"

	"github.com/aureliengamet/minigit/plumbing/hash"
)

// Commit pins a root tree with identity, optional parent, and message.
type Commit struct {
	Tree      hash.OID
	Parent    hash.OID // zero value (empty string) means no parent
	Author    Signature
	Committer Signature
	Message   string
}

// NewCommit serializes c into a commit Object.
func NewCommit(c Commit) *Object {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "tree %s\n", c.Tree)
	if c.Parent != "" {
		fmt.Fprintf(&buf, "parent %s\n", c.Parent)
	}
	fmt.Fprintf(&buf, "author %s\n", c.Author.Encode())
	fmt.Fprintf(&buf, "committer %s\n", c.Committer.Encode())
	buf.WriteByte('\n')
	buf.WriteString(c.Message)
	return &Object{Type: CommitTypeTag, Content: buf.Bytes()}
}

// IsRoot reports whether c has no parent commit.
func (c Commit) IsRoot() bool {
	return c.Parent == ""
}
