package object_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/aureliengamet/minigit/plumbing/filemode"
	"github.com/aureliengamet/minigit/plumbing/hash"
	"github.com/aureliengamet/minigit/plumbing/object"
)

func TestObjectSuite(t *testing.T) {
	suite.Run(t, new(ObjectSuite))
}

type ObjectSuite struct {
	suite.Suite
}

func (s *ObjectSuite) TestBlobOID() {
	b := object.NewBlob([]byte("Hello World"))
	s.Equal(hash.OID("5e1c309dae7f45e0f39b1bf3ac3cd9db12e7d689"), b.OID())
}

func (s *ObjectSuite) TestEmptyTreeOID() {
	tr, err := object.NewTree(nil)
	s.Require().NoError(err)
	s.Equal(hash.OID("4b825dc642cb6eb9a060e54bf8d69288fbee4904"), tr.OID())
}

func (s *ObjectSuite) TestTreeEntrySerialization() {
	blob := object.NewBlob([]byte("Hello World"))
	tr, err := object.NewTree([]object.TreeEntry{
		{Mode: filemode.Regular, Name: "hello.txt", OID: blob.OID()},
	})
	s.Require().NoError(err)

	raw, err := blob.OID().Bytes()
	s.Require().NoError(err)

	expected := append([]byte("100644 hello.txt\x00"), raw...)
	s.Equal(expected, tr.Content)
}

func (s *ObjectSuite) TestCommitPayloadShape() {
	when := time.Date(2024, 1, 2, 3, 4, 5, 0, time.FixedZone("", 2*3600))
	c := object.Commit{
		Tree:      hash.OID("4b825dc642cb6eb9a060e54bf8d69288fbee4904"),
		Author:    object.Signature{Name: "Jane Doe", Email: "jane@example.com", When: when},
		Committer: object.Signature{Name: "Jane Doe", Email: "jane@example.com", When: when},
		Message:   "initial commit\n",
	}
	o := object.NewCommit(c)

	s.Equal(object.CommitTypeTag, o.Type)
	s.Contains(string(o.Content), "tree 4b825dc642cb6eb9a060e54bf8d69288fbee4904\n")
	s.NotContains(string(o.Content), "parent ")
	s.Contains(string(o.Content), "author Jane Doe <jane@example.com> ")
	s.Contains(string(o.Content), "+0200")
	s.Contains(string(o.Content), "\n\ninitial commit\n")
}

func (s *ObjectSuite) TestCommitWithParent() {
	c := object.Commit{
		Tree:    hash.OID("4b825dc642cb6eb9a060e54bf8d69288fbee4904"),
		Parent:  hash.OID("5e1c309dae7f45e0f39b1bf3ac3cd9db12e7d689"),
		Message: "second\n",
	}
	o := object.NewCommit(c)
	s.Contains(string(o.Content), "parent 5e1c309dae7f45e0f39b1bf3ac3cd9db12e7d689\n")
	s.False(c.IsRoot())
}
