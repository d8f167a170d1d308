package objectdb_test

import (
	"compress/zlib"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/aureliengamet/minigit/internal/objectdb"
	"github.com/aureliengamet/minigit/plumbing/object"
)

func TestObjectDBSuite(t *testing.T) {
	suite.Run(t, new(ObjectDBSuite))
}

type ObjectDBSuite struct {
	suite.Suite
}

func (s *ObjectDBSuite) TestStorePlacesCompressedObject() {
	dir := s.T().TempDir()
	db := objectdb.New(dir)

	blob := object.NewBlob([]byte("Hello World"))
	oid, err := db.Store(blob)
	s.Require().NoError(err)
	s.Equal(blob.OID(), oid)

	target := filepath.Join(dir, oid.String()[:2], oid.String()[2:])
	s.FileExists(target)

	f, err := os.Open(target)
	s.Require().NoError(err)
	defer f.Close()

	zr, err := zlib.NewReader(f)
	s.Require().NoError(err)
	defer zr.Close()

	decompressed, err := io.ReadAll(zr)
	s.NoError(err)
	s.Equal(blob.Bytes(), decompressed)
}

func (s *ObjectDBSuite) TestStoreIsIdempotent() {
	dir := s.T().TempDir()
	db := objectdb.New(dir)
	blob := object.NewBlob([]byte("same content"))

	_, err := db.Store(blob)
	s.Require().NoError(err)

	target := filepath.Join(dir, blob.OID().String()[:2], blob.OID().String()[2:])
	before, err := os.Stat(target)
	s.Require().NoError(err)

	_, err = db.Store(blob)
	s.Require().NoError(err)

	after, err := os.Stat(target)
	s.NoError(err)
	s.Equal(before.ModTime(), after.ModTime())
}

func (s *ObjectDBSuite) TestStoreLeavesNoTempFiles() {
	dir := s.T().TempDir()
	db := objectdb.New(dir)
	_, err := db.Store(object.NewBlob([]byte("x")))
	s.Require().NoError(err)

	entries, err := os.ReadDir(dir)
	s.Require().NoError(err)
	for _, fanout := range entries {
		children, err := os.ReadDir(filepath.Join(dir, fanout.Name()))
		s.Require().NoError(err)
		for _, c := range children {
			s.NotContains(c.Name(), "tmp_obj_")
		}
	}
}
