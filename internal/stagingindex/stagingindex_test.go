package stagingindex_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/stretchr/testify/suite"

	"github.com/aureliengamet/minigit/internal/stagingindex"
	"github.com/aureliengamet/minigit/plumbing/format/index"
	"github.com/aureliengamet/minigit/plumbing/hash"
)

func oid(b byte) hash.OID {
	raw := bytes.Repeat([]byte{b}, hash.Size)
	o, _ := hash.FromBytes(raw)
	return o
}

func TestStagingIndexSuite(t *testing.T) {
	suite.Run(t, new(StagingIndexSuite))
}

type StagingIndexSuite struct {
	suite.Suite
}

func (s *StagingIndexSuite) TestLoadForUpdateStartsEmptyWhenNoFile() {
	dir := s.T().TempDir()
	fs := osfs.New(dir)

	idx, err := stagingindex.LoadForUpdate(fs, "index")
	s.Require().NoError(err)
	defer idx.Release()

	s.Empty(idx.SortedEntries())
}

func (s *StagingIndexSuite) TestLoadForUpdateFailsOnContention() {
	dir := s.T().TempDir()
	fs := osfs.New(dir)

	first, err := stagingindex.LoadForUpdate(fs, "index")
	s.Require().NoError(err)
	defer first.Release()

	_, err = stagingindex.LoadForUpdate(fs, "index")
	s.Error(err)
}

func (s *StagingIndexSuite) TestWriteUpdatesThenReload() {
	dir := s.T().TempDir()
	fs := osfs.New(dir)

	idx, err := stagingindex.LoadForUpdate(fs, "index")
	s.Require().NoError(err)
	idx.Add("hello.txt", oid(1), index.Metadata{Mode: 0o100644})
	s.Require().NoError(idx.WriteUpdates())

	s.FileExists(filepath.Join(dir, "index"))
	s.NoFileExists(filepath.Join(dir, "index.lock"))

	reloaded, err := stagingindex.LoadForUpdate(fs, "index")
	s.Require().NoError(err)
	defer reloaded.Release()

	entries := reloaded.SortedEntries()
	s.Require().Len(entries, 1)
	s.Equal("hello.txt", entries[0].Path)
}

func (s *StagingIndexSuite) TestWriteUpdatesNoopWhenUnchanged() {
	dir := s.T().TempDir()
	fs := osfs.New(dir)

	idx, err := stagingindex.LoadForUpdate(fs, "index")
	s.Require().NoError(err)
	s.Require().NoError(idx.WriteUpdates())

	s.NoFileExists(filepath.Join(dir, "index"))
}

func (s *StagingIndexSuite) TestReleaseLeavesIndexFileUntouched() {
	dir := s.T().TempDir()
	fs := osfs.New(dir)

	seed, err := stagingindex.LoadForUpdate(fs, "index")
	s.Require().NoError(err)
	seed.Add("a.txt", oid(2), index.Metadata{})
	s.Require().NoError(seed.WriteUpdates())

	before, err := os.ReadFile(filepath.Join(dir, "index"))
	s.Require().NoError(err)

	idx, err := stagingindex.LoadForUpdate(fs, "index")
	s.Require().NoError(err)
	idx.Add("b.txt", oid(3), index.Metadata{})
	idx.Release()

	after, err := os.ReadFile(filepath.Join(dir, "index"))
	s.NoError(err)
	s.Equal(before, after)
}
