package lockfile_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/stretchr/testify/suite"

	"github.com/aureliengamet/minigit/internal/lockfile"
)

func TestLockFileSuite(t *testing.T) {
	suite.Run(t, new(LockFileSuite))
}

type LockFileSuite struct {
	suite.Suite
}

func (s *LockFileSuite) TestAcquireCreatesLockFile() {
	dir := s.T().TempDir()
	fs := osfs.New(dir)

	l, err := lockfile.Acquire(fs, "index")
	s.Require().NoError(err)
	defer l.Release()

	s.FileExists(filepath.Join(dir, "index.lock"))
	s.NoFileExists(filepath.Join(dir, "index"))
}

func (s *LockFileSuite) TestAcquireFailsOnContention() {
	dir := s.T().TempDir()
	fs := osfs.New(dir)

	first, err := lockfile.Acquire(fs, "index")
	s.Require().NoError(err)
	defer first.Release()

	_, err = lockfile.Acquire(fs, "index")
	s.Error(err)
	s.ErrorIs(err, lockfile.ErrLockContention)
}

func (s *LockFileSuite) TestCommitPublishesAndRemovesLock() {
	dir := s.T().TempDir()
	fs := osfs.New(dir)

	l, err := lockfile.Acquire(fs, "index")
	s.Require().NoError(err)

	_, err = l.Write([]byte("payload"))
	s.Require().NoError(err)
	s.Require().NoError(l.Commit())

	s.NoFileExists(filepath.Join(dir, "index.lock"))
	content, err := os.ReadFile(filepath.Join(dir, "index"))
	s.NoError(err)
	s.Equal("payload", string(content))
}

func (s *LockFileSuite) TestReleaseWithoutCommitDeletesLock() {
	dir := s.T().TempDir()
	fs := osfs.New(dir)

	l, err := lockfile.Acquire(fs, "index")
	s.Require().NoError(err)
	l.Release()

	s.NoFileExists(filepath.Join(dir, "index.lock"))
	s.NoFileExists(filepath.Join(dir, "index"))

	// a fresh acquire must now succeed
	l2, err := lockfile.Acquire(fs, "index")
	s.Require().NoError(err)
	l2.Release()
}

func (s *LockFileSuite) TestCommitThenReleaseIsNoop() {
	dir := s.T().TempDir()
	fs := osfs.New(dir)

	l, err := lockfile.Acquire(fs, "index")
	s.Require().NoError(err)
	s.Require().NoError(l.Commit())
	l.Release()

	content, err := os.ReadFile(filepath.Join(dir, "index"))
	s.NoError(err)
	s.Empty(content)
}
