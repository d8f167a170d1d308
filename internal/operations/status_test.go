package operations_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/aureliengamet/minigit/internal/operations"
	"github.com/aureliengamet/minigit/internal/repository"
)

func TestStatusSuite(t *testing.T) {
	suite.Run(t, new(StatusSuite))
}

type StatusSuite struct {
	suite.Suite
}

func (s *StatusSuite) openRepo() (*repository.Repository, string) {
	dir := s.T().TempDir()
	s.Require().NoError(repository.Init(dir))
	return repository.Open(dir), dir
}

func (s *StatusSuite) TestStatusListsUntrackedFilesAndDirectories() {
	repo, dir := s.openRepo()
	s.Require().NoError(os.WriteFile(filepath.Join(dir, "alice.txt"), []byte("a"), 0o644))
	s.Require().NoError(os.MkdirAll(filepath.Join(dir, "dir"), 0o755))
	s.Require().NoError(os.WriteFile(filepath.Join(dir, "dir", "bob.txt"), []byte("b"), 0o644))

	out, err := operations.Status(repo)
	s.NoError(err)
	s.Equal("?? alice.txt\n?? dir/\n", out)
}

func (s *StatusSuite) TestStatusRecursesIntoPartiallyTrackedDirectories() {
	repo, dir := s.openRepo()
	s.Require().NoError(os.MkdirAll(filepath.Join(dir, "a", "b", "c"), 0o755))
	s.Require().NoError(os.WriteFile(filepath.Join(dir, "a", "b", "inner.txt"), []byte("i"), 0o644))
	s.Require().NoError(os.WriteFile(filepath.Join(dir, "a", "outer.txt"), []byte("o"), 0o644))
	s.Require().NoError(os.WriteFile(filepath.Join(dir, "a", "b", "c", "file.txt"), []byte("f"), 0o644))

	s.Require().NoError(operations.Add(repo, []string{"a/b/inner.txt"}))

	out, err := operations.Status(repo)
	s.NoError(err)
	s.Equal("?? a/b/c/\n?? a/outer.txt\n", out)
}

func (s *StatusSuite) TestStatusIsEmptyWhenEverythingTracked() {
	repo, dir := s.openRepo()
	s.Require().NoError(os.WriteFile(filepath.Join(dir, "a.txt"), []byte("a"), 0o644))
	s.Require().NoError(operations.Add(repo, []string{"a.txt"}))

	out, err := operations.Status(repo)
	s.NoError(err)
	s.Equal("", out)
}
