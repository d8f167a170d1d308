package operations

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/aureliengamet/minigit/internal/repository"
	"github.com/aureliengamet/minigit/internal/treebuilder"
	"github.com/aureliengamet/minigit/plumbing/object"
)

// ErrMissingAuthorEnv is returned when GIT_AUTHOR_NAME or
// GIT_AUTHOR_EMAIL is unset at commit time.
var ErrMissingAuthorEnv = errors.New("commit requires GIT_AUTHOR_NAME and GIT_AUTHOR_EMAIL to be set")

// Commit consumes the staged index, builds and stores its tree, reads
// the commit message from message, and advances HEAD. It returns the
// announcement line ("[<marker><oid>] <summary>") on success.
//
// The index lock is always released by this call, whether or not the
// commit succeeds — commit never rewrites the index itself.
func Commit(repo *repository.Repository, message io.Reader) (string, error) {
	idx, err := repo.LoadIndexForUpdate()
	if err != nil {
		return "", err
	}
	defer idx.Release()

	name := os.Getenv("GIT_AUTHOR_NAME")
	email := os.Getenv("GIT_AUTHOR_EMAIL")
	if name == "" || email == "" {
		return "", ErrMissingAuthorEnv
	}

	msgBytes, err := io.ReadAll(message)
	if err != nil {
		return "", errors.Wrap(err, "reading commit message")
	}
	msg := string(msgBytes)

	root := treebuilder.Build(idx.SortedEntries())
	treeOID, err := treebuilder.Store(root, repo.Database)
	if err != nil {
		return "", err
	}

	parent, err := repo.Refs.ReadHead()
	if err != nil {
		return "", err
	}

	now := time.Now()
	signature := object.Signature{Name: name, Email: email, When: now}

	commitObj := object.NewCommit(object.Commit{
		Tree:      treeOID,
		Parent:    parent,
		Author:    signature,
		Committer: signature,
		Message:   msg,
	})

	commitOID, err := repo.Database.Store(commitObj)
	if err != nil {
		return "", err
	}

	if err := repo.Refs.UpdateHead(commitOID); err != nil {
		return "", err
	}

	marker := ""
	if parent == "" {
		marker = "(root-commit) "
	}
	return fmt.Sprintf("[%s%s] %s", marker, commitOID, firstLine(msg)), nil
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
