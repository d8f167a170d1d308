// Package repository assembles the components every operation needs:
// a Workspace, an ObjectDatabase, and Refs, all rooted at one
// "<root>/.git" directory. Its staging index is deliberately not a
// field here — it carries a lock that must be released promptly and
// handed off to whichever operation consumes it, so callers load it
// explicitly via LoadIndexForUpdate rather than reaching through a
// long-lived Repository field.
package repository

import (
	"path/filepath"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/pkg/errors"

	"github.com/aureliengamet/minigit/internal/objectdb"
	"github.com/aureliengamet/minigit/internal/refs"
	"github.com/aureliengamet/minigit/internal/stagingindex"
	"github.com/aureliengamet/minigit/internal/workspace"
)

const indexFile = "index"

// Repository owns a Workspace, Database, and Refs for one working tree.
type Repository struct {
	Workspace *workspace.Workspace
	Database  *objectdb.Database
	Refs      *refs.Refs

	gitDir string
	gitFS  billy.Filesystem
}

// Open assembles a Repository rooted at workspaceRoot, assuming
// "<workspaceRoot>/.git" already exists (via Init).
func Open(workspaceRoot string) *Repository {
	root := filepath.Clean(workspaceRoot)
	gitDir := filepath.Join(root, ".git")
	gitFS := osfs.New(gitDir)
	objectsFS, err := gitFS.Chroot("objects")
	if err != nil {
		// Chroot only fails on a malformed path; "objects" never is.
		panic(err)
	}
	return &Repository{
		Workspace: workspace.New(root),
		Database:  objectdb.NewFS(objectsFS),
		Refs:      refs.New(gitFS),
		gitDir:    gitDir,
		gitFS:     gitFS,
	}
}

// IndexPath returns the path to the binary staging index file.
func (r *Repository) IndexPath() string {
	return filepath.Join(r.gitDir, indexFile)
}

// LoadIndexForUpdate acquires the index lock and loads its current
// content, ready for add/commit/status to mutate or read.
func (r *Repository) LoadIndexForUpdate() (*stagingindex.StagingIndex, error) {
	return stagingindex.LoadForUpdate(r.gitFS, indexFile)
}

// Init creates "<path>/.git/objects" and "<path>/.git/refs",
// recursively and idempotently.
func Init(path string) error {
	gitDir := filepath.Join(path, ".git")
	fs := osfs.New(gitDir)
	for _, dir := range []string{"objects", "refs"} {
		if err := fs.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrapf(err, "creating %q", filepath.Join(gitDir, dir))
		}
	}
	return nil
}
