package operations

import (
	"github.com/pkg/errors"

	"github.com/aureliengamet/minigit/internal/repository"
	"github.com/aureliengamet/minigit/internal/stagingindex"
	"github.com/aureliengamet/minigit/plumbing/object"
)

// Add stages every file reachable from pathspecs: each pathspec is
// first resolved and enumerated (a pathspec that matches nothing fails
// immediately, index untouched), then every resulting file is read,
// stored as a blob, and staged. A failure during that second phase is
// wrapped with the "adding files failed" suffix and the index is left
// exactly as it was before Add was called.
func Add(repo *repository.Repository, pathspecs []string) error {
	idx, err := repo.LoadIndexForUpdate()
	if err != nil {
		return err
	}

	var files []string
	for _, pathspec := range pathspecs {
		rel, err := repo.Workspace.Normalize(pathspec)
		if err != nil {
			idx.Release()
			return err
		}

		matched, err := repo.Workspace.ListFilesFromPath(rel)
		if err != nil {
			idx.Release()
			return err
		}
		files = append(files, matched...)
	}

	if err := stageFiles(repo, idx, files); err != nil {
		idx.Release()
		return errors.New(err.Error() + "\nfatal: adding files failed")
	}

	return idx.WriteUpdates()
}

func stageFiles(repo *repository.Repository, idx *stagingindex.StagingIndex, files []string) error {
	for _, rel := range files {
		data, err := repo.Workspace.ReadFile(rel)
		if err != nil {
			return err
		}

		oid, err := repo.Database.Store(object.NewBlob(data))
		if err != nil {
			return err
		}

		meta, err := repo.Workspace.StatMetadata(rel)
		if err != nil {
			return err
		}

		idx.Add(rel, oid, meta)
	}
	return nil
}
