package operations

import (
	"sort"
	"strings"

	"github.com/aureliengamet/minigit/internal/repository"
	"github.com/aureliengamet/minigit/internal/stagingindex"
)

// Status scans the workspace for untracked files and directories and
// renders them as sorted "?? <path>\n" lines.
func Status(repo *repository.Repository) (string, error) {
	idx, err := repo.LoadIndexForUpdate()
	if err != nil {
		return "", err
	}
	defer idx.Release()

	var untracked []string
	if err := scan(repo, idx, "", &untracked); err != nil {
		return "", err
	}
	sort.Strings(untracked)

	var buf strings.Builder
	for _, p := range untracked {
		buf.WriteString("?? " + p + "\n")
	}
	return buf.String(), nil
}

// scan walks dir's immediate children, recursing into directories the
// index already tracks something beneath, and collecting every
// trackable child (file or whole directory) it finds otherwise.
func scan(repo *repository.Repository, idx *stagingindex.StagingIndex, dir string, out *[]string) error {
	children, err := repo.Workspace.ListDir(dir)
	if err != nil {
		return err
	}

	for _, rel := range children {
		isDir, err := repo.Workspace.IsDir(rel)
		if err != nil {
			return err
		}

		if isDir && idx.IsPathTracked(rel) {
			if err := scan(repo, idx, rel, out); err != nil {
				return err
			}
			continue
		}

		trackable, err := isTrackable(repo, idx, rel, isDir)
		if err != nil {
			return err
		}
		if !trackable {
			continue
		}
		if isDir {
			*out = append(*out, rel+"/")
		} else {
			*out = append(*out, rel)
		}
	}
	return nil
}

// isTrackable reports whether path is trackable: an untracked file, or
// a directory transitively containing one. Files are checked before
// descending into subdirectories, matching the source's evaluation
// order (it has no effect on the result, only on how much is walked).
func isTrackable(repo *repository.Repository, idx *stagingindex.StagingIndex, rel string, isDir bool) (bool, error) {
	if !isDir {
		return !idx.IsPathTracked(rel), nil
	}

	children, err := repo.Workspace.ListDir(rel)
	if err != nil {
		return false, err
	}

	var dirs []string
	for _, childRel := range children {
		childIsDir, err := repo.Workspace.IsDir(childRel)
		if err != nil {
			return false, err
		}
		if !childIsDir {
			if !idx.IsPathTracked(childRel) {
				return true, nil
			}
			continue
		}
		dirs = append(dirs, childRel)
	}

	for _, childRel := range dirs {
		trackable, err := isTrackable(repo, idx, childRel, true)
		if err != nil {
			return false, err
		}
		if trackable {
			return true, nil
		}
	}
	return false, nil
}
