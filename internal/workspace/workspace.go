// Package workspace resolves user-supplied paths into workspace-relative
// paths, enumerates files under the hard-coded ignore rules, and reads
// file bytes and POSIX metadata. Everything below the normalization
// boundary except StatMetadata (which stats the absolute path directly)
// goes through a billy.Filesystem chrooted at the workspace root, the
// same abstraction go-git's own worktree and dotgit layers are built on.
package workspace

import (
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/pkg/errors"
	"golang.org/x/sys/unix"

	"github.com/aureliengamet/minigit/plumbing/filemode"
	"github.com/aureliengamet/minigit/plumbing/format/index"
)

// ignoredDirs are directory names never descended into and never
// returned by any enumeration. "target" is carried over from the
// source's build-tool bias (see DESIGN.md Open Question).
var ignoredDirs = map[string]bool{
	".git":   true,
	"target": true,
}

// ignoredFiles are file names always skipped.
var ignoredFiles = map[string]bool{
	".DS_Store": true,
}

// ignoredExtensions are file extensions (without the dot) always skipped.
var ignoredExtensions = map[string]bool{
	"iml": true,
}

// Workspace roots all path resolution and traversal at Root. Every
// enumeration, read, and stat below operates on paths relative to Root
// through fs; Root itself is kept only for normalizing pathspecs and
// for the few raw POSIX stat fields billy.Filesystem doesn't expose.
type Workspace struct {
	Root string
	fs   billy.Filesystem
}

// New returns a Workspace rooted at an absolute, cleaned root path.
func New(root string) *Workspace {
	clean := filepath.Clean(root)
	return &Workspace{Root: clean, fs: osfs.New(clean)}
}

// Normalize resolves a user-supplied pathspec into a workspace-relative,
// symlink-resolved path, failing if nothing exists there.
func (w *Workspace) Normalize(pathspec string) (string, error) {
	p := pathspec
	if !filepath.IsAbs(p) {
		p = filepath.Join(w.Root, p)
	}

	canonical, err := filepath.EvalSymlinks(p)
	if err != nil {
		if os.IsNotExist(err) {
			return "", errors.Errorf("fatal: pathspec '%s' did not match any files", p)
		}
		return "", errors.Wrapf(err, "fatal: pathspec '%s' did not match any files", p)
	}
	return w.relative(canonical)
}

// relative converts an absolute path back into a workspace-relative,
// slash-separated path.
func (w *Workspace) relative(abs string) (string, error) {
	rel, err := filepath.Rel(w.Root, abs)
	if err != nil {
		return "", err
	}
	return filepath.ToSlash(rel), nil
}

// billyPath adapts a workspace-relative path (which may be "" for the
// root itself) to the form billy.Filesystem expects.
func billyPath(rel string) string {
	if rel == "" {
		return "."
	}
	return filepath.FromSlash(rel)
}

func isIgnoredDir(name string) bool {
	return ignoredDirs[name]
}

func isIgnoredFile(name string) bool {
	if ignoredFiles[name] {
		return true
	}
	ext := filepath.Ext(name)
	if len(ext) > 1 {
		return ignoredExtensions[ext[1:]]
	}
	return false
}

// IsDir reports whether workspace-relative path rel is a directory.
func (w *Workspace) IsDir(rel string) (bool, error) {
	info, err := w.fs.Stat(billyPath(rel))
	if err != nil {
		return false, errors.Wrapf(err, "stat %q", rel)
	}
	return info.IsDir(), nil
}

// ListFilesFromPath recursively lists every non-ignored regular file
// under workspace-relative path rel, returned as workspace-relative
// paths. If rel is itself a (non-ignored) file, it returns a
// single-element slice.
func (w *Workspace) ListFilesFromPath(rel string) ([]string, error) {
	info, err := w.fs.Stat(billyPath(rel))
	if err != nil {
		return nil, errors.Wrapf(err, "stat %q", rel)
	}

	if !info.IsDir() {
		if isIgnoredFile(info.Name()) {
			return nil, nil
		}
		return []string{filepath.ToSlash(rel)}, nil
	}

	var out []string
	if err := w.walkFiles(rel, &out); err != nil {
		return nil, err
	}

	sort.Strings(out)
	return out, nil
}

func (w *Workspace) walkFiles(rel string, out *[]string) error {
	entries, err := w.fs.ReadDir(billyPath(rel))
	if err != nil {
		return errors.Wrapf(err, "reading dir %q", rel)
	}

	for _, e := range entries {
		childRel := w.fs.Join(rel, e.Name())
		if e.IsDir() {
			if isIgnoredDir(e.Name()) {
				continue
			}
			if err := w.walkFiles(childRel, out); err != nil {
				return err
			}
			continue
		}
		if isIgnoredFile(e.Name()) {
			continue
		}
		*out = append(*out, filepath.ToSlash(childRel))
	}
	return nil
}

// ListDir returns the immediate, non-ignored children of
// workspace-relative path rel, as workspace-relative paths, without
// recursing.
func (w *Workspace) ListDir(rel string) ([]string, error) {
	entries, err := w.fs.ReadDir(billyPath(rel))
	if err != nil {
		return nil, errors.Wrapf(err, "reading dir %q", rel)
	}

	var out []string
	for _, e := range entries {
		if e.IsDir() {
			if isIgnoredDir(e.Name()) {
				continue
			}
		} else if isIgnoredFile(e.Name()) {
			continue
		}

		out = append(out, filepath.ToSlash(w.fs.Join(rel, e.Name())))
	}

	sort.Strings(out)
	return out, nil
}

// ReadFile returns the full contents of workspace-relative path rel.
func (w *Workspace) ReadFile(rel string) ([]byte, error) {
	f, err := w.fs.Open(billyPath(rel))
	if err != nil {
		return nil, errors.Wrapf(err, "error: trying to read file '%s'", rel)
	}
	defer f.Close() //nolint:errcheck

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, errors.Wrapf(err, "error: trying to read file '%s'", rel)
	}
	return data, nil
}

// StatMetadata extracts the ten index-entry fields for workspace-relative
// path rel, canonicalizing mode to Regular or Executable based on the
// owner execute bit. billy.Filesystem's os.FileInfo doesn't expose the
// raw ctime/dev/ino/uid/gid fields an index entry needs, so these come
// from a direct POSIX stat against the underlying path.
func (w *Workspace) StatMetadata(rel string) (index.Metadata, error) {
	abs := filepath.Join(w.Root, filepath.FromSlash(rel))

	info, err := os.Stat(abs)
	if err != nil {
		return index.Metadata{}, errors.Wrapf(err, "stat %q", rel)
	}

	var stat unix.Stat_t
	if err := unix.Stat(abs, &stat); err != nil {
		return index.Metadata{}, errors.Wrapf(err, "stat %q", rel)
	}

	mode := filemode.New(info.Mode())

	return index.Metadata{
		CTimeSec:  uint32(stat.Ctim.Sec),  //nolint:gosec
		CTimeNsec: uint32(stat.Ctim.Nsec), //nolint:gosec
		MTimeSec:  uint32(stat.Mtim.Sec),  //nolint:gosec
		MTimeNsec: uint32(stat.Mtim.Nsec), //nolint:gosec
		Dev:       uint32(stat.Dev),       //nolint:gosec
		Ino:       uint32(stat.Ino),       //nolint:gosec
		Mode:      uint32(mode),
		UID:       stat.Uid,
		GID:       stat.Gid,
		Size:      uint32(stat.Size), //nolint:gosec
	}, nil
}
