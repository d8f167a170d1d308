// Package index implements the binary staging-index format: an ordered
// map from workspace path to (blob OID, file metadata), serialized
// exactly like a version-2 git index, including its trailing SHA-1
// checksum.
package index

import (
	"sort"
	"strings"

	"github.com/aureliengamet/minigit/plumbing/hash"
)

// Metadata is the ten 32-bit fields captured from the filesystem for a
// staged file, in the order they are written to disk.
type Metadata struct {
	CTimeSec, CTimeNsec uint32
	MTimeSec, MTimeNsec uint32
	Dev, Ino            uint32
	Mode                uint32
	UID, GID            uint32
	Size                uint32
}

// Entry is one staged path: its metadata and the blob it currently
// points at.
type Entry struct {
	Metadata
	OID  hash.OID
	Path string
}

// Index is the in-memory staging map. The zero value is not usable; use
// New. Index is not safe for concurrent use — callers serialize access
// via the lock file that owns it.
type Index struct {
	entries map[string]*Entry
	// parents maps every directory-ancestor path to the set of
	// currently-indexed descendant paths beneath it. Entirely derived
	// from entries; exists only to answer conflict-eviction and
	// is-path-tracked queries without a full scan.
	parents map[string]map[string]struct{}
}

// New returns an empty Index.
func New() *Index {
	return &Index{
		entries: make(map[string]*Entry),
		parents: make(map[string]map[string]struct{}),
	}
}

// Add stages path, evicting whatever conflicts with it first: any
// ancestor of path that is itself a file entry, and (if path was itself
// a tracked directory) every entry currently nested under path.
func (idx *Index) Add(path string, oid hash.OID, meta Metadata) {
	idx.discardConflicts(path)
	idx.entries[path] = &Entry{Metadata: meta, OID: oid, Path: path}
	idx.addAncestors(path)
}

// discardConflicts implements the two eviction rules from the mutation
// semantics, in the order the source applies them: ancestors first,
// then descendants.
func (idx *Index) discardConflicts(path string) {
	for _, ancestor := range ancestorsOf(path) {
		if _, ok := idx.entries[ancestor]; ok {
			idx.removeEntry(ancestor)
		}
	}

	if children, ok := idx.parents[path]; ok {
		toRemove := make([]string, 0, len(children))
		for child := range children {
			toRemove = append(toRemove, child)
		}
		for _, child := range toRemove {
			idx.removeEntry(child)
		}
		delete(idx.parents, path)
	}
}

// removeEntry deletes path's entry (if any) and unlinks it from every
// ancestor's descendant set, pruning ancestors left with no descendants.
func (idx *Index) removeEntry(path string) {
	delete(idx.entries, path)
	for _, ancestor := range ancestorsOf(path) {
		set, ok := idx.parents[ancestor]
		if !ok {
			continue
		}
		delete(set, path)
		if len(set) == 0 {
			delete(idx.parents, ancestor)
		}
	}
}

// addAncestors records path under every strict ancestor's descendant set.
func (idx *Index) addAncestors(path string) {
	for _, ancestor := range ancestorsOf(path) {
		set, ok := idx.parents[ancestor]
		if !ok {
			set = make(map[string]struct{})
			idx.parents[ancestor] = set
		}
		set[path] = struct{}{}
	}
}

// ancestorsOf returns every proper directory-prefix of path, e.g. for
// "a/b/c" it returns ["a", "a/b"].
func ancestorsOf(path string) []string {
	parts := strings.Split(path, "/")
	if len(parts) <= 1 {
		return nil
	}
	ancestors := make([]string, 0, len(parts)-1)
	prefix := parts[0]
	ancestors = append(ancestors, prefix)
	for _, p := range parts[1 : len(parts)-1] {
		prefix = prefix + "/" + p
		ancestors = append(ancestors, prefix)
	}
	return ancestors
}

// IsPathTracked reports whether path is staged directly, or is a
// directory with any staged entry beneath it.
func (idx *Index) IsPathTracked(path string) bool {
	if _, ok := idx.entries[path]; ok {
		return true
	}
	_, ok := idx.parents[path]
	return ok
}

// SortedEntries returns every entry in lexicographic path order.
func (idx *Index) SortedEntries() []*Entry {
	paths := make([]string, 0, len(idx.entries))
	for p := range idx.entries {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	out := make([]*Entry, len(paths))
	for i, p := range paths {
		out[i] = idx.entries[p]
	}
	return out
}

// Len returns the number of staged entries.
func (idx *Index) Len() int {
	return len(idx.entries)
}
