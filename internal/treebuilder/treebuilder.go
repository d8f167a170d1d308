// Package treebuilder nests a flat, path-sorted list of index entries
// into a tree of tree-objects, and stores it bottom-up.
//
// The source models this as a polymorphic "tree-or-entry" node with
// dynamic dispatch. Since Go has no inheritance to fall back on for
// that, and no need for one: a node is either a directory (with
// children, built and stored recursively) or a leaf wrapping a staged
// index entry, and the post-order walk below simply switches on which
// one it has.
package treebuilder

import (
	"strings"

	"github.com/aureliengamet/minigit/internal/objectdb"
	"github.com/aureliengamet/minigit/plumbing/filemode"
	"github.com/aureliengamet/minigit/plumbing/format/index"
	"github.com/aureliengamet/minigit/plumbing/hash"
	"github.com/aureliengamet/minigit/plumbing/object"
)

// node is a tree (directory) or a leaf (staged file), never both.
type node struct {
	name     string
	entry    *index.Entry // non-nil for a leaf
	children []*node      // non-empty only for a tree
}

func (n *node) isLeaf() bool {
	return n.entry != nil
}

// Build nests entries (which must already be in lexicographic path
// order) into a root tree node. Because the input is sorted, the only
// subtree that can ever need reuse for the next entry's next path
// component is the last child appended to the current node — if its
// name doesn't match, a new sibling is appended instead.
func Build(entries []*index.Entry) *node {
	root := &node{}
	for _, e := range entries {
		parts := strings.Split(e.Path, "/")
		dirs, name := parts[:len(parts)-1], parts[len(parts)-1]

		current := root
		for _, dir := range dirs {
			if n := lastChild(current); n != nil && !n.isLeaf() && n.name == dir {
				current = n
				continue
			}
			child := &node{name: dir}
			current.children = append(current.children, child)
			current = child
		}

		current.children = append(current.children, &node{name: name, entry: e})
	}
	return root
}

func lastChild(n *node) *node {
	if len(n.children) == 0 {
		return nil
	}
	return n.children[len(n.children)-1]
}

// Store recursively stores every subtree of root (children first, then
// root's own payload) into db, and returns root's OID — the commit's
// tree reference.
func Store(root *node, db *objectdb.Database) (hash.OID, error) {
	entries := make([]object.TreeEntry, 0, len(root.children))

	for _, child := range root.children {
		if child.isLeaf() {
			mode := filemode.FileMode(child.entry.Mode)
			entries = append(entries, object.TreeEntry{
				Mode: mode,
				Name: child.name,
				OID:  child.entry.OID,
			})
			continue
		}

		oid, err := Store(child, db)
		if err != nil {
			return "", err
		}
		entries = append(entries, object.TreeEntry{
			Mode: filemode.Dir,
			Name: child.name,
			OID:  oid,
		})
	}

	treeObj, err := object.NewTree(entries)
	if err != nil {
		return "", err
	}
	return db.Store(treeObj)
}
