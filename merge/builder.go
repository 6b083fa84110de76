package merge

import (
	"sort"
	"strings"

	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/filemode"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"

	"github.com/eips-wg/preprocessor/errors"
)

// treeBuilder collects file upserts and writes the trees along their paths.
// Directories not touched by any upsert keep their existing hash.
type treeBuilder struct {
	store storer.EncodedObjectStorer
	root  *updateNode
}

type updateNode struct {
	files map[string]object.TreeEntry
	dirs  map[string]*updateNode
}

func newUpdateNode() *updateNode {
	return &updateNode{
		files: make(map[string]object.TreeEntry),
		dirs:  make(map[string]*updateNode),
	}
}

func newTreeBuilder(s storer.EncodedObjectStorer) *treeBuilder {
	return &treeBuilder{store: s, root: newUpdateNode()}
}

// upsert records entry at the slash-separated path p. The entry name is
// replaced with the last path element.
func (b *treeBuilder) upsert(p string, entry object.TreeEntry) {
	parts := strings.Split(p, "/")
	n := b.root
	for _, dir := range parts[:len(parts)-1] {
		child, ok := n.dirs[dir]
		if !ok {
			child = newUpdateNode()
			n.dirs[dir] = child
		}
		n = child
	}

	entry.Name = parts[len(parts)-1]
	n.files[entry.Name] = entry
}

// apply writes the updated trees on top of base, which may be nil, and
// returns the new root tree.
func (b *treeBuilder) apply(base *object.Tree) (*object.Tree, error) {
	hash, err := b.write(b.root, base)
	if err != nil {
		return nil, err
	}

	tree, err := object.GetTree(b.store, hash)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "failed to load merged tree")
	}
	return tree, nil
}

func (b *treeBuilder) write(n *updateNode, base *object.Tree) (plumbing.Hash, error) {
	entries := make(map[string]object.TreeEntry)
	if base != nil {
		for _, e := range base.Entries {
			entries[e.Name] = e
		}
	}

	for name, e := range n.files {
		entries[name] = e
	}

	for name, child := range n.dirs {
		var sub *object.Tree
		if existing, ok := entries[name]; ok && existing.Mode == filemode.Dir {
			var err error
			sub, err = object.GetTree(b.store, existing.Hash)
			if err != nil {
				return plumbing.ZeroHash, errors.WrapWithContext(err, errors.CodeNotFound, "failed to load tree",
					map[string]interface{}{"name": name})
			}
		}

		hash, err := b.write(child, sub)
		if err != nil {
			return plumbing.ZeroHash, err
		}
		entries[name] = object.TreeEntry{Name: name, Mode: filemode.Dir, Hash: hash}
	}

	tree := &object.Tree{Entries: sortedEntries(entries)}
	obj := b.store.NewEncodedObject()
	if err := tree.Encode(obj); err != nil {
		return plumbing.ZeroHash, errors.Wrap(err, errors.CodeInternal, "failed to encode tree")
	}

	hash, err := b.store.SetEncodedObject(obj)
	if err != nil {
		return plumbing.ZeroHash, errors.Wrap(err, errors.CodeInternal, "failed to store tree")
	}
	return hash, nil
}

// sortedEntries orders entries the way git does: by name, comparing
// directories as if their name ended in "/".
func sortedEntries(entries map[string]object.TreeEntry) []object.TreeEntry {
	sorted := make([]object.TreeEntry, 0, len(entries))
	for _, e := range entries {
		sorted = append(sorted, e)
	}

	key := func(e object.TreeEntry) string {
		if e.Mode == filemode.Dir {
			return e.Name + "/"
		}
		return e.Name
	}
	sort.Slice(sorted, func(i, j int) bool {
		return key(sorted[i]) < key(sorted[j])
	})
	return sorted
}
