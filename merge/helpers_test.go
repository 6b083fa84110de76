package merge

import (
	"sort"
	"strings"
	"testing"

	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/filemode"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/storage/memory"
	"github.com/stretchr/testify/require"
)

func storeBlob(t *testing.T, s *memory.Storage, content string) plumbing.Hash {
	t.Helper()

	obj := s.NewEncodedObject()
	obj.SetType(plumbing.BlobObject)
	w, err := obj.Writer()
	require.NoError(t, err)
	_, err = w.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	hash, err := s.SetEncodedObject(obj)
	require.NoError(t, err)
	return hash
}

func storeTree(t *testing.T, s *memory.Storage, entries ...object.TreeEntry) *object.Tree {
	t.Helper()

	tree := &object.Tree{Entries: entries}
	obj := s.NewEncodedObject()
	require.NoError(t, tree.Encode(obj))
	hash, err := s.SetEncodedObject(obj)
	require.NoError(t, err)

	stored, err := object.GetTree(s, hash)
	require.NoError(t, err)
	return stored
}

// buildTree stores regular files (path → content) as nested trees.
func buildTree(t *testing.T, s *memory.Storage, files map[string]string) *object.Tree {
	t.Helper()

	blobs := make(map[string]string, len(files))
	subdirs := map[string]map[string]string{}
	for p, content := range files {
		dir, rest, nested := strings.Cut(p, "/")
		if !nested {
			blobs[p] = content
			continue
		}
		if subdirs[dir] == nil {
			subdirs[dir] = map[string]string{}
		}
		subdirs[dir][rest] = content
	}

	var entries []object.TreeEntry
	for name, content := range blobs {
		entries = append(entries, object.TreeEntry{Name: name, Mode: filemode.Regular, Hash: storeBlob(t, s, content)})
	}
	for name, sub := range subdirs {
		entries = append(entries, object.TreeEntry{Name: name, Mode: filemode.Dir, Hash: buildTree(t, s, sub).Hash})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })

	return storeTree(t, s, entries...)
}

// readFile returns the content of p in tree.
func readFile(t *testing.T, tree *object.Tree, p string) string {
	t.Helper()

	f, err := tree.File(p)
	require.NoError(t, err)
	content, err := f.Contents()
	require.NoError(t, err)
	return content
}

// fileNames lists every file path in tree.
func fileNames(t *testing.T, tree *object.Tree) []string {
	t.Helper()

	var names []string
	require.NoError(t, tree.Files().ForEach(func(f *object.File) error {
		names = append(names, f.Name)
		return nil
	}))
	sort.Strings(names)
	return names
}
