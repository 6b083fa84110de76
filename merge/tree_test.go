package merge

import (
	"testing"

	"github.com/go-git/go-git/v5/plumbing/filemode"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/storage/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eips-wg/preprocessor/errors"
)

func TestMergeInto_Identity(t *testing.T) {
	s := memory.NewStorage()
	files := map[string]string{
		"README.md":           "readme",
		"content/1.md":        "one",
		"content/2/index.md":  "two",
		"content/2/asset.txt": "asset",
	}
	base := buildTree(t, s, files)
	incoming := buildTree(t, s, files)

	merged, err := MergeInto(s, base, incoming, "content", nil)
	require.NoError(t, err)
	assert.Equal(t, base.Hash, merged.Hash)
}

func TestMergeInto_DisjointUnion(t *testing.T) {
	s := memory.NewStorage()
	base := buildTree(t, s, map[string]string{
		"README.md":    "local readme",
		"content/1.md": "one",
		"config.toml":  "local",
	})
	incoming := buildTree(t, s, map[string]string{
		"README.md":          "other readme",
		"content/2.md":       "two",
		"content/3/index.md": "three",
		"other/4.md":         "four",
	})

	merged, err := MergeInto(s, base, incoming, "content", nil)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"README.md",
		"config.toml",
		"content/1.md",
		"content/2.md",
		"content/3/index.md",
	}, fileNames(t, merged))
	assert.Equal(t, "local readme", readFile(t, merged, "README.md"))
	assert.Equal(t, "two", readFile(t, merged, "content/2.md"))
	assert.Equal(t, "three", readFile(t, merged, "content/3/index.md"))
}

func TestMergeInto_BaseWithoutRoot(t *testing.T) {
	s := memory.NewStorage()
	base := buildTree(t, s, map[string]string{"README.md": "readme"})
	incoming := buildTree(t, s, map[string]string{"content/1.md": "one"})

	merged, err := MergeInto(s, base, incoming, "content", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"README.md", "content/1.md"}, fileNames(t, merged))
}

func TestMergeInto_NoRootInIncoming(t *testing.T) {
	s := memory.NewStorage()
	base := buildTree(t, s, map[string]string{"content/1.md": "one"})
	incoming := buildTree(t, s, map[string]string{"README.md": "readme"})

	merged, err := MergeInto(s, base, incoming, "content", nil)
	require.NoError(t, err)
	assert.Equal(t, base.Hash, merged.Hash)
}

func TestMergeInto_ContentConflict(t *testing.T) {
	s := memory.NewStorage()
	base := buildTree(t, s, map[string]string{
		"content/00003.md": "ours",
	})
	before := base.Hash
	incoming := buildTree(t, s, map[string]string{
		"content/00001.md": "new",
		"content/00003.md": "theirs",
	})

	merged, err := MergeInto(s, base, incoming, "content", nil)
	require.Error(t, err)
	assert.Nil(t, merged)

	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "content/00003.md", conflict.Path)
	assert.Equal(t, ReasonContent, conflict.Reason)
	assert.Equal(t, "conflicting content at `content/00003.md`", err.Error())
	assert.Equal(t, errors.CodeMergeConflict, errors.GetCode(err))

	assert.Equal(t, before, base.Hash)
	assert.Equal(t, []string{"content/00003.md"}, fileNames(t, base))
}

func TestMergeInto_ModeConflict(t *testing.T) {
	s := memory.NewStorage()
	hash := storeBlob(t, s, "script")

	base := storeTree(t, s, object.TreeEntry{
		Name: "content", Mode: filemode.Dir,
		Hash: storeTree(t, s, object.TreeEntry{Name: "run.sh", Mode: filemode.Regular, Hash: hash}).Hash,
	})
	incoming := storeTree(t, s, object.TreeEntry{
		Name: "content", Mode: filemode.Dir,
		Hash: storeTree(t, s, object.TreeEntry{Name: "run.sh", Mode: filemode.Executable, Hash: hash}).Hash,
	})

	_, err := MergeInto(s, base, incoming, "content", nil)
	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "content/run.sh", conflict.Path)
	assert.Equal(t, ReasonMode, conflict.Reason)
}

func TestMergeInto_FileWhereDirectoryIs(t *testing.T) {
	s := memory.NewStorage()
	base := buildTree(t, s, map[string]string{"content/4": "file"})
	incoming := buildTree(t, s, map[string]string{"content/4/index.md": "four"})

	_, err := MergeInto(s, base, incoming, "content", nil)
	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "content/4", conflict.Path)
	assert.Equal(t, ReasonMode, conflict.Reason)
}

func TestMergeInto_RootIsFileInBase(t *testing.T) {
	s := memory.NewStorage()
	base := buildTree(t, s, map[string]string{"content": "not a directory"})
	incoming := buildTree(t, s, map[string]string{"content/1.md": "one"})

	_, err := MergeInto(s, base, incoming, "content", nil)
	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "content", conflict.Path)
}

func TestMergeInto_Submodule(t *testing.T) {
	s := memory.NewStorage()
	base := buildTree(t, s, map[string]string{"content/1.md": "one"})
	incoming := storeTree(t, s, object.TreeEntry{
		Name: "content", Mode: filemode.Dir,
		Hash: storeTree(t, s, object.TreeEntry{
			Name: "vendor", Mode: filemode.Submodule, Hash: storeBlob(t, s, "not loaded"),
		}).Hash,
	})

	_, err := MergeInto(s, base, incoming, "content", nil)
	var unknown *UnknownEntryKindError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "content/vendor", unknown.Path)
	assert.Equal(t, errors.CodeMalformedTree, errors.GetCode(err))
}

func TestMergeInto_SubmoduleOutsideRootIgnored(t *testing.T) {
	s := memory.NewStorage()
	base := buildTree(t, s, map[string]string{"content/1.md": "one"})
	incoming := storeTree(t, s, object.TreeEntry{
		Name: "vendor", Mode: filemode.Submodule, Hash: storeBlob(t, s, "not loaded"),
	})

	merged, err := MergeInto(s, base, incoming, "content", nil)
	require.NoError(t, err)
	assert.Equal(t, base.Hash, merged.Hash)
}

func TestMergeInto_UnnamedEntry(t *testing.T) {
	s := memory.NewStorage()
	base := buildTree(t, s, map[string]string{"content/1.md": "one"})
	incoming := storeTree(t, s, object.TreeEntry{
		Name: "content", Mode: filemode.Dir,
		Hash: storeTree(t, s, object.TreeEntry{
			Name: "", Mode: filemode.Regular, Hash: storeBlob(t, s, "nameless"),
		}).Hash,
	})

	_, err := MergeInto(s, base, incoming, "content", nil)
	var unnamed *UnnamedEntryError
	require.ErrorAs(t, err, &unnamed)
	assert.Equal(t, "content", unnamed.ParentPath)
}

func TestMergeInto_UnnamedEntryOutsideRoot(t *testing.T) {
	s := memory.NewStorage()
	base := buildTree(t, s, map[string]string{"content/1.md": "one"})
	incoming := storeTree(t, s,
		object.TreeEntry{Name: "", Mode: filemode.Regular, Hash: storeBlob(t, s, "nameless")},
		object.TreeEntry{
			Name: "assets", Mode: filemode.Dir,
			Hash: storeTree(t, s, object.TreeEntry{
				Name: "", Mode: filemode.Regular, Hash: storeBlob(t, s, "nameless too"),
			}).Hash,
		},
		object.TreeEntry{
			Name: "content", Mode: filemode.Dir,
			Hash: storeTree(t, s, object.TreeEntry{
				Name: "2.md", Mode: filemode.Regular, Hash: storeBlob(t, s, "two"),
			}).Hash,
		},
	)

	merged, err := MergeInto(s, base, incoming, "content", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"content/1.md", "content/2.md"}, fileNames(t, merged))
}

func TestMergeInto_NestedRoot(t *testing.T) {
	s := memory.NewStorage()
	base := buildTree(t, s, map[string]string{"site/content/1.md": "one"})
	incoming := buildTree(t, s, map[string]string{
		"site/content/2.md": "two",
		"site/theme.toml":   "theirs",
		"site/contents.md":  "not under root",
	})

	merged, err := MergeInto(s, base, incoming, "site/content", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"site/content/1.md", "site/content/2.md"}, fileNames(t, merged))
}

func TestMergeInto_EmptyRoot(t *testing.T) {
	s := memory.NewStorage()
	tree := buildTree(t, s, map[string]string{"content/1.md": "one"})

	_, err := MergeInto(s, tree, tree, "/", nil)
	require.Error(t, err)
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))
}
