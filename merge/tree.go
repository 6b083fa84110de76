package merge

import (
	stderrors "errors"
	"log/slog"
	"strings"

	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/filemode"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"

	"github.com/eips-wg/preprocessor/errors"
)

type entryKind int

const (
	kindUnknown entryKind = iota
	kindBlob
	kindTree
)

func kindOf(mode filemode.FileMode) entryKind {
	switch mode {
	case filemode.Dir:
		return kindTree
	case filemode.Regular, filemode.Executable, filemode.Symlink, filemode.Deprecated:
		return kindBlob
	default:
		return kindUnknown
	}
}

// MergeInto copies every file below root in incoming into base and returns
// the resulting tree. Everything in incoming outside root is ignored.
//
// A file that already exists in base must be identical (same mode and
// hash) or the merge fails with a *ConflictError. Entries that are neither
// files nor directories fail with *UnknownEntryKindError and unnamed
// entries with *UnnamedEntryError. New objects are only written to s once
// the whole walk succeeded, so a failed merge leaves no trace besides
// unreferenced objects. When nothing needs to change, base is returned
// as is.
func MergeInto(s storer.EncodedObjectStorer, base, incoming *object.Tree, root string, logger *slog.Logger) (*object.Tree, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	root = strings.Trim(root, "/")
	if root == "" {
		return nil, errors.New(errors.CodeInvalidInput, "merge root is required")
	}

	w := &walker{base: base, root: root, store: s}
	if err := w.walk(incoming, ""); err != nil {
		return nil, err
	}

	if len(w.upserts) == 0 {
		logger.Debug("nothing to merge", "root", root)
		return base, nil
	}

	b := newTreeBuilder(s)
	for _, u := range w.upserts {
		logger.Debug("adding file", "path", u.path, "hash", u.entry.Hash.String())
		b.upsert(u.path, u.entry)
	}

	merged, err := b.apply(base)
	if err != nil {
		return nil, err
	}

	logger.Debug("merged tree", "root", root, "files", len(w.upserts), "tree", merged.Hash.String())
	return merged, nil
}

type upsert struct {
	path  string
	entry object.TreeEntry
}

// walker visits incoming in pre-order and prunes subtrees outside root
// without loading them.
type walker struct {
	base    *object.Tree
	root    string
	store   storer.EncodedObjectStorer
	upserts []upsert
}

func (w *walker) walk(tree *object.Tree, prefix string) error {
	for _, entry := range tree.Entries {
		if entry.Name == "" {
			if w.inRoot(prefix) {
				return &UnnamedEntryError{ParentPath: prefix}
			}
			continue
		}

		p := entry.Name
		if prefix != "" {
			p = prefix + "/" + entry.Name
		}

		inRoot := w.inRoot(p)
		aboveRoot := strings.HasPrefix(w.root, p+"/")
		if !inRoot && !aboveRoot {
			continue
		}

		switch kindOf(entry.Mode) {
		case kindTree:
			if err := w.checkDir(p, entry); err != nil {
				return err
			}
			sub, err := object.GetTree(w.store, entry.Hash)
			if err != nil {
				return errors.WrapWithContext(err, errors.CodeNotFound, "failed to load tree",
					map[string]interface{}{"path": p})
			}
			if err := w.walk(sub, p); err != nil {
				return err
			}

		case kindBlob:
			if !inRoot {
				continue
			}
			add, err := w.checkFile(p, entry)
			if err != nil {
				return err
			}
			if add {
				w.upserts = append(w.upserts, upsert{path: p, entry: entry})
			}

		default:
			return &UnknownEntryKindError{Path: p}
		}
	}
	return nil
}

// inRoot reports whether p is the content root or lies beneath it.
func (w *walker) inRoot(p string) bool {
	return p == w.root || strings.HasPrefix(p, w.root+"/")
}

// checkFile compares an incoming file with base. It returns true when the
// file is absent from base and must be added.
func (w *walker) checkFile(p string, entry object.TreeEntry) (bool, error) {
	existing, err := w.lookup(p)
	if err != nil {
		return false, err
	}
	if existing == nil {
		return true, nil
	}

	switch {
	case existing.Mode != entry.Mode:
		return false, &ConflictError{Path: p, Reason: ReasonMode}
	case kindOf(existing.Mode) != kindOf(entry.Mode):
		return false, &ConflictError{Path: p, Reason: ReasonKind}
	case existing.Hash != entry.Hash:
		return false, &ConflictError{Path: p, Reason: ReasonContent}
	}
	return false, nil
}

// checkDir fails when base holds something other than a directory where
// incoming has one.
func (w *walker) checkDir(p string, entry object.TreeEntry) error {
	existing, err := w.lookup(p)
	if err != nil || existing == nil {
		return err
	}

	if existing.Mode != entry.Mode {
		return &ConflictError{Path: p, Reason: ReasonMode}
	}
	return nil
}

// lookup returns the base entry at p, or nil when there is none.
func (w *walker) lookup(p string) (*object.TreeEntry, error) {
	if w.base == nil {
		return nil, nil
	}

	entry, err := w.base.FindEntry(p)
	switch {
	case err == nil:
		return entry, nil
	case stderrors.Is(err, object.ErrEntryNotFound),
		stderrors.Is(err, object.ErrDirectoryNotFound),
		stderrors.Is(err, plumbing.ErrObjectNotFound):
		return nil, nil
	default:
		return nil, errors.WrapWithContext(err, errors.CodeInternal, "failed to look up path",
			map[string]interface{}{"path": p})
	}
}
