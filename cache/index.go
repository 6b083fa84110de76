package cache

import (
	"encoding/json"
	"os"
	"time"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"

	"github.com/eips-wg/preprocessor/errors"
)

const (
	indexFile    = "index.json"
	indexVersion = "1"
)

// Entry describes one cache directory.
type Entry struct {
	Key        string    `json:"key"`
	Dir        string    `json:"dir"`
	CreatedAt  time.Time `json:"created_at"`
	LastAccess time.Time `json:"last_access"`
}

// index records entry metadata, keyed by directory name. It is only touched
// while the cache lock is held.
type index struct {
	Version string            `json:"version"`
	Entries map[string]*Entry `json:"entries"`
}

func newIndex() *index {
	return &index{Version: indexVersion, Entries: make(map[string]*Entry)}
}

// loadIndex reads the index at path, returning an empty one when the file
// does not exist. A corrupt or foreign-version index is discarded: it only
// feeds Stats and never decides where data lives.
func loadIndex(fs billy.Filesystem, path string) (*index, bool, error) {
	data, err := util.ReadFile(fs, path)
	if os.IsNotExist(err) {
		return newIndex(), true, nil
	}
	if err != nil {
		return nil, false, errors.WrapWithContext(err, errors.CodeFilesystem, "failed to read cache index",
			map[string]interface{}{"path": path})
	}

	var idx index
	if err := json.Unmarshal(data, &idx); err != nil || idx.Version != indexVersion {
		return newIndex(), false, nil
	}
	if idx.Entries == nil {
		idx.Entries = make(map[string]*Entry)
	}
	return &idx, true, nil
}

// save writes the index atomically through a temporary file.
func (idx *index) save(fs billy.Filesystem, path string) error {
	data, err := json.MarshalIndent(idx, "", "  ")
	if err != nil {
		return errors.Wrap(err, errors.CodeInternal, "failed to encode cache index")
	}

	tmp := path + ".tmp"
	if err := util.WriteFile(fs, tmp, data, 0o644); err != nil {
		_ = fs.Remove(tmp)
		return errors.WrapWithContext(err, errors.CodeFilesystem, "failed to write cache index",
			map[string]interface{}{"path": tmp})
	}

	if err := fs.Rename(tmp, path); err != nil {
		_ = fs.Remove(tmp)
		return errors.WrapWithContext(err, errors.CodeFilesystem, "failed to replace cache index",
			map[string]interface{}{"path": path})
	}
	return nil
}

// touch records an access to key stored in dir.
func (idx *index) touch(key, dir string, now time.Time) {
	entry, ok := idx.Entries[dir]
	if !ok {
		entry = &Entry{Key: key, Dir: dir, CreatedAt: now}
		idx.Entries[dir] = entry
	}
	entry.LastAccess = now
}
