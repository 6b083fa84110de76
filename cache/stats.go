package cache

import (
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/eips-wg/preprocessor/errors"
)

// Stats summarizes the cache contents.
type Stats struct {
	Root      string
	Entries   []Entry // sorted by last access, most recent first
	TotalSize int64   // bytes on disk below Root
	Oldest    *time.Time
	Newest    *time.Time
}

// Stats reports every indexed entry and the disk usage of the cache.
func (c *Cache) Stats() (*Stats, error) {
	stats := &Stats{Root: c.root}

	for _, entry := range c.index.Entries {
		stats.Entries = append(stats.Entries, *entry)

		if stats.Oldest == nil || entry.CreatedAt.Before(*stats.Oldest) {
			t := entry.CreatedAt
			stats.Oldest = &t
		}
		if stats.Newest == nil || entry.LastAccess.After(*stats.Newest) {
			t := entry.LastAccess
			stats.Newest = &t
		}
	}
	sort.Slice(stats.Entries, func(i, j int) bool {
		return stats.Entries[i].LastAccess.After(stats.Entries[j].LastAccess)
	})

	size, err := c.dirSize(c.root)
	if err != nil {
		return nil, err
	}
	stats.TotalSize = size

	return stats, nil
}

// EntrySize returns the disk usage of one entry directory.
func (c *Cache) EntrySize(e Entry) (int64, error) {
	return c.dirSize(filepath.Join(c.root, e.Dir))
}

func (c *Cache) dirSize(root string) (int64, error) {
	var size int64
	err := c.walkDir(root, func(info os.FileInfo) {
		if !info.IsDir() {
			size += info.Size()
		}
	})
	return size, err
}

// walkDir calls fn for every entry below root. Entries that disappear
// while walking are skipped.
func (c *Cache) walkDir(root string, fn func(info os.FileInfo)) error {
	entries, err := c.fs.ReadDir(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.WrapWithContext(err, errors.CodeFilesystem, "failed to read cache directory",
			map[string]interface{}{"path": root})
	}

	for _, entry := range entries {
		fn(entry)
		if entry.IsDir() {
			if err := c.walkDir(filepath.Join(root, entry.Name()), fn); err != nil {
				return err
			}
		}
	}
	return nil
}
