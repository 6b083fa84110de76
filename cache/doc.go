// Package cache provides a content-addressed directory cache shared by
// every build on the machine.
//
// # Layout
//
//	~/.cache/eips-build/
//	├── .lock          # held by one process at a time
//	├── index.json     # per-entry metadata for Stats
//	├── 3a98…c1/       # Dir(key): hex SHA3-256 of key
//	└── …
//
// Directory names are derived from the key alone, so the same key always
// maps to the same directory across runs and processes.
//
// # Repositories
//
// Repo keeps one repository per URL and checks out a pinned commit in it.
// The remote is contacted only when the commit is not already present:
//
//	c, err := cache.Open(ctx)
//	if err != nil {
//	    return err
//	}
//	defer c.Close()
//
//	dir, err := c.Repo(ctx, "https://github.com/eips-wg/theme.git", "88a58af7…")
//
// # Concurrency
//
// A Cache holds an exclusive advisory lock on its root from Open until
// Close. A second process opening the same root logs that it is waiting
// and blocks until the first one closes it.
//
// # Eviction
//
// Entries are never removed automatically. Stats reports what is stored so
// that the cache can be inspected and removed by hand.
package cache
