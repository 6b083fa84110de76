// Package config holds the repository locations and theme pin used by a
// build, with built-in production and staging defaults and an optional
// TOML override file.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/hashicorp/go-multierror"
	"github.com/pelletier/go-toml/v2"

	"github.com/eips-wg/preprocessor/errors"
	"github.com/eips-wg/preprocessor/family"
)

// identifyingCommits are commits that exist solely in one family, picked
// after the families split.
const (
	eipsIdentifyingCommit = "0f44e2b94df4e504bb7b912f56ebd712db2ad396"
	ercsIdentifyingCommit = "8dd085d159cb123f545c272c0d871a5339550e79"
	themeCommit           = "88a58af77795e92388bbfbe913650644257dd2d4"
)

// Theme pins the site theme.
type Theme struct {
	Repository string `toml:"repository"`
	// Commit is any revision the theme repository resolves, usually a full
	// hash.
	Commit string `toml:"commit"`
}

// Config is the full build configuration.
type Config struct {
	Theme     Theme                      `toml:"theme"`
	Locations map[string]family.Location `toml:"locations"`
}

// Production returns the configuration for the canonical repositories.
func Production() *Config {
	return &Config{
		Theme: Theme{
			Repository: "https://github.com/ethereum/eips-theme.git",
			Commit:     themeCommit,
		},
		Locations: map[string]family.Location{
			family.EIPs.String(): {
				Repository:        "https://github.com/ethereum/EIPs.git",
				BaseURL:           "https://eips.ethereum.org/",
				IdentifyingCommit: eipsIdentifyingCommit,
			},
			family.ERCs.String(): {
				Repository:        "https://github.com/ethereum/ERCs.git",
				BaseURL:           "https://ercs.ethereum.org/",
				IdentifyingCommit: ercsIdentifyingCommit,
			},
		},
	}
}

// Staging returns the configuration for the working group's mirrors.
func Staging() *Config {
	return &Config{
		Theme: Theme{
			Repository: "https://github.com/eips-wg/theme.git",
			Commit:     themeCommit,
		},
		Locations: map[string]family.Location{
			family.EIPs.String(): {
				Repository:        "https://github.com/eips-wg/EIPs.git",
				BaseURL:           "https://eips-wg.github.io/EIPs/",
				IdentifyingCommit: eipsIdentifyingCommit,
			},
			family.ERCs.String(): {
				Repository:        "https://github.com/eips-wg/ERCs.git",
				BaseURL:           "https://eips-wg.github.io/ERCs/",
				IdentifyingCommit: ercsIdentifyingCommit,
			},
		},
	}
}

// Load reads the TOML file at path and applies it on top of base.
func Load(path string, base *Config) (*Config, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeFilesystem, "failed to resolve config path")
	}
	return LoadFS(osfs.New("/"), abs, base)
}

// LoadFS is Load reading from fs.
//
// The file may set any subset of the configuration. A [theme] table
// overrides the fields it sets; a [locations.<family>] table replaces that
// family's location entirely. The result is validated.
//
// Example file:
//
//	[theme]
//	commit = "88a58af77795e92388bbfbe913650644257dd2d4"
//
//	[locations.ERCs]
//	repository = "https://github.com/me/ERCs.git"
//	base_url = "https://me.github.io/ERCs/"
//	identifying_commit = "8dd085d159cb123f545c272c0d871a5339550e79"
func LoadFS(fs billy.Filesystem, path string, base *Config) (*Config, error) {
	data, err := util.ReadFile(fs, path)
	if err != nil {
		code := errors.CodeFilesystem
		if os.IsNotExist(err) {
			code = errors.CodeNotFound
		}
		return nil, errors.WrapWithContext(err, code, "failed to read config", map[string]interface{}{"path": path})
	}

	var file Config
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, errors.WrapWithContext(err, errors.CodeInvalidConfig, "failed to parse config",
			map[string]interface{}{"path": path})
	}

	merged := base.clone()
	if file.Theme.Repository != "" {
		merged.Theme.Repository = file.Theme.Repository
	}
	if file.Theme.Commit != "" {
		merged.Theme.Commit = file.Theme.Commit
	}
	for name, loc := range file.Locations {
		merged.Locations[name] = loc
	}

	if err := merged.Validate(); err != nil {
		return nil, errors.WithContext(err, "path", path)
	}
	return merged, nil
}

func (c *Config) clone() *Config {
	out := &Config{Locations: make(map[string]family.Location)}
	if c == nil {
		return out
	}

	out.Theme = c.Theme
	for name, loc := range c.Locations {
		out.Locations[name] = loc
	}
	return out
}

// Validate reports every problem with the configuration at once.
func (c *Config) Validate() error {
	var result *multierror.Error

	if c.Theme.Repository == "" {
		result = multierror.Append(result, fmt.Errorf("theme: repository is required"))
	}
	if strings.TrimSpace(c.Theme.Commit) == "" {
		result = multierror.Append(result, fmt.Errorf("theme: commit is required"))
	}

	names := make([]string, 0, len(c.Locations))
	for name := range c.Locations {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		loc := c.Locations[name]
		if _, err := family.Parse(name); err != nil {
			result = multierror.Append(result, fmt.Errorf("locations: unknown family %q", name))
			continue
		}
		if loc.Repository == "" {
			result = multierror.Append(result, fmt.Errorf("locations.%s: repository is required", name))
		}
		if loc.BaseURL != "" {
			if _, err := url.Parse(loc.BaseURL); err != nil {
				result = multierror.Append(result, fmt.Errorf("locations.%s: invalid base_url: %w", name, err))
			}
		}
		if !plumbing.IsHash(loc.IdentifyingCommit) {
			result = multierror.Append(result,
				fmt.Errorf("locations.%s: identifying_commit %q is not a full commit hash", name, loc.IdentifyingCommit))
		}
	}

	for _, u := range family.All() {
		if _, ok := c.Locations[u.String()]; !ok {
			result = multierror.Append(result, fmt.Errorf("locations: missing %s", u))
		}
	}

	if err := result.ErrorOrNil(); err != nil {
		return errors.Wrap(err, errors.CodeInvalidConfig, "invalid configuration")
	}
	return nil
}

// FamilyLocations returns the locations keyed by family.
func (c *Config) FamilyLocations() (family.Locations, error) {
	locs := make(family.Locations, len(c.Locations))
	for name, loc := range c.Locations {
		u, err := family.Parse(name)
		if err != nil {
			return nil, err
		}
		locs[u] = loc
	}
	return locs, nil
}
