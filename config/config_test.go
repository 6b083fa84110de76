package config

import (
	"testing"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eips-wg/preprocessor/errors"
	"github.com/eips-wg/preprocessor/family"
)

func TestDefaults_Valid(t *testing.T) {
	for name, cfg := range map[string]*Config{"production": Production(), "staging": Staging()} {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, cfg.Validate())

			locs, err := cfg.FamilyLocations()
			require.NoError(t, err)
			assert.Len(t, locs, 2)
			assert.Equal(t, eipsIdentifyingCommit, locs[family.EIPs].IdentifyingCommit)
			assert.Equal(t, ercsIdentifyingCommit, locs[family.ERCs].IdentifyingCommit)
		})
	}
}

func TestStaging_UsesMirrors(t *testing.T) {
	cfg := Staging()
	assert.Equal(t, "https://github.com/eips-wg/ERCs.git", cfg.Locations["ERCs"].Repository)
	assert.Equal(t, "https://eips-wg.github.io/EIPs/", cfg.Locations["EIPs"].BaseURL)
	assert.Equal(t, Production().Theme.Commit, cfg.Theme.Commit)
}

func TestLoadFS_Override(t *testing.T) {
	fs := memfs.New()
	require.NoError(t, util.WriteFile(fs, "/eips-build.toml", []byte(`
[theme]
repository = "/srv/theme"

[locations.ERCs]
repository = "/srv/ERCs"
base_url = "http://localhost/ERCs/"
identifying_commit = "1111111111111111111111111111111111111111"
`), 0o644))

	cfg, err := LoadFS(fs, "/eips-build.toml", Production())
	require.NoError(t, err)

	assert.Equal(t, "/srv/theme", cfg.Theme.Repository)
	assert.Equal(t, themeCommit, cfg.Theme.Commit)
	assert.Equal(t, family.Location{
		Repository:        "/srv/ERCs",
		BaseURL:           "http://localhost/ERCs/",
		IdentifyingCommit: "1111111111111111111111111111111111111111",
	}, cfg.Locations["ERCs"])
	assert.Equal(t, Production().Locations["EIPs"], cfg.Locations["EIPs"])

	// The base is not modified.
	assert.Equal(t, "https://github.com/ethereum/ERCs.git", Production().Locations["ERCs"].Repository)
}

func TestLoadFS_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{
			name:    "unknown family",
			content: "[locations.RIPs]\nrepository = \"x\"\nidentifying_commit = \"0f44e2b94df4e504bb7b912f56ebd712db2ad396\"\n",
			want:    `unknown family "RIPs"`,
		},
		{
			name:    "empty theme commit",
			content: "[theme]\ncommit = \" \"\n",
			want:    "theme: commit is required",
		},
		{
			name:    "short identifying commit",
			content: "[locations.EIPs]\nrepository = \"x\"\nidentifying_commit = \"0f44e2b\"\n",
			want:    "not a full commit hash",
		},
		{
			name:    "empty repository",
			content: "[locations.EIPs]\nidentifying_commit = \"0f44e2b94df4e504bb7b912f56ebd712db2ad396\"\n",
			want:    "locations.EIPs: repository is required",
		},
		{
			name:    "syntax",
			content: "[theme\n",
			want:    "failed to parse config",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := memfs.New()
			require.NoError(t, util.WriteFile(fs, "/c.toml", []byte(tt.content), 0o644))

			_, err := LoadFS(fs, "/c.toml", Production())
			require.Error(t, err)
			assert.Equal(t, errors.CodeInvalidConfig, errors.GetCode(err))
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadFS_Missing(t *testing.T) {
	_, err := LoadFS(memfs.New(), "/nope.toml", Production())
	require.Error(t, err)
	assert.Equal(t, errors.CodeNotFound, errors.GetCode(err))
}

func TestValidate_MissingFamily(t *testing.T) {
	cfg := Production()
	delete(cfg.Locations, "ERCs")

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "locations: missing ERCs")
}
