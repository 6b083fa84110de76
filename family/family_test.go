package family

import (
	"testing"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eips-wg/preprocessor/errors"
	"github.com/eips-wg/preprocessor/git"
	"github.com/eips-wg/preprocessor/git/testutil"
)

// Hashes that exist in no test repository.
const (
	eipsFingerprint = "0f44e2b94df4e504bb7b912f56ebd712db2ad396"
	ercsFingerprint = "8dd085d159cb123f545c272c0d871a5339550e79"
)

func TestUse_String(t *testing.T) {
	assert.Equal(t, "EIPs", EIPs.String())
	assert.Equal(t, "ERCs", ERCs.String())
	assert.Equal(t, "Use(7)", Use(7).String())
}

func TestUse_Others(t *testing.T) {
	assert.Equal(t, []Use{ERCs}, EIPs.Others())
	assert.Equal(t, []Use{EIPs}, ERCs.Others())
}

func TestParse(t *testing.T) {
	u, err := Parse("ERCs")
	require.NoError(t, err)
	assert.Equal(t, ERCs, u)

	_, err = Parse("ercs")
	require.Error(t, err)
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))
}

func TestUse_Text(t *testing.T) {
	text, err := ERCs.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "ERCs", string(text))

	var u Use
	require.NoError(t, u.UnmarshalText([]byte("EIPs")))
	assert.Equal(t, EIPs, u)
	assert.Error(t, u.UnmarshalText([]byte("RIPs")))

	_, err = Use(9).MarshalText()
	assert.Error(t, err)
}

func newRepo(t *testing.T) (*git.Repository, string) {
	t.Helper()
	repo, _, err := testutil.NewMemoryRepo()
	require.NoError(t, err)
	hash, err := testutil.CommitFiles(repo, map[string]string{"content/1.md": testutil.TestProposal}, testutil.TestInitialCommit)
	require.NoError(t, err)
	return repo, hash.String()
}

func TestIdentify(t *testing.T) {
	repo, head := newRepo(t)

	tests := []struct {
		name string
		locs Locations
		want Use
	}{
		{
			name: "eips",
			locs: Locations{EIPs: {IdentifyingCommit: head}, ERCs: {IdentifyingCommit: ercsFingerprint}},
			want: EIPs,
		},
		{
			name: "ercs",
			locs: Locations{EIPs: {IdentifyingCommit: eipsFingerprint}, ERCs: {IdentifyingCommit: head}},
			want: ERCs,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Identify(repo, tt.locs)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIdentify_NeitherResolves(t *testing.T) {
	repo, _ := newRepo(t)

	_, err := Identify(repo, Locations{
		EIPs: {IdentifyingCommit: eipsFingerprint},
		ERCs: {IdentifyingCommit: ercsFingerprint},
	})
	require.Error(t, err)
	assert.Equal(t, errors.CodeAmbiguousFamily, errors.GetCode(err))

	var ambiguous *AmbiguousError
	require.ErrorAs(t, err, &ambiguous)
	assert.Equal(t, map[Use]bool{EIPs: false, ERCs: false}, ambiguous.Resolved)
	assert.Equal(t, eipsFingerprint, ambiguous.Fingerprints[EIPs])
	assert.Contains(t, err.Error(), "EIPs=false, ERCs=false")
}

func TestIdentify_BothResolve(t *testing.T) {
	repo, head := newRepo(t)

	_, err := Identify(repo, Locations{
		EIPs: {IdentifyingCommit: head},
		ERCs: {IdentifyingCommit: head},
	})

	var ambiguous *AmbiguousError
	require.ErrorAs(t, err, &ambiguous)
	assert.Equal(t, map[Use]bool{EIPs: true, ERCs: true}, ambiguous.Resolved)
}

func TestIdentifyPath(t *testing.T) {
	fs := memfs.New()
	repo, err := git.Init("/src", git.WithFilesystem(fs))
	require.NoError(t, err)
	hash, err := testutil.CommitFiles(repo, map[string]string{"a.md": "a"}, testutil.TestInitialCommit)
	require.NoError(t, err)

	got, err := IdentifyPath("/src", Locations{
		EIPs: {IdentifyingCommit: eipsFingerprint},
		ERCs: {IdentifyingCommit: hash.String()},
	}, git.WithFilesystem(fs))
	require.NoError(t, err)
	assert.Equal(t, ERCs, got)

	_, err = IdentifyPath("/missing", Locations{}, git.WithFilesystem(fs))
	assert.Equal(t, errors.CodeNotFound, errors.GetCode(err))
}
