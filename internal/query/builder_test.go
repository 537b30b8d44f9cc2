package query

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild_SentinelEqualsAbsence(t *testing.T) {
	withAll, err := Build(AdoptionStats, P("state", "All"))
	require.NoError(t, err)
	without, err := Build(AdoptionStats, Params{})
	require.NoError(t, err)

	assert.Equal(t, without, withAll)
	assert.Equal(t, "/adoption-stats", withAll)
}

func TestBuild_OmitsNilAndEmpty(t *testing.T) {
	got, err := Build(WelfareFollowUps, Params{"species": nil, "extra": strPtr("  ")})
	require.NoError(t, err)
	assert.Equal(t, "/welfare-followups", got)
}

func TestBuild_EncodesValueExactlyOnce(t *testing.T) {
	got, err := Build(WelfareFollowUps, P("species", "Pit Bull"))
	require.NoError(t, err)

	encoded := url.QueryEscape("Pit Bull")
	assert.Equal(t, 1, strings.Count(got, encoded), "path %q", got)
	assert.NotContains(t, got, " ")

	u, err := url.Parse(got)
	require.NoError(t, err)
	assert.Equal(t, "Pit Bull", u.Query().Get("species"))
}

func TestBuild_DeterministicOrdering(t *testing.T) {
	params := P("state", "TX", "species", "Cat & Dog")
	first, err := Build(AdoptionStats, params)
	require.NoError(t, err)

	for i := 0; i < 20; i++ {
		again, err := Build(AdoptionStats, params)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
	assert.Equal(t, "/adoption-stats?species=Cat+%26+Dog&state=TX", first)
}

func TestBuild_UnknownQuery(t *testing.T) {
	_, err := Build(Name("drop-table"), nil)
	require.ErrorIs(t, err, ErrUnknownQuery)
}

func TestP_IgnoresDanglingKey(t *testing.T) {
	p := P("species", "Dog", "state")
	require.Len(t, p, 1)
	assert.Equal(t, "Dog", *p["species"])
}

func strPtr(s string) *string { return &s }
