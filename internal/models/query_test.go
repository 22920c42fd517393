package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchQueryValidate(t *testing.T) {
	f := func(v float64) *float64 { return &v }

	t.Run("term with default results", func(t *testing.T) {
		q := SearchQuery{Term: "  batman "}
		require.NoError(t, q.Validate())
		assert.Equal(t, "batman", q.Term)
		assert.Equal(t, DefaultResults, q.Results)
		assert.Equal(t, "batman", q.Label())
	})
	t.Run("tag", func(t *testing.T) {
		q := SearchQuery{Tag: "marvel", Results: 5}
		require.NoError(t, q.Validate())
		assert.Equal(t, "tag:marvel", q.Label())
	})
	t.Run("neither", func(t *testing.T) {
		q := SearchQuery{}
		assert.ErrorIs(t, q.Validate(), ErrNoSearchTerm)
	})
	t.Run("both", func(t *testing.T) {
		q := SearchQuery{Term: "a", Tag: "b"}
		assert.ErrorIs(t, q.Validate(), ErrTermAndTag)
	})
	t.Run("negative results", func(t *testing.T) {
		q := SearchQuery{Term: "a", Results: -1}
		assert.ErrorIs(t, q.Validate(), ErrInvalidResults)
	})
	t.Run("inverted issue bounds", func(t *testing.T) {
		q := SearchQuery{Term: "a", MinIssue: f(10), MaxIssue: f(2)}
		assert.ErrorIs(t, q.Validate(), ErrInvertedIssues)
	})
}

func TestPreferredLink(t *testing.T) {
	mf := LinkRecord{URL: "https://mediafire.com/1", Transport: TransportMediafire}
	direct := LinkRecord{URL: "https://getcomics.org/dlds/1", Transport: TransportDirect}

	got, ok := PreferredLink([]LinkRecord{mf, direct})
	assert.True(t, ok)
	assert.Equal(t, direct, got)

	got, ok = PreferredLink([]LinkRecord{mf})
	assert.True(t, ok)
	assert.Equal(t, mf, got)

	_, ok = PreferredLink(nil)
	assert.False(t, ok)
}

func TestSelectionPick(t *testing.T) {
	rs := NewResultSet()
	for _, u := range []string{"a", "b", "c"} {
		rs.Add(ReleaseRecord{DetailURL: u})
	}

	picked := Selection{Kind: SelectIndices, Indices: []int{3, 1}}.Pick(rs)
	assert.Equal(t, []string{"c", "a"}, []string{picked[0].DetailURL, picked[1].DetailURL})

	assert.Len(t, Selection{Kind: SelectAll}.Pick(rs), 3)
	assert.Empty(t, Selection{Kind: SelectQuit}.Pick(rs))
}
