package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func rec(url string) ReleaseRecord {
	return ReleaseRecord{Title: url, DetailURL: url}
}

func urls(rs *ResultSet) []string {
	var out []string
	for _, r := range rs.Records() {
		out = append(out, r.DetailURL)
	}
	return out
}

func TestResultSet_Dedupe(t *testing.T) {
	rs := NewResultSet()
	assert.True(t, rs.Add(rec("a")))
	assert.True(t, rs.Add(rec("b")))
	assert.False(t, rs.Add(rec("a")))
	assert.False(t, rs.Add(ReleaseRecord{Title: "no address"}))

	assert.Equal(t, []string{"a", "b"}, urls(rs))
	assert.Equal(t, "b", rs.At(2).DetailURL)
}

func TestResultSet_TruncateAndRestore(t *testing.T) {
	rs := NewResultSet()
	for _, u := range []string{"a", "b", "c", "d", "e"} {
		rs.Add(rec(u))
	}

	rs.Truncate(2)
	assert.Equal(t, []string{"a", "b"}, urls(rs))
	assert.True(t, rs.Seen("d"), "held-back records still count as seen")
	assert.False(t, rs.Add(rec("d")))
	assert.True(t, rs.HasMore())

	assert.Equal(t, 2, rs.Restore(2))
	assert.Equal(t, []string{"a", "b", "c", "d"}, urls(rs))

	rs.Exhausted = true
	assert.Equal(t, 1, rs.Restore(10))
	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, urls(rs))
	assert.False(t, rs.HasMore())
}

func TestResultSet_RecordsIsACopy(t *testing.T) {
	rs := NewResultSet()
	rs.Add(rec("a"))
	out := rs.Records()
	out[0].Title = "changed"
	assert.Equal(t, "a", rs.At(1).Title)
}

func TestIssueRangeString(t *testing.T) {
	assert.Equal(t, "#12", IssueRange{Lo: 12, Hi: 12}.String())
	assert.Equal(t, "#1-5", IssueRange{Lo: 1, Hi: 5}.String())
	assert.Equal(t, "#7.1", IssueRange{Lo: 7.1, Hi: 7.1}.String())
}
