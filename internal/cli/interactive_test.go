package cli

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vrsandeep/comicdl/internal/models"
)

func menuDefaults() sessionOptions {
	return sessionOptions{OutputDir: "./Downloaded Comics", Query: models.SearchQuery{Results: 15}}
}

func runMenu(t *testing.T, input string) (*sessionOptions, string) {
	t.Helper()
	var out bytes.Buffer
	opts, err := mainMenu(newPrompter(strings.NewReader(input), &out), menuDefaults())
	require.NoError(t, err)
	return opts, out.String()
}

func TestMainMenu_Query(t *testing.T) {
	opts, _ := runMenu(t, "q\nsaga\n")
	require.NotNil(t, opts)
	assert.Equal(t, "saga", opts.Query.Term)
	assert.Empty(t, opts.Query.Tag)
	assert.Equal(t, 15, opts.Query.Results)
}

func TestMainMenu_DefaultIsQuery(t *testing.T) {
	opts, _ := runMenu(t, "\n\nx-men\n")
	require.NotNil(t, opts)
	assert.Equal(t, "x-men", opts.Query.Term, "blank answers are asked again")
}

func TestMainMenu_Tag(t *testing.T) {
	opts, _ := runMenu(t, "t\nmarvel\n")
	require.NotNil(t, opts)
	assert.Equal(t, "marvel", opts.Query.Tag)
}

func TestMainMenu_Detailed(t *testing.T) {
	input := strings.Join([]string{
		"d", "t", "batman",
		"3", "2024/01/05",
		"4", "/tmp/comics",
		"5", "2",
		"6", "4.5",
		"7", "30",
		"8",
		"s",
	}, "\n") + "\n"
	opts, out := runMenu(t, input)
	require.NotNil(t, opts)

	assert.Equal(t, "batman", opts.Query.Tag)
	require.NotNil(t, opts.Query.MinDate)
	assert.Equal(t, time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), *opts.Query.MinDate)
	assert.Equal(t, "/tmp/comics", opts.OutputDir)
	require.NotNil(t, opts.Query.MinIssue)
	require.NotNil(t, opts.Query.MaxIssue)
	assert.Equal(t, 2.0, *opts.Query.MinIssue)
	assert.Equal(t, 4.5, *opts.Query.MaxIssue)
	assert.Equal(t, 30, opts.Query.Results)
	assert.True(t, opts.Verbose)
	assert.Contains(t, out, "Current Options:")
	assert.Contains(t, out, "3. Date (YYYY-MM-DD): 2024-01-05")
}

func TestMainMenu_DetailedSwitchingQueryClearsTag(t *testing.T) {
	opts, _ := runMenu(t, "d\nt\nbatman\n1\nsuperman\ns\n")
	require.NotNil(t, opts)
	assert.Equal(t, "superman", opts.Query.Term)
	assert.Empty(t, opts.Query.Tag)
}

func TestMainMenu_DetailedRejectsBadValues(t *testing.T) {
	opts, out := runMenu(t, "d\nq\nsaga\n3\nsoon\n7\n-2\n5\nfive\n5\n9\n6\n3\ns\n6\nnone\ns\n")
	require.NotNil(t, opts)
	assert.Contains(t, out, "Date filter disabled")
	assert.Contains(t, out, "is not a positive number")
	assert.Contains(t, out, "is not a number")
	assert.Contains(t, out, "Cannot start")
	assert.Nil(t, opts.Query.MinDate)
	assert.Equal(t, 15, opts.Query.Results)
	require.NotNil(t, opts.Query.MinIssue)
	assert.Equal(t, 9.0, *opts.Query.MinIssue)
	assert.Nil(t, opts.Query.MaxIssue, "none clears the bound")
}

func TestMainMenu_Quit(t *testing.T) {
	opts, _ := runMenu(t, "d\nq\nsaga\nq\n")
	assert.Nil(t, opts)
}

func TestMainMenu_EOFQuits(t *testing.T) {
	opts, _ := runMenu(t, "d\nq\nsaga\n")
	assert.Nil(t, opts)

	opts, _ = runMenu(t, "")
	assert.Nil(t, opts)
}

func TestParseDate(t *testing.T) {
	want := time.Date(2023, 10, 8, 0, 0, 0, 0, time.UTC)
	for _, in := range []string{"2023-10-08", "2023/10/08", "2023.10.08", " 2023-10-08 "} {
		got, err := parseDate(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	for _, in := range []string{"08-10-2023", "2023-13-01", "yesterday", ""} {
		_, err := parseDate(in)
		assert.Error(t, err, in)
	}
}

func TestPrompter(t *testing.T) {
	var out bytes.Buffer
	p := newPrompter(strings.NewReader("  hello  \n\nlast"), &out)

	got, err := p.Ask("Name", "")
	require.NoError(t, err)
	assert.Equal(t, "hello", got)

	got, err = p.Ask("Color", "blue")
	require.NoError(t, err)
	assert.Equal(t, "blue", got)

	got, err = p.Ask("Final", "")
	require.NoError(t, err)
	assert.Equal(t, "last", got, "a final line without newline still counts")

	_, err = p.Ask("More", "")
	assert.Error(t, err)
	assert.Contains(t, out.String(), "Color [blue]: ")
}
