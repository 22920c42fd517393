package selection

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vrsandeep/comicdl/internal/models"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  models.Selection
	}{
		{"comma and space separated", "1, 3, 5", models.Selection{Kind: models.SelectIndices, Indices: []int{1, 3, 5}}},
		{"space separated", "4 2", models.Selection{Kind: models.SelectIndices, Indices: []int{4, 2}}},
		{"duplicates collapse", "1,1,2", models.Selection{Kind: models.SelectIndices, Indices: []int{1, 2}}},
		{"all", "a", models.Selection{Kind: models.SelectAll}},
		{"all uppercase", " A ", models.Selection{Kind: models.SelectAll}},
		{"quit", "q", models.Selection{Kind: models.SelectQuit}},
		{"quit uppercase", "Q", models.Selection{Kind: models.SelectQuit}},
		{"next page", "n", models.Selection{Kind: models.SelectNext}},
		{"bounds inclusive", "1,10", models.Selection{Kind: models.SelectIndices, Indices: []int{1, 10}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Resolve(tt.input, 10)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolve_Invalid(t *testing.T) {
	inputs := map[string]string{
		"out of range":       "99",
		"zero":               "0",
		"negative":           "-1",
		"word":               "all",
		"mixed command":      "1 a",
		"empty":              "",
		"only separators":    " , ,",
		"one bad among many": "1,2,x",
	}

	for name, input := range inputs {
		t.Run(name, func(t *testing.T) {
			got, err := Resolve(input, 10)
			require.Error(t, err)
			var verr *ValidationError
			assert.True(t, errors.As(err, &verr))
			assert.Equal(t, models.Selection{}, got)
		})
	}
}

func TestResolve_EmptyListing(t *testing.T) {
	_, err := Resolve("1", 0)
	assert.Error(t, err)

	sel, err := Resolve("q", 0)
	require.NoError(t, err)
	assert.Equal(t, models.SelectQuit, sel.Kind)
}
