// Package selection turns a line typed at the results menu into a
// models.Selection.
package selection

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/vrsandeep/comicdl/internal/models"
)

// ValidationError describes input the menu should reject and ask for again.
type ValidationError struct {
	Input  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Input == "" {
		return e.Reason
	}
	return fmt.Sprintf("invalid selection %q: %s", e.Input, e.Reason)
}

// Resolve parses input against a listing of size entries. Accepted forms
// are a list of 1-based positions separated by commas or spaces, or one of
// the single-letter commands a (all), q (quit) and n (next page).
func Resolve(input string, size int) (models.Selection, error) {
	tokens := strings.FieldsFunc(input, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
	if len(tokens) == 0 {
		return models.Selection{}, &ValidationError{Reason: "nothing selected"}
	}

	if len(tokens) == 1 {
		switch strings.ToLower(tokens[0]) {
		case "a":
			return models.Selection{Kind: models.SelectAll}, nil
		case "q":
			return models.Selection{Kind: models.SelectQuit}, nil
		case "n":
			return models.Selection{Kind: models.SelectNext}, nil
		}
	}

	indices := make([]int, 0, len(tokens))
	seen := make(map[int]bool, len(tokens))
	for _, tok := range tokens {
		n, err := strconv.Atoi(tok)
		if err != nil {
			return models.Selection{}, &ValidationError{Input: input, Reason: fmt.Sprintf("%q is not a number", tok)}
		}
		if n < 1 || n > size {
			return models.Selection{}, &ValidationError{Input: input, Reason: fmt.Sprintf("%d is out of range 1-%d", n, size)}
		}
		if seen[n] {
			continue
		}
		seen[n] = true
		indices = append(indices, n)
	}
	return models.Selection{Kind: models.SelectIndices, Indices: indices}, nil
}
