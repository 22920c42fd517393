package cli

import (
	"strings"
	"time"

	"github.com/vrsandeep/comicdl/internal/config"
	"github.com/vrsandeep/comicdl/internal/models"
)

const dateLayout = "2006-01-02"

// sessionOptions is everything one search-and-download run needs.
type sessionOptions struct {
	Query     models.SearchQuery
	OutputDir string
	Verbose   bool
	Yes       bool
}

func defaultOptions(cfg *config.Config) sessionOptions {
	return sessionOptions{
		Query:     models.SearchQuery{Results: cfg.Results},
		OutputDir: cfg.OutputDir,
		Verbose:   cfg.Verbose,
	}
}

// parseDate accepts YYYY-MM-DD with -, / or . as the separator.
func parseDate(s string) (time.Time, error) {
	s = strings.NewReplacer("/", "-", ".", "-").Replace(strings.TrimSpace(s))
	return time.Parse(dateLayout, s)
}
