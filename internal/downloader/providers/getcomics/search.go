package getcomics

import (
	"io"
	"iter"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/vrsandeep/comicdl/internal/models"
)

var (
	// "#1-5", "#1 – 5", "#1 to #5"
	issueRangeRegex = regexp.MustCompile(`#\s*(\d+(?:\.\d+)?)\s*(?:-|–|—|to)\s*#?\s*(\d+(?:\.\d+)?)`)
	// "#12", "# 12.1"
	issueRegex = regexp.MustCompile(`#\s*(\d+(?:\.\d+)?)`)
	// "Issue 7", "Issues 1-4"
	issueWordRegex = regexp.MustCompile(`(?i)\bissues?\s+(\d+(?:\.\d+)?)(?:\s*(?:-|–|—|to)\s*(\d+(?:\.\d+)?))?`)
)

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"January 2, 2006",
	"Jan 2, 2006",
	"2 January 2006",
}

// ParseSearchPage extracts the releases listed on one search or tag page.
// Entries without a title link are skipped; a missing date or issue number
// leaves that field nil. The returned sequence can be ranged over once.
func (p *GetComicsProvider) ParseSearchPage(r io.Reader, q models.SearchQuery) (iter.Seq[models.ReleaseRecord], error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, &models.ParseError{Err: err}
	}

	articles := doc.Find("article")
	consumed := false
	return func(yield func(models.ReleaseRecord) bool) {
		if consumed {
			return
		}
		consumed = true
		for i := range articles.Length() {
			record, ok := p.parseArticle(articles.Eq(i))
			if !ok {
				continue
			}
			if !yield(record) {
				return
			}
		}
	}, nil
}

func (p *GetComicsProvider) parseArticle(s *goquery.Selection) (models.ReleaseRecord, bool) {
	a := s.Find("h1.post-title a, h2.post-title a, .post-title a").First()
	href, exists := a.Attr("href")
	if !exists {
		return models.ReleaseRecord{}, false
	}
	link, ok := p.resolve(href)
	if !ok {
		return models.ReleaseRecord{}, false
	}
	title := collapseSpace(a.Text())
	if title == "" {
		return models.ReleaseRecord{}, false
	}

	record := models.ReleaseRecord{
		Title:     title,
		Issue:     ParseIssue(title),
		DetailURL: link.String(),
	}
	if timeTag := s.Find("time").First(); timeTag.Length() > 0 {
		if datetime, exists := timeTag.Attr("datetime"); exists {
			record.Published = parseDate(datetime)
		}
		if record.Published == nil {
			record.Published = parseDate(timeTag.Text())
		}
	}
	return record, true
}

// ParseIssue pulls an issue number or range out of a release title. It
// returns nil when the title doesn't carry one (e.g. trade paperbacks).
func ParseIssue(title string) *models.IssueRange {
	if m := issueRangeRegex.FindStringSubmatch(title); m != nil {
		return newRange(m[1], m[2])
	}
	if m := issueRegex.FindStringSubmatch(title); m != nil {
		return newRange(m[1], m[1])
	}
	if m := issueWordRegex.FindStringSubmatch(title); m != nil {
		hi := m[2]
		if hi == "" {
			hi = m[1]
		}
		return newRange(m[1], hi)
	}
	return nil
}

func newRange(lo, hi string) *models.IssueRange {
	l, err := strconv.ParseFloat(lo, 64)
	if err != nil {
		return nil
	}
	h, err := strconv.ParseFloat(hi, 64)
	if err != nil || h < l {
		h = l
	}
	return &models.IssueRange{Lo: l, Hi: h}
}

func parseDate(s string) *time.Time {
	s = collapseSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
