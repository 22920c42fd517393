package getcomics

import (
	"fmt"
	"io"
	"strings"

	"github.com/antchfx/xpath"
	"github.com/vrsandeep/comicdl/internal/models"
	"golang.org/x/net/html"
)

// Download buttons are recognised by their caption or title attribute.
// The site's class names change often; the captions don't.
var downloadButtonExpr = xpath.MustCompile(buildButtonQuery(
	"DOWNLOAD NOW",
	"MAIN SERVER",
	"MEDIAFIRE",
))

func buildButtonQuery(captions ...string) string {
	upper := func(arg string) string {
		return fmt.Sprintf("translate(%s, 'abcdefghijklmnopqrstuvwxyz', 'ABCDEFGHIJKLMNOPQRSTUVWXYZ')", arg)
	}
	var conds []string
	for _, c := range captions {
		conds = append(conds,
			fmt.Sprintf("contains(%s, '%s')", upper("normalize-space(.)"), c),
			fmt.Sprintf("contains(%s, '%s')", upper("string(@title)"), c),
		)
	}
	// descendant:: walks in document order; //a would group matches by parent.
	return "/descendant::a[@href and (" + strings.Join(conds, " or ") + ")]"
}

// ParseDetailPage returns the download links on a release page, in document
// order. Links pointing at hosts other than the site's own download
// endpoints or mediafire are dropped.
func (p *GetComicsProvider) ParseDetailPage(r io.Reader) ([]models.LinkRecord, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, &models.ParseError{Err: err}
	}

	var links []models.LinkRecord
	seen := make(map[string]bool)
	iter := downloadButtonExpr.Select(createHTMLNavigator(doc))
	for iter.MoveNext() {
		nav, ok := iter.Current().(*htmlNavigator)
		if !ok {
			continue
		}
		node := nav.current()
		link, ok := p.classify(attr(node, "href"), buttonLabel(node))
		if !ok || seen[link.URL] {
			continue
		}
		seen[link.URL] = true
		links = append(links, link)
	}
	return links, nil
}

// classify decides the transport for a button's destination.
func (p *GetComicsProvider) classify(href, label string) (models.LinkRecord, bool) {
	u, ok := p.resolve(href)
	if !ok {
		return models.LinkRecord{}, false
	}
	switch {
	case hostMatches(u.Host, "mediafire.com"):
		return models.LinkRecord{URL: u.String(), Transport: models.TransportMediafire, Label: label}, true
	case p.isSiteHost(u.Host) && isDownloadPath(u.Path):
		return models.LinkRecord{URL: u.String(), Transport: models.TransportDirect, Label: label}, true
	default:
		return models.LinkRecord{}, false
	}
}

func isDownloadPath(path string) bool {
	return strings.HasPrefix(path, "/dlds/") || strings.HasPrefix(path, "/download")
}

func buttonLabel(n *html.Node) string {
	if label := collapseSpace(innerText(n)); label != "" {
		return label
	}
	return collapseSpace(attr(n, "title"))
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}
