// Package getcomics implements the Provider interface for getcomics.
// Everything that depends on the site's markup lives in this package.
package getcomics

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/vrsandeep/comicdl/internal/models"
)

const DefaultBaseURL = "https://getcomics.org"

// The site has moved between these domains; links to either count as its own.
var siteHosts = []string{"getcomics.org", "getcomics.info"}

// GetComicsProvider implements the Provider interface for GetComics.
type GetComicsProvider struct {
	baseURL *url.URL
}

func New() *GetComicsProvider {
	p, err := NewWithBaseURL(DefaultBaseURL)
	if err != nil {
		panic(err)
	}
	return p
}

// NewWithBaseURL points the provider at another origin, e.g. a mirror or a
// test server.
func NewWithBaseURL(baseURL string) (*GetComicsProvider, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid base url %q: %w", baseURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid base url %q: scheme and host are required", baseURL)
	}
	return &GetComicsProvider{baseURL: u}, nil
}

func (p *GetComicsProvider) GetInfo() models.ProviderInfo {
	return models.ProviderInfo{
		ID:   "getcomics",
		Name: "GetComics",
	}
}

// SearchURL builds the listing address for one result page:
// /page/N?s=term for text searches and /tag/slug/page/N for tags.
func (p *GetComicsProvider) SearchURL(q models.SearchQuery, page int) string {
	if page < 1 {
		page = 1
	}
	base := p.baseURL.String()
	if q.Tag != "" {
		return fmt.Sprintf("%s/tag/%s/page/%d", base, url.PathEscape(q.Tag), page)
	}
	return fmt.Sprintf("%s/page/%d?s=%s", base, page, url.QueryEscape(q.Term))
}

// resolve turns a possibly relative href into an absolute address.
func (p *GetComicsProvider) resolve(href string) (*url.URL, bool) {
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return nil, false
	}
	u := p.baseURL.ResolveReference(ref)
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, false
	}
	return u, true
}

// isSiteHost reports whether host belongs to the listing site itself.
func (p *GetComicsProvider) isSiteHost(host string) bool {
	host = strings.ToLower(host)
	if host == strings.ToLower(p.baseURL.Host) {
		return true
	}
	for _, h := range siteHosts {
		if hostMatches(host, h) {
			return true
		}
	}
	return false
}

// hostMatches is true for domain itself and any of its subdomains.
func hostMatches(host, domain string) bool {
	host = strings.ToLower(host)
	if i := strings.LastIndex(host, ":"); i >= 0 && !strings.Contains(host[i:], "]") {
		host = host[:i]
	}
	return host == domain || strings.HasSuffix(host, "."+domain)
}
