package models

// Transport is how a resolved link gets materialized locally.
type Transport string

const (
	// TransportDirect links stream the file over plain HTTP.
	TransportDirect Transport = "direct"
	// TransportMediafire links go through the external locker downloader.
	TransportMediafire Transport = "mediafire"
)

// LinkRecord is one download target found on a detail page.
type LinkRecord struct {
	URL       string    `json:"url"`
	Transport Transport `json:"transport"`
	Label     string    `json:"label,omitempty"` // e.g. "Main Server"
}

// PreferredLink returns the first direct link, or failing that the first
// mediafire link. ok is false when links holds neither.
func PreferredLink(links []LinkRecord) (link LinkRecord, ok bool) {
	for _, l := range links {
		if l.Transport == TransportDirect {
			return l, true
		}
	}
	for _, l := range links {
		if l.Transport == TransportMediafire {
			return l, true
		}
	}
	return LinkRecord{}, false
}
