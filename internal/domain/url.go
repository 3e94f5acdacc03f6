package domain

import (
	"net/url"
	"strings"
)

// URL is a syntactically valid absolute URL. The zero value is not valid;
// build one with NewURL.
type URL struct {
	value string
}

// NewURL trims raw and checks that it parses as an absolute URL with a
// scheme and either a host or an opaque part (mailto:, urn:).
// No network resolution is attempted.
func NewURL(raw string) (URL, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return URL{}, Validation("domain.new_url", MsgURLRequired)
	}

	u, err := url.Parse(s)
	// file:///x and http:/x carry neither host nor opaque part and are refused.
	if err != nil || u.Scheme == "" || (u.Host == "" && u.Opaque == "") {
		return URL{}, Validation("domain.new_url", "invalid url: "+s)
	}

	return URL{value: s}, nil
}

func (u URL) String() string { return u.value }

// Equal reports whether both URLs hold the same text.
func (u URL) Equal(other URL) bool { return u.value == other.value }

// IsZero is true for a URL that was never built by NewURL.
func (u URL) IsZero() bool { return u.value == "" }
