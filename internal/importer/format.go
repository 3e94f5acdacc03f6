package importer

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Format names a bookmark file layout.
type Format string

const (
	// FormatYAML is a flat list of {url, title, description, tags}.
	FormatYAML Format = "yaml"
	// FormatHomepage is a gethomepage.dev bookmarks.yaml; group names become tags.
	FormatHomepage Format = "homepage"
	// FormatHTML is the Netscape bookmark file exported by browsers and Delicious.
	FormatHTML Format = "html"
)

// ParseFormat maps a user-supplied name to a Format. Empty means detect.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "", FormatYAML, FormatHomepage, FormatHTML:
		return f, nil
	default:
		return "", fmt.Errorf("unknown import format %q (want yaml, homepage or html)", s)
	}
}

// DetectFormat guesses from the file extension. Anything that is not HTML is
// treated as the flat YAML list.
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		return FormatHTML
	default:
		return FormatYAML
	}
}
