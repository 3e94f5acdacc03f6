package importer

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/MrSnakeDoc/marks/internal/usecase"
)

// parseNetscape reads a Netscape bookmark file. Each <DT><A> opens an entry;
// a following <DD> becomes its description. The TAGS attribute is a comma
// separated list. Folders are flattened.
func parseNetscape(r io.Reader) ([]usecase.CreateBookmarkRequest, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse bookmarks html: %w", err)
	}

	entries := make([]usecase.CreateBookmarkRequest, 0)
	var current *usecase.CreateBookmarkRequest

	doc.Find("dt a, dt h3, dd").Each(func(_ int, s *goquery.Selection) {
		switch goquery.NodeName(s) {
		case "h3":
			// folder heading; a <DD> after it describes the folder
			current = nil
		case "a":
			href, _ := s.Attr("href")
			entry := usecase.CreateBookmarkRequest{
				URL:   href,
				Title: strings.TrimSpace(s.Text()),
			}
			if tags, ok := s.Attr("tags"); ok && tags != "" {
				entry.Tags = strings.Split(tags, ",")
			}
			entries = append(entries, entry)
			current = &entries[len(entries)-1]
		case "dd":
			if current == nil || current.Description != nil {
				return
			}
			desc := strings.TrimSpace(s.Text())
			current.Description = &desc
		}
	})

	return entries, nil
}
