package importer

import (
	"fmt"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/MrSnakeDoc/marks/internal/usecase"
)

var templateVar = regexp.MustCompile(`\{\{[^}]+\}\}`)

// stripTemplateVariables blanks {{...}} placeholders so files shared with
// templating tools still parse.
// Example: {{HOMEPAGE_VAR_URL}} -> ""
func stripTemplateVariables(data []byte) []byte {
	return templateVar.ReplaceAll(data, []byte(`""`))
}

func parseYAML(data []byte) ([]usecase.CreateBookmarkRequest, error) {
	var entries []usecase.CreateBookmarkRequest
	if err := yaml.Unmarshal(stripTemplateVariables(data), &entries); err != nil {
		return nil, fmt.Errorf("failed to parse bookmarks yaml: %w", err)
	}
	return entries, nil
}

// homepageEntry is one link in a Homepage bookmarks.yaml.
type homepageEntry struct {
	Abbr        string `yaml:"abbr"`
	Href        string `yaml:"href"`
	Description string `yaml:"description"`
}

// homepageGroup maps a group name to its links. Each link name maps to a
// single-element list:
//
//	- Developer:
//	    - Github:
//	        - abbr: GH
//	          href: https://github.com/
type homepageGroup map[string][]map[string][]homepageEntry

func parseHomepage(data []byte) ([]usecase.CreateBookmarkRequest, error) {
	var groups []homepageGroup
	if err := yaml.Unmarshal(stripTemplateVariables(data), &groups); err != nil {
		return nil, fmt.Errorf("failed to parse homepage bookmarks yaml: %w", err)
	}

	entries := make([]usecase.CreateBookmarkRequest, 0)
	for _, group := range groups {
		for groupName, links := range group {
			for _, link := range links {
				for name, list := range link {
					if len(list) == 0 || list[0].Href == "" {
						continue
					}
					e := list[0]

					req := usecase.CreateBookmarkRequest{
						URL:   e.Href,
						Title: name,
						Tags:  []string{groupName},
					}
					if e.Description != "" {
						desc := e.Description
						req.Description = &desc
					}
					if e.Abbr != "" {
						req.Tags = append(req.Tags, e.Abbr)
					}
					entries = append(entries, req)
				}
			}
		}
	}
	return entries, nil
}
