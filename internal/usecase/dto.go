package usecase

import (
	"time"

	"github.com/MrSnakeDoc/marks/internal/domain"
)

// TimeLayout renders timestamps as ISO-8601 UTC with millisecond precision.
const TimeLayout = "2006-01-02T15:04:05.000Z07:00"

// BookmarkResponse is the outward shape of a Bookmark.
type BookmarkResponse struct {
	ID          int64    `json:"id"`
	URL         string   `json:"url"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	CreatedAt   string   `json:"createdAt"`
	UpdatedAt   string   `json:"updatedAt"`
}

// CreateBookmarkRequest is the input of CreateBookmark.
type CreateBookmarkRequest struct {
	URL         string   `json:"url" yaml:"url"`
	Title       string   `json:"title" yaml:"title"`
	Description *string  `json:"description,omitempty" yaml:"description"`
	Tags        []string `json:"tags,omitempty" yaml:"tags"`
}

// UpdateBookmarkRequest is the input of UpdateBookmark.
// A nil field means "leave unchanged".
type UpdateBookmarkRequest struct {
	URL         *string   `json:"url,omitempty"`
	Title       *string   `json:"title,omitempty"`
	Description *string   `json:"description,omitempty"`
	Tags        *[]string `json:"tags,omitempty"`
}

func toBookmarkResponse(b *domain.Bookmark) BookmarkResponse {
	return BookmarkResponse{
		ID:          b.ID(),
		URL:         b.URL().String(),
		Title:       b.Title(),
		Description: b.Description(),
		Tags:        b.Tags().Slice(),
		CreatedAt:   formatTime(b.CreatedAt()),
		UpdatedAt:   formatTime(b.UpdatedAt()),
	}
}

func formatTime(t time.Time) string {
	return t.UTC().Format(TimeLayout)
}
