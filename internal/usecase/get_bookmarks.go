package usecase

import (
	"context"

	"github.com/MrSnakeDoc/marks/internal/domain"
)

type GetBookmarks struct {
	repo domain.BookmarkRepository
}

func NewGetBookmarks(repo domain.BookmarkRepository) *GetBookmarks {
	return &GetBookmarks{repo: repo}
}

// Execute lists bookmarks newest first, restricted to tag when it is not empty.
func (uc *GetBookmarks) Execute(ctx context.Context, tag string) ([]BookmarkResponse, error) {
	bookmarks, err := uc.repo.FindAll(ctx, tag)
	if err != nil {
		return nil, err
	}

	out := make([]BookmarkResponse, 0, len(bookmarks))
	for _, b := range bookmarks {
		out = append(out, toBookmarkResponse(b))
	}
	return out, nil
}
