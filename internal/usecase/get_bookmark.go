package usecase

import (
	"context"

	"github.com/MrSnakeDoc/marks/internal/domain"
)

type GetBookmark struct {
	repo domain.BookmarkRepository
}

func NewGetBookmark(repo domain.BookmarkRepository) *GetBookmark {
	return &GetBookmark{repo: repo}
}

// Execute returns nil, nil when the bookmark does not exist; the caller
// decides how absence is reported.
func (uc *GetBookmark) Execute(ctx context.Context, id int64) (*BookmarkResponse, error) {
	bookmark, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if bookmark == nil {
		return nil, nil
	}
	resp := toBookmarkResponse(bookmark)
	return &resp, nil
}
