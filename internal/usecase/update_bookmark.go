package usecase

import (
	"context"

	"github.com/MrSnakeDoc/marks/internal/domain"
	"github.com/MrSnakeDoc/marks/internal/logger"
)

type UpdateBookmark struct {
	repo   domain.BookmarkRepository
	dups   *domain.DuplicateChecker
	logger logger.Logger
}

func NewUpdateBookmark(repo domain.BookmarkRepository, dups *domain.DuplicateChecker, log logger.Logger) *UpdateBookmark {
	return &UpdateBookmark{repo: repo, dups: dups, logger: log}
}

// Execute applies a partial update. Nothing is written unless every
// supplied field is valid and the new URL (if any) is not held by another
// bookmark.
func (uc *UpdateBookmark) Execute(ctx context.Context, id int64, in UpdateBookmarkRequest) (BookmarkResponse, error) {
	const op = "usecase.update_bookmark"

	bookmark, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return BookmarkResponse{}, err
	}
	if bookmark == nil {
		return BookmarkResponse{}, domain.NotFound(op, domain.MsgBookmarkNotFound)
	}

	var patch domain.BookmarkPatch

	if in.URL != nil {
		url, err := domain.NewURL(*in.URL)
		if err != nil {
			return BookmarkResponse{}, err
		}
		dup, err := uc.dups.IsDuplicateURL(ctx, url.String(), id)
		if err != nil {
			return BookmarkResponse{}, err
		}
		if dup {
			return BookmarkResponse{}, domain.Conflict(op, domain.MsgURLAlreadyRegistered)
		}
		patch.URL = &url
	}

	if in.Tags != nil {
		tags := domain.NewTagSet(*in.Tags)
		patch.Tags = &tags
	}
	patch.Title = in.Title
	patch.Description = in.Description

	if err := bookmark.Update(patch); err != nil {
		return BookmarkResponse{}, err
	}

	saved, err := uc.repo.Save(ctx, bookmark)
	if err != nil {
		return BookmarkResponse{}, err
	}

	uc.logger.Debug("bookmark updated", logger.Int64("id", saved.ID()))

	return toBookmarkResponse(saved), nil
}
