package usecase

import (
	"context"

	"github.com/MrSnakeDoc/marks/internal/domain"
	"github.com/MrSnakeDoc/marks/internal/logger"
)

type DeleteBookmark struct {
	repo   domain.BookmarkRepository
	logger logger.Logger
}

func NewDeleteBookmark(repo domain.BookmarkRepository, log logger.Logger) *DeleteBookmark {
	return &DeleteBookmark{repo: repo, logger: log}
}

func (uc *DeleteBookmark) Execute(ctx context.Context, id int64) error {
	bookmark, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if bookmark == nil {
		return domain.NotFound("usecase.delete_bookmark", domain.MsgBookmarkNotFound)
	}

	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}

	uc.logger.Debug("bookmark deleted", logger.Int64("id", id))
	return nil
}
