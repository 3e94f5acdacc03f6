package usecase

import (
	"github.com/MrSnakeDoc/marks/internal/domain"
	"github.com/MrSnakeDoc/marks/internal/logger"
)

// Set bundles the five bookmark use cases built over one repository.
type Set struct {
	Create *CreateBookmark
	Get    *GetBookmark
	List   *GetBookmarks
	Update *UpdateBookmark
	Delete *DeleteBookmark
}

// NewSet wires repository -> duplicate checker -> use cases.
func NewSet(repo domain.BookmarkRepository, log logger.Logger, opts ...Option) *Set {
	dups := domain.NewDuplicateChecker(repo)
	return &Set{
		Create: NewCreateBookmark(repo, dups, log, opts...),
		Get:    NewGetBookmark(repo),
		List:   NewGetBookmarks(repo),
		Update: NewUpdateBookmark(repo, dups, log),
		Delete: NewDeleteBookmark(repo, log),
	}
}
