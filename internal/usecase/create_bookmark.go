package usecase

import (
	"context"
	"time"

	"github.com/MrSnakeDoc/marks/internal/domain"
	"github.com/MrSnakeDoc/marks/internal/logger"
)

type CreateBookmark struct {
	repo   domain.BookmarkRepository
	dups   *domain.DuplicateChecker
	logger logger.Logger
	now    func() time.Time
}

type Option func(*options)

type options struct {
	now func() time.Time
}

// WithNow overrides the clock. Useful for tests.
func WithNow(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func NewCreateBookmark(repo domain.BookmarkRepository, dups *domain.DuplicateChecker, log logger.Logger, opts ...Option) *CreateBookmark {
	o := buildOptions(opts)
	return &CreateBookmark{repo: repo, dups: dups, logger: log, now: o.now}
}

// Execute validates input, rejects a URL that is already registered and
// persists a new bookmark.
func (uc *CreateBookmark) Execute(ctx context.Context, in CreateBookmarkRequest) (BookmarkResponse, error) {
	const op = "usecase.create_bookmark"

	url, err := domain.NewURL(in.URL)
	if err != nil {
		return BookmarkResponse{}, err
	}
	tags := domain.NewTagSet(in.Tags)

	dup, err := uc.dups.IsDuplicateURL(ctx, url.String(), 0)
	if err != nil {
		return BookmarkResponse{}, err
	}
	if dup {
		return BookmarkResponse{}, domain.Conflict(op, domain.MsgURLAlreadyRegistered)
	}

	description := ""
	if in.Description != nil {
		description = *in.Description
	}

	now := uc.now().UTC()
	bookmark, err := domain.NewBookmark(domain.BookmarkProps{
		URL:         url,
		Title:       in.Title,
		Description: description,
		Tags:        tags,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return BookmarkResponse{}, err
	}

	saved, err := uc.repo.Save(ctx, bookmark)
	if err != nil {
		return BookmarkResponse{}, err
	}

	uc.logger.Debug("bookmark created",
		logger.Int64("id", saved.ID()),
		logger.String("url", saved.URL().String()))

	return toBookmarkResponse(saved), nil
}
