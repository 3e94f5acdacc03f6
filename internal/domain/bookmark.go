package domain

import (
	"strings"
	"time"
)

// Bookmark is the aggregate root of the system.
//
// It is NOT tied to HTTP, SQLite, Redis or any storage.
// Instances are built only through NewBookmark and mutated only through
// Update, so every live Bookmark satisfies its invariants.
type Bookmark struct {
	// ─────────────────────────────
	// Identity
	// ─────────────────────────────

	// id is 0 until the repository assigns one on first save.
	id int64

	// ─────────────────────────────
	// Content
	// ─────────────────────────────

	url         URL
	title       string // never blank after trimming
	description string
	tags        TagSet

	// ─────────────────────────────
	// Metadata
	// ─────────────────────────────

	// createdAt is fixed at creation.
	createdAt time.Time

	// updatedAt is refreshed by the repository on every save.
	updatedAt time.Time
}

// BookmarkProps is the full input of NewBookmark.
type BookmarkProps struct {
	ID          int64
	URL         URL
	Title       string
	Description string
	Tags        TagSet
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// BookmarkPatch is a partial update. A nil field is left untouched.
type BookmarkPatch struct {
	URL         *URL
	Title       *string
	Description *string
	Tags        *TagSet
}

// NewBookmark validates props and builds a Bookmark.
func NewBookmark(p BookmarkProps) (*Bookmark, error) {
	if err := validateTitle(p.Title); err != nil {
		return nil, err
	}
	if p.URL.IsZero() {
		return nil, Validation("domain.new_bookmark", MsgURLRequired)
	}

	return &Bookmark{
		id:          p.ID,
		url:         p.URL,
		title:       p.Title,
		description: p.Description,
		tags:        p.Tags,
		createdAt:   p.CreatedAt,
		updatedAt:   p.UpdatedAt,
	}, nil
}

// Update applies the present fields of p. Validation runs before any field
// changes, so a failed Update leaves the bookmark as it was.
func (b *Bookmark) Update(p BookmarkPatch) error {
	if p.Title != nil {
		if err := validateTitle(*p.Title); err != nil {
			return err
		}
	}
	if p.URL != nil && p.URL.IsZero() {
		return Validation("domain.update_bookmark", MsgURLRequired)
	}

	if p.URL != nil {
		b.url = *p.URL
	}
	if p.Title != nil {
		b.title = *p.Title
	}
	if p.Description != nil {
		b.description = *p.Description
	}
	if p.Tags != nil {
		b.tags = *p.Tags
	}
	return nil
}

func (b *Bookmark) ID() int64            { return b.id }
func (b *Bookmark) URL() URL             { return b.url }
func (b *Bookmark) Title() string        { return b.title }
func (b *Bookmark) Description() string  { return b.description }
func (b *Bookmark) Tags() TagSet         { return b.tags }
func (b *Bookmark) CreatedAt() time.Time { return b.createdAt }
func (b *Bookmark) UpdatedAt() time.Time { return b.updatedAt }

// IsNew reports whether the bookmark has never been persisted.
func (b *Bookmark) IsNew() bool { return b.id == 0 }

// Props returns a copy of the bookmark's state, used by repositories to
// rebuild a persisted instance through NewBookmark.
func (b *Bookmark) Props() BookmarkProps {
	return BookmarkProps{
		ID:          b.id,
		URL:         b.url,
		Title:       b.title,
		Description: b.description,
		Tags:        b.tags,
		CreatedAt:   b.createdAt,
		UpdatedAt:   b.updatedAt,
	}
}

func validateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return Validation("domain.validate_title", MsgTitleRequired)
	}
	return nil
}
