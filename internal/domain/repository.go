package domain

import "context"

// BookmarkRepository is the persistence port consumed by use cases and the
// domain service. Adapters live under internal/store.
type BookmarkRepository interface {
	// FindAll returns bookmarks newest first. An empty tag disables filtering;
	// otherwise only bookmarks whose tag set contains tag exactly are returned.
	FindAll(ctx context.Context, tag string) ([]*Bookmark, error)

	// FindByID returns nil, nil when no bookmark has this id.
	FindByID(ctx context.Context, id int64) (*Bookmark, error)

	// Save inserts when b.IsNew() and updates in place otherwise.
	// It returns the persisted state (assigned id, timestamps).
	// A URL already held by another bookmark yields a KindConflict error.
	Save(ctx context.Context, b *Bookmark) (*Bookmark, error)

	// Delete removes the bookmark. Callers check existence first.
	Delete(ctx context.Context, id int64) error

	// ExistsByURL reports whether a bookmark other than excludeID holds url.
	// excludeID 0 excludes nothing.
	ExistsByURL(ctx context.Context, url string, excludeID int64) (bool, error)
}

// Pinger is implemented by adapters that can report backend liveness.
type Pinger interface {
	Ping(ctx context.Context) error
}
