package domain

import "context"

// DuplicateChecker holds the rules that span the whole collection rather than
// a single Bookmark. Today that is URL uniqueness.
type DuplicateChecker struct {
	repo BookmarkRepository
}

func NewDuplicateChecker(repo BookmarkRepository) *DuplicateChecker {
	return &DuplicateChecker{repo: repo}
}

// IsDuplicateURL reports whether url is already held by a bookmark other
// than excludeID (0 excludes nothing).
func (c *DuplicateChecker) IsDuplicateURL(ctx context.Context, url string, excludeID int64) (bool, error) {
	return c.repo.ExistsByURL(ctx, url, excludeID)
}
