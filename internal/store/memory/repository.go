package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/MrSnakeDoc/marks/internal/domain"
)

// Repository keeps bookmarks in process memory. It backs tests and the
// "memory" store mode; contents are lost on restart.
type Repository struct {
	mu     sync.RWMutex
	rows   map[int64]domain.BookmarkProps // ID -> persisted state
	byURL  map[string]int64               // URL -> ID, enforces uniqueness
	nextID int64
	now    func() time.Time
}

var (
	_ domain.BookmarkRepository = (*Repository)(nil)
	_ domain.Pinger             = (*Repository)(nil)
)

type Option func(*Repository)

// WithNow overrides the clock used for timestamps.
func WithNow(now func() time.Time) Option {
	return func(r *Repository) { r.now = now }
}

func NewRepository(opts ...Option) *Repository {
	r := &Repository{
		rows:   make(map[int64]domain.BookmarkProps),
		byURL:  make(map[string]int64),
		nextID: 1,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// FindAll returns bookmarks newest first, optionally restricted to tag.
func (r *Repository) FindAll(_ context.Context, tag string) ([]*domain.Bookmark, error) {
	r.mu.RLock()
	rows := make([]domain.BookmarkProps, 0, len(r.rows))
	for _, p := range r.rows {
		if tag != "" && !p.Tags.Has(tag) {
			continue
		}
		rows = append(rows, p)
	}
	r.mu.RUnlock()

	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].CreatedAt.Equal(rows[j].CreatedAt) {
			return rows[i].CreatedAt.After(rows[j].CreatedAt)
		}
		return rows[i].ID > rows[j].ID
	})

	out := make([]*domain.Bookmark, 0, len(rows))
	for _, p := range rows {
		b, err := domain.NewBookmark(p)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, nil
}

// FindByID returns nil, nil when id is unknown.
func (r *Repository) FindByID(_ context.Context, id int64) (*domain.Bookmark, error) {
	r.mu.RLock()
	p, ok := r.rows[id]
	r.mu.RUnlock()

	if !ok {
		return nil, nil
	}
	return domain.NewBookmark(p)
}

// Save inserts or updates b. The URL check and the write happen under one
// lock, so two concurrent saves cannot both claim a URL.
func (r *Repository) Save(_ context.Context, b *domain.Bookmark) (*domain.Bookmark, error) {
	const op = "memory.save"

	r.mu.Lock()
	defer r.mu.Unlock()

	p := b.Props()
	url := p.URL.String()
	now := r.now().UTC()

	if owner, taken := r.byURL[url]; taken && owner != p.ID {
		return nil, domain.Conflict(op, domain.MsgURLAlreadyRegistered)
	}

	if b.IsNew() {
		p.ID = r.nextID
		r.nextID++
		if p.CreatedAt.IsZero() {
			p.CreatedAt = now
		}
		p.UpdatedAt = p.CreatedAt
	} else {
		prev, ok := r.rows[p.ID]
		if !ok {
			return nil, domain.NotFound(op, domain.MsgBookmarkNotFound)
		}
		if prevURL := prev.URL.String(); prevURL != url {
			delete(r.byURL, prevURL)
		}
		p.CreatedAt = prev.CreatedAt
		p.UpdatedAt = now
	}

	r.rows[p.ID] = p
	r.byURL[url] = p.ID

	return domain.NewBookmark(p)
}

// Delete removes id. Unknown ids are ignored.
func (r *Repository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if p, ok := r.rows[id]; ok {
		delete(r.byURL, p.URL.String())
		delete(r.rows, id)
	}
	return nil
}

func (r *Repository) ExistsByURL(_ context.Context, url string, excludeID int64) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byURL[url]
	return ok && id != excludeID, nil
}

// Count returns the number of stored bookmarks.
func (r *Repository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.rows)
}

func (r *Repository) Ping(context.Context) error { return nil }
