package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/marks/internal/domain"
)

// Repository stores bookmarks as JSON strings. A url -> id key claimed with
// SETNX keeps URLs unique across concurrent writers.
type Repository struct {
	client *redis.Client
	keys   keyspace
	now    func() time.Time
}

var (
	_ domain.BookmarkRepository = (*Repository)(nil)
	_ domain.Pinger             = (*Repository)(nil)
)

type Option func(*Repository)

// WithPrefix changes the key namespace. Defaults to DefaultPrefix.
func WithPrefix(prefix string) Option {
	return func(r *Repository) { r.keys = keyspace{prefix: prefix} }
}

// WithNow overrides the clock used for timestamps.
func WithNow(now func() time.Time) Option {
	return func(r *Repository) { r.now = now }
}

func NewRepository(client *redis.Client, opts ...Option) *Repository {
	r := &Repository{
		client: client,
		keys:   keyspace{prefix: DefaultPrefix},
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

type record struct {
	ID          int64     `json:"id"`
	URL         string    `json:"url"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Tags        []string  `json:"tags"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func toRecord(p domain.BookmarkProps) record {
	return record{
		ID:          p.ID,
		URL:         p.URL.String(),
		Title:       p.Title,
		Description: p.Description,
		Tags:        p.Tags.Slice(),
		CreatedAt:   p.CreatedAt.UTC(),
		UpdatedAt:   p.UpdatedAt.UTC(),
	}
}

func (rec record) toBookmark() (*domain.Bookmark, error) {
	u, err := domain.NewURL(rec.URL)
	if err != nil {
		return nil, fmt.Errorf("corrupt url in bookmark %d: %w", rec.ID, err)
	}
	return domain.NewBookmark(domain.BookmarkProps{
		ID:          rec.ID,
		URL:         u,
		Title:       rec.Title,
		Description: rec.Description,
		Tags:        domain.NewTagSet(rec.Tags),
		CreatedAt:   rec.CreatedAt,
		UpdatedAt:   rec.UpdatedAt,
	})
}

func (r *Repository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// FindAll loads every bookmark and sorts newest first.
func (r *Repository) FindAll(ctx context.Context, tag string) ([]*domain.Bookmark, error) {
	ids, err := r.client.SMembers(ctx, r.keys.all()).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get bookmark ids: %w", err)
	}
	if len(ids) == 0 {
		return []*domain.Bookmark{}, nil
	}

	keys := make([]string, 0, len(ids))
	for _, raw := range ids {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			continue
		}
		keys = append(keys, r.keys.bookmark(id))
	}

	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get bookmarks: %w", err)
	}

	recs := make([]record, 0, len(values))
	for _, v := range values {
		s, ok := v.(string)
		if !ok {
			// deleted between SMEMBERS and MGET
			continue
		}
		var rec record
		if err := json.Unmarshal([]byte(s), &rec); err != nil {
			return nil, fmt.Errorf("failed to unmarshal bookmark: %w", err)
		}
		if tag != "" && !containsTag(rec.Tags, tag) {
			continue
		}
		recs = append(recs, rec)
	}

	sort.Slice(recs, func(i, j int) bool {
		if !recs[i].CreatedAt.Equal(recs[j].CreatedAt) {
			return recs[i].CreatedAt.After(recs[j].CreatedAt)
		}
		return recs[i].ID > recs[j].ID
	})

	out := make([]*domain.Bookmark, 0, len(recs))
	for _, rec := range recs {
		b, err := rec.toBookmark()
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, nil
}

func (r *Repository) FindByID(ctx context.Context, id int64) (*domain.Bookmark, error) {
	rec, err := r.load(ctx, id)
	if err != nil || rec == nil {
		return nil, err
	}
	return rec.toBookmark()
}

func (r *Repository) load(ctx context.Context, id int64) (*record, error) {
	data, err := r.client.Get(ctx, r.keys.bookmark(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get bookmark: %w", err)
	}

	var rec record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("failed to unmarshal bookmark: %w", err)
	}
	return &rec, nil
}

func (r *Repository) Save(ctx context.Context, b *domain.Bookmark) (*domain.Bookmark, error) {
	if b.IsNew() {
		return r.insert(ctx, b)
	}
	return r.update(ctx, b)
}

func (r *Repository) insert(ctx context.Context, b *domain.Bookmark) (*domain.Bookmark, error) {
	const op = "redis.insert"

	id, err := r.client.Incr(ctx, r.keys.nextID()).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to allocate bookmark id: %w", err)
	}

	p := b.Props()
	p.ID = id
	if p.CreatedAt.IsZero() {
		p.CreatedAt = r.now()
	}
	p.UpdatedAt = p.CreatedAt

	claimed, err := r.client.SetNX(ctx, r.keys.url(p.URL.String()), id, 0).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to claim url: %w", err)
	}
	if !claimed {
		return nil, domain.Conflict(op, domain.MsgURLAlreadyRegistered)
	}

	rec := toRecord(p)
	if err := r.write(ctx, rec, ""); err != nil {
		return nil, r.release(ctx, rec.URL, err)
	}
	return rec.toBookmark()
}

func (r *Repository) update(ctx context.Context, b *domain.Bookmark) (*domain.Bookmark, error) {
	const op = "redis.update"

	p := b.Props()
	prev, err := r.load(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	if prev == nil {
		return nil, domain.NotFound(op, domain.MsgBookmarkNotFound)
	}

	newURL := p.URL.String()
	staleURL := ""
	if newURL != prev.URL {
		if err := r.claimURL(ctx, newURL, p.ID); err != nil {
			return nil, err
		}
		staleURL = prev.URL
	}

	p.CreatedAt = prev.CreatedAt
	p.UpdatedAt = r.now()
	rec := toRecord(p)
	if err := r.write(ctx, rec, staleURL); err != nil {
		if staleURL != "" {
			return nil, r.release(ctx, newURL, err)
		}
		return nil, err
	}
	return rec.toBookmark()
}

// release drops a url claim taken before a failed write. A cleanup failure
// is joined to cause so the orphaned claim is not silent.
func (r *Repository) release(ctx context.Context, url string, cause error) error {
	ctx = context.WithoutCancel(ctx)
	if err := r.client.Del(ctx, r.keys.url(url)).Err(); err != nil {
		return errors.Join(cause, fmt.Errorf("failed to release url claim %q: %w", url, err))
	}
	return cause
}

// claimURL takes url for id, failing with a conflict when another id owns it.
func (r *Repository) claimURL(ctx context.Context, url string, id int64) error {
	claimed, err := r.client.SetNX(ctx, r.keys.url(url), id, 0).Result()
	if err != nil {
		return fmt.Errorf("failed to claim url: %w", err)
	}
	if claimed {
		return nil
	}

	owner, err := r.client.Get(ctx, r.keys.url(url)).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("failed to read url owner: %w", err)
	}
	if owner != id {
		return domain.Conflict("redis.claim_url", domain.MsgURLAlreadyRegistered)
	}
	return nil
}

// write stores rec and, in the same transaction, drops the claim on
// staleURL when the bookmark moved away from it.
func (r *Repository) write(ctx context.Context, rec record, staleURL string) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal bookmark: %w", err)
	}

	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, r.keys.bookmark(rec.ID), data, 0)
		pipe.SAdd(ctx, r.keys.all(), rec.ID)
		if staleURL != "" {
			pipe.Del(ctx, r.keys.url(staleURL))
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to save bookmark: %w", err)
	}
	return nil
}

// Delete removes the record, its url claim and its set membership.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	rec, err := r.load(ctx, id)
	if err != nil || rec == nil {
		return err
	}

	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, r.keys.bookmark(id), r.keys.url(rec.URL))
		pipe.SRem(ctx, r.keys.all(), id)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to delete bookmark: %w", err)
	}
	return nil
}

func (r *Repository) ExistsByURL(ctx context.Context, url string, excludeID int64) (bool, error) {
	owner, err := r.client.Get(ctx, r.keys.url(url)).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check url: %w", err)
	}
	return owner != excludeID, nil
}

// Flush deletes every key under the repository prefix.
func (r *Repository) Flush(ctx context.Context) error {
	iter := r.client.Scan(ctx, 0, r.keys.prefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		if err := r.client.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("failed to delete key: %w", err)
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to flush keys: %w", err)
	}
	return nil
}

func containsTag(tags []string, tag string) bool {
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}
