package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/MrSnakeDoc/marks/internal/domain"
	"github.com/MrSnakeDoc/marks/internal/utils"
)

// Supported database/sql driver names.
const (
	DriverMattn   = "sqlite3" // github.com/mattn/go-sqlite3, needs cgo
	DriverModernc = "sqlite"  // modernc.org/sqlite, pure Go
)

// timestamps are stored as fixed-width UTC text so that ORDER BY on the
// column matches chronological order.
const storageLayout = "2006-01-02T15:04:05.000000000Z"

const schema = `
CREATE TABLE IF NOT EXISTS bookmarks (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	url         TEXT NOT NULL UNIQUE,
	title       TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	tags        TEXT NOT NULL DEFAULT '[]',
	created_at  TEXT NOT NULL,
	updated_at  TEXT NOT NULL
)`

const createdIndex = `CREATE INDEX IF NOT EXISTS idx_bookmarks_created ON bookmarks(created_at DESC, id DESC)`

const selectColumns = `SELECT id, url, title, description, tags, created_at, updated_at FROM bookmarks`

// Repository persists bookmarks in a single SQLite table. URL uniqueness is
// enforced by the table itself.
type Repository struct {
	db     *sql.DB
	driver string
	path   string
	now    func() time.Time
}

var (
	_ domain.BookmarkRepository = (*Repository)(nil)
	_ domain.Pinger             = (*Repository)(nil)
)

type Option func(*Repository)

// WithNow overrides the clock used for updatedAt.
func WithNow(now func() time.Time) Option {
	return func(r *Repository) { r.now = now }
}

// Open creates or opens the database at path with the given driver and
// ensures the schema exists. path ":memory:" keeps everything in process.
func Open(ctx context.Context, driver, path string, opts ...Option) (*Repository, error) {
	dsn, err := buildDSN(driver, path)
	if err != nil {
		return nil, err
	}

	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create directory: %w", err)
		}
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if path == ":memory:" {
		// every connection would otherwise see its own empty database
		db.SetMaxOpenConns(1)
	}

	r := &Repository{db: db, driver: driver, path: path, now: time.Now}
	for _, opt := range opts {
		opt(r)
	}

	if err := r.initSchema(ctx); err != nil {
		utils.Close(db)
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return r, nil
}

func buildDSN(driver, path string) (string, error) {
	switch driver {
	case DriverMattn:
		return "file:" + path + "?_journal_mode=WAL&_busy_timeout=5000", nil
	case DriverModernc:
		return "file:" + path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", nil
	default:
		return "", fmt.Errorf("unsupported sqlite driver %q (want %q or %q)", driver, DriverMattn, DriverModernc)
	}
}

func (r *Repository) initSchema(ctx context.Context) error {
	for _, stmt := range []string{schema, createdIndex} {
		if _, err := r.db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

func (r *Repository) Close() error { return r.db.Close() }

// Driver returns the database/sql driver name in use.
func (r *Repository) Driver() string { return r.driver }

func (r *Repository) Ping(ctx context.Context) error { return r.db.PingContext(ctx) }

// FindAll returns bookmarks newest first. A non-empty tag keeps only rows
// whose JSON tag array holds that exact value.
func (r *Repository) FindAll(ctx context.Context, tag string) ([]*domain.Bookmark, error) {
	query := selectColumns
	var args []any
	if tag != "" {
		query += ` WHERE EXISTS (SELECT 1 FROM json_each(bookmarks.tags) WHERE json_each.value = ?)`
		args = append(args, tag)
	}
	query += ` ORDER BY created_at DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query bookmarks: %w", err)
	}
	defer utils.Close(rows)

	out := make([]*domain.Bookmark, 0)
	for rows.Next() {
		b, err := scanBookmark(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate bookmarks: %w", err)
	}
	return out, nil
}

func (r *Repository) FindByID(ctx context.Context, id int64) (*domain.Bookmark, error) {
	row := r.db.QueryRowContext(ctx, selectColumns+` WHERE id = ?`, id)
	b, err := scanBookmark(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return b, err
}

func (r *Repository) Save(ctx context.Context, b *domain.Bookmark) (*domain.Bookmark, error) {
	if b.IsNew() {
		return r.insert(ctx, b)
	}
	return r.update(ctx, b)
}

func (r *Repository) insert(ctx context.Context, b *domain.Bookmark) (*domain.Bookmark, error) {
	const op = "sqlite.insert"

	p := b.Props()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = r.now()
	}
	p.UpdatedAt = p.CreatedAt

	tags, err := json.Marshal(p.Tags.Slice())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal tags: %w", err)
	}

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO bookmarks (url, title, description, tags, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)`,
		p.URL.String(), p.Title, p.Description, string(tags),
		formatTime(p.CreatedAt), formatTime(p.UpdatedAt))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.Conflict(op, domain.MsgURLAlreadyRegistered)
		}
		return nil, fmt.Errorf("failed to insert bookmark: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to read bookmark id: %w", err)
	}

	p.ID = id
	p.CreatedAt = p.CreatedAt.UTC()
	p.UpdatedAt = p.UpdatedAt.UTC()
	return domain.NewBookmark(p)
}

func (r *Repository) update(ctx context.Context, b *domain.Bookmark) (*domain.Bookmark, error) {
	const op = "sqlite.update"

	p := b.Props()
	tags, err := json.Marshal(p.Tags.Slice())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal tags: %w", err)
	}

	res, err := r.db.ExecContext(ctx,
		`UPDATE bookmarks SET url = ?, title = ?, description = ?, tags = ?, updated_at = ? WHERE id = ?`,
		p.URL.String(), p.Title, p.Description, string(tags), formatTime(r.now()), p.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.Conflict(op, domain.MsgURLAlreadyRegistered)
		}
		return nil, fmt.Errorf("failed to update bookmark: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return nil, domain.NotFound(op, domain.MsgBookmarkNotFound)
	}

	saved, err := r.FindByID(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	if saved == nil {
		return nil, domain.NotFound(op, domain.MsgBookmarkNotFound)
	}
	return saved, nil
}

func (r *Repository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM bookmarks WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete bookmark: %w", err)
	}
	return nil
}

func (r *Repository) ExistsByURL(ctx context.Context, url string, excludeID int64) (bool, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM bookmarks WHERE url = ? AND id != ?`, url, excludeID).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("failed to check url: %w", err)
	}
	return n > 0, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanBookmark(s scanner) (*domain.Bookmark, error) {
	var (
		id                        int64
		rawURL, title, desc, tags string
		created, updated          string
	)
	if err := s.Scan(&id, &rawURL, &title, &desc, &tags, &created, &updated); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan bookmark: %w", err)
	}

	u, err := domain.NewURL(rawURL)
	if err != nil {
		return nil, fmt.Errorf("corrupt url in row %d: %w", id, err)
	}

	var tagList []string
	if err := json.Unmarshal([]byte(tags), &tagList); err != nil {
		return nil, fmt.Errorf("corrupt tags in row %d: %w", id, err)
	}

	createdAt, err := time.Parse(storageLayout, created)
	if err != nil {
		return nil, fmt.Errorf("corrupt created_at in row %d: %w", id, err)
	}
	updatedAt, err := time.Parse(storageLayout, updated)
	if err != nil {
		return nil, fmt.Errorf("corrupt updated_at in row %d: %w", id, err)
	}

	return domain.NewBookmark(domain.BookmarkProps{
		ID:          id,
		URL:         u,
		Title:       title,
		Description: desc,
		Tags:        domain.NewTagSet(tagList),
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
	})
}

func formatTime(t time.Time) string { return t.UTC().Format(storageLayout) }
