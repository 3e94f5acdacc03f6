package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/MrSnakeDoc/marks/internal/domain"
)

func newBookmark(t *testing.T, url, title string, tags ...string) *domain.Bookmark {
	t.Helper()
	u, err := domain.NewURL(url)
	if err != nil {
		t.Fatalf("NewURL(%q): %v", url, err)
	}
	b, err := domain.NewBookmark(domain.BookmarkProps{URL: u, Title: title, Tags: domain.NewTagSet(tags)})
	if err != nil {
		t.Fatalf("NewBookmark: %v", err)
	}
	return b
}

// tickingClock returns a clock advancing by one second per call.
func tickingClock() func() time.Time {
	var mu sync.Mutex
	t := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		t = t.Add(time.Second)
		return t
	}
}

func TestNewRepository(t *testing.T) {
	repo := NewRepository()
	if repo == nil {
		t.Fatal("NewRepository() returned nil")
	}
	all, err := repo.FindAll(context.Background(), "")
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 0 {
		t.Errorf("new repository should be empty, got %d", len(all))
	}
}

func TestSaveInsertAssignsIdentity(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(WithNow(tickingClock()))

	saved, err := repo.Save(ctx, newBookmark(t, "https://a.com", "A"))
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if saved.ID() == 0 {
		t.Error("Save() did not assign an id")
	}
	if saved.CreatedAt().IsZero() || !saved.CreatedAt().Equal(saved.UpdatedAt()) {
		t.Errorf("insert timestamps: created=%v updated=%v", saved.CreatedAt(), saved.UpdatedAt())
	}

	second, err := repo.Save(ctx, newBookmark(t, "https://b.com", "B"))
	if err != nil {
		t.Fatal(err)
	}
	if second.ID() == saved.ID() {
		t.Errorf("ids collide: %d", second.ID())
	}
}

func TestSaveUpdateRefreshesUpdatedAt(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(WithNow(tickingClock()))

	saved, _ := repo.Save(ctx, newBookmark(t, "https://a.com", "A"))
	title := "A2"
	if err := saved.Update(domain.BookmarkPatch{Title: &title}); err != nil {
		t.Fatal(err)
	}

	updated, err := repo.Save(ctx, saved)
	if err != nil {
		t.Fatalf("Save() update error = %v", err)
	}
	if !updated.UpdatedAt().After(updated.CreatedAt()) {
		t.Errorf("updatedAt %v should be after createdAt %v", updated.UpdatedAt(), updated.CreatedAt())
	}
	if updated.Title() != "A2" {
		t.Errorf("Title() = %q, want A2", updated.Title())
	}
}

func TestSaveRejectsDuplicateURL(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository()

	if _, err := repo.Save(ctx, newBookmark(t, "https://a.com", "A")); err != nil {
		t.Fatal(err)
	}
	_, err := repo.Save(ctx, newBookmark(t, "https://a.com", "other title"))
	if !domain.IsKind(err, domain.KindConflict) {
		t.Fatalf("Save() duplicate error = %v, want conflict", err)
	}
}

func TestSaveUpdateFreesPreviousURL(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository()

	saved, _ := repo.Save(ctx, newBookmark(t, "https://a.com", "A"))
	u, _ := domain.NewURL("https://moved.com")
	_ = saved.Update(domain.BookmarkPatch{URL: &u})
	if _, err := repo.Save(ctx, saved); err != nil {
		t.Fatal(err)
	}

	if exists, _ := repo.ExistsByURL(ctx, "https://a.com", 0); exists {
		t.Error("old url still registered after update")
	}
	if _, err := repo.Save(ctx, newBookmark(t, "https://a.com", "reuse")); err != nil {
		t.Errorf("old url should be reusable, got %v", err)
	}
}

func TestFindAllOrderAndTagFilter(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(WithNow(tickingClock()))

	for i, tags := range [][]string{{"x"}, {"y"}, {"x", "y"}} {
		b := newBookmark(t, fmt.Sprintf("https://%d.com", i), fmt.Sprintf("T%d", i), tags...)
		if _, err := repo.Save(ctx, b); err != nil {
			t.Fatal(err)
		}
	}

	all, _ := repo.FindAll(ctx, "")
	var titles []string
	for _, b := range all {
		titles = append(titles, b.Title())
	}
	if diff := cmp.Diff([]string{"T2", "T1", "T0"}, titles); diff != "" {
		t.Errorf("FindAll order mismatch (-want +got):\n%s", diff)
	}

	tagged, _ := repo.FindAll(ctx, "x")
	titles = titles[:0]
	for _, b := range tagged {
		titles = append(titles, b.Title())
	}
	if diff := cmp.Diff([]string{"T2", "T0"}, titles); diff != "" {
		t.Errorf("FindAll(x) mismatch (-want +got):\n%s", diff)
	}

	none, _ := repo.FindAll(ctx, "X")
	if len(none) != 0 {
		t.Errorf("tag filter should be case sensitive, got %d results", len(none))
	}
}

func TestFindByIDAbsent(t *testing.T) {
	b, err := NewRepository().FindByID(context.Background(), 42)
	if err != nil || b != nil {
		t.Errorf("FindByID(absent) = %v, %v; want nil, nil", b, err)
	}
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository()

	saved, _ := repo.Save(ctx, newBookmark(t, "https://a.com", "A"))
	if err := repo.Delete(ctx, saved.ID()); err != nil {
		t.Fatal(err)
	}
	if got, _ := repo.FindByID(ctx, saved.ID()); got != nil {
		t.Error("bookmark still present after Delete")
	}
	if err := repo.Delete(ctx, saved.ID()); err != nil {
		t.Errorf("Delete(absent) should be a no-op, got %v", err)
	}
}

func TestReturnedBookmarksAreDetached(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository()

	saved, _ := repo.Save(ctx, newBookmark(t, "https://a.com", "A"))
	title := "changed locally"
	_ = saved.Update(domain.BookmarkPatch{Title: &title})

	fresh, _ := repo.FindByID(ctx, saved.ID())
	if fresh.Title() != "A" {
		t.Errorf("unsaved mutation leaked into repository: %q", fresh.Title())
	}
}

func TestConcurrentSavesClaimURLOnce(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository()

	var wg sync.WaitGroup
	var mu sync.Mutex
	succeeded := 0

	candidates := make([]*domain.Bookmark, 50)
	for i := range candidates {
		candidates[i] = newBookmark(t, "https://race.com", "race")
	}

	for _, b := range candidates {
		wg.Add(1)
		go func(b *domain.Bookmark) {
			defer wg.Done()
			if _, err := repo.Save(ctx, b); err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}(b)
	}
	wg.Wait()

	if succeeded != 1 {
		t.Errorf("%d concurrent saves succeeded, want exactly 1", succeeded)
	}
	if repo.Count() != 1 {
		t.Errorf("Count() = %d, want 1", repo.Count())
	}
}
