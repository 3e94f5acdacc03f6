package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/MrSnakeDoc/marks/internal/config"
	"github.com/MrSnakeDoc/marks/internal/importer"
	"github.com/MrSnakeDoc/marks/internal/logger"
	"github.com/MrSnakeDoc/marks/internal/store/sqlite"
)

func testConfig(store string) *config.Config {
	return &config.Config{
		ListenPort:      "127.0.0.1:0",
		BasePath:        "/api",
		ShutdownTimeout: time.Second,
		RequestTimeout:  time.Second,
		LogLevel:        "info",
		Store:           store,
		SQLiteDriver:    sqlite.DriverModernc,
	}
}

func TestNewWithEachLocalStore(t *testing.T) {
	for _, store := range []string{config.StoreMemory, config.StoreSQLite} {
		t.Run(store, func(t *testing.T) {
			cfg := testConfig(store)
			cfg.SQLitePath = filepath.Join(t.TempDir(), "marks.db")

			a, err := New(context.Background(), cfg, logger.NewNop())
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}
			defer a.Close()

			w := httptest.NewRecorder()
			a.Server().Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/readyz", nil))
			if w.Code != http.StatusOK {
				t.Errorf("readyz = %d, body %s", w.Code, w.Body.String())
			}
		})
	}
}

func TestNewRejectsUnknownStore(t *testing.T) {
	if _, err := New(context.Background(), testConfig("mongo"), logger.NewNop()); err == nil {
		t.Fatal("New() accepted an unknown store")
	}
}

func TestImportThenServe(t *testing.T) {
	cfg := testConfig(config.StoreMemory)
	a, err := New(context.Background(), cfg, logger.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	defer a.Close()

	seed := filepath.Join(t.TempDir(), "seed.yaml")
	if err := os.WriteFile(seed, []byte("- url: https://go.dev\n  title: Go\n  tags: [go]\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	res, err := a.Import(context.Background(), seed, importer.FormatYAML)
	if err != nil || res.Imported != 1 {
		t.Fatalf("Import() = %+v, %v", res, err)
	}

	w := httptest.NewRecorder()
	a.Server().Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/bookmarks?tag=go", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("list = %d", w.Code)
	}
}

func TestRunContextStopsOnCancel(t *testing.T) {
	cfg := testConfig(config.StoreMemory)
	cfg.SeedFile = filepath.Join(t.TempDir(), "seed.yaml")
	cfg.SeedReloadInterval = 10 * time.Millisecond
	if err := os.WriteFile(cfg.SeedFile, []byte("- url: https://go.dev\n  title: Go\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	a, err := New(context.Background(), cfg, logger.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	defer a.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.RunContext(ctx) }()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("RunContext() error = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("RunContext() did not return after cancel")
	}
}

func TestRunContextFailsOnMissingSeed(t *testing.T) {
	cfg := testConfig(config.StoreMemory)
	cfg.SeedFile = "/nonexistent/seed.yaml"

	a, err := New(context.Background(), cfg, logger.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	defer a.Close()

	if err := a.RunContext(context.Background()); err == nil {
		t.Fatal("RunContext() ignored a missing seed file")
	}
}
