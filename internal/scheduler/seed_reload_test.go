package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/goleak"

	"github.com/MrSnakeDoc/marks/internal/importer"
	"github.com/MrSnakeDoc/marks/internal/logger"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type countingImporter struct {
	calls atomic.Int32
	err   error
}

func (c *countingImporter) ImportFile(context.Context, string, importer.Format) (importer.Result, error) {
	c.calls.Add(1)
	return importer.Result{Imported: 1}, c.err
}

func TestSeedReloaderOnce(t *testing.T) {
	imp := &countingImporter{}
	sr := NewSeedReloader(imp, "seed.yaml", logger.NewNop(), 0)

	if err := sr.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	sr.Stop()

	if got := imp.calls.Load(); got != 1 {
		t.Errorf("ImportFile called %d times, want 1", got)
	}
}

func TestSeedReloaderPeriodic(t *testing.T) {
	imp := &countingImporter{}
	sr := NewSeedReloader(imp, "seed.yaml", logger.NewNop(), 10*time.Millisecond)

	if err := sr.Start(context.Background()); err != nil {
		t.Fatal(err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for imp.calls.Load() < 3 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	sr.Stop()
	sr.Stop()

	if got := imp.calls.Load(); got < 3 {
		t.Errorf("ImportFile called %d times, want at least 3", got)
	}
}

func TestSeedReloaderInitialFailure(t *testing.T) {
	imp := &countingImporter{err: errors.New("unreadable")}
	sr := NewSeedReloader(imp, "seed.yaml", logger.NewNop(), time.Hour)

	if err := sr.Start(context.Background()); err == nil {
		t.Fatal("Start() ignored the initial import failure")
	}
	sr.Stop()
}
