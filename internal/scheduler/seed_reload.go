package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/MrSnakeDoc/marks/internal/importer"
	"github.com/MrSnakeDoc/marks/internal/logger"
)

// FileImporter is the part of importer.Importer the reloader needs.
type FileImporter interface {
	ImportFile(ctx context.Context, path string, format importer.Format) (importer.Result, error)
}

// SeedReloader imports a bookmark file at startup and, when interval > 0,
// again on every tick. Imports skip known URLs, so entries appended to the
// file show up without duplicating the rest.
type SeedReloader struct {
	importer FileImporter
	path     string
	logger   logger.Logger
	interval time.Duration
	stopCh   chan struct{}
	done     chan struct{}
	stopOnce sync.Once
}

func NewSeedReloader(imp FileImporter, path string, log logger.Logger, interval time.Duration) *SeedReloader {
	return &SeedReloader{
		importer: imp,
		path:     path,
		logger:   log,
		interval: interval,
		stopCh:   make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start runs the first import synchronously and fails if it does; later
// failures are only logged.
func (sr *SeedReloader) Start(ctx context.Context) error {
	if err := sr.Reload(ctx); err != nil {
		close(sr.done)
		return fmt.Errorf("initial seed import failed: %w", err)
	}

	if sr.interval <= 0 {
		close(sr.done)
		return nil
	}

	ticker := time.NewTicker(sr.interval)
	go func() {
		defer close(sr.done)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := sr.Reload(ctx); err != nil {
					sr.logger.Error("failed to reload seed file", logger.Error(err))
				}
			case <-sr.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

// Stop ends the periodic loop and waits for it to exit. Safe to call more
// than once.
func (sr *SeedReloader) Stop() {
	sr.stopOnce.Do(func() { close(sr.stopCh) })
	<-sr.done
}

func (sr *SeedReloader) Reload(ctx context.Context) error {
	res, err := sr.importer.ImportFile(ctx, sr.path, "")
	if err != nil {
		return err
	}
	if res.Imported > 0 {
		sr.logger.Info("seed file imported",
			logger.String("path", sr.path),
			logger.Int("imported", res.Imported))
	}
	return nil
}
