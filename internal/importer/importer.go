package importer

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/MrSnakeDoc/marks/internal/domain"
	"github.com/MrSnakeDoc/marks/internal/logger"
	"github.com/MrSnakeDoc/marks/internal/usecase"
)

// Result counts the outcome of one import run.
type Result struct {
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"` // URL already registered
	Failed   int `json:"failed"`  // rejected by validation
}

// Importer feeds parsed entries through CreateBookmark, so imported bookmarks
// obey the same rules as the ones created over HTTP.
type Importer struct {
	create *usecase.CreateBookmark
	logger logger.Logger
}

func New(create *usecase.CreateBookmark, log logger.Logger) *Importer {
	return &Importer{create: create, logger: log}
}

// Load reads path and parses it as format. An empty format is detected from
// the file extension.
func Load(path string, format Format) ([]usecase.CreateBookmarkRequest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read bookmarks file: %w", err)
	}

	if format == "" {
		format = DetectFormat(path)
	}

	switch format {
	case FormatYAML:
		return parseYAML(data)
	case FormatHomepage:
		return parseHomepage(data)
	case FormatHTML:
		return parseNetscape(bytes.NewReader(data))
	default:
		return nil, fmt.Errorf("unknown import format %q", format)
	}
}

// Import creates every entry in order. Duplicates are skipped and invalid
// entries counted as failed; only an infrastructure error or a cancelled
// context stops the run.
func (i *Importer) Import(ctx context.Context, entries []usecase.CreateBookmarkRequest) (Result, error) {
	var res Result

	for n, entry := range entries {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		_, err := i.create.Execute(ctx, entry)
		switch {
		case err == nil:
			res.Imported++
		case domain.IsKind(err, domain.KindConflict):
			res.Skipped++
			i.logger.Debug("import: url already registered",
				logger.Int("entry", n),
				logger.String("url", entry.URL))
		case domain.IsKind(err, domain.KindValidation):
			res.Failed++
			i.logger.Warn("import: invalid entry",
				logger.Int("entry", n),
				logger.String("url", entry.URL),
				logger.Error(err))
		default:
			return res, fmt.Errorf("import entry %d: %w", n, err)
		}
	}

	i.logger.Info("import finished",
		logger.Int("imported", res.Imported),
		logger.Int("skipped", res.Skipped),
		logger.Int("failed", res.Failed))

	return res, nil
}

// ImportFile is Load followed by Import.
func (i *Importer) ImportFile(ctx context.Context, path string, format Format) (Result, error) {
	entries, err := Load(path, format)
	if err != nil {
		return Result{}, err
	}
	i.logger.Info("importing bookmarks",
		logger.String("path", path),
		logger.Int("entries", len(entries)))
	return i.Import(ctx, entries)
}
