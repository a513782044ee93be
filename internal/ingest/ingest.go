// Package ingest builds the catalog document from a CSV dataset and a
// directory of image files.
package ingest

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/taibuivan/pokedex/internal/core/pokemon"
)

// Options configures an [Ingester].
type Options struct {
	// Images is the image directory as a file system.
	Images fs.FS

	// ImagesDir is the url prefix written into each record.
	ImagesDir string

	// DryRun transforms and reports without writing the catalog.
	DryRun bool
}

// Ingester replaces the catalog with the transformed dataset.
type Ingester struct {
	repository pokemon.Repository
	options    Options
	logger     *slog.Logger
}

// NewIngester constructs an [Ingester] writing through repository.
func NewIngester(repository pokemon.Repository, options Options, logger *slog.Logger) *Ingester {
	if logger == nil {
		logger = slog.Default()
	}
	return &Ingester{repository: repository, options: options, logger: logger}
}

/*
Run reads csvPath, transforms its rows and replaces the catalog.

Description: Any existing catalog is overwritten wholesale. Running twice
over the same input and image directory produces the same document.

Returns:
  - Result: accepted records and discarded names
  - error: unreadable CSV, broken row contract, or a failed write
*/
func (ingester *Ingester) Run(context context.Context, csvPath string) (Result, error) {

	// 1. Parse
	file, err := os.Open(csvPath)
	if err != nil {
		return Result{}, fmt.Errorf("ingest: open %s: %w", csvPath, err)
	}
	defer func() { _ = file.Close() }()

	rows, err := ReadRows(file)
	if err != nil {
		return Result{}, err
	}

	// 2. Transform
	result, err := Transform(rows, ingester.options.Images, ingester.options.ImagesDir)
	if err != nil {
		return Result{}, err
	}

	for _, name := range result.Discarded {
		ingester.logger.DebugContext(context, "ingest_row_discarded",
			slog.String("name", name),
			slog.String("image", ImageName(name)),
		)
	}

	ingester.logger.InfoContext(context, "ingest_transformed",
		slog.String("csv", csvPath),
		slog.Int("rows", len(rows)),
		slog.Int("accepted", len(result.Records)),
		slog.Int("discarded", len(result.Discarded)),
	)

	if ingester.options.DryRun {
		ingester.logger.InfoContext(context, "ingest_dry_run_skipped_write")
		return result, nil
	}

	// 3. Persist
	if err := ingester.repository.Replace(context, result.Records); err != nil {
		return Result{}, fmt.Errorf("ingest: write catalog: %w", err)
	}

	ingester.logger.InfoContext(context, "ingest_catalog_written", slog.Int("records", len(result.Records)))
	return result, nil
}
