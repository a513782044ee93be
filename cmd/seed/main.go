// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command seed builds the catalog document from a CSV dataset.
//
// Each row becomes a record when a matching "<lower-cased name>.png" exists
// in the image directory. The existing document is replaced wholesale.
//
//	seed --csv pokemon.csv --images images --db db.json
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/taibuivan/pokedex/internal/core/pokemon"
	"github.com/taibuivan/pokedex/internal/ingest"
	"github.com/taibuivan/pokedex/internal/platform/config"
	"github.com/taibuivan/pokedex/internal/platform/constants"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})).With(slog.String("app", "pokedex-seed"))
	slog.SetDefault(log)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := newRootCommand(log).ExecuteContext(ctx); err != nil {
		log.Error("seed_failed", slog.Any("error", err))
		os.Exit(1)
	}
}

// seedFlags holds the command-line overrides. Empty values fall back to config.
type seedFlags struct {
	csvPath   string
	imagesDir string
	dbPath    string
	dryRun    bool
	verbose   bool
}

// newRootCommand builds the seed command around log.
func newRootCommand(log *slog.Logger) *cobra.Command {
	flags := &seedFlags{}

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Build the catalog document from a CSV dataset",
		Long: `Reads the CSV dataset (columns Name, Type1, Type2), keeps the rows that
have an image in the image directory, numbers them from 1 and writes the
catalog document. The existing document is replaced.`,
		Example: `  # Seed with defaults from the environment
  seed

  # Report what would be written
  seed --csv data/pokemon.csv --dry-run`,
		Version:       constants.AppVersion,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSeed(cmd, flags, log)
		},
	}

	cmd.Flags().StringVar(&flags.csvPath, "csv", "pokemon.csv", "Path to the CSV dataset")
	cmd.Flags().StringVar(&flags.imagesDir, "images", "", "Image directory (default: IMAGES_DIR)")
	cmd.Flags().StringVar(&flags.dbPath, "db", "", "Catalog document path (default: DB_PATH)")
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "Transform and report without writing")
	cmd.Flags().BoolVarP(&flags.verbose, "verbose", "v", false, "Log every discarded row")

	return cmd
}

func runSeed(cmd *cobra.Command, flags *seedFlags, log *slog.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if flags.imagesDir == "" {
		flags.imagesDir = cfg.ImagesDir
	}
	if flags.dbPath == "" {
		flags.dbPath = cfg.DBPath
	}
	if flags.verbose || cfg.Debug {
		log = slog.New(slog.NewJSONHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})).With(slog.String("app", "pokedex-seed"))
	}

	info, err := os.Stat(flags.imagesDir)
	if err != nil {
		return fmt.Errorf("image directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("image directory: %s is not a directory", flags.imagesDir)
	}

	repository := pokemon.NewJSONRepository(flags.dbPath, log)
	ingester := ingest.NewIngester(repository, ingest.Options{
		Images:    os.DirFS(flags.imagesDir),
		ImagesDir: flags.imagesDir,
		DryRun:    flags.dryRun,
	}, log)

	result, err := ingester.Run(cmd.Context(), flags.csvPath)
	if err != nil {
		return err
	}

	target := repository.Path()
	if flags.dryRun {
		target = "(dry run)"
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "%d records written to %s, %d rows discarded\n",
		len(result.Records), target, len(result.Discarded))
	return err
}
