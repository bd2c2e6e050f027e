package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/kailas-cloud/chardex/internal/domain/catalog"
	logpkg "github.com/kailas-cloud/chardex/internal/logger"
	"github.com/kailas-cloud/chardex/internal/metrics"
	characterrepo "github.com/kailas-cloud/chardex/internal/repository/character"
	searchrepo "github.com/kailas-cloud/chardex/internal/repository/search"
	"github.com/kailas-cloud/chardex/internal/usecase/importer"
)

func importCommand() *cli.Command {
	return &cli.Command{
		Name:      "import",
		Usage:     "Load character records from a YAML file",
		ArgsUsage: "<file.yaml>",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "batch-size",
				Usage: "Records written per pipeline",
				Value: importer.BatchSize,
			},
			&cli.BoolFlag{
				Name:  "reindex",
				Usage: "Drop and rebuild the search index before importing",
			},
			&cli.BoolFlag{
				Name:  "strict",
				Usage: "Fail when any record is rejected",
			},
		},
		Action: runImport,
	}
}

func runImport(ctx context.Context, c *cli.Command) error {
	path := c.Args().First()
	if path == "" {
		return fmt.Errorf("import: missing file argument")
	}

	cfg, logger, err := bootstrap(c)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	records, err := importer.Decode(f)
	if err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}

	store, err := openStore(ctx, cfg.Database, logger)
	if err != nil {
		return err
	}
	defer store.Close()

	metrics.RegisterBackendMetrics()

	keys := cfg.Search.Keyspace()
	cat := catalog.Default()

	svc := importer.New(
		characterrepo.New(store, keys, cat),
		searchrepo.New(store, keys),
		cat,
	).WithBatchSize(c.Int("batch-size")).WithReindex(c.Bool("reindex"))

	report, err := svc.Import(logpkg.ContextWithLogger(ctx, logger), records)
	if err != nil {
		return fmt.Errorf("import: %w", err)
	}

	logger.Info("Import finished",
		zap.String("file", path),
		zap.Int("read", len(records)),
		zap.Int("imported", report.Imported),
		zap.Int("rejected", len(report.Rejected)),
		zap.Bool("index_created", report.IndexCreated),
	)

	if c.Bool("strict") && len(report.Rejected) > 0 {
		return fmt.Errorf("import: %d of %d records rejected", len(report.Rejected), len(records))
	}
	return nil
}
