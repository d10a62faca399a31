// Command reportforge extracts structured fields from a directory of .docx
// market reports and writes the catalog import spreadsheet.
// Usage: reportforge -in ./reports [-out ./out] [-format xlsx|csv|both] [-workers 4]
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"reportforge/internal/config"
	"reportforge/internal/export"
	"reportforge/internal/extract"
	"reportforge/internal/port"
	"reportforge/internal/service"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	inDir := flag.String("in", "", "directory containing .docx reports (required)")
	outDir := flag.String("out", "", "output directory (default from config)")
	format := flag.String("format", "", "output format: xlsx, csv or both (default from config)")
	workers := flag.Int("workers", 0, "concurrent extraction workers (default from config)")
	flag.Parse()

	if *inDir == "" {
		flag.Usage()
		return fmt.Errorf("missing required -in directory")
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if *outDir != "" {
		cfg.Export.OutputDir = *outDir
	}
	if *format != "" {
		cfg.Export.Format = *format
	}
	if *workers > 0 {
		cfg.Batch.Workers = *workers
	}
	switch cfg.Export.Format {
	case "xlsx", "csv", "both":
	default:
		return fmt.Errorf("unknown format %q (want xlsx, csv or both)", cfg.Export.Format)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	batch := service.NewBatchService(extract.NewExtractor(), cfg.Batch.Workers)
	paths, err := batch.DiscoverInputs(*inDir)
	if err != nil {
		return fmt.Errorf("discovering inputs in %s: %w", *inDir, err)
	}

	job, results, err := batch.Run(ctx, paths)
	if err != nil {
		return fmt.Errorf("running batch %s: %w", job.ID, err)
	}

	statics := export.Statics{
		Currency:        cfg.Export.Currency,
		SinglePrice:     cfg.Export.SinglePrice,
		CorporatePrice:  cfg.Export.CorporatePrice,
		EnterprisePrice: cfg.Export.EnterprisePrice,
		PageCountMin:    cfg.Export.PageCountMin,
		PageCountMax:    cfg.Export.PageCountMax,
		Status:          cfg.Export.Status,
		Segmentation:    cfg.Export.Segmentation,
		MetaKey:         cfg.Export.MetaKey,
		BaseYear:        cfg.Export.BaseYear,
		History:         cfg.Export.History,
	}
	var writer port.RecordWriter = export.NewExporter(
		cfg.Export.OutputDir, cfg.Export.Basename, cfg.Export.Format, statics)
	if err := writer.WriteResults(results); err != nil {
		return err
	}

	if job.Failed > 0 {
		return fmt.Errorf("%d of %d files failed extraction", job.Failed, job.Total)
	}
	return nil
}
