package service

import (
	"context"
	"io/fs"
	"log"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"reportforge/internal/domain"
	"reportforge/internal/port"
)

// BatchService extracts every document in a batch with bounded concurrency.
type BatchService struct {
	extractor port.RecordExtractor
	workers   int
}

// NewBatchService creates a BatchService. Workers below 1 fall back to 1.
func NewBatchService(extractor port.RecordExtractor, workers int) *BatchService {
	if workers < 1 {
		workers = 1
	}
	return &BatchService{extractor: extractor, workers: workers}
}

// DiscoverInputs walks dir and returns every .docx path in sorted order.
// Office lock files (~$ prefix) are skipped.
func (s *BatchService) DiscoverInputs(dir string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		name := d.Name()
		if strings.HasPrefix(name, "~$") {
			return nil
		}
		if strings.EqualFold(filepath.Ext(name), ".docx") {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, domain.ErrNoDocuments
	}
	sort.Strings(paths)
	return paths, nil
}

// Run extracts every input concurrently, preserving input order in the
// returned results. A per-file failure is recorded in its result and never
// aborts the batch; only context cancellation stops the run early.
func (s *BatchService) Run(ctx context.Context, paths []string) (*domain.BatchJob, []domain.FileResult, error) {
	job := &domain.BatchJob{
		ID:        uuid.NewString(),
		Total:     len(paths),
		StartedAt: time.Now(),
	}
	log.Printf("service.BatchService: job %s starting (%d files, %d workers)", job.ID, job.Total, s.workers)

	results := make([]domain.FileResult, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)

	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			rec, err := s.extractor.ExtractAll(path)
			results[i] = domain.FileResult{Path: path, Record: rec, Err: err}
			if err != nil {
				log.Printf("service.BatchService: job %s: %s failed: %v", job.ID, path, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return job, results, err
	}

	for i := range results {
		if results[i].Err != nil {
			job.Failed++
		} else {
			job.Succeeded++
		}
	}
	job.Duration = time.Since(job.StartedAt)
	log.Printf("service.BatchService: job %s done (%d ok, %d failed, %s)",
		job.ID, job.Succeeded, job.Failed, job.Duration.Round(time.Millisecond))
	return job, results, nil
}
