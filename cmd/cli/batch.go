package main

import (
	"context"

	"golang.org/x/sync/errgroup"

	"lead-digest/internal/digest"
	"lead-digest/internal/models"
)

// runBatch analyzes every URL with at most concurrency requests in flight.
// Records come back in input order; per-URL failures are recorded, not returned.
func runBatch(ctx context.Context, a analyzer, op digest.Op, urls []string, concurrency int) []models.BatchRecord {
	if concurrency < 1 {
		concurrency = 1
	}
	records := make([]models.BatchRecord, len(urls))

	var g errgroup.Group
	g.SetLimit(concurrency)
	for i, u := range urls {
		g.Go(func() error {
			rec := models.BatchRecord{URL: u}
			res, err := analyze(ctx, a, op, u)
			if err != nil {
				rec.Error = err.Error()
			} else {
				rec.Result = res
			}
			records[i] = rec
			return nil
		})
	}
	_ = g.Wait()
	return records
}
