// Package service implements the application use cases of the risk console.
package service

import (
	"context"
	"sync/atomic"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/resguardo/resguardo/internal/application/dto"
)

// bulkDeleteConcurrency caps the parallel delete requests of one bulk action.
const bulkDeleteConcurrency = 8

// runBulkDelete issues one delete per id concurrently and aggregates the
// outcome. There is no transactional guarantee across the batch: a partial
// failure leaves some rows deleted and others intact, and only the failure
// count is reported. No retries.
func runBulkDelete(ctx context.Context, ids []uuid.UUID, deleteOne func(context.Context, uuid.UUID) error) dto.BulkDeleteResult {
	var failed int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(bulkDeleteConcurrency)
	for _, id := range ids {
		id := id
		g.Go(func() error {
			if err := deleteOne(gctx, id); err != nil {
				atomic.AddInt64(&failed, 1)
			}
			// Failures are aggregated, never short-circuited.
			return nil
		})
	}
	_ = g.Wait()

	f := int(atomic.LoadInt64(&failed))
	return dto.BulkDeleteResult{
		Requested: len(ids),
		Deleted:   len(ids) - f,
		Failed:    f,
	}
}
