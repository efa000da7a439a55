// Package mirror populates the local symbol cache with files found remotely.
package mirror

import (
	"context"
	"runtime"
	"sync"

	"go.trai.ch/symres/internal/core/domain"
	"go.trai.ch/symres/internal/core/ports"
	"golang.org/x/sync/semaphore"
	"golang.org/x/sync/singleflight"
)

// Writer implements ports.CacheWriter. Tasks run in background goroutines,
// at most workers copies at a time. Tasks targeting the same destination
// while one is in flight share its result.
type Writer struct {
	logger ports.Logger
	tracer ports.Tracer

	sem      *semaphore.Weighted
	inflight singleflight.Group
	wg       sync.WaitGroup
}

// NewWriter creates a Writer. workers < 1 selects runtime.NumCPU().
func NewWriter(logger ports.Logger, tracer ports.Tracer, workers int) *Writer {
	if workers < 1 {
		workers = runtime.NumCPU()
	}
	return &Writer{
		logger: logger,
		tracer: tracer,
		sem:    semaphore.NewWeighted(int64(workers)),
	}
}

// Schedule queues task and returns immediately. Failures are logged.
func (w *Writer) Schedule(task domain.CacheTask) {
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()

		// Tasks have no cancellation hook; they run to completion.
		ctx := context.Background()
		if err := w.sem.Acquire(ctx, 1); err != nil {
			return
		}
		defer w.sem.Release(1)

		_, dest := task.Destination()
		_, _, _ = w.inflight.Do(dest, func() (any, error) {
			w.run(ctx, task)
			return nil, nil
		})
	}()
}

// Wait blocks until every scheduled task has finished.
func (w *Writer) Wait() {
	w.wg.Wait()
}

func (w *Writer) run(ctx context.Context, task domain.CacheTask) {
	_, span := w.tracer.Start(ctx, "mirror.copy",
		ports.WithAttribute("file", task.FileName()),
		ports.WithAttribute("source", task.SourcePath),
	)
	defer span.End()

	copied, err := Populate(task)
	span.SetAttribute("copied", copied)
	if err != nil {
		span.RecordError(err)
		w.logger.Error(err)
	}
}
