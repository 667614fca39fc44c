package facesService

import (
	"context"
	"sync"
	"time"

	"FaceReporter/internal/entity"
	contextPkg "FaceReporter/pkg/context"
	"FaceReporter/pkg/log"

	"golang.org/x/sync/semaphore"
)

const DefaultDispatchConcurrency = 4

type IDispatcher interface {
	// Dispatch starts processing job in the background and returns at once.
	Dispatch(ctx context.Context, job entity.FileJob)
	// Wait blocks until every dispatched job has finished.
	Wait()
}

type dispatcher struct {
	service IFacesService
	sem     *semaphore.Weighted
	timeout time.Duration
	wg      sync.WaitGroup
}

// NewDispatcher runs jobs through service with at most concurrency pipelines
// in flight. Runs outlive the request that dispatched them; a positive
// timeout bounds each one.
func NewDispatcher(service IFacesService, concurrency int, timeout time.Duration) IDispatcher {
	if concurrency <= 0 {
		concurrency = DefaultDispatchConcurrency
	}
	return &dispatcher{
		service: service,
		sem:     semaphore.NewWeighted(int64(concurrency)),
		timeout: timeout,
	}
}

func (d *dispatcher) Dispatch(ctx context.Context, job entity.FileJob) {
	ctx = contextPkg.Detach(ctx)

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()

		if err := d.sem.Acquire(ctx, 1); err != nil {
			return
		}
		defer d.sem.Release(1)

		if d.timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, d.timeout)
			defer cancel()
		}

		if _, err := d.service.ProcessFile(ctx, job); err != nil {
			log.ErrorWithTraceID(log.Fields{
				"request_id": contextPkg.GetRequestID(ctx),
				"file_id":    job.File.ID,
				"channel":    job.Channel,
				"error":      err.Error(),
			}, "[dispatcher.Dispatch] face pipeline failed")
		}
	}()
}

func (d *dispatcher) Wait() {
	d.wg.Wait()
}
