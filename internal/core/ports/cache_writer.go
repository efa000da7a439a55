package ports

import "go.trai.ch/symres/internal/core/domain"

// CacheWriter mirrors remotely fetched symbol files into a local cache.
//
//go:generate go run go.uber.org/mock/mockgen -source=cache_writer.go -destination=mocks/mock_cache_writer.go -package=mocks
type CacheWriter interface {
	// Schedule queues a task and returns immediately.
	// Failures are logged and never reported to the caller.
	Schedule(task domain.CacheTask)

	// Wait blocks until every scheduled task has finished.
	Wait()
}
