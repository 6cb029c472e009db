// Package redis provides the cache service used by the service layer for
// cache-aside reads and asynchronous invalidation.
package redis

// CacheService is the synchronous cache contract.
type CacheService interface {
	// Get returns the cached value, or an errorx CodeNotFound error when
	// the key is absent.
	Get(key string) (string, error)
	Set(key string, value string, expirationSeconds int) error
	Delete(key string) error
	DeleteByPattern(pattern string) error
	DeleteByPatterns(patterns []string) error
	Close() error
}

// AsyncCacheService adds fire-and-forget submission on top of the
// synchronous contract. Writes and invalidations that must not block a
// request path go through SubmitTask.
type AsyncCacheService interface {
	CacheService
	// SubmitTask enqueues fn on the worker pool. When the queue is full
	// the task runs inline so cache maintenance is never dropped.
	SubmitTask(fn func(cache CacheService))
}
