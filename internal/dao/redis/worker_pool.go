package redis

import (
	"juntos_server/pkg/constants"

	"go.uber.org/zap"
)

// asyncCacheService layers a fixed worker pool over a CacheService so
// request handlers can hand off cache maintenance without waiting on it.
type asyncCacheService struct {
	CacheService
	tasks chan func(cache CacheService)
}

// NewAsyncCacheService starts the worker pool and returns the async
// wrapper.
func NewAsyncCacheService(cache CacheService) AsyncCacheService {
	s := &asyncCacheService{
		CacheService: cache,
		tasks:        make(chan func(cache CacheService), constants.CACHE_BUFFER),
	}
	for i := 0; i < constants.CACHE_WORKERS; i++ {
		go s.startWorker(i)
	}
	return s
}

// startWorker drains the task queue. A panic in a task is logged and the
// worker restarts itself so the pool never shrinks.
func (s *asyncCacheService) startWorker(id int) {
	defer func() {
		if r := recover(); r != nil {
			zap.L().Error("cache worker panic, restarting", zap.Int("worker", id), zap.Any("panic", r))
			go s.startWorker(id)
		}
	}()
	for task := range s.tasks {
		task(s.CacheService)
	}
}

// SubmitTask enqueues fn. When the queue is saturated the task degrades
// to a synchronous call in the caller's goroutine rather than being lost.
func (s *asyncCacheService) SubmitTask(fn func(cache CacheService)) {
	select {
	case s.tasks <- fn:
	default:
		zap.L().Warn("cache task queue full, running inline")
		fn(s.CacheService)
	}
}
