// Package constants holds shared tuning values.
package constants

const (
	// CHANNEL_SIZE is the buffer size of broker and subscription channels.
	CHANNEL_SIZE = 1024

	// SUBSCRIPTION_BUFFER is the per-subscriber event buffer. A subscriber
	// that falls this far behind starts dropping events (logged).
	SUBSCRIPTION_BUFFER = 64

	// REDIS_TIMEOUT is the default cache TTL in minutes.
	REDIS_TIMEOUT = 30

	// CACHE_WORKERS / CACHE_BUFFER size the async cache worker pool.
	CACHE_WORKERS = 4
	CACHE_BUFFER  = 256

	// DEFAULT_MAX_MEMBERS is applied when a group is created without an
	// explicit member cap.
	DEFAULT_MAX_MEMBERS = 50
)
