package observability

import "sync"

// Metrics provides basic in-memory counters for bot activity.
type Metrics struct {
	mu       sync.Mutex
	counters map[string]int64
}

// Counter keys recorded by the bot.
const (
	MetricMessagesScanned = "messages_scanned"
	MetricJumpCalls       = "jump_calls"
	MetricRescuesOpened   = "rescues_opened"
	MetricRescuesClosed   = "rescues_closed"
	MetricRescuesTrashed  = "rescues_trashed"
	MetricQuotesAppended  = "quotes_appended"
	MetricSyncSucceeded   = "sync_succeeded"
	MetricSyncFailed      = "sync_failed"
	MetricLookupCacheHit  = "systems_cache_hits"
	MetricLookupCacheMiss = "systems_cache_misses"
	MetricHTTPErrors      = "http_errors"
)

// NewMetrics initializes metrics storage.
func NewMetrics() *Metrics {
	return &Metrics{
		counters: make(map[string]int64),
	}
}

// Inc increments the named counter.
func (m *Metrics) Inc(key string) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counters[key]++
}

// Snapshot returns a copy of all counters.
func (m *Metrics) Snapshot() map[string]int64 {
	if m == nil {
		return map[string]int64{}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]int64, len(m.counters))
	for key, value := range m.counters {
		out[key] = value
	}
	return out
}
