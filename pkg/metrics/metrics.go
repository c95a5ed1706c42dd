// Package metrics documents the Prometheus metrics exported by the wbdata
// client. The metrics themselves are defined next to the code that drives
// them (pkg/client, pkg/cache, pkg/pagination) to avoid circular imports;
// this package holds the registry reference and the reference list.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Registry is the Prometheus registry used by the wbdata client. All
// metrics register themselves via promauto in their defining packages.
var Registry = prometheus.DefaultRegisterer

// Request metrics (pkg/client):
//   - wb_requests_total{status} (Counter): API requests by HTTP status
//   - wb_request_duration_seconds (Histogram): request duration, retries included
//   - wb_retries_total (Counter): connection retry attempts
//   - wb_retry_exhausted_total (Counter): requests that used up all attempts
//
// Cache metrics (pkg/cache):
//   - wb_cache_hits_total (Counter): lookups served from memory
//   - wb_cache_misses_total (Counter): lookups that went to the network
//   - wb_cache_snapshot_bytes (Gauge): size of the last persisted snapshot
//   - wb_cache_errors_total{operation} (Counter): load/sync failures
//
// Pagination metrics (pkg/pagination):
//   - wb_pages_fetched_total (Counter): result pages processed
//
// Example queries:
//
//	# Cache hit rate
//	rate(wb_cache_hits_total[5m]) /
//	(rate(wb_cache_hits_total[5m]) + rate(wb_cache_misses_total[5m]))
//
//	# Share of requests that needed a retry
//	rate(wb_retries_total[5m]) / rate(wb_requests_total[5m])
