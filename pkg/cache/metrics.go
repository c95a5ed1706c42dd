package cache

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CacheHits tracks lookups served from the in-memory store
	CacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "wb_cache_hits_total",
			Help: "Total number of response cache hits",
		},
	)

	// CacheMisses tracks lookups that fell through to the network
	CacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "wb_cache_misses_total",
			Help: "Total number of response cache misses",
		},
	)

	// CacheSnapshotBytes tracks the size of the last persisted snapshot
	CacheSnapshotBytes = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "wb_cache_snapshot_bytes",
			Help: "Size of the last persisted cache snapshot in bytes",
		},
	)

	// CacheErrors tracks cache operation errors
	CacheErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wb_cache_errors_total",
			Help: "Total number of cache operation errors",
		},
		[]string{"operation"}, // "load", "sync"
	)
)
