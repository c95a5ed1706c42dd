// Package cache provides the persistent response cache for World Bank API
// queries: a time-bounded key-value store loaded fully into memory at
// startup and rewritten as one snapshot on every store.
//
// Entries expire after seven calendar days, checked only when the snapshot
// is loaded. An entry that ages past the threshold inside a long-running
// process is still served until the next load; the staleness window is
// bounded by process lifetime against a multi-day TTL.
//
// # Basic Usage
//
//	backend, err := cache.NewFileBackend(filepath.Join(dir, "responses.json"))
//	if err != nil {
//		return err
//	}
//
//	store := cache.NewStore(backend, logger)
//	store.Load(ctx)
//
//	key := cache.Key{
//		URL:    "https://api.worldbank.org/v2/countries",
//		Params: map[string]string{"format": "json"},
//	}
//	if body, ok := store.Get(key); ok {
//		// cache hit
//	}
//
// # Backends
//
// The snapshot is an opaque byte blob behind the Backend interface. The
// default FileBackend keeps it in a single file, replaced atomically via a
// temp-file rename. RedisBackend keeps it under a single Redis key, so
// several short-lived processes on one host can share the same cache.
//
// The store is not safe for concurrent use; callers own it from a single
// goroutine. Concurrent writers would race on the full-snapshot rewrite
// (last write wins).
package cache
