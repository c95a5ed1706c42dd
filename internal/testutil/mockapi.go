// Package testutil provides testing utilities for the wbdata client.
package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"sync"
)

// MockAPI is a configurable mock World Bank API server for testing. It
// serves the two-element [envelope, records] response shape, honors the
// page query parameter, and can drop connections to exercise retry logic.
type MockAPI struct {
	server   *httptest.Server
	mu       sync.Mutex
	handlers map[string]func(w http.ResponseWriter, r *http.Request)

	// connection failures remaining before the server answers again
	failRemaining int

	// Tracking
	RequestCount int
	LastParams   url.Values
}

// NewMockAPI creates a new mock API server.
func NewMockAPI() *MockAPI {
	mock := &MockAPI{
		handlers: make(map[string]func(w http.ResponseWriter, r *http.Request)),
	}

	mock.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mock.mu.Lock()
		if mock.failRemaining > 0 {
			mock.failRemaining--
			mock.mu.Unlock()
			// Drop the TCP connection so the client sees a transport error.
			hj, ok := w.(http.Hijacker)
			if !ok {
				panic("mock server: response writer does not support hijacking")
			}
			conn, _, err := hj.Hijack()
			if err == nil {
				conn.Close()
			}
			return
		}
		mock.RequestCount++
		mock.LastParams = r.URL.Query()
		handler, exists := mock.handlers[r.URL.Path]
		mock.mu.Unlock()

		if exists {
			handler(w, r)
			return
		}

		// Default: empty single-page result
		writeJSON(w, [2]any{
			map[string]any{"page": 1, "pages": 1, "per_page": "1000", "total": 0},
			[]map[string]any{},
		})
	}))

	return mock
}

// URL returns the base URL of the mock server.
func (m *MockAPI) URL() string {
	return m.server.URL
}

// Close shuts down the mock server.
func (m *MockAPI) Close() {
	m.server.Close()
}

// Reset clears tracking counters.
func (m *MockAPI) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RequestCount = 0
	m.LastParams = nil
}

// FailConnections makes the server drop the next n TCP connections before
// answering again. Dropped connections are not counted as requests.
func (m *MockAPI) FailConnections(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failRemaining = n
}

// SetHandler installs a custom handler for a path.
func (m *MockAPI) SetHandler(path string, handler func(w http.ResponseWriter, r *http.Request)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handlers[path] = handler
}

// SetBody makes a path return a fixed body with the given status.
func (m *MockAPI) SetBody(path string, status int, body string) {
	m.SetHandler(path, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(status)
		fmt.Fprint(w, body)
	})
}

// SetPages serves records for a path split across pages of pageSize each,
// honoring the page query parameter. lastUpdated, when non-empty, is
// reported in every envelope.
func (m *MockAPI) SetPages(path string, records []map[string]any, pageSize int, lastUpdated string) {
	if pageSize <= 0 {
		pageSize = 1000
	}
	pages := (len(records) + pageSize - 1) / pageSize
	if pages == 0 {
		pages = 1
	}

	m.SetHandler(path, func(w http.ResponseWriter, r *http.Request) {
		page := 1
		if p := r.URL.Query().Get("page"); p != "" {
			if n, err := strconv.Atoi(p); err == nil && n > 0 {
				page = n
			}
		}

		lo := (page - 1) * pageSize
		hi := lo + pageSize
		if lo > len(records) {
			lo = len(records)
		}
		if hi > len(records) {
			hi = len(records)
		}

		envelope := map[string]any{
			"page":     page,
			"pages":    pages,
			"per_page": strconv.Itoa(pageSize),
			"total":    len(records),
		}
		if lastUpdated != "" {
			envelope["lastupdated"] = lastUpdated
		}

		writeJSON(w, [2]any{envelope, records[lo:hi]})
	})
}

// SetAPIError makes a path return a remote error envelope with the given
// id, key, and value.
func (m *MockAPI) SetAPIError(path, id, key, value string) {
	m.SetBody(path, http.StatusOK, fmt.Sprintf(
		`[{"message":[{"id":%q,"key":%q,"value":%q}]}]`, id, key, value))
}

// GetRequestCount returns the number of answered requests.
func (m *MockAPI) GetRequestCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.RequestCount
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		panic(fmt.Sprintf("mock server: encode response: %v", err))
	}
}
