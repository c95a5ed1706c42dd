package client

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/rogomes/wbdata/internal/testutil"
	"github.com/rogomes/wbdata/pkg/cache"
)

func newTestStore(t *testing.T) *cache.Store {
	t.Helper()
	backend, err := cache.NewFileBackend(filepath.Join(t.TempDir(), "responses.json"))
	if err != nil {
		t.Fatal(err)
	}
	store := cache.NewStore(backend, zerolog.Nop())
	store.Load(context.Background())
	return store
}

func TestClient_GetPage_CacheMissThenHit(t *testing.T) {
	mock := testutil.NewMockAPI()
	defer mock.Close()
	mock.SetBody("/countries", 200, `[{"page":1,"pages":1},[{"id":"BRA"}]]`)

	store := newTestStore(t)
	c := New(store, DefaultConfig())
	ctx := context.Background()
	url := mock.URL() + "/countries"
	params := map[string]string{"format": "json"}

	page, err := c.GetPage(ctx, url, params, true)
	if err != nil {
		t.Fatalf("GetPage() error = %v", err)
	}
	if !strings.Contains(string(page), `"BRA"`) {
		t.Errorf("GetPage() = %s, want body with BRA", page)
	}
	if mock.GetRequestCount() != 1 {
		t.Fatalf("request count = %d, want 1", mock.GetRequestCount())
	}
	if !store.Contains(cache.Key{URL: url, Params: params}) {
		t.Error("cache not populated on miss")
	}

	// Second call is served from cache without touching the network
	if _, err := c.GetPage(ctx, url, params, true); err != nil {
		t.Fatalf("GetPage() second call error = %v", err)
	}
	if mock.GetRequestCount() != 1 {
		t.Errorf("request count after cache hit = %d, want 1", mock.GetRequestCount())
	}
}

func TestClient_GetPage_CacheBypass(t *testing.T) {
	mock := testutil.NewMockAPI()
	defer mock.Close()
	mock.SetBody("/countries", 200, `[{"page":1,"pages":1},[]]`)

	store := newTestStore(t)
	c := New(store, DefaultConfig())
	ctx := context.Background()
	url := mock.URL() + "/countries"

	for i := 0; i < 2; i++ {
		if _, err := c.GetPage(ctx, url, nil, false); err != nil {
			t.Fatalf("GetPage() call %d error = %v", i+1, err)
		}
	}

	if mock.GetRequestCount() != 2 {
		t.Errorf("request count = %d, want 2 (no cache reads)", mock.GetRequestCount())
	}
	if store.Len() != 0 {
		t.Errorf("store has %d entries after bypassed calls, want 0", store.Len())
	}
}

func TestClient_GetPage_MalformedBody(t *testing.T) {
	mock := testutil.NewMockAPI()
	defer mock.Close()
	mock.SetBody("/countries", 200, `this is not json`)

	c := New(newTestStore(t), DefaultConfig())

	_, err := c.GetPage(context.Background(), mock.URL()+"/countries", nil, true)
	if err == nil {
		t.Fatal("GetPage() on malformed body returned nil error")
	}
	if !strings.Contains(err.Error(), "parse response") {
		t.Errorf("error %q does not name the parse step", err)
	}
}

// failingBackend accepts no writes, simulating an unwritable cache location.
type failingBackend struct{}

func (failingBackend) ReadAll(context.Context) ([]byte, error)  { return nil, cache.ErrNoSnapshot }
func (failingBackend) WriteAll(context.Context, []byte) error   { return errors.New("read-only filesystem") }

func TestClient_GetPage_CacheWriteFailureIsNonFatal(t *testing.T) {
	mock := testutil.NewMockAPI()
	defer mock.Close()
	mock.SetBody("/countries", 200, `[{"page":1,"pages":1},[]]`)

	store := cache.NewStore(failingBackend{}, zerolog.Nop())
	store.Load(context.Background())
	c := New(store, DefaultConfig())

	page, err := c.GetPage(context.Background(), mock.URL()+"/countries", nil, true)
	if err != nil {
		t.Fatalf("GetPage() error = %v, want nil despite cache write failure", err)
	}
	if len(page) == 0 {
		t.Error("GetPage() returned empty page")
	}
}

func TestClient_GetPage_NilStore(t *testing.T) {
	mock := testutil.NewMockAPI()
	defer mock.Close()
	mock.SetBody("/countries", 200, `[{"page":1,"pages":1},[]]`)

	c := New(nil, DefaultConfig())
	if _, err := c.GetPage(context.Background(), mock.URL()+"/countries", nil, true); err != nil {
		t.Fatalf("GetPage() with nil store error = %v", err)
	}
}
