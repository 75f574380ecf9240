package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/matzehuels/depscope/pkg/cache"
)

func pageHandler(t *testing.T, pages map[int]page) http.HandlerFunc {
	t.Helper()
	return func(w http.ResponseWriter, r *http.Request) {
		n := 0
		fmt.Sscanf(r.URL.Query().Get("page"), "%d", &n)
		p, ok := pages[n]
		if !ok {
			http.NotFound(w, r)
			return
		}
		_ = json.NewEncoder(w).Encode(p)
	}
}

func TestClient_FetchAll(t *testing.T) {
	pages := map[int]page{
		1: {Total: 3, TotalPages: 2, Nodes: []*Node{
			{ID: "a", Name: "A"},
			{ID: "b", Name: "B"},
		}},
		2: {Total: 3, TotalPages: 2, Nodes: []*Node{
			{ID: "c", Name: "C"},
		}},
	}
	srv := httptest.NewServer(pageHandler(t, pages))
	defer srv.Close()

	c := NewClient(cache.NewNullCache(), Options{BaseURL: srv.URL, PageSize: 2, Workers: 4}, nil)
	set, err := c.FetchAll(context.Background(), false)
	if err != nil {
		t.Fatalf("FetchAll failed: %v", err)
	}

	if len(set) != 3 {
		t.Fatalf("fetched %d nodes, want 3", len(set))
	}
	for _, id := range []string{"a", "b", "c"} {
		if set[id] == nil {
			t.Errorf("missing node %s", id)
		}
	}
}

func TestClient_FetchAll_DropsFailedPages(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("page") == "2" {
			calls.Add(1)
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_ = json.NewEncoder(w).Encode(page{Total: 4, TotalPages: 2, Nodes: []*Node{
			{ID: "a"}, {ID: "b"},
		}})
	}))
	defer srv.Close()

	c := NewClient(cache.NewNullCache(), Options{BaseURL: srv.URL, PageSize: 2}, nil)
	set, err := c.FetchAll(context.Background(), false)
	if err != nil {
		t.Fatalf("FetchAll should tolerate dropped pages, got %v", err)
	}

	if len(set) != 2 {
		t.Errorf("partial catalog has %d nodes, want 2 from the surviving page", len(set))
	}
	if got := calls.Load(); got != 3 {
		t.Errorf("failed page retried %d times, want 3 attempts", got)
	}
}

func TestClient_FetchAll_FirstPageFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	c := NewClient(cache.NewNullCache(), Options{BaseURL: srv.URL}, nil)
	if _, err := c.FetchAll(context.Background(), false); err == nil {
		t.Fatal("first-page failure must be fatal")
	}
}

func TestClient_FetchAll_UsesCache(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		_ = json.NewEncoder(w).Encode(page{Total: 1, TotalPages: 1, Nodes: []*Node{{ID: "a"}}})
	}))
	defer srv.Close()

	backend, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	c := NewClient(backend, Options{BaseURL: srv.URL}, nil)

	for range 2 {
		if _, err := c.FetchAll(context.Background(), false); err != nil {
			t.Fatal(err)
		}
	}
	if got := hits.Load(); got != 1 {
		t.Errorf("server hit %d times, want 1 (second run served from cache)", got)
	}

	// refresh=true bypasses the cache.
	if _, err := c.FetchAll(context.Background(), true); err != nil {
		t.Fatal(err)
	}
	if got := hits.Load(); got != 2 {
		t.Errorf("server hit %d times after refresh, want 2", got)
	}
}
