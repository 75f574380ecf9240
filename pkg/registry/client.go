package registry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/depscope/pkg/cache"
	"github.com/matzehuels/depscope/pkg/httputil"
)

const (
	httpTimeout     = 10 * time.Second
	defaultBaseURL  = "https://api.comfy.org"
	defaultPageSize = 100
	defaultWorkers  = 10
	defaultCacheTTL = 6 * time.Hour
)

var (
	// ErrNotFound is returned when a requested resource doesn't exist.
	ErrNotFound = errors.New("resource not found")

	// ErrNetwork is returned for HTTP failures (timeouts, connection errors, 5xx responses).
	ErrNetwork = errors.New("network error")
)

// Options configures a registry [Client]. Zero values pick the defaults.
type Options struct {
	BaseURL  string
	PageSize int
	Workers  int
	CacheTTL time.Duration
}

func (o Options) withDefaults() Options {
	if o.BaseURL == "" {
		o.BaseURL = defaultBaseURL
	}
	if o.PageSize <= 0 {
		o.PageSize = defaultPageSize
	}
	if o.Workers <= 0 {
		o.Workers = defaultWorkers
	}
	if o.CacheTTL <= 0 {
		o.CacheTTL = defaultCacheTTL
	}
	return o
}

// Client downloads the node catalog from the registry API.
//
// Page responses are cached in the configured backend and fetched with
// bounded retry. [Client.FetchAll] runs a fixed-size worker pool, one task
// per remote page; pages that exhaust their retries are dropped from the
// result rather than failing the whole download, so callers always receive
// a usable (possibly partial) catalog.
type Client struct {
	http   *http.Client
	cache  cache.Cache
	opts   Options
	logger *log.Logger
}

// NewClient creates a registry client with the given cache backend.
// Pass [cache.NewNullCache] to disable response caching.
func NewClient(backend cache.Cache, opts Options, logger *log.Logger) *Client {
	if logger == nil {
		logger = log.Default()
	}
	return &Client{
		http:   &http.Client{Timeout: httpTimeout},
		cache:  backend,
		opts:   opts.withDefaults(),
		logger: logger,
	}
}

// page is one page of the paginated node listing.
type page struct {
	Total      int     `json:"total"`
	TotalPages int     `json:"totalPages"`
	Page       int     `json:"page"`
	Nodes      []*Node `json:"nodes"`
}

// FetchAll downloads every page of the node catalog and merges the results
// into a Set keyed by node ID. If refresh is true the response cache is
// bypassed.
//
// The first page is fetched synchronously to learn the page count; the rest
// go through the worker pool. Only a first-page failure is fatal — failed
// later pages are logged and silently dropped, and the analysis layers make
// no distinction between a dropped page and a genuinely smaller catalog.
func (c *Client) FetchAll(ctx context.Context, refresh bool) (Set, error) {
	first, err := c.fetchPage(ctx, 1, refresh)
	if err != nil {
		return nil, fmt.Errorf("fetch page 1: %w", err)
	}

	pages := first.TotalPages
	if pages <= 0 && c.opts.PageSize > 0 {
		pages = (first.Total + c.opts.PageSize - 1) / c.opts.PageSize
	}

	set := make(Set, first.Total)
	merge(set, first.Nodes)
	if pages <= 1 {
		return set, nil
	}

	jobs := make(chan int, pages)
	results := make(chan *page, pages)
	var wg sync.WaitGroup

	for range c.opts.Workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for n := range jobs {
				p, err := c.fetchPage(ctx, n, refresh)
				if err != nil {
					c.logger.Warn("dropping page after retries", "page", n, "err", err)
					results <- nil
					continue
				}
				results <- p
			}
		}()
	}

	for n := 2; n <= pages; n++ {
		jobs <- n
	}
	close(jobs)
	wg.Wait()
	close(results)

	for p := range results {
		if p != nil {
			merge(set, p.Nodes)
		}
	}

	c.logger.Debug("registry fetch complete", "pages", pages, "nodes", len(set))
	return set, nil
}

// fetchPage retrieves one listing page, consulting the cache first.
func (c *Client) fetchPage(ctx context.Context, n int, refresh bool) (*page, error) {
	key := fmt.Sprintf("nodes:page:%d:limit:%d", n, c.opts.PageSize)

	if !refresh {
		if data, ok, _ := c.cache.Get(ctx, key); ok {
			var p page
			if err := json.Unmarshal(data, &p); err == nil {
				return &p, nil
			}
		}
	}

	var p page
	url := fmt.Sprintf("%s/nodes?page=%d&limit=%d", c.opts.BaseURL, n, c.opts.PageSize)
	err := httputil.RetryWithBackoff(ctx, func() error {
		return c.get(ctx, url, &p)
	})
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(&p); err == nil {
		_ = c.cache.Set(ctx, key, data, c.opts.CacheTTL)
	}
	return &p, nil
}

func (c *Client) get(ctx context.Context, url string, v any) error {
	body, err := c.doRequest(ctx, url)
	if err != nil {
		return err
	}
	defer body.Close()
	return json.NewDecoder(body).Decode(v)
}

func (c *Client) doRequest(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &httputil.RetryableError{Err: fmt.Errorf("%w: %v", ErrNetwork, err)}
	}

	if err := checkStatus(resp.StatusCode); err != nil {
		resp.Body.Close()
		return nil, err
	}
	return resp.Body, nil
}

func checkStatus(code int) error {
	switch {
	case code == http.StatusOK:
		return nil
	case code == http.StatusNotFound:
		return ErrNotFound
	case code >= 500:
		return &httputil.RetryableError{Err: fmt.Errorf("%w: status %d", ErrNetwork, code)}
	default:
		return fmt.Errorf("%w: status %d", ErrNetwork, code)
	}
}

func merge(set Set, nodes []*Node) {
	for _, n := range nodes {
		if n != nil && n.ID != "" {
			set[n.ID] = n
		}
	}
}
