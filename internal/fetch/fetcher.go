// Package fetch retrieves and normalizes deputy rosters from the registered
// JSON sources.
package fetch

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/ppiankov/deputes/internal/cache"
	"github.com/ppiankov/deputes/internal/dataset"
	"github.com/ppiankov/deputes/internal/model"
	"github.com/ppiankov/deputes/internal/source"
	"github.com/ppiankov/deputes/internal/util"
)

// Fetcher issues one bounded request per source and converts the response
// into a Dataset. All failure modes surface as typed errors; nothing panics
// past this boundary.
type Fetcher struct {
	httpClient *http.Client
	userAgent  string
	maxBytes   int64
	cache      cache.Cache
	cacheTTL   time.Duration
	robots     *util.RobotsChecker
}

// NewFetcher creates a Fetcher from the HTTP configuration. The cache may be
// nil to force fresh fetches.
func NewFetcher(cfg model.HTTPConfig, responseCache cache.Cache, cacheTTL time.Duration) *Fetcher {
	transport := &http.Transport{
		Proxy: util.NewProxyFunc(cfg.HTTPProxy, cfg.HTTPSProxy),
	}
	if cfg.InsecureTLS {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} // #nosec G402 -- opt-in flag
	}

	return &Fetcher{
		httpClient: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: transport,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return fmt.Errorf("stopped after 3 redirects")
				}
				return nil
			},
		},
		userAgent: cfg.UserAgent,
		maxBytes:  cfg.MaxBodyBytes,
		cache:     responseCache,
		cacheTTL:  cacheTTL,
		robots:    util.NewRobotsChecker(util.NormalizeUserAgent(cfg.UserAgent), cfg.Timeout),
	}
}

// FetchSource retrieves one source and normalizes its response. Returns a
// *RetrievalError for network failures and a *source.SchemaError when the
// response does not have the expected shape.
func (f *Fetcher) FetchSource(ctx context.Context, src source.Source) (dataset.Dataset, error) {
	body, err := f.fetchBody(ctx, src.Name, src.URL)
	if err != nil {
		return nil, err
	}

	d, err := source.Normalize(body, src)
	if err != nil {
		// A cached body that no longer normalizes should not shadow the
		// upstream on the next run.
		if f.cache != nil {
			_ = f.cache.Delete(cache.Key(src.URL))
		}
		return nil, err
	}

	return d, nil
}

// detailBaseURL is a package var so tests can point detail lookups at a fake
// server.
var detailBaseURL = "https://www.nosdeputes.fr"

// FetchDetail retrieves one deputy's detail record by slug
// (e.g. "emmanuel-macron"). Detail pages sit on ordinary site paths, so the
// robots.txt policy is honored here.
func (f *Fetcher) FetchDetail(ctx context.Context, slug string) (dataset.Record, error) {
	url := fmt.Sprintf("%s/%s/json", detailBaseURL, slug)

	if !f.robots.IsAllowed(ctx, url) {
		return nil, &RetrievalError{Source: slug, URL: url, Err: fmt.Errorf("disallowed by robots.txt")}
	}

	body, err := f.fetchBody(ctx, slug, url)
	if err != nil {
		return nil, err
	}

	src := source.Source{Name: slug, CollectionKey: "depute"}
	return source.NormalizeSingle(body, src)
}

func (f *Fetcher) fetchBody(ctx context.Context, name, url string) ([]byte, error) {
	if f.cache != nil {
		if body, found := f.cache.Get(cache.Key(url)); found {
			return body, nil
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &RetrievalError{Source: name, URL: url, Err: fmt.Errorf("create request: %w", err)}
	}

	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, &RetrievalError{Source: name, URL: url, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &RetrievalError{Source: name, URL: url, Err: fmt.Errorf("unexpected status: %d %s", resp.StatusCode, resp.Status)}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes))
	if err != nil {
		return nil, &RetrievalError{Source: name, URL: url, Err: fmt.Errorf("read body: %w", err)}
	}

	if f.cache != nil {
		_ = f.cache.Set(cache.Key(url), body, f.cacheTTL)
	}

	return body, nil
}
