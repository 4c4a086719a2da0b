// Package source reads compose manifests from disk or over HTTP.
//
// Local paths must end in .yaml or .yml. Inputs starting with http:// or
// https:// are downloaded; links to a file page on github.com are rewritten
// to raw.githubusercontent.com first so the raw YAML is fetched instead of
// the HTML page. Downloads go through a [cache.Cache] and transient failures
// are retried.
package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/excalidocker/excalidocker/pkg/buildinfo"
	"github.com/excalidocker/excalidocker/pkg/cache"
	errs "github.com/excalidocker/excalidocker/pkg/errors"
	"github.com/excalidocker/excalidocker/pkg/observability"
)

const (
	httpTimeout = 10 * time.Second

	// maxManifestSize caps the size of a downloaded manifest.
	maxManifestSize = 10 << 20
)

var (
	// ErrNotFound is returned when the remote host answers 404.
	ErrNotFound = errors.New("resource not found")

	// ErrTooLarge is returned when a remote manifest exceeds the size limit.
	ErrTooLarge = errors.New("manifest too large")
)

// Reader loads manifest bytes for a local path or URL.
type Reader struct {
	http     *http.Client
	cache    cache.Cache
	ttl      time.Duration
	attempts int
	delay    time.Duration
	logger   *log.Logger
}

// Option configures a [Reader].
type Option func(*Reader)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(r *Reader) { r.http = c }
}

// WithCache stores downloaded manifests in c for ttl.
func WithCache(c cache.Cache, ttl time.Duration) Option {
	return func(r *Reader) {
		r.cache = c
		r.ttl = ttl
	}
}

// WithRetry sets how often a transient failure is retried and the initial
// delay between attempts.
func WithRetry(attempts int, delay time.Duration) Option {
	return func(r *Reader) {
		r.attempts = attempts
		r.delay = delay
	}
}

// WithLogger sets the logger used for cache and retry diagnostics.
func WithLogger(l *log.Logger) Option {
	return func(r *Reader) { r.logger = l }
}

// NewReader creates a Reader. Without options it does not cache and retries
// remote failures three times starting at one second.
func NewReader(opts ...Option) *Reader {
	r := &Reader{
		http:     &http.Client{Timeout: httpTimeout},
		cache:    cache.NewNullCache(),
		ttl:      cache.DefaultManifestTTL,
		attempts: 3,
		delay:    time.Second,
		logger:   log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Read returns the manifest content for input, which is either a URL or a
// local file path.
func (r *Reader) Read(ctx context.Context, input string) ([]byte, error) {
	if errs.IsRemote(input) {
		return r.Fetch(ctx, input)
	}
	return ReadFile(input)
}

// ReadFile reads a local manifest after checking its extension.
func ReadFile(path string) ([]byte, error) {
	if err := errs.ValidateManifestPath(path); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, errs.Wrap(errs.ErrCodeFileNotFound, err, "file '%s' not found", path)
	}
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeFileRead, err, "failed to read file '%s'", path)
	}
	return data, nil
}

// Fetch downloads a remote manifest, consulting the cache first.
func (r *Reader) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	if err := errs.ValidateURL(rawURL); err != nil {
		return nil, err
	}
	url := RewriteGitHubURL(rawURL)
	key := cache.ManifestKey(url)

	if data, ok, err := r.cache.Get(ctx, key); err == nil && ok {
		r.logger.Debug("manifest cache hit", "url", url)
		observability.Cache().OnCacheHit(ctx, url)
		return data, nil
	}
	observability.Cache().OnCacheMiss(ctx, url)

	var data []byte
	err := cache.Retry(ctx, r.attempts, r.delay, func() error {
		var err error
		data, err = r.get(ctx, url)
		if err != nil && cache.IsRetryable(err) {
			r.logger.Debug("retrying manifest download", "url", url, "error", err)
		}
		return err
	})
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeRemoteFetch, err, "failed to read remote file '%s'", rawURL)
	}

	if err := r.cache.Set(ctx, key, data, r.ttl); err != nil {
		r.logger.Warn("failed to cache manifest", "url", url, "error", err)
	} else {
		observability.Cache().OnCacheSet(ctx, url, len(data))
	}
	return data, nil
}

func (r *Reader) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", buildinfo.UserAgent())

	hooks := observability.HTTP()
	host, path := req.URL.Host, req.URL.Path
	hooks.OnRequest(ctx, host, path)
	start := time.Now()

	resp, err := r.http.Do(req)
	if err != nil {
		hooks.OnError(ctx, host, path, err)
		return nil, cache.Retryable(fmt.Errorf("%w: %v", cache.ErrNetwork, err))
	}
	defer resp.Body.Close()
	hooks.OnResponse(ctx, host, path, resp.StatusCode, time.Since(start))

	if err := checkStatus(resp.StatusCode); err != nil {
		return nil, err
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxManifestSize+1))
	if err != nil {
		return nil, cache.Retryable(fmt.Errorf("%w: %v", cache.ErrNetwork, err))
	}
	if len(data) > maxManifestSize {
		return nil, ErrTooLarge
	}
	return data, nil
}

func checkStatus(code int) error {
	switch {
	case code == http.StatusOK:
		return nil
	case code == http.StatusNotFound:
		return ErrNotFound
	case code == http.StatusTooManyRequests || code >= 500:
		return cache.Retryable(fmt.Errorf("%w: status %d", cache.ErrNetwork, code))
	default:
		return fmt.Errorf("%w: status %d", cache.ErrNetwork, code)
	}
}

// RewriteGitHubURL turns a github.com file page link into the matching
// raw.githubusercontent.com link. Other URLs are returned unchanged.
func RewriteGitHubURL(url string) string {
	if !strings.Contains(url, "github.com") {
		return url
	}
	url = strings.ReplaceAll(url, "https://github.com/", "https://raw.githubusercontent.com/")
	return strings.ReplaceAll(url, "/blob/", "/")
}
