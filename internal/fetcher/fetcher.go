package fetcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rohmanhakim/aocinput/internal/cache"
	"github.com/rohmanhakim/aocinput/internal/metadata"
	"github.com/rohmanhakim/aocinput/internal/puzzle"
	"github.com/rohmanhakim/aocinput/pkg/failure"
)

/*
Responsibilities

- Decide per key between the cache and the network
- Perform the authenticated input request
- Store fetched input in the cache, best effort

Fetch Semantics

- A cache hit under HitReturnCached never reaches the network
- A failed cache write never fails the fetch; the input is still returned
- The "differs by user" login page is an auth failure, never input
- Nothing is retried
*/

const (
	DefaultBaseURL   = "https://adventofcode.com"
	DefaultUserAgent = "github.com/rohmanhakim/aocinput"

	// Served in place of the input when the session is not accepted.
	authFailureMarker = "Puzzle inputs differ by user"
)

type InputFetcher struct {
	session      puzzle.Session
	cache        cache.Cache
	metadataSink metadata.MetadataSink
	httpClient   *http.Client
	baseURL      string
	userAgent    string
}

// NewInputFetcher builds a fetcher without caching.
func NewInputFetcher(
	metadataSink metadata.MetadataSink,
	session puzzle.Session,
) *InputFetcher {
	return NewInputFetcherWithCache(metadataSink, session, cache.NewNoopCache())
}

// NewInputFetcherWithMemoryCache builds a fetcher backed by a fresh MemoryCache.
func NewInputFetcherWithMemoryCache(
	metadataSink metadata.MetadataSink,
	session puzzle.Session,
	policy cache.ConflictPolicy,
) *InputFetcher {
	return NewInputFetcherWithCache(metadataSink, session, cache.NewMemoryCache(policy))
}

func NewInputFetcherWithCache(
	metadataSink metadata.MetadataSink,
	session puzzle.Session,
	c cache.Cache,
) *InputFetcher {
	if c == nil {
		c = cache.NewNoopCache()
	}
	return &InputFetcher{
		session:      session,
		cache:        c,
		metadataSink: metadataSink,
		httpClient:   &http.Client{Timeout: 30 * time.Second},
		baseURL:      DefaultBaseURL,
		userAgent:    DefaultUserAgent,
	}
}

// Init overrides the transport settings. Empty values keep the defaults.
func (f *InputFetcher) Init(httpClient *http.Client, baseURL string, userAgent string) {
	if httpClient != nil {
		f.httpClient = httpClient
	}
	if baseURL != "" {
		f.baseURL = strings.TrimRight(baseURL, "/")
	}
	if userAgent != "" {
		f.userAgent = userAgent
	}
}

// Cache returns the backend the fetcher reads and writes.
func (f *InputFetcher) Cache() cache.Cache {
	return f.cache
}

// GetInput is GetInputWithPolicy with HitReturnCached.
func (f *InputFetcher) GetInput(ctx context.Context, key puzzle.Key) (string, failure.ClassifiedError) {
	return f.GetInputWithPolicy(ctx, key, HitReturnCached)
}

func (f *InputFetcher) GetInputWithPolicy(
	ctx context.Context,
	key puzzle.Key,
	policy HitPolicy,
) (string, failure.ClassifiedError) {
	callerMethod := "InputFetcher.GetInput"

	cached, hit := f.cache.Read(ctx, key)
	f.metadataSink.RecordCacheLookup(key.String(), hit, policy.String())

	if hit {
		switch policy {
		case HitReturnCached:
			return cached, nil
		case HitError:
			err := &FetchError{
				Message:   "an entry already exists and the hit policy forbids replacing it",
				Retryable: false,
				Cause:     ErrCauseCacheCollision,
				Key:       key,
			}
			f.recordFetchError(callerMethod, key, err)
			return "", err
		}
	}

	input, err := f.fetch(ctx, key)
	if err != nil {
		f.recordFetchError(callerMethod, key, err)
		return "", err
	}
	f.metadataSink.RecordArtifact(
		metadata.ArtifactInput,
		f.inputURL(key),
		[]byte(input),
		[]metadata.Attribute{metadata.NewAttr(metadata.AttrPuzzle, key.String())},
	)

	f.store(ctx, key, input)
	return input, nil
}

// store writes input to the cache. A failure is recorded and dropped:
// losing a cache write must not cost the caller the input.
func (f *InputFetcher) store(ctx context.Context, key puzzle.Key, input string) {
	attrs := []metadata.Attribute{
		metadata.NewAttr(metadata.AttrPuzzle, key.String()),
		metadata.NewAttr(metadata.AttrBackend, cache.BackendName(f.cache)),
	}

	writeErr := f.cache.Write(ctx, key, input)
	if writeErr == nil {
		f.metadataSink.RecordArtifact(metadata.ArtifactCacheEntry, key.String(), []byte(input), attrs)
		return
	}

	cause := metadata.CauseStorageFailure
	var cacheErr *cache.CacheError
	if errors.As(writeErr, &cacheErr) {
		cause = cache.MapCacheErrorToMetadataCause(cacheErr)
	}
	f.metadataSink.RecordError(
		time.Now(),
		"fetcher",
		"InputFetcher.store",
		cause,
		writeErr.Error(),
		attrs,
	)
}

func (f *InputFetcher) inputURL(key puzzle.Key) string {
	return fmt.Sprintf("%s/%d/day/%d/input", f.baseURL, key.Year, key.Day)
}

func (f *InputFetcher) fetch(ctx context.Context, key puzzle.Key) (string, *FetchError) {
	fetchUrl := f.inputURL(key)
	startTime := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fetchUrl, nil)
	if err != nil {
		return "", &FetchError{
			Message:   fmt.Sprintf("failed to create request: %v", err),
			Retryable: false,
			Cause:     ErrCauseNetworkFailure,
			Key:       key,
		}
	}
	req.Header.Set("Cookie", "session="+f.session.String())
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return "", &FetchError{
			Message:   fmt.Sprintf("request failed: %v", err),
			Retryable: true,
			Cause:     ErrCauseNetworkFailure,
			Key:       key,
		}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	f.metadataSink.RecordFetch(fetchUrl, resp.StatusCode, time.Since(startTime), len(body))
	if err != nil {
		return "", &FetchError{
			Message:   fmt.Sprintf("failed to read response body: %v", err),
			Retryable: true,
			Cause:     ErrCauseReadResponseBodyError,
			Key:       key,
		}
	}

	text := string(body)

	// The login page can come back with any status, so it is checked first.
	if strings.Contains(text, authFailureMarker) {
		return "", &FetchError{
			Message:   "could not authenticate, check the session token",
			Retryable: false,
			Cause:     ErrCauseAuthFailure,
			Key:       key,
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &FetchError{
			Message:   fmt.Sprintf("status %d: %s", resp.StatusCode, firstLine(text)),
			Retryable: resp.StatusCode >= 500,
			Cause:     ErrCauseUnexpectedStatus,
			Key:       key,
		}
	}

	return text, nil
}

func (f *InputFetcher) recordFetchError(callerMethod string, key puzzle.Key, err *FetchError) {
	f.metadataSink.RecordError(
		time.Now(),
		"fetcher",
		callerMethod,
		mapFetchErrorToMetadataCause(err),
		err.Error(),
		[]metadata.Attribute{
			metadata.NewAttr(metadata.AttrPuzzle, key.String()),
			metadata.NewAttr(metadata.AttrURL, f.inputURL(key)),
		},
	)
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
