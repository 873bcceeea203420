package fetcher_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rohmanhakim/aocinput/internal/cache"
	"github.com/rohmanhakim/aocinput/internal/fetcher"
	"github.com/rohmanhakim/aocinput/internal/metadata"
	"github.com/rohmanhakim/aocinput/internal/puzzle"
	"github.com/rohmanhakim/aocinput/pkg/failure"
)

// mockMetadataSink is a test double for metadata.MetadataSink
type mockMetadataSink struct {
	fetchEvents    []fetchEvent
	errorEvents    []errorEvent
	lookupEvents   []lookupEvent
	artifactEvents []artifactEvent
}

type artifactEvent struct {
	kind  metadata.ArtifactKind
	path  string
	attrs []metadata.Attribute
}

type fetchEvent struct {
	fetchUrl   string
	httpStatus int
	sizeByte   int
}

type errorEvent struct {
	packageName string
	action      string
	cause       metadata.ErrorCause
	details     string
	attrs       []metadata.Attribute
}

type lookupEvent struct {
	puzzleKey string
	hit       bool
	policy    string
}

func (m *mockMetadataSink) RecordError(
	observedAt time.Time,
	packageName string,
	action string,
	cause metadata.ErrorCause,
	details string,
	attrs []metadata.Attribute,
) {
	m.errorEvents = append(m.errorEvents, errorEvent{
		packageName: packageName,
		action:      action,
		cause:       cause,
		details:     details,
		attrs:       attrs,
	})
}

func (m *mockMetadataSink) RecordFetch(fetchUrl string, httpStatus int, duration time.Duration, sizeByte int) {
	m.fetchEvents = append(m.fetchEvents, fetchEvent{
		fetchUrl:   fetchUrl,
		httpStatus: httpStatus,
		sizeByte:   sizeByte,
	})
}

func (m *mockMetadataSink) RecordCacheLookup(puzzleKey string, hit bool, policy string) {
	m.lookupEvents = append(m.lookupEvents, lookupEvent{puzzleKey: puzzleKey, hit: hit, policy: policy})
}

func (m *mockMetadataSink) RecordArtifact(kind metadata.ArtifactKind, path string, content []byte, attrs []metadata.Attribute) {
	m.artifactEvents = append(m.artifactEvents, artifactEvent{kind: kind, path: path, attrs: attrs})
}

func (m *mockMetadataSink) RecordSubmission(puzzleKey string, part int, outcome string, duration time.Duration) {
}

// inputServer answers every request with body and status, counting hits.
type inputServer struct {
	*httptest.Server
	hits       atomic.Int32
	lastCookie atomic.Value
	lastPath   atomic.Value
	lastUA     atomic.Value
}

func newInputServer(t *testing.T, status int, body string) *inputServer {
	t.Helper()
	s := &inputServer{}
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.hits.Add(1)
		s.lastCookie.Store(r.Header.Get("Cookie"))
		s.lastPath.Store(r.URL.Path)
		s.lastUA.Store(r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(s.Close)
	return s
}

func newTestFetcher(server *inputServer, sink metadata.MetadataSink, c cache.Cache) *fetcher.InputFetcher {
	f := fetcher.NewInputFetcherWithCache(sink, puzzle.Session("test-session"), c)
	f.Init(server.Client(), server.URL, "aocinput-test")
	return f
}

// failingCache reads like an empty cache and fails every write.
type failingCache struct{}

func (failingCache) Read(context.Context, puzzle.Key) (string, bool) { return "", false }

func (failingCache) Write(_ context.Context, key puzzle.Key, _ string) failure.ClassifiedError {
	return &cache.CacheError{Cause: cache.ErrCauseWriteFailure, Message: "disk full", Key: key}
}

// artifactsOfKind returns the paths recorded for kind, in order.
func (m *mockMetadataSink) artifactsOfKind(kind metadata.ArtifactKind) []string {
	var paths []string
	for _, e := range m.artifactEvents {
		if e.kind == kind {
			paths = append(paths, e.path)
		}
	}
	return paths
}
