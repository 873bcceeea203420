package metadata

import (
	"context"
	"log/slog"
	"time"

	"github.com/rohmanhakim/aocinput/pkg/hashutil"
)

/*
Metadata Collected
- Fetch timings and HTTP status codes
- Cache hits and misses per puzzle key
- Content hashes of stored inputs (never the input itself)
- Classified submission outcomes

Metadata is write-only.
No component may read metadata to influence fetch, cache or submit decisions.
*/

type MetadataSink interface {
	RecordError(
		observedAt time.Time,
		packageName string,
		action string,
		cause ErrorCause,
		details string,
		attrs []Attribute,
	)

	RecordFetch(
		fetchUrl string,
		httpStatus int,
		duration time.Duration,
		sizeByte int,
	)

	RecordCacheLookup(puzzleKey string, hit bool, policy string)

	RecordArtifact(kind ArtifactKind, path string, content []byte, attrs []Attribute)

	RecordSubmission(
		puzzleKey string,
		part int,
		outcome string,
		duration time.Duration,
	)
}

/*
Recorder writes each event as one structured slog record.
It must not:
- perform I/O decisions
- affect control flow
Events are emitted synchronously in call order.
*/
type Recorder struct {
	logger   *slog.Logger
	hashAlgo hashutil.HashAlgo
}

func NewRecorder(logger *slog.Logger, hashAlgo hashutil.HashAlgo) *Recorder {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if hashAlgo == "" {
		hashAlgo = hashutil.HashAlgoBLAKE3
	}
	return &Recorder{
		logger:   logger,
		hashAlgo: hashAlgo,
	}
}

func (r *Recorder) RecordError(
	observedAt time.Time,
	packageName string,
	action string,
	cause ErrorCause,
	details string,
	attrs []Attribute,
) {
	args := []slog.Attr{
		slog.Time("observed_at", observedAt),
		slog.String("package", packageName),
		slog.String("action", action),
		slog.String("cause", cause.String()),
		slog.String("details", details),
	}
	args = append(args, toSlogAttrs(attrs)...)
	r.logger.LogAttrs(context.Background(), slog.LevelWarn, "error", args...)
}

func (r *Recorder) RecordFetch(
	fetchUrl string,
	httpStatus int,
	duration time.Duration,
	sizeByte int,
) {
	r.logger.LogAttrs(context.Background(), slog.LevelDebug, "fetch",
		slog.String(string(AttrURL), fetchUrl),
		slog.Int(string(AttrHTTPStatus), httpStatus),
		slog.Duration("duration", duration),
		slog.Int("size_byte", sizeByte),
	)
}

func (r *Recorder) RecordCacheLookup(puzzleKey string, hit bool, policy string) {
	r.logger.LogAttrs(context.Background(), slog.LevelDebug, "cache lookup",
		slog.String(string(AttrPuzzle), puzzleKey),
		slog.Bool("hit", hit),
		slog.String(string(AttrPolicy), policy),
	)
}

// RecordArtifact logs a short content hash in place of the content.
func (r *Recorder) RecordArtifact(kind ArtifactKind, path string, content []byte, attrs []Attribute) {
	args := []slog.Attr{
		slog.String("kind", string(kind)),
		slog.String(string(AttrWritePath), path),
		slog.Int("size_byte", len(content)),
	}
	if sum, err := hashutil.ShortHash(content, r.hashAlgo, 12); err == nil {
		args = append(args, slog.String("content_hash", sum))
	}
	args = append(args, toSlogAttrs(attrs)...)
	r.logger.LogAttrs(context.Background(), slog.LevelDebug, "artifact", args...)
}

func (r *Recorder) RecordSubmission(
	puzzleKey string,
	part int,
	outcome string,
	duration time.Duration,
) {
	r.logger.LogAttrs(context.Background(), slog.LevelInfo, "submission",
		slog.String(string(AttrPuzzle), puzzleKey),
		slog.Int(string(AttrPart), part),
		slog.String("outcome", outcome),
		slog.Duration("duration", duration),
	)
}

func toSlogAttrs(attrs []Attribute) []slog.Attr {
	out := make([]slog.Attr, 0, len(attrs))
	for _, a := range attrs {
		out = append(out, slog.String(string(a.Key), a.Value))
	}
	return out
}

// NoopSink, struct that implements MetadataSink but does nothing.
// Callers (or tests) decide whether to inject a Recorder or a NoopSink,
// which keeps metadata orthogonal to behavior.
type NoopSink struct{}

func (n *NoopSink) RecordError(
	observedAt time.Time,
	packageName string,
	action string,
	cause ErrorCause,
	details string,
	attrs []Attribute,
) {
}

func (n *NoopSink) RecordFetch(fetchUrl string, httpStatus int, duration time.Duration, sizeByte int) {
}

func (n *NoopSink) RecordCacheLookup(puzzleKey string, hit bool, policy string) {}

func (n *NoopSink) RecordArtifact(kind ArtifactKind, path string, content []byte, attrs []Attribute) {
}

func (n *NoopSink) RecordSubmission(puzzleKey string, part int, outcome string, duration time.Duration) {
}
