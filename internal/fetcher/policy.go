package fetcher

// HitPolicy decides what GetInputWithPolicy does when the cache already
// holds an entry for the requested key.
type HitPolicy int

const (
	// HitReturnCached serves the entry without touching the network.
	HitReturnCached HitPolicy = iota
	// HitOverwrite ignores the entry, refetches and stores the new text.
	HitOverwrite
	// HitError fails with ErrCauseCacheCollision, for callers that must
	// not clobber what is already there.
	HitError
)

func (p HitPolicy) String() string {
	switch p {
	case HitReturnCached:
		return "return_cached"
	case HitOverwrite:
		return "overwrite"
	case HitError:
		return "error_on_hit"
	default:
		return "unknown"
	}
}
