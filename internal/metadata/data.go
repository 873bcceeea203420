package metadata

/*
	ErrorCause is a closed, canonical classification used exclusively for
	observability (logging and reporting).

	Rules:
	 - ErrorCause MUST NOT influence control flow.
	 - Packages MAY map their local errors to ErrorCause,
	   but MUST NOT invent new meanings.
	 - ErrorCause does not encode severity.

If a failure does not clearly match a defined cause, CauseUnknown MUST be used.
*/
type ErrorCause int

/*
Canonical ErrorCause Table

# CauseUnknown
  - Safe fallback for anything unclassified.

# CauseNetworkFailure
  - Transport failures: DNS, connection resets, timeouts, truncated bodies.

# CauseAuthFailure
  - The site did not accept the session token.

# CausePolicyDisallow
  - A caller-chosen policy refused the operation, e.g. an existing cache
    entry under a "don't clobber" fetch.

# CauseContentInvalid
  - A response arrived but was not what the endpoint should return,
    e.g. a non-2xx status page instead of puzzle input.

# CauseStorageFailure
  - Persisting a cache entry failed.
*/
const (
	CauseUnknown ErrorCause = iota
	CauseNetworkFailure
	CauseAuthFailure
	CausePolicyDisallow
	CauseContentInvalid
	CauseStorageFailure
)

func (c ErrorCause) String() string {
	switch c {
	case CauseNetworkFailure:
		return "network_failure"
	case CauseAuthFailure:
		return "auth_failure"
	case CausePolicyDisallow:
		return "policy_disallow"
	case CauseContentInvalid:
		return "content_invalid"
	case CauseStorageFailure:
		return "storage_failure"
	default:
		return "unknown"
	}
}

type ArtifactKind string

const (
	ArtifactInput      ArtifactKind = "input"
	ArtifactCacheEntry ArtifactKind = "cache_entry"
)

type Attribute struct {
	Key   AttributeKey
	Value string
}

func NewAttr(key AttributeKey, val string) Attribute {
	return Attribute{
		Key:   key,
		Value: val,
	}
}

type AttributeKey string

const (
	AttrURL        AttributeKey = "url"
	AttrPuzzle     AttributeKey = "puzzle"
	AttrPart       AttributeKey = "part"
	AttrPolicy     AttributeKey = "policy"
	AttrBackend    AttributeKey = "backend"
	AttrHTTPStatus AttributeKey = "http_status"
	AttrWritePath  AttributeKey = "write_path"
	AttrMessage    AttributeKey = "message"
)
