package fetcher

import (
	"fmt"

	"github.com/rohmanhakim/aocinput/internal/metadata"
	"github.com/rohmanhakim/aocinput/internal/puzzle"
	"github.com/rohmanhakim/aocinput/pkg/failure"
)

type FetchErrorCause string

const (
	ErrCauseNetworkFailure        FetchErrorCause = "network issues"
	ErrCauseReadResponseBodyError FetchErrorCause = "failed to read response body"
	ErrCauseAuthFailure           FetchErrorCause = "session not accepted"
	ErrCauseUnexpectedStatus      FetchErrorCause = "unexpected status"
	ErrCauseCacheCollision        FetchErrorCause = "cache collision"
)

type FetchError struct {
	Message   string
	Retryable bool
	Cause     FetchErrorCause
	Key       puzzle.Key
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetcher error: %s for %s: %s", e.Cause, e.Key, e.Message)
}

func (e *FetchError) Severity() failure.Severity {
	if e.Retryable {
		return failure.SeverityRecoverable
	}
	return failure.SeverityFatal
}

// IsRetryable returns whether repeating the call could succeed
func (e *FetchError) IsRetryable() bool {
	return e.Retryable
}

// mapFetchErrorToMetadataCause maps fetcher-local error semantics
// to the canonical metadata.ErrorCause table.
//
// This mapping is observational only and MUST NOT be used
// to derive control-flow decisions.
func mapFetchErrorToMetadataCause(err *FetchError) metadata.ErrorCause {
	switch err.Cause {
	case ErrCauseNetworkFailure, ErrCauseReadResponseBodyError:
		return metadata.CauseNetworkFailure
	case ErrCauseAuthFailure:
		return metadata.CauseAuthFailure
	case ErrCauseUnexpectedStatus:
		return metadata.CauseContentInvalid
	case ErrCauseCacheCollision:
		return metadata.CausePolicyDisallow
	default:
		return metadata.CauseUnknown
	}
}
