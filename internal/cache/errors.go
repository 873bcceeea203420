package cache

import (
	"fmt"

	"github.com/rohmanhakim/aocinput/internal/metadata"
	"github.com/rohmanhakim/aocinput/internal/puzzle"
	"github.com/rohmanhakim/aocinput/pkg/failure"
)

type CacheErrorCause string

const (
	ErrCauseAlreadyExists CacheErrorCause = "already exists"
	ErrCauseWriteFailure  CacheErrorCause = "write failed"
	ErrCausePathError     CacheErrorCause = "path error"
	ErrCauseEncodeFailure CacheErrorCause = "encode failed"
)

type CacheError struct {
	Message   string
	Retryable bool
	Cause     CacheErrorCause
	Key       puzzle.Key
}

func (e *CacheError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("cache error: %s for %s", e.Cause, e.Key)
	}
	return fmt.Sprintf("cache error: %s for %s: %s", e.Cause, e.Key, e.Message)
}

func (e *CacheError) Severity() failure.Severity {
	if e.Retryable {
		return failure.SeverityRecoverable
	}
	return failure.SeverityFatal
}

// MapCacheErrorToMetadataCause maps cache-local error semantics
// to the canonical metadata.ErrorCause table.
//
// This mapping is observational only and MUST NOT be used
// to derive control-flow decisions.
func MapCacheErrorToMetadataCause(err *CacheError) metadata.ErrorCause {
	switch err.Cause {
	case ErrCauseAlreadyExists:
		return metadata.CausePolicyDisallow
	case ErrCauseWriteFailure, ErrCausePathError, ErrCauseEncodeFailure:
		return metadata.CauseStorageFailure
	default:
		return metadata.CauseUnknown
	}
}
