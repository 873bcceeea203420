package submitter

import (
	"fmt"

	"github.com/rohmanhakim/aocinput/internal/metadata"
	"github.com/rohmanhakim/aocinput/internal/puzzle"
	"github.com/rohmanhakim/aocinput/pkg/failure"
)

type SubmitErrorCause string

const (
	ErrCauseRequestBuild          SubmitErrorCause = "failed to build request"
	ErrCauseNetworkFailure        SubmitErrorCause = "network issues"
	ErrCauseReadResponseBodyError SubmitErrorCause = "failed to read response body"
)

// SubmitError is a transport failure. It is never used for a rejected
// answer; those are Outcomes.
type SubmitError struct {
	Message   string
	Retryable bool
	Cause     SubmitErrorCause
	Key       puzzle.Key
}

func (e *SubmitError) Error() string {
	return fmt.Sprintf("submitter error: %s for %s: %s", e.Cause, e.Key, e.Message)
}

func (e *SubmitError) Severity() failure.Severity {
	if e.Retryable {
		return failure.SeverityRecoverable
	}
	return failure.SeverityFatal
}

func mapSubmitErrorToMetadataCause(err *SubmitError) metadata.ErrorCause {
	switch err.Cause {
	case ErrCauseNetworkFailure, ErrCauseReadResponseBodyError:
		return metadata.CauseNetworkFailure
	default:
		return metadata.CauseUnknown
	}
}
