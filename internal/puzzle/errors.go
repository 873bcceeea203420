package puzzle

import (
	"fmt"

	"github.com/rohmanhakim/aocinput/pkg/failure"
)

type ParseErrorCause string

const (
	ErrCauseOutOfRange ParseErrorCause = "out of range"
	ErrCauseNotANumber ParseErrorCause = "not a number"
	ErrCauseEmpty      ParseErrorCause = "empty"
)

// ParseError reports a rejected year, day, part or session value.
type ParseError struct {
	Field string
	Input string
	Cause ParseErrorCause
}

func (e *ParseError) Error() string {
	switch e.Cause {
	case ErrCauseOutOfRange:
		return fmt.Sprintf("%s %q is out of range: %s", e.Field, e.Input, rangeHint(e.Field))
	case ErrCauseEmpty:
		return fmt.Sprintf("%s can not be empty", e.Field)
	default:
		return fmt.Sprintf("input %q is not a valid %s", e.Input, e.Field)
	}
}

// Parse errors are never worth repeating.
func (e *ParseError) Severity() failure.Severity {
	return failure.SeverityFatal
}

func rangeHint(field string) string {
	switch field {
	case fieldYear:
		return fmt.Sprintf("year should be at least %d", FirstYear)
	case fieldDay:
		return fmt.Sprintf("day should be between %d and %d inclusive", FirstDay, LastDay)
	case fieldPart:
		return "part should be 1 or 2"
	default:
		return "value not allowed"
	}
}
