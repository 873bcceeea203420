// Package failure classifies errors by what the caller can do about them.
// aocinput never repeats a request by itself, so Severity is advice for
// the person at the terminal, not input to a retry loop.
package failure

import "errors"

type Severity int

// caller control flow
const (
	SeverityFatal Severity = iota
	SeverityRecoverable
)

func (s Severity) String() string {
	if s == SeverityRecoverable {
		return "recoverable"
	}
	return "fatal"
}

type ClassifiedError interface {
	error
	Severity() Severity
}

// SeverityOf finds the first ClassifiedError in err's chain. Errors
// that carry no classification are fatal.
func SeverityOf(err error) Severity {
	var classified ClassifiedError
	if errors.As(err, &classified) {
		return classified.Severity()
	}
	return SeverityFatal
}
