package puzzle

import (
	"errors"
	"strconv"
)

const (
	fieldYear    = "year"
	fieldDay     = "day"
	fieldPart    = "part"
	fieldSession = "session token"
)

func ParseYear(s string) (Year, error) {
	n, err := parseNumber(fieldYear, s)
	if err != nil {
		return 0, err
	}
	if n < FirstYear {
		return 0, &ParseError{Field: fieldYear, Input: s, Cause: ErrCauseOutOfRange}
	}
	return Year(n), nil
}

func ParseDay(s string) (Day, error) {
	n, err := parseNumber(fieldDay, s)
	if err != nil {
		return 0, err
	}
	if n < FirstDay || n > LastDay {
		return 0, &ParseError{Field: fieldDay, Input: s, Cause: ErrCauseOutOfRange}
	}
	return Day(n), nil
}

func ParsePart(s string) (Part, error) {
	n, err := parseNumber(fieldPart, s)
	if err != nil {
		return 0, err
	}
	switch Part(n) {
	case Part1, Part2:
		return Part(n), nil
	default:
		return 0, &ParseError{Field: fieldPart, Input: s, Cause: ErrCauseOutOfRange}
	}
}

func ParseSession(s string) (Session, error) {
	if s == "" {
		return "", &ParseError{Field: fieldSession, Cause: ErrCauseEmpty}
	}
	return Session(s), nil
}

// parseNumber separates "too big to be a number we accept" from
// "not a number at all". Overflow counts as out of range.
func parseNumber(field, s string) (int64, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return 0, &ParseError{Field: field, Input: s, Cause: ErrCauseOutOfRange}
		}
		return 0, &ParseError{Field: field, Input: s, Cause: ErrCauseNotANumber}
	}
	return n, nil
}
