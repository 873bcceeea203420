package puzzle

import (
	"fmt"
	"strconv"
)

const (
	FirstYear = 2015
	FirstDay  = 1
	LastDay   = 25
)

// Year is an event year, 2015 or later.
type Year int

// Day is a puzzle day within an event, 1 through 25.
type Day int

// Part selects which half of a puzzle an answer is for.
type Part int

const (
	Part1 Part = 1
	Part2 Part = 2
)

// Session is the value of the site's "session" cookie.
type Session string

// Key identifies one puzzle's input and answer context.
// It is comparable and is used directly as a cache map key.
type Key struct {
	Year Year
	Day  Day
}

func NewKey(year Year, day Day) Key {
	return Key{Year: year, Day: day}
}

// String renders the key the way the site spells it in URLs.
func (k Key) String() string {
	return fmt.Sprintf("%d/day/%d", k.Year, k.Day)
}

// AllDays returns the 25 keys of an event in day order.
func AllDays(year Year) []Key {
	keys := make([]Key, 0, LastDay)
	for d := FirstDay; d <= LastDay; d++ {
		keys = append(keys, NewKey(year, Day(d)))
	}
	return keys
}

func (y Year) String() string {
	return strconv.Itoa(int(y))
}

func (d Day) String() string {
	return strconv.Itoa(int(d))
}

func (p Part) String() string {
	return strconv.Itoa(int(p))
}

// Level is the form value the answer endpoint expects for this part.
func (p Part) Level() string {
	return p.String()
}

func (s Session) String() string {
	return string(s)
}

// Redacted keeps the last four characters so log lines can tell
// sessions apart without leaking them.
func (s Session) Redacted() string {
	if len(s) <= 4 {
		return "****"
	}
	return "****" + string(s[len(s)-4:])
}
