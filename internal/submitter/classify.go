package submitter

import (
	"regexp"
	"strings"
	"time"

	"github.com/rohmanhakim/aocinput/internal/puzzle"
)

// The site answers 200 for right and wrong answers alike; the body text
// is the only signal. Order matters: the first matching phrase decides,
// so e.g. a cooldown notice wins over a quoted "not the right answer".
var phraseTable = []struct {
	phrase  string
	outcome Outcome
}{
	{"That's the right answer", Outcome{Kind: OutcomeSuccess}},
	{"To play, please identify yourself", Outcome{Kind: OutcomeInvalidSession}},
	{"You gave an answer too recently", Outcome{Kind: OutcomeCooldown}},
	{"That's not the right answer", Outcome{Kind: OutcomeIncorrectAnswer}},
	{"The first half of this puzzle is complete", Outcome{Kind: OutcomeAlreadyComplete, Part: puzzle.Part1}},
	{"Both parts of this puzzle are complete", Outcome{Kind: OutcomeAlreadyComplete, Part: puzzle.Part2}},
}

var (
	waitPattern = regexp.MustCompile(`You have ((?:\d+h\s*)?(?:\d+m\s*)?(?:\d+s)?) left to wait`)
	hintPattern = regexp.MustCompile(`your answer is too (high|low)`)
)

// Classify maps a response body to an Outcome. It never fails: a body
// matching no known phrase becomes OutcomeUnknown with Raw preserved.
func Classify(body string) Outcome {
	outcome := Outcome{Kind: OutcomeUnknown}
	for _, row := range phraseTable {
		if strings.Contains(body, row.phrase) {
			outcome = row.outcome
			break
		}
	}

	outcome.Raw = body
	outcome.Wait = parseWait(body)
	outcome.Hint = parseHint(body)
	outcome.Message = articleMarkdown(body)
	return outcome
}

func parseWait(body string) time.Duration {
	m := waitPattern.FindStringSubmatch(body)
	if m == nil || m[1] == "" {
		return 0
	}
	d, err := time.ParseDuration(strings.Join(strings.Fields(m[1]), ""))
	if err != nil {
		return 0
	}
	return d
}

func parseHint(body string) Hint {
	m := hintPattern.FindStringSubmatch(body)
	if m == nil {
		return HintNone
	}
	if m[1] == "high" {
		return HintTooHigh
	}
	return HintTooLow
}
