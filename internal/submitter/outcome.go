package submitter

import (
	"time"

	"github.com/rohmanhakim/aocinput/internal/puzzle"
)

type OutcomeKind int

const (
	OutcomeSuccess OutcomeKind = iota
	OutcomeInvalidSession
	OutcomeCooldown
	OutcomeIncorrectAnswer
	OutcomeAlreadyComplete
	OutcomeUnknown
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeSuccess:
		return "success"
	case OutcomeInvalidSession:
		return "invalid_session"
	case OutcomeCooldown:
		return "cooldown"
	case OutcomeIncorrectAnswer:
		return "incorrect_answer"
	case OutcomeAlreadyComplete:
		return "already_complete"
	default:
		return "unknown"
	}
}

type Hint string

const (
	HintNone    Hint = ""
	HintTooHigh Hint = "too high"
	HintTooLow  Hint = "too low"
)

// Outcome is the classified result of posting an answer. A rejected
// answer is an Outcome, not an error.
type Outcome struct {
	Kind OutcomeKind
	// Part is set for OutcomeAlreadyComplete: the last completed part.
	Part puzzle.Part
	// Raw is the response body as received.
	Raw string

	// Message is the response's <article> rendered as Markdown.
	Message string
	// Wait is how long the site asks to wait before the next answer.
	Wait time.Duration
	// Hint is the site's too high / too low remark on a wrong answer.
	Hint Hint
}

func (o Outcome) IsSuccess() bool {
	return o.Kind == OutcomeSuccess
}

// Summary is a one-line description for terminal output.
func (o Outcome) Summary() string {
	switch o.Kind {
	case OutcomeSuccess:
		return "That's the right answer!"
	case OutcomeInvalidSession:
		return "Session token is not valid"
	case OutcomeCooldown:
		if o.Wait > 0 {
			return "Answering too fast, wait " + o.Wait.String() + " before trying again"
		}
		return "Answering too fast, please wait before trying again"
	case OutcomeIncorrectAnswer:
		if o.Hint != HintNone {
			return "The answer you gave is incorrect (" + string(o.Hint) + ")"
		}
		return "The answer you gave is incorrect"
	case OutcomeAlreadyComplete:
		return "This puzzle is already complete up to part " + o.Part.String()
	default:
		return "Unexpected response from the answer endpoint"
	}
}
