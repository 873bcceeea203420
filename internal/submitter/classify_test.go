package submitter_test

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/rohmanhakim/aocinput/internal/puzzle"
	"github.com/rohmanhakim/aocinput/internal/submitter"
	"github.com/stretchr/testify/assert"
)

// ignoreDiagnostics compares only what the phrase table decides.
var ignoreDiagnostics = cmpopts.IgnoreFields(submitter.Outcome{}, "Raw", "Message", "Wait", "Hint")

func TestClassify_KnownPhrases(t *testing.T) {
	tests := []struct {
		name string
		body string
		want submitter.Outcome
	}{
		{
			name: "right answer",
			body: "That's the right answer!",
			want: submitter.Outcome{Kind: submitter.OutcomeSuccess},
		},
		{
			name: "cooldown",
			body: "You gave an answer too recently; you have to wait after submitting an answer before trying again.",
			want: submitter.Outcome{Kind: submitter.OutcomeCooldown},
		},
		{
			name: "incorrect",
			body: "That's not the right answer... ",
			want: submitter.Outcome{Kind: submitter.OutcomeIncorrectAnswer},
		},
		{
			name: "invalid session",
			body: "To play, please identify yourself via one of these services:",
			want: submitter.Outcome{Kind: submitter.OutcomeInvalidSession},
		},
		{
			name: "first half complete",
			body: "The first half of this puzzle is complete! It provides one gold star: *",
			want: submitter.Outcome{Kind: submitter.OutcomeAlreadyComplete, Part: puzzle.Part1},
		},
		{
			name: "both parts complete",
			body: "Both parts of this puzzle are complete! They provide two gold stars: **",
			want: submitter.Outcome{Kind: submitter.OutcomeAlreadyComplete, Part: puzzle.Part2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := submitter.Classify(tt.body)
			if diff := cmp.Diff(tt.want, got, ignoreDiagnostics); diff != "" {
				t.Errorf("Classify() mismatch (-want +got):\n%s", diff)
			}
			assert.Equal(t, tt.body, got.Raw)
		})
	}
}

func TestClassify_UnknownKeepsRawText(t *testing.T) {
	body := "Congratulations on completing..."

	got := submitter.Classify(body)

	assert.Equal(t, submitter.OutcomeUnknown, got.Kind)
	assert.Equal(t, body, got.Raw)
	assert.False(t, got.IsSuccess())
}

func TestClassify_EmptyBodyIsUnknown(t *testing.T) {
	got := submitter.Classify("")
	assert.Equal(t, submitter.OutcomeUnknown, got.Kind)
	assert.Equal(t, "", got.Raw)
}

func TestClassify_Priority(t *testing.T) {
	tests := []struct {
		name string
		body string
		want submitter.OutcomeKind
	}{
		{
			name: "cooldown beats incorrect",
			body: "That's not the right answer. You gave an answer too recently.",
			want: submitter.OutcomeCooldown,
		},
		{
			name: "invalid session beats cooldown",
			body: "You gave an answer too recently. To play, please identify yourself",
			want: submitter.OutcomeInvalidSession,
		},
		{
			name: "incorrect beats already complete",
			body: "Both parts of this puzzle are complete! That's not the right answer",
			want: submitter.OutcomeIncorrectAnswer,
		},
		{
			name: "first half beats both parts",
			body: "Both parts of this puzzle are complete! The first half of this puzzle is complete!",
			want: submitter.OutcomeAlreadyComplete,
		},
		{
			name: "success beats everything",
			body: "That's the right answer! You gave an answer too recently",
			want: submitter.OutcomeSuccess,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, submitter.Classify(tt.body).Kind)
		})
	}
}

func TestClassify_FirstHalfReportsPart1(t *testing.T) {
	body := "Both parts of this puzzle are complete! The first half of this puzzle is complete!"
	assert.Equal(t, puzzle.Part1, submitter.Classify(body).Part)
}

func TestClassify_Wait(t *testing.T) {
	tests := []struct {
		name string
		body string
		want time.Duration
	}{
		{
			name: "minutes and seconds",
			body: "You gave an answer too recently; you have to wait after submitting an answer before trying again.  You have 4m 12s left to wait.",
			want: 4*time.Minute + 12*time.Second,
		},
		{
			name: "seconds only",
			body: "You gave an answer too recently. You have 35s left to wait.",
			want: 35 * time.Second,
		},
		{
			name: "minutes only",
			body: "That's not the right answer. Please wait one minute before trying again. You have 1m left to wait.",
			want: time.Minute,
		},
		{
			name: "no wait",
			body: "That's the right answer!",
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, submitter.Classify(tt.body).Wait)
		})
	}
}

func TestClassify_Hint(t *testing.T) {
	high := submitter.Classify("That's not the right answer; your answer is too high.")
	assert.Equal(t, submitter.OutcomeIncorrectAnswer, high.Kind)
	assert.Equal(t, submitter.HintTooHigh, high.Hint)
	assert.Contains(t, high.Summary(), "too high")

	low := submitter.Classify("That's not the right answer; your answer is too low.")
	assert.Equal(t, submitter.HintTooLow, low.Hint)

	none := submitter.Classify("That's not the right answer.")
	assert.Equal(t, submitter.HintNone, none.Hint)
}

func TestClassify_MessageFromArticle(t *testing.T) {
	body := `<!DOCTYPE html>
<html><body>
<header><h1>Advent of Code</h1></header>
<main>
<article><p>That's the right answer!  You are <em>one gold star</em> closer to saving Christmas.</p></article>
</main>
<div id="sidebar">Our sponsors</div>
</body></html>`

	got := submitter.Classify(body)

	assert.Equal(t, submitter.OutcomeSuccess, got.Kind)
	assert.Contains(t, got.Message, "That's the right answer!")
	assert.Contains(t, got.Message, "*one gold star*")
	assert.NotContains(t, got.Message, "sponsors")
	assert.NotContains(t, got.Message, "<p>")
}

func TestClassify_PlainTextHasNoMessage(t *testing.T) {
	assert.Equal(t, "", submitter.Classify("That's the right answer!").Message)
}

func TestOutcome_Summary(t *testing.T) {
	cool := submitter.Outcome{Kind: submitter.OutcomeCooldown, Wait: 30 * time.Second}
	assert.Contains(t, cool.Summary(), "30s")

	done := submitter.Outcome{Kind: submitter.OutcomeAlreadyComplete, Part: puzzle.Part2}
	assert.Contains(t, done.Summary(), "part 2")

	assert.Equal(t, "unknown", submitter.OutcomeUnknown.String())
}
