package cmd

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/peterh/liner"
	"github.com/rohmanhakim/aocinput/internal/puzzle"
	"github.com/rohmanhakim/aocinput/internal/submitter"
	"github.com/spf13/cobra"
)

var (
	part   puzzle.Part
	answer string

	promptAnswer = linerPrompt
)

var errNoAnswer = errors.New("no answer given")

var submitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Submit an answer for one part of a puzzle.",
	Long: `Submit posts an answer for --part of --day in --year and reports how the
site responded. When --answer is omitted the answer is read from the terminal.

The command exits non-zero unless the answer was accepted.`,
	Example: `  aocinput submit --year 2023 --day 7 --part 1 --answer 6440
  aocinput submit -y 2023 -d 7 -p 2`,
	Args: cobra.NoArgs,
	RunE: runSubmit,
}

func init() {
	submitCmd.Flags().VarP(&year, "year", "y", "event year, 2015 or later")
	submitCmd.Flags().VarP(&day, "day", "d", "puzzle day, 1 to 25")
	submitCmd.Flags().VarP(&part, "part", "p", "puzzle part, 1 or 2")
	submitCmd.Flags().StringVarP(&answer, "answer", "a", "", "answer to submit (prompted for when empty)")
	submitCmd.MarkFlagRequired("year")
	submitCmd.MarkFlagRequired("day")
	submitCmd.MarkFlagRequired("part")
}

func runSubmit(cmd *cobra.Command, args []string) error {
	cfg, err := InitConfigWithError()
	if err != nil {
		return err
	}

	key := puzzle.NewKey(year, day)
	value := answer
	if value == "" {
		value, err = promptAnswer(fmt.Sprintf("Answer for %s part %s: ", key, part))
		if err != nil {
			return err
		}
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return errNoAnswer
	}

	sink := newRecorder(cmd.ErrOrStderr(), cfg)
	answerSubmitter := submitter.NewAnswerSubmitter(sink, cfg.Session())
	answerSubmitter.Init(newHTTPClient(cfg), cfg.BaseURL(), cfg.UserAgent())

	outcome, submitErr := answerSubmitter.Submit(cmd.Context(), key, part, value)
	if submitErr != nil {
		return fmt.Errorf("%w%s", submitErr, repeatHint(submitErr))
	}

	printOutcome(cmd.OutOrStdout(), outcome)
	if !outcome.IsSuccess() {
		return fmt.Errorf("answer not accepted: %s", outcome.Kind)
	}
	return nil
}

func printOutcome(w io.Writer, outcome submitter.Outcome) {
	fmt.Fprintln(w, outcome.Summary())
	switch {
	case outcome.Message != "":
		fmt.Fprintf(w, "\n%s\n", outcome.Message)
	case outcome.Kind == submitter.OutcomeUnknown:
		fmt.Fprintf(w, "\n%s\n", outcome.Raw)
	}
}

func linerPrompt(prompt string) (string, error) {
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	value, err := line.Prompt(prompt)
	if err != nil {
		if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
			return "", errNoAnswer
		}
		return "", err
	}
	return value, nil
}
