package cmd

import (
	"errors"
	"fmt"

	"github.com/rohmanhakim/aocinput/internal/cache"
	"github.com/rohmanhakim/aocinput/internal/fetcher"
	"github.com/rohmanhakim/aocinput/internal/puzzle"
	"github.com/rohmanhakim/aocinput/pkg/failure"
	"github.com/spf13/cobra"
)

var (
	year         puzzle.Year
	day          puzzle.Day
	outputDir    string
	overwrite    bool
	cacheBackend string
	toStdout     bool
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch puzzle input for one day or a whole year.",
	Long: `Fetch downloads the puzzle input for --day of --year, or for every day
of the year when --day is omitted.

Existing inputs are left alone and reported as a collision unless
--overwrite is given.`,
	Example: `  aocinput fetch --year 2023 --day 7
  aocinput fetch --year 2023 --output-dir inputs/2023 --overwrite
  aocinput fetch --year 2023 --day 7 --cache none --stdout`,
	Args: cobra.NoArgs,
	RunE: runFetch,
}

func init() {
	fetchCmd.Flags().VarP(&year, "year", "y", "event year, 2015 or later")
	fetchCmd.Flags().VarP(&day, "day", "d", "puzzle day, 1 to 25 (default: every day)")
	fetchCmd.Flags().StringVarP(&outputDir, "output-dir", "l", "", "directory for day<N>.txt files (default: .)")
	fetchCmd.Flags().BoolVarP(&overwrite, "overwrite", "o", false, "download again even if the input is already cached")
	fetchCmd.Flags().StringVar(&cacheBackend, "cache", "", "cache backend: none, memory, file, redis or s3 (default: file)")
	fetchCmd.Flags().BoolVar(&toStdout, "stdout", false, "print the input instead of a progress line")
	fetchCmd.MarkFlagRequired("year")
}

func runFetch(cmd *cobra.Command, args []string) error {
	cfg, err := InitConfigWithError()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	sink := newRecorder(cmd.ErrOrStderr(), cfg)

	store, err := BuildCache(ctx, cfg)
	if err != nil {
		return err
	}

	inputFetcher := fetcher.NewInputFetcherWithCache(sink, cfg.Session(), store)
	inputFetcher.Init(newHTTPClient(cfg), cfg.BaseURL(), cfg.UserAgent())

	keys := puzzle.AllDays(year)
	if day != 0 {
		keys = []puzzle.Key{puzzle.NewKey(year, day)}
	}

	policy := fetcher.HitError
	if overwrite {
		policy = fetcher.HitOverwrite
	}

	failed := 0
	for _, key := range keys {
		input, fetchErr := inputFetcher.GetInputWithPolicy(ctx, key, policy)
		if fetchErr != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s%s\n", key, describeFetchError(fetchErr), repeatHint(fetchErr))
			failed++

			// Every other day would fail the same way.
			var fe *fetcher.FetchError
			if errors.As(fetchErr, &fe) && fe.Cause == fetcher.ErrCauseAuthFailure {
				break
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			continue
		}

		if toStdout {
			fmt.Fprint(out, input)
			continue
		}
		fmt.Fprintf(out, "Fetched %s%s\n", key, location(store, key))
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d inputs could not be fetched", failed, len(keys))
	}
	return nil
}

func describeFetchError(err error) string {
	var fe *fetcher.FetchError
	if !errors.As(err, &fe) {
		return err.Error()
	}
	switch fe.Cause {
	case fetcher.ErrCauseCacheCollision:
		return "already downloaded, use --overwrite to replace it"
	case fetcher.ErrCauseAuthFailure:
		return "session token was not accepted, log in again and copy a fresh session cookie"
	default:
		return fe.Error()
	}
}

func location(store cache.Cache, key puzzle.Key) string {
	if fc, ok := store.(*cache.FileCache); ok {
		return " to " + fc.Path(key)
	}
	return ""
}

// repeatHint tells the user when running the same command again later
// could succeed. Nothing is repeated automatically.
func repeatHint(err error) string {
	if failure.SeverityOf(err) == failure.SeverityRecoverable {
		return " (temporary, try again later)"
	}
	return ""
}
