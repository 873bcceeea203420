package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"

	"github.com/rohmanhakim/aocinput/internal/build"
	"github.com/rohmanhakim/aocinput/internal/config"
	"github.com/rohmanhakim/aocinput/internal/metadata"
	"github.com/rohmanhakim/aocinput/internal/puzzle"
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	session puzzle.Session
	verbose bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "aocinput",
	Short: "Fetch Advent of Code inputs and submit answers.",
	Long: `aocinput downloads puzzle inputs from Advent of Code and submits
answers on your behalf, authenticated with your session cookie.

Inputs are cached (by default as day<N>.txt files in the output directory)
so a puzzle is downloaded at most once.`,
	Version:       build.FullVersion(),
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		stop()
		os.Exit(1)
	}
}

// ExecuteArgs runs the command tree with args instead of os.Args,
// writing to out and errOut.
func ExecuteArgs(ctx context.Context, args []string, out, errOut io.Writer) error {
	rootCmd.SetArgs(args)
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)
	defer func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	}()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config-file", "", "config file path (e.g., /home/myuser/.config/aocinput.jsonc)")
	rootCmd.PersistentFlags().Var(&session, "session", "session cookie value (defaults to $"+config.SessionEnv+")")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log every request and cache lookup")

	rootCmd.SetVersionTemplate(build.Details())
	rootCmd.AddCommand(fetchCmd)
	rootCmd.AddCommand(submitCmd)
}

// InitConfigWithError loads the config file, if any, applies the flags
// on top of it and validates the result once.
func InitConfigWithError() (config.Config, error) {
	builder := config.WithDefault()
	if cfgFile != "" {
		fileBuilder, err := config.LoadConfigFile(cfgFile)
		if err != nil {
			return config.Config{}, fmt.Errorf("error initializing config from file: %w", err)
		}
		builder = fileBuilder
	}

	if session != "" {
		builder = builder.WithSession(session.String())
	}
	if outputDir != "" {
		builder = builder.WithOutputDir(outputDir)
	}
	if cacheBackend != "" {
		backend, ok := config.ParseCacheBackend(cacheBackend)
		if !ok {
			return config.Config{}, fmt.Errorf("%w: unknown cache backend %q", config.ErrInvalidConfig, cacheBackend)
		}
		builder = builder.WithCacheBackend(backend)
	}

	return builder.Build()
}

// newRecorder writes structured records to w. Without --verbose only
// warnings and errors get through.
func newRecorder(w io.Writer, cfg config.Config) *metadata.Recorder {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
	return metadata.NewRecorder(logger, cfg.HashAlgo())
}

func newHTTPClient(cfg config.Config) *http.Client {
	return &http.Client{Timeout: cfg.Timeout()}
}

func ResetFlags() {
	cfgFile = ""
	session = ""
	verbose = false
	year = 0
	day = 0
	part = 0
	outputDir = ""
	overwrite = false
	cacheBackend = ""
	toStdout = false
	answer = ""
	promptAnswer = linerPrompt

	// cobra registers --version on first execution and never clears it
	if f := rootCmd.Flags().Lookup("version"); f != nil {
		f.Value.Set("false")
		f.Changed = false
	}
}

// Test helper functions to set flag values from tests
func SetConfigFileForTest(path string) {
	cfgFile = path
}

func SetSessionForTest(s puzzle.Session) {
	session = s
}

func SetOutputDirForTest(dir string) {
	outputDir = dir
}

func SetCacheBackendForTest(backend string) {
	cacheBackend = backend
}

// SetPromptForTest replaces the terminal prompt used by submit.
func SetPromptForTest(prompt func(string) (string, error)) {
	promptAnswer = prompt
}
