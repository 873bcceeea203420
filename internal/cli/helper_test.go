package cmd_test

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"sync/atomic"
	"testing"

	cmd "github.com/rohmanhakim/aocinput/internal/cli"
	"github.com/rohmanhakim/aocinput/internal/config"
	"github.com/stretchr/testify/require"
)

var inputPath = regexp.MustCompile(`^/(\d+)/day/(\d+)/input$`)

// siteStub serves inputs for days up to lastDay and 404 after that,
// and answers every submission with answerBody.
type siteStub struct {
	server  *httptest.Server
	lastDay int
	// inputStatus, when set, replaces every input response with an error page
	inputStatus int
	inputBody   func(year, day int) string
	answerBody  string
	inputHits   atomic.Int64
	answers     atomic.Int64
	lastAnswer  atomic.Value
}

func newSiteStub(t *testing.T, lastDay int) *siteStub {
	t.Helper()
	stub := &siteStub{
		lastDay: lastDay,
		inputBody: func(year, day int) string {
			return fmt.Sprintf("input %d-%d\n", year, day)
		},
	}
	stub.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m := inputPath.FindStringSubmatch(r.URL.Path); m != nil {
			stub.inputHits.Add(1)
			year, _ := strconv.Atoi(m[1])
			day, _ := strconv.Atoi(m[2])
			if stub.inputStatus != 0 {
				http.Error(w, "Internal Server Error", stub.inputStatus)
				return
			}
			if day > stub.lastDay {
				http.Error(w, "Please don't repeatedly request this endpoint before it unlocks!", http.StatusNotFound)
				return
			}
			w.Write([]byte(stub.inputBody(year, day)))
			return
		}
		if r.Method == http.MethodPost {
			stub.answers.Add(1)
			if err := r.ParseMultipartForm(1 << 20); err == nil {
				stub.lastAnswer.Store(r.FormValue("answer"))
			}
			w.Write([]byte(stub.answerBody))
			return
		}
		http.NotFound(w, r)
	}))
	t.Cleanup(stub.server.Close)
	return stub
}

// setupCLI resets the global flags and points the CLI at baseURL through
// a config file.
func setupCLI(t *testing.T, baseURL string) {
	t.Helper()
	t.Setenv(config.SessionEnv, "")
	cmd.ResetFlags()
	t.Cleanup(cmd.ResetFlags)

	path := filepath.Join(t.TempDir(), "aocinput.jsonc")
	content := fmt.Sprintf(`{
	"baseUrl": %q, // test server
}`, baseURL)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	cmd.SetConfigFileForTest(path)
}

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	err := cmd.ExecuteArgs(context.Background(), args, &out, &errOut)
	return out.String(), errOut.String(), err
}
