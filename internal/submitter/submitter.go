package submitter

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/rohmanhakim/aocinput/internal/metadata"
	"github.com/rohmanhakim/aocinput/internal/puzzle"
	"github.com/rohmanhakim/aocinput/pkg/failure"
)

const (
	DefaultBaseURL   = "https://adventofcode.com"
	DefaultUserAgent = "github.com/rohmanhakim/aocinput"
)

type AnswerSubmitter struct {
	session      puzzle.Session
	metadataSink metadata.MetadataSink
	httpClient   *http.Client
	baseURL      string
	userAgent    string
}

func NewAnswerSubmitter(
	metadataSink metadata.MetadataSink,
	session puzzle.Session,
) *AnswerSubmitter {
	return &AnswerSubmitter{
		session:      session,
		metadataSink: metadataSink,
		httpClient:   &http.Client{Timeout: 30 * time.Second},
		baseURL:      DefaultBaseURL,
		userAgent:    DefaultUserAgent,
	}
}

// Init overrides the transport settings. Empty values keep the defaults.
func (s *AnswerSubmitter) Init(httpClient *http.Client, baseURL string, userAgent string) {
	if httpClient != nil {
		s.httpClient = httpClient
	}
	if baseURL != "" {
		s.baseURL = strings.TrimRight(baseURL, "/")
	}
	if userAgent != "" {
		s.userAgent = userAgent
	}
}

// Submit posts one answer and classifies the reply. Only transport
// failures come back as errors.
func (s *AnswerSubmitter) Submit(
	ctx context.Context,
	key puzzle.Key,
	part puzzle.Part,
	answer string,
) (Outcome, failure.ClassifiedError) {
	startTime := time.Now()

	body, err := s.post(ctx, key, part, answer)
	if err != nil {
		s.metadataSink.RecordError(
			time.Now(),
			"submitter",
			"AnswerSubmitter.Submit",
			mapSubmitErrorToMetadataCause(err),
			err.Error(),
			[]metadata.Attribute{
				metadata.NewAttr(metadata.AttrPuzzle, key.String()),
				metadata.NewAttr(metadata.AttrPart, part.String()),
			},
		)
		return Outcome{}, err
	}

	outcome := Classify(body)
	s.metadataSink.RecordSubmission(key.String(), int(part), outcome.Kind.String(), time.Since(startTime))
	if outcome.Kind == OutcomeUnknown {
		s.metadataSink.RecordError(
			time.Now(),
			"submitter",
			"AnswerSubmitter.Submit",
			metadata.CauseContentInvalid,
			"response matched no known phrase",
			[]metadata.Attribute{
				metadata.NewAttr(metadata.AttrPuzzle, key.String()),
				metadata.NewAttr(metadata.AttrPart, part.String()),
				metadata.NewAttr(metadata.AttrMessage, firstLine(body)),
			},
		)
	}
	return outcome, nil
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

func (s *AnswerSubmitter) answerURL(key puzzle.Key) string {
	return fmt.Sprintf("%s/%d/day/%d/answer", s.baseURL, key.Year, key.Day)
}

func (s *AnswerSubmitter) post(
	ctx context.Context,
	key puzzle.Key,
	part puzzle.Part,
	answer string,
) (string, *SubmitError) {
	form, contentType, err := answerForm(part, answer)
	if err != nil {
		return "", &SubmitError{
			Message:   err.Error(),
			Retryable: false,
			Cause:     ErrCauseRequestBuild,
			Key:       key,
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.answerURL(key), form)
	if err != nil {
		return "", &SubmitError{
			Message:   err.Error(),
			Retryable: false,
			Cause:     ErrCauseRequestBuild,
			Key:       key,
		}
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Cookie", "session="+s.session.String())
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", &SubmitError{
			Message:   fmt.Sprintf("request failed: %v", err),
			Retryable: true,
			Cause:     ErrCauseNetworkFailure,
			Key:       key,
		}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &SubmitError{
			Message:   fmt.Sprintf("failed to read response body: %v", err),
			Retryable: true,
			Cause:     ErrCauseReadResponseBodyError,
			Key:       key,
		}
	}
	return string(raw), nil
}

func answerForm(part puzzle.Part, answer string) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if err := w.WriteField("level", part.Level()); err != nil {
		return nil, "", err
	}
	if err := w.WriteField("answer", answer); err != nil {
		return nil, "", err
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}
